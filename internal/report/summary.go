package report

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mzentrap/mzentrap/internal/efdr"
)

// Acceptance counts the entries accepted below one FDR threshold according
// to each estimate.
type Acceptance struct {
	Threshold float64
	LocalQ    int
	Combined  int
	Paired    int
}

// Summary aggregates an annotated report for quick inspection.
type Summary struct {
	Entries     int
	Files       int
	Targets     int
	Decoys      int
	Originals   int
	Entrapments int

	ScoreMin    float64
	ScoreMax    float64
	ScoreMean   float64
	ScoreStdDev float64
	// First, second and third quartile of the score distribution.
	ScoreQuartiles [3]float64

	Accepted []Acceptance
}

// Summarize computes summary statistics over annotated entries. Thresholds
// are FDR cutoffs (e.g. 0.01) to count acceptances at.
func Summarize(entries []efdr.Entry, thresholds []float64) Summary {
	s := Summary{Entries: len(entries)}
	if len(entries) == 0 {
		return s
	}

	files := make(map[string]struct{})
	scores := make([]float64, len(entries))
	for i := range entries {
		files[entries[i].FileID] = struct{}{}
		scores[i] = entries[i].Score
		if entries[i].Decoy {
			s.Decoys++
		} else {
			s.Targets++
		}
		if entries[i].Original {
			s.Originals++
		} else {
			s.Entrapments++
		}
	}
	s.Files = len(files)

	s.ScoreMin = floats.Min(scores)
	s.ScoreMax = floats.Max(scores)
	s.ScoreMean, s.ScoreStdDev = stat.MeanStdDev(scores, nil)
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)
	for n, p := range []float64{0.25, 0.5, 0.75} {
		s.ScoreQuartiles[n] = stat.Quantile(p, stat.Empirical, sorted, nil)
	}

	for _, th := range thresholds {
		a := Acceptance{Threshold: th}
		for i := range entries {
			if entries[i].LocalQValue <= th {
				a.LocalQ++
			}
			if entries[i].CombinedEFDR <= th {
				a.Combined++
			}
			if entries[i].PairedEFDR <= th {
				a.Paired++
			}
		}
		s.Accepted = append(s.Accepted, a)
	}
	return s
}

// Print writes the summary as human-readable text.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "entries: %d (%d files)\n", s.Entries, s.Files)
	fmt.Fprintf(w, "targets/decoys: %d/%d  originals/entrapments: %d/%d\n",
		s.Targets, s.Decoys, s.Originals, s.Entrapments)
	if s.Entries > 0 {
		fmt.Fprintf(w, "score: min %.4g max %.4g mean %.4g sd %.4g quartiles %.4g/%.4g/%.4g\n",
			s.ScoreMin, s.ScoreMax, s.ScoreMean, s.ScoreStdDev,
			s.ScoreQuartiles[0], s.ScoreQuartiles[1], s.ScoreQuartiles[2])
	}
	for _, a := range s.Accepted {
		fmt.Fprintf(w, "accepted at %.4g: local q %d, combined EFDR %d, paired EFDR %d\n",
			a.Threshold, a.LocalQ, a.Combined, a.Paired)
	}
}
