package efdr

import (
	"log/slog"
	"sync"
)

// Estimator wires the pairing, q-value and EFDR stages together and runs
// them over per-file partitions. The zero value is not usable; Library must
// be set.
type Estimator struct {
	Library *LibraryIndex
	Ratio   float64      // library-to-real entrapment ratio, DefaultRatio if 0
	Workers int          // per-file worker goroutines, <=1 runs serially
	Logger  *slog.Logger // nil falls back to slog.Default
}

// Process annotates the entries in place: pairing labels, complement scores,
// local and global q-values, and both EFDR estimates (monotonized along the
// per-file confidence order). Entries are never reordered or removed.
// File partitions are independent, so Workers > 1 processes them
// concurrently with identical results.
func (e *Estimator) Process(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := e.Library.AssignLabels(entries); err != nil {
		return err
	}
	ratio := e.Ratio
	if ratio == 0 {
		ratio = DefaultRatio
	}
	parts := partitionByFile(entries)

	workers := e.Workers
	if workers > len(parts) {
		workers = len(parts)
	}
	if workers <= 1 {
		for _, part := range parts {
			if err := e.processFile(entries, part, ratio); err != nil {
				return err
			}
		}
		return nil
	}

	jobs := make(chan []int)
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var firstErr error
			for part := range jobs {
				if firstErr == nil {
					firstErr = e.processFile(entries, part, ratio)
				}
			}
			errs <- firstErr
		}()
	}
	for _, part := range parts {
		jobs <- part
	}
	close(jobs)
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// processFile runs the per-file stages on one partition. A partition owns
// its entries exclusively and shares only the read-only library index, so
// concurrent calls for distinct files are safe.
func (e *Estimator) processFile(entries []Entry, part []int, ratio float64) error {
	resolveComplementScores(entries, part)
	if err := computeQValuesFile(entries, part); err != nil {
		return err
	}

	scores := make([]float64, len(part))
	complements := make([]float64, len(part))
	qvalues := make([]float64, len(part))
	original := make([]bool, len(part))
	for n, i := range part {
		scores[n] = entries[i].Score
		complements[n] = entries[i].ComplementScore
		qvalues[n] = entries[i].LocalQValue
		original[n] = entries[i].Original
	}

	combined, err := CombinedEFDR(scores, qvalues, original, ratio, e.Logger)
	if err != nil {
		return err
	}
	paired, err := PairedEFDR(scores, complements, qvalues, original, ratio, e.Logger)
	if err != nil {
		return err
	}

	order := confidenceOrder(qvalues, scores)
	monotonizeOrdered(combined, order)
	monotonizeOrdered(paired, order)

	for n, i := range part {
		entries[i].CombinedEFDR = combined[n]
		entries[i].PairedEFDR = paired[n]
	}
	return nil
}
