package efdr

import (
	"log/slog"
	"sort"
)

// DefaultRatio is the library-to-real entrapment ratio assumed when the
// caller does not configure one (a library with one entrapment peptide per
// original peptide).
const DefaultRatio = 1.0

// confidenceOrder sorts indices by q-value ascending, breaking ties by score
// descending. Both estimators and the subsequent monotonization of their
// results use this one order.
func confidenceOrder(qvalues, scores []float64) []int {
	order := make([]int, len(qvalues))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if qvalues[i] != qvalues[j] {
			return qvalues[i] < qvalues[j]
		}
		return scores[i] > scores[j]
	})
	return order
}

// warnIfUnsorted logs when the supplied q-values disagree with the score
// ranking, i.e. a better score carries a worse q-value. The computation
// proceeds; the estimate may be inaccurate and the caller should fix its
// q-value input.
func warnIfUnsorted(logger *slog.Logger, order []int, scores []float64) {
	for pos := 1; pos < len(order); pos++ {
		if scores[order[pos]] > scores[order[pos-1]] {
			if logger == nil {
				logger = slog.Default()
			}
			logger.Warn("q-values are not sorted consistently with scores, EFDR estimates may be inaccurate")
			return
		}
	}
}

// CombinedEFDR computes the count-based empirical FDR estimator: at each
// confidence threshold, the accepted entrapment count scaled by (1 + 1/r)
// over all accepted entries, capped at 1. The result is aligned with the
// input order and deliberately not monotonized; callers apply Monotonize
// over the same confidence order before use.
func CombinedEFDR(scores, qvalues []float64, original []bool, r float64, logger *slog.Logger) ([]float64, error) {
	if err := checkLengths(len(scores), len(qvalues), len(original)); err != nil {
		return nil, err
	}
	order := confidenceOrder(qvalues, scores)
	warnIfUnsorted(logger, order, scores)

	efdr := make([]float64, len(scores))
	factor := 1 + 1/r
	var nTargets, nEntrap int
	for _, idx := range order {
		if original[idx] {
			nTargets++
		} else {
			nEntrap++
		}
		v := float64(nEntrap) * factor / float64(nTargets+nEntrap)
		if v > 1 {
			v = 1
		}
		efdr[idx] = v
	}
	return efdr, nil
}

// Classification of an entrapment entry against a score threshold s.
const (
	entrapBelow   = iota // neither branch holds; counts towards the entrapment total only
	entrapOnly           // entrapment clears the threshold, its paired original does not
	entrapWinPair        // entrapment beats its paired original, and that original clears the threshold
)

// classifyEntrapment places an accepted entrapment (score e, paired original
// score o) relative to threshold s. The two guarded cases are mutually
// exclusive and their order is authoritative: earlier drafts that used two
// independent conditionals double-counted entries. An unpaired entrapment
// (o == UnpairedScore) never matches either case; it counts towards the
// entrapment total only.
func classifyEntrapment(e, o, s float64) int {
	if o == UnpairedScore {
		return entrapBelow
	}
	switch {
	case e >= s && s > o:
		return entrapOnly
	case e > o && o >= s:
		return entrapWinPair
	default:
		return entrapBelow
	}
}

// PairedEFDR computes the pair-aware empirical FDR estimator. For every
// confidence threshold it classifies each accepted entrapment against its
// paired original's score and evaluates
//
//	(Nε + Nεsτ + 2·Nετs) / (Nτ + Nε)
//
// capped at 1, where Nεsτ counts entrapments whose pair misses the threshold
// and Nετs counts entrapments that beat a pair which itself clears it.
// The scan is quadratic in the partition size. The ratio r is accepted for
// interface symmetry with CombinedEFDR; the paired estimator does not scale
// by it. The result is not monotonized; callers apply Monotonize over the
// same confidence order.
func PairedEFDR(scores, complements, qvalues []float64, original []bool, r float64, logger *slog.Logger) ([]float64, error) {
	if err := checkLengths(len(scores), len(complements), len(qvalues), len(original)); err != nil {
		return nil, err
	}
	order := confidenceOrder(qvalues, scores)
	warnIfUnsorted(logger, order, scores)

	efdr := make([]float64, len(scores))
	for i, idx := range order {
		s := scores[idx]
		var nTargets, nEntrap, nEntrapOnly, nEntrapWinPair int
		for _, jdx := range order[:i+1] {
			if original[jdx] {
				nTargets++
				continue
			}
			nEntrap++
			switch classifyEntrapment(scores[jdx], complements[jdx], s) {
			case entrapOnly:
				nEntrapOnly++
			case entrapWinPair:
				nEntrapWinPair++
			}
		}
		if nTargets+nEntrap == 0 {
			continue
		}
		v := float64(nEntrap+nEntrapOnly+2*nEntrapWinPair) / float64(nTargets+nEntrap)
		if v > 1 {
			v = 1
		}
		efdr[idx] = v
	}
	return efdr, nil
}
