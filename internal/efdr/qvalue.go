package efdr

import "sort"

// qvalueOrder sorts indices by score descending; on equal scores targets
// come before decoys.
func qvalueOrder(scores []float64, decoy []bool) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if scores[i] != scores[j] {
			return scores[i] > scores[j]
		}
		return !decoy[i] && decoy[j]
	})
	return order
}

// rawQValues walks the sorted order with running target and decoy counts,
// assigning q = decoys/targets at each position. A scope without any target
// yields 0 by convention.
func rawQValues(scores []float64, decoy []bool, order []int) []float64 {
	q := make([]float64, len(scores))
	var nTargets, nDecoys int
	for _, idx := range order {
		if decoy[idx] {
			nDecoys++
		} else {
			nTargets++
		}
		if nTargets > 0 {
			q[idx] = float64(nDecoys) / float64(nTargets)
		}
	}
	return q
}

// ComputeQValues computes target-decoy q-values for one scope. The result is
// aligned with the input order and already monotonized along worsening score.
func ComputeQValues(scores []float64, decoy []bool) ([]float64, error) {
	if err := checkLengths(len(scores), len(decoy)); err != nil {
		return nil, err
	}
	order := qvalueOrder(scores, decoy)
	q := rawQValues(scores, decoy, order)
	monotonizeOrdered(q, order)
	return q, nil
}

// precursorKey groups all occurrences of one precursor on one side of the
// target/decoy competition.
type precursorKey struct {
	decoy    bool
	sequence string
	charge   int
}

// ComputeGlobalQValues computes q-values on the best-scoring entry per
// unique precursor and broadcasts each result back to every entry sharing
// the precursor key.
func ComputeGlobalQValues(entries []Entry) error {
	part := make([]int, len(entries))
	for i := range part {
		part[i] = i
	}
	return computeGlobalQValues(entries, part)
}

func computeGlobalQValues(entries []Entry, part []int) error {
	best := make(map[precursorKey]int)
	var keys []precursorKey
	for _, i := range part {
		k := precursorKey{decoy: entries[i].Decoy, sequence: entries[i].Sequence, charge: entries[i].Charge}
		j, ok := best[k]
		if !ok {
			best[k] = i
			keys = append(keys, k)
		} else if entries[i].Score > entries[j].Score {
			best[k] = i
		}
	}
	scores := make([]float64, len(keys))
	decoys := make([]bool, len(keys))
	for n, k := range keys {
		scores[n] = entries[best[k]].Score
		decoys[n] = entries[best[k]].Decoy
	}
	q, err := ComputeQValues(scores, decoys)
	if err != nil {
		return err
	}
	qByKey := make(map[precursorKey]float64, len(keys))
	for n, k := range keys {
		qByKey[k] = q[n]
	}
	for _, i := range part {
		entries[i].GlobalQValue = qByKey[precursorKey{decoy: entries[i].Decoy, sequence: entries[i].Sequence, charge: entries[i].Charge}]
	}
	return nil
}

// ComputeQValuesPerFile computes local and global q-values independently for
// each file partition. Entries without a file id form one partition.
func ComputeQValuesPerFile(entries []Entry) error {
	for _, part := range partitionByFile(entries) {
		if err := computeQValuesFile(entries, part); err != nil {
			return err
		}
	}
	return nil
}

func computeQValuesFile(entries []Entry, part []int) error {
	scores := make([]float64, len(part))
	decoys := make([]bool, len(part))
	for n, i := range part {
		scores[n] = entries[i].Score
		decoys[n] = entries[i].Decoy
	}
	q, err := ComputeQValues(scores, decoys)
	if err != nil {
		return err
	}
	for n, i := range part {
		entries[i].LocalQValue = q[n]
	}
	return computeGlobalQValues(entries, part)
}
