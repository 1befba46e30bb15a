// Package efdr estimates the empirical false discovery rate of ranked
// peptide identifications from entrapment experiments. Each real ("original")
// library peptide is paired with a deliberately injected entrapment peptide;
// cross-checking every identification against its paired counterpart's score
// yields an FDR estimate that is independent of the classical target-decoy
// q-value computed alongside it.
package efdr

// UnpairedScore is the sentinel complement score for an entry whose pairing
// counterpart was not identified in the same file and channel.
const UnpairedScore = float64(-1)

// Entry is one identification (e.g. a peptide-spectrum match). The input
// fields come from the loader; the derived fields are filled in by
// Estimator.Process. Entries are annotated in place and never reordered.
type Entry struct {
	Sequence  string
	Charge    int
	Score     float64 // higher is better
	Decoy     bool
	FileID    string
	ChannelID int
	ProteinID string

	// Derived fields, zero until Estimator.Process has run.
	Original        bool
	PairID          int
	ComplementScore float64
	LocalQValue     float64
	GlobalQValue    float64
	CombinedEFDR    float64
	PairedEFDR      float64
}

// PeptideKey joins an identification to exactly one library pair record.
type PeptideKey struct {
	Sequence string
	Charge   int
}

// Key returns the entry's library lookup key.
func (e *Entry) Key() PeptideKey {
	return PeptideKey{Sequence: e.Sequence, Charge: e.Charge}
}

// PairRecord is one row of the entrapment library: the source of truth for
// which peptides are original, which are entrapment, and how they pair up.
type PairRecord struct {
	Sequence        string
	Charge          int
	EntrapmentGroup int // 0 = original, >0 = entrapment
	PairID          int
}

// partitionByFile groups entry indices by FileID, in first-seen file order.
// Entries without a file id end up in a single partition.
func partitionByFile(entries []Entry) [][]int {
	var order []string
	parts := make(map[string][]int)
	for i := range entries {
		id := entries[i].FileID
		if _, ok := parts[id]; !ok {
			order = append(order, id)
		}
		parts[id] = append(parts[id], i)
	}
	out := make([][]int, 0, len(order))
	for _, id := range order {
		out = append(out, parts[id])
	}
	return out
}
