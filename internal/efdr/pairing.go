package efdr

import "fmt"

type pairInfo struct {
	pairID   int
	original bool
}

// LibraryIndex is the (sequence, charge) -> pairing lookup table. It is
// built once from the library records and read-only afterwards, so it may be
// shared freely between concurrent per-file workers.
type LibraryIndex struct {
	pairs map[PeptideKey]pairInfo
}

// BuildLibraryIndex indexes library pair records by peptide key in a single
// pass. If the library contains duplicate keys the first occurrence wins;
// later duplicates are silently ignored.
func BuildLibraryIndex(records []PairRecord) *LibraryIndex {
	idx := &LibraryIndex{pairs: make(map[PeptideKey]pairInfo, len(records))}
	for _, r := range records {
		key := PeptideKey{Sequence: r.Sequence, Charge: r.Charge}
		if _, ok := idx.pairs[key]; ok {
			continue
		}
		idx.pairs[key] = pairInfo{pairID: r.PairID, original: r.EntrapmentGroup == 0}
	}
	return idx
}

// Len returns the number of distinct peptide keys in the index.
func (x *LibraryIndex) Len() int { return len(x.pairs) }

// Lookup reports the pair id and originality of a peptide key.
func (x *LibraryIndex) Lookup(key PeptideKey) (pairID int, original bool, ok bool) {
	info, ok := x.pairs[key]
	return info.pairID, info.original, ok
}

// AssignLabels stamps every entry with its pair id and original/entrapment
// flag from the library. The first entry whose key is absent from the
// library fails the whole step with ErrMissingLibraryEntry.
func (x *LibraryIndex) AssignLabels(entries []Entry) error {
	for i := range entries {
		key := entries[i].Key()
		info, ok := x.pairs[key]
		if !ok {
			return fmt.Errorf("%w: %s charge %d", ErrMissingLibraryEntry, key.Sequence, key.Charge)
		}
		entries[i].PairID = info.pairID
		entries[i].Original = info.original
	}
	return nil
}

// scopeKey identifies one pair competition within a single file. The same
// pair in another channel, or in another file, is a different competition.
type scopeKey struct {
	channel int
	pairID  int
}

type scopeScores struct {
	original   float64
	entrapment float64
}

// ResolveComplementScores fills in ComplementScore for every entry: the
// score of the other member of its pair within the same file and channel,
// or UnpairedScore if that member was not identified there.
// AssignLabels must have run first.
func ResolveComplementScores(entries []Entry) {
	for _, part := range partitionByFile(entries) {
		resolveComplementScores(entries, part)
	}
}

// resolveComplementScores handles one file partition. The scope map is
// freshly built per call and discarded afterwards, so pairing state can
// never leak between files.
func resolveComplementScores(entries []Entry, part []int) {
	scopes := make(map[scopeKey]*scopeScores)
	for _, i := range part {
		k := scopeKey{channel: entries[i].ChannelID, pairID: entries[i].PairID}
		s, ok := scopes[k]
		if !ok {
			s = &scopeScores{original: UnpairedScore, entrapment: UnpairedScore}
			scopes[k] = s
		}
		// When several entries fill the same slot, the last one
		// processed wins.
		if entries[i].Original {
			s.original = entries[i].Score
		} else {
			s.entrapment = entries[i].Score
		}
	}
	for _, i := range part {
		s := scopes[scopeKey{channel: entries[i].ChannelID, pairID: entries[i].PairID}]
		if entries[i].Original {
			entries[i].ComplementScore = s.entrapment
		} else {
			entries[i].ComplementScore = s.original
		}
	}
}
