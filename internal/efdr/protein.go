package efdr

// proteinKey identifies one protein competition within a file and channel,
// keeping target and decoy sides separate.
type proteinKey struct {
	fileID  string
	channel int
	protein string
	decoy   bool
}

// RollupProteins reduces entries to the best-scoring row per protein within
// each file and channel. The returned rows are copies in first-seen order;
// feeding them through Estimator.Process yields protein-level q-values and
// EFDR estimates from the very same engine. Entries without a protein id
// cannot be rolled up and are dropped.
func RollupProteins(entries []Entry) []Entry {
	best := make(map[proteinKey]int)
	var keys []proteinKey
	for i := range entries {
		if entries[i].ProteinID == "" {
			continue
		}
		k := proteinKey{
			fileID:  entries[i].FileID,
			channel: entries[i].ChannelID,
			protein: entries[i].ProteinID,
			decoy:   entries[i].Decoy,
		}
		j, ok := best[k]
		if !ok {
			best[k] = i
			keys = append(keys, k)
			continue
		}
		if entries[i].Score > entries[j].Score {
			best[k] = i
		}
	}
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, entries[best[k]])
	}
	return out
}
