package efdr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRollupProteins(t *testing.T) {
	entries := []Entry{
		{Sequence: "AAA", Charge: 2, Score: 10, FileID: "run1", ProteinID: "P1"},
		{Sequence: "BBB", Charge: 2, Score: 12, FileID: "run1", ProteinID: "P1"},
		{Sequence: "CCC", Charge: 2, Score: 7, FileID: "run1", ProteinID: "P2"},
		{Sequence: "AAA", Charge: 2, Score: 9, FileID: "run2", ProteinID: "P1"},
	}
	got := RollupProteins(entries)
	want := []Entry{
		{Sequence: "BBB", Charge: 2, Score: 12, FileID: "run1", ProteinID: "P1"},
		{Sequence: "CCC", Charge: 2, Score: 7, FileID: "run1", ProteinID: "P2"},
		{Sequence: "AAA", Charge: 2, Score: 9, FileID: "run2", ProteinID: "P1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rollup mismatch (-want +got):\n%s", diff)
	}
}

func TestRollupProteinsSeparatesDecoyAndChannel(t *testing.T) {
	entries := []Entry{
		{Sequence: "AAA", Charge: 2, Score: 10, FileID: "run1", ProteinID: "P1"},
		{Sequence: "AAA", Charge: 2, Score: 11, FileID: "run1", ProteinID: "P1", Decoy: true},
		{Sequence: "AAA", Charge: 2, Score: 12, FileID: "run1", ChannelID: 2, ProteinID: "P1"},
	}
	got := RollupProteins(entries)
	if len(got) != 3 {
		t.Errorf("rollup collapsed distinct competitions: got %d rows, want 3", len(got))
	}
}

func TestRollupProteinsDropsUnannotated(t *testing.T) {
	entries := []Entry{
		{Sequence: "AAA", Charge: 2, Score: 10},
		{Sequence: "BBB", Charge: 2, Score: 9, ProteinID: "P1"},
	}
	got := RollupProteins(entries)
	if len(got) != 1 || got[0].ProteinID != "P1" {
		t.Errorf("unexpected rollup rows: %+v", got)
	}
}
