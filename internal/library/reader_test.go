package library

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mzentrap/mzentrap/internal/efdr"
)

const libTSV = `sequence	charge	entrapment_group	pair_id
ORIGA	2	0	1
TRAPA	2	1	1
ORIGB	3	0	2
`

func TestRead(t *testing.T) {
	got, err := Read(strings.NewReader(libTSV), Columns{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []efdr.PairRecord{
		{Sequence: "ORIGA", Charge: 2, EntrapmentGroup: 0, PairID: 1},
		{Sequence: "TRAPA", Charge: 2, EntrapmentGroup: 1, PairID: 1},
		{Sequence: "ORIGB", Charge: 3, EntrapmentGroup: 0, PairID: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCustomColumns(t *testing.T) {
	in := "Peptide,z,Group,Pair\nORIGA,2,0,1\n"
	got, err := Read(strings.NewReader(in), Columns{
		Sequence:        "Peptide",
		Charge:          "z",
		EntrapmentGroup: "Group",
		PairID:          "Pair",
	})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 1 || got[0].Sequence != "ORIGA" || got[0].PairID != 1 {
		t.Errorf("unexpected records: %+v", got)
	}
}

func TestReadMissingColumn(t *testing.T) {
	in := "sequence\tcharge\nORIGA\t2\n"
	if _, err := Read(strings.NewReader(in), Columns{}); err == nil {
		t.Error("expected error for missing pair columns")
	}
}

func TestReadBadCharge(t *testing.T) {
	in := "sequence\tcharge\tentrapment_group\tpair_id\nORIGA\ttwo\t0\t1\n"
	_, err := Read(strings.NewReader(in), Columns{})
	if err == nil {
		t.Fatal("expected error for non-numeric charge")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error lacks line number: %v", err)
	}
}
