package mzidentml

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mzentrap/mzentrap/internal/efdr"
)

const testMzid = `<?xml version="1.0" encoding="UTF-8"?>
<MzIdentML xmlns="http://psidev.info/psi/pi/mzIdentML/1.1">
  <SequenceCollection>
    <Peptide id="pep1"><PeptideSequence>ORIGA</PeptideSequence></Peptide>
    <Peptide id="pep2"><PeptideSequence>TRAPA</PeptideSequence></Peptide>
    <PeptideEvidence id="ev1" peptide_ref="pep1" dBSequence_ref="P1" isDecoy="false"/>
    <PeptideEvidence id="ev2" peptide_ref="pep2" dBSequence_ref="P2" isDecoy="true"/>
  </SequenceCollection>
  <DataCollection>
    <AnalysisData>
      <SpectrumIdentificationList>
        <SpectrumIdentificationResult spectrumID="scan=1">
          <SpectrumIdentificationItem chargeState="2" peptide_ref="pep1">
            <PeptideEvidenceRef peptideEvidence_ref="ev1"/>
            <cvParam accession="MS:1002257" name="Comet:expectation value" value="0.001"/>
          </SpectrumIdentificationItem>
        </SpectrumIdentificationResult>
        <SpectrumIdentificationResult spectrumID="scan=2">
          <SpectrumIdentificationItem chargeState="3" peptide_ref="pep2">
            <PeptideEvidenceRef peptideEvidence_ref="ev2"/>
            <cvParam accession="MS:1002257" name="Comet:expectation value" value="0.5"/>
          </SpectrumIdentificationItem>
        </SpectrumIdentificationResult>
      </SpectrumIdentificationList>
    </AnalysisData>
  </DataCollection>
</MzIdentML>`

func TestReadEntries(t *testing.T) {
	m, err := Read(strings.NewReader(testMzid))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n := m.NumIdents(); n != 2 {
		t.Fatalf("NumIdents = %d, want 2", n)
	}
	got, err := m.Entries(ScoreSpec{Accession: "MS:1002257", LowerIsBetter: true}, "run1")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	want := []efdr.Entry{
		{Sequence: "ORIGA", Charge: 2, Score: -0.001, FileID: "run1", ProteinID: "P1", ComplementScore: efdr.UnpairedScore},
		{Sequence: "TRAPA", Charge: 3, Score: -0.5, Decoy: true, FileID: "run1", ProteinID: "P2", ComplementScore: efdr.UnpairedScore},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestEntriesScoreByName(t *testing.T) {
	m, err := Read(strings.NewReader(testMzid))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	got, err := m.Entries(ScoreSpec{Accession: "Comet:expectation value"}, "run1")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if got[0].Score != 0.001 {
		t.Errorf("score = %v, want 0.001 (no inversion)", got[0].Score)
	}
}

func TestEntriesMissingScore(t *testing.T) {
	m, err := Read(strings.NewReader(testMzid))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	_, err = m.Entries(ScoreSpec{Accession: "MS:9999999"}, "run1")
	if !errors.Is(err, ErrNoScore) {
		t.Errorf("expected ErrNoScore, got %v", err)
	}
}
