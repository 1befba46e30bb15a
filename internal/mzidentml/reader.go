package mzidentml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html/charset"

	"github.com/mzentrap/mzentrap/internal/efdr"
)

// Read reads mzIdentML content from an io.Reader.
func Read(reader io.Reader) (MzIdentML, error) {
	var m MzIdentML
	d := xml.NewDecoder(reader)
	d.CharsetReader = charset.NewReaderLabel
	if err := d.Decode(&m.content); err != nil {
		return m, err
	}
	m.buildIndexes()
	return m, nil
}

func (m *MzIdentML) buildIndexes() {
	m.pepIdx = make(map[string]int, len(m.content.Peptide))
	for i, p := range m.content.Peptide {
		m.pepIdx[p.ID] = i
	}
	m.evidIdx = make(map[string]int, len(m.content.PeptideEvidence))
	for i, e := range m.content.PeptideEvidence {
		m.evidIdx[e.ID] = i
	}
}

// NumIdents returns the total number of identifications in the file. Note
// that for some spectra, multiple identifications may be present.
func (m *MzIdentML) NumIdents() int {
	n := 0
	for i := range m.content.SpectrumIdentificationResult {
		n += len(m.content.SpectrumIdentificationResult[i].SpectrumIdentificationItem)
	}
	return n
}

// ScoreSpec selects which cvParam carries the match score. The accession is
// matched first, then the name, so either form works. Expectation values and
// other lower-is-better scores are negated, making higher always better
// downstream.
type ScoreSpec struct {
	Accession     string
	LowerIsBetter bool
}

// Entries flattens the identifications into engine entries. fileID is
// stamped on every entry; an mzIdentML file holds one acquisition. The decoy
// flag is set when every peptide evidence of an identification is a decoy;
// the protein id is taken from the first evidence.
func (m *MzIdentML) Entries(score ScoreSpec, fileID string) ([]efdr.Entry, error) {
	entries := make([]efdr.Entry, 0, m.NumIdents())
	for i := range m.content.SpectrumIdentificationResult {
		result := &m.content.SpectrumIdentificationResult[i]
		for j := range result.SpectrumIdentificationItem {
			item := &result.SpectrumIdentificationItem[j]
			entry, err := m.itemEntry(item, score, fileID)
			if err != nil {
				return nil, fmt.Errorf("spectrum %s: %w", result.SpectrumID, err)
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (m *MzIdentML) itemEntry(item *spectrumIdentificationItem, score ScoreSpec, fileID string) (efdr.Entry, error) {
	var entry efdr.Entry

	pepIdx, ok := m.pepIdx[item.PeptideRef]
	if !ok {
		return entry, fmt.Errorf("%w: peptide %q", ErrUnknownRef, item.PeptideRef)
	}
	entry.Sequence = m.content.Peptide[pepIdx].PeptideSequence
	entry.Charge = item.ChargeState
	entry.FileID = fileID
	entry.ComplementScore = efdr.UnpairedScore

	value, found := "", false
	for _, cv := range item.CvPar {
		if cv.Accession == score.Accession || cv.Name == score.Accession {
			value = cv.Value
			found = true
			break
		}
	}
	if !found {
		return entry, fmt.Errorf("%w: %s", ErrNoScore, score.Accession)
	}
	s, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return entry, fmt.Errorf("%w: %q", ErrInvalidScore, value)
	}
	if score.LowerIsBetter {
		s = -s
	}
	entry.Score = s

	// An identification counts as decoy only when all of its evidences
	// are decoy; a single target evidence makes it a target.
	allDecoy := len(item.PeptideEvidenceRef) > 0
	for n, ref := range item.PeptideEvidenceRef {
		evidIdx, ok := m.evidIdx[ref.PeptideEvidenceRef]
		if !ok {
			return entry, fmt.Errorf("%w: evidence %q", ErrUnknownRef, ref.PeptideEvidenceRef)
		}
		evid := &m.content.PeptideEvidence[evidIdx]
		if !evid.IsDecoy {
			allDecoy = false
		}
		if n == 0 {
			entry.ProteinID = evid.DBSequenceRef
		}
	}
	entry.Decoy = allDecoy
	return entry, nil
}
