// Package mzidentml extracts peptide-spectrum matches from mzIdentML files
// so they can be fed through the entrapment FDR engine.
package mzidentml

import (
	"encoding/xml"
	"errors"
)

// MzIdentML holds only the part of mzIdentML files in which we are
// interested: peptides, their evidences (for the decoy flag and protein
// reference) and the spectrum identifications with their scores.
type MzIdentML struct {
	pepIdx  map[string]int
	evidIdx map[string]int
	content mzIdentMLContent
}

var (
	ErrNoScore      = errors.New("mzIdentML: identification carries no matching score cvParam")
	ErrUnknownRef   = errors.New("mzIdentML: dangling peptide or evidence reference")
	ErrInvalidScore = errors.New("mzIdentML: score value is not a number")
)

type mzIdentMLContent struct {
	XMLName                      xml.Name                       `xml:"MzIdentML"`
	Peptide                      []peptide                      `xml:"SequenceCollection>Peptide"`
	PeptideEvidence              []peptideEvidence              `xml:"SequenceCollection>PeptideEvidence"`
	SpectrumIdentificationResult []spectrumIdentificationResult `xml:"DataCollection>AnalysisData>SpectrumIdentificationList>SpectrumIdentificationResult"`
}

type peptide struct {
	ID              string `xml:"id,attr"`
	PeptideSequence string
}

type peptideEvidence struct {
	ID            string `xml:"id,attr"`
	PeptideRef    string `xml:"peptide_ref,attr"`
	DBSequenceRef string `xml:"dBSequence_ref,attr"`
	IsDecoy       bool   `xml:"isDecoy,attr"`
}

type spectrumIdentificationResult struct {
	SpectrumID                 string `xml:"spectrumID,attr"`
	SpectrumIdentificationItem []spectrumIdentificationItem
}

type spectrumIdentificationItem struct {
	ChargeState        int                  `xml:"chargeState,attr"`
	PeptideRef         string               `xml:"peptide_ref,attr"`
	PeptideEvidenceRef []peptideEvidenceRef `xml:"PeptideEvidenceRef"`
	CvPar              []cvParam            `xml:"cvParam"`
}

type peptideEvidenceRef struct {
	PeptideEvidenceRef string `xml:"peptideEvidence_ref,attr"`
}

type cvParam struct {
	Accession string `xml:"accession,attr"`
	Name      string `xml:"name,attr"`
	Value     string `xml:"value,attr"`
}
