// Package report reads identification reports into entries and writes the
// annotated results back out as tab-separated text.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mzentrap/mzentrap/internal/efdr"
	"github.com/mzentrap/mzentrap/internal/tabular"
)

// Columns names the report columns to read. Empty fields select the
// defaults. Sequence, charge and score are required in the input; the
// remaining columns are optional and default to their zero values.
type Columns struct {
	Sequence string
	Charge   string
	Score    string
	Decoy    string
	File     string
	Channel  string
	Protein  string
}

func (c *Columns) applyDefaults() {
	if c.Sequence == "" {
		c.Sequence = "sequence"
	}
	if c.Charge == "" {
		c.Charge = "charge"
	}
	if c.Score == "" {
		c.Score = "score"
	}
	if c.Decoy == "" {
		c.Decoy = "decoy"
	}
	if c.File == "" {
		c.File = "file"
	}
	if c.Channel == "" {
		c.Channel = "channel"
	}
	if c.Protein == "" {
		c.Protein = "protein"
	}
}

// Read parses identification entries from TSV or CSV content.
func Read(r io.Reader, cols Columns) ([]efdr.Entry, error) {
	cols.applyDefaults()
	cr, err := tabular.NewReader(r)
	if err != nil {
		return nil, err
	}
	header, err := tabular.ReadHeader(cr)
	if err != nil {
		return nil, err
	}
	seqCol, err := header.Column(cols.Sequence)
	if err != nil {
		return nil, err
	}
	chargeCol, err := header.Column(cols.Charge)
	if err != nil {
		return nil, err
	}
	scoreCol, err := header.Column(cols.Score)
	if err != nil {
		return nil, err
	}
	decoyCol := header.OptionalColumn(cols.Decoy)
	fileCol := header.OptionalColumn(cols.File)
	channelCol := header.OptionalColumn(cols.Channel)
	proteinCol := header.OptionalColumn(cols.Protein)

	var entries []efdr.Entry
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		charge, err := strconv.Atoi(strings.TrimSpace(rec[chargeCol]))
		if err != nil {
			return nil, fmt.Errorf("report line %d: charge: %w", line, err)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(rec[scoreCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("report line %d: score: %w", line, err)
		}
		entry := efdr.Entry{
			Sequence:        strings.TrimSpace(rec[seqCol]),
			Charge:          charge,
			Score:           score,
			ComplementScore: efdr.UnpairedScore,
		}
		if decoyCol >= 0 {
			entry.Decoy, err = parseBoolCell(rec[decoyCol])
			if err != nil {
				return nil, fmt.Errorf("report line %d: decoy: %w", line, err)
			}
		}
		if fileCol >= 0 {
			entry.FileID = strings.TrimSpace(rec[fileCol])
		}
		if channelCol >= 0 {
			cell := strings.TrimSpace(rec[channelCol])
			if cell != "" {
				entry.ChannelID, err = strconv.Atoi(cell)
				if err != nil {
					return nil, fmt.Errorf("report line %d: channel: %w", line, err)
				}
			}
		}
		if proteinCol >= 0 {
			entry.ProteinID = strings.TrimSpace(rec[proteinCol])
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ReadFile reads identification entries from a file.
func ReadFile(path string, cols Columns) ([]efdr.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	entries, err := Read(f, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// parseBoolCell accepts the boolean spellings seen in search engine output.
// An empty cell means false.
func parseBoolCell(cell string) (bool, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(strings.ToLower(s))
}
