// Package library reads entrapment pair libraries from delimited text
// files. A library row names a peptide, its charge, whether it is an
// original (entrapment group 0) or an injected entrapment (group > 0), and
// the pair id linking the two.
package library

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mzentrap/mzentrap/internal/efdr"
	"github.com/mzentrap/mzentrap/internal/tabular"
)

// Columns names the library columns to read. Empty fields select the
// defaults.
type Columns struct {
	Sequence        string
	Charge          string
	EntrapmentGroup string
	PairID          string
}

func (c *Columns) applyDefaults() {
	if c.Sequence == "" {
		c.Sequence = "sequence"
	}
	if c.Charge == "" {
		c.Charge = "charge"
	}
	if c.EntrapmentGroup == "" {
		c.EntrapmentGroup = "entrapment_group"
	}
	if c.PairID == "" {
		c.PairID = "pair_id"
	}
}

// Read parses library pair records from TSV or CSV content. Malformed rows
// are fatal and reported with their line number.
func Read(r io.Reader, cols Columns) ([]efdr.PairRecord, error) {
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
	groupCol, err := header.Column(cols.EntrapmentGroup)
	if err != nil {
		return nil, err
	}
	pairCol, err := header.Column(cols.PairID)
	if err != nil {
		return nil, err
	}

	var records []efdr.PairRecord
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
			return nil, fmt.Errorf("library line %d: charge: %w", line, err)
		}
		group, err := strconv.Atoi(strings.TrimSpace(rec[groupCol]))
		if err != nil {
			return nil, fmt.Errorf("library line %d: entrapment group: %w", line, err)
		}
		pairID, err := strconv.Atoi(strings.TrimSpace(rec[pairCol]))
		if err != nil {
			return nil, fmt.Errorf("library line %d: pair id: %w", line, err)
		}
		records = append(records, efdr.PairRecord{
			Sequence:        strings.TrimSpace(rec[seqCol]),
			Charge:          charge,
			EntrapmentGroup: group,
			PairID:          pairID,
		})
	}
	return records, nil
}

// ReadFile reads library pair records from a file.
func ReadFile(path string, cols Columns) ([]efdr.PairRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := Read(f, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
