package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mzentrap/mzentrap/internal/efdr"
	"github.com/mzentrap/mzentrap/internal/tabular"
)

// outputColumns is the fixed layout of annotated reports. ReadAnnotated
// parses this layout back.
var outputColumns = []string{
	"sequence", "charge", "score", "decoy", "file", "channel", "protein",
	"is_original", "pair_id", "complement_score",
	"local_qvalue", "global_qvalue", "combined_efdr", "paired_efdr",
}

// Write writes annotated entries as tab-separated text, one row per entry,
// in input order.
func Write(w io.Writer, entries []efdr.Entry) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(outputColumns); err != nil {
		return err
	}
	for i := range entries {
		e := &entries[i]
		rec := []string{
			e.Sequence,
			strconv.Itoa(e.Charge),
			formatFloat(e.Score),
			strconv.FormatBool(e.Decoy),
			e.FileID,
			strconv.Itoa(e.ChannelID),
			e.ProteinID,
			strconv.FormatBool(e.Original),
			strconv.Itoa(e.PairID),
			formatFloat(e.ComplementScore),
			formatFloat(e.LocalQValue),
			formatFloat(e.GlobalQValue),
			formatFloat(e.CombinedEFDR),
			formatFloat(e.PairedEFDR),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes annotated entries to a file.
func WriteFile(path string, entries []efdr.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, entries)
}

// ReadAnnotated parses a report previously written by Write, derived
// columns included.
func ReadAnnotated(r io.Reader) ([]efdr.Entry, error) {
	cr, err := tabular.NewReader(r)
	if err != nil {
		return nil, err
	}
	header, err := tabular.ReadHeader(cr)
	if err != nil {
		return nil, err
	}
	pos := make([]int, len(outputColumns))
	for n, name := range outputColumns {
		pos[n], err = header.Column(name)
		if err != nil {
			return nil, err
		}
	}

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
		e, err := parseAnnotated(rec, pos)
		if err != nil {
			return nil, fmt.Errorf("annotated report line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ReadAnnotatedFile reads an annotated report from a file.
func ReadAnnotatedFile(path string) ([]efdr.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	entries, err := ReadAnnotated(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

func parseAnnotated(rec []string, pos []int) (efdr.Entry, error) {
	var e efdr.Entry
	var err error
	cell := func(n int) string { return strings.TrimSpace(rec[pos[n]]) }

	e.Sequence = cell(0)
	if e.Charge, err = strconv.Atoi(cell(1)); err != nil {
		return e, fmt.Errorf("charge: %w", err)
	}
	if e.Score, err = strconv.ParseFloat(cell(2), 64); err != nil {
		return e, fmt.Errorf("score: %w", err)
	}
	if e.Decoy, err = parseBoolCell(cell(3)); err != nil {
		return e, fmt.Errorf("decoy: %w", err)
	}
	e.FileID = cell(4)
	if e.ChannelID, err = strconv.Atoi(cell(5)); err != nil {
		return e, fmt.Errorf("channel: %w", err)
	}
	e.ProteinID = cell(6)
	if e.Original, err = parseBoolCell(cell(7)); err != nil {
		return e, fmt.Errorf("is_original: %w", err)
	}
	if e.PairID, err = strconv.Atoi(cell(8)); err != nil {
		return e, fmt.Errorf("pair_id: %w", err)
	}
	if e.ComplementScore, err = strconv.ParseFloat(cell(9), 64); err != nil {
		return e, fmt.Errorf("complement_score: %w", err)
	}
	if e.LocalQValue, err = strconv.ParseFloat(cell(10), 64); err != nil {
		return e, fmt.Errorf("local_qvalue: %w", err)
	}
	if e.GlobalQValue, err = strconv.ParseFloat(cell(11), 64); err != nil {
		return e, fmt.Errorf("global_qvalue: %w", err)
	}
	if e.CombinedEFDR, err = strconv.ParseFloat(cell(12), 64); err != nil {
		return e, fmt.Errorf("combined_efdr: %w", err)
	}
	if e.PairedEFDR, err = strconv.ParseFloat(cell(13), 64); err != nil {
		return e, fmt.Errorf("paired_efdr: %w", err)
	}
	return e, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
