// Package tabular provides encoding- and delimiter-tolerant access to the
// TSV/CSV reports produced by proteomics search engines and library tools.
package tabular

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// NewReader wraps r in a csv.Reader. The character encoding is sniffed from
// the leading bytes (UTF-8, UTF-16 and BOM-prefixed vendor exports all
// work) and the field delimiter is taken from the complete first line: a
// tab if one occurs there, a comma otherwise.
func NewReader(r io.Reader) (*csv.Reader, error) {
	decoded, err := charset.NewReader(r, "")
	if err != nil {
		return nil, fmt.Errorf("detect character encoding: %w", err)
	}
	br := bufio.NewReader(decoded)
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	cr := csv.NewReader(io.MultiReader(strings.NewReader(line), br))
	if strings.ContainsRune(line, '\t') {
		cr.Comma = '\t'
	}
	cr.TrimLeadingSpace = true
	return cr, nil
}

// Header maps lower-cased column names to their positions in a record.
type Header map[string]int

// ReadHeader consumes the first record and indexes its column names.
func ReadHeader(cr *csv.Reader) (Header, error) {
	rec, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := make(Header, len(rec))
	for i, name := range rec {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h, nil
}

// Column returns the position of a named column, case-insensitively.
func (h Header) Column(name string) (int, error) {
	i, ok := h[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("missing column %q", name)
	}
	return i, nil
}

// OptionalColumn returns the position of a named column, or -1 when the
// input does not carry it.
func (h Header) OptionalColumn(name string) int {
	i, ok := h[strings.ToLower(name)]
	if !ok {
		return -1
	}
	return i
}
