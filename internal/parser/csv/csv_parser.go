// Package csv parses comma-separated source files into typed tables. It reads
// the header row, optionally normalizes header names to canonical snake_case,
// and infers a scalar kind per column from the data so that downstream
// transforms receive typed values rather than raw strings.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"dataforge/internal/table"
)

// Options configures the CSV parser behavior. All fields are optional;
// sensible defaults are applied when a field is zero.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// NormalizeHeaders folds header names to canonical snake_case
	// (diacritics stripped, lowercased). See NormalizeHeader.
	NormalizeHeaders bool

	// HeaderMap maps source header names to canonical keys. Applied after
	// NormalizeHeaders.
	HeaderMap map[string]string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse reads the entire CSV stream and returns a typed table with the given
// name. The first row is the header; remaining rows become table rows with
// per-column kinds inferred from the data (see InferColumns).
//
// Rows with a field count different from the header are skipped (soft-fail)
// and counted in the returned skip total.
func (p *Parser) Parse(name string, r io.Reader) (*table.Table, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1 // enforce width ourselves, soft-fail
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = p.opt.TrimSpace

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	header = StripHeaderBOM(header)
	for i, h := range header {
		h = strings.TrimSpace(h)
		if p.opt.NormalizeHeaders {
			h = NormalizeHeader(h)
		}
		if p.opt.HeaderMap != nil {
			if mapped, ok := p.opt.HeaderMap[h]; ok && mapped != "" {
				h = mapped
			}
		}
		header[i] = h
	}

	var (
		cells   [][]string
		skipped int
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("csv read: %w", err)
		}
		if len(rec) != len(header) {
			skipped++
			continue
		}
		row := make([]string, len(rec))
		for i, v := range rec {
			if p.opt.TrimSpace {
				v = strings.TrimSpace(v)
			}
			row[i] = v
		}
		cells = append(cells, row)
	}

	return InferColumns(name, header, cells), skipped, nil
}
