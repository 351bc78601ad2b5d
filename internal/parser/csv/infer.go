package csv

import (
	"strconv"

	"dataforge/internal/table"
)

// InferColumns builds a typed table from raw string cells. Per column, the
// narrowest kind that fits every non-empty cell wins: Int, then Float, then
// Text. Empty cells become nulls. Timestamp-looking columns are left as Text;
// parsing them is a transform concern so that parse failures can be coerced
// to null at that boundary.
func InferColumns(name string, header []string, cells [][]string) *table.Table {
	kinds := make([]table.Kind, len(header))
	for i := range header {
		kinds[i] = inferKind(cells, i)
	}

	cols := make([]table.Column, len(header))
	for i, h := range header {
		cols[i] = table.Column{Name: h, Kind: kinds[i]}
	}

	t := table.New(name, cols...)
	t.Rows = make([][]any, len(cells))
	for r, rec := range cells {
		row := make([]any, len(header))
		for c, s := range rec {
			row[c] = coerceCell(s, kinds[c])
		}
		t.Rows[r] = row
	}
	return t
}

// inferKind scans column c across all rows. A column with no non-empty cells
// defaults to Text.
func inferKind(cells [][]string, c int) table.Kind {
	kind := table.Int
	seen := false
	for _, rec := range cells {
		s := rec[c]
		if s == "" {
			continue
		}
		seen = true
		switch kind {
		case table.Int:
			if _, err := strconv.ParseInt(s, 10, 64); err == nil {
				continue
			}
			kind = table.Float
			fallthrough
		case table.Float:
			if _, err := strconv.ParseFloat(s, 64); err == nil {
				continue
			}
			return table.Text
		}
	}
	if !seen {
		return table.Text
	}
	return kind
}

func coerceCell(s string, kind table.Kind) any {
	if s == "" {
		return nil
	}
	switch kind {
	case table.Int:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil
		}
		return n
	case table.Float:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return f
	default:
		return s
	}
}
