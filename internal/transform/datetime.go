package transform

import (
	"math"
	"time"

	"dataforge/internal/table"
)

// timestampLayouts are tried in order when coercing text to a timestamp.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp coerces a cell to time.Time. Unparseable or non-text values
// become nil; parse failures never propagate past the transform boundary.
func parseTimestamp(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x
	case string:
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, x); err == nil {
				return ts
			}
		}
		return nil
	default:
		return nil
	}
}

// parseTimeColumns returns a copy of the table with the named columns cast to
// Time, coercing unparseable values to null. Missing columns are ignored.
func parseTimeColumns(t *table.Table, names ...string) *table.Table {
	out := t.Copy()
	for _, name := range names {
		i := out.ColumnIndex(name)
		if i < 0 {
			continue
		}
		out.Columns[i] = table.Column{Name: name, Kind: table.Time}
		for _, row := range out.Rows {
			if row[i] == nil {
				continue
			}
			row[i] = parseTimestamp(row[i])
		}
	}
	return out
}

// wholeDays returns the delta a−b in whole days (floored toward −∞, so
// negative deltas stay negative), or nil when either operand is null.
func wholeDays(a, b any) any {
	at, ok := a.(time.Time)
	if !ok {
		return nil
	}
	bt, ok := b.(time.Time)
	if !ok {
		return nil
	}
	return int64(math.Floor(at.Sub(bt).Hours() / 24))
}
