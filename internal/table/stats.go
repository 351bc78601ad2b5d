package table

import (
	"math"
	"strconv"
	"time"

	"github.com/zeebo/xxh3"
)

// ColumnStats summarizes the cardinality of one column.
type ColumnStats struct {
	Rows     int // total rows, nulls included
	Nulls    int // nil cells
	Distinct int // distinct non-null values
}

// Ratio returns Distinct / Rows, or 0 for an empty column.
func (s ColumnStats) Ratio() float64 {
	if s.Rows == 0 {
		return 0
	}
	return float64(s.Distinct) / float64(s.Rows)
}

// Stats computes cardinality statistics for column i. Distinct values are
// counted by hashing a canonical byte form of each cell with xxh3, so the
// column's values are never retained; a 64-bit digest makes collisions a
// non-issue at in-memory dataset sizes.
func (t *Table) Stats(i int) ColumnStats {
	st := ColumnStats{Rows: len(t.Rows)}
	seen := make(map[uint64]struct{}, 64)
	col := t.Columns[i]
	for _, row := range t.Rows {
		v := Decode(col, row[i])
		if v == nil {
			st.Nulls++
			continue
		}
		seen[hashValue(v)] = struct{}{}
	}
	st.Distinct = len(seen)
	return st
}

func hashValue(v any) uint64 {
	switch x := v.(type) {
	case string:
		return xxh3.HashString(x)
	case int64:
		return xxh3.HashString("i" + strconv.FormatInt(x, 10))
	case int:
		return xxh3.HashString("i" + strconv.Itoa(x))
	case float64:
		return xxh3.HashString("f" + strconv.FormatUint(math.Float64bits(x), 16))
	case bool:
		return xxh3.HashString("b" + strconv.FormatBool(x))
	case time.Time:
		return xxh3.HashString("t" + strconv.FormatInt(x.UnixNano(), 10))
	default:
		return 0
	}
}
