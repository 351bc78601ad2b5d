package transform

import "dataforge/internal/table"

// Categorical encoding thresholds. A column qualifies when its distinct
// count stays at or under both bounds.
const (
	MaxUniqueRatio = 0.5
	MaxUniqueCount = 50_000
)

// CategoricalOpts carries the cardinality thresholds for categorical
// encoding. Passed explicitly so tests can substitute alternate thresholds
// without process-wide state.
type CategoricalOpts struct {
	MaxUniqueRatio float64
	MaxUniqueCount int
}

// DefaultCategoricalOpts returns the production thresholds.
func DefaultCategoricalOpts() CategoricalOpts {
	return CategoricalOpts{MaxUniqueRatio: MaxUniqueRatio, MaxUniqueCount: MaxUniqueCount}
}

// ShouldEncodeCategorical decides whether a column is worth re-encoding as a
// dictionary-compressed categorical column.
//
// Only memory-intensive kinds (text, int, float) are candidates; anything
// else is already compact or unsuitable. An empty column never qualifies.
// Both threshold comparisons are inclusive.
func ShouldEncodeCategorical(kind table.Kind, stats table.ColumnStats, opts CategoricalOpts) bool {
	switch kind {
	case table.Text, table.Int, table.Float:
	default:
		return false
	}
	if stats.Rows == 0 {
		return false
	}
	return stats.Ratio() <= opts.MaxUniqueRatio && stats.Distinct <= opts.MaxUniqueCount
}

// EncodeCategoricals returns a copy of the table with every qualifying column
// re-encoded as a dictionary plus per-row indexes. This is a storage
// optimization, not a correctness rule: Decode restores the original values
// and null cells stay null.
func EncodeCategoricals(t *table.Table, opts CategoricalOpts) *table.Table {
	out := t.Copy()
	for i := range out.Columns {
		col := out.Columns[i]
		if col.Kind == table.Categorical {
			continue
		}
		if !ShouldEncodeCategorical(col.Kind, out.Stats(i), opts) {
			continue
		}

		var (
			dict  []any
			index = make(map[any]int)
		)
		for _, row := range out.Rows {
			v := row[i]
			if v == nil {
				continue
			}
			code, ok := index[v]
			if !ok {
				code = len(dict)
				dict = append(dict, v)
				index[v] = code
			}
			row[i] = code
		}

		out.Columns[i] = table.Column{
			Name: col.Name,
			Kind: table.Categorical,
			Elem: col.Kind,
			Dict: dict,
		}
	}
	return out
}
