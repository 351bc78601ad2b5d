package transform

import (
	"sort"
	"time"

	"dataforge/internal/table"
)

// group is one grouping-key bucket: the decoded key value plus the indexes of
// the member rows.
type group struct {
	key  any
	rows []int
}

// groupBy buckets the table's rows by the decoded value of the key column.
// Rows with a null key are dropped. Groups are returned sorted ascending by
// key so aggregated output is deterministic regardless of input row order.
func groupBy(t *table.Table, keyCol int) []group {
	col := t.Columns[keyCol]
	buckets := make(map[any]*group)
	var order []any
	for i, row := range t.Rows {
		k := table.Decode(col, row[keyCol])
		if k == nil {
			continue
		}
		g, ok := buckets[k]
		if !ok {
			g = &group{key: k}
			buckets[k] = g
			order = append(order, k)
		}
		g.rows = append(g.rows, i)
	}

	sort.Slice(order, func(i, j int) bool { return scalarLess(order[i], order[j]) })
	out := make([]group, len(order))
	for i, k := range order {
		out[i] = *buckets[k]
	}
	return out
}

// scalarLess orders two non-null scalars of the same kind.
func scalarLess(a, b any) bool {
	switch x := a.(type) {
	case string:
		y, _ := b.(string)
		return x < y
	case int64:
		y, _ := b.(int64)
		return x < y
	case float64:
		y, _ := b.(float64)
		return x < y
	case time.Time:
		y, _ := b.(time.Time)
		return x.Before(y)
	default:
		return false
	}
}

// aggMean returns the mean of the non-null numeric values of col across the
// given rows, or nil when all are null.
func aggMean(t *table.Table, col int, rows []int) any {
	var (
		sum float64
		n   int
	)
	for _, r := range rows {
		f, ok := asFloat(table.Decode(t.Columns[col], t.Rows[r][col]))
		if !ok {
			continue
		}
		sum += f
		n++
	}
	if n == 0 {
		return nil
	}
	return sum / float64(n)
}

// aggSum returns the sum of the non-null numeric values, or nil when all are
// null. The result kind follows the column: Int columns sum to int64,
// everything else to float64.
func aggSum(t *table.Table, col int, rows []int) any {
	kind := t.Columns[col].Kind
	if kind == table.Categorical {
		kind = t.Columns[col].Elem
	}
	if kind == table.Int {
		var (
			sum int64
			n   int
		)
		for _, r := range rows {
			if v, ok := table.Decode(t.Columns[col], t.Rows[r][col]).(int64); ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			return nil
		}
		return sum
	}
	var (
		sum float64
		n   int
	)
	for _, r := range rows {
		f, ok := asFloat(table.Decode(t.Columns[col], t.Rows[r][col]))
		if !ok {
			continue
		}
		sum += f
		n++
	}
	if n == 0 {
		return nil
	}
	return sum
}

// aggMax returns the maximum non-null value, or nil when all are null.
func aggMax(t *table.Table, col int, rows []int) any {
	var best any
	for _, r := range rows {
		v := table.Decode(t.Columns[col], t.Rows[r][col])
		if v == nil {
			continue
		}
		if best == nil || scalarLess(best, v) {
			best = v
		}
	}
	return best
}

// aggCount returns the number of non-null values as int64.
func aggCount(t *table.Table, col int, rows []int) any {
	var n int64
	for _, r := range rows {
		if table.Decode(t.Columns[col], t.Rows[r][col]) != nil {
			n++
		}
	}
	return n
}

// aggMode returns the most frequent non-null value. Ties break to the
// smallest value so the result is deterministic regardless of row order.
// Returns nil for an all-null group.
func aggMode(t *table.Table, col int, rows []int) any {
	counts := make(map[any]int)
	for _, r := range rows {
		v := table.Decode(t.Columns[col], t.Rows[r][col])
		if v == nil {
			continue
		}
		counts[v]++
	}
	var (
		best  any
		bestN int
	)
	for v, n := range counts {
		if n > bestN || (n == bestN && best != nil && scalarLess(v, best)) {
			best, bestN = v, n
		}
	}
	return best
}

// asFloat widens a numeric scalar to float64.
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}
