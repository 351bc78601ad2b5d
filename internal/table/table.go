// Package table defines the in-memory tabular model passed between the
// pipeline stages. A Table is a named, ordered collection of rows whose cells
// are typed scalars; every column carries one declared Kind for all rows.
//
// Cells are stored as `any` with a small closed set of dynamic types:
//
//	Text        string
//	Int         int64
//	Float       float64
//	Bool        bool
//	Time        time.Time
//	Categorical int (index into Column.Dict)
//	null        nil
//
// Tables are treated as immutable values by the transform layer: helpers that
// change shape (Rename, column rewrites) operate on copies, never on rows the
// caller still holds.
package table

import (
	"fmt"
	"time"
)

// Kind is the declared scalar type of a column.
type Kind uint8

const (
	Text Kind = iota
	Int
	Float
	Bool
	Time
	// Categorical is a dictionary-compressed column: rows hold int indexes
	// into Column.Dict and Column.Elem records the underlying kind.
	Categorical
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Time:
		return "time"
	case Categorical:
		return "categorical"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Column describes one column of a Table.
type Column struct {
	Name string
	Kind Kind

	// Elem and Dict are set only when Kind == Categorical. Dict holds the
	// distinct values (of kind Elem) and rows store int indexes into it.
	Elem Kind
	Dict []any
}

// Table is a named table: an ordered column schema plus rows aligned to it.
// A nil cell is a null.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// New returns an empty table with the given name and columns.
func New(name string, cols ...Column) *Table {
	return &Table{Name: name, Columns: cols}
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return len(t.Rows) }

// ColumnIndex returns the index of the named column, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ColumnNames returns the column names in schema order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Copy returns a deep copy of the table. Row slices are duplicated; cell
// values are scalars and shared as-is.
func (t *Table) Copy() *Table {
	out := &Table{
		Name:    t.Name,
		Columns: make([]Column, len(t.Columns)),
		Rows:    make([][]any, len(t.Rows)),
	}
	copy(out.Columns, t.Columns)
	for i, c := range t.Columns {
		if len(c.Dict) > 0 {
			out.Columns[i].Dict = append([]any(nil), c.Dict...)
		}
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]any(nil), row...)
	}
	return out
}

// Rename returns a copy of the table with columns renamed per the mapping.
// Old names are fully replaced; columns absent from the mapping keep their
// name and position.
func (t *Table) Rename(mapping map[string]string) *Table {
	out := t.Copy()
	for i := range out.Columns {
		if newName, ok := mapping[out.Columns[i].Name]; ok {
			out.Columns[i].Name = newName
		}
	}
	return out
}

// Decode resolves a cell to its underlying scalar value: categorical indexes
// are looked up in the column dictionary, every other value (including nil)
// is returned unchanged.
func Decode(col Column, v any) any {
	if v == nil || col.Kind != Categorical {
		return v
	}
	idx, ok := v.(int)
	if !ok || idx < 0 || idx >= len(col.Dict) {
		return nil
	}
	return col.Dict[idx]
}

// DecodedRow returns the row with every categorical index resolved to its
// dictionary value, ready for handoff to a relational sink.
func (t *Table) DecodedRow(i int) []any {
	row := t.Rows[i]
	out := make([]any, len(row))
	for j, v := range row {
		out[j] = Decode(t.Columns[j], v)
	}
	return out
}

// Equal reports structural equality: same name, schema, and decoded cell
// values in the same order. Used by tests to assert pass-through semantics.
func Equal(a, b *Table) bool {
	if a.Name != b.Name || len(a.Columns) != len(b.Columns) || len(a.Rows) != len(b.Rows) {
		return false
	}
	for i := range a.Columns {
		if a.Columns[i].Name != b.Columns[i].Name {
			return false
		}
	}
	for i := range a.Rows {
		if len(a.Rows[i]) != len(b.Rows[i]) {
			return false
		}
		for j := range a.Rows[i] {
			av := Decode(a.Columns[j], a.Rows[i][j])
			bv := Decode(b.Columns[j], b.Rows[i][j])
			if !scalarEqual(av, bv) {
				return false
			}
		}
	}
	return true
}

func scalarEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	return a == b
}
