package transform

import (
	"testing"

	"dataforge/internal/table"
)

func TestShouldEncodeCategorical(t *testing.T) {
	opts := DefaultCategoricalOpts()

	cases := []struct {
		name  string
		kind  table.Kind
		stats table.ColumnStats
		want  bool
	}{
		{"low cardinality text", table.Text, table.ColumnStats{Rows: 100, Distinct: 10}, true},
		{"ratio above threshold", table.Text, table.ColumnStats{Rows: 100, Distinct: 60}, false},
		{"ratio exactly at threshold", table.Text, table.ColumnStats{Rows: 100, Distinct: 50}, true},
		{"count above threshold", table.Text, table.ColumnStats{Rows: 1_000_000, Distinct: 50_001}, false},
		{"count exactly at threshold", table.Text, table.ColumnStats{Rows: 1_000_000, Distinct: 50_000}, true},
		{"float qualifies", table.Float, table.ColumnStats{Rows: 100, Distinct: 10}, true},
		{"int qualifies", table.Int, table.ColumnStats{Rows: 100, Distinct: 10}, true},
		{"bool never encodes", table.Bool, table.ColumnStats{Rows: 100, Distinct: 2}, false},
		{"time never encodes", table.Time, table.ColumnStats{Rows: 100, Distinct: 2}, false},
		{"empty column never encodes", table.Text, table.ColumnStats{Rows: 0, Distinct: 0}, false},
	}
	for _, c := range cases {
		if got := ShouldEncodeCategorical(c.kind, c.stats, opts); got != c.want {
			t.Errorf("%s: ShouldEncodeCategorical(%v, %+v) = %v, want %v", c.name, c.kind, c.stats, got, c.want)
		}
	}
}

func TestEncodeCategoricalsRoundTrips(t *testing.T) {
	in := table.New("t",
		table.Column{Name: "state", Kind: table.Text},
		table.Column{Name: "score", Kind: table.Float},
	)
	in.Rows = [][]any{
		{"sp", 1.0},
		{"rj", 2.0},
		{"sp", nil},
		{nil, 1.0},
	}

	out := EncodeCategoricals(in, DefaultCategoricalOpts())

	if out.Columns[0].Kind != table.Categorical || out.Columns[0].Elem != table.Text {
		t.Fatalf("state column = %+v, want categorical/text", out.Columns[0])
	}
	// Dictionary follows first occurrence order.
	if len(out.Columns[0].Dict) != 2 || out.Columns[0].Dict[0] != "sp" || out.Columns[0].Dict[1] != "rj" {
		t.Fatalf("dict = %v, want [sp rj]", out.Columns[0].Dict)
	}
	// Nulls stay null through encoding.
	if out.Rows[3][0] != nil {
		t.Fatalf("null cell = %v, want nil", out.Rows[3][0])
	}
	// Decoding restores the original values.
	if !table.Equal(in, out) {
		t.Fatalf("encoded table is not value-equal to its source")
	}
}

func TestEncodeCategoricalsSkipsHighCardinality(t *testing.T) {
	in := table.New("t", table.Column{Name: "id", Kind: table.Text})
	in.Rows = [][]any{{"a"}, {"b"}, {"c"}, {"d"}}

	out := EncodeCategoricals(in, DefaultCategoricalOpts())
	if out.Columns[0].Kind != table.Text {
		t.Fatalf("unique id column was encoded: %+v", out.Columns[0])
	}
}

func TestEncodeCategoricalsRespectsOpts(t *testing.T) {
	in := table.New("t", table.Column{Name: "state", Kind: table.Text})
	in.Rows = [][]any{{"sp"}, {"sp"}, {"rj"}, {"sp"}}

	strict := CategoricalOpts{MaxUniqueRatio: 0.1, MaxUniqueCount: 50_000}
	if out := EncodeCategoricals(in, strict); out.Columns[0].Kind != table.Text {
		t.Fatalf("column encoded despite ratio above configured threshold")
	}
}
