package table

import (
	"testing"
	"time"
)

func sample() *Table {
	t := New("orders",
		Column{Name: "id", Kind: Text},
		Column{Name: "amount", Kind: Float},
	)
	t.Rows = [][]any{
		{"a", 1.5},
		{"b", nil},
		{"a", 2.0},
	}
	return t
}

func TestRename(t *testing.T) {
	in := sample()
	out := in.Rename(map[string]string{"id": "order_id", "missing": "nope"})

	if got := out.ColumnNames(); got[0] != "order_id" || got[1] != "amount" {
		t.Fatalf("Rename: got columns %v", got)
	}
	// The receiver must be untouched.
	if in.Columns[0].Name != "id" {
		t.Errorf("Rename mutated receiver: %v", in.ColumnNames())
	}
}

func TestCopyIsDeep(t *testing.T) {
	in := sample()
	out := in.Copy()
	out.Rows[0][0] = "changed"
	out.Columns[0].Name = "changed"

	if in.Rows[0][0] != "a" {
		t.Errorf("Copy shares row storage: %v", in.Rows[0])
	}
	if in.Columns[0].Name != "id" {
		t.Errorf("Copy shares column storage: %v", in.Columns[0])
	}
}

func TestDecode(t *testing.T) {
	col := Column{Name: "state", Kind: Categorical, Elem: Text, Dict: []any{"sp", "rj"}}

	cases := []struct {
		in   any
		want any
	}{
		{0, "sp"},
		{1, "rj"},
		{nil, nil},
		{7, nil}, // out-of-range index decodes to null rather than panicking
	}
	for _, c := range cases {
		if got := Decode(col, c.in); got != c.want {
			t.Errorf("Decode(%v) = %v, want %v", c.in, got, c.want)
		}
	}

	plain := Column{Name: "id", Kind: Int}
	if got := Decode(plain, int64(3)); got != int64(3) {
		t.Errorf("Decode non-categorical = %v, want 3", got)
	}
}

func TestDecodedRow(t *testing.T) {
	tbl := New("t",
		Column{Name: "id", Kind: Text},
		Column{Name: "state", Kind: Categorical, Elem: Text, Dict: []any{"sp", "rj"}},
	)
	tbl.Rows = [][]any{{"a", 1}, {"b", nil}}

	row := tbl.DecodedRow(0)
	if row[0] != "a" || row[1] != "rj" {
		t.Fatalf("DecodedRow(0) = %v", row)
	}
	row = tbl.DecodedRow(1)
	if row[1] != nil {
		t.Fatalf("DecodedRow(1) null cell = %v, want nil", row[1])
	}
}

func TestEqualDecodesCategoricals(t *testing.T) {
	plain := New("t", Column{Name: "state", Kind: Text})
	plain.Rows = [][]any{{"sp"}, {"rj"}, {"sp"}}

	encoded := New("t", Column{Name: "state", Kind: Categorical, Elem: Text, Dict: []any{"sp", "rj"}})
	encoded.Rows = [][]any{{0}, {1}, {0}}

	if !Equal(plain, encoded) {
		t.Fatalf("Equal: plain and encoded forms of the same values should match")
	}

	encoded.Rows[2][0] = 1
	if Equal(plain, encoded) {
		t.Fatalf("Equal: differing decoded values should not match")
	}
}

func TestEqualTimes(t *testing.T) {
	ts := time.Date(2018, 3, 1, 10, 0, 0, 0, time.UTC)
	a := New("t", Column{Name: "at", Kind: Time})
	a.Rows = [][]any{{ts}}
	b := New("t", Column{Name: "at", Kind: Time})
	b.Rows = [][]any{{ts.In(time.FixedZone("X", 3600))}}

	if !Equal(a, b) {
		t.Fatalf("Equal: identical instants in different zones should match")
	}
}

func TestStats(t *testing.T) {
	tbl := New("t", Column{Name: "city", Kind: Text})
	tbl.Rows = [][]any{{"a"}, {"b"}, {"a"}, {nil}}

	st := tbl.Stats(0)
	if st.Rows != 4 || st.Nulls != 1 || st.Distinct != 2 {
		t.Fatalf("Stats = %+v, want rows=4 nulls=1 distinct=2", st)
	}
	if got := st.Ratio(); got != 0.5 {
		t.Errorf("Ratio = %v, want 0.5", got)
	}

	empty := New("t", Column{Name: "x", Kind: Text})
	if got := empty.Stats(0).Ratio(); got != 0 {
		t.Errorf("empty Ratio = %v, want 0", got)
	}
}

func TestStatsDecodesCategoricals(t *testing.T) {
	tbl := New("t", Column{Name: "state", Kind: Categorical, Elem: Text, Dict: []any{"sp", "rj"}})
	tbl.Rows = [][]any{{0}, {1}, {0}, {nil}}

	st := tbl.Stats(0)
	if st.Distinct != 2 || st.Nulls != 1 {
		t.Fatalf("Stats on categorical = %+v, want distinct=2 nulls=1", st)
	}
}

func TestStatsKindsDoNotCollide(t *testing.T) {
	// int64(1) and float64(1) are distinct values even when numerically equal.
	tbl := New("t", Column{Name: "x", Kind: Text})
	tbl.Rows = [][]any{{int64(1)}, {float64(1)}, {"1"}, {true}}

	if st := tbl.Stats(0); st.Distinct != 4 {
		t.Fatalf("Stats mixed kinds distinct = %d, want 4", st.Distinct)
	}
}
