package etl

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"dataforge/internal/config"
	"dataforge/internal/table"
)

func writeCSV(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractReadsConfiguredTables(t *testing.T) {
	dir := t.TempDir()
	custPath := writeCSV(t, dir, "customers.csv", "customer_id,customer_state\nc1,SP\nc2,RJ\n")
	ordPath := writeCSV(t, dir, "orders.csv", "order_id,order_status\no1,delivered\n")

	sources := []config.TableSource{
		{TableName: "customers", FilePath: custPath},
		{TableName: "orders", FilePath: ordPath},
	}

	set := Extract(context.Background(), sources)
	if len(set) != 2 {
		t.Fatalf("extracted %d tables, want 2", len(set))
	}

	cust := set["customers"]
	if cust == nil || cust.NumRows() != 2 {
		t.Fatalf("customers = %+v", cust)
	}
	if got := cust.ColumnNames(); got[0] != "customer_id" || got[1] != "customer_state" {
		t.Errorf("customers columns = %v", got)
	}
	if cust.Columns[0].Kind != table.Text {
		t.Errorf("customer_id kind = %v, want text", cust.Columns[0].Kind)
	}
}

func TestExtractSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	ordPath := writeCSV(t, dir, "orders.csv", "order_id\no1\n")

	sources := []config.TableSource{
		{TableName: "orders", FilePath: ordPath},
		{TableName: "customers", FilePath: filepath.Join(dir, "nope.csv")},
	}

	set := Extract(context.Background(), sources)
	if len(set) != 1 {
		t.Fatalf("extracted %d tables, want 1", len(set))
	}
	if _, ok := set["customers"]; ok {
		t.Error("missing file produced a table")
	}
	if _, ok := set["orders"]; !ok {
		t.Error("orders table missing from result")
	}
}

func TestExtractSkipsUnparseableFiles(t *testing.T) {
	orig := parseFn
	defer func() { parseFn = orig }()
	parseFn = func(name string, _ io.Reader) (*table.Table, int, error) {
		return nil, 0, os.ErrInvalid
	}

	dir := t.TempDir()
	path := writeCSV(t, dir, "orders.csv", "order_id\no1\n")

	set := Extract(context.Background(), []config.TableSource{{TableName: "orders", FilePath: path}})
	if len(set) != 0 {
		t.Fatalf("extracted %d tables, want 0", len(set))
	}
}
