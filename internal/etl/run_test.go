package etl

import (
	"context"
	"path/filepath"
	"testing"

	"dataforge/internal/config"

	_ "dataforge/internal/storage/sqlite"
)

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	custPath := writeCSV(t, dir, "customers.csv",
		"customer_id,customer_unique_id,customer_zip_code_prefix,customer_city,customer_state\n"+
			"c1,u1,1046,Sao Paulo,SP\n"+
			"c2,u2,20031,Rio de Janeiro,RJ\n")
	ordPath := writeCSV(t, dir, "orders.csv",
		"order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,"+
			"order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date\n"+
			"o1,c1,delivered,2018-01-01 00:00:00,2018-01-01 12:00:00,"+
			"2018-01-03 08:00:00,2018-01-08 12:00:00,2018-01-10\n")

	cfg := config.Config{
		Job: "e2e_test",
		Tables: []config.TableSource{
			{TableName: "customers", FilePath: custPath},
			{TableName: "orders", FilePath: ordPath},
		},
		Categorical: config.Categorical{MaxUniqueRatio: 0.5, MaxUniqueCount: 50_000},
		BatchSize:   1000,
	}
	sink := config.Sink{Kind: "sqlite", DSN: filepath.Join(dir, "silver.db")}

	res, err := Run(context.Background(), cfg, sink)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Extracted != 2 || res.Transformed != 2 {
		t.Errorf("extracted=%d transformed=%d, want 2 each", res.Extracted, res.Transformed)
	}
	if res.Load.Loaded != 2 || res.Load.Failed != 0 {
		t.Errorf("load stats = %+v", res.Load)
	}
	if res.Load.Rows != 3 {
		t.Errorf("rows = %d, want 3", res.Load.Rows)
	}
}

func TestRunFailsWhenNothingExtracted(t *testing.T) {
	cfg := config.Config{
		Job:       "e2e_test",
		Tables:    []config.TableSource{{TableName: "customers", FilePath: "/nonexistent/customers.csv"}},
		BatchSize: 1000,
	}
	if _, err := Run(context.Background(), cfg, config.Sink{Kind: "sqlite", DSN: ":memory:"}); err == nil {
		t.Fatal("Run succeeded with no extractable tables")
	}
}
