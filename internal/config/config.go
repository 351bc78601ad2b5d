// Package config defines the canonical, JSON-serializable configuration model
// for the migration job. It is intentionally small and explicit so that a job
// can be loaded from disk (or built in code for tests) and passed through the
// program without additional glue.
//
// Design goals:
//
//  1. No process-wide globals: the table list and thresholds travel inside
//     the Config value handed to the pipeline entry point, so tests can
//     substitute alternate configurations without state leakage.
//  2. Clarity: Go field names mirror the JSON structure used in job files.
//  3. Secrets stay out of files: sink credentials come only from the process
//     environment (see SinkFromEnv).
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// TableSource binds one destination table name to its source CSV file.
type TableSource struct {
	// TableName is the well-known table key (e.g., "customers").
	TableName string `json:"table_name"`

	// FilePath is the local path of the source CSV with a header row.
	FilePath string `json:"file_path"`
}

// Categorical carries the cardinality thresholds for dictionary encoding.
type Categorical struct {
	// MaxUniqueRatio is the maximum distinct/rows ratio (inclusive).
	MaxUniqueRatio float64 `json:"max_unique_ratio"`

	// MaxUniqueCount is the maximum distinct-value count (inclusive).
	MaxUniqueCount int `json:"max_unique_count"`
}

// Config is the top-level job configuration.
type Config struct {
	// Job is the logical job name used in logs and metric labels.
	Job string `json:"job"`

	// Tables lists the source datasets in no particular order; load order is
	// fixed by the storage layer, not by this list.
	Tables []TableSource `json:"tables"`

	// Categorical holds the encoding thresholds.
	Categorical Categorical `json:"categorical"`

	// BatchSize is the number of rows per sink write. Defaults to 1000.
	BatchSize int `json:"batch_size"`
}

// Default returns the standard nine-table e-commerce job reading the bronze
// layer CSV exports.
func Default() Config {
	return Config{
		Job: "ecommerce_silver",
		Tables: []TableSource{
			{TableName: "customers", FilePath: "bronze/olist_customers_dataset.csv"},
			{TableName: "geolocation", FilePath: "bronze/olist_geolocation_dataset.csv"},
			{TableName: "order_items", FilePath: "bronze/olist_order_items_dataset.csv"},
			{TableName: "order_payments", FilePath: "bronze/olist_order_payments_dataset.csv"},
			{TableName: "order_reviews", FilePath: "bronze/olist_order_reviews_dataset.csv"},
			{TableName: "orders", FilePath: "bronze/olist_orders_dataset.csv"},
			{TableName: "products", FilePath: "bronze/olist_products_dataset.csv"},
			{TableName: "sellers", FilePath: "bronze/olist_sellers_dataset.csv"},
			{TableName: "product_category_name_translation", FilePath: "bronze/product_category_name_translation.csv"},
		},
		Categorical: Categorical{MaxUniqueRatio: 0.5, MaxUniqueCount: 50_000},
		BatchSize:   1000,
	}
}

// Load decodes a Config from a JSON file. Zero-valued fields are filled from
// Default so a job file may override only the parts it cares about.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Job == "" {
		cfg.Job = def.Job
	}
	if len(cfg.Tables) == 0 {
		cfg.Tables = def.Tables
	}
	if cfg.Categorical.MaxUniqueRatio == 0 {
		cfg.Categorical.MaxUniqueRatio = def.Categorical.MaxUniqueRatio
	}
	if cfg.Categorical.MaxUniqueCount == 0 {
		cfg.Categorical.MaxUniqueCount = def.Categorical.MaxUniqueCount
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
}
