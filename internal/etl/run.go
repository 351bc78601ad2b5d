// Package etl orchestrates the batch pipeline: extract the configured CSV
// datasets, apply the per-table Silver-Layer transforms, and load the results
// into the relational sink in dependency order.
package etl

import (
	"context"
	"fmt"
	"log"
	"time"

	"dataforge/internal/config"
	"dataforge/internal/metrics"
	"dataforge/internal/storage"
	"dataforge/internal/table"
	"dataforge/internal/transform"
)

// Result summarizes one pipeline run.
type Result struct {
	Extracted   int // tables read from source files
	Transformed int // tables after transform (incl. pass-through)
	Load        storage.Stats
}

// Run executes extract → transform → load for the given job. Each stage is
// timed and recorded against the job's metric labels. Run returns an error
// only for unrecoverable conditions: no tables could be extracted, the sink
// connection failed, or the context was canceled. Per-table problems inside a
// stage are logged and skipped.
func Run(ctx context.Context, cfg config.Config, sink config.Sink) (Result, error) {
	var res Result
	log.Printf("run: job=%s tables=%d sink=%s", cfg.Job, len(cfg.Tables), sink.Kind)

	// Extract.
	start := time.Now()
	set := Extract(ctx, cfg.Tables)
	res.Extracted = len(set)
	var extractErr error
	if len(set) == 0 {
		extractErr = fmt.Errorf("run: no tables extracted for job=%s", cfg.Job)
	}
	metrics.RecordStage(cfg.Job, "extract", extractErr, time.Since(start))
	recordRows(cfg.Job, "extracted", set)
	if extractErr != nil {
		return res, extractErr
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	// Transform.
	start = time.Now()
	set = transform.Apply(ctx, set, categoricalOpts(cfg))
	res.Transformed = len(set)
	metrics.RecordStage(cfg.Job, "transform", ctx.Err(), time.Since(start))
	recordRows(cfg.Job, "transformed", set)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	// Load.
	start = time.Now()
	repo, err := storage.New(ctx, storage.Config{Kind: sink.Kind, DSN: sink.DSN})
	if err != nil {
		metrics.RecordStage(cfg.Job, "load", err, time.Since(start))
		return res, fmt.Errorf("run: connect sink: %w", err)
	}
	defer repo.Close()

	stats, err := storage.Load(ctx, repo, sink.Kind, set, cfg.BatchSize)
	res.Load = stats
	metrics.RecordStage(cfg.Job, "load", err, time.Since(start))
	metrics.RecordRows(cfg.Job, "all", "loaded", stats.Rows)
	if err != nil {
		return res, err
	}

	log.Printf("run: job=%s done extracted=%d transformed=%d loaded=%d failed=%d rows=%d",
		cfg.Job, res.Extracted, res.Transformed, stats.Loaded, stats.Failed, stats.Rows)
	return res, nil
}

func categoricalOpts(cfg config.Config) transform.CategoricalOpts {
	opts := transform.DefaultCategoricalOpts()
	if cfg.Categorical.MaxUniqueRatio > 0 {
		opts.MaxUniqueRatio = cfg.Categorical.MaxUniqueRatio
	}
	if cfg.Categorical.MaxUniqueCount > 0 {
		opts.MaxUniqueCount = cfg.Categorical.MaxUniqueCount
	}
	return opts
}

func recordRows(job, kind string, set map[string]*table.Table) {
	for name, t := range set {
		metrics.RecordRows(job, name, kind, int64(t.NumRows()))
	}
}
