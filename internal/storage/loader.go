package storage

import (
	"context"
	"log"
	"time"

	"dataforge/internal/table"
)

// LoadOrder fixes the cross-table write order so foreign-key constraints at
// the sink are satisfied: parent tables are durably written before their
// dependents.
var LoadOrder = []string{
	"customers",
	"geolocation",
	"sellers",
	"product_category_name_translation",
	"products",
	"orders",         // depends on customers
	"order_items",    // depends on orders, products, sellers
	"order_payments", // depends on orders
	"order_reviews",  // depends on orders
}

// Stats summarizes one load run.
type Stats struct {
	Loaded  int   // tables written successfully
	Skipped int   // tables absent from the input set
	Failed  int   // tables whose write failed
	Rows    int64 // total rows reported inserted
}

// Load appends every table of the set into the sink, following LoadOrder,
// batched in chunks of batchSize rows. Append semantics: destination tables
// are created when missing and never truncated.
//
// Failure model: a table absent from the set is a warning, not an error; a
// failed write is logged and the loop continues with the next table. There is
// no cross-table transaction, so a partial load across tables is possible by
// design. Load returns an error only when the context is canceled.
func Load(ctx context.Context, repo Repository, kind string, set map[string]*table.Table, batchSize int) (Stats, error) {
	if batchSize <= 0 {
		batchSize = 1000
	}

	var stats Stats
	log.Printf("loader: starting, tables=%d batch=%d", len(set), batchSize)

	for _, name := range LoadOrder {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		t, ok := set[name]
		if !ok {
			log.Printf("loader: table=%q not found in input set, skipping", name)
			stats.Skipped++
			continue
		}

		start := time.Now()
		n, err := loadTable(ctx, repo, kind, t, batchSize)
		stats.Rows += n
		if err != nil {
			log.Printf("loader: table=%s failed after=%d rows err=%v", name, n, err)
			stats.Failed++
			continue
		}
		stats.Loaded++
		log.Printf("loader: table=%s inserted=%d elapsed=%s", name, n, time.Since(start).Truncate(time.Millisecond))
	}

	log.Printf("loader: done, loaded=%d skipped=%d failed=%d rows=%d",
		stats.Loaded, stats.Skipped, stats.Failed, stats.Rows)
	return stats, nil
}

// loadTable ensures the destination table exists, then appends the table's
// decoded rows in batches.
func loadTable(ctx context.Context, repo Repository, kind string, t *table.Table, batchSize int) (int64, error) {
	if err := EnsureTable(ctx, repo, kind, DefFromTable(t)); err != nil {
		return 0, err
	}

	columns := t.ColumnNames()
	var total int64
	for off := 0; off < t.NumRows(); off += batchSize {
		end := off + batchSize
		if end > t.NumRows() {
			end = t.NumRows()
		}
		batch := make([][]any, 0, end-off)
		for i := off; i < end; i++ {
			batch = append(batch, t.DecodedRow(i))
		}
		n, err := repo.CopyFrom(ctx, t.Name, columns, batch)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
