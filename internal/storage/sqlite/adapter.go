package sqlite

import (
	"context"

	"dataforge/internal/storage"
	"dataforge/internal/table"
)

var newRepository = NewRepository

var _ storage.Repository = (*Repository)(nil)

// init registers the "sqlite" backend and its DDL builder.
func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return newRepository(ctx, cfg.DSN)
	})
	storage.RegisterDDL("sqlite", func(def storage.TableDef) (string, error) {
		return storage.BuildCreateTableSQL(def, mapType)
	})
}

// mapType maps a column kind onto a SQLite storage class. Timestamps are
// stored as TEXT; the driver formats time.Time on bind.
func mapType(kind table.Kind) string {
	switch kind {
	case table.Int, table.Bool:
		return "INTEGER"
	case table.Float:
		return "REAL"
	default:
		return "TEXT"
	}
}
