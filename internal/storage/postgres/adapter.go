package postgres

import (
	"context"

	"dataforge/internal/storage"
	"dataforge/internal/table"
)

// newRepository is a test hook that points to NewRepository by default.
var newRepository = NewRepository

var _ storage.Repository = (*Repository)(nil)

// init registers the "postgres" backend and its DDL builder with the storage
// factory, so callers can stay backend-agnostic.
func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return newRepository(ctx, cfg.DSN)
	})
	storage.RegisterDDL("postgres", func(def storage.TableDef) (string, error) {
		return storage.BuildCreateTableSQL(def, mapType)
	})
}

// mapType maps a column kind onto a Postgres SQL type.
func mapType(kind table.Kind) string {
	switch kind {
	case table.Int:
		return "BIGINT"
	case table.Float:
		return "DOUBLE PRECISION"
	case table.Bool:
		return "BOOLEAN"
	case table.Time:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}
