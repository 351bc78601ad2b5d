package mysql

import (
	"context"

	"dataforge/internal/storage"
	"dataforge/internal/table"
)

var newRepository = NewRepository

var _ storage.Repository = (*Repository)(nil)

// init registers the "mysql" backend and its DDL builder.
func init() {
	storage.Register("mysql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return newRepository(ctx, cfg.DSN)
	})
	storage.RegisterDDL("mysql", func(def storage.TableDef) (string, error) {
		return storage.BuildCreateTableSQL(def, mapType)
	})
}

// mapType maps a column kind onto a MySQL SQL type.
func mapType(kind table.Kind) string {
	switch kind {
	case table.Int:
		return "BIGINT"
	case table.Float:
		return "DOUBLE"
	case table.Bool:
		return "BOOLEAN"
	case table.Time:
		return "DATETIME"
	default:
		return "TEXT"
	}
}
