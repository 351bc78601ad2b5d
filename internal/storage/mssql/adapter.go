package mssql

import (
	"context"
	"fmt"
	"strings"

	"dataforge/internal/storage"
	"dataforge/internal/table"
)

var newRepository = NewRepository

var _ storage.Repository = (*Repository)(nil)

// init registers the "mssql" backend and its DDL builder.
func init() {
	storage.Register("mssql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return newRepository(ctx, cfg.DSN)
	})
	storage.RegisterDDL("mssql", buildCreateTableSQL)
}

// buildCreateTableSQL renders idempotent DDL. T-SQL has no CREATE TABLE IF
// NOT EXISTS, so the statement is guarded with OBJECT_ID.
func buildCreateTableSQL(def storage.TableDef) (string, error) {
	if strings.TrimSpace(def.Name) == "" {
		return "", fmt.Errorf("mssql ddl: table name must not be empty")
	}
	if len(def.Columns) == 0 {
		return "", fmt.Errorf("mssql ddl: at least one column is required for table %s", def.Name)
	}
	cols := make([]string, len(def.Columns))
	for i, c := range def.Columns {
		cols[i] = fmt.Sprintf("%s %s", c.Name, mapType(c.Kind))
	}
	return fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NULL\nCREATE TABLE %s (\n  %s\n);",
		def.Name, def.Name, strings.Join(cols, ",\n  "),
	), nil
}

// mapType maps a column kind onto a SQL Server type.
func mapType(kind table.Kind) string {
	switch kind {
	case table.Int:
		return "BIGINT"
	case table.Float:
		return "FLOAT"
	case table.Bool:
		return "BIT"
	case table.Time:
		return "DATETIME2"
	default:
		return "NVARCHAR(MAX)"
	}
}
