package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"dataforge/internal/table"
)

// ColumnDef is a backend-agnostic column definition derived from a table's
// schema. Categorical columns are described by their underlying element kind.
type ColumnDef struct {
	Name string
	Kind table.Kind
}

// TableDef is a backend-agnostic table definition used for DDL bootstrap.
type TableDef struct {
	Name    string
	Columns []ColumnDef
}

// DefFromTable derives a TableDef from a table's schema, resolving
// categorical columns to their element kind.
func DefFromTable(t *table.Table) TableDef {
	def := TableDef{Name: t.Name, Columns: make([]ColumnDef, len(t.Columns))}
	for i, c := range t.Columns {
		kind := c.Kind
		if kind == table.Categorical {
			kind = c.Elem
		}
		def.Columns[i] = ColumnDef{Name: c.Name, Kind: kind}
	}
	return def
}

// DDLBuilder renders dialect-specific CREATE TABLE DDL (idempotent, i.e.
// IF NOT EXISTS or the dialect's equivalent) for a table definition.
type DDLBuilder func(def TableDef) (string, error)

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBuilder{}
)

// RegisterDDL registers the DDL builder for a backend kind. Called from
// backend packages' init functions alongside Register.
func RegisterDDL(kind string, fn DDLBuilder) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// BuildCreateTableSQL renders a generic CREATE TABLE IF NOT EXISTS statement
// using the provided kind→SQL type mapping. Backends whose dialect accepts
// this shape register it directly; others (mssql) wrap it.
func BuildCreateTableSQL(def TableDef, mapType func(table.Kind) string) (string, error) {
	if strings.TrimSpace(def.Name) == "" {
		return "", fmt.Errorf("ddl: table name must not be empty")
	}
	if len(def.Columns) == 0 {
		return "", fmt.Errorf("ddl: at least one column is required for table %s", def.Name)
	}

	cols := make([]string, len(def.Columns))
	for i, c := range def.Columns {
		if strings.TrimSpace(c.Name) == "" {
			return "", fmt.Errorf("ddl: column with empty name in table %s", def.Name)
		}
		cols[i] = fmt.Sprintf("%s %s", c.Name, mapType(c.Kind))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n);", def.Name, strings.Join(cols, ",\n  ")), nil
}

// EnsureTable renders the DDL for the backend kind and applies it via
// repo.Exec. Load calls this before the first append so a fresh sink works
// without migration tooling; existing tables are left untouched.
func EnsureTable(ctx context.Context, repo Repository, kind string, def TableDef) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("storage: no DDL builder registered for kind=%q", kind)
	}
	sql, err := fn(def)
	if err != nil {
		return fmt.Errorf("build DDL for %s: %w", def.Name, err)
	}
	if err := repo.Exec(ctx, sql); err != nil {
		return fmt.Errorf("apply DDL for %s: %w", def.Name, err)
	}
	return nil
}
