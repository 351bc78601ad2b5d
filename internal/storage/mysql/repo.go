// Package mysql implements a MySQL-backed storage.Repository using
// database/sql with the go-sql-driver. Appends run as multi-row INSERT
// statements, MySQL's practical bulk path when LOAD DATA is unavailable.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db *sql.DB
}

// NewRepository opens a MySQL connection pool for the DSN, e.g.
// "user:pass@tcp(host:3306)/db?parseTime=true".
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping: %w", err)
	}
	return &Repository{db: db}, nil
}

// CopyFrom appends the rows into the named table using one multi-row INSERT.
func (r *Repository) CopyFrom(ctx context.Context, tableName string, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("mysql: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	rowPlaceholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	values := make([]string, len(rows))
	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("mysql: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
		values[i] = rowPlaceholder
		args = append(args, row...)
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		tableName, strings.Join(columns, ", "), strings.Join(values, ", "))
	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("mysql: insert into %s: %w", tableName, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return int64(len(rows)), nil
	}
	return n, nil
}

// Exec executes an arbitrary statement, typically DDL.
func (r *Repository) Exec(ctx context.Context, q string) error {
	if _, err := r.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("mysql: exec: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (r *Repository) Close() { _ = r.db.Close() }
