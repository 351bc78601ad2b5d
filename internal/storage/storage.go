// Package storage contains storage-agnostic contracts for the load stage:
// the Repository interface, a backend factory with init-time registration,
// and the ordered, batched table loader.
//
// Concrete backends (postgres, mysql, mssql, sqlite) live in subpackages and
// register themselves with the factory from their init functions; importing
// dataforge/internal/storage/all enables all of them. Callers stay
// backend-agnostic and branch only on the configured kind string.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// Config selects and configures a storage backend.
type Config struct {
	// Kind selects the backend implementation, e.g. "postgres".
	Kind string

	// DSN is the backend-specific connection string.
	DSN string
}

// Repository abstracts a relational sink. Implementations must be safe for
// use from a single loading goroutine; cross-table parallel writes are the
// caller's concern.
type Repository interface {
	// CopyFrom appends rows (aligned to columns order) into the named table
	// using the backend's most efficient bulk primitive. It returns the
	// number of rows reported as inserted.
	CopyFrom(ctx context.Context, tableName string, columns []string, rows [][]any) (int64, error)

	// Exec runs an arbitrary statement, typically DDL.
	Exec(ctx context.Context, sql string) error

	// Close releases the underlying connections.
	Close()
}

// Factory constructs a Repository from a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for a backend kind. It is
// typically called from backend packages' init functions.
func Register(kind string, fn Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = fn
}

// New opens a Repository for the configured kind. Unknown kinds are an error
// listing nothing but the kind, so a missing blank import is easy to spot.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	fn, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: no backend registered for kind=%q", cfg.Kind)
	}
	return fn(ctx, cfg)
}
