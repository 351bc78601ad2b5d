// Package transform implements the Silver Layer: per-table cleaning,
// normalization, feature engineering, and storage-type optimization rules
// applied between extraction and load.
//
// Each table has one registered transform function. A function is pure
// (Table in, new Table out) and composes, in order: sanitize text columns →
// normalize text columns → table-specific logic → rename columns →
// categorical encoding. The registry is an explicit function dispatch table
// keyed by table name, so missing or unknown entries are easy to detect in
// tests.
package transform

import (
	"context"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"

	"dataforge/internal/table"
)

// Func is a single table transform rule: a pure function from a raw table to
// its Silver-Layer form. Implementations must not mutate the input.
type Func func(*table.Table, CategoricalOpts) *table.Table

// registry is the function dispatch table mapping table name → transform.
// Keep it statically enumerable; tests assert its exact key set.
var registry = map[string]Func{
	"customers":                         Customers,
	"geolocation":                       Geolocation,
	"order_items":                       OrderItems,
	"order_payments":                    OrderPayments,
	"order_reviews":                     OrderReviews,
	"orders":                            Orders,
	"products":                          Products,
	"sellers":                           Sellers,
	"product_category_name_translation": CategoryTranslation,
}

// Registered returns the transform function for the table name, if any.
func Registered(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// RegisteredNames returns the sorted table names with a registered transform.
func RegisteredNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply runs the registered transform for every table in the set and returns
// a new set. Tables with no registered rule pass through unchanged with a
// warning; an unknown table is never an error. Transforms are independent of
// each other (none reads another table), so they run concurrently, one task
// per table.
func Apply(ctx context.Context, set map[string]*table.Table, opts CategoricalOpts) map[string]*table.Table {
	type task struct {
		name string
		in   *table.Table
		fn   Func
		out  *table.Table
	}

	out := make(map[string]*table.Table, len(set))
	var tasks []*task
	for name, t := range set {
		fn, ok := registry[name]
		if !ok {
			log.Printf("transform: no rule registered for table=%q, passing through", name)
			out[name] = t
			continue
		}
		tasks = append(tasks, &task{name: name, in: t, fn: fn})
	}

	// Each goroutine writes only its own task slot; the map is assembled
	// after Wait.
	g, _ := errgroup.WithContext(ctx)
	for _, tk := range tasks {
		tk := tk
		g.Go(func() error {
			tk.out = tk.fn(tk.in, opts)
			log.Printf("transform: table=%s rows_in=%d rows_out=%d", tk.name, tk.in.NumRows(), tk.out.NumRows())
			return nil
		})
	}
	_ = g.Wait()

	for _, tk := range tasks {
		out[tk.name] = tk.out
	}
	return out
}
