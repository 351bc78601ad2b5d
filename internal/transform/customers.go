package transform

import "dataforge/internal/table"

// Customers cleans the customer table and shortens its column names. The
// identifier and location columns are low-cardinality relative to row count,
// so the final encoding step typically dictionary-compresses city and state.
func Customers(t *table.Table, opts CategoricalOpts) *table.Table {
	t = clean(t)
	t = t.Rename(map[string]string{
		"customer_id":              "id",
		"customer_unique_id":       "unique_id",
		"customer_city":            "city",
		"customer_state":           "state",
		"customer_zip_code_prefix": "zip_code_prefix",
	})
	return EncodeCategoricals(t, opts)
}
