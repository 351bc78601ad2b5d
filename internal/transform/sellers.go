package transform

import "dataforge/internal/table"

// Sellers cleans the seller table and shortens its column names.
func Sellers(t *table.Table, opts CategoricalOpts) *table.Table {
	t = clean(t)
	t = t.Rename(map[string]string{
		"seller_id":              "id",
		"seller_zip_code_prefix": "zip_code_prefix",
		"seller_city":            "city",
		"seller_state":           "state",
	})
	return EncodeCategoricals(t, opts)
}
