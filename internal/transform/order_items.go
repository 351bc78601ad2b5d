package transform

import "dataforge/internal/table"

// OrderItems cleans the order line-item table and shortens its column names.
// No aggregation: the grain stays at line-item level.
func OrderItems(t *table.Table, opts CategoricalOpts) *table.Table {
	t = clean(t)
	t = t.Rename(map[string]string{
		"order_id":      "id",
		"order_item_id": "item",
		"product_id":    "product",
		"seller_id":     "seller",
		"freight_value": "freight",
	})
	return EncodeCategoricals(t, opts)
}
