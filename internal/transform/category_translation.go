package transform

import "dataforge/internal/table"

// CategoryTranslation prepares the category translation table for use as a
// lookup map: cleaned text keys so joins against products.category are exact.
func CategoryTranslation(t *table.Table, opts CategoricalOpts) *table.Table {
	t = clean(t)
	t = t.Rename(map[string]string{
		"product_category_name":         "category",
		"product_category_name_english": "category_english",
	})
	return EncodeCategoricals(t, opts)
}
