package transform

import (
	"math"
	"sort"

	"dataforge/internal/table"
)

// dimensionalColumns get median imputation after the volume feature exists.
var dimensionalColumns = []string{
	"product_weight_g",
	"product_length_cm",
	"product_height_cm",
	"product_width_cm",
	"product_volume_cm3",
}

// Products cleans the product catalog, engineers a volume feature, imputes
// missing dimensional metrics, and normalizes types and names.
//
// Order matters: volume is computed from the raw dimensions before any
// imputation, so imputed lengths never fabricate a volume. The few missing
// dimensional values are then filled with each column's own median; the
// missing category is a feature rather than a metric and is filled with the
// literal "unknown".
func Products(t *table.Table, opts CategoricalOpts) *table.Table {
	t = clean(t)

	// Dimensional metrics become floats up front: medians can be fractional.
	t = castFloat(t, dimensionalColumns[:4]...)
	t = addVolume(t)
	for _, name := range dimensionalColumns {
		t = imputeMedian(t, name)
	}
	t = fillText(t, "unknown", "product_category_name")

	// Counts and lengths are integers; keep them nullable rather than
	// inventing values.
	t = castInt(t, "product_name_lenght", "product_description_lenght", "product_photos_qty")

	t = t.Rename(map[string]string{
		"product_id":                 "id",
		"product_category_name":      "category",
		"product_name_lenght":        "name_length",
		"product_description_lenght": "description_length",
		"product_photos_qty":         "photos_qty",
		"product_weight_g":           "weight_g",
		"product_length_cm":          "length_cm",
		"product_height_cm":          "height_cm",
		"product_width_cm":           "width_cm",
		"product_volume_cm3":         "volume_cm3",
	})
	return EncodeCategoricals(t, opts)
}

// addVolume appends product_volume_cm3 = length × height × width. Any null
// factor yields a null volume.
func addVolume(t *table.Table) *table.Table {
	out := t.Copy()
	length := out.ColumnIndex("product_length_cm")
	height := out.ColumnIndex("product_height_cm")
	width := out.ColumnIndex("product_width_cm")

	out.Columns = append(out.Columns, table.Column{Name: "product_volume_cm3", Kind: table.Float})
	for i, row := range out.Rows {
		var volume any
		l, lok := asFloat(row[length])
		h, hok := asFloat(row[height])
		w, wok := asFloat(row[width])
		if lok && hok && wok {
			volume = l * h * w
		}
		out.Rows[i] = append(row, volume)
	}
	return out
}

// imputeMedian fills null cells of the named Float column with the median of
// its non-null values (mean of the two middle values for even counts). A
// column with no non-null values is left untouched.
func imputeMedian(t *table.Table, name string) *table.Table {
	out := t.Copy()
	i := out.ColumnIndex(name)
	if i < 0 {
		return out
	}

	var vals []float64
	for _, row := range out.Rows {
		if f, ok := asFloat(row[i]); ok {
			vals = append(vals, f)
		}
	}
	if len(vals) == 0 {
		return out
	}
	sort.Float64s(vals)
	median := vals[len(vals)/2]
	if len(vals)%2 == 0 {
		median = (vals[len(vals)/2-1] + vals[len(vals)/2]) / 2
	}

	for _, row := range out.Rows {
		if row[i] == nil {
			row[i] = median
		}
	}
	return out
}

// castFloat re-declares the named columns as Float, widening int values.
func castFloat(t *table.Table, names ...string) *table.Table {
	out := t.Copy()
	for _, name := range names {
		i := out.ColumnIndex(name)
		if i < 0 || out.Columns[i].Kind == table.Float {
			continue
		}
		out.Columns[i] = table.Column{Name: name, Kind: table.Float}
		for _, row := range out.Rows {
			if f, ok := asFloat(row[i]); ok {
				row[i] = f
			} else {
				row[i] = nil
			}
		}
	}
	return out
}

// castInt re-declares the named columns as nullable Int, truncating floats.
// Values that are not finite numbers become null.
func castInt(t *table.Table, names ...string) *table.Table {
	out := t.Copy()
	for _, name := range names {
		i := out.ColumnIndex(name)
		if i < 0 || out.Columns[i].Kind == table.Int {
			continue
		}
		out.Columns[i] = table.Column{Name: name, Kind: table.Int}
		for _, row := range out.Rows {
			f, ok := asFloat(row[i])
			if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
				row[i] = nil
				continue
			}
			row[i] = int64(f)
		}
	}
	return out
}
