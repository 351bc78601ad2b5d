package transform

import "dataforge/internal/table"

// Geolocation aggregates the raw geolocation pings into a one-to-one lookup:
// one row per zip code prefix with the mean latitude/longitude and the modal
// state. Groups whose state values are all null keep a null state.
func Geolocation(t *table.Table, opts CategoricalOpts) *table.Table {
	t = clean(t)

	zipCol := t.ColumnIndex("geolocation_zip_code_prefix")
	latCol := t.ColumnIndex("geolocation_lat")
	lngCol := t.ColumnIndex("geolocation_lng")
	stateCol := t.ColumnIndex("geolocation_state")

	agg := table.New(t.Name,
		table.Column{Name: "geolocation_zip_code_prefix", Kind: t.Columns[zipCol].Kind},
		table.Column{Name: "avg_lat", Kind: table.Float},
		table.Column{Name: "avg_lng", Kind: table.Float},
		table.Column{Name: "state_mode", Kind: table.Text},
	)
	for _, g := range groupBy(t, zipCol) {
		agg.Rows = append(agg.Rows, []any{
			g.key,
			aggMean(t, latCol, g.rows),
			aggMean(t, lngCol, g.rows),
			aggMode(t, stateCol, g.rows),
		})
	}

	agg = agg.Rename(map[string]string{
		"geolocation_zip_code_prefix": "zip_code_prefix",
		"avg_lat":                     "latitude",
		"avg_lng":                     "longitude",
		"state_mode":                  "state",
	})
	return EncodeCategoricals(agg, opts)
}
