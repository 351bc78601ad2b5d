package transform

import "dataforge/internal/table"

// OrderReviews casts the review date columns, replaces null review text with
// empty strings, and aggregates reviews to one row per order: review count,
// mean score, and the latest creation/answer dates.
func OrderReviews(t *table.Table, opts CategoricalOpts) *table.Table {
	t = clean(t)
	t = parseTimeColumns(t, "review_creation_date", "review_answer_timestamp")
	t = fillText(t, "", "review_comment_title", "review_comment_message")

	orderCol := t.ColumnIndex("order_id")
	idCol := t.ColumnIndex("review_id")
	scoreCol := t.ColumnIndex("review_score")
	createdCol := t.ColumnIndex("review_creation_date")
	answeredCol := t.ColumnIndex("review_answer_timestamp")

	agg := table.New(t.Name,
		table.Column{Name: "order_id", Kind: t.Columns[orderCol].Kind},
		table.Column{Name: "review_count", Kind: table.Int},
		table.Column{Name: "avg_review_score", Kind: table.Float},
		table.Column{Name: "latest_review_date", Kind: table.Time},
		table.Column{Name: "latest_answer_date", Kind: table.Time},
	)
	for _, g := range groupBy(t, orderCol) {
		agg.Rows = append(agg.Rows, []any{
			g.key,
			aggCount(t, idCol, g.rows),
			aggMean(t, scoreCol, g.rows),
			aggMax(t, createdCol, g.rows),
			aggMax(t, answeredCol, g.rows),
		})
	}

	agg = agg.Rename(map[string]string{
		"order_id":           "id",
		"review_count":       "num_reviews",
		"avg_review_score":   "score_avg",
		"latest_review_date": "review_date_latest",
		"latest_answer_date": "answer_date_latest",
	})
	return EncodeCategoricals(agg, opts)
}

// fillText returns a copy of the table with null cells of the named Text
// columns replaced by the given value. Missing columns are ignored.
func fillText(t *table.Table, value string, names ...string) *table.Table {
	out := t.Copy()
	for _, name := range names {
		i := out.ColumnIndex(name)
		if i < 0 || out.Columns[i].Kind != table.Text {
			continue
		}
		for _, row := range out.Rows {
			if row[i] == nil {
				row[i] = value
			}
		}
	}
	return out
}
