package transform

import "dataforge/internal/table"

// OrderPayments summarizes payment records to one row per order: total amount
// paid, the highest installment count, how many payment chunks were recorded,
// and the most frequent payment type.
func OrderPayments(t *table.Table, opts CategoricalOpts) *table.Table {
	t = clean(t)

	orderCol := t.ColumnIndex("order_id")
	valueCol := t.ColumnIndex("payment_value")
	instCol := t.ColumnIndex("payment_installments")
	seqCol := t.ColumnIndex("payment_sequential")
	typeCol := t.ColumnIndex("payment_type")

	agg := table.New(t.Name,
		table.Column{Name: "order_id", Kind: t.Columns[orderCol].Kind},
		table.Column{Name: "total_payment_value", Kind: t.Columns[valueCol].Kind},
		table.Column{Name: "max_installments", Kind: t.Columns[instCol].Kind},
		table.Column{Name: "payment_chunk_count", Kind: table.Int},
		table.Column{Name: "main_payment_type", Kind: table.Text},
	)
	for _, g := range groupBy(t, orderCol) {
		agg.Rows = append(agg.Rows, []any{
			g.key,
			aggSum(t, valueCol, g.rows),
			aggMax(t, instCol, g.rows),
			aggCount(t, seqCol, g.rows),
			aggMode(t, typeCol, g.rows),
		})
	}

	agg = agg.Rename(map[string]string{
		"order_id":            "id",
		"total_payment_value": "total_paid",
		"max_installments":    "num_payments",
		"main_payment_type":   "payment_type_mode",
	})
	return EncodeCategoricals(agg, opts)
}
