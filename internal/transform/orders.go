package transform

import "dataforge/internal/table"

// ordersTimestampColumns are cast to Time before feature engineering, with
// unparseable values coerced to null.
var ordersTimestampColumns = []string{
	"order_purchase_timestamp",
	"order_approved_at",
	"order_delivered_carrier_date",
	"order_delivered_customer_date",
	"order_estimated_delivery_date",
}

// Orders cleans the orders table, casts its timestamp columns, shortens
// column names, and engineers whole-day time deltas:
//
//	delivery_time_days      = customer_delivery − purchase
//	approval_time_days      = approved − purchase
//	delivery_lateness_days  = estimated_delivery − customer_delivery
//	                          (negative means the order arrived late)
//
// A null operand propagates a null delta; no timestamp failure ever raises
// past this function.
func Orders(t *table.Table, opts CategoricalOpts) *table.Table {
	t = clean(t)
	t = parseTimeColumns(t, ordersTimestampColumns...)
	t = t.Rename(map[string]string{
		"order_id":                      "id",
		"customer_id":                   "customer",
		"order_status":                  "status",
		"order_purchase_timestamp":      "purchase",
		"order_approved_at":             "approved",
		"order_delivered_carrier_date":  "carrier_delivery",
		"order_delivered_customer_date": "customer_delivery",
		"order_estimated_delivery_date": "estimated_delivery",
	})

	purchase := t.ColumnIndex("purchase")
	approved := t.ColumnIndex("approved")
	delivered := t.ColumnIndex("customer_delivery")
	estimated := t.ColumnIndex("estimated_delivery")

	t.Columns = append(t.Columns,
		table.Column{Name: "delivery_time_days", Kind: table.Int},
		table.Column{Name: "approval_time_days", Kind: table.Int},
		table.Column{Name: "delivery_lateness_days", Kind: table.Int},
	)
	for i, row := range t.Rows {
		row = append(row,
			wholeDays(row[delivered], row[purchase]),
			wholeDays(row[approved], row[purchase]),
			wholeDays(row[estimated], row[delivered]),
		)
		t.Rows[i] = row
	}

	return EncodeCategoricals(t, opts)
}
