package transform

import (
	"math"
	"reflect"
	"testing"
	"time"

	"dataforge/internal/table"
)

func TestGeolocationAggregatesPerZip(t *testing.T) {
	in := table.New("geolocation",
		table.Column{Name: "geolocation_zip_code_prefix", Kind: table.Int},
		table.Column{Name: "geolocation_lat", Kind: table.Float},
		table.Column{Name: "geolocation_lng", Kind: table.Float},
		table.Column{Name: "geolocation_city", Kind: table.Text},
		table.Column{Name: "geolocation_state", Kind: table.Text},
	)
	in.Rows = [][]any{
		{int64(1046), -23.5, -46.6, "sao paulo", "SP"},
		{int64(1046), -23.7, -46.8, "sao paulo", "SP"},
		{int64(1046), -23.6, -46.7, "sao paulo", "RJ"},
		{int64(20031), -22.9, -43.2, "rio de janeiro", "RJ"},
		{nil, -1.0, -1.0, "nowhere", "XX"}, // null key rows are dropped
	}

	out := Geolocation(in, DefaultCategoricalOpts())

	want := []string{"zip_code_prefix", "latitude", "longitude", "state"}
	if !reflect.DeepEqual(out.ColumnNames(), want) {
		t.Fatalf("columns = %v, want %v", out.ColumnNames(), want)
	}
	if out.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2", out.NumRows())
	}

	// Groups come out sorted ascending by zip.
	row := out.DecodedRow(0)
	if row[0] != int64(1046) {
		t.Fatalf("first zip = %v, want 1046", row[0])
	}
	if lat := row[1].(float64); math.Abs(lat-(-23.6)) > 1e-9 {
		t.Errorf("latitude = %v, want -23.6", lat)
	}
	if lng := row[2].(float64); math.Abs(lng-(-46.7)) > 1e-9 {
		t.Errorf("longitude = %v, want -46.7", lng)
	}
	// Modal state; cleaning lowercased the raw values.
	if row[3] != "sp" {
		t.Errorf("state = %v, want sp", row[3])
	}

	if row := out.DecodedRow(1); row[0] != int64(20031) || row[3] != "rj" {
		t.Errorf("second group = %v", row)
	}
}

func TestOrdersEngineersDayDeltas(t *testing.T) {
	in := table.New("orders",
		table.Column{Name: "order_id", Kind: table.Text},
		table.Column{Name: "customer_id", Kind: table.Text},
		table.Column{Name: "order_status", Kind: table.Text},
		table.Column{Name: "order_purchase_timestamp", Kind: table.Text},
		table.Column{Name: "order_approved_at", Kind: table.Text},
		table.Column{Name: "order_delivered_carrier_date", Kind: table.Text},
		table.Column{Name: "order_delivered_customer_date", Kind: table.Text},
		table.Column{Name: "order_estimated_delivery_date", Kind: table.Text},
	)
	in.Rows = [][]any{
		{"o1", "c1", "delivered",
			"2018-01-01 00:00:00",
			"2018-01-01 12:00:00",
			"2018-01-03 08:00:00",
			"2018-01-08 12:00:00",
			"2018-01-10"},
		{"o2", "c2", "shipped",
			"2018-02-01 00:00:00",
			"2018-02-01 06:00:00",
			"2018-02-02 00:00:00",
			nil, // not yet delivered
			"2018-02-15"},
		{"o3", "c3", "created",
			"not a timestamp", nil, nil, nil, nil},
	}

	out := Orders(in, DefaultCategoricalOpts())

	idx := func(name string) int {
		i := out.ColumnIndex(name)
		if i < 0 {
			t.Fatalf("column %q missing from %v", name, out.ColumnNames())
		}
		return i
	}
	delivery := idx("delivery_time_days")
	approval := idx("approval_time_days")
	lateness := idx("delivery_lateness_days")

	// o1: delivered 7.5 days after purchase → 7 whole days; approved same
	// day → 0; estimated 1.5 days after delivery → 1 (positive = early).
	row := out.DecodedRow(0)
	if row[delivery] != int64(7) || row[approval] != int64(0) || row[lateness] != int64(1) {
		t.Errorf("o1 deltas = %v %v %v, want 7 0 1", row[delivery], row[approval], row[lateness])
	}

	// o2: no delivery date, so delivery and lateness are null.
	row = out.DecodedRow(1)
	if row[delivery] != nil || row[lateness] != nil {
		t.Errorf("o2 deltas = %v %v, want nil nil", row[delivery], row[lateness])
	}
	if row[approval] != int64(0) {
		t.Errorf("o2 approval = %v, want 0", row[approval])
	}

	// o3: the unparseable purchase timestamp coerces to null and every
	// derived delta stays null.
	row = out.DecodedRow(2)
	if row[idx("purchase")] != nil {
		t.Errorf("o3 purchase = %v, want nil", row[idx("purchase")])
	}
	if row[delivery] != nil || row[approval] != nil || row[lateness] != nil {
		t.Errorf("o3 deltas = %v %v %v, want all nil", row[delivery], row[approval], row[lateness])
	}
}

func TestOrdersLateDeliveryIsNegative(t *testing.T) {
	in := table.New("orders",
		table.Column{Name: "order_id", Kind: table.Text},
		table.Column{Name: "order_purchase_timestamp", Kind: table.Text},
		table.Column{Name: "order_delivered_customer_date", Kind: table.Text},
		table.Column{Name: "order_estimated_delivery_date", Kind: table.Text},
	)
	in.Rows = [][]any{
		{"o1", "2018-01-01 00:00:00", "2018-01-12 06:00:00", "2018-01-10"},
	}

	out := Orders(in, DefaultCategoricalOpts())
	row := out.DecodedRow(0)
	// Estimated 2.25 days before actual delivery: floor(-2.25) = -3.
	if got := row[out.ColumnIndex("delivery_lateness_days")]; got != int64(-3) {
		t.Fatalf("lateness = %v, want -3", got)
	}
}

func TestOrderPaymentsAggregatesPerOrder(t *testing.T) {
	in := table.New("order_payments",
		table.Column{Name: "order_id", Kind: table.Text},
		table.Column{Name: "payment_sequential", Kind: table.Int},
		table.Column{Name: "payment_type", Kind: table.Text},
		table.Column{Name: "payment_installments", Kind: table.Int},
		table.Column{Name: "payment_value", Kind: table.Int},
	)
	in.Rows = [][]any{
		{"a", int64(1), "credit_card", int64(2), int64(50)},
		{"a", int64(2), "voucher", int64(1), int64(30)},
		{"a", int64(3), "credit_card", int64(1), int64(0)},
		{"b", int64(1), "boleto", int64(1), int64(10)},
	}

	out := OrderPayments(in, DefaultCategoricalOpts())

	want := []string{"id", "total_paid", "num_payments", "payment_chunk_count", "payment_type_mode"}
	if !reflect.DeepEqual(out.ColumnNames(), want) {
		t.Fatalf("columns = %v, want %v", out.ColumnNames(), want)
	}
	if out.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2", out.NumRows())
	}

	row := out.DecodedRow(0)
	if row[0] != "a" || row[1] != int64(80) || row[2] != int64(2) || row[3] != int64(3) {
		t.Fatalf("order a = %v, want [a 80 2 3 credit_card]", row)
	}
	if row[4] != "credit_card" {
		t.Errorf("order a payment_type_mode = %v, want credit_card", row[4])
	}

	if row := out.DecodedRow(1); row[0] != "b" || row[1] != int64(10) || row[3] != int64(1) {
		t.Errorf("order b = %v", row)
	}
}

func TestOrderPaymentsModeTieBreaksToSmallest(t *testing.T) {
	in := table.New("order_payments",
		table.Column{Name: "order_id", Kind: table.Text},
		table.Column{Name: "payment_sequential", Kind: table.Int},
		table.Column{Name: "payment_type", Kind: table.Text},
		table.Column{Name: "payment_installments", Kind: table.Int},
		table.Column{Name: "payment_value", Kind: table.Float},
	)
	in.Rows = [][]any{
		{"a", int64(1), "voucher", int64(1), 1.0},
		{"a", int64(2), "boleto", int64(1), 1.0},
	}

	out := OrderPayments(in, DefaultCategoricalOpts())
	if got := out.DecodedRow(0)[4]; got != "boleto" {
		t.Fatalf("tied mode = %v, want boleto", got)
	}
}

func TestOrderReviewsAggregatesPerOrder(t *testing.T) {
	in := table.New("order_reviews",
		table.Column{Name: "review_id", Kind: table.Text},
		table.Column{Name: "order_id", Kind: table.Text},
		table.Column{Name: "review_score", Kind: table.Int},
		table.Column{Name: "review_comment_title", Kind: table.Text},
		table.Column{Name: "review_comment_message", Kind: table.Text},
		table.Column{Name: "review_creation_date", Kind: table.Text},
		table.Column{Name: "review_answer_timestamp", Kind: table.Text},
	)
	in.Rows = [][]any{
		{"r1", "a", int64(4), nil, nil, "2018-03-01 10:00:00", "2018-03-02 09:00:00"},
		{"r2", "a", int64(5), "bom", "chegou rapido", "2018-03-05 10:00:00", "2018-03-06 09:00:00"},
		{"r3", "b", int64(1), nil, "ruim", "2018-04-01 00:00:00", "2018-04-03 00:00:00"},
	}

	out := OrderReviews(in, DefaultCategoricalOpts())

	want := []string{"id", "num_reviews", "score_avg", "review_date_latest", "answer_date_latest"}
	if !reflect.DeepEqual(out.ColumnNames(), want) {
		t.Fatalf("columns = %v, want %v", out.ColumnNames(), want)
	}

	row := out.DecodedRow(0)
	if row[0] != "a" || row[1] != int64(2) {
		t.Fatalf("order a = %v", row)
	}
	if got := row[2].(float64); math.Abs(got-4.5) > 1e-9 {
		t.Errorf("score_avg = %v, want 4.5", got)
	}
	wantLatest := time.Date(2018, 3, 5, 10, 0, 0, 0, time.UTC)
	if got, ok := row[3].(time.Time); !ok || !got.Equal(wantLatest) {
		t.Errorf("review_date_latest = %v, want %v", row[3], wantLatest)
	}
}

func TestProductsFeaturesAndImputation(t *testing.T) {
	in := table.New("products",
		table.Column{Name: "product_id", Kind: table.Text},
		table.Column{Name: "product_category_name", Kind: table.Text},
		table.Column{Name: "product_name_lenght", Kind: table.Int},
		table.Column{Name: "product_description_lenght", Kind: table.Int},
		table.Column{Name: "product_photos_qty", Kind: table.Int},
		table.Column{Name: "product_weight_g", Kind: table.Int},
		table.Column{Name: "product_length_cm", Kind: table.Int},
		table.Column{Name: "product_height_cm", Kind: table.Int},
		table.Column{Name: "product_width_cm", Kind: table.Int},
	)
	in.Rows = [][]any{
		{"p1", "perfumaria", int64(40), int64(200), int64(2), int64(100), int64(10), int64(2), int64(5)},
		{"p2", nil, nil, int64(150), int64(1), nil, int64(20), int64(4), int64(5)},
		{"p3", "perfumaria", int64(60), int64(300), int64(3), int64(300), nil, int64(4), int64(5)},
	}

	out := Products(in, DefaultCategoricalOpts())

	idx := func(name string) int {
		i := out.ColumnIndex(name)
		if i < 0 {
			t.Fatalf("column %q missing from %v", name, out.ColumnNames())
		}
		return i
	}

	// Volume from raw dimensions, before any imputation.
	vol := idx("volume_cm3")
	if got := out.DecodedRow(0)[vol]; got != 100.0 {
		t.Errorf("p1 volume = %v, want 100", got)
	}
	if got := out.DecodedRow(1)[vol]; got != 400.0 {
		t.Errorf("p2 volume = %v, want 400", got)
	}
	// p3 has no length, so its volume is imputed with the median of the
	// other two: (100+400)/2 = 250.
	if got := out.DecodedRow(2)[vol]; got != 250.0 {
		t.Errorf("p3 volume = %v, want 250", got)
	}

	// Missing weight imputed with the column median (100, 300 → 200).
	if got := out.DecodedRow(1)[idx("weight_g")]; got != 200.0 {
		t.Errorf("p2 weight = %v, want 200", got)
	}

	// Missing category becomes the literal "unknown".
	if got := out.DecodedRow(1)[idx("category")]; got != "unknown" {
		t.Errorf("p2 category = %v, want unknown", got)
	}

	// Count columns are integers and stay nullable.
	if got := out.DecodedRow(0)[idx("name_length")]; got != int64(40) {
		t.Errorf("p1 name_length = %v (%T), want int64(40)", got, got)
	}
	if got := out.DecodedRow(1)[idx("name_length")]; got != nil {
		t.Errorf("p2 name_length = %v, want nil", got)
	}
}

func TestSimpleRenameTables(t *testing.T) {
	items := table.New("order_items",
		table.Column{Name: "order_id", Kind: table.Text},
		table.Column{Name: "order_item_id", Kind: table.Int},
		table.Column{Name: "product_id", Kind: table.Text},
		table.Column{Name: "seller_id", Kind: table.Text},
		table.Column{Name: "price", Kind: table.Float},
		table.Column{Name: "freight_value", Kind: table.Float},
	)
	items.Rows = [][]any{{"o1", int64(1), "p1", "s1", 9.9, 1.2}}
	got := OrderItems(items, DefaultCategoricalOpts()).ColumnNames()
	want := []string{"id", "item", "product", "seller", "price", "freight"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order_items columns = %v, want %v", got, want)
	}

	sellers := table.New("sellers",
		table.Column{Name: "seller_id", Kind: table.Text},
		table.Column{Name: "seller_zip_code_prefix", Kind: table.Int},
		table.Column{Name: "seller_city", Kind: table.Text},
		table.Column{Name: "seller_state", Kind: table.Text},
	)
	sellers.Rows = [][]any{{"s1", int64(1046), "sao paulo", "sp"}}
	got = Sellers(sellers, DefaultCategoricalOpts()).ColumnNames()
	want = []string{"id", "zip_code_prefix", "city", "state"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sellers columns = %v, want %v", got, want)
	}

	xlat := table.New("product_category_name_translation",
		table.Column{Name: "product_category_name", Kind: table.Text},
		table.Column{Name: "product_category_name_english", Kind: table.Text},
	)
	xlat.Rows = [][]any{{"perfumaria", "perfumery"}}
	got = CategoryTranslation(xlat, DefaultCategoricalOpts()).ColumnNames()
	want = []string{"category", "category_english"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("translation columns = %v, want %v", got, want)
	}
}
