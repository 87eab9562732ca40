package olap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"smartsales/internal/schema"
	"smartsales/internal/storage"
	_ "smartsales/internal/storage/sqlite"
)

func ptr[T any](v T) *T { return &v }

func amount(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func fixture() ([]schema.Sale, []schema.Product, []schema.Customer) {
	customers := []schema.Customer{
		{CustomerID: 1, Region: ptr("West")},
		{CustomerID: 2, Region: ptr("East")},
		{CustomerID: 3, Region: nil},
	}
	products := []schema.Product{
		{ProductID: 10, Category: ptr("Electronics")},
		{ProductID: 11, Category: ptr("Toys")},
		{ProductID: 12, Category: nil},
	}
	sales := []schema.Sale{
		{TransactionID: 1, CustomerID: ptr(int64(1)), ProductID: ptr(int64(10)), SaleAmount: amount("100")},
		{TransactionID: 2, CustomerID: ptr(int64(1)), ProductID: ptr(int64(10)), SaleAmount: amount("50")},
		{TransactionID: 3, CustomerID: ptr(int64(2)), ProductID: ptr(int64(12)), SaleAmount: amount("20.5")},
		{TransactionID: 4, CustomerID: ptr(int64(2)), ProductID: ptr(int64(99)), SaleAmount: amount("4.5")},
		{TransactionID: 5, CustomerID: ptr(int64(42)), ProductID: ptr(int64(11)), SaleAmount: amount("8")},
		{TransactionID: 6, CustomerID: ptr(int64(3)), ProductID: ptr(int64(11)), SaleAmount: amount("2")},
		{TransactionID: 7, CustomerID: ptr(int64(2)), ProductID: ptr(int64(11)), SaleAmount: decimal.NullDecimal{}},
		{TransactionID: 8, CustomerID: nil, ProductID: nil, SaleAmount: amount("1.25")},
	}
	return sales, products, customers
}

type wantRow struct {
	region   *string
	category string
	total    string
}

// wantFixture is the aggregate of fixture in sorted order.
func wantFixture() []wantRow {
	return []wantRow{
		{region: nil, category: "Toys", total: "10"},
		// Sale 8 has neither customer nor product.
		{region: nil, category: UnknownCategory, total: "1.25"},
		{region: ptr("East"), category: "Toys", total: "0"},
		{region: ptr("East"), category: UnknownCategory, total: "25"},
		{region: ptr("West"), category: "Electronics", total: "150"},
	}
}

func checkRows(t *testing.T, got []CategorySales, want []wantRow) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d rows %v, want %d", len(got), got, len(want))
	}
	for i, w := range want {
		g := got[i]
		if (g.Region == nil) != (w.region == nil) || (g.Region != nil && *g.Region != *w.region) {
			t.Fatalf("row %d region = %s, want %v", i, g.RegionLabel(), w.region)
		}
		if g.Category != w.category {
			t.Fatalf("row %d category = %q, want %q", i, g.Category, w.category)
		}
		if !g.TotalSales.Equal(decimal.RequireFromString(w.total)) {
			t.Fatalf("row %d (%s, %s) total = %s, want %s", i, g.RegionLabel(), g.Category, g.TotalSales, w.total)
		}
	}
}

func TestCategorySalesByRegion(t *testing.T) {
	t.Parallel()

	sales, products, customers := fixture()
	got, err := CategorySalesByRegion(sales, products, customers)
	if err != nil {
		t.Fatalf("CategorySalesByRegion() error = %v", err)
	}
	checkRows(t, got, wantFixture())
}

func TestCategorySalesByRegionSingleGroup(t *testing.T) {
	t.Parallel()

	got, err := CategorySalesByRegion(
		[]schema.Sale{
			{TransactionID: 1, CustomerID: ptr(int64(1)), ProductID: ptr(int64(1)), SaleAmount: amount("100")},
			{TransactionID: 2, CustomerID: ptr(int64(1)), ProductID: ptr(int64(1)), SaleAmount: amount("50")},
		},
		[]schema.Product{{ProductID: 1, Category: ptr("Electronics")}},
		[]schema.Customer{{CustomerID: 1, Region: ptr("West")}},
	)
	if err != nil {
		t.Fatalf("CategorySalesByRegion() error = %v", err)
	}
	checkRows(t, got, []wantRow{{region: ptr("West"), category: "Electronics", total: "150"}})
}

func TestCategorySalesByRegionEmpty(t *testing.T) {
	t.Parallel()

	got, err := CategorySalesByRegion(nil, nil, nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("CategorySalesByRegion(nil) = %v, %v; want empty", got, err)
	}

	// Sales without any products or customers loaded.
	got, err = CategorySalesByRegion(
		[]schema.Sale{{TransactionID: 1, CustomerID: ptr(int64(1)), ProductID: ptr(int64(1)), SaleAmount: amount("3")}},
		nil, nil,
	)
	if err != nil {
		t.Fatalf("CategorySalesByRegion() error = %v", err)
	}
	checkRows(t, got, []wantRow{{region: nil, category: UnknownCategory, total: "3"}})
}

func TestSort(t *testing.T) {
	t.Parallel()

	rows := []CategorySales{
		{Region: ptr("West"), Category: "A"},
		{Region: ptr("East"), Category: "B"},
		{Region: nil, Category: "Z"},
		{Region: ptr("East"), Category: "A"},
	}
	Sort(rows)
	want := []string{"(none)/Z", "East/A", "East/B", "West/A"}
	for i, r := range rows {
		if got := r.RegionLabel() + "/" + r.Category; got != want[i] {
			t.Fatalf("rows[%d] = %s, want %s", i, got, want[i])
		}
	}
}

func TestFrame(t *testing.T) {
	t.Parallel()

	df := Frame([]CategorySales{
		{Region: nil, Category: UnknownCategory, TotalSales: decimal.RequireFromString("1.25")},
		{Region: ptr("West"), Category: "Electronics", TotalSales: decimal.NewFromInt(150)},
	})
	if df.Err != nil {
		t.Fatalf("Frame() error = %v", df.Err)
	}
	if r, c := df.Dims(); r != 2 || c != 3 {
		t.Fatalf("Frame() dims = %dx%d, want 2x3", r, c)
	}
	if got := df.Col("region").IsNaN(); !got[0] || got[1] {
		t.Fatalf("region NaN mask = %v, want [true false]", got)
	}
	if got := df.Col("total_sales").Records(); got[1] != "150" {
		t.Fatalf("total_sales = %v", got)
	}
}

func loadWarehouse(t *testing.T) *storage.Warehouse {
	t.Helper()
	ctx := context.Background()
	w, err := storage.Open(ctx, storage.Config{Kind: "sqlite", DSN: filepath.Join(t.TempDir(), "dw.db")})
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	if err := w.EnsureSchema(ctx, schema.Defs()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	sales, products, customers := fixture()
	var cRows, pRows, sRows [][]any
	for _, c := range customers {
		cRows = append(cRows, []any{c.CustomerID, nil, c.Region, nil, nil, nil})
	}
	for _, p := range products {
		pRows = append(pRows, []any{p.ProductID, nil, p.Category, nil, nil, nil})
	}
	for _, s := range sales {
		var amt any
		if s.SaleAmount.Valid {
			amt = s.SaleAmount.Decimal
		}
		sRows = append(sRows, []any{s.TransactionID, nil, s.CustomerID, s.ProductID, nil, nil, amt, nil, nil})
	}
	load := func(name string, rows [][]any) storage.TableLoad {
		t, _ := schema.Lookup(name)
		return storage.TableLoad{Table: t.Name, Columns: t.ColumnNames(), Rows: rows}
	}
	loads := []storage.TableLoad{
		load(schema.Customers, cRows),
		load(schema.Products, pRows),
		load(schema.Sales, sRows),
	}
	if _, err := w.ReplaceAll(ctx, loads); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	return w
}

func TestAggregateEnginesAgree(t *testing.T) {
	t.Parallel()

	w := loadWarehouse(t)
	for _, engine := range []string{EngineDataframe, EngineSQL} {
		t.Run(engine, func(t *testing.T) {
			got, err := Aggregate(context.Background(), w, engine)
			if err != nil {
				t.Fatalf("Aggregate(%s) error = %v", engine, err)
			}
			checkRows(t, got, wantFixture())
		})
	}
}

func TestAggregateUnknownEngine(t *testing.T) {
	t.Parallel()

	if _, err := Aggregate(context.Background(), nil, "spark"); err == nil {
		t.Fatalf("Aggregate(spark) error = nil, want error")
	}
}
