// Package olap computes total sales per (customer region, product category)
// from the warehouse. Two engines produce the same result: an in-process
// dataframe engine built on gota, and a SQL engine that pushes the joins and
// grouping down into the warehouse.
package olap

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"

	"smartsales/internal/schema"
)

// Engines.
const (
	EngineDataframe = "dataframe"
	EngineSQL       = "sql"
)

// UnknownCategory replaces a missing product category.
const UnknownCategory = "Unknown"

// CategorySales is one aggregated row. Region is nil for sales whose customer
// is missing or has no region.
type CategorySales struct {
	Region     *string         `db:"region"`
	Category   string          `db:"category"`
	TotalSales decimal.Decimal `db:"total_sales"`
}

// RegionLabel returns the region, or "(none)" when it is nil.
func (c CategorySales) RegionLabel() string {
	if c.Region == nil {
		return "(none)"
	}
	return *c.Region
}

// Source is the read side of the warehouse.
type Source interface {
	Customers(ctx context.Context) ([]schema.Customer, error)
	Products(ctx context.Context) ([]schema.Product, error)
	Sales(ctx context.Context) ([]schema.Sale, error)
	Select(ctx context.Context, dest any, query string, args ...any) error
}

// Aggregate reads the warehouse through src and returns total sales per
// (region, category), sorted by region (nil first) then category.
func Aggregate(ctx context.Context, src Source, engine string) ([]CategorySales, error) {
	var (
		rows []CategorySales
		err  error
	)
	switch engine {
	case EngineDataframe, "":
		rows, err = aggregateFrames(ctx, src)
	case EngineSQL:
		rows, err = aggregateSQL(ctx, src)
	default:
		return nil, fmt.Errorf("olap: unknown engine %q", engine)
	}
	if err != nil {
		log.Printf("olap: aggregation failed engine=%s err=%v", engine, err)
		return nil, fmt.Errorf("olap: %w", err)
	}
	Sort(rows)
	return rows, nil
}

// Sort orders rows by region (nil first) then category.
func Sort(rows []CategorySales) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case a.Region == nil && b.Region != nil:
			return true
		case a.Region != nil && b.Region == nil:
			return false
		case a.Region != nil && *a.Region != *b.Region:
			return *a.Region < *b.Region
		}
		return a.Category < b.Category
	})
}

const categorySalesSQL = `SELECT c.region AS region,
       COALESCE(p.category, 'Unknown') AS category,
       COALESCE(SUM(s.sale_amount), 0) AS total_sales
FROM sales s
LEFT JOIN products p ON s.product_id = p.product_id
LEFT JOIN customers c ON s.customer_id = c.customer_id
GROUP BY c.region, COALESCE(p.category, 'Unknown')`

func aggregateSQL(ctx context.Context, src Source) ([]CategorySales, error) {
	var rows []CategorySales
	if err := src.Select(ctx, &rows, categorySalesSQL); err != nil {
		return nil, fmt.Errorf("sql engine: %w", err)
	}
	return rows, nil
}

func aggregateFrames(ctx context.Context, src Source) ([]CategorySales, error) {
	sales, err := src.Sales(ctx)
	if err != nil {
		return nil, err
	}
	products, err := src.Products(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := src.Customers(ctx)
	if err != nil {
		return nil, err
	}
	return CategorySalesByRegion(sales, products, customers)
}

// na is gota's marker for a missing value. Values carried through a join
// come out as this literal string.
const na = "NaN"

// CategorySalesByRegion left-joins sales to products on product_id and to
// customers on customer_id, then sums sale_amount per (region, category).
// A missing category becomes UnknownCategory; a missing amount counts as 0.
func CategorySalesByRegion(sales []schema.Sale, products []schema.Product, customers []schema.Customer) ([]CategorySales, error) {
	if len(sales) == 0 {
		return nil, nil
	}

	salesDF := dataframe.New(
		series.New(intKeys(len(sales), func(i int) *int64 { return sales[i].ProductID }), series.String, "product_id"),
		series.New(intKeys(len(sales), func(i int) *int64 { return sales[i].CustomerID }), series.String, "customer_id"),
		series.New(amounts(sales), series.String, "sale_amount"),
	)
	productsDF := dataframe.New(
		series.New(intKeys(len(products), func(i int) *int64 { return &products[i].ProductID }), series.String, "product_id"),
		series.New(texts(len(products), func(i int) *string { return products[i].Category }), series.String, "category"),
	)
	customersDF := dataframe.New(
		series.New(intKeys(len(customers), func(i int) *int64 { return &customers[i].CustomerID }), series.String, "customer_id"),
		series.New(texts(len(customers), func(i int) *string { return customers[i].Region }), series.String, "region"),
	)

	joined := salesDF.LeftJoin(productsDF, "product_id").LeftJoin(customersDF, "customer_id")
	if joined.Err != nil {
		return nil, fmt.Errorf("dataframe engine: join: %w", joined.Err)
	}

	regions := joined.Col("region").Records()
	categories := joined.Col("category").Records()
	amts := joined.Col("sale_amount").Records()

	type key struct {
		region    string
		hasRegion bool
		category  string
	}
	totals := map[key]decimal.Decimal{}
	var order []key
	for i := range regions {
		k := key{region: regions[i], hasRegion: regions[i] != na, category: categories[i]}
		if !k.hasRegion {
			k.region = ""
		}
		if k.category == na {
			k.category = UnknownCategory
		}

		amt := decimal.Zero
		if amts[i] != na {
			d, err := decimal.NewFromString(amts[i])
			if err != nil {
				return nil, fmt.Errorf("dataframe engine: sale_amount %q: %w", amts[i], err)
			}
			amt = d
		}

		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}
		totals[k] = totals[k].Add(amt)
	}

	out := make([]CategorySales, 0, len(order))
	for _, k := range order {
		row := CategorySales{Category: k.category, TotalSales: totals[k]}
		if k.hasRegion {
			r := k.region
			row.Region = &r
		}
		out = append(out, row)
	}
	Sort(out)
	return out, nil
}

// Frame renders rows as a dataframe with columns region, category and
// total_sales. A nil region is NaN; totals keep their exact decimal text.
func Frame(rows []CategorySales) dataframe.DataFrame {
	regions := make([]string, len(rows))
	categories := make([]string, len(rows))
	totals := make([]string, len(rows))
	for i, r := range rows {
		regions[i] = na
		if r.Region != nil {
			regions[i] = *r.Region
		}
		categories[i] = r.Category
		totals[i] = r.TotalSales.String()
	}
	return dataframe.New(
		series.New(regions, series.String, "region"),
		series.New(categories, series.String, "category"),
		series.New(totals, series.String, "total_sales"),
	)
}

func intKeys(n int, at func(int) *int64) []string {
	out := make([]string, n)
	for i := range out {
		if v := at(i); v != nil {
			out[i] = strconv.FormatInt(*v, 10)
		} else {
			out[i] = na
		}
	}
	return out
}

func texts(n int, at func(int) *string) []string {
	out := make([]string, n)
	for i := range out {
		if v := at(i); v != nil {
			out[i] = *v
		} else {
			out[i] = na
		}
	}
	return out
}

func amounts(sales []schema.Sale) []string {
	out := make([]string, len(sales))
	for i, s := range sales {
		if s.SaleAmount.Valid {
			out[i] = s.SaleAmount.Decimal.String()
		} else {
			out[i] = na
		}
	}
	return out
}
