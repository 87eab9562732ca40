package storage

import (
	"context"
	"fmt"
	"strings"

	"smartsales/internal/schema"
)

// Customers returns every row of the customers table ordered by customer_id.
func (w *Warehouse) Customers(ctx context.Context) ([]schema.Customer, error) {
	var out []schema.Customer
	if err := w.readTable(ctx, &out, schema.Customers); err != nil {
		return nil, err
	}
	return out, nil
}

// Products returns every row of the products table ordered by product_id.
func (w *Warehouse) Products(ctx context.Context) ([]schema.Product, error) {
	var out []schema.Product
	if err := w.readTable(ctx, &out, schema.Products); err != nil {
		return nil, err
	}
	return out, nil
}

// Sales returns every row of the sales table ordered by transaction_id.
func (w *Warehouse) Sales(ctx context.Context) ([]schema.Sale, error) {
	var out []schema.Sale
	if err := w.readTable(ctx, &out, schema.Sales); err != nil {
		return nil, err
	}
	return out, nil
}

func (w *Warehouse) readTable(ctx context.Context, dest any, name string) error {
	t, ok := schema.Lookup(name)
	if !ok {
		return fmt.Errorf("storage: read %s: unknown table", name)
	}
	def := t.Def()
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(w.quoteAll(def.ColumnNames()), ", "),
		w.quoteFQN(def.FQN),
		strings.Join(w.quoteAll(def.PrimaryKey()), ", "),
	)
	if err := w.db.SelectContext(ctx, dest, q); err != nil {
		return fmt.Errorf("storage: read %s: %w", name, err)
	}
	return nil
}
