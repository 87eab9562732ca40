// Package schema describes the smart sales warehouse: the three tables, their
// logical column types, the prepared input file each one is loaded from, and
// the explicit source-to-warehouse column mapping.
package schema

import (
	"github.com/shopspring/decimal"

	"smartsales/internal/ddl"
)

// Table names.
const (
	Customers = "customers"
	Products  = "products"
	Sales     = "sales"
)

// Logical column types understood by every backend's MapType.
const (
	TypeInt     = "int"
	TypeText    = "text"
	TypeDate    = "date"
	TypeDecimal = "decimal"
)

// Column maps one prepared-input column onto its warehouse column.
type Column struct {
	Source     string // header in the prepared CSV, e.g. "CustomerID"
	Name       string // warehouse column, e.g. "customer_id"
	Type       string // logical type
	PrimaryKey bool
}

// Table binds a warehouse table to the prepared file that feeds it.
type Table struct {
	Name        string
	File        string
	Columns     []Column
	ForeignKeys []ddl.ForeignKey
}

// Def returns the backend-neutral table definition for t.
func (t Table) Def() ddl.TableDef {
	cols := make([]ddl.ColumnDef, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = ddl.ColumnDef{
			Name:       c.Name,
			Type:       c.Type,
			Nullable:   !c.PrimaryKey,
			PrimaryKey: c.PrimaryKey,
		}
	}
	return ddl.TableDef{FQN: t.Name, Columns: cols, ForeignKeys: t.ForeignKeys}
}

// ColumnNames returns the warehouse column names in load order.
func (t Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Types returns warehouse column name -> logical type.
func (t Table) Types() map[string]string {
	out := make(map[string]string, len(t.Columns))
	for _, c := range t.Columns {
		out[c.Name] = c.Type
	}
	return out
}

// Tables returns the warehouse tables in dependency order: referenced tables
// come before the tables that reference them.
func Tables() []Table {
	return []Table{
		{
			Name: Customers,
			File: "customers_data_prepared.csv",
			Columns: []Column{
				{Source: "CustomerID", Name: "customer_id", Type: TypeInt, PrimaryKey: true},
				{Source: "Name", Name: "name", Type: TypeText},
				{Source: "Region", Name: "region", Type: TypeText},
				{Source: "JoinDate", Name: "join_date", Type: TypeDate},
				{Source: "LoyaltyPoints", Name: "loyalty_points", Type: TypeInt},
				{Source: "PreferredContactMethod", Name: "preferred_contact_method", Type: TypeText},
			},
		},
		{
			Name: Products,
			File: "products_data_prepared.csv",
			Columns: []Column{
				{Source: "ProductID", Name: "product_id", Type: TypeInt, PrimaryKey: true},
				{Source: "ProductName", Name: "product_name", Type: TypeText},
				{Source: "Category", Name: "category", Type: TypeText},
				{Source: "UnitPrice", Name: "unit_price", Type: TypeDecimal},
				{Source: "YearAdded", Name: "year_added", Type: TypeInt},
				{Source: "Supplier", Name: "supplier", Type: TypeText},
			},
		},
		{
			Name: Sales,
			File: "sales_data_prepared.csv",
			Columns: []Column{
				{Source: "TransactionID", Name: "transaction_id", Type: TypeInt, PrimaryKey: true},
				{Source: "SaleDate", Name: "sale_date", Type: TypeDate},
				{Source: "CustomerID", Name: "customer_id", Type: TypeInt},
				{Source: "ProductID", Name: "product_id", Type: TypeInt},
				{Source: "StoreID", Name: "store_id", Type: TypeInt},
				{Source: "CampaignID", Name: "campaign_id", Type: TypeInt},
				{Source: "SaleAmount", Name: "sale_amount", Type: TypeDecimal},
				{Source: "BonusPoints", Name: "bonus_points", Type: TypeInt},
				{Source: "PaymentType", Name: "payment_type", Type: TypeText},
			},
			ForeignKeys: []ddl.ForeignKey{
				{Column: "customer_id", RefTable: Customers, RefColumn: "customer_id"},
				{Column: "product_id", RefTable: Products, RefColumn: "product_id"},
			},
		},
	}
}

// Lookup returns the table named name.
func Lookup(name string) (Table, bool) {
	for _, t := range Tables() {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// Defs returns the table definitions of Tables in the same order.
func Defs() []ddl.TableDef {
	tables := Tables()
	out := make([]ddl.TableDef, len(tables))
	for i, t := range tables {
		out[i] = t.Def()
	}
	return out
}

// Customer is a row of the customers table.
type Customer struct {
	CustomerID             int64   `db:"customer_id"`
	Name                   *string `db:"name"`
	Region                 *string `db:"region"`
	JoinDate               *string `db:"join_date"`
	LoyaltyPoints          *int64  `db:"loyalty_points"`
	PreferredContactMethod *string `db:"preferred_contact_method"`
}

// Product is a row of the products table. Category is frequently NULL in the
// prepared data.
type Product struct {
	ProductID   int64               `db:"product_id"`
	ProductName *string             `db:"product_name"`
	Category    *string             `db:"category"`
	UnitPrice   decimal.NullDecimal `db:"unit_price"`
	YearAdded   *int64              `db:"year_added"`
	Supplier    *string             `db:"supplier"`
}

// Sale is a row of the sales table. CustomerID and ProductID reference rows
// that may be absent.
type Sale struct {
	TransactionID int64               `db:"transaction_id"`
	SaleDate      *string             `db:"sale_date"`
	CustomerID    *int64              `db:"customer_id"`
	ProductID     *int64              `db:"product_id"`
	StoreID       *int64              `db:"store_id"`
	CampaignID    *int64              `db:"campaign_id"`
	SaleAmount    decimal.NullDecimal `db:"sale_amount"`
	BonusPoints   *int64              `db:"bonus_points"`
	PaymentType   *string             `db:"payment_type"`
}
