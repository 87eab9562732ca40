package ddl

import (
	"strings"
	"testing"

	gddl "smartsales/internal/ddl"
)

func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	def := gddl.TableDef{
		FQN: "public.sales",
		Columns: []gddl.ColumnDef{
			{Name: "transaction_id", SQLType: "BIGINT", PrimaryKey: true, Nullable: true},
			{Name: "sale_amount", SQLType: "NUMERIC(18, 2)", Nullable: true},
		},
		ForeignKeys: []gddl.ForeignKey{{Column: "customer_id", RefTable: "customers", RefColumn: "customer_id"}},
	}

	got, err := BuildCreateTableSQL(def)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL() error = %v", err)
	}
	want := "" +
		`CREATE TABLE IF NOT EXISTS "public"."sales" (` + "\n" +
		`  "transaction_id" BIGINT NOT NULL,` + "\n" +
		`  "sale_amount" NUMERIC(18, 2),` + "\n" +
		`  PRIMARY KEY ("transaction_id")` + "\n" +
		`);`
	if got != want {
		t.Fatalf("BuildCreateTableSQL() =\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(got, "REFERENCES") {
		t.Fatalf("postgres DDL must not declare enforced references:\n%s", got)
	}
}

func TestBuildCreateTableSQLErrors(t *testing.T) {
	t.Parallel()

	_, err := BuildCreateTableSQL(gddl.TableDef{FQN: "t"})
	if err == nil || !strings.HasPrefix(err.Error(), "postgres ddl:") {
		t.Fatalf("BuildCreateTableSQL() error = %v, want postgres ddl error", err)
	}
}
