package ddl

import (
	"reflect"
	"strings"
	"testing"
)

func dq(s string) string { return `"` + strings.ReplaceAll(s, `"`, `""`) + `"` }

func TestColumnClauses(t *testing.T) {
	t.Parallel()

	def := TableDef{
		FQN: "customers",
		Columns: []ColumnDef{
			{Name: "customer_id", SQLType: "INTEGER", PrimaryKey: true, Nullable: true},
			{Name: "name", SQLType: "TEXT", Nullable: true},
			{Name: "points", SQLType: "INTEGER", Default: "0"},
		},
	}
	got, err := ColumnClauses(def, dq, "test ddl")
	if err != nil {
		t.Fatalf("ColumnClauses() error = %v", err)
	}
	want := []string{
		`"customer_id" INTEGER NOT NULL`,
		`"name" TEXT`,
		`"points" INTEGER NOT NULL DEFAULT 0`,
		`PRIMARY KEY ("customer_id")`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ColumnClauses() = %#v, want %#v", got, want)
	}
}

func TestColumnClausesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		def     TableDef
		wantErr string
	}{
		{
			name:    "empty FQN",
			def:     TableDef{FQN: "  ", Columns: []ColumnDef{{Name: "id", SQLType: "INTEGER"}}},
			wantErr: "FQN must not be empty",
		},
		{
			name:    "no columns",
			def:     TableDef{FQN: "t"},
			wantErr: "at least one column",
		},
		{
			name:    "empty column name",
			def:     TableDef{FQN: "t", Columns: []ColumnDef{{Name: " ", SQLType: "INTEGER"}}},
			wantErr: "empty name",
		},
		{
			name:    "missing type",
			def:     TableDef{FQN: "t", Columns: []ColumnDef{{Name: "id"}}},
			wantErr: "missing SQLType",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ColumnClauses(tt.def, dq, "test ddl")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("ColumnClauses() error = %v, want containing %q", err, tt.wantErr)
			}
			if !strings.HasPrefix(err.Error(), "test ddl:") {
				t.Fatalf("error %q missing prefix", err)
			}
		})
	}
}

func TestResolveFillsOnlyMissingTypes(t *testing.T) {
	t.Parallel()

	def := TableDef{
		FQN: "t",
		Columns: []ColumnDef{
			{Name: "a", Type: "int"},
			{Name: "b", Type: "int", SQLType: "SMALLINT"},
		},
	}
	got := Resolve(def, func(kind string) string { return "X_" + kind })

	if got.Columns[0].SQLType != "X_int" {
		t.Fatalf("column a SQLType = %q, want X_int", got.Columns[0].SQLType)
	}
	if got.Columns[1].SQLType != "SMALLINT" {
		t.Fatalf("column b SQLType = %q, want SMALLINT", got.Columns[1].SQLType)
	}
	if def.Columns[0].SQLType != "" {
		t.Fatalf("Resolve mutated its input")
	}
}

func TestQuoteFQN(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"events", `"events"`},
		{"main.events", `"main"."events"`},
		{" .main..events. ", `"main"."events"`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := QuoteFQN(tt.in, dq); got != tt.want {
			t.Fatalf("QuoteFQN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTableDefNames(t *testing.T) {
	t.Parallel()

	def := TableDef{Columns: []ColumnDef{{Name: "a", PrimaryKey: true}, {Name: "b"}, {Name: "c", PrimaryKey: true}}}
	if got := def.ColumnNames(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("ColumnNames() = %v", got)
	}
	if got := def.PrimaryKey(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("PrimaryKey() = %v", got)
	}
}
