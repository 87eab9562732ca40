package ddl

// ColumnDef describes a single column in a table definition. It intentionally
// uses simple, database-agnostic fields.
//
// Fields:
//   - Name: logical column name (unquoted; quoting/escaping happens at render time)
//   - Type: logical type ("int", "text", "date", "decimal"); backends map it via MapType
//   - SQLType: target SQL type; when empty it is filled from Type by Resolve
//   - Nullable: whether NULL is allowed
//   - PrimaryKey: whether the column is part of the primary key
//   - Default: raw default expression (e.g., 'anon', CURRENT_TIMESTAMP)
type ColumnDef struct {
	Name       string
	Type       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
	Default    string
}

// ForeignKey declares that Column references RefTable(RefColumn). References
// are informational: renderers only emit them for engines that leave them
// unenforced by default.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// TableDef holds the fully-qualified table name (FQN), an ordered list of
// columns and any declared references. The FQN is expected in dotted form
// (e.g., "schema.table") and will be quoted/escaped by renderers as needed.
type TableDef struct {
	FQN         string
	Columns     []ColumnDef
	ForeignKeys []ForeignKey
}

// Resolve returns a copy of t whose columns all carry a concrete SQLType.
// Columns that already have one are left untouched.
func Resolve(t TableDef, mapType func(kind string) string) TableDef {
	out := t
	out.Columns = make([]ColumnDef, len(t.Columns))
	for i, c := range t.Columns {
		if c.SQLType == "" && mapType != nil {
			c.SQLType = mapType(c.Type)
		}
		out.Columns[i] = c
	}
	return out
}

// ColumnNames returns the column names of t in declaration order.
func (t TableDef) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// PrimaryKey returns the names of the primary-key columns of t in declaration
// order.
func (t TableDef) PrimaryKey() []string {
	var out []string
	for _, c := range t.Columns {
		if c.PrimaryKey {
			out = append(out, c.Name)
		}
	}
	return out
}
