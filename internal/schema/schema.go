package schema

import (
	"fmt"
	"strings"
)

// Column types shared by both storage backends. SQLite treats
// DOUBLE PRECISION as REAL affinity, so the same DDL works everywhere.
const (
	TypeInteger = "INTEGER"
	TypeReal    = "DOUBLE PRECISION"
	TypeText    = "TEXT"
)

// Column describes one table column.
type Column struct {
	Name       string
	Type       string
	PrimaryKey bool
}

// Table describes one destination table and its CSV counterpart.
type Table struct {
	Name    string
	Columns []Column
}

// Tables lists the five pipeline tables in parent-before-child order.
// Creation follows this order; drops run in reverse so dependents go first.
var Tables = []Table{
	{
		Name: "users",
		Columns: []Column{
			{Name: "user_id", Type: TypeInteger, PrimaryKey: true},
			{Name: "name", Type: TypeText},
			{Name: "email", Type: TypeText},
			{Name: "phone", Type: TypeText},
			{Name: "address", Type: TypeText},
			{Name: "city", Type: TypeText},
			{Name: "country", Type: TypeText},
			{Name: "signup_date", Type: TypeText},
		},
	},
	{
		Name: "products",
		Columns: []Column{
			{Name: "product_id", Type: TypeInteger, PrimaryKey: true},
			{Name: "name", Type: TypeText},
			{Name: "category", Type: TypeText},
			{Name: "price", Type: TypeReal},
			{Name: "currency", Type: TypeText},
			{Name: "stock_qty", Type: TypeInteger},
			{Name: "created_at", Type: TypeText},
		},
	},
	{
		Name: "orders",
		Columns: []Column{
			{Name: "order_id", Type: TypeInteger, PrimaryKey: true},
			{Name: "user_id", Type: TypeInteger},
			{Name: "order_date", Type: TypeText},
			{Name: "status", Type: TypeText},
			{Name: "total_amount", Type: TypeReal},
		},
	},
	{
		Name: "order_items",
		Columns: []Column{
			{Name: "order_item_id", Type: TypeInteger, PrimaryKey: true},
			{Name: "order_id", Type: TypeInteger},
			{Name: "product_id", Type: TypeInteger},
			{Name: "quantity", Type: TypeInteger},
			{Name: "unit_price", Type: TypeReal},
			{Name: "line_total", Type: TypeReal},
		},
	},
	{
		Name: "reviews",
		Columns: []Column{
			{Name: "review_id", Type: TypeInteger, PrimaryKey: true},
			{Name: "user_id", Type: TypeInteger},
			{Name: "product_id", Type: TypeInteger},
			{Name: "rating", Type: TypeInteger},
			{Name: "review_date", Type: TypeText},
			{Name: "review_text", Type: TypeText},
		},
	},
}

// ByName returns the table definition with the given name.
func ByName(name string) (Table, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// ColumnNames returns the column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// CSVFile returns the CSV file name that feeds this table.
func (t Table) CSVFile() string {
	return t.Name + ".csv"
}

// CreateSQL renders the CREATE TABLE statement for this table.
func (t Table) CreateSQL() string {
	defs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		def := fmt.Sprintf("%s %s", c.Name, c.Type)
		if c.PrimaryKey {
			def += " PRIMARY KEY"
		}
		defs[i] = def
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", t.Name, strings.Join(defs, ", "))
}

// DropSQL renders the DROP TABLE statement for this table.
func (t Table) DropSQL() string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", t.Name)
}

// DropOrder returns the tables in child-before-parent order, the order
// drops must run in even though FK constraints are not enforced.
func DropOrder() []Table {
	out := make([]Table, len(Tables))
	for i, t := range Tables {
		out[len(Tables)-1-i] = t
	}
	return out
}
