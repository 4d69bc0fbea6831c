package schema

import (
	"strings"
	"testing"
)

func TestFiveTables(t *testing.T) {
	if len(Tables) != 5 {
		t.Fatalf("expected 5 tables, got %d", len(Tables))
	}

	want := []string{"users", "products", "orders", "order_items", "reviews"}
	for i, name := range want {
		if Tables[i].Name != name {
			t.Errorf("table %d: expected %s, got %s", i, name, Tables[i].Name)
		}
	}
}

func TestDropOrderIsChildFirst(t *testing.T) {
	order := DropOrder()
	if order[0].Name != "reviews" || order[1].Name != "order_items" {
		t.Errorf("expected dependents first in drop order, got %s, %s", order[0].Name, order[1].Name)
	}
	if order[len(order)-1].Name != "users" {
		t.Errorf("expected users last in drop order, got %s", order[len(order)-1].Name)
	}
}

func TestCreateSQL(t *testing.T) {
	orders, ok := ByName("orders")
	if !ok {
		t.Fatal("orders table not found")
	}

	sql := orders.CreateSQL()
	if !strings.HasPrefix(sql, "CREATE TABLE orders (") {
		t.Errorf("unexpected create statement: %s", sql)
	}
	if !strings.Contains(sql, "order_id INTEGER PRIMARY KEY") {
		t.Errorf("expected integer primary key in: %s", sql)
	}
	if !strings.Contains(sql, "total_amount DOUBLE PRECISION") {
		t.Errorf("expected double precision total_amount in: %s", sql)
	}
}

func TestColumnNamesMatchCSVContract(t *testing.T) {
	users, _ := ByName("users")
	want := []string{"user_id", "name", "email", "phone", "address", "city", "country", "signup_date"}
	got := users.ColumnNames()
	if len(got) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if users.CSVFile() != "users.csv" {
		t.Errorf("unexpected csv file name: %s", users.CSVFile())
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, ok := ByName("shipments"); ok {
		t.Error("expected lookup miss for unknown table")
	}
}
