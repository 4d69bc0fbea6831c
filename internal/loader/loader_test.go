package loader

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopetl/shopetl/internal/config"
	"github.com/shopetl/shopetl/internal/csvio"
	"github.com/shopetl/shopetl/internal/datagen"
	"github.com/shopetl/shopetl/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func generateData(t *testing.T, dir string) *datagen.Dataset {
	t.Helper()
	ds, err := datagen.Run(config.GenerateConfig{
		Users: 10, Products: 5, Orders: 20, MaxReviews: 30, Seed: 7,
	}, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := ds.WriteCSVs(dir); err != nil {
		t.Fatal(err)
	}
	return ds
}

func openStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.OpenSQLite(filepath.Join(t.TempDir(), "ecom.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLoadCountsMatchCSVs(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	ds := generateData(t, dataDir)
	st := openStore(t)

	results, err := Run(ctx, st, dataDir, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]int{
		"users":       len(ds.Users),
		"products":    len(ds.Products),
		"orders":      len(ds.Orders),
		"order_items": len(ds.OrderItems),
		"reviews":     len(ds.Reviews),
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	for _, r := range results {
		if int(r.Rows) != want[r.Table] {
			t.Errorf("%s: loaded %d rows, csv has %d", r.Table, r.Rows, want[r.Table])
		}
	}
}

func TestLoadMissingCSVIsZeroRows(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	generateData(t, dataDir)
	if err := os.Remove(filepath.Join(dataDir, "reviews.csv")); err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	st := openStore(t)

	results, err := Run(ctx, st, dataDir, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, r := range results {
		if r.Table == "reviews" && r.Rows != 0 {
			t.Errorf("expected 0 reviews loaded, got %d", r.Rows)
		}
	}
}

func TestLoadMissingDataDir(t *testing.T) {
	st := openStore(t)

	_, err := Run(context.Background(), st, filepath.Join(t.TempDir(), "nope"), discardLogger())
	if err == nil {
		t.Fatal("expected error for missing data directory")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	generateData(t, dataDir)
	st := openStore(t)

	first, err := Run(ctx, st, dataDir, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Run(ctx, st, dataDir, discardLogger())
	if err != nil {
		t.Fatal(err)
	}

	for i := range first {
		if first[i].Rows != second[i].Rows {
			t.Errorf("%s: first load %d rows, second %d", first[i].Table, first[i].Rows, second[i].Rows)
		}
	}
}

func TestLoadMalformedNumeric(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	generateData(t, dataDir)

	header := []string{"order_id", "user_id", "order_date", "status", "total_amount"}
	bad := [][]string{{"1", "1", "2025-01-02 10:00:00", "pending", "not-a-number"}}
	if err := csvio.Write(filepath.Join(dataDir, "orders.csv"), header, bad); err != nil {
		t.Fatal(err)
	}
	st := openStore(t)

	_, err := Run(ctx, st, dataDir, discardLogger())
	if err == nil {
		t.Fatal("expected error for malformed numeric value")
	}
}

func TestLoadMissingHeaderColumn(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	generateData(t, dataDir)

	if err := csvio.Write(filepath.Join(dataDir, "orders.csv"),
		[]string{"order_id", "user_id"}, [][]string{{"1", "1"}}); err != nil {
		t.Fatal(err)
	}
	st := openStore(t)

	_, err := Run(ctx, st, dataDir, discardLogger())
	if err == nil {
		t.Fatal("expected error for missing column in CSV header")
	}
}
