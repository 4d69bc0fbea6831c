// Package loader ingests the generated CSV files into the database,
// destructively recreating the five tables on every run.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopetl/shopetl/internal/csvio"
	"github.com/shopetl/shopetl/internal/schema"
	"github.com/shopetl/shopetl/internal/store"
)

// Result reports the rows loaded into one table.
type Result struct {
	Table string
	Rows  int64
}

// Run recreates the schema and loads every table whose CSV file exists
// in dataDir. A missing CSV loads zero rows; a missing dataDir is a
// not-found error before any table is touched.
func Run(ctx context.Context, st store.Store, dataDir string, logger *slog.Logger) ([]Result, error) {
	if _, err := os.Stat(dataDir); err != nil {
		return nil, fmt.Errorf("data directory %s: %w", dataDir, err)
	}

	if err := st.RecreateSchema(ctx); err != nil {
		return nil, fmt.Errorf("recreating schema: %w", err)
	}

	results := make([]Result, 0, len(schema.Tables))
	for _, t := range schema.Tables {
		n, err := loadTable(ctx, st, filepath.Join(dataDir, t.CSVFile()), t)
		if err != nil {
			return nil, err
		}
		logger.Info("table loaded", "table", t.Name, "rows", n)
		results = append(results, Result{Table: t.Name, Rows: n})
	}
	return results, nil
}

// loadTable reads one CSV and bulk-inserts its rows positionally in the
// table's column order, returning the resulting row count. Values are
// matched to columns by CSV header name, so header order is free.
func loadTable(ctx context.Context, st store.Store, csvPath string, t schema.Table) (int64, error) {
	if _, err := os.Stat(csvPath); os.IsNotExist(err) {
		return 0, nil
	}

	header, records, err := csvio.Read(csvPath)
	if err != nil {
		return 0, err
	}

	colIdx := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		colIdx[i] = -1
		for j, h := range header {
			if h == c.Name {
				colIdx[i] = j
				break
			}
		}
		if colIdx[i] == -1 {
			return 0, fmt.Errorf("%s: column %s missing from CSV header", csvPath, c.Name)
		}
	}

	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(t.Columns))
		for j, c := range t.Columns {
			v, err := coerce(c, rec[colIdx[j]])
			if err != nil {
				return 0, fmt.Errorf("%s row %d: %w", csvPath, i+1, err)
			}
			row[j] = v
		}
		rows[i] = row
	}

	if err := st.InsertRows(ctx, t.Name, t.ColumnNames(), rows); err != nil {
		return 0, err
	}
	return st.RowCount(ctx, t.Name)
}

// coerce converts one CSV field to the Go type matching the column.
func coerce(c schema.Column, raw string) (any, error) {
	switch c.Type {
	case schema.TypeInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: parsing %q as integer: %w", c.Name, raw, err)
		}
		return n, nil
	case schema.TypeReal:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: parsing %q as number: %w", c.Name, raw, err)
		}
		return f, nil
	default:
		return raw, nil
	}
}
