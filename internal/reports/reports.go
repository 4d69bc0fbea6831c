// Package reports runs the fixed aggregation queries and exports each
// result set to its own CSV file.
package reports

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopetl/shopetl/internal/csvio"
	"github.com/shopetl/shopetl/internal/store"
)

// Query pairs an output file name with the SQL producing it. The SQL is
// kept portable across the SQLite and PostgreSQL backends.
type Query struct {
	File string
	SQL  string
}

// Queries lists the four exports in the order they run.
var Queries = []Query{
	{
		File: "top_users_by_spending.csv",
		SQL: `SELECT
    u.user_id,
    u.name,
    u.email,
    SUM(o.total_amount) AS total_spent,
    COUNT(DISTINCT o.order_id) AS orders_count
FROM users u
JOIN orders o ON o.user_id = u.user_id
GROUP BY u.user_id, u.name, u.email
ORDER BY total_spent DESC
LIMIT 10`,
	},
	{
		File: "top_products_by_revenue.csv",
		SQL: `SELECT
    p.product_id,
    p.name,
    p.category,
    SUM(oi.line_total) AS revenue,
    SUM(oi.quantity) AS units_sold,
    COUNT(DISTINCT oi.order_id) AS orders_count
FROM products p
JOIN order_items oi ON oi.product_id = p.product_id
GROUP BY p.product_id, p.name, p.category
ORDER BY revenue DESC
LIMIT 10`,
	},
	{
		File: "avg_rating_per_product.csv",
		SQL: `SELECT
    p.product_id,
    p.name,
    p.category,
    ROUND(AVG(r.rating), 2) AS avg_rating,
    COUNT(r.review_id) AS review_count
FROM products p
JOIN reviews r ON r.product_id = p.product_id
GROUP BY p.product_id, p.name, p.category
ORDER BY avg_rating DESC, review_count DESC`,
	},
	{
		File: "country_level_revenue.csv",
		SQL: `SELECT
    u.country,
    SUM(o.total_amount) AS revenue,
    COUNT(DISTINCT o.order_id) AS orders_count,
    COUNT(DISTINCT u.user_id) AS users_count
FROM users u
JOIN orders o ON o.user_id = u.user_id
GROUP BY u.country
ORDER BY revenue DESC`,
	},
}

// Result reports one written export.
type Result struct {
	File string
	Rows int
}

// Run executes every query and writes its result set to outputDir,
// creating the directory if needed and overwriting existing files.
// Column headers come from the query result.
func Run(ctx context.Context, st store.Store, outputDir string, logger *slog.Logger) ([]Result, error) {
	results := make([]Result, 0, len(Queries))
	for _, q := range Queries {
		columns, rows, err := st.Query(ctx, q.SQL)
		if err != nil {
			return nil, fmt.Errorf("running query for %s: %w", q.File, err)
		}

		records := make([][]string, len(rows))
		for i, row := range rows {
			rec := make([]string, len(row))
			for j, v := range row {
				rec[j] = formatValue(v)
			}
			records[i] = rec
		}

		path := filepath.Join(outputDir, q.File)
		if err := csvio.Write(path, columns, records); err != nil {
			return nil, err
		}
		logger.Info("report written", "file", q.File, "rows", len(rows))
		results = append(results, Result{File: q.File, Rows: len(rows)})
	}
	return results, nil
}

// formatValue renders one query result value as a CSV field.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(t)
	}
}
