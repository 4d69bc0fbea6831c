package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/shopetl/shopetl/internal/schema"
)

// PostgresStore implements Store on a PostgreSQL connection using pgx.
type PostgresStore struct {
	conn *pgx.Conn
}

// OpenPostgres connects to PostgreSQL with the given DSN.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres driver selected but no dsn configured")
	}
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to PostgreSQL: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("pinging PostgreSQL: %w", err)
	}
	return &PostgresStore{conn: conn}, nil
}

func (s *PostgresStore) RecreateSchema(ctx context.Context) error {
	for _, t := range schema.DropOrder() {
		if _, err := s.conn.Exec(ctx, t.DropSQL()); err != nil {
			return fmt.Errorf("dropping %s: %w", t.Name, err)
		}
	}
	for _, t := range schema.Tables {
		if _, err := s.conn.Exec(ctx, t.CreateSQL()); err != nil {
			return fmt.Errorf("creating %s: %w", t.Name, err)
		}
	}
	return nil
}

func (s *PostgresStore) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := s.conn.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copying into %s: %w", table, err)
	}
	return nil
}

func (s *PostgresStore) RowCount(ctx context.Context, table string) (int64, error) {
	var count int64
	if err := s.conn.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting rows in %s: %w", table, err)
	}
	return count, nil
}

func (s *PostgresStore) Query(ctx context.Context, query string) ([]string, [][]any, error) {
	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	descs := rows.FieldDescriptions()
	columns := make([]string, len(descs))
	for i, d := range descs {
		columns[i] = d.Name
	}

	var results [][]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, nil, fmt.Errorf("scanning row: %w", err)
		}
		for i, v := range vals {
			vals[i] = normalizePgValue(v)
		}
		results = append(results, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating rows: %w", err)
	}
	return columns, results, nil
}

// normalizePgValue maps pgx-specific result types onto the plain Go
// values the SQLite backend produces, so report formatting sees one
// shape regardless of backend.
func normalizePgValue(v any) any {
	switch t := v.(type) {
	case pgtype.Numeric:
		f, err := t.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}

func (s *PostgresStore) Close() error {
	return s.conn.Close(context.Background())
}
