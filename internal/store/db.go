package store

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pacekeeper/internal/metrics"
)

// BaseStore is a Cache over a sqlx connection pool.
type BaseStore struct {
	DB       *sqlx.DB
	Dialect  Dialect
	Prefixes map[Schema]string
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

func (s *BaseStore) SchemaPrefix(slot Schema) string {
	return s.Prefixes[slot]
}

// Exec runs a statement and returns the affected row count.
func (s *BaseStore) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	op := operation(query)
	defer s.observe(op, time.Now())

	logger.Debug.Printf("[%s] %s %v", s.Dialect, query, args)
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues(string(s.Dialect), op, "error").Inc()
		return 0, fmt.Errorf("failed to execute %s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		metrics.QueriesTotal.WithLabelValues(string(s.Dialect), op, "error").Inc()
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	metrics.QueriesTotal.WithLabelValues(string(s.Dialect), op, "ok").Inc()
	return n, nil
}

// Query runs a statement and scans every row into a map.
func (s *BaseStore) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	op := operation(query)
	defer s.observe(op, time.Now())

	logger.Debug.Printf("[%s] %s %v", s.Dialect, query, args)
	rows, err := s.DB.QueryxContext(ctx, query, args...)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues(string(s.Dialect), op, "error").Inc()
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			metrics.QueriesTotal.WithLabelValues(string(s.Dialect), op, "error").Inc()
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, Row(row))
	}
	if err := rows.Err(); err != nil {
		metrics.QueriesTotal.WithLabelValues(string(s.Dialect), op, "error").Inc()
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	metrics.QueriesTotal.WithLabelValues(string(s.Dialect), op, "ok").Inc()
	return out, nil
}

func (s *BaseStore) observe(op string, start time.Time) {
	metrics.QueryDuration.WithLabelValues(string(s.Dialect), op).Observe(time.Since(start).Seconds())
}

func operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}

// ApplyMigrations runs the goose migrations found in dir of fsys.
func (s *BaseStore) ApplyMigrations(ctx context.Context, fsys fs.FS, dir, gooseDialect string) error {
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.DB.DB, dir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
