package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/go-playground/validator/v10"

	"github.com/shrimpsizemoose/pacekeeper/internal/models"
)

// Table maps a record type onto one physical table. Statements are built with squirrel in
// the placeholder format of the dialect, so values never appear in SQL text.
type Table[T any] struct {
	Entity string
	Name   string
	// Slot selects the schema prefix; leave empty for unqualified tables.
	Slot    Schema
	Format  squirrel.PlaceholderFormat
	Columns []string
	// Order is the ORDER BY of QueryAll, normally the key columns.
	Order  []string
	Values func(rec *T) []any
	Key    func(rec *T) squirrel.Eq
	Map    func(row Row) (*T, error)
}

// Qualified returns the table name, prefixed when the slot has a prefix.
func (t *Table[T]) Qualified(c Cache) string {
	if t.Slot == "" {
		return t.Name
	}
	if prefix := c.SchemaPrefix(t.Slot); prefix != "" {
		return prefix + "." + t.Name
	}
	return t.Name
}

func (t *Table[T]) sql() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(t.Format)
}

// CheckRequired validates rec and reports missing required fields as a
// RequiredFieldError.
func CheckRequired(entity string, rec any) error {
	err := models.Validate(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return &RequiredFieldError{Entity: entity, Fields: fields}
	}
	return fmt.Errorf("%s: %w", entity, err)
}

// Insert adds one row. Required fields are checked before any SQL is built.
func (t *Table[T]) Insert(ctx context.Context, c Cache, rec *T) (bool, error) {
	if err := CheckRequired(t.Entity, rec); err != nil {
		return false, err
	}
	query, args, err := t.sql().
		Insert(t.Qualified(c)).
		Columns(t.Columns...).
		Values(t.Values(rec)...).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build %s insert: %w", t.Entity, err)
	}
	return t.execOne(ctx, c, query, args)
}

// Delete removes the row matching the record's key.
func (t *Table[T]) Delete(ctx context.Context, c Cache, rec *T) (bool, error) {
	query, args, err := t.sql().
		Delete(t.Qualified(c)).
		Where(t.Key(rec)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build %s delete: %w", t.Entity, err)
	}
	return t.execOne(ctx, c, query, args)
}

// Update sets the given columns on rows matching where. It reports whether exactly one
// row changed.
func (t *Table[T]) Update(ctx context.Context, c Cache, set map[string]any, where squirrel.Eq) (bool, error) {
	query, args, err := t.sql().
		Update(t.Qualified(c)).
		SetMap(set).
		Where(where).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build %s update: %w", t.Entity, err)
	}
	return t.execOne(ctx, c, query, args)
}

func (t *Table[T]) execOne(ctx context.Context, c Cache, query string, args []any) (bool, error) {
	n, err := c.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Select returns every row matching where (all rows when where is nil), ordered by the
// given columns.
func (t *Table[T]) Select(ctx context.Context, c Cache, where squirrel.Sqlizer, orderBy ...string) ([]T, error) {
	b := t.sql().Select(t.Columns...).From(t.Qualified(c))
	if where != nil {
		b = b.Where(where)
	}
	if len(orderBy) > 0 {
		b = b.OrderBy(orderBy...)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", t.Entity, err)
	}

	rows, err := c.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		rec, err := t.Map(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

// One returns the first row matching where, or nil when there is none.
func (t *Table[T]) One(ctx context.Context, c Cache, where squirrel.Sqlizer) (*T, error) {
	recs, err := t.Select(ctx, c, where)
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return &recs[0], nil
}

// QueryAll returns every row of the table in key order.
func (t *Table[T]) QueryAll(ctx context.Context, c Cache) ([]T, error) {
	return t.Select(ctx, c, nil, t.Order...)
}

// FromRow maps one result row.
func (t *Table[T]) FromRow(row Row) (*T, error) {
	return t.Map(row)
}

// Val unwraps an optional field into a driver value; nil stays a SQL NULL.
func Val[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
