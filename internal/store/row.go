package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row is one result row keyed by lower-case column name.
type Row map[string]any

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func (r Row) value(col string) any {
	if v, ok := r[col]; ok {
		return v
	}
	return r[strings.ToLower(col)]
}

// Has reports whether the row carries a column at all.
func (r Row) Has(col string) bool {
	_, ok := r[col]
	return ok
}

// String reads a trimmed string; nil when the column is null or missing.
func (r Row) String(col string) *string {
	switch v := r.value(col).(type) {
	case nil:
		return nil
	case string:
		s := strings.TrimSpace(v)
		return &s
	case []byte:
		s := strings.TrimSpace(string(v))
		return &s
	default:
		s := fmt.Sprint(v)
		return &s
	}
}

// Int reads an integer column.
func (r Row) Int(col string) (*int, error) {
	switch v := r.value(col).(type) {
	case nil:
		return nil, nil
	case int64:
		n := int(v)
		return &n, nil
	case int32:
		n := int(v)
		return &n, nil
	case int:
		return &v, nil
	case float64:
		n := int(v)
		return &n, nil
	case string:
		return parseInt(col, v)
	case []byte:
		return parseInt(col, string(v))
	default:
		return nil, fmt.Errorf("column %s: unexpected %T for integer", col, v)
	}
}

func parseInt(col, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		n = int(f)
	}
	return &n, nil
}

// DateTime reads a timestamp as its wall-clock value in UTC.
func (r Row) DateTime(col string) (*time.Time, error) {
	var t time.Time
	switch v := r.value(col).(type) {
	case nil:
		return nil, nil
	case time.Time:
		t = v
	case string:
		parsed, err := parseTime(col, v)
		if err != nil || parsed == nil {
			return nil, err
		}
		t = *parsed
	case []byte:
		parsed, err := parseTime(col, string(v))
		if err != nil || parsed == nil {
			return nil, err
		}
		t = *parsed
	default:
		return nil, fmt.Errorf("column %s: unexpected %T for timestamp", col, v)
	}
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return &wall, nil
}

// Date reads a date column; any time of day is dropped.
func (r Row) Date(col string) (*time.Time, error) {
	t, err := r.DateTime(col)
	if err != nil || t == nil {
		return t, err
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d, nil
}

func parseTime(col, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("column %s: unparseable time %q", col, s)
}

// Mapper accumulates the first error while reading a row, so FromRow functions can read
// every column and check once.
type Mapper struct {
	Table string
	Row   Row
	err   error
}

func NewMapper(table string, row Row) *Mapper {
	return &Mapper{Table: table, Row: row}
}

func (m *Mapper) fail(col, reason string) {
	if m.err == nil {
		m.err = &MappingError{Table: m.Table, Column: col, Reason: reason}
	}
}

func (m *Mapper) String(col string) *string {
	return m.Row.String(col)
}

func (m *Mapper) Int(col string) *int {
	v, err := m.Row.Int(col)
	if err != nil {
		m.fail(col, err.Error())
	}
	return v
}

func (m *Mapper) Date(col string) *time.Time {
	v, err := m.Row.Date(col)
	if err != nil {
		m.fail(col, err.Error())
	}
	return v
}

func (m *Mapper) DateTime(col string) *time.Time {
	v, err := m.Row.DateTime(col)
	if err != nil {
		m.fail(col, err.Error())
	}
	return v
}

// Require records a mapping error for the first listed column that is null or missing.
func (m *Mapper) Require(cols ...string) {
	for _, col := range cols {
		if m.Row.value(col) == nil {
			m.fail(col, "null in required column")
			return
		}
	}
}

// Fail records a mapping error for col.
func (m *Mapper) Fail(col, reason string) {
	m.fail(col, reason)
}

func (m *Mapper) Err() error {
	return m.err
}
