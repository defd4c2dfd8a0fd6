package models

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"
)

// Divider separates fields in a serialized record.
const Divider = "\u001F"

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validate checks the struct tags of a record, typically `validate:"required"` on fields
// that may not be nil.
func Validate(rec any) error {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate.Struct(rec)
}

// line renders "name=value" pairs joined by Divider. Nil values leave an empty slot.
type line struct {
	b strings.Builder
	n int
}

func (l *line) next(name string, present bool) bool {
	if l.n > 0 {
		l.b.WriteString(Divider)
	}
	l.n++
	if present {
		l.b.WriteString(name)
		l.b.WriteByte('=')
	}
	return present
}

func (l *line) str(name string, v *string) *line {
	if l.next(name, v != nil) {
		l.b.WriteString(*v)
	}
	return l
}

func (l *line) num(name string, v *int) *line {
	if l.next(name, v != nil) {
		l.b.WriteString(strconv.Itoa(*v))
	}
	return l
}

func (l *line) float(name string, v *float64) *line {
	if l.next(name, v != nil) {
		l.b.WriteString(strconv.FormatFloat(*v, 'f', -1, 64))
	}
	return l
}

func (l *line) date(name string, v *time.Time) *line {
	if l.next(name, v != nil) {
		l.b.WriteString(v.UTC().Format(dateLayout))
	}
	return l
}

func (l *line) stamp(name string, v *time.Time) *line {
	if l.next(name, v != nil) {
		l.b.WriteString(v.UTC().Format(dateTimeLayout))
	}
	return l
}

func (l *line) term(name string, v *TermKey) *line {
	if l.next(name, v != nil) {
		l.b.WriteString(v.String())
	}
	return l
}

func (l *line) String() string {
	return l.b.String()
}

func hashOf(s string) uint64 {
	return xxhash.Sum64String(s)
}

// DateOf truncates t to midnight UTC of its wall-clock date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a midnight UTC date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
