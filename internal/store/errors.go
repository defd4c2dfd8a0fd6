package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRequiredField      = errors.New("null value in required field")
	ErrMapping            = errors.New("unable to map row")
	ErrUnsupportedDialect = errors.New("unsupported database product")
)

// RequiredFieldError is returned by Insert before any SQL is built.
type RequiredFieldError struct {
	Entity string
	Fields []string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Entity, ErrRequiredField, strings.Join(e.Fields, ", "))
}

func (e *RequiredFieldError) Unwrap() error {
	return ErrRequiredField
}

// MappingError names the table and column a row could not be mapped from.
type MappingError struct {
	Table  string
	Column string
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("%v: %s.%s: %s", ErrMapping, e.Table, e.Column, e.Reason)
}

func (e *MappingError) Unwrap() error {
	return ErrMapping
}

// UnsupportedDialectError carries the product marker that could not be resolved.
type UnsupportedDialectError struct {
	Product string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnsupportedDialect, e.Product)
}

func (e *UnsupportedDialectError) Unwrap() error {
	return ErrUnsupportedDialect
}
