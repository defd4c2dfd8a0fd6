// Package nullsafe orders and compares optional (pointer) values.
//
// A nil value sorts before any non-nil value and two nils are equal.
package nullsafe

import (
	"cmp"
	"strings"
	"time"
)

// Compare orders two optional values of an ordered type.
func Compare[T cmp.Ordered](a, b *T) int {
	return CompareFunc(a, b, cmp.Compare[T])
}

// CompareFunc orders two optional values using fn once both are present.
func CompareFunc[T any](a, b *T, fn func(x, y T) int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return fn(*a, *b)
}

// CompareTime orders two optional instants.
func CompareTime(a, b *time.Time) int {
	return CompareFunc(a, b, func(x, y time.Time) int { return x.Compare(y) })
}

// CompareFold orders two optional strings ignoring case.
func CompareFold(a, b *string) int {
	return CompareFunc(a, b, func(x, y string) int {
		return strings.Compare(strings.ToLower(x), strings.ToLower(y))
	})
}

// Equal reports whether two optional values are both nil or hold equal values.
func Equal[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// EqualTime is Equal for instants, using time.Time.Equal.
func EqualTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Chain is an ordered list of comparison steps; the first non-zero step wins.
type Chain[T any] struct {
	steps []func(a, b T) int
}

// Order starts an empty chain.
func Order[T any]() *Chain[T] {
	return &Chain[T]{}
}

// Then appends a step and returns the chain.
func (c *Chain[T]) Then(step func(a, b T) int) *Chain[T] {
	c.steps = append(c.steps, step)
	return c
}

// Compare runs the steps in order.
func (c *Chain[T]) Compare(a, b T) int {
	for _, step := range c.steps {
		if r := step(a, b); r != 0 {
			return r
		}
	}
	return 0
}

// By builds a step from a field extractor over an ordered type.
func By[T any, F cmp.Ordered](get func(T) *F) func(a, b T) int {
	return func(a, b T) int { return Compare(get(a), get(b)) }
}

// ByTime builds a step from an instant extractor.
func ByTime[T any](get func(T) *time.Time) func(a, b T) int {
	return func(a, b T) int { return CompareTime(get(a), get(b)) }
}

// ByFold builds a case-insensitive step from a string extractor.
func ByFold[T any](get func(T) *string) func(a, b T) int {
	return func(a, b T) int { return CompareFold(get(a), get(b)) }
}

// ByFunc builds a step from an extractor and a comparator for present values.
func ByFunc[T, F any](get func(T) *F, fn func(x, y F) int) func(a, b T) int {
	return func(a, b T) int { return CompareFunc(get(a), get(b), fn) }
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
