package parsec

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrSyntax is wrapped by every ParseError.
var ErrSyntax = errors.New("syntax error")

// Result is the outcome of running a parser: either a value and the state
// after the consumed input, or a list of expectation messages and the state
// where the failure was detected.
//
// The two variants are only reachable through comma-ok accessors, so reading
// the value of a failure or the errors of a success is never undefined.
type Result[T any] struct {
	ok     bool
	value  T
	errors []string
	state  State
}

// Success builds a successful result.
func Success[T any](s State, v T) Result[T] {
	return Result[T]{ok: true, value: v, state: s}
}

// Failure builds a failed result. msgs are kept in order.
func Failure[T any](s State, msgs ...string) Result[T] {
	return Result[T]{errors: msgs, state: s}
}

// Ok reports whether the parser succeeded.
func (r Result[T]) Ok() bool {
	return r.ok
}

// Value returns the produced value. The boolean is false for failures, in
// which case the returned value is the zero value of T.
func (r Result[T]) Value() (T, bool) {
	if !r.ok {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Errors returns the expectation messages of a failure, or nil on success.
func (r Result[T]) Errors() []string {
	if r.ok {
		return nil
	}
	return r.errors
}

// State returns the state after the consumed input for a success, or the
// state where the failure was detected.
func (r Result[T]) State() State {
	return r.state
}

// Err converts a failure into a *ParseError. It returns nil on success.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	return &ParseError{
		Expected: slices.Clone(r.errors),
		Position: r.state.Position(),
	}
}

// Unwrap returns the value or the error, for callers at an API boundary.
func (r Result[T]) Unwrap() (T, error) {
	if !r.ok {
		var zero T
		return zero, r.Err()
	}
	return r.value, nil
}

func (r Result[T]) String() string {
	if r.ok {
		return fmt.Sprintf("success(%v) at %s", r.value, r.state)
	}
	return fmt.Sprintf("failure(%s) at %s", strings.Join(r.errors, "; "), r.state)
}

// failed re-types a failure so it can be returned from a parser of another
// result type. The value payload of a failure is never observable.
func failed[T, U any](r Result[U]) Result[T] {
	return Result[T]{errors: r.errors, state: r.state}
}

// Equal compares two results structurally. Successes are equal when their
// values are equal, failures when their message lists are equal. Positions
// are not compared.
func Equal[T comparable](a, b Result[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is Equal with a caller-supplied value comparison.
func EqualFunc[T any](a, b Result[T], eq func(T, T) bool) bool {
	if a.ok != b.ok {
		return false
	}
	if a.ok {
		return eq(a.value, b.value)
	}
	return slices.Equal(a.errors, b.errors)
}

// ParseError describes a failed parse at an API boundary.
type ParseError struct {
	Expected []string
	Position Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, strings.Join(e.Expected, "; "))
}

func (e *ParseError) Unwrap() error {
	return ErrSyntax
}
