// Package validation certifies transactions, blocks and chains.
//
// Every check returns a Result that is either Success carrying the checked value or Failure
// carrying one or more messages. Checks are composed into a Pipeline that stops at the first
// Failure, so later checks may assume earlier ones held.
package validation

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrIllegalConstruction is the panic value when a Result is built other than through
// Success or Failure.
var ErrIllegalConstruction = errors.New("validation: result must be built with Success or Failure")

type outcome uint8

const (
	unset outcome = iota
	success
	failure
)

// Result of running a check over a value of type T. The zero value is not a valid Result.
type Result[T any] struct {
	outcome  outcome
	value    T
	messages []string
}

func Success[T any](value T) Result[T] {
	return Result[T]{outcome: success, value: value}
}

// Failure needs at least one message.
func Failure[T any](messages ...string) Result[T] {
	if len(messages) == 0 {
		panic(ErrIllegalConstruction)
	}
	return Result[T]{outcome: failure, messages: append([]string(nil), messages...)}
}

// FailureOf moves the messages of a failed result of another type.
func FailureOf[T, U any](r Result[U]) Result[T] {
	if r.IsSuccess() {
		panic(ErrIllegalConstruction)
	}
	return Failure[T](r.messages...)
}

func (r Result[T]) mustBeBuilt() {
	if r.outcome == unset {
		panic(ErrIllegalConstruction)
	}
}

func (r Result[T]) IsSuccess() bool {
	r.mustBeBuilt()
	return r.outcome == success
}

func (r Result[T]) IsFailure() bool {
	return !r.IsSuccess()
}

// Value returns the checked value and whether the result is a Success.
func (r Result[T]) Value() (T, bool) {
	r.mustBeBuilt()
	return r.value, r.outcome == success
}

// Messages is empty for a Success.
func (r Result[T]) Messages() []string {
	r.mustBeBuilt()
	return append([]string(nil), r.messages...)
}

// AndThen runs next on the value of a Success. A Failure is returned unchanged.
func (r Result[T]) AndThen(next func(T) Result[T]) Result[T] {
	if r.IsFailure() {
		return r
	}
	return next(r.value)
}

// Prefix prepends context to every message of a Failure.
func (r Result[T]) Prefix(prefix string) Result[T] {
	if r.IsSuccess() {
		return r
	}
	messages := make([]string, len(r.messages))
	for i, m := range r.messages {
		messages[i] = prefix + ": " + m
	}
	return Result[T]{outcome: failure, messages: messages}
}

// Err is nil for a Success and an *Error otherwise.
func (r Result[T]) Err() error {
	if r.IsSuccess() {
		return nil
	}
	return &Error{Messages: r.Messages()}
}

// Error carries the messages of a failed validation.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}
