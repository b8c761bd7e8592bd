// Package result holds the success/failure outcome returned by every use case.
package result

import "fmt"

// Failure codes let a transport tell "not found" apart from "bad request".
const (
	CodeInvalid  = "invalid"
	CodeNotFound = "not_found"
	CodeInternal = "internal"
)

// Outcome is the type-erased view of a Result, used by Combine.
type Outcome interface {
	IsSuccess() bool
	IsFailure() bool
	Error() string
	Code() string
}

// Result is either a success carrying an optional value or a failure carrying
// a non-empty error message. The zero value is not valid; use Ok or Fail.
type Result[T any] struct {
	ok    bool
	value T
	err   string
	code  string
}

// newResult panics on a success that carries an error or a failure without one.
func newResult[T any](ok bool, value T, err, code string) Result[T] {
	if ok && err != "" {
		panic("InvalidOperation: a result cannot be successful and contain an error")
	}
	if !ok && err == "" {
		panic("InvalidOperation: a failing result needs to contain an error message")
	}

	return Result[T]{ok: ok, value: value, err: err, code: code}
}

func Ok[T any](value T) Result[T] {
	return newResult(true, value, "", "")
}

// Fail returns a failure with CodeInvalid.
func Fail[T any](err string) Result[T] {
	return FailWithCode[T](CodeInvalid, err)
}

func Failf[T any](format string, args ...any) Result[T] {
	return Fail[T](fmt.Sprintf(format, args...))
}

func FailWithCode[T any](code, err string) Result[T] {
	var zero T
	if code == "" {
		code = CodeInvalid
	}
	return newResult(false, zero, err, code)
}

func (r Result[T]) IsSuccess() bool { return r.ok }

func (r Result[T]) IsFailure() bool { return !r.ok }

// Error returns the failure message, empty for a success.
func (r Result[T]) Error() string { return r.err }

// Code returns the failure code, empty for a success.
func (r Result[T]) Code() string { return r.code }

// Value returns the carried value, or the zero value of T for a failure.
func (r Result[T]) Value() T {
	if !r.ok {
		var zero T
		return zero
	}
	return r.value
}

// ValueOrNil returns a pointer to a copy of the value, nil for a failure.
func (r Result[T]) ValueOrNil() *T {
	if !r.ok {
		return nil
	}
	v := r.value
	return &v
}

// Combine returns the first failure among outcomes, in order, or an empty success.
func Combine(outcomes ...Outcome) Result[struct{}] {
	for _, o := range outcomes {
		if o.IsFailure() {
			return FailWithCode[struct{}](o.Code(), o.Error())
		}
	}
	return Ok(struct{}{})
}
