// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// Result represents the two-case outcome of a Task evaluation:
// Failure carrying an error, or Success carrying a value.
// Exactly one case is populated.
type Result[A any] struct {
	failed bool
	err    error
	value  A
}

// Success creates a Success result.
func Success[A any](a A) Result[A] {
	return Result[A]{value: a}
}

// Failure creates a Failure result.
func Failure[A any](err error) Result[A] {
	return Result[A]{failed: true, err: err}
}

// IsSuccess returns true if this is a Success result.
func (r Result[A]) IsSuccess() bool {
	return !r.failed
}

// IsFailure returns true if this is a Failure result.
func (r Result[A]) IsFailure() bool {
	return r.failed
}

// Get returns the Success value and true, or zero and false.
func (r Result[A]) Get() (A, bool) {
	if r.failed {
		var zero A
		return zero, false
	}
	return r.value, true
}

// Err returns the Failure error, or nil for a Success.
func (r Result[A]) Err() error {
	return r.err
}

// MatchResult pattern matches on the Result, calling onFailure or onSuccess.
func MatchResult[A, T any](r Result[A], onFailure func(error) T, onSuccess func(A) T) T {
	if r.failed {
		return onFailure(r.err)
	}
	return onSuccess(r.value)
}

// MapResult applies a function to the Success value.
func MapResult[A, B any](r Result[A], f func(A) B) Result[B] {
	if r.failed {
		return Failure[B](r.err)
	}
	return Success(f(r.value))
}

// Either represents a value from one of two disjoint sources: Left or Right.
// Race uses it to tag which side of a race completed first.
type Either[A, B any] struct {
	isRight bool
	left    A
	right   B
}

// Left creates a Left value.
func Left[A, B any](a A) Either[A, B] {
	return Either[A, B]{isRight: false, left: a}
}

// Right creates a Right value.
func Right[A, B any](b B) Either[A, B] {
	return Either[A, B]{isRight: true, right: b}
}

// IsLeft returns true if this is a Left value.
func (e Either[A, B]) IsLeft() bool {
	return !e.isRight
}

// IsRight returns true if this is a Right value.
func (e Either[A, B]) IsRight() bool {
	return e.isRight
}

// GetLeft returns the Left value and true, or zero and false.
func (e Either[A, B]) GetLeft() (A, bool) {
	if !e.isRight {
		return e.left, true
	}
	var zero A
	return zero, false
}

// GetRight returns the Right value and true, or zero and false.
func (e Either[A, B]) GetRight() (B, bool) {
	if e.isRight {
		return e.right, true
	}
	var zero B
	return zero, false
}

// MatchEither pattern matches on the Either, calling onLeft or onRight.
func MatchEither[A, B, T any](e Either[A, B], onLeft func(A) T, onRight func(B) T) T {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}
