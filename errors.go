// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrInterrupted signals cooperative cancellation. It is a bare sentinel —
// no payload, no stack capture — injected at the delivery boundary of a
// cancelable run, never raised from within a computation. Recovery
// combinators (Handle, HandleWith, Attempt) therefore never observe it.
var ErrInterrupted = errors.New("task: interrupted")

// ErrTimeout is raised when a bounded wait elapses before the computation
// resolves.
var ErrTimeout = errors.New("task: timed out")

// PanicError wraps a panic raised by user code inside a combinator,
// carrying the stack captured at the recovery point.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task: panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// recovered converts a recovered panic value into an error.
func recovered(v any) error {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

// protect invokes an effectful thunk, folding both a returned error and
// a raised panic into a Result. Every user-function invocation point inside
// the combinators goes through a boundary like this one: letting user code
// panic through the trampoline would corrupt the stack-safety guarantee.
func protect[A any](thunk func() (A, error)) (r Result[A]) {
	defer func() {
		if v := recover(); v != nil {
			r = Failure[A](recovered(v))
		}
	}()
	a, err := thunk()
	if err != nil {
		return Failure[A](err)
	}
	return Success(a)
}

// protectTask invokes a Task-producing thunk, converting a raised panic
// into an error.
func protectTask[A any](thunk func() Task[A]) (t Task[A], err error) {
	defer func() {
		if v := recover(); v != nil {
			err = recovered(v)
		}
	}()
	return thunk(), nil
}
