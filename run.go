// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"sync/atomic"
	"time"
)

// Run evaluates the Task, blocking the calling goroutine until the outcome
// is available. A Success unwraps to the value; a Failure surfaces as the
// returned error.
func (t Task[A]) Run() (A, error) {
	r := t.future.Run()
	if r.failed {
		var zero A
		return zero, r.err
	}
	return r.value, nil
}

// AttemptRun is Run without an error escape: any fault, including a panic
// raised outside the Task's own error channel (for example by an Async
// register function), is folded into a Failure.
func (t Task[A]) AttemptRun() (r Result[A]) {
	defer func() {
		if v := recover(); v != nil {
			r = Failure[A](recovered(v))
		}
	}()
	return t.future.Run()
}

// RunAsync evaluates the synchronous prefix on the calling goroutine and
// returns at the first asynchronous boundary. cb fires later, exactly once,
// with the final Result, on whatever goroutine completes the boundary.
func (t Task[A]) RunAsync(cb func(Result[A])) {
	t.future.RunAsync(cb)
}

// RunAsyncInterruptibly is RunAsync polling a shared cancellation flag at
// every step boundary. When the flag is observed set, evaluation aborts
// promptly and silently. Cancellation is cooperative: it is only observed
// between discrete steps, never inside a single non-yielding unit of work.
func (t Task[A]) RunAsyncInterruptibly(cb func(Result[A]), interrupt *atomic.Bool) {
	t.future.RunAsyncInterruptibly(cb, interrupt)
}

// RunAsyncCancelable is RunAsync returning a cancellation thunk.
//
// A single-consumer mailbox guards a completion latch so that exactly one
// of {natural Result, Failure(ErrInterrupted)} reaches cb, exactly once,
// regardless of whether cancellation races with natural completion.
// Invoking cancel requests interruption; after the Task has already
// completed it is a no-op. When interruption wins, the computation's own
// eventual result is discarded, and recovery combinators inside the Task
// never observe the interruption — it is injected here, at the delivery
// boundary.
func (t Task[A]) RunAsyncCancelable(cb func(Result[A])) (cancel func()) {
	interrupt := new(atomic.Bool)
	mb := new(mailbox)
	completed := false // confined to mb

	deliver := func(r Result[A]) {
		mb.Send(func() {
			if completed {
				return
			}
			completed = true
			cb(r)
		})
	}

	t.future.RunAsyncInterruptibly(deliver, interrupt)

	return func() {
		interrupt.Store(true)
		deliver(Failure[A](ErrInterrupted))
	}
}

// RunFor evaluates the Task, blocking for at most timeout.
// On expiry it returns ErrTimeout; the underlying computation is
// best-effort cancelled but may continue running in the background, its
// eventual result unobserved by this call.
func (t Task[A]) RunFor(timeout time.Duration) (A, error) {
	r := t.AttemptRunFor(timeout)
	if r.failed {
		var zero A
		return zero, r.err
	}
	return r.value, nil
}

// AttemptRunFor is RunFor returning the outcome as a Result.
func (t Task[A]) AttemptRunFor(timeout time.Duration) Result[A] {
	r, err := t.future.RunFor(timeout)
	if err != nil {
		return Failure[A](err)
	}
	return r
}

// Timed races the Task against a scheduled timer without blocking the
// calling goroutine: whichever resolves first determines the outcome, a
// Failure(ErrTimeout) or the Task's own Result. The losing side is
// interrupted best-effort.
func (t Task[A]) Timed(timeout time.Duration, s Scheduler) Task[A] {
	return Task[A]{future: FutureMap(FutureTimed(t.future, timeout, s), func(r Result[Result[A]]) Result[A] {
		if r.failed {
			return Failure[A](r.err)
		}
		return r.value
	})}
}
