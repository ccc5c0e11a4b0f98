// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"sync/atomic"
	"time"
)

// Future is the executor primitive: a trampolined deferred computation of
// a plain value of type A. It knows nothing about failure — the error
// channel is layered on top by [Task], which specializes A to [Result].
//
// A Future carries an explicit frame chain instead of nested closures.
// Evaluation processes frames iteratively, so arbitrarily long
// FutureBind/FutureMap chains never grow the call stack.
//
// Futures are immutable values. Evaluating a Future does not mutate it;
// re-running one built from FutureSuspend re-invokes its thunk.
type Future[A any] struct {
	// Value holds the computed value if this is a completed computation.
	// Valid when Frame is ReturnFrame.
	Value A

	// Frame holds the next continuation frame.
	Frame Frame
}

// FutureReturn creates a completed computation with the given value.
func FutureReturn[A any](a A) Future[A] {
	return Future[A]{
		Value: a,
		Frame: ReturnFrame{},
	}
}

// FutureSuspend defers producing the computation itself until evaluation.
// The thunk runs inside the trampoline loop, making it the building block
// for stack-safe recursion.
func FutureSuspend[A any](thunk func() Future[A]) Future[A] {
	var zero A
	return Future[A]{
		Value: zero,
		Frame: &SuspendFrame{
			Thunk: func() Future[Erased] { return eraseFuture(thunk()) },
			Next:  ReturnFrame{},
		},
	}
}

// FutureAsync wraps a callback-registering function as a computation.
// Evaluation suspends at this boundary: register is invoked exactly once
// per evaluation, and the callback it receives must be invoked exactly once
// with the result.
func FutureAsync[A any](register func(callback func(A))) Future[A] {
	var zero A
	return Future[A]{
		Value: zero,
		Frame: &AsyncFrame{
			Register: func(cb func(Erased)) {
				register(func(a A) { cb(a) })
			},
			Next: ReturnFrame{},
		},
	}
}

// FutureBind sequences two computations (monadic bind).
// The produced computation is spliced in place of the bind frame, so chains
// of any length evaluate in constant stack space. f is deferred: it runs
// during evaluation, never at construction.
func FutureBind[A, B any](m Future[A], f func(A) Future[B]) Future[B] {
	bf := &BindFrame{
		F:    func(a Erased) Future[Erased] { return eraseFuture(f(a.(A))) },
		Next: ReturnFrame{},
	}
	var zero B
	return Future[B]{
		Value: zero,
		Frame: ChainFrames(seedFrame(m), bf),
	}
}

// FutureMap applies a pure function to the result of a computation.
//
// Allocation note: FutureMap is equivalent to FutureBind(m, compose(FutureReturn, f))
// but avoids the intermediate computation value, making it the preferred
// choice when the transformation produces no further frames.
func FutureMap[A, B any](m Future[A], f func(A) B) Future[B] {
	mf := &MapFrame{
		F:    func(a Erased) Erased { return f(a.(A)) },
		Next: ReturnFrame{},
	}
	var zero B
	return Future[B]{
		Value: zero,
		Frame: ChainFrames(seedFrame(m), mf),
	}
}

// eraseFuture converts a typed Future into its erased form for the frame chain.
func eraseFuture[A any](m Future[A]) Future[Erased] {
	return Future[Erased]{Value: Erased(m.Value), Frame: m.Frame}
}

// seedFrame returns the carrier frames for m. A completed computation holds
// its result in the typed Value field, which is lost when only the Frame is
// chained on; a valueFrame re-seeds it into the erased pipeline.
func seedFrame[A any](m Future[A]) Frame {
	if _, ok := m.Frame.(ReturnFrame); ok {
		return &valueFrame{v: Erased(m.Value)}
	}
	return m.Frame
}

// suspension is an evaluation parked at an asynchronous boundary:
// the boundary's registration function plus the frames that remain
// after the boundary resolves.
type suspension struct {
	register func(func(Erased))
	rest     Frame
}

// evalFuture is the iterative trampoline. It processes frames until the
// computation completes, suspends on an AsyncFrame, or observes the
// cooperative interrupt flag at a step boundary.
//
// Returns (value, nil, false) on completion, (zero, suspension, false) when
// parked, or (zero, nil, true) when interrupted.
func evalFuture(current Erased, frame Frame, interrupt *atomic.Bool) (Erased, *suspension, bool) {
	for {
		if interrupt != nil && interrupt.Load() {
			return nil, nil, true
		}

		// Flatten chained frames
		if cf, ok := frame.(*chainedFrame); ok {
			if nested, ok := cf.first.(*chainedFrame); ok {
				frame = &chainedFrame{
					first: nested.first,
					rest:  ChainFrames(nested.rest, cf.rest),
				}
				continue
			}
			switch f := cf.first.(type) {
			case ReturnFrame:
				frame = cf.rest
			case *valueFrame:
				current = f.v
				frame = cf.rest
			case *BindFrame:
				next := f.F(current)
				current = next.Value
				frame = ChainFrames(ChainFrames(next.Frame, f.Next), cf.rest)
			case *MapFrame:
				current = f.F(current)
				frame = ChainFrames(f.Next, cf.rest)
			case *SuspendFrame:
				next := f.Thunk()
				current = next.Value
				frame = ChainFrames(ChainFrames(next.Frame, f.Next), cf.rest)
			case *AsyncFrame:
				return nil, &suspension{
					register: f.Register,
					rest:     ChainFrames(f.Next, cf.rest),
				}, false
			default:
				panic("task: unknown frame type in chain")
			}
			continue
		}

		switch f := frame.(type) {
		case ReturnFrame:
			return current, nil, false
		case *valueFrame:
			current = f.v
			frame = ReturnFrame{}
		case *BindFrame:
			next := f.F(current)
			current = next.Value
			frame = ChainFrames(next.Frame, f.Next)
		case *MapFrame:
			current = f.F(current)
			frame = f.Next
		case *SuspendFrame:
			next := f.Thunk()
			current = next.Value
			frame = ChainFrames(next.Frame, f.Next)
		case *AsyncFrame:
			return nil, &suspension{register: f.Register, rest: f.Next}, false
		default:
			panic("task: unknown frame type")
		}
	}
}

// drive evaluates to completion across asynchronous boundaries.
// The synchronous prefix runs on the calling goroutine; at each boundary the
// resumption callback re-enters the trampoline on whatever goroutine
// completes it. An observed interrupt aborts silently.
func drive(current Erased, frame Frame, deliver func(Erased), interrupt *atomic.Bool) {
	v, susp, stopped := evalFuture(current, frame, interrupt)
	if stopped {
		return
	}
	if susp == nil {
		deliver(v)
		return
	}
	susp.register(func(v Erased) {
		drive(v, susp.rest, deliver, interrupt)
	})
}

// Run evaluates the computation, blocking the calling goroutine until the
// value is available.
func (m Future[A]) Run() A {
	done := make(chan A, 1)
	m.RunAsync(func(a A) { done <- a })
	return <-done
}

// RunAsync evaluates the synchronous prefix on the calling goroutine and
// returns at the first asynchronous boundary. cb fires exactly once with the
// final value, on whatever goroutine completes the last boundary.
func (m Future[A]) RunAsync(cb func(A)) {
	drive(Erased(m.Value), m.Frame, func(v Erased) { cb(v.(A)) }, nil)
}

// RunAsyncInterruptibly is RunAsync with a cooperative cancellation flag,
// polled at every step boundary. When the flag is observed set, evaluation
// aborts promptly and cb is never invoked. Cancellation is best-effort: it
// cannot preempt a single non-yielding unit of work.
func (m Future[A]) RunAsyncInterruptibly(cb func(A), interrupt *atomic.Bool) {
	drive(Erased(m.Value), m.Frame, func(v Erased) { cb(v.(A)) }, interrupt)
}

// RunFor evaluates the computation, blocking for at most timeout.
// On expiry it returns ErrTimeout and best-effort interrupts the evaluation;
// the computation may keep running in the background, its eventual value
// discarded.
func (m Future[A]) RunFor(timeout time.Duration) (A, error) {
	done := make(chan A, 1)
	interrupt := new(atomic.Bool)
	m.RunAsyncInterruptibly(func(a A) { done <- a }, interrupt)

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case a := <-done:
		return a, nil
	case <-timer.C:
		interrupt.Store(true)
		var zero A
		return zero, ErrTimeout
	}
}

// FutureTimed races m against a timer without blocking the calling
// goroutine. Whichever resolves first determines the outcome: the timer
// yields Failure(ErrTimeout), m yields Success of its value. A compare-and-set
// flag arbitrates exactly one winner; the losing side is interrupted
// best-effort and its result discarded.
func FutureTimed[A any](m Future[A], timeout time.Duration, s Scheduler) Future[Result[A]] {
	return FutureAsync(func(cb func(Result[A])) {
		var won atomic.Bool
		interrupt := new(atomic.Bool)
		s(timeout, func() {
			if won.CompareAndSwap(false, true) {
				interrupt.Store(true)
				cb(Failure[A](ErrTimeout))
			}
		})
		m.RunAsyncInterruptibly(func(a A) {
			if won.CompareAndSwap(false, true) {
				cb(Success(a))
			}
		}, interrupt)
	})
}

// FutureDelayed continues with m after the given delay.
// This is the delayed-sequencing operator behind retry backoff.
func FutureDelayed[A any](m Future[A], delay time.Duration, s Scheduler) Future[A] {
	return FutureAsync(func(cb func(A)) {
		s(delay, func() { m.RunAsync(cb) })
	})
}
