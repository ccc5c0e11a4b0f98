// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// Task is a composable asynchronous computation producing a [Result].
// It owns one executor-primitive computation — a Future specialized to the
// two-case result — and layers exception safety, recovery, finalizers, and
// the execution/cancellation protocol on top.
//
// Tasks are immutable values: each combinator returns a new Task, and no
// Task ever mutates another. A Task built from Delay is unmemoized —
// evaluating it again recomputes the thunk.
//
// None of the combinators introduce concurrency. Map, FlatMap, Attempt,
// Handle, Or, and Ensure only extend the trampolined continuation and
// execute on whichever goroutine eventually drives the computation.
// Concurrency enters exclusively through Apply, Start, Race, and
// scheduler-backed delays.
type Task[A any] struct {
	future Future[Result[A]]
}

// FromFuture wraps an executor-primitive computation of a Result as a Task.
func FromFuture[A any](m Future[Result[A]]) Task[A] {
	return Task[A]{future: m}
}

// Future returns the executor-primitive computation underlying t.
func (t Task[A]) Future() Future[Result[A]] {
	return t.future
}

// Now lifts an already-computed value into a Task.
func Now[A any](a A) Task[A] {
	return Task[A]{future: FutureReturn(Success(a))}
}

// Fail creates a Task that fails with the given error.
func Fail[A any](err error) Task[A] {
	return Task[A]{future: FutureReturn(Failure[A](err))}
}

// Delay evaluates the thunk lazily, once per evaluation, folding both its
// returned error and any raised panic into a Failure.
func Delay[A any](thunk func() (A, error)) Task[A] {
	return Task[A]{future: FutureSuspend(func() Future[Result[A]] {
		return FutureReturn(protect(thunk))
	})}
}

// Suspend defers producing the next Task itself, for trampoline-safe
// recursion. A panic in the thunk becomes a Failure.
func Suspend[A any](thunk func() Task[A]) Task[A] {
	return Task[A]{future: FutureSuspend(func() Future[Result[A]] {
		next, err := protectTask(thunk)
		if err != nil {
			return FutureReturn(Failure[A](err))
		}
		return next.future
	})}
}

// Async wraps a callback-registering function: register is invoked exactly
// once per evaluation, with a callback that the registering code must invoke
// exactly once with the Result.
func Async[A any](register func(callback func(Result[A]))) Task[A] {
	return Task[A]{future: FutureAsync(register)}
}

// Apply evaluates the thunk by submitting it to the strategy, folding both
// its returned error and any raised panic into a Failure. This is one of the
// sanctioned points where concurrency is introduced.
func Apply[A any](thunk func() (A, error), s Strategy) Task[A] {
	return Task[A]{future: FutureAsync(func(cb func(Result[A])) {
		s(func() { cb(protect(thunk)) })
	})}
}

// Do lifts an effect-only function into a Task, for finalizers and other
// unit-valued work.
func Do(effect func() error) Task[struct{}] {
	return Delay(func() (struct{}, error) {
		return struct{}{}, effect()
	})
}

// Map applies a pure function to the Success value. A panic raised by f is
// caught and becomes a Failure; it never escapes the trampoline. A Failure
// passes through unchanged and f is never invoked.
func Map[A, B any](t Task[A], f func(A) B) Task[B] {
	return Task[B]{future: FutureMap(t.future, func(r Result[A]) Result[B] {
		if r.failed {
			return Failure[B](r.err)
		}
		return protect(func() (B, error) { return f(r.value), nil })
	})}
}

// FlatMap sequences t with the Task produced by f, splicing the new
// computation in place so that chains of any length evaluate in constant
// stack space. A panic raised by f becomes a Failure; a Failure of t
// short-circuits and f is never invoked.
func FlatMap[A, B any](t Task[A], f func(A) Task[B]) Task[B] {
	return Task[B]{future: FutureBind(t.future, func(r Result[A]) Future[Result[B]] {
		if r.failed {
			return FutureReturn(Failure[B](r.err))
		}
		next, err := protectTask(func() Task[B] { return f(r.value) })
		if err != nil {
			return FutureReturn(Failure[B](err))
		}
		return next.future
	})}
}

// Attempt reifies the outcome into a Success always, carrying the original
// Result as its value. The produced Task never fails.
func (t Task[A]) Attempt() Task[Result[A]] {
	return Task[Result[A]]{future: FutureMap(t.future, func(r Result[A]) Result[Result[A]] {
		return Success(r)
	})}
}

// OnFinish runs a finalizer before the outer result is delivered.
// The finalizer receives nil when t succeeded and the error when it failed,
// and its produced Task runs to completion first. Its own outcome never
// replaces the original result: the original error (or value) is what
// propagates.
func (t Task[A]) OnFinish(finalize func(cause error) Task[struct{}]) Task[A] {
	return Task[A]{future: FutureBind(t.future, func(r Result[A]) Future[Result[A]] {
		fin, err := protectTask(func() Task[struct{}] { return finalize(r.err) })
		if err != nil {
			fin = Fail[struct{}](err)
		}
		return FutureMap(fin.future, func(Result[struct{}]) Result[A] { return r })
	})}
}

// Handle recovers from a matched Failure with a plain value.
// recovery reports whether it matched; unmatched errors pass through
// unchanged. The interruption sentinel is never seen here: it is injected
// at the delivery boundary, not raised from within the computation.
func (t Task[A]) Handle(recovery func(err error) (A, bool)) Task[A] {
	return t.HandleWith(func(err error) (Task[A], bool) {
		if a, ok := recovery(err); ok {
			return Now(a), true
		}
		return Task[A]{}, false
	})
}

// HandleWith recovers from a matched Failure with a whole Task.
// A panic raised by recovery becomes a Failure.
func (t Task[A]) HandleWith(recovery func(err error) (Task[A], bool)) Task[A] {
	return Task[A]{future: FutureBind(t.future, func(r Result[A]) Future[Result[A]] {
		if !r.failed {
			return FutureReturn(r)
		}
		var matched bool
		next, err := protectTask(func() Task[A] {
			n, ok := recovery(r.err)
			matched = ok
			return n
		})
		if err != nil {
			return FutureReturn(Failure[A](err))
		}
		if !matched {
			return FutureReturn(r)
		}
		return next.future
	})}
}

// Or adopts the fallback's outcome entirely on Failure, discarding the
// error. On Success the fallback is never evaluated.
func (t Task[A]) Or(fallback Task[A]) Task[A] {
	return Task[A]{future: FutureBind(t.future, func(r Result[A]) Future[Result[A]] {
		if r.failed {
			return fallback.future
		}
		return FutureReturn(r)
	})}
}

// Ensure tests the Success value against pred, replacing it with the given
// failure when the predicate is false. A Failure passes through unchanged;
// a panic in pred becomes a Failure.
func (t Task[A]) Ensure(failure error, pred func(A) bool) Task[A] {
	return Task[A]{future: FutureMap(t.future, func(r Result[A]) Result[A] {
		if r.failed {
			return r
		}
		checked := protect(func() (bool, error) { return pred(r.value), nil })
		if checked.failed {
			return Failure[A](checked.err)
		}
		if !checked.value {
			return Failure[A](failure)
		}
		return r
	})}
}
