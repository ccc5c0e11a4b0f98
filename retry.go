// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retried carries the Success value of a retried Task together with every
// intermediate Failure, oldest first.
type Retried[A any] struct {
	Value    A
	Failures []error
}

// DefaultRetriable is the retry predicate used when none is supplied:
// ordinary faults are retryable, the control sentinels ErrInterrupted and
// ErrTimeout are not.
func DefaultRetriable(err error) bool {
	return !errors.Is(err, ErrInterrupted) && !errors.Is(err, ErrTimeout)
}

// Retry re-evaluates t after each Failure matched by retriable, waiting the
// next delay from delays first. Delays are consumed in order, one per retry,
// so at most len(delays) retries follow the first attempt; when delays or
// the predicate run out, the most recent outcome is surfaced. A nil
// retriable means DefaultRetriable.
//
// Each wait goes through the scheduler; no goroutine blocks between
// attempts.
func Retry[A any](t Task[A], delays []time.Duration, retriable func(error) bool, s Scheduler) Task[A] {
	return Map(RetryAccumulating(t, delays, retriable, s), func(r Retried[A]) A {
		return r.Value
	})
}

// RetryAccumulating is Retry threading the full ordered list of
// intermediate Failures through to the final Success.
func RetryAccumulating[A any](t Task[A], delays []time.Duration, retriable func(error) bool, s Scheduler) Task[Retried[A]] {
	if retriable == nil {
		retriable = DefaultRetriable
	}
	var attempt func(ds []time.Duration, failures []error) Future[Result[Retried[A]]]
	attempt = func(ds []time.Duration, failures []error) Future[Result[Retried[A]]] {
		return FutureBind(t.future, func(r Result[A]) Future[Result[Retried[A]]] {
			if r.failed && len(ds) > 0 && retriable(r.err) {
				seen := append(failures[:len(failures):len(failures)], r.err)
				next := FutureSuspend(func() Future[Result[Retried[A]]] {
					return attempt(ds[1:], seen)
				})
				return FutureDelayed(next, ds[0], s)
			}
			if r.failed {
				return FutureReturn(Failure[Retried[A]](r.err))
			}
			return FutureReturn(Success(Retried[A]{Value: r.value, Failures: failures}))
		})
	}
	return Task[Retried[A]]{future: FutureSuspend(func() Future[Result[Retried[A]]] {
		return attempt(delays, nil)
	})}
}

// RetryBackoff re-evaluates t after each Failure matched by retriable,
// driving the delay sequence from a backoff policy: each retry waits
// policy.NextBackOff(), and backoff.Stop ends the retries with the most
// recent Failure. A Failure wrapped with backoff.Permanent is never
// retried; its underlying error is surfaced. The policy is Reset at the
// start of every evaluation, so a retried Task stays re-runnable as long
// as the policy's Reset restores its initial state.
func RetryBackoff[A any](t Task[A], policy backoff.BackOff, retriable func(error) bool, s Scheduler) Task[A] {
	if retriable == nil {
		retriable = DefaultRetriable
	}
	var attempt func() Future[Result[A]]
	attempt = func() Future[Result[A]] {
		return FutureBind(t.future, func(r Result[A]) Future[Result[A]] {
			if !r.failed {
				return FutureReturn(r)
			}
			var permanent *backoff.PermanentError
			if errors.As(r.err, &permanent) {
				return FutureReturn(Failure[A](permanent.Err))
			}
			if !retriable(r.err) {
				return FutureReturn(r)
			}
			delay := policy.NextBackOff()
			if delay == backoff.Stop {
				return FutureReturn(r)
			}
			return FutureDelayed(FutureSuspend(attempt), delay, s)
		})
	}
	return Task[A]{future: FutureSuspend(func() Future[Result[A]] {
		policy.Reset()
		return attempt()
	})}
}
