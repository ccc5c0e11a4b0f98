// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "sync/atomic"

// Ref is an asynchronous cell: a write-once-or-overwrite slot holding an
// optional Result, plus an ordered queue of callbacks awaiting a value.
// It backs Start (exposing a running Task's eventual result as a value that
// can be awaited any number of times) and Race.
//
// All state is confined to a single-consumer mailbox; no other locking
// exists. A Ref starts empty; the completion of a Set stores the result —
// overwriting any prior value, last-write-wins — and flushes every queued
// callback exactly once, in FIFO order. A Ref may be refilled indefinitely.
type Ref[A any] struct {
	mb       mailbox
	strategy Strategy

	// confined to mb
	result  *Result[A]
	waiting []func(Result[A])
}

// NewRef creates an empty Ref whose deliveries run under s.
func NewRef[A any](s Strategy) *Ref[A] {
	return &Ref[A]{strategy: s}
}

// Set schedules t under the Ref's strategy and, on its completion, stores
// the result and flushes the pending readers. A later Set silently
// supersedes an earlier stored value.
func (r *Ref[A]) Set(t Task[A]) {
	r.strategy(func() {
		t.RunAsync(func(res Result[A]) { r.publish(res) })
	})
}

func (r *Ref[A]) publish(res Result[A]) {
	r.mb.Send(func() {
		r.result = &res
		waiting := r.waiting
		r.waiting = nil
		for _, w := range waiting {
			r.strategy(func() { w(res) })
		}
	})
}

// Get returns a Task that, when evaluated, observes an already-stored value
// immediately or waits for the next Set completion. Delivery always goes
// through the strategy, preserving asynchronous-boundary semantics rather
// than calling back synchronously under the mailbox.
func (r *Ref[A]) Get() Task[A] {
	return Async(func(cb func(Result[A])) {
		r.mb.Send(func() {
			if r.result != nil {
				res := *r.result
				r.strategy(func() { cb(res) })
				return
			}
			r.waiting = append(r.waiting, cb)
		})
	})
}

// SetRace runs both Tasks under the strategy; the first to complete
// delivers its Result to the Ref. An atomic swap arbitrates exactly one
// winner even when both complete simultaneously from different goroutines,
// and severs the loser's back-reference in the same stroke: the loser keeps
// executing to completion, but its continuation holds no path back to the
// Ref and its result is discarded without a write.
func (r *Ref[A]) SetRace(t1, t2 Task[A]) {
	winner := new(atomic.Pointer[Ref[A]])
	winner.Store(r)
	deliver := func(res Result[A]) {
		if ref := winner.Swap(nil); ref != nil {
			ref.publish(res)
		}
	}
	s := r.strategy
	s(func() { t1.RunAsync(deliver) })
	s(func() { t2.RunAsync(deliver) })
}

// Start begins executing t under s immediately and returns a Task that,
// when later sequenced, waits for (or immediately observes) the background
// result. This is the sole sanctioned way a single Task introduces
// concurrency implicitly.
func Start[A any](t Task[A], s Strategy) Task[A] {
	ref := NewRef[A](s)
	ref.Set(t)
	return ref.Get()
}

// Race runs both Tasks under s when the produced Task is evaluated and
// adopts the first to complete, tagged Left when the first argument won and
// Right when the second did. The loser keeps running, its result discarded.
func Race[A, B any](first Task[A], second Task[B], s Strategy) Task[Either[A, B]] {
	return Suspend(func() Task[Either[A, B]] {
		ref := NewRef[Either[A, B]](s)
		ref.SetRace(
			Map(first, func(a A) Either[A, B] { return Left[A, B](a) }),
			Map(second, func(b B) Either[A, B] { return Right[A, B](b) }),
		)
		return ref.Get()
	})
}
