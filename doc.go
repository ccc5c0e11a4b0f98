// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package task provides a composable asynchronous computation primitive.
//
// The core type [Task] evaluates monadic chains of operations in constant
// stack space, integrates callback-based asynchronous sources, and makes
// concurrency an explicit, opt-in effect rather than an implicit one.
// Synchronous and asynchronous work sequence uniformly; failures are
// values; parallelism enters only at deliberate points.
//
// # Design Philosophy
//
// task provides:
//   - A trampolined evaluation core — chained transformations never grow the call stack
//   - An exception-as-value error channel layered over a fault-unaware primitive
//   - Capability-style concurrency: execution and timing are injected, never ambient
//   - Race-safe completion: exactly one of several concurrent results is observed
//
// # Layering
//
// [Future] is the executor primitive: a defunctionalized frame chain
// ([Frame], [BindFrame], [SuspendFrame], [AsyncFrame]) computing a plain
// value, evaluated by an iterative loop. [Task] specializes Future to the
// two-case [Result] and adds fault catching at every user-function
// boundary, recovery, finalizers, and the cancellation protocol.
//
// # Construction
//
//   - [Now]: lift an already-computed value
//   - [Fail]: lift an error
//   - [Delay]: lazy, unmemoized evaluation of a thunk
//   - [Suspend]: defer producing the next Task, for stack-safe recursion
//   - [Async]: wrap a callback-registering asynchronous source
//   - [Apply]: evaluate a thunk under a [Strategy]
//   - [Do]: lift an effect-only function
//
// # Composition
//
//   - [Map], [FlatMap]: sequence transformations; faults become Failure
//   - [Task.Attempt]: reify the outcome as a value; never fails
//   - [Task.OnFinish]: run a finalizer before the result is delivered
//   - [Task.Handle], [Task.HandleWith]: partial recovery from Failure
//   - [Task.Or]: adopt a fallback on Failure
//   - [Task.Ensure]: turn a rejected Success into a Failure
//
// None of these introduce concurrency: they extend the trampolined
// continuation and run on whichever goroutine drives the computation.
//
// # Execution
//
//   - [Task.Run], [Task.AttemptRun]: blocking
//   - [Task.RunAsync]: synchronous prefix on the caller, callback exactly once
//   - [Task.RunAsyncInterruptibly]: cooperative flag polled at step boundaries
//   - [Task.RunAsyncCancelable]: returns a cancel thunk; exactly one of
//     {natural Result, Failure(ErrInterrupted)} is delivered, exactly once
//   - [Task.RunFor], [Task.AttemptRunFor]: bounded blocking wait, ErrTimeout on expiry
//   - [Task.Timed]: non-blocking race against a scheduled timer
//
// Interruption is injected at the delivery boundary, never raised inside
// the computation, so Handle and Attempt do not observe it.
//
// # Concurrency
//
// [Strategy] is the "submit this work" capability ([Sequential], [Spawn],
// or a [Pool]); [Scheduler] is the "run this work after a delay"
// capability. Concurrency is introduced exclusively through [Apply],
// [Start], [Race], and scheduler-backed delays.
//
// [Ref] is the actor-backed cell behind Start and Race: an overwritable
// slot plus a FIFO queue of pending readers, serialized by a
// single-consumer mailbox.
//
//   - [Start]: begin executing in the background, return the awaitable result
//   - [Race]: first of two Tasks wins, tagged [Left] or [Right]; the loser
//     keeps running with its result discarded
//
// # Retry
//
//   - [Retry]: one delay per retry, consumed in order, while a predicate matches
//   - [RetryAccumulating]: additionally threads every intermediate Failure through
//   - [RetryBackoff]: delays driven by a cenkalti/backoff policy
//
// # Observability
//
// [Pool] reports execution metrics through the [Metrics] interface
// ([NilMetrics] by default); the metrics/prometheus subpackage adapts it
// to Prometheus collectors.
package task
