// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "time"

// Strategy is the concurrency capability: "submit this unit of work for
// execution". It abstracts over synchronous-immediate and pooled/threaded
// execution. Tasks never own a Strategy; it is passed in wherever
// concurrency is introduced (Apply, Start, Race, Ref delivery).
type Strategy func(work func())

// Sequential runs each unit of work immediately on the calling goroutine.
var Sequential Strategy = func(work func()) { work() }

// Spawn runs each unit of work on a fresh goroutine.
var Spawn Strategy = func(work func()) { go work() }

// Scheduler is the timing capability: "run this unit of work after a delay".
// Retry backoff and bounded timeouts are built on it.
type Scheduler func(delay time.Duration, work func())

// DefaultScheduler schedules work on the runtime timer heap.
var DefaultScheduler Scheduler = func(delay time.Duration, work func()) {
	time.AfterFunc(delay, work)
}
