// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task_test

import (
	"testing"
	"time"

	"code.hybscloud.com/task"
)

func BenchmarkNowRun(b *testing.B) {
	m := task.Now(1)
	for b.Loop() {
		_, _ = m.Run()
	}
}

func BenchmarkMapChain(b *testing.B) {
	m := task.Now(0)
	for range 100 {
		m = task.Map(m, func(x int) int { return x + 1 })
	}
	for b.Loop() {
		_, _ = m.Run()
	}
}

func BenchmarkFlatMapChain(b *testing.B) {
	m := task.Now(0)
	for range 100 {
		m = task.FlatMap(m, func(x int) task.Task[int] { return task.Now(x + 1) })
	}
	for b.Loop() {
		_, _ = m.Run()
	}
}

func BenchmarkAsyncBoundary(b *testing.B) {
	m := task.Async(func(callback func(task.Result[int])) {
		callback(task.Success(1))
	})
	for b.Loop() {
		_, _ = m.Run()
	}
}

func BenchmarkAttemptRun(b *testing.B) {
	m := task.Delay(func() (int, error) { return 1, nil })
	for b.Loop() {
		_ = m.AttemptRun()
	}
}

func BenchmarkRetryNoFailure(b *testing.B) {
	m := task.Retry(task.Now(1), []time.Duration{0, 0, 0}, nil, task.DefaultScheduler)
	for b.Loop() {
		_, _ = m.Run()
	}
}
