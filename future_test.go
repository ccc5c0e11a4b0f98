// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task_test

import (
	"sync/atomic"
	"testing"
	"time"

	"code.hybscloud.com/task"
)

func TestFutureReturnRun(t *testing.T) {
	got := task.FutureReturn(42).Run()
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestFutureMap(t *testing.T) {
	m := task.FutureMap(task.FutureReturn(21), func(x int) int { return x * 2 })
	if got := m.Run(); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestFutureBind(t *testing.T) {
	m := task.FutureBind(task.FutureReturn(21), func(x int) task.Future[int] {
		return task.FutureReturn(x * 2)
	})
	if got := m.Run(); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestFutureBindIsLazy(t *testing.T) {
	calls := 0
	m := task.FutureBind(task.FutureReturn(1), func(x int) task.Future[int] {
		calls++
		return task.FutureReturn(x + 1)
	})
	if calls != 0 {
		t.Fatalf("bind function ran at construction: %d calls", calls)
	}
	m.Run()
	m.Run()
	if calls != 2 {
		t.Fatalf("got %d calls, want 2 (one per evaluation)", calls)
	}
}

func TestFutureSuspendReevaluates(t *testing.T) {
	calls := 0
	m := task.FutureSuspend(func() task.Future[int] {
		calls++
		return task.FutureReturn(calls)
	})
	if got := m.Run(); got != 1 {
		t.Fatalf("first run = %d, want 1", got)
	}
	if got := m.Run(); got != 2 {
		t.Fatalf("second run = %d, want 2", got)
	}
}

func TestFutureMapChainStackSafety(t *testing.T) {
	const n = 200_000
	m := task.FutureReturn(0)
	for range n {
		m = task.FutureMap(m, func(x int) int { return x + 1 })
	}
	if got := m.Run(); got != n {
		t.Fatalf("got %d, want %d", got, n)
	}
}

func TestFutureBindChainStackSafety(t *testing.T) {
	const n = 200_000
	m := task.FutureReturn(0)
	for range n {
		m = task.FutureBind(m, func(x int) task.Future[int] {
			return task.FutureReturn(x + 1)
		})
	}
	if got := m.Run(); got != n {
		t.Fatalf("got %d, want %d", got, n)
	}
}

func TestFutureSuspendRecursionStackSafety(t *testing.T) {
	const n = 100_000
	var loop func(i, acc int) task.Future[int]
	loop = func(i, acc int) task.Future[int] {
		if i == 0 {
			return task.FutureReturn(acc)
		}
		return task.FutureSuspend(func() task.Future[int] {
			return loop(i-1, acc+1)
		})
	}
	if got := loop(n, 0).Run(); got != n {
		t.Fatalf("got %d, want %d", got, n)
	}
}

func TestFutureAsyncResumesOnCompletingGoroutine(t *testing.T) {
	release := make(chan struct{})
	m := task.FutureAsync(func(cb func(int)) {
		go func() {
			<-release
			cb(7)
		}()
	})
	done := make(chan int, 1)
	m.RunAsync(func(v int) { done <- v })
	select {
	case <-done:
		t.Fatal("callback fired before the async boundary resolved")
	case <-time.After(10 * time.Millisecond):
	}
	close(release)
	if got := <-done; got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestFutureRunAsyncSynchronousPrefix(t *testing.T) {
	delivered := false
	m := task.FutureMap(task.FutureReturn(1), func(x int) int { return x + 1 })
	m.RunAsync(func(int) { delivered = true })
	if !delivered {
		t.Fatal("synchronous computation did not deliver on the calling goroutine")
	}
}

func TestFutureRunAsyncInterruptiblyPresetFlag(t *testing.T) {
	interrupt := new(atomic.Bool)
	interrupt.Store(true)
	called := false
	task.FutureReturn(1).RunAsyncInterruptibly(func(int) { called = true }, interrupt)
	if called {
		t.Fatal("interrupted evaluation must not deliver")
	}
}

func TestFutureRunForTimeout(t *testing.T) {
	never := task.FutureAsync(func(func(int)) {})
	_, err := never.RunFor(10 * time.Millisecond)
	if err != task.ErrTimeout {
		t.Fatalf("got %v, want ErrTimeout", err)
	}
}

func TestFutureRunForCompletes(t *testing.T) {
	m := task.FutureAsync(func(cb func(int)) {
		go func() {
			time.Sleep(5 * time.Millisecond)
			cb(3)
		}()
	})
	got, err := m.RunFor(time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func TestFutureDelayed(t *testing.T) {
	started := time.Now()
	m := task.FutureDelayed(task.FutureReturn(5), 20*time.Millisecond, task.DefaultScheduler)
	if got := m.Run(); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
	if elapsed := time.Since(started); elapsed < 20*time.Millisecond {
		t.Fatalf("completed after %v, want at least 20ms", elapsed)
	}
}
