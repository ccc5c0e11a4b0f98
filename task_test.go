// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task_test

import (
	"errors"
	"fmt"
	"testing"

	"code.hybscloud.com/task"
)

var errBoom = errors.New("boom")

func TestNowRun(t *testing.T) {
	got, err := task.Now(42).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestFailRun(t *testing.T) {
	_, err := task.Fail[int](errBoom).Run()
	if err != errBoom {
		t.Fatalf("got %v, want %v", err, errBoom)
	}
}

func TestDelayCatchesError(t *testing.T) {
	_, err := task.Delay(func() (int, error) { return 0, errBoom }).Run()
	if err != errBoom {
		t.Fatalf("got %v, want %v", err, errBoom)
	}
}

func TestDelayCatchesPanic(t *testing.T) {
	_, err := task.Delay(func() (int, error) { panic("kaboom") }).Run()
	var pe *task.PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("got %v, want *PanicError", err)
	}
	if pe.Value != "kaboom" {
		t.Fatalf("got panic value %v, want kaboom", pe.Value)
	}
	if len(pe.Stack) == 0 {
		t.Fatal("panic stack not captured")
	}
}

func TestDelayUnmemoized(t *testing.T) {
	calls := 0
	d := task.Delay(func() (int, error) {
		calls++
		return calls, nil
	})
	first, _ := d.Run()
	second, _ := d.Run()
	if first != 1 || second != 2 {
		t.Fatalf("got %d then %d, want 1 then 2", first, second)
	}
}

func TestPanicErrorUnwrap(t *testing.T) {
	_, err := task.Delay(func() (int, error) { panic(errBoom) }).Run()
	if !errors.Is(err, errBoom) {
		t.Fatalf("got %v, want an error wrapping %v", err, errBoom)
	}
}

func TestMapSuccess(t *testing.T) {
	got, err := task.Map(task.Now(21), func(x int) int { return x * 2 }).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestMapPanicBecomesFailure(t *testing.T) {
	_, err := task.Map(task.Now(1), func(int) int { panic("map") }).Run()
	var pe *task.PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("got %v, want *PanicError", err)
	}
}

func TestMapSkipsFailure(t *testing.T) {
	calls := 0
	_, err := task.Map(task.Fail[int](errBoom), func(x int) int {
		calls++
		return x
	}).Run()
	if err != errBoom {
		t.Fatalf("got %v, want %v", err, errBoom)
	}
	if calls != 0 {
		t.Fatalf("map function invoked %d times on Failure, want 0", calls)
	}
}

func TestFlatMapSkipsFailure(t *testing.T) {
	calls := 0
	_, err := task.FlatMap(task.Fail[int](errBoom), func(x int) task.Task[int] {
		calls++
		return task.Now(x)
	}).Run()
	if err != errBoom {
		t.Fatalf("got %v, want %v", err, errBoom)
	}
	if calls != 0 {
		t.Fatalf("flatMap function invoked %d times on Failure, want 0", calls)
	}
}

func TestFlatMapPanicBecomesFailure(t *testing.T) {
	_, err := task.FlatMap(task.Now(1), func(int) task.Task[int] { panic("bind") }).Run()
	var pe *task.PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("got %v, want *PanicError", err)
	}
}

func TestFlatMapLeftIdentity(t *testing.T) {
	// FlatMap(Now(a), f) ≡ f(a)
	a := 7
	f := func(x int) task.Task[int] { return task.Now(x * 3) }

	left, _ := task.FlatMap(task.Now(a), f).Run()
	right, _ := f(a).Run()
	if left != right {
		t.Fatalf("left identity failed: %d != %d", left, right)
	}
}

func TestFlatMapRightIdentity(t *testing.T) {
	// FlatMap(m, Now) ≡ m
	m := task.Now(42)

	left, _ := task.FlatMap(m, task.Now).Run()
	right, _ := m.Run()
	if left != right {
		t.Fatalf("right identity failed: %d != %d", left, right)
	}
}

func TestFlatMapAssociativity(t *testing.T) {
	m := task.Now(2)
	f := func(x int) task.Task[int] { return task.Now(x + 3) }
	g := func(x int) task.Task[int] { return task.Now(x * 2) }

	left, _ := task.FlatMap(task.FlatMap(m, f), g).Run()
	right, _ := task.FlatMap(m, func(x int) task.Task[int] {
		return task.FlatMap(f(x), g)
	}).Run()
	if left != right {
		t.Fatalf("associativity failed: %d != %d", left, right)
	}
}

func TestMapChainStackSafety(t *testing.T) {
	const n = 200_000
	m := task.Now(0)
	for range n {
		m = task.Map(m, func(x int) int { return x + 1 })
	}
	got, err := m.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != n {
		t.Fatalf("got %d, want %d", got, n)
	}
}

func TestSuspendRecursionStackSafety(t *testing.T) {
	const n = 100_000
	var loop func(i, acc int) task.Task[int]
	loop = func(i, acc int) task.Task[int] {
		if i == 0 {
			return task.Now(acc)
		}
		return task.Suspend(func() task.Task[int] {
			return loop(i-1, acc+i)
		})
	}
	got, err := loop(n, 0).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := n * (n + 1) / 2
	if got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func TestAttemptNeverFails(t *testing.T) {
	r, err := task.Map(task.Now(1), func(int) int { panic("inner") }).Attempt().Run()
	if err != nil {
		t.Fatalf("Attempt surfaced an error: %v", err)
	}
	if !r.IsFailure() {
		t.Fatal("inner failure not reified")
	}
}

func TestAttemptSuccessCarriesValue(t *testing.T) {
	r, err := task.Now(5).Attempt().Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := r.Get()
	if !ok || v != 5 {
		t.Fatalf("got (%d, %v), want (5, true)", v, ok)
	}
}

func TestOnFinishRunsBeforeDelivery(t *testing.T) {
	var events []string
	m := task.Now(1).OnFinish(func(cause error) task.Task[struct{}] {
		if cause != nil {
			t.Errorf("finalizer observed %v on success, want nil", cause)
		}
		return task.Do(func() error {
			events = append(events, "finalize")
			return nil
		})
	})
	m.RunAsync(func(task.Result[int]) {
		events = append(events, "deliver")
	})
	if len(events) != 2 || events[0] != "finalize" || events[1] != "deliver" {
		t.Fatalf("got %v, want [finalize deliver]", events)
	}
}

func TestOnFinishObservesFailureAndKeepsIt(t *testing.T) {
	var seen error
	_, err := task.Fail[int](errBoom).OnFinish(func(cause error) task.Task[struct{}] {
		seen = cause
		return task.Fail[struct{}](errors.New("finalizer failed"))
	}).Run()
	if seen != errBoom {
		t.Fatalf("finalizer observed %v, want %v", seen, errBoom)
	}
	if err != errBoom {
		t.Fatalf("got %v, want original %v", err, errBoom)
	}
}

func TestHandleMatched(t *testing.T) {
	got, err := task.Fail[int](errBoom).Handle(func(err error) (int, bool) {
		return 99, errors.Is(err, errBoom)
	}).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 99 {
		t.Fatalf("got %d, want 99", got)
	}
}

func TestHandleUnmatched(t *testing.T) {
	_, err := task.Fail[int](errBoom).Handle(func(error) (int, bool) {
		return 0, false
	}).Run()
	if err != errBoom {
		t.Fatalf("got %v, want %v", err, errBoom)
	}
}

func TestHandleWithSubstitutesTask(t *testing.T) {
	got, err := task.Fail[int](errBoom).HandleWith(func(error) (task.Task[int], bool) {
		return task.Delay(func() (int, error) { return 7, nil }), true
	}).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestOrSkipsFallbackOnSuccess(t *testing.T) {
	calls := 0
	fallback := task.Delay(func() (int, error) {
		calls++
		return 0, nil
	})
	got, err := task.Now(1).Or(fallback).Run()
	if err != nil || got != 1 {
		t.Fatalf("got (%d, %v), want (1, nil)", got, err)
	}
	if calls != 0 {
		t.Fatalf("fallback evaluated %d times on Success, want 0", calls)
	}
}

func TestOrAdoptsFallbackOnFailure(t *testing.T) {
	got, err := task.Fail[int](errBoom).Or(task.Now(2)).Run()
	if err != nil || got != 2 {
		t.Fatalf("got (%d, %v), want (2, nil)", got, err)
	}
}

func TestEnsure(t *testing.T) {
	tooSmall := errors.New("too small")
	if _, err := task.Now(1).Ensure(tooSmall, func(x int) bool { return x > 10 }).Run(); err != tooSmall {
		t.Fatalf("got %v, want %v", err, tooSmall)
	}
	if got, err := task.Now(11).Ensure(tooSmall, func(x int) bool { return x > 10 }).Run(); err != nil || got != 11 {
		t.Fatalf("got (%d, %v), want (11, nil)", got, err)
	}
	if _, err := task.Fail[int](errBoom).Ensure(tooSmall, func(int) bool { return true }).Run(); err != errBoom {
		t.Fatalf("got %v, want %v", err, errBoom)
	}
}

func TestResultMatch(t *testing.T) {
	got := task.MatchResult(task.Failure[int](errBoom),
		func(err error) string { return fmt.Sprintf("failure: %v", err) },
		func(v int) string { return fmt.Sprintf("success: %d", v) },
	)
	if got != "failure: boom" {
		t.Fatalf("got %q", got)
	}
}
