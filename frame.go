// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// Erased represents a type-erased value in the defunctionalized frame chain.
// Frame types use Erased parameters to process heterogeneous value types
// through a homogeneous evaluation pipeline. Concrete types are recovered
// via type assertions at frame boundaries.
type Erased = any

// Frame is the interface for defunctionalized continuation frames.
// Implementations carry the data needed to continue computation.
// Dispatch uses type switches, not tags — Frame is a pure marker interface.
type Frame interface {
	frame() // unexported marker method
}

// ReturnFrame signals computation completion.
// The evaluator returns the current value as the final result.
type ReturnFrame struct{}

func (ReturnFrame) frame() {}

// valueFrame re-seeds the current value flowing through a frame chain.
// Combinators prepend it when the source computation has already completed,
// so that its result survives type erasure of the enclosing Future.
type valueFrame struct {
	v Erased
}

func (*valueFrame) frame() {}

// BindFrame represents monadic sequencing: FutureBind(m, f).
// The evaluator applies F to the current value and splices the produced
// computation in place, preserving the trampoline boundary.
type BindFrame struct {
	// F is the continuation function to apply to the input value.
	F func(Erased) Future[Erased]

	// Next is the continuation frame after F's computation completes.
	Next Frame
}

func (*BindFrame) frame() {}

// MapFrame represents functor transformation: FutureMap(m, f).
type MapFrame struct {
	// F is the transformation function.
	F func(Erased) Erased

	// Next is the continuation frame after transformation.
	Next Frame
}

func (*MapFrame) frame() {}

// SuspendFrame represents a deferred computation: FutureSuspend(thunk).
// The thunk is invoked once per evaluation, inside the trampoline loop,
// so recursive computations never grow the call stack. A Future holding
// a SuspendFrame is unmemoized: every evaluation re-invokes the thunk.
type SuspendFrame struct {
	// Thunk produces the computation to continue with.
	Thunk func() Future[Erased]

	// Next is the continuation frame after the produced computation completes.
	Next Frame
}

func (*SuspendFrame) frame() {}

// AsyncFrame represents an asynchronous boundary: FutureAsync(register).
// Evaluation suspends here; Register is invoked exactly once per evaluation
// with a callback that the registering code must invoke exactly once with
// the produced value, on whatever thread completes the boundary.
type AsyncFrame struct {
	// Register hands the resumption callback to the asynchronous source.
	Register func(callback func(Erased))

	// Next is the continuation frame after the boundary resolves.
	Next Frame
}

func (*AsyncFrame) frame() {}

// ChainFrames links two frame chains together.
// Returns the other operand when either side is ReturnFrame (the identity
// element for frame composition), avoiding unnecessary chainedFrame allocation.
//
// Construction is O(1) in all cases: returns the other operand or creates one
// chainedFrame node.
func ChainFrames(first, second Frame) Frame {
	if _, ok := first.(ReturnFrame); ok {
		return second
	}
	if _, ok := second.(ReturnFrame); ok {
		return first
	}
	return &chainedFrame{first: first, rest: second}
}

// chainedFrame represents a frame followed by more frames.
// This enables composing frame chains without mutation, which keeps every
// Future re-runnable.
type chainedFrame struct {
	first Frame
	rest  Frame
}

func (*chainedFrame) frame() {}
