package runtime

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/herbert/lang/ast"
)

// This module implements a stack of call frames.
// Call frames are used by the interpreter to keep track of the statement
// sequences under evaluation, replacing recursion on the Go call stack.

// Frame is a statement sequence under evaluation.
type Frame struct {
	Name  string     // procedure name or other label, for tracing
	Seq   []ast.Elem // statements to evaluate
	Pos   int        // next statement to evaluate
	Scope *Scope     // scope to evaluate statements in
}

// NewFrame creates a frame for evaluating seq in a scope.
func NewFrame(nm string, seq []ast.Elem, scope *Scope) *Frame {
	return &Frame{
		Name:  nm,
		Seq:   seq,
		Scope: scope,
	}
}

func (f *Frame) String() string {
	return fmt.Sprintf("<frame %s %d/%d in %v>", f.Name, f.Pos, len(f.Seq), f.Scope)
}

// Exhausted is a predicate: have all statements of the frame been evaluated?
func (f *Frame) Exhausted() bool {
	return f.Pos >= len(f.Seq)
}

// Advance returns the next statement of a frame and moves past it.
func (f *Frame) Advance() ast.Elem {
	e := f.Seq[f.Pos]
	f.Pos++
	return e
}

// Sole is a predicate: does the frame's sequence consist of a single element?
func (f *Frame) Sole() bool {
	return len(f.Seq) == 1
}

// ---------------------------------------------------------------------------

// FrameStack is a (call-)stack of frames.
type FrameStack struct {
	frames *arraystack.Stack
}

// NewFrameStack creates an empty frame stack.
func NewFrameStack() *FrameStack {
	return &FrameStack{frames: arraystack.New()}
}

// Current gets the current frame of a stack (TOS), or nil if the stack is empty.
func (fst *FrameStack) Current() *Frame {
	top, ok := fst.frames.Peek()
	if !ok {
		return nil
	}
	return top.(*Frame)
}

// Push pushes a frame as TOS.
func (fst *FrameStack) Push(f *Frame) {
	tracer().P("frame", f.Name).Debugf("pushing frame")
	fst.frames.Push(f)
}

// Pop pops the top-most frame. Returns the popped frame.
func (fst *FrameStack) Pop() *Frame {
	f, ok := fst.frames.Pop()
	if !ok {
		panic("attempt to pop frame from empty call stack")
	}
	tracer().Debugf("popping frame [%s]", f.(*Frame).Name)
	return f.(*Frame)
}

// Depth returns the number of frames on the stack.
func (fst *FrameStack) Depth() int {
	return fst.frames.Size()
}

// Empty is a predicate: are there no frames left?
func (fst *FrameStack) Empty() bool {
	return fst.frames.Empty()
}

// Clear drops all frames.
func (fst *FrameStack) Clear() {
	fst.frames.Clear()
}
