/*
Package interp evaluates herbert programs.

Evaluation of a program produces a lazy, possibly infinite sequence of
actions. Clients pull actions one at a time and are free to stop at any
point:

    cmds := interp.Evaluate(prog)
    for a, ok := cmds.Next(); ok; a, ok = cmds.Next() {
        env.Step(a)
    }
    if err := cmds.Err(); err != nil {
        …
    }

The state of an evaluation (the active frames, each with its scope and its
position within a statement sequence) persists between pulls. Nested
procedure calls do not recurse on the Go call stack; the interpreter keeps
its own stack of frames on the heap. A frame which has no statements left
is dropped before its successor is pushed, so procedures calling themselves
in tail position run in constant space.

Programs which descend endlessly without producing an action cannot be
bounded by pulling fewer actions. For these, evaluation stops with a
*herbert.RecursionError after a configurable number of procedure calls
without an action, or if the frame stack grows beyond a configurable depth.

Arithmetic on parameters is carried out on integers of arbitrary size.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package interp

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/npillmayer/herbert"
	"github.com/npillmayer/herbert/lang/ast"
	"github.com/npillmayer/herbert/runtime"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'herbert.interp'.
func tracer() tracing.Trace {
	return tracing.Select("herbert.interp")
}

// Default limits for evaluation.
const (
	DefaultMaxDepth       = 1000000
	DefaultMaxSilentCalls = 1000000
)

// Commands is the sequence of actions produced by evaluating a program.
// It is single-pass and forward-only; to start over, call Evaluate again.
type Commands struct {
	prog      *ast.Program
	frames    *runtime.FrameStack
	err       error
	count     int // actions delivered so far
	silent    int // frames entered since the last action
	maxDepth  int
	maxSilent int
}

// Option configures an evaluation.
type Option func(*Commands)

// MaxDepth limits the depth of the frame stack.
func MaxDepth(n int) Option {
	return func(c *Commands) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// MaxSilentCalls limits the number of procedure calls and deferred
// evaluations performed for a single action.
func MaxSilentCalls(n int) Option {
	return func(c *Commands) {
		if n > 0 {
			c.maxSilent = n
		}
	}
}

// Evaluate starts the evaluation of a program. No evaluation happens before
// the first call to Next.
func Evaluate(prog *ast.Program, opts ...Option) *Commands {
	c := &Commands{
		prog:      prog,
		frames:    runtime.NewFrameStack(),
		maxDepth:  DefaultMaxDepth,
		maxSilent: DefaultMaxSilentCalls,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.frames.Push(runtime.NewFrame("main", prog.Main, runtime.Global()))
	return c
}

// Next returns the next action. If the sequence is exhausted, or evaluation
// failed, Next returns false. Clients should check Err after Next
// returned false.
func (c *Commands) Next() (herbert.Action, bool) {
	for {
		f := c.frames.Current()
		if f == nil {
			return herbert.Action{}, false
		}
		if f.Exhausted() {
			c.frames.Pop()
			continue
		}
		var err error
		switch x := f.Advance().(type) {
		case *ast.Command:
			return c.yield(herbert.CommandAction(x.Cmd)), true
		case *ast.ParamRef:
			var a herbert.Action
			var ok bool
			if a, ok, err = c.param(f, x); ok {
				return c.yield(a), true
			}
		case *ast.Call:
			err = c.call(f, x)
		default:
			err = fmt.Errorf("unknown program tree element %T", x)
		}
		if err != nil {
			return c.fail(err)
		}
	}
}

// Err returns the error which ended the sequence, if any.
func (c *Commands) Err() error {
	return c.err
}

// Done is a predicate: will Next return no more actions?
func (c *Commands) Done() bool {
	return c.frames.Empty()
}

// Break abandons the evaluation. All scopes are released and subsequent calls
// to Next return false.
func (c *Commands) Break() {
	tracer().Debugf("evaluation abandoned after %d actions", c.count)
	c.frames.Clear()
}

// Count returns the number of actions delivered so far.
func (c *Commands) Count() int {
	return c.count
}

// Take pulls up to n actions from the sequence.
func (c *Commands) Take(n int) ([]herbert.Action, error) {
	if n < 0 {
		n = 0
	}
	actions := make([]herbert.Action, 0, n)
	for len(actions) < n {
		a, ok := c.Next()
		if !ok {
			break
		}
		actions = append(actions, a)
	}
	return actions, c.err
}

// Format concatenates the string representations of actions.
func Format(actions []herbert.Action) string {
	var b strings.Builder
	for _, a := range actions {
		b.WriteString(a.String())
	}
	return b.String()
}

// --- Evaluation ------------------------------------------------------------

func (c *Commands) yield(a herbert.Action) herbert.Action {
	c.count++
	c.silent = 0
	return a
}

func (c *Commands) fail(err error) (herbert.Action, bool) {
	tracer().Infof("evaluation failed: %v", err)
	c.err = err
	c.frames.Clear()
	return herbert.Action{}, false
}

// enter pushes a frame. The current frame is dropped first if it has no
// statements left, as nothing will return to it.
func (c *Commands) enter(f *runtime.Frame) error {
	c.silent++
	if c.silent > c.maxSilent {
		return &herbert.RecursionError{Depth: c.frames.Depth(), Calls: c.silent}
	}
	if top := c.frames.Current(); top != nil && top.Exhausted() {
		c.frames.Pop()
	}
	if c.frames.Depth() >= c.maxDepth {
		return &herbert.RecursionError{Depth: c.frames.Depth(), Calls: c.silent}
	}
	c.frames.Push(f)
	return nil
}

// param evaluates a parameter in statement position. Deferred values are
// evaluated in the scope they have been captured in. A number is an action
// only if the parameter is the sole element of its sequence.
func (c *Commands) param(f *runtime.Frame, p *ast.ParamRef) (herbert.Action, bool, error) {
	v, err := lookup(f.Scope, p.Name)
	if err != nil {
		return herbert.Action{}, false, err
	}
	switch x := v.(type) {
	case *runtime.Deferred:
		return herbert.Action{}, false, c.enter(runtime.NewFrame(p.Name, x.Seq, x.Scope))
	case runtime.Number:
		if f.Sole() {
			return herbert.NumberAction(x.Int()), true, nil
		}
		return herbert.Action{}, false, &herbert.TypeError{
			Msg: fmt.Sprintf("parameter %s does not evaluate to a command s, l or r or a procedure call: %s",
				p.Name, x),
		}
	}
	return herbert.Action{}, false, fmt.Errorf("unknown value type %T", v)
}

// call evaluates a procedure call: arguments are evaluated in the caller's
// scope, bound to the parameters in a new scope, and the body is entered.
// If any argument evaluates to 0, the call is skipped.
func (c *Commands) call(f *runtime.Frame, call *ast.Call) error {
	def, ok := c.prog.Lookup(call.Name)
	if !ok {
		return &herbert.LookupError{Name: call.Name, Msg: "missing procedure: " + call.Name}
	}
	nargs, nparams := len(call.Args), len(def.Params)
	if nargs != nparams {
		return &herbert.TypeError{
			Msg: fmt.Sprintf("%s takes %d %s but %d %s given", def.Name,
				nparams, herbert.Pluralize(nparams, "argument", "arguments"),
				nargs, herbert.Pluralize(nargs, "was", "were")),
		}
	}
	scope := runtime.NewScope(def.Name)
	for i, arg := range call.Args {
		v, err := argValue(arg, f.Scope)
		if err != nil {
			return err
		}
		if runtime.IsZero(v) {
			tracer().Debugf("call %s skipped, %s = 0", call, def.Params[i])
			return nil
		}
		scope.Bind(def.Params[i], v)
	}
	tracer().Debugf("entering %s", scope)
	return c.enter(runtime.NewFrame(def.Name, def.Body, scope))
}

func argValue(arg ast.Arg, scope *runtime.Scope) (runtime.Value, error) {
	switch x := arg.(type) {
	case *ast.VarRef:
		return lookup(scope, x.Name)
	case *ast.Quoted:
		return &runtime.Deferred{Scope: scope, Seq: x.Body}, nil
	case *ast.Arithmetic:
		return arithmetic(x, scope)
	}
	return nil, fmt.Errorf("unknown program tree argument %T", arg)
}

func arithmetic(expr *ast.Arithmetic, scope *runtime.Scope) (runtime.Value, error) {
	sum := new(big.Int)
	for _, term := range expr.Terms {
		n := term.Literal
		if term.Param != "" {
			v, err := lookup(scope, term.Param)
			if err != nil {
				return nil, err
			}
			num, ok := v.(runtime.Number)
			if !ok {
				return nil, &herbert.TypeError{
					Msg: fmt.Sprintf("parameter %s does not evaluate to a number: %s", term.Param, v),
				}
			}
			n = num.Int()
		}
		if term.Negative {
			sum.Sub(sum, n)
		} else {
			sum.Add(sum, n)
		}
	}
	return runtime.NewNumber(sum), nil
}

func lookup(scope *runtime.Scope, name string) (runtime.Value, error) {
	v, ok := scope.Lookup(name)
	if !ok {
		return nil, &herbert.LookupError{Name: name, Msg: "unbound parameter: " + name}
	}
	return v, nil
}
