/*
Package ast defines the program tree of the herbert language.

The program tree is a closed sum type: every node kind implements a marker
interface with an unexported method, and clients traverse trees with
exhaustive type switches.

    Program  = ProcDef* Main
    ProcDef  = name params body
    Elem     = Command | ParamRef | Call
    Arg      = VarRef | Quoted | Arithmetic

Program trees are immutable once created and may be evaluated any number
of times.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ast

import (
	"math/big"
	"strings"

	"github.com/npillmayer/herbert"
)

// Elem is an element of a statement sequence: a Command, a ParamRef or a Call.
type Elem interface {
	elem()
	Span() herbert.Span
	String() string
}

// Arg is a procedure call argument: a VarRef, a Quoted sequence or an Arithmetic expression.
type Arg interface {
	arg()
	Span() herbert.Span
	String() string
}

// --- Statement elements ----------------------------------------------------

// Command is a primitive robot command within a sequence.
type Command struct {
	Cmd    herbert.Command
	Extent herbert.Span
}

// ParamRef references a parameter in statement position.
type ParamRef struct {
	Name   string
	Extent herbert.Span
}

// Call is a procedure call with zero or more arguments.
type Call struct {
	Name   string
	Args   []Arg
	Extent herbert.Span
}

func (*Command) elem()  {}
func (*ParamRef) elem() {}
func (*Call) elem()     {}

func (c *Command) Span() herbert.Span  { return c.Extent }
func (p *ParamRef) Span() herbert.Span { return p.Extent }
func (c *Call) Span() herbert.Span     { return c.Extent }

func (c *Command) String() string  { return c.Cmd.String() }
func (p *ParamRef) String() string { return p.Name }

func (c *Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Name + "(" + strings.Join(args, ",") + ")"
}

// --- Arguments -------------------------------------------------------------

// VarRef is an argument consisting of a single parameter name. It is
// evaluated by lookup.
type VarRef struct {
	Name   string
	Extent herbert.Span
}

// Quoted is an argument holding an unevaluated sequence, captured for
// deferred execution.
type Quoted struct {
	Body   []Elem
	Extent herbert.Span
}

// Arithmetic is an argument holding a signed sum of integer literals and
// parameter references.
type Arithmetic struct {
	Signed bool   // expression starts with a sign token
	Terms  []Term // at least one term
	Extent herbert.Span
}

// Term is a signed operand of an arithmetic expression. A term is either a
// literal or a parameter reference (Param != "").
type Term struct {
	Negative bool
	Literal  *big.Int
	Param    string
}

func (*VarRef) arg()     {}
func (*Quoted) arg()     {}
func (*Arithmetic) arg() {}

func (v *VarRef) Span() herbert.Span     { return v.Extent }
func (q *Quoted) Span() herbert.Span     { return q.Extent }
func (a *Arithmetic) Span() herbert.Span { return a.Extent }

func (v *VarRef) String() string { return v.Name }
func (q *Quoted) String() string { return SeqString(q.Body) }

func (a *Arithmetic) String() string {
	var b strings.Builder
	for i, t := range a.Terms {
		if t.Negative {
			b.WriteByte('-')
		} else if i > 0 || a.Signed {
			b.WriteByte('+')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// TokenCount returns the number of source tokens of an expression,
// including signs and operators.
func (a *Arithmetic) TokenCount() int {
	n := 2*len(a.Terms) - 1
	if a.Signed {
		n++
	}
	return n
}

func (t Term) String() string {
	if t.Param != "" {
		return t.Param
	}
	return t.Literal.String()
}

// --- Definitions and programs ---------------------------------------------

// ProcDef is a procedure definition.
type ProcDef struct {
	Name   string
	Params []string
	Body   []Elem
	Extent herbert.Span
}

func (d *ProcDef) String() string {
	var b strings.Builder
	b.WriteString(d.Name)
	if len(d.Params) > 0 {
		b.WriteString("(" + strings.Join(d.Params, ",") + ")")
	}
	b.WriteString(":")
	b.WriteString(SeqString(d.Body))
	return b.String()
}

// Program is the root of a program tree.
type Program struct {
	Procs []*ProcDef
	Main  []Elem
	index map[string]*ProcDef // first definition per name
}

// NewProgram creates a program from procedure definitions and a main block.
// For duplicate procedure names the first definition wins.
func NewProgram(procs []*ProcDef, main []Elem) *Program {
	p := &Program{
		Procs: procs,
		Main:  main,
		index: make(map[string]*ProcDef, len(procs)),
	}
	for _, d := range procs {
		if _, exists := p.index[d.Name]; !exists {
			p.index[d.Name] = d
		}
	}
	return p
}

// Lookup finds the first procedure definition with a given name.
func (p *Program) Lookup(name string) (*ProcDef, bool) {
	d, ok := p.index[name]
	return d, ok
}

// String reproduces program source (in canonical form) from the tree.
func (p *Program) String() string {
	var b strings.Builder
	for _, d := range p.Procs {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	b.WriteString(SeqString(p.Main))
	return b.String()
}

// SeqString returns the source representation of a sequence of elements.
func SeqString(seq []Elem) string {
	var b strings.Builder
	for _, e := range seq {
		b.WriteString(e.String())
	}
	return b.String()
}
