/*
Package runtime implements the runtime of the herbert interpreter,
consisting of values, scopes and call frames.

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

Values and Scopes

Parameters are bound to values, which are either numbers or deferred
sequences. A deferred sequence is a quoted piece of program, together with
the scope it has been quoted in. Scopes are created on procedure entry. A
scope is reachable only from the frame executing its procedure and from the
deferred values quoted within it, so it is released as soon as both are gone.
Numbers are of arbitrary size.

Call Frames

Evaluation does not use the Go call stack for nested procedure calls.
Instead, the interpreter keeps an explicit stack of frames on the heap,
each one holding a statement sequence, a position within it and the scope
to evaluate it in.


----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software or the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package runtime

import (
	"math/big"

	"github.com/npillmayer/herbert/lang/ast"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'herbert.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("herbert.runtime")
}

// --- Values ----------------------------------------------------------------

// Value is the type of parameter values: either a Number or a *Deferred.
type Value interface {
	value()
	String() string
}

// Number is an integer parameter value of arbitrary size.
type Number struct {
	n *big.Int
}

// NewNumber wraps an integer into a value. n must not be modified afterwards.
func NewNumber(n *big.Int) Number {
	return Number{n: n}
}

// Int returns the integer of a number.
func (n Number) Int() *big.Int {
	return n.n
}

// Deferred is a quoted sequence, captured together with the scope it has been
// quoted in. It will be evaluated when referenced as a statement.
type Deferred struct {
	Scope *Scope
	Seq   []ast.Elem
}

func (Number) value()    {}
func (*Deferred) value() {}

func (n Number) String() string {
	return n.n.String()
}

func (d *Deferred) String() string {
	return ast.SeqString(d.Seq)
}

// IsZero is a predicate: is v the number 0?
func IsZero(v Value) bool {
	n, ok := v.(Number)
	return ok && n.n.Sign() == 0
}
