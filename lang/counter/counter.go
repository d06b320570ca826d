/*
Package counter computes the byte cost of herbert programs.

The byte cost is a static measure of program size and is used for scoring
only. Every procedure name, parameter, command and variable reference
costs one byte. Operators of arithmetic expressions are paired with an
operand, so an expression of t tokens costs ⌈t/2⌉ bytes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package counter

import (
	"fmt"

	"github.com/npillmayer/herbert/lang/ast"
)

// Bytes returns the byte cost of a program.
func Bytes(prog *ast.Program) int {
	n := 0
	for _, def := range prog.Procs {
		n += ProcDef(def)
	}
	return n + Seq(prog.Main)
}

// ProcDef returns the cost of a procedure definition: its name, its
// parameters and its body.
func ProcDef(def *ast.ProcDef) int {
	return 1 + len(def.Params) + Seq(def.Body)
}

// Seq returns the summed cost of a sequence of elements.
func Seq(seq []ast.Elem) int {
	n := 0
	for _, e := range seq {
		n += Elem(e)
	}
	return n
}

// Elem returns the cost of a single element.
func Elem(e ast.Elem) int {
	switch x := e.(type) {
	case *ast.Command, *ast.ParamRef:
		return 1
	case *ast.Call:
		n := 1
		for _, a := range x.Args {
			n += Arg(a)
		}
		return n
	}
	panic(fmt.Sprintf("unknown program tree element %T", e))
}

// Arg returns the cost of a procedure call argument.
func Arg(a ast.Arg) int {
	switch x := a.(type) {
	case *ast.VarRef:
		return 1
	case *ast.Quoted:
		return Seq(x.Body)
	case *ast.Arithmetic:
		return (x.TokenCount() + 1) / 2
	}
	panic(fmt.Sprintf("unknown program tree argument %T", a))
}
