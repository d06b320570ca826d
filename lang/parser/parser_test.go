package parser

import (
	"errors"
	"testing"

	"github.com/npillmayer/herbert"
	"github.com/npillmayer/herbert/lang/ast"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.lang")
	defer teardown()
	//
	prog, err := Parse("slr")
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Procs) != 0 {
		t.Errorf("expected no procedure definitions, got %d", len(prog.Procs))
	}
	if len(prog.Main) != 3 {
		t.Fatalf("expected main block of length 3, got %d", len(prog.Main))
	}
	for i, c := range []herbert.Command{herbert.Forward, herbert.TurnLeft, herbert.TurnRight} {
		cmd, ok := prog.Main[i].(*ast.Command)
		if !ok || cmd.Cmd != c {
			t.Errorf("expected main[%d] to be command %s, is %v", i, c, prog.Main[i])
		}
	}
}

func TestProcedureCall(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.lang")
	defer teardown()
	//
	prog, err := Parse("a")
	if err != nil {
		t.Fatal(err)
	}
	call, ok := prog.Main[0].(*ast.Call)
	if !ok || call.Name != "a" || len(call.Args) != 0 {
		t.Errorf("expected call of a without arguments, got %v", prog.Main[0])
	}
}

func TestDefinitionWithoutParams(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.lang")
	defer teardown()
	//
	prog, err := Parse("a:ssra\na")
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Procs) != 1 {
		t.Fatalf("expected 1 procedure definition, got %d", len(prog.Procs))
	}
	def := prog.Procs[0]
	if def.Name != "a" || len(def.Params) != 0 || len(def.Body) != 4 {
		t.Errorf("unexpected definition %v", def)
	}
	if _, ok := def.Body[3].(*ast.Call); !ok {
		t.Errorf("expected last body element to be a call, is %T", def.Body[3])
	}
}

func TestDefinitionWithParams(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.lang")
	defer teardown()
	//
	prog, err := Parse("f(A,B,C,D,E,F):sAf(AA,B,F-C+D+2,-D+1,E-1,sFl)\nf(sl,5,-1,100,10,r)")
	if err != nil {
		t.Fatal(err)
	}
	def := prog.Procs[0]
	if len(def.Params) != 6 {
		t.Fatalf("expected 6 parameters, got %v", def.Params)
	}
	for i, p := range []string{"A", "B", "C", "D", "E", "F"} {
		if def.Params[i] != p {
			t.Errorf("expected parameter #%d to be %s, is %s", i, p, def.Params[i])
		}
	}
	if len(def.Body) != 3 {
		t.Fatalf("expected body of length 3, got %d", len(def.Body))
	}
	if _, ok := def.Body[1].(*ast.ParamRef); !ok {
		t.Errorf("expected body[1] to be a parameter reference, is %T", def.Body[1])
	}
	call := def.Body[2].(*ast.Call)
	kinds := []string{"quoted", "var", "expr", "expr", "expr", "quoted"}
	for i, arg := range call.Args {
		if k := kind(arg); k != kinds[i] {
			t.Errorf("expected argument #%d (%s) to be %s, is %s", i, arg, kinds[i], k)
		}
	}
	main := prog.Main[0].(*ast.Call)
	kinds = []string{"quoted", "expr", "expr", "expr", "expr", "quoted"}
	for i, arg := range main.Args {
		if k := kind(arg); k != kinds[i] {
			t.Errorf("expected main argument #%d (%s) to be %s, is %s", i, arg, kinds[i], k)
		}
	}
	expr := call.Args[2].(*ast.Arithmetic)
	if expr.String() != "F-C+D+2" || len(expr.Terms) != 4 || expr.TokenCount() != 7 {
		t.Errorf("unexpected expression %s with %d terms", expr, len(expr.Terms))
	}
	expr = call.Args[3].(*ast.Arithmetic)
	if !expr.Signed || !expr.Terms[0].Negative || expr.Terms[1].Negative {
		t.Errorf("expected -D+1 to negate D only, got %+v", expr.Terms)
	}
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.lang")
	defer teardown()
	//
	for _, src := range []string{
		"slr",
		"a(A):sa(A-1)\na(4)",
		"a(A,B,C):f(B)Ca(A-1,B,C)\nf(A):sf(A-1)\na(4,5,r)",
		"f(A,B,C,D,E,F):sAf(AA,B,F-C+D+2,-D+1,E-1,sFl)\nf(sl,5,-1,100,10,r)",
	} {
		prog := MustParse(src)
		if prog.String() != src {
			t.Errorf("expected %q to print as itself, got %q", src, prog.String())
		}
	}
}

func TestDuplicateDefinitions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.lang")
	defer teardown()
	//
	prog := MustParse("a:s\na:l\na")
	def, ok := prog.Lookup("a")
	if !ok || def != prog.Procs[0] {
		t.Errorf("expected lookup to find the first definition of a")
	}
}

func TestSurroundingWhiteSpace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.lang")
	defer teardown()
	//
	prog, err := Parse("\n  a:sa\na\n\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Procs) != 1 || len(prog.Main) != 1 {
		t.Errorf("unexpected program %s", prog)
	}
}

func TestSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.lang")
	defer teardown()
	//
	for _, test := range []struct {
		name   string
		source string
		offset uint64
	}{
		{"missing procedure name", ":ssra\na", 0},
		{"missing procedure body", "a:\na", 2},
		{"missing main", "a:ssra\n", 6},
		{"empty program", "", 0},
		{"parameter in main", "sA", 1},
		{"illegal character", "s s", 1},
		{"duplicate parameter", "a(A,A):s\na(1,2)", 4},
		{"unbalanced parenthesis", "a(A:s\na", 3},
		{"dangling operator", "a(A):s\na(1-)", 11},
		{"main before definition", "s\na:s", 1},
	} {
		_, err := Parse(test.source)
		if err == nil {
			t.Errorf("%s: expected syntax error for %q", test.name, test.source)
			continue
		}
		var synerr *herbert.SyntaxError
		if !errors.As(err, &synerr) {
			t.Errorf("%s: expected a SyntaxError, got %T", test.name, err)
			continue
		}
		if synerr.Span.From() != test.offset {
			t.Errorf("%s: expected error at offset %d, got %d (%v)", test.name, test.offset,
				synerr.Span.From(), synerr)
		}
	}
}

func TestErrorPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.lang")
	defer teardown()
	//
	for _, test := range []struct {
		source    string
		offset    uint64
		line, col int
	}{
		{"a:s\n\na", 4, 2, 1},
		{"a:\na", 2, 1, 3},
		{"\n  s s", 4, 2, 4},
		{"a(A):s\na(1-)", 11, 2, 5},
	} {
		_, err := Parse(test.source)
		var synerr *herbert.SyntaxError
		if !errors.As(err, &synerr) {
			t.Errorf("%q: expected a SyntaxError, got %v", test.source, err)
			continue
		}
		if synerr.Span.From() != test.offset || synerr.Line != test.line || synerr.Col != test.col {
			t.Errorf("%q: expected error at %d (line %d, column %d), got %d (line %d, column %d)",
				test.source, test.offset, test.line, test.col,
				synerr.Span.From(), synerr.Line, synerr.Col)
		}
	}
}

func TestHugeLiterals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.lang")
	defer teardown()
	//
	source := "a(A):sa(A-1)\na(99999999999999999999+1)"
	prog, err := Parse(source)
	if err != nil {
		t.Fatal(err)
	}
	if prog.String() != source {
		t.Errorf("expected %q, got %q", source, prog.String())
	}
}

func kind(arg ast.Arg) string {
	switch arg.(type) {
	case *ast.VarRef:
		return "var"
	case *ast.Quoted:
		return "quoted"
	case *ast.Arithmetic:
		return "expr"
	}
	return "?"
}
