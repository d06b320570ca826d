package counter

import (
	"testing"

	"github.com/npillmayer/herbert/lang/parser"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCountBytes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.lang")
	defer teardown()
	//
	for i, test := range []struct {
		program string
		bytes   int
	}{
		{"slr", 3},
		{"a:sa\na", 4},
		{"a(A):sa(A-1)\na(4)", 8},
		{"a(A,B,C):f(B)Ca(A-1,B,C)\nf(A):sf(A-1)\na(4,5,rslsr)", 26},
		{"f(A,B,C,D,E,F):sAf(AA,B,F-C+D+2,-D+1,E-1,sFl)\nf(sl,5,-1,100,10,r)", 32},
		{"a(A,B,C):f(B)Ca(A-1,B,C)\nf(A):sf(A-1)\na(4,5,r)", 22},
	} {
		prog, err := parser.Parse(test.program)
		if err != nil {
			t.Fatalf("test %d: %v", i+1, err)
		}
		if n := Bytes(prog); n != test.bytes {
			t.Errorf("test %d: expected %q to cost %d bytes, counted %d", i+1, test.program, test.bytes, n)
		}
	}
}

func TestArithmeticCost(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "herbert.lang")
	defer teardown()
	//
	for _, test := range []struct {
		expr string
		cost int
	}{
		{"4", 1},
		{"-1", 1},
		{"A-1", 2},
		{"-D+1", 2},
		{"F-C+D+2", 4},
		{"1+2+3+4+5", 5},
	} {
		prog := parser.MustParse("a(A,C,D,F):s\na(" + test.expr + ",1,1,1)")
		// call costs 1 plus three single-literal arguments
		if n := Seq(prog.Main) - 4; n != test.cost {
			t.Errorf("expected %q to cost %d, counted %d", test.expr, test.cost, n)
		}
	}
}
