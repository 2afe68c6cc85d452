package ir_test

import (
	"testing"

	"github.com/gx-org/opcore/build/ir"
	"github.com/pkg/errors"
)

func TestEval(t *testing.T) {
	n, m := ir.NewVar("n"), ir.NewVar("m")
	bindings := ir.Bindings{"n": 6}
	expr := ir.Add(ir.Mul(n, ir.Int(2)), ir.FloorDiv(n, ir.Int(4)))
	got, _, err := ir.Eval(bindings, expr)
	if err != nil {
		t.Fatal(err)
	}
	if got != 13 {
		t.Errorf("%s with n=6: got %d but want 13", expr, got)
	}
	_, unknowns, err := ir.Eval(bindings, ir.Add(n, m))
	if !errors.Is(err, ir.ErrUnresolved) {
		t.Errorf("got error %v but want %v", err, ir.ErrUnresolved)
	}
	if len(unknowns) != 1 || unknowns[0].Name != "m" {
		t.Errorf("got unknowns %v but want [m]", unknowns)
	}
	if _, _, err := ir.Eval(bindings, ir.Any()); !errors.Is(err, ir.ErrUnresolved) {
		t.Errorf("got error %v but want %v", err, ir.ErrUnresolved)
	}
	if _, _, err := ir.Eval(bindings, ir.FloorMod(n, ir.Int(0))); err == nil {
		t.Errorf("expected an error when computing a modulo by zero")
	}
}

func TestSubstitute(t *testing.T) {
	n, m := ir.NewVar("n"), ir.NewVar("m")
	s := ir.NewShape(ir.Add(n, ir.Int(1)), m, ir.Int(3))
	got := ir.SubstituteShape(ir.Bindings{"n": 4}, s)
	want := ir.NewShape(ir.Int(5), m, ir.Int(3))
	if !ir.ShapeEqual(got, want) {
		t.Errorf("got %s but want %s", got, want)
	}
	if got := ir.Substitute(nil, ir.Add(n, ir.Int(1))); !ir.ExprEqual(got, ir.Add(n, ir.Int(1))) {
		t.Errorf("Substitute with no fetcher: got %s but want n + 1", got)
	}
	if vars := ir.Vars(ir.Add(n, ir.Mul(m, n))); len(vars) != 2 {
		t.Errorf("got variables %v but want [n m]", vars)
	}
}
