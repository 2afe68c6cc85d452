// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package relations_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/gx-org/opcore/build/ir"
	"github.com/gx-org/opcore/build/relations"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestEqualCheck(t *testing.T) {
	n := ir.NewVar("n")
	placeholder := ir.Any()
	tests := []struct {
		lhs, rhs ir.IndexExpr
		want     bool
	}{
		{lhs: ir.Int(5), rhs: ir.Int(5), want: true},
		{lhs: ir.Int(5), rhs: ir.Int(6), want: false},
		{lhs: n, rhs: n, want: true},
		{lhs: n, rhs: ir.NewVar("m"), want: false},
		{
			lhs:  ir.Add(ir.Sub(ir.Add(n, ir.Int(1)), ir.Add(n, ir.Int(1))), ir.Int(3)),
			rhs:  ir.Int(3),
			want: true,
		},
		{lhs: ir.Mul(ir.Int(2), n), rhs: ir.Add(n, n), want: true},
		{lhs: placeholder, rhs: placeholder, want: true},
		{lhs: placeholder, rhs: ir.Any(), want: false},
		// Names that look like other atoms.
		{lhs: ir.NewVar(fmt.Sprintf("?%d", placeholder.ID())), rhs: placeholder, want: false},
		{lhs: ir.NewVar("(* m n)"), rhs: ir.Mul(ir.NewVar("m"), n), want: false},
		// Overflow is never folded.
		{lhs: ir.Mul(ir.Int(1<<62), ir.Int(2)), rhs: ir.Int(math.MinInt64), want: false},
		{lhs: ir.Mul(ir.Mul(ir.Int(1<<62), n), ir.Int(4)), rhs: ir.Int(0), want: false},
		// Equal for n >= 0 but cannot be proven.
		{lhs: ir.FloorDiv(ir.Mul(ir.Int(2), n), ir.Int(2)), rhs: n, want: false},
	}
	for i, test := range tests {
		if got := relations.EqualCheck(test.lhs, test.rhs); got != test.want {
			t.Errorf("test %d: EqualCheck(%s, %s) = %v but want %v", i, test.lhs, test.rhs, got, test.want)
		}
	}
}

func TestEqualConstInt(t *testing.T) {
	if !relations.EqualConstInt(ir.Int(1), 1) {
		t.Errorf("EqualConstInt(1, 1) = false")
	}
	if relations.EqualConstInt(ir.Int(2), 1) {
		t.Errorf("EqualConstInt(2, 1) = true")
	}
	notFolded := &ir.BinaryExpr{Op: ir.OpSub, X: ir.Int(2), Y: ir.Int(1)}
	if relations.EqualConstInt(notFolded, 1) {
		t.Errorf("EqualConstInt(%s, 1) = true but no simplification should be applied", notFolded)
	}
}

func randomExpr(a, b, c int64) ir.IndexExpr {
	n, m := ir.NewVar("n"), ir.NewVar("m")
	return ir.Add(
		ir.Mul(ir.Add(n, ir.Int(a)), ir.Sub(m, ir.Int(b))),
		ir.Max(ir.Mul(ir.Int(c), n), m),
	)
}

func TestEqualCheckProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("an expression is equal to itself", prop.ForAll(
		func(a, b, c int64) bool {
			x := randomExpr(a, b, c)
			return relations.EqualCheck(x, x)
		},
		gen.Int64Range(-100, 100),
		gen.Int64Range(-100, 100),
		gen.Int64Range(-100, 100),
	))
	properties.Property("constants are equal iff their values are", prop.ForAll(
		func(a, b int64) bool {
			return relations.EqualCheck(ir.Int(a), ir.Int(b)) == (a == b)
		},
		gen.Int64Range(-5, 5),
		gen.Int64Range(-5, 5),
	))
	properties.Property("no false positive", prop.ForAll(
		func(a, b, c, d int64) bool {
			x, y := randomExpr(a, b, c), randomExpr(a, b, d)
			if !relations.EqualCheck(x, y) {
				return true
			}
			bindings := ir.Bindings{"n": 3, "m": 11}
			xVal, _, xErr := ir.Eval(bindings, x)
			yVal, _, yErr := ir.Eval(bindings, y)
			return xErr == nil && yErr == nil && xVal == yVal
		},
		gen.Int64Range(-10, 10),
		gen.Int64Range(-10, 10),
		gen.Int64Range(-10, 10),
		gen.Int64Range(-10, 10),
	))
	properties.TestingRun(t)
}
