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

package strategy_test

import (
	"testing"

	"github.com/gx-org/opcore/build/ir"
	"github.com/gx-org/opcore/build/strategy"
	"github.com/stretchr/testify/require"
)

func TestConditionEqual(t *testing.T) {
	n := ir.NewVar("n")
	armLarge := strategy.NewCondition(
		strategy.TargetKey("arm_cpu"),
		strategy.IndexCondition{Op: strategy.GT, X: n, Y: ir.Int(8)},
	)
	largeArm := strategy.NewCondition(
		strategy.IndexCondition{Op: strategy.GT, X: n, Y: ir.Int(8)},
		strategy.TargetKey("arm_cpu"),
		strategy.TargetKey("arm_cpu"),
	)
	require.True(t, armLarge.Equal(largeArm))
	require.Len(t, largeArm.Clauses(), 2)
	require.False(t, armLarge.Equal(strategy.ForTarget("arm_cpu")))
	require.False(t, armLarge.Equal(strategy.Generic()))

	require.True(t, strategy.NewCondition().Equal(strategy.Generic()))
	require.True(t, strategy.NewCondition().IsGeneric())
	require.Equal(t, "generic", strategy.Generic().String())

	plusOne := strategy.NewCondition(strategy.IndexCondition{Op: strategy.LE, X: ir.Add(n, ir.Int(1)), Y: ir.Int(4)})
	onePlus := strategy.NewCondition(strategy.IndexCondition{Op: strategy.LE, X: ir.Add(ir.Int(1), n), Y: ir.Int(4)})
	require.True(t, plusOne.Equal(onePlus))

	// Clause keys do not leak into each other.
	require.False(t, strategy.ForTarget("a && target:b").Equal(strategy.ForTarget("a", "b")))
	named := strategy.NewCondition(strategy.IndexCondition{Op: strategy.LE, X: ir.NewVar("(+ 1 n)"), Y: ir.Int(4)})
	require.False(t, plusOne.Equal(named))
}

func TestNilCondition(t *testing.T) {
	var cond *strategy.Condition
	require.True(t, cond.IsGeneric())
	require.True(t, cond.Eval(nil))
	require.True(t, cond.Equal(strategy.Generic()))
	require.True(t, strategy.Generic().Equal(cond))
	require.Empty(t, cond.Clauses())
	require.Equal(t, "generic", cond.String())
}

func TestConditionEval(t *testing.T) {
	n := ir.NewVar("n")
	cond := strategy.NewCondition(
		strategy.TargetKey("cpu"),
		strategy.IndexCondition{Op: strategy.GE, X: ir.Mul(n, ir.Int(2)), Y: ir.Int(16)},
	)
	tests := []struct {
		ctx  *strategy.Context
		want bool
	}{
		{
			ctx:  &strategy.Context{Target: strategy.MustParseTarget("llvm"), Bindings: ir.Bindings{"n": 8}},
			want: true,
		},
		{
			ctx:  &strategy.Context{Target: strategy.MustParseTarget("llvm"), Bindings: ir.Bindings{"n": 7}},
			want: false,
		},
		{
			ctx:  &strategy.Context{Target: strategy.MustParseTarget("cuda"), Bindings: ir.Bindings{"n": 8}},
			want: false,
		},
		{
			// n is unknown: the clause does not hold.
			ctx:  &strategy.Context{Target: strategy.MustParseTarget("llvm")},
			want: false,
		},
		{
			ctx:  nil,
			want: false,
		},
	}
	for i, test := range tests {
		require.Equal(t, test.want, cond.Eval(test.ctx), "test %d", i)
	}
	require.True(t, strategy.Generic().Eval(nil))
}
