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

	"github.com/gx-org/opcore/build/strategy"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestScope(t *testing.T) {
	var scope strategy.Scope
	require.True(t, scope.Current().IsGeneric())

	arm := strategy.ForTarget("arm_cpu")
	neon := strategy.ForTarget("arm_cpu", "neon")
	scope.Push(arm)
	scope.Push(neon)
	require.Same(t, neon, scope.Current())
	scope.Pop()
	require.Same(t, arm, scope.Current())
	scope.Pop()
	require.Same(t, strategy.Generic(), scope.Current())

	// Popping an empty scope is a no-op.
	scope.Pop()
	require.Equal(t, 0, scope.Depth())
}

func TestScopeWith(t *testing.T) {
	var scope strategy.Scope
	arm := strategy.ForTarget("arm_cpu")
	errBackend := errors.New("backend error")

	err := scope.With(arm, func() error {
		require.Same(t, arm, scope.Current())
		return errBackend
	})
	require.ErrorIs(t, err, errBackend)
	require.Equal(t, 0, scope.Depth())

	require.Panics(t, func() {
		_ = scope.With(arm, func() error {
			panic("registration failed")
		})
	})
	require.Equal(t, 0, scope.Depth())

	err = scope.With(arm, func() error {
		return scope.With(strategy.ForTarget("gpu"), func() error {
			require.Equal(t, 2, scope.Depth())
			return nil
		})
	})
	require.NoError(t, err)
	require.Equal(t, 0, scope.Depth())
}

func TestScopePushNil(t *testing.T) {
	var scope strategy.Scope
	scope.Push(nil)
	require.Same(t, strategy.Generic(), scope.Current())

	s := strategy.NewOpStrategy("relu")
	addNamed(s, &scope, "default", 0)
	scope.Pop()
	impl, err := s.Select(&strategy.Context{Target: strategy.MustParseTarget("llvm")})
	require.NoError(t, err)
	require.Equal(t, "default", impl.Name())
	require.True(t, s.Specializations()[0].Condition().IsGeneric())
}
