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
	"fmt"
	"sync"
	"testing"

	"github.com/gx-org/opcore/build/strategy"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func registerGeneric(rr *strategy.Registrar) error {
	rr.AddNamedImplement("add", "add.generic", computeInjective, scheduleInjective, 0)
	rr.AddNamedImplement("exp", "exp.generic", computeInjective, scheduleInjective, 0)
	return nil
}

func registerARM(rr *strategy.Registrar) error {
	return rr.With(strategy.ForTarget("arm_cpu"), func() error {
		rr.AddNamedImplement("add", "add.arm_cpu", computeInjective, scheduleInjective, 10)
		return nil
	})
}

func registerBroken(rr *strategy.Registrar) error {
	return errors.New("missing kernel library")
}

func registerUnbalanced(rr *strategy.Registrar) error {
	rr.Scope().Push(strategy.ForTarget("cuda"))
	rr.AddNamedImplement("add", "add.cuda", computeInjective, scheduleInjective, 10)
	return nil
}

func TestRegistry(t *testing.T) {
	reg := strategy.NewRegistry()
	require.NoError(t, reg.RegisterBackends(registerGeneric, registerARM))
	require.Equal(t, []string{"add", "exp"}, reg.Ops())

	arm := &strategy.Context{Target: strategy.MustParseTarget("llvm -device=arm_cpu -mattr=+neon")}
	impl, err := reg.Select("add", arm)
	require.NoError(t, err)
	require.Equal(t, "add.arm_cpu", impl.Name())

	x86 := &strategy.Context{Target: strategy.MustParseTarget("llvm -mcpu=skylake")}
	impl, err = reg.Select("add", x86)
	require.NoError(t, err)
	require.Equal(t, "add.generic", impl.Name())

	_, err = reg.Select("conv2d", x86)
	require.True(t, errors.Is(err, strategy.ErrNoImplementation))

	s, ok := reg.Lookup("add")
	require.True(t, ok)
	require.Same(t, s, reg.Strategy("add"))
	require.Len(t, s.Specializations(), 2)

	want := `add:
	generic:
		add.generic plevel=0
	target has arm_cpu:
		add.arm_cpu plevel=10
exp:
	generic:
		exp.generic plevel=0`
	require.Equal(t, want, reg.String())
}

func TestRegisterBackendsErrors(t *testing.T) {
	reg := strategy.NewRegistry()
	err := reg.RegisterBackends(registerBroken, registerGeneric, registerUnbalanced)
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 2)
	require.Contains(t, err.Error(), "missing kernel library")
	require.Contains(t, err.Error(), "conditions left in its scope")
	// Backends after a failure are still registered.
	_, ok := reg.Lookup("exp")
	require.True(t, ok)
}

func TestConcurrentRegistrars(t *testing.T) {
	const numBackends = 8
	reg := strategy.NewRegistry()
	var wg sync.WaitGroup
	for i := range numBackends {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rr := reg.Registrar()
			cond := strategy.ForTarget(fmt.Sprintf("device%d", i))
			_ = rr.With(cond, func() error {
				for j := range 4 {
					rr.AddNamedImplement("add", fmt.Sprintf("add.device%d.%d", i, j), computeInjective, scheduleInjective, j)
					if rr.Scope().Current() != cond {
						t.Errorf("backend %d: unexpected current condition %s", i, rr.Scope().Current())
					}
				}
				return nil
			})
		}()
	}
	wg.Wait()

	s, ok := reg.Lookup("add")
	require.True(t, ok)
	specs := s.Specializations()
	require.Len(t, specs, numBackends)
	for _, spec := range specs {
		require.Len(t, spec.Implements(), 4)
	}
	impl, err := reg.Select("add", &strategy.Context{Target: strategy.MustParseTarget("llvm -device=device3")})
	require.NoError(t, err)
	require.Equal(t, "add.device3.3", impl.Name())
}
