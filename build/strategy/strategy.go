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

// Package strategy registers the implementations of operators and selects
// the implementation to use given a target and the values of symbolic variables.
//
// Implementations are registered under the condition on top of a scope.
// Implementations registered under the same condition form a specialization.
// Selection picks the implementation with the highest priority level among all
// the specializations whose condition holds. Ties are broken by registration order.
package strategy

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"text/template"

	gxfmt "github.com/gx-org/opcore/base/fmt"
	"github.com/gx-org/opcore/base/tmpl"
	"github.com/gx-org/opcore/build/ir"
	"k8s.io/klog/v2"
)

type (
	// Tensor is a tensor expression built by a compute function.
	// It is opaque to the registry.
	Tensor any

	// Schedule is a schedule built by a schedule function.
	// It is opaque to the registry.
	Schedule any

	// ComputeFunc builds the output tensors of an operator.
	ComputeFunc func(attrs ir.Attrs, inputs []Tensor, outType ir.Type) ([]Tensor, error)

	// ScheduleFunc builds the schedule of the outputs of an operator for a target.
	ScheduleFunc func(attrs ir.Attrs, outs []Tensor, target *Target) (Schedule, error)

	// OpImplement is an implementation of an operator.
	OpImplement struct {
		name     string
		compute  ComputeFunc
		schedule ScheduleFunc
		plevel   int
		seq      uint64
	}

	// OpSpecialization is the list of implementations registered under a condition.
	OpSpecialization struct {
		cond  *Condition
		impls []*OpImplement
	}

	// OpStrategy is the list of specializations of an operator.
	// It is safe for concurrent use.
	OpStrategy struct {
		op string

		mu    sync.Mutex
		specs []*OpSpecialization
		seq   uint64
	}
)

// Name of the implementation.
func (impl *OpImplement) Name() string { return impl.name }

// PLevel returns the priority level of the implementation.
func (impl *OpImplement) PLevel() int { return impl.plevel }

// Compute builds the output tensors of the operator.
func (impl *OpImplement) Compute(attrs ir.Attrs, inputs []Tensor, outType ir.Type) ([]Tensor, error) {
	return impl.compute(attrs, inputs, outType)
}

// Schedule builds the schedule of the outputs of the operator.
func (impl *OpImplement) Schedule(attrs ir.Attrs, outs []Tensor, target *Target) (Schedule, error) {
	return impl.schedule(attrs, outs, target)
}

// String representation of the implementation.
func (impl *OpImplement) String() string {
	return fmt.Sprintf("%s(plevel=%d)", impl.name, impl.plevel)
}

// Condition under which the implementations have been registered.
func (spec *OpSpecialization) Condition() *Condition { return spec.cond }

// Implements returns the implementations in registration order.
func (spec *OpSpecialization) Implements() []*OpImplement {
	return slices.Clone(spec.impls)
}

// NewOpStrategy returns a new strategy for an operator.
func NewOpStrategy(op string) *OpStrategy {
	return &OpStrategy{op: op}
}

// Op returns the name of the operator.
func (s *OpStrategy) Op() string { return s.op }

// AddImplement registers an implementation under the current condition of a scope.
// The name of the implementation is the name of the compute function.
func (s *OpStrategy) AddImplement(scope *Scope, compute ComputeFunc, schedule ScheduleFunc, plevel int) *OpImplement {
	return s.AddNamedImplement(scope, gxfmt.ShortFunc(compute), compute, schedule, plevel)
}

// AddNamedImplement registers a named implementation under the current condition of a scope.
func (s *OpStrategy) AddNamedImplement(scope *Scope, name string, compute ComputeFunc, schedule ScheduleFunc, plevel int) *OpImplement {
	cond := scope.Current()
	s.mu.Lock()
	defer s.mu.Unlock()
	impl := &OpImplement{
		name:     name,
		compute:  compute,
		schedule: schedule,
		plevel:   plevel,
		seq:      s.seq,
	}
	s.seq++
	spec := s.specialization(cond)
	spec.impls = append(spec.impls, impl)
	klog.V(2).Infof("%s: registered implementation %s under condition %s", s.op, impl, cond)
	return impl
}

// specialization returns the specialization for a condition, creating it if necessary.
// The caller must hold the lock.
func (s *OpStrategy) specialization(cond *Condition) *OpSpecialization {
	for _, spec := range s.specs {
		if spec.cond.Equal(cond) {
			return spec
		}
	}
	spec := &OpSpecialization{cond: cond}
	s.specs = append(s.specs, spec)
	return spec
}

// Specializations returns a snapshot of the specializations in order of
// first registration of their condition.
func (s *OpStrategy) Specializations() []*OpSpecialization {
	s.mu.Lock()
	defer s.mu.Unlock()
	specs := make([]*OpSpecialization, len(s.specs))
	for i, spec := range s.specs {
		specs[i] = &OpSpecialization{
			cond:  spec.cond,
			impls: slices.Clone(spec.impls),
		}
	}
	return specs
}

var implTmpl = template.Must(template.New("implement").Parse("{{.Name}} plevel={{.PLevel}}\n"))

// String returns a description of the specializations of the operator.
func (s *OpStrategy) String() string {
	specs, err := tmpl.IterateFunc(s.Specializations(), func(_ int, spec *OpSpecialization) (string, error) {
		impls, err := tmpl.IterateTmpl(spec.impls, implTmpl)
		if err != nil {
			return "", err
		}
		return spec.cond.String() + ":\n" + gxfmt.Indent(strings.TrimSuffix(impls, "\n")), nil
	})
	if err != nil {
		return fmt.Sprintf("%s: %v", s.op, err)
	}
	return s.op + ":\n" + gxfmt.Indent(specs)
}
