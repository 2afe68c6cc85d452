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

package strategy

import (
	"slices"
	"strings"
	"sync"

	gxfmt "github.com/gx-org/opcore/base/fmt"
	"github.com/gx-org/opcore/base/ordered"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type (
	// Registry maps operator names to their strategy.
	// It is safe for concurrent use.
	Registry struct {
		mu  sync.Mutex
		ops *ordered.Map[string, *OpStrategy]
	}

	// Registrar registers implementations in a registry.
	// A registrar has its own scope and is owned by a single goroutine.
	Registrar struct {
		reg   *Registry
		scope Scope
	}

	// RegisterFunc registers the implementations of a backend.
	RegisterFunc func(*Registrar) error
)

// NewRegistry returns a new empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: ordered.NewMap[string, *OpStrategy]()}
}

// Strategy returns the strategy of an operator, creating it if necessary.
func (r *Registry) Strategy(op string) *OpStrategy {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, _ := r.ops.LoadOrStore(op, func() *OpStrategy {
		return NewOpStrategy(op)
	})
	return s
}

// Lookup returns the strategy of an operator if it exists.
func (r *Registry) Lookup(op string) (*OpStrategy, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ops.Load(op)
}

// Ops returns the operators with a strategy in order of creation.
func (r *Registry) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Collect(r.ops.Keys())
}

// Select returns the implementation of an operator for a context.
func (r *Registry) Select(op string, ctx *Context) (*OpImplement, error) {
	s, ok := r.Lookup(op)
	if !ok {
		return nil, errors.Wrapf(ErrNoImplementation, "operator %s has no strategy", op)
	}
	return s.Select(ctx)
}

// String returns a description of all the strategies in order of creation.
func (r *Registry) String() string {
	r.mu.Lock()
	strategies := slices.Collect(r.ops.Values())
	r.mu.Unlock()
	descs := make([]string, len(strategies))
	for i, s := range strategies {
		descs[i] = s.String()
	}
	return strings.Join(descs, "\n")
}

// Registrar returns a new registrar with an empty scope.
func (r *Registry) Registrar() *Registrar {
	return &Registrar{reg: r}
}

// RegisterBackends calls the register functions in order, each with its own registrar.
// All functions are called even if some fail.
func (r *Registry) RegisterBackends(fns ...RegisterFunc) error {
	var err error
	for _, fn := range fns {
		rr := r.Registrar()
		if fnErr := fn(rr); fnErr != nil {
			err = multierr.Append(err, errors.Wrapf(fnErr, "cannot register backend %s", gxfmt.ShortFunc(fn)))
		}
		if depth := rr.scope.Depth(); depth != 0 {
			err = multierr.Append(err, errors.Errorf("backend %s returned with %d conditions left in its scope", gxfmt.ShortFunc(fn), depth))
		}
	}
	return err
}

// Scope returns the scope of the registrar.
func (rr *Registrar) Scope() *Scope {
	return &rr.scope
}

// With runs fn with a condition pushed on the scope of the registrar.
func (rr *Registrar) With(cond *Condition, fn func() error) error {
	return rr.scope.With(cond, fn)
}

// AddImplement registers an implementation of an operator under the current condition.
func (rr *Registrar) AddImplement(op string, compute ComputeFunc, schedule ScheduleFunc, plevel int) *OpImplement {
	return rr.reg.Strategy(op).AddImplement(&rr.scope, compute, schedule, plevel)
}

// AddNamedImplement registers a named implementation of an operator under the current condition.
func (rr *Registrar) AddNamedImplement(op, name string, compute ComputeFunc, schedule ScheduleFunc, plevel int) *OpImplement {
	return rr.reg.Strategy(op).AddNamedImplement(&rr.scope, name, compute, schedule, plevel)
}
