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

// Package solver infers types by running type relations until a fixpoint is reached.
package solver

import (
	"github.com/gx-org/opcore/api/options"
	"github.com/gx-org/opcore/build/fmterr"
	"github.com/gx-org/opcore/build/ir"
	"github.com/gx-org/opcore/build/relations"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ErrConflict is returned when two types cannot be unified.
var ErrConflict = errors.New("type conflict")

type constraint struct {
	op     string
	rel    relations.Relation
	args   []ir.Type
	attrs  ir.Attrs
	solved bool
	failed bool
}

// Solver unifies types with the types inferred by relations.
// A solver is not safe for concurrent use.
type Solver struct {
	cfg         options.Config
	bindings    map[*ir.IncompleteType]ir.Type
	constraints []*constraint
	errs        fmterr.Errors
	app         *fmterr.Appender
	opApp       *fmterr.OpAppender
	assumptions []relations.Assumption

	// Types passed to the relation being run mapped to the constraint arguments.
	slots    map[ir.Type]ir.Type
	conflict bool
	changes  int
}

var (
	_ relations.Reporter           = (*Solver)(nil)
	_ relations.AssumptionRecorder = (*Solver)(nil)
)

// New returns a new solver.
func New(opts ...options.Option) *Solver {
	s := &Solver{
		cfg:      options.New(opts...),
		bindings: make(map[*ir.IncompleteType]ir.Type),
	}
	s.app = s.errs.NewAppender()
	return s
}

// NewVar returns a new type variable.
func (s *Solver) NewVar(name string) *ir.IncompleteType {
	return ir.NewIncompleteType(name)
}

// AddConstraint adds a relation between types for an operator.
func (s *Solver) AddConstraint(op string, rel relations.Relation, args []ir.Type, attrs ir.Attrs) error {
	if len(args) < rel.NumInputs {
		return fmterr.AtOp(op, errors.Wrapf(relations.ErrArity, "%d inputs expected but got %d types", rel.NumInputs, len(args)))
	}
	if rel.Func == nil {
		return fmterr.Errorf(op, "relation %q has no function", rel.Name)
	}
	s.constraints = append(s.constraints, &constraint{
		op:    op,
		rel:   rel,
		args:  args,
		attrs: attrs,
	})
	return nil
}

// Solve runs all the relations until they are all satisfied,
// no progress is made, or the maximum number of iterations has been reached.
// It returns true if all relations are satisfied.
func (s *Solver) Solve() (bool, error) {
	for pass := 0; pass < s.cfg.MaxIterations; pass++ {
		progress := false
		pending := 0
		for _, c := range s.constraints {
			if c.solved || c.failed {
				continue
			}
			changes := s.changes
			s.run(c)
			if c.solved || s.changes != changes {
				progress = true
			}
			if !c.solved && !c.failed {
				pending++
			}
		}
		klog.V(3).Infof("solver pass %d: %d constraints pending", pass, pending)
		if pending == 0 || !progress {
			break
		}
	}
	if err := s.app.Errors().ToError(); err != nil {
		return false, err
	}
	for _, c := range s.constraints {
		if !c.solved {
			return false, nil
		}
	}
	return true, nil
}

func (s *Solver) run(c *constraint) {
	s.opApp = s.app.Op(c.op)
	defer func() { s.opApp = nil }()
	types := make([]ir.Type, len(c.args))
	s.slots = make(map[ir.Type]ir.Type, len(c.args))
	for i, arg := range c.args {
		types[i] = s.Resolve(arg)
		if _, ok := s.slots[types[i]]; !ok {
			s.slots[types[i]] = arg
		}
	}
	s.conflict = false
	ok, err := c.rel.Func(types, c.rel.NumInputs, c.attrs, s)
	s.slots = nil
	if err != nil {
		s.opApp.Append(err)
		c.failed = true
		return
	}
	if s.conflict {
		c.failed = true
		return
	}
	c.solved = ok
}

// Assign unifies dst with src.
// It returns false and records an error if the types cannot be unified.
func (s *Solver) Assign(dst, src ir.Type) bool {
	dst, src = s.slot(dst), s.slot(src)
	dstRoot, dstVar := s.find(dst)
	srcRoot, srcVar := s.find(src)
	unified, err := s.unify(dstRoot, srcRoot)
	if err != nil {
		s.conflict = true
		app := s.opApp
		if app == nil {
			app = s.app.Op("assign")
		}
		if !errors.Is(err, ErrConflict) {
			return app.AppendInternalf("cannot assign %s to %s: %v", s.Resolve(src), s.Resolve(dst), err)
		}
		app.Append(errors.Wrapf(err, "cannot assign %s to %s", s.Resolve(src), s.Resolve(dst)))
		return false
	}
	s.bind(dstVar, unified)
	s.bind(srcVar, unified)
	return true
}

// RecordAssumption records an unchecked broadcast of an unresolved placeholder.
func (s *Solver) RecordAssumption(a relations.Assumption) {
	if s.cfg.LogAnyBroadcast {
		klog.Warningf("unchecked broadcast of an unresolved axis length: %s", a)
	}
	s.assumptions = append(s.assumptions, a)
}

// Assumptions returns the assumptions recorded while solving.
func (s *Solver) Assumptions() []relations.Assumption {
	return s.assumptions
}

func (s *Solver) slot(t ir.Type) ir.Type {
	if orig, ok := s.slots[t]; ok {
		return orig
	}
	return t
}

// find returns the type bound to a chain of variables
// and the last variable of the chain (nil if t is not a variable).
func (s *Solver) find(t ir.Type) (ir.Type, *ir.IncompleteType) {
	var last *ir.IncompleteType
	for {
		v, ok := t.(*ir.IncompleteType)
		if !ok {
			return t, last
		}
		last = v
		bound, ok := s.bindings[v]
		if !ok {
			return v, last
		}
		t = bound
	}
}

func (s *Solver) bind(v *ir.IncompleteType, t ir.Type) {
	if v == nil || ir.Type(v) == t {
		return
	}
	if cur, ok := s.bindings[v]; ok && cur == t {
		return
	}
	s.bindings[v] = t
	s.changes++
}

// Resolve returns a type with all bound variables substituted.
func (s *Solver) Resolve(t ir.Type) ir.Type {
	root, _ := s.find(t)
	switch rootT := root.(type) {
	case *ir.TupleType:
		fields := make([]ir.Type, len(rootT.Fields))
		changed := false
		for i, field := range rootT.Fields {
			fields[i] = s.Resolve(field)
			changed = changed || fields[i] != field
		}
		if !changed {
			return rootT
		}
		return ir.NewTupleType(fields...)
	case *ir.FuncType:
		params := make([]ir.Type, len(rootT.Params))
		for i, param := range rootT.Params {
			params[i] = s.Resolve(param)
		}
		var result ir.Type
		if rootT.Result != nil {
			result = s.Resolve(rootT.Result)
		}
		return &ir.FuncType{Params: params, Result: result}
	}
	return root
}
