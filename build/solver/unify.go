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

package solver

import (
	"github.com/gx-org/opcore/build/ir"
	"github.com/gx-org/opcore/build/ir/irkind"
	"github.com/gx-org/opcore/build/relations"
	"github.com/pkg/errors"
)

// unify returns the most specific type compatible with both x and y.
// x and y are roots: they are either unbound variables or not variables.
func (s *Solver) unify(x, y ir.Type) (ir.Type, error) {
	if x == y {
		return x, nil
	}
	if xVar, ok := x.(*ir.IncompleteType); ok {
		return s.unifyVar(xVar, y)
	}
	if yVar, ok := y.(*ir.IncompleteType); ok {
		return s.unifyVar(yVar, x)
	}
	if x.Kind() != y.Kind() {
		return nil, errors.Wrapf(ErrConflict, "%s is a %s but %s is a %s", x, x.Kind(), y, y.Kind())
	}
	switch xT := x.(type) {
	case *ir.TensorType:
		return unifyTensors(xT, y.(*ir.TensorType))
	case *ir.TupleType:
		fields, err := s.unifyAll(xT.Fields, y.(*ir.TupleType).Fields)
		if err != nil {
			return nil, err
		}
		return ir.NewTupleType(fields...), nil
	case *ir.FuncType:
		yT := y.(*ir.FuncType)
		params, err := s.unifyAll(xT.Params, yT.Params)
		if err != nil {
			return nil, err
		}
		result, err := s.unifyComponent(xT.Result, yT.Result)
		if err != nil {
			return nil, err
		}
		return &ir.FuncType{Params: params, Result: result}, nil
	}
	return nil, errors.Errorf("cannot unify types of kind %s", x.Kind())
}

func (s *Solver) unifyVar(v *ir.IncompleteType, t ir.Type) (ir.Type, error) {
	if s.occurs(v, t) {
		return nil, errors.Wrapf(ErrConflict, "%s occurs in %s", v, t)
	}
	if tVar, ok := t.(*ir.IncompleteType); ok {
		s.bind(v, tVar)
		return tVar, nil
	}
	return t, nil
}

func (s *Solver) occurs(v *ir.IncompleteType, t ir.Type) bool {
	root, _ := s.find(t)
	switch rootT := root.(type) {
	case *ir.IncompleteType:
		return false
	case *ir.TupleType:
		for _, field := range rootT.Fields {
			if fieldRoot, _ := s.find(field); fieldRoot == ir.Type(v) || s.occurs(v, field) {
				return true
			}
		}
	case *ir.FuncType:
		for _, param := range append(append([]ir.Type{}, rootT.Params...), rootT.Result) {
			if param == nil {
				continue
			}
			if paramRoot, _ := s.find(param); paramRoot == ir.Type(v) || s.occurs(v, param) {
				return true
			}
		}
	}
	return false
}

// unifyComponent unifies two components of a composite type.
// Variables in the components are bound to the unified type.
func (s *Solver) unifyComponent(x, y ir.Type) (ir.Type, error) {
	if x == nil || y == nil {
		if x != y {
			return nil, errors.Wrapf(ErrConflict, "missing type")
		}
		return nil, nil
	}
	xRoot, xVar := s.find(x)
	yRoot, yVar := s.find(y)
	unified, err := s.unify(xRoot, yRoot)
	if err != nil {
		return nil, err
	}
	s.bind(xVar, unified)
	s.bind(yVar, unified)
	return unified, nil
}

func (s *Solver) unifyAll(xs, ys []ir.Type) ([]ir.Type, error) {
	if len(xs) != len(ys) {
		return nil, errors.Wrapf(ErrConflict, "%d types cannot be unified with %d types", len(xs), len(ys))
	}
	r := make([]ir.Type, len(xs))
	for i, x := range xs {
		var err error
		if r[i], err = s.unifyComponent(x, ys[i]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func unifyTensors(x, y *ir.TensorType) (ir.Type, error) {
	if x.DType() != y.DType() {
		return nil, errors.Wrapf(ErrConflict, "data type %s is not %s", irkind.DTypeString(x.DType()), irkind.DTypeString(y.DType()))
	}
	if x.Rank() != y.Rank() {
		return nil, errors.Wrapf(ErrConflict, "shape %s has %d axes but shape %s has %d axes", x.Shape(), x.Rank(), y.Shape(), y.Rank())
	}
	dims := make(ir.Shape, x.Rank())
	changed := false
	for i := range dims {
		xDim, yDim := x.Dim(i), y.Dim(i)
		switch {
		case relations.EqualCheck(xDim, yDim):
			dims[i] = xDim
		case ir.IsAny(xDim):
			dims[i] = yDim
			changed = true
		case ir.IsAny(yDim):
			dims[i] = xDim
		default:
			return nil, errors.Wrapf(ErrConflict, "shape %s is not %s", x.Shape(), y.Shape())
		}
	}
	if !changed {
		return x, nil
	}
	return x.WithShape(dims), nil
}
