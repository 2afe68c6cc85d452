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

// Package relations implements type relations between the inputs and outputs of operators.
//
// A relation is a predicate over an ordered list of types: the inputs of an operator
// followed by its outputs. A relation propagates the types it can infer through a
// reporter. It returns true once it is satisfied, false if it needs more information
// to make a decision, or an error if its inputs are incompatible.
package relations

import (
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/opcore/build/fmterr"
	"github.com/gx-org/opcore/build/ir"
	"github.com/gx-org/opcore/build/ir/irkind"
	"github.com/pkg/errors"
)

type (
	// Reporter unifies the types of a relation with the types inferred by the relation.
	Reporter interface {
		// Assign unifies dst with src.
		// It returns false if the two types cannot be unified.
		Assign(dst, src ir.Type) bool
	}

	// AssumptionRecorder is implemented by reporters collecting the assumptions
	// taken when broadcasting unresolved placeholders.
	AssumptionRecorder interface {
		RecordAssumption(Assumption)
	}

	// Func is the predicate of a relation.
	// The first numInputs types are the inputs of the operator, the other types its outputs.
	Func func(types []ir.Type, numInputs int, attrs ir.Attrs, reporter Reporter) (bool, error)

	// Relation is a named predicate associated with an operator.
	Relation struct {
		// Name of the operator.
		Name string
		// NumInputs is the number of inputs of the operator.
		NumInputs int
		// Func is the predicate to run.
		Func Func
	}
)

var (
	// ErrDTypeMismatch is returned when the data types of two inputs differ.
	ErrDTypeMismatch = errors.New("data type mismatch")

	// ErrArity is returned when a relation is given a wrong number of types.
	ErrArity = errors.New("wrong number of types")
)

// Run the relation predicate.
// Errors are annotated with the name of the operator.
func (r Relation) Run(types []ir.Type, attrs ir.Attrs, reporter Reporter) (bool, error) {
	if len(types) < r.NumInputs {
		return false, fmterr.AtOp(r.Name, errors.Wrapf(ErrArity, "%d inputs expected but got %d types", r.NumInputs, len(types)))
	}
	ok, err := r.Func(types, r.NumInputs, attrs, reporter)
	if err != nil {
		return false, fmterr.AtOp(r.Name, err)
	}
	return ok, nil
}

// ToTensorType returns the type as a tensor type if it is one.
func ToTensorType(t ir.Type) (*ir.TensorType, bool) {
	tt, ok := t.(*ir.TensorType)
	return tt, ok
}

// IdentityRel assigns the first type to all the other types.
func IdentityRel(types []ir.Type, numInputs int, attrs ir.Attrs, reporter Reporter) (bool, error) {
	for i := 1; i < len(types); i++ {
		reporter.Assign(types[i], types[0])
	}
	return true, nil
}

// BroadcastRel assigns the broadcast of its two inputs to its output.
// Both inputs need to have the same data type.
func BroadcastRel(types []ir.Type, numInputs int, attrs ir.Attrs, reporter Reporter) (bool, error) {
	return broadcastRel(types, reporter, func(in dtype.DataType) dtype.DataType { return in })
}

// BroadcastCompRel assigns the broadcast of its two inputs to its output
// with a boolean data type.
func BroadcastCompRel(types []ir.Type, numInputs int, attrs ir.Attrs, reporter Reporter) (bool, error) {
	return broadcastRel(types, reporter, func(dtype.DataType) dtype.DataType { return dtype.Bool })
}

func broadcastRel(types []ir.Type, reporter Reporter, outDType func(dtype.DataType) dtype.DataType) (bool, error) {
	if len(types) != 3 {
		return false, errors.Wrapf(ErrArity, "broadcast expects 2 inputs and 1 output but got %d types", len(types))
	}
	x, xOk := ToTensorType(types[0])
	y, yOk := ToTensorType(types[1])
	if !xOk || !yOk {
		return false, nil
	}
	if x.DType() != y.DType() {
		return false, errors.Wrapf(ErrDTypeMismatch, "%s and %s: %s != %s", x, y, irkind.DTypeString(x.DType()), irkind.DTypeString(y.DType()))
	}
	onAny := warnAssumption
	if recorder, ok := reporter.(AssumptionRecorder); ok {
		onAny = recorder.RecordAssumption
	}
	shape, err := BroadcastWith(x.Shape(), y.Shape(), onAny)
	if err != nil {
		return false, err
	}
	reporter.Assign(types[2], ir.NewTensorType(shape, outDType(x.DType())))
	return true, nil
}
