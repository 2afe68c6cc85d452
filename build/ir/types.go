// Copyright 2024 Google LLC
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

package ir

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/opcore/base/stringseq"
	"github.com/gx-org/opcore/build/ir/irkind"
	"github.com/pkg/errors"
)

type (
	// Type of a value flowing through an operator.
	Type interface {
		Node
		// Kind returns the variant of the type.
		Kind() irkind.Kind
	}

	// TensorType is the type of an n-dimensional array.
	// A tensor type is immutable once constructed.
	TensorType struct {
		shape Shape
		dtype dtype.DataType
	}

	// TupleType is a fixed sequence of types.
	TupleType struct {
		Fields []Type
	}

	// FuncType is the type of a function.
	FuncType struct {
		Params []Type
		Result Type
	}

	// IncompleteType is a type variable resolved by a solver.
	IncompleteType struct {
		Name string
		id   uint64
	}
)

var (
	_ Type = (*TensorType)(nil)
	_ Type = (*TupleType)(nil)
	_ Type = (*FuncType)(nil)
	_ Type = (*IncompleteType)(nil)
)

// NewTensorType returns a new tensor type given a shape and an element data type.
func NewTensorType(s Shape, dt dtype.DataType) *TensorType {
	return &TensorType{shape: s.Clone(), dtype: dt}
}

// NewTensorTypeFromShape returns a tensor type from a concrete backend shape.
func NewTensorTypeFromShape(sh *shape.Shape) *TensorType {
	return NewTensorType(ShapeOf(sh.AxisLengths...), sh.DType)
}

// Scalar returns the type of a tensor of rank 0.
func Scalar(dt dtype.DataType) *TensorType {
	return &TensorType{dtype: dt}
}

func (*TensorType) node() {}

// Kind of the type.
func (*TensorType) Kind() irkind.Kind { return irkind.Tensor }

// Shape returns a copy of the shape of the tensor.
func (t *TensorType) Shape() Shape { return t.shape.Clone() }

// DType returns the element data type of the tensor.
func (t *TensorType) DType() dtype.DataType { return t.dtype }

// Rank returns the number of axes of the tensor.
func (t *TensorType) Rank() int { return len(t.shape) }

// Dim returns the length of the ith axis.
func (t *TensorType) Dim(i int) IndexExpr { return t.shape[i] }

// WithShape returns a new tensor type with the same data type but a different shape.
func (t *TensorType) WithShape(s Shape) *TensorType {
	return NewTensorType(s, t.dtype)
}

// WithDType returns a new tensor type with the same shape but a different data type.
func (t *TensorType) WithDType(dt dtype.DataType) *TensorType {
	return &TensorType{shape: t.shape, dtype: dt}
}

// ConcreteShape returns the backend shape of the tensor.
// It returns an error if an axis length is not a constant.
func (t *TensorType) ConcreteShape() (*shape.Shape, error) {
	dims, ok := t.shape.Concrete()
	if !ok {
		return nil, errors.Errorf("tensor type %s has a symbolic shape", t.String())
	}
	return &shape.Shape{DType: t.dtype, AxisLengths: dims}, nil
}

// Equal returns true if the other type is a tensor type with the same shape and data type.
func (t *TensorType) Equal(other Type) bool {
	otherT, ok := other.(*TensorType)
	if !ok {
		return false
	}
	return t.dtype == otherT.dtype && ShapeEqual(t.shape, otherT.shape)
}

// String representation of the type.
func (t *TensorType) String() string {
	return fmt.Sprintf("Tensor%s%s", t.shape.String(), irkind.DTypeString(t.dtype))
}

// NewTupleType returns a tuple type given its fields.
func NewTupleType(fields ...Type) *TupleType {
	return &TupleType{Fields: slices.Clone(fields)}
}

func (*TupleType) node() {}

// Kind of the type.
func (*TupleType) Kind() irkind.Kind { return irkind.Tuple }

// String representation of the type.
func (t *TupleType) String() string {
	return stringseq.Bracket("(", t.Fields, ", ", ")")
}

func (*FuncType) node() {}

// Kind of the type.
func (*FuncType) Kind() irkind.Kind { return irkind.Func }

// String representation of the type.
func (t *FuncType) String() string {
	result := "<nil>"
	if t.Result != nil {
		result = t.Result.String()
	}
	return fmt.Sprintf("func%s %s", stringseq.Bracket("(", t.Params, ", ", ")"), result)
}

var incompleteCounter atomic.Uint64

// NewIncompleteType returns a new type variable.
// Two type variables are distinct even if they share the same name.
func NewIncompleteType(name string) *IncompleteType {
	return &IncompleteType{Name: name, id: incompleteCounter.Add(1)}
}

func (*IncompleteType) node() {}

// Kind of the type.
func (*IncompleteType) Kind() irkind.Kind { return irkind.Incomplete }

// ID returns a number unique to the type variable.
func (t *IncompleteType) ID() uint64 { return t.id }

// String representation of the type.
func (t *IncompleteType) String() string {
	if t.Name == "" {
		return fmt.Sprintf("?%d", t.id)
	}
	return "?" + t.Name
}
