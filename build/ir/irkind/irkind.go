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

// Package irkind defines kinds for the types of the intermediate representation (IR)
// and helpers on the element data types of tensors.
package irkind

import "github.com/gx-org/backend/dtype"

// Kind of a type.
type Kind uint

// Kinds of types supported by the type relation engine.
const (
	Invalid Kind = iota

	// Tensor is an n-dimensional array with a shape and an element data type.
	Tensor
	// Tuple groups a fixed number of types.
	Tuple
	// Func is the type of a function.
	Func
	// Incomplete is a type variable to be resolved by the solver.
	Incomplete

	// Max value for a Kind constant.
	Max
)

// String returns a string representation of a kind.
func (k Kind) String() string {
	switch k {
	case Tensor:
		return "tensor"
	case Tuple:
		return "tuple"
	case Func:
		return "func"
	case Incomplete:
		return "incomplete"
	}
	return "invalid"
}

var dtypeNames = map[dtype.DataType]string{
	dtype.Bool:     "bool",
	dtype.Int32:    "int32",
	dtype.Int64:    "int64",
	dtype.Uint32:   "uint32",
	dtype.Uint64:   "uint64",
	dtype.Bfloat16: "bfloat16",
	dtype.Float32:  "float32",
	dtype.Float64:  "float64",
}

// DTypeString returns the name of an element data type.
func DTypeString(dt dtype.DataType) string {
	name, ok := dtypeNames[dt]
	if !ok {
		return "invalid"
	}
	return name
}
