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
	"slices"

	"github.com/gx-org/opcore/base/stringseq"
	"golang.org/x/exp/constraints"
)

// Shape is the ordered list of axis lengths of a tensor, from the outer to the inner axis.
type Shape []IndexExpr

// NewShape returns a shape given its axis lengths.
func NewShape(dims ...IndexExpr) Shape {
	return Shape(slices.Clone(dims))
}

// ShapeOf returns a shape with constant axis lengths.
func ShapeOf[T constraints.Integer](dims ...T) Shape {
	s := make(Shape, len(dims))
	for i, dim := range dims {
		s[i] = Int(dim)
	}
	return s
}

// Rank returns the number of axes.
func (s Shape) Rank() int { return len(s) }

// Clone returns a copy of the shape.
// Index expressions being immutable, they are shared with the copy.
func (s Shape) Clone() Shape {
	return slices.Clone(s)
}

// Concrete returns the axis lengths as integers if all axes are constants.
func (s Shape) Concrete() ([]int, bool) {
	dims := make([]int, len(s))
	for i, dim := range s {
		val, ok := AsConstInt(dim)
		if !ok {
			return nil, false
		}
		dims[i] = int(val)
	}
	return dims, true
}

// IsConcrete returns true if all axis lengths are constants.
func (s Shape) IsConcrete() bool {
	_, ok := s.Concrete()
	return ok
}

// HasAny returns true if at least one axis length is an unresolved placeholder.
func (s Shape) HasAny() bool {
	return slices.ContainsFunc(s, IsAny)
}

// String representation of the shape.
func (s Shape) String() string {
	return stringseq.Bracket("[", []IndexExpr(s), ", ", "]")
}
