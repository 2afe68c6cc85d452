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
	"strconv"

	"golang.org/x/exp/constraints"
)

// IntImm is a constant dimension length.
type IntImm struct {
	Value int64
}

var _ IndexExpr = (*IntImm)(nil)

// Int returns a constant index expression.
func Int[T constraints.Integer](v T) *IntImm {
	return &IntImm{Value: int64(v)}
}

func (*IntImm) node()      {}
func (*IntImm) indexExpr() {}

// String representation of the constant.
func (c *IntImm) String() string {
	return strconv.FormatInt(c.Value, 10)
}

// AsConstInt returns the value of an expression if the expression is a literal constant.
// No simplification is applied.
func AsConstInt(expr IndexExpr) (int64, bool) {
	c, ok := expr.(*IntImm)
	if !ok {
		return 0, false
	}
	return c.Value, true
}
