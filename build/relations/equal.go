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

package relations

import (
	"github.com/gx-org/opcore/build/ir"
	"github.com/gx-org/opcore/build/ir/canonical"
)

// EqualCheck returns true if lhs and rhs are provably equal.
//
// The check is conservative: a false result means the equality could not be proven,
// not that the expressions are different.
func EqualCheck(lhs, rhs ir.IndexExpr) bool {
	diff := ir.Sub(lhs, rhs)
	if val, ok := ir.AsConstInt(diff); ok {
		return val == 0
	}
	val, ok := ir.AsConstInt(canonical.Simplify(diff))
	return ok && val == 0
}

// EqualConstInt returns true if expr is the literal constant val.
func EqualConstInt(expr ir.IndexExpr, val int64) bool {
	c, ok := ir.AsConstInt(expr)
	return ok && c == val
}
