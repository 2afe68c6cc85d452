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

// ExprEqual returns true if two index expressions are structurally equal.
// Placeholders are only equal to themselves and variables are equal if they share a name.
// No simplification is applied: (n + 1) and (1 + n) are not structurally equal.
func ExprEqual(x, y IndexExpr) bool {
	switch xT := x.(type) {
	case *IntImm:
		yT, ok := y.(*IntImm)
		return ok && xT.Value == yT.Value
	case *AnyDim:
		yT, ok := y.(*AnyDim)
		return ok && xT == yT
	case *Var:
		yT, ok := y.(*Var)
		return ok && xT.Name == yT.Name
	case *BinaryExpr:
		yT, ok := y.(*BinaryExpr)
		if !ok || xT.Op != yT.Op {
			return false
		}
		return ExprEqual(xT.X, yT.X) && ExprEqual(xT.Y, yT.Y)
	}
	return x == nil && y == nil
}

// ShapeEqual returns true if two shapes have the same rank and structurally equal axis lengths.
func ShapeEqual(x, y Shape) bool {
	if len(x) != len(y) {
		return false
	}
	for i, xi := range x {
		if !ExprEqual(xi, y[i]) {
			return false
		}
	}
	return true
}

// TypeEqual returns true if two types are structurally equal.
// Type variables are only equal to themselves.
func TypeEqual(x, y Type) bool {
	switch xT := x.(type) {
	case *TensorType:
		return xT.Equal(y)
	case *TupleType:
		yT, ok := y.(*TupleType)
		return ok && typesEqual(xT.Fields, yT.Fields)
	case *FuncType:
		yT, ok := y.(*FuncType)
		if !ok || !typesEqual(xT.Params, yT.Params) {
			return false
		}
		return TypeEqual(xT.Result, yT.Result)
	case *IncompleteType:
		yT, ok := y.(*IncompleteType)
		return ok && xT == yT
	}
	return x == nil && y == nil
}

func typesEqual(xs, ys []Type) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i, x := range xs {
		if !TypeEqual(x, ys[i]) {
			return false
		}
	}
	return true
}
