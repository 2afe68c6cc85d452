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
	"math"
)

// BinaryOp is an arithmetic operator between two index expressions.
type BinaryOp int

// Arithmetic operators supported by index expressions.
const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpFloorDiv
	OpFloorMod
	OpMin
	OpMax
)

var binaryOpNames = map[BinaryOp]string{
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpFloorDiv: "floordiv",
	OpFloorMod: "floormod",
	OpMin:      "min",
	OpMax:      "max",
}

// String representation of the operator.
func (op BinaryOp) String() string {
	name, ok := binaryOpNames[op]
	if !ok {
		return fmt.Sprintf("BinaryOp(%d)", int(op))
	}
	return name
}

// IsInfix returns true if the operator is printed between its operands.
func (op BinaryOp) IsInfix() bool {
	return op == OpAdd || op == OpSub || op == OpMul
}

// BinaryExpr is an arithmetic operation between two index expressions.
type BinaryExpr struct {
	Op   BinaryOp
	X, Y IndexExpr
}

var _ IndexExpr = (*BinaryExpr)(nil)

func (*BinaryExpr) node()      {}
func (*BinaryExpr) indexExpr() {}

// String representation of the expression.
func (x *BinaryExpr) String() string {
	if x.Op.IsInfix() {
		return fmt.Sprintf("(%s %s %s)", exprString(x.X), x.Op, exprString(x.Y))
	}
	return fmt.Sprintf("%s(%s, %s)", x.Op, exprString(x.X), exprString(x.Y))
}

// NewBinary returns x op y.
// If both operands are constants, the result is folded into a constant.
func NewBinary(op BinaryOp, x, y IndexExpr) IndexExpr {
	xVal, xOk := AsConstInt(x)
	yVal, yOk := AsConstInt(y)
	if xOk && yOk {
		if val, ok := Fold(op, xVal, yVal); ok {
			return &IntImm{Value: val}
		}
	}
	return &BinaryExpr{Op: op, X: x, Y: y}
}

// Fold computes x op y on constants.
// It returns false when the operation is undefined (division by zero)
// or when the result does not fit in an int64.
func Fold(op BinaryOp, x, y int64) (int64, bool) {
	switch op {
	case OpAdd:
		return CheckedAdd(x, y)
	case OpSub:
		return CheckedSub(x, y)
	case OpMul:
		return CheckedMul(x, y)
	case OpFloorDiv:
		if y == 0 || (x == math.MinInt64 && y == -1) {
			return 0, false
		}
		return floorDiv(x, y), true
	case OpFloorMod:
		if y == 0 {
			return 0, false
		}
		if y == -1 {
			return 0, true
		}
		return x - y*floorDiv(x, y), true
	case OpMin:
		return min(x, y), true
	case OpMax:
		return max(x, y), true
	}
	return 0, false
}

func floorDiv(x, y int64) int64 {
	q := x / y
	if x%y != 0 && (x < 0) != (y < 0) {
		q--
	}
	return q
}

// CheckedAdd returns x + y and false if the sum overflows.
func CheckedAdd(x, y int64) (int64, bool) {
	r := x + y
	if (y > 0 && r < x) || (y < 0 && r > x) {
		return 0, false
	}
	return r, true
}

// CheckedSub returns x - y and false if the difference overflows.
func CheckedSub(x, y int64) (int64, bool) {
	r := x - y
	if (y > 0 && r > x) || (y < 0 && r < x) {
		return 0, false
	}
	return r, true
}

// CheckedMul returns x * y and false if the product overflows.
func CheckedMul(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, false
	}
	r := x * y
	if r/y != x {
		return 0, false
	}
	return r, true
}

// Add returns x + y.
func Add(x, y IndexExpr) IndexExpr { return NewBinary(OpAdd, x, y) }

// Sub returns x - y.
func Sub(x, y IndexExpr) IndexExpr { return NewBinary(OpSub, x, y) }

// Mul returns x * y.
func Mul(x, y IndexExpr) IndexExpr { return NewBinary(OpMul, x, y) }

// FloorDiv returns x divided by y, rounded towards negative infinity.
func FloorDiv(x, y IndexExpr) IndexExpr { return NewBinary(OpFloorDiv, x, y) }

// FloorMod returns the remainder of FloorDiv(x, y).
func FloorMod(x, y IndexExpr) IndexExpr { return NewBinary(OpFloorMod, x, y) }

// Min returns the minimum of x and y.
func Min(x, y IndexExpr) IndexExpr { return NewBinary(OpMin, x, y) }

// Max returns the maximum of x and y.
func Max(x, y IndexExpr) IndexExpr { return NewBinary(OpMax, x, y) }
