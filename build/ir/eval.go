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
	"github.com/pkg/errors"
)

type (
	// Fetcher fetches the value of symbolic variables.
	Fetcher interface {
		// Fetch returns the value of a variable given its name.
		Fetch(name string) (int64, bool)
	}

	// Bindings maps variable names to values.
	Bindings map[string]int64
)

var _ Fetcher = Bindings(nil)

// Fetch returns the value bound to a name.
func (b Bindings) Fetch(name string) (int64, bool) {
	val, ok := b[name]
	return val, ok
}

// ErrUnresolved is returned when an expression depends on a placeholder or an unbound variable.
var ErrUnresolved = errors.New("unresolved index expression")

// Eval evaluates an index expression.
// It returns the list of variables that could not be fetched.
func Eval(fetcher Fetcher, expr IndexExpr) (val int64, unknowns []*Var, err error) {
	switch exprT := expr.(type) {
	case *IntImm:
		return exprT.Value, nil, nil
	case *Var:
		if fetcher != nil {
			if val, ok := fetcher.Fetch(exprT.Name); ok {
				return val, nil, nil
			}
		}
		return 0, []*Var{exprT}, errors.Wrapf(ErrUnresolved, "variable %s not bound", exprT.Name)
	case *AnyDim:
		return 0, nil, errors.Wrap(ErrUnresolved, "cannot evaluate placeholder")
	case *BinaryExpr:
		return evalBinaryExpr(fetcher, exprT)
	}
	return 0, nil, errUnknownExpr(expr)
}

func evalBinaryExpr(fetcher Fetcher, expr *BinaryExpr) (val int64, unknowns []*Var, err error) {
	x, xUnknowns, xErr := Eval(fetcher, expr.X)
	y, yUnknowns, yErr := Eval(fetcher, expr.Y)
	unknowns = append(xUnknowns, yUnknowns...)
	if xErr != nil {
		return 0, unknowns, xErr
	}
	if yErr != nil {
		return 0, unknowns, yErr
	}
	val, ok := Fold(expr.Op, x, y)
	if !ok {
		return 0, nil, errors.Errorf("cannot evaluate %s: undefined or overflows int64", expr.String())
	}
	return val, nil, nil
}

// Substitute replaces the variables bound by the fetcher with their values.
// Constant sub-expressions are folded.
func Substitute(fetcher Fetcher, expr IndexExpr) IndexExpr {
	switch exprT := expr.(type) {
	case *Var:
		if fetcher == nil {
			return expr
		}
		if val, ok := fetcher.Fetch(exprT.Name); ok {
			return &IntImm{Value: val}
		}
	case *BinaryExpr:
		x := Substitute(fetcher, exprT.X)
		y := Substitute(fetcher, exprT.Y)
		if x == exprT.X && y == exprT.Y {
			return exprT
		}
		return NewBinary(exprT.Op, x, y)
	}
	return expr
}

// SubstituteShape substitutes all the axis lengths of a shape.
func SubstituteShape(fetcher Fetcher, s Shape) Shape {
	r := make(Shape, len(s))
	for i, dim := range s {
		r[i] = Substitute(fetcher, dim)
	}
	return r
}
