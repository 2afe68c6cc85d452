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
	"sync/atomic"

	"github.com/pkg/errors"
)

type (
	// IndexExpr is a symbolic integer expression representing the length of an axis.
	// Index expressions are immutable.
	IndexExpr interface {
		Node
		indexExpr()
	}

	// AnyDim is a dimension whose length is unknown at compile time.
	// Two placeholders are only equal if they are the same instance.
	AnyDim struct {
		id uint64
	}

	// Var is a named symbolic length.
	Var struct {
		Name string
	}
)

var (
	_ IndexExpr = (*AnyDim)(nil)
	_ IndexExpr = (*Var)(nil)
)

var anyCounter atomic.Uint64

// Any returns a new unresolved placeholder dimension.
func Any() *AnyDim {
	return &AnyDim{id: anyCounter.Add(1)}
}

func (*AnyDim) node()      {}
func (*AnyDim) indexExpr() {}

// ID returns a number unique to the placeholder.
func (d *AnyDim) ID() uint64 { return d.id }

// String representation of the placeholder.
func (d *AnyDim) String() string { return "?" }

// NewVar returns a new symbolic length given its name.
func NewVar(name string) *Var {
	return &Var{Name: name}
}

func (*Var) node()      {}
func (*Var) indexExpr() {}

// String returns the name of the variable.
func (v *Var) String() string { return v.Name }

// IsAny returns true if the expression is an unresolved placeholder.
func IsAny(expr IndexExpr) bool {
	_, ok := expr.(*AnyDim)
	return ok
}

// Vars returns the symbolic variables referenced by an expression, in order of appearance.
// Variables sharing a name are only returned once.
func Vars(expr IndexExpr) []*Var {
	seen := make(map[string]bool)
	var vars []*Var
	var walk func(IndexExpr)
	walk = func(x IndexExpr) {
		switch xT := x.(type) {
		case *Var:
			if !seen[xT.Name] {
				seen[xT.Name] = true
				vars = append(vars, xT)
			}
		case *BinaryExpr:
			walk(xT.X)
			walk(xT.Y)
		}
	}
	walk(expr)
	return vars
}

func exprString(x IndexExpr) string {
	if x == nil {
		return "<nil>"
	}
	return x.String()
}

func errUnknownExpr(x IndexExpr) error {
	return errors.Errorf("index expression %T not supported", x)
}
