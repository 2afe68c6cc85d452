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

package strategy

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gx-org/opcore/base/stringseq"
	"github.com/gx-org/opcore/build/ir"
	"github.com/gx-org/opcore/build/ir/canonical"
)

type (
	// Context is the runtime context against which conditions are evaluated.
	Context struct {
		// Target for which an implementation is selected.
		Target *Target
		// Bindings are the values of the symbolic variables known at selection.
		Bindings ir.Bindings
	}

	// Clause is a predicate of a condition.
	Clause interface {
		// Key returns a string identifying the clause.
		// Two clauses with the same key are equal.
		Key() string
		// Eval evaluates the clause given a context.
		Eval(ctx *Context) bool
		fmt.Stringer
	}

	// TargetKey holds if the target has the key.
	TargetKey string

	// CompareOp is a comparison between two index expressions.
	CompareOp int

	// IndexCondition compares two index expressions.
	// It does not hold if an expression cannot be evaluated.
	IndexCondition struct {
		Op   CompareOp
		X, Y ir.IndexExpr
	}

	// Condition is a conjunction of clauses under which implementations are registered.
	// A condition without clause always holds.
	Condition struct {
		clauses []Clause
		keys    []string
	}
)

// Comparison operators.
const (
	EQ CompareOp = iota
	NE
	LT
	LE
	GT
	GE
)

var compareOpNames = []string{"==", "!=", "<", "<=", ">", ">="}

// String representation of the operator.
func (op CompareOp) String() string {
	if int(op) < 0 || int(op) >= len(compareOpNames) {
		return fmt.Sprintf("CompareOp(%d)", int(op))
	}
	return compareOpNames[op]
}

func (op CompareOp) eval(x, y int64) bool {
	switch op {
	case EQ:
		return x == y
	case NE:
		return x != y
	case LT:
		return x < y
	case LE:
		return x <= y
	case GT:
		return x > y
	case GE:
		return x >= y
	}
	return false
}

// Key of the clause.
func (k TargetKey) Key() string { return "target:" + strconv.Quote(string(k)) }

// Eval returns true if the target of the context has the key.
func (k TargetKey) Eval(ctx *Context) bool {
	return ctx != nil && ctx.Target.HasKey(string(k))
}

func (k TargetKey) String() string { return "target has " + string(k) }

// Key of the clause.
// Operands are canonicalized so that (n + 1) and (1 + n) give the same key.
func (c IndexCondition) Key() string {
	return fmt.Sprintf("index:(%s %s %s)", c.Op, canonical.FromExpr(c.X).Key(), canonical.FromExpr(c.Y).Key())
}

// Eval evaluates both operands with the bindings of the context and compares them.
func (c IndexCondition) Eval(ctx *Context) bool {
	var bindings ir.Bindings
	if ctx != nil {
		bindings = ctx.Bindings
	}
	x, _, err := ir.Eval(bindings, c.X)
	if err != nil {
		return false
	}
	y, _, err := ir.Eval(bindings, c.Y)
	if err != nil {
		return false
	}
	return c.Op.eval(x, y)
}

func (c IndexCondition) String() string {
	return fmt.Sprintf("%s %s %s", c.X, c.Op, c.Y)
}

var generic = &Condition{}

// Generic returns the condition which always holds.
// It is the current condition of an empty scope.
func Generic() *Condition {
	return generic
}

// NewCondition returns the conjunction of clauses.
// The order of the clauses does not matter and duplicated clauses are removed.
func NewCondition(clauses ...Clause) *Condition {
	if len(clauses) == 0 {
		return generic
	}
	sorted := slices.Clone(clauses)
	slices.SortStableFunc(sorted, func(a, b Clause) int {
		return strings.Compare(a.Key(), b.Key())
	})
	sorted = slices.CompactFunc(sorted, func(a, b Clause) bool {
		return a.Key() == b.Key()
	})
	keys := make([]string, len(sorted))
	for i, clause := range sorted {
		keys[i] = clause.Key()
	}
	return &Condition{clauses: sorted, keys: keys}
}

// orGeneric returns the generic condition for a nil condition.
func (c *Condition) orGeneric() *Condition {
	if c == nil {
		return generic
	}
	return c
}

// ForTarget returns a condition holding for targets with all the given keys.
func ForTarget(keys ...string) *Condition {
	clauses := make([]Clause, len(keys))
	for i, key := range keys {
		clauses[i] = TargetKey(key)
	}
	return NewCondition(clauses...)
}

// Clauses returns the clauses of the condition in canonical order.
func (c *Condition) Clauses() []Clause {
	return slices.Clone(c.orGeneric().clauses)
}

// IsGeneric returns true if the condition has no clause.
func (c *Condition) IsGeneric() bool {
	return len(c.orGeneric().clauses) == 0
}

// Equal returns true if both conditions have the same clauses.
func (c *Condition) Equal(other *Condition) bool {
	c, other = c.orGeneric(), other.orGeneric()
	if c == other {
		return true
	}
	return slices.Equal(c.keys, other.keys)
}

// Eval returns true if all the clauses of the condition hold.
func (c *Condition) Eval(ctx *Context) bool {
	for _, clause := range c.orGeneric().clauses {
		if !clause.Eval(ctx) {
			return false
		}
	}
	return true
}

// String representation of the condition.
func (c *Condition) String() string {
	if c.IsGeneric() {
		return "generic"
	}
	return stringseq.JoinStringer(slices.Values(c.orGeneric().clauses), " && ")
}
