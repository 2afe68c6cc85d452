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

// Package canonical computes a canonical form of index expressions.
//
// An index expression is represented as a sum of monomials with integer coefficients.
// Monomials are products of atoms: variables, placeholders, or operations which
// cannot be expanded (floordiv, floormod, min, max). Atoms and monomials are sorted
// by their string representation such that two expressions equal up to
// commutativity, associativity, and distributivity have the same canonical form.
package canonical

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gx-org/opcore/build/ir"
)

type (
	// Comparable is a canonical value that can be compared to another.
	Comparable interface {
		Compare(x Comparable) bool
	}

	// Canonical is a canonical expression.
	Canonical interface {
		Comparable
		fmt.Stringer
	}

	// atom is a factor of a monomial.
	// key identifies the atom and str is used for printing and ordering.
	// Keys of different kinds of atoms never collide.
	atom struct {
		key  string
		str  string
		expr ir.IndexExpr
	}

	monomial struct {
		key   string
		str   string
		atoms []atom
	}

	term struct {
		coef int64
		mono monomial
	}

	// Polynomial is the canonical form of an index expression.
	Polynomial struct {
		cst      int64
		terms    map[string]term
		overflow bool
	}
)

var _ Canonical = (*Polynomial)(nil)

func compareAtoms(a, b atom) int {
	if c := strings.Compare(a.str, b.str); c != 0 {
		return c
	}
	return strings.Compare(a.key, b.key)
}

func newMonomial(atoms ...atom) monomial {
	atoms = slices.Clone(atoms)
	slices.SortStableFunc(atoms, compareAtoms)
	if len(atoms) == 1 {
		return monomial{key: atoms[0].key, str: atoms[0].str, atoms: atoms}
	}
	keys := make([]string, len(atoms))
	strs := make([]string, len(atoms))
	for i, a := range atoms {
		keys[i] = a.key
		strs[i] = a.str
	}
	return monomial{
		key:   fmt.Sprintf("(* %s)", strings.Join(keys, " ")),
		str:   fmt.Sprintf("(* %s)", strings.Join(strs, " ")),
		atoms: atoms,
	}
}

func (m monomial) times(o monomial) monomial {
	return newMonomial(append(slices.Clone(m.atoms), o.atoms...)...)
}

func constant(v int64) *Polynomial {
	return &Polynomial{cst: v, terms: make(map[string]term)}
}

func fromAtom(a atom) *Polynomial {
	p := constant(0)
	mono := newMonomial(a)
	p.terms[mono.key] = term{coef: 1, mono: mono}
	return p
}

func (p *Polynomial) clone() *Polynomial {
	r := constant(p.cst)
	r.overflow = p.overflow
	for k, t := range p.terms {
		r.terms[k] = t
	}
	return r
}

func (p *Polynomial) checked(v int64, ok bool) int64 {
	if !ok {
		p.overflow = true
	}
	return v
}

func (p *Polynomial) addTerm(t term) {
	cur, ok := p.terms[t.mono.key]
	if !ok {
		if t.coef != 0 {
			p.terms[t.mono.key] = t
		}
		return
	}
	cur.coef = p.checked(ir.CheckedAdd(cur.coef, t.coef))
	if cur.coef == 0 {
		delete(p.terms, t.mono.key)
		return
	}
	p.terms[t.mono.key] = cur
}

func (p *Polynomial) add(q *Polynomial, sign int64) *Polynomial {
	r := p.clone()
	r.overflow = r.overflow || q.overflow
	r.cst = r.checked(ir.CheckedAdd(r.cst, r.checked(ir.CheckedMul(sign, q.cst))))
	for _, t := range q.terms {
		r.addTerm(term{coef: r.checked(ir.CheckedMul(sign, t.coef)), mono: t.mono})
	}
	return r
}

func (p *Polynomial) mul(q *Polynomial) *Polynomial {
	r := constant(0)
	r.overflow = p.overflow || q.overflow
	r.cst = r.checked(ir.CheckedMul(p.cst, q.cst))
	for _, t := range p.terms {
		r.addTerm(term{coef: r.checked(ir.CheckedMul(t.coef, q.cst)), mono: t.mono})
	}
	for _, t := range q.terms {
		r.addTerm(term{coef: r.checked(ir.CheckedMul(t.coef, p.cst)), mono: t.mono})
	}
	for _, pt := range p.terms {
		for _, qt := range q.terms {
			r.addTerm(term{coef: r.checked(ir.CheckedMul(pt.coef, qt.coef)), mono: pt.mono.times(qt.mono)})
		}
	}
	return r
}

// Key identifies the polynomial.
// Unlike String, two polynomials with the same key are always equal.
func (p *Polynomial) Key() string {
	ts := make([]term, 0, len(p.terms))
	for _, t := range p.terms {
		ts = append(ts, t)
	}
	slices.SortFunc(ts, func(a, b term) int {
		return strings.Compare(a.mono.key, b.mono.key)
	})
	var b strings.Builder
	fmt.Fprintf(&b, "(+ %d", p.cst)
	for _, t := range ts {
		fmt.Fprintf(&b, " %d%s", t.coef, t.mono.key)
	}
	b.WriteString(")")
	return b.String()
}

// FromExpr returns the canonical form of an index expression.
// A sub-expression whose expansion overflows int64 is kept as an opaque atom.
func FromExpr(expr ir.IndexExpr) *Polynomial {
	p := fromExpr(expr)
	if p.overflow {
		return fromAtom(atom{key: fmt.Sprintf("ext:%p", expr), str: expr.String(), expr: expr})
	}
	return p
}

func fromExpr(expr ir.IndexExpr) *Polynomial {
	switch exprT := expr.(type) {
	case *ir.IntImm:
		return constant(exprT.Value)
	case *ir.Var:
		return fromAtom(atom{key: "v:" + strconv.Quote(exprT.Name), str: exprT.Name, expr: exprT})
	case *ir.AnyDim:
		return fromAtom(atom{
			key:  fmt.Sprintf("any:%d", exprT.ID()),
			str:  fmt.Sprintf("?%d", exprT.ID()),
			expr: exprT,
		})
	case *ir.BinaryExpr:
		return fromBinary(exprT)
	}
	return fromAtom(atom{key: fmt.Sprintf("ext:%p", expr), str: fmt.Sprintf("%T(%p)", expr, expr), expr: expr})
}

func fromBinary(expr *ir.BinaryExpr) *Polynomial {
	x, y := FromExpr(expr.X), FromExpr(expr.Y)
	switch expr.Op {
	case ir.OpAdd:
		return x.add(y, 1)
	case ir.OpSub:
		return x.add(y, -1)
	case ir.OpMul:
		return x.mul(y)
	}
	xVal, xOk := x.Const()
	yVal, yOk := y.Const()
	if xOk && yOk {
		if val, ok := ir.Fold(expr.Op, xVal, yVal); ok {
			return constant(val)
		}
	}
	switch expr.Op {
	case ir.OpFloorDiv:
		if yOk && yVal == 1 {
			return x
		}
	case ir.OpFloorMod:
		if yOk && (yVal == 1 || yVal == -1) {
			return constant(0)
		}
	case ir.OpMin, ir.OpMax:
		if x.Compare(y) {
			return x
		}
	}
	return fromAtom(atom{
		key:  fmt.Sprintf("op:(%s %s %s)", expr.Op, x.Key(), y.Key()),
		str:  fmt.Sprintf("(%s %s %s)", expr.Op, x.String(), y.String()),
		expr: ir.NewBinary(expr.Op, x.Expr(), y.Expr()),
	})
}

// Const returns the value of the polynomial if it is a constant.
func (p *Polynomial) Const() (int64, bool) {
	if p.overflow || len(p.terms) > 0 {
		return 0, false
	}
	return p.cst, true
}

// IsZero returns true if the polynomial is the constant 0.
func (p *Polynomial) IsZero() bool {
	val, ok := p.Const()
	return ok && val == 0
}

// Compare returns true if two polynomials are equal.
func (p *Polynomial) Compare(x Comparable) bool {
	other, ok := x.(*Polynomial)
	if !ok {
		return false
	}
	if p.overflow || other.overflow {
		return false
	}
	if p.cst != other.cst || len(p.terms) != len(other.terms) {
		return false
	}
	for k, t := range p.terms {
		ot, ok := other.terms[k]
		if !ok || ot.coef != t.coef {
			return false
		}
	}
	return true
}

func (p *Polynomial) sortedTerms() []term {
	ts := make([]term, 0, len(p.terms))
	for _, t := range p.terms {
		ts = append(ts, t)
	}
	slices.SortFunc(ts, func(a, b term) int {
		if c := strings.Compare(a.mono.str, b.mono.str); c != 0 {
			return c
		}
		return strings.Compare(a.mono.key, b.mono.key)
	})
	return ts
}

func (t term) String() string {
	if t.coef == 1 {
		return t.mono.str
	}
	strs := make([]string, len(t.mono.atoms))
	for i, a := range t.mono.atoms {
		strs[i] = a.str
	}
	return fmt.Sprintf("(* %d %s)", t.coef, strings.Join(strs, " "))
}

// String returns the canonical string of the polynomial in a prefixed form.
func (p *Polynomial) String() string {
	var strs []string
	if p.cst != 0 || len(p.terms) == 0 {
		strs = append(strs, fmt.Sprint(p.cst))
	}
	for _, t := range p.sortedTerms() {
		strs = append(strs, t.String())
	}
	if len(strs) == 1 {
		return strs[0]
	}
	return fmt.Sprintf("(+ %s)", strings.Join(strs, " "))
}

func (m monomial) expr() ir.IndexExpr {
	r := m.atoms[0].expr
	for _, a := range m.atoms[1:] {
		r = ir.Mul(r, a.expr)
	}
	return r
}

// Expr builds an index expression from the polynomial.
// Monomials are ordered by their canonical string and the constant comes last.
func (p *Polynomial) Expr() ir.IndexExpr {
	var r ir.IndexExpr
	for _, t := range p.sortedTerms() {
		coef, mono := t.coef, t.mono.expr()
		switch {
		case r == nil && coef == 1:
			r = mono
		case r == nil:
			r = ir.Mul(ir.Int(coef), mono)
		case coef == 1:
			r = ir.Add(r, mono)
		case coef == -1:
			r = ir.Sub(r, mono)
		case coef < 0:
			r = ir.Sub(r, ir.Mul(ir.Int(-coef), mono))
		default:
			r = ir.Add(r, ir.Mul(ir.Int(coef), mono))
		}
	}
	switch {
	case r == nil:
		return ir.Int(p.cst)
	case p.cst > 0:
		return ir.Add(r, ir.Int(p.cst))
	case p.cst < 0:
		return ir.Sub(r, ir.Int(-p.cst))
	}
	return r
}

// Simplify returns a simplified expression numerically equal to expr.
func Simplify(expr ir.IndexExpr) ir.IndexExpr {
	return FromExpr(expr).Expr()
}

// Equal returns true if two expressions have the same canonical form.
// A false result does not imply the expressions are different.
func Equal(x, y ir.IndexExpr) bool {
	return FromExpr(ir.Sub(x, y)).IsZero()
}
