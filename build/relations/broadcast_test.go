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

package relations_test

import (
	"testing"

	"github.com/gx-org/opcore/build/ir"
	"github.com/gx-org/opcore/build/relations"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"
)

func TestBroadcast(t *testing.T) {
	n := ir.NewVar("n")
	tests := []struct {
		lhs, rhs ir.Shape
		want     ir.Shape
	}{
		{lhs: ir.ShapeOf(3, 1), rhs: ir.ShapeOf(1, 4), want: ir.ShapeOf(3, 4)},
		{lhs: ir.ShapeOf(5), rhs: ir.ShapeOf(3, 5), want: ir.ShapeOf(3, 5)},
		{lhs: ir.ShapeOf(3, 5), rhs: ir.ShapeOf(5), want: ir.ShapeOf(3, 5)},
		{lhs: ir.ShapeOf(2, 1, 5), rhs: ir.ShapeOf(7, 1), want: ir.ShapeOf(2, 7, 5)},
		{lhs: ir.ShapeOf[int](), rhs: ir.ShapeOf(2, 3), want: ir.ShapeOf(2, 3)},
		{lhs: ir.NewShape(n, ir.Int(1)), rhs: ir.NewShape(ir.Int(1), n), want: ir.NewShape(n, n)},
		{
			lhs:  ir.NewShape(ir.Add(n, ir.Int(1)), ir.Int(2)),
			rhs:  ir.NewShape(ir.Add(ir.Int(1), n), ir.Int(2)),
			want: ir.NewShape(ir.Add(n, ir.Int(1)), ir.Int(2)),
		},
	}
	for i, test := range tests {
		got, err := relations.Broadcast(test.lhs, test.rhs)
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		if !ir.ShapeEqual(got, test.want) {
			t.Errorf("test %d: Broadcast(%s, %s) = %s but want %s", i, test.lhs, test.rhs, got, test.want)
		}
	}
}

func TestBroadcastError(t *testing.T) {
	tests := []struct {
		lhs, rhs ir.Shape
	}{
		{lhs: ir.ShapeOf(3), rhs: ir.ShapeOf(4)},
		{lhs: ir.ShapeOf(2, 3), rhs: ir.ShapeOf(3, 3, 3)},
		{lhs: ir.NewShape(ir.NewVar("n")), rhs: ir.NewShape(ir.NewVar("m"))},
	}
	for i, test := range tests {
		_, err := relations.Broadcast(test.lhs, test.rhs)
		if !errors.Is(err, relations.ErrIncompatibleBroadcast) {
			t.Errorf("test %d: Broadcast(%s, %s) returned error %v but want %v", i, test.lhs, test.rhs, err, relations.ErrIncompatibleBroadcast)
		}
	}
}

func TestBroadcastAny(t *testing.T) {
	placeholder := ir.Any()
	lhs := ir.NewShape(placeholder, ir.Int(4))
	rhs := ir.ShapeOf(3, 4)
	var assumptions []relations.Assumption
	got, err := relations.BroadcastWith(lhs, rhs, func(a relations.Assumption) {
		assumptions = append(assumptions, a)
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := ir.ShapeOf(3, 4); !ir.ShapeEqual(got, want) {
		t.Errorf("got %s but want %s", got, want)
	}
	if len(assumptions) != 1 {
		t.Fatalf("got %d assumptions but want 1", len(assumptions))
	}
	a := assumptions[0]
	if a.Placeholder != placeholder || a.Axis != 0 || !ir.ExprEqual(a.Other, ir.Int(3)) {
		t.Errorf("unexpected assumption: %s", a)
	}
	// Broadcast only logs the assumption.
	if _, err := relations.Broadcast(rhs, lhs); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBroadcastProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	dims := gen.SliceOfN(4, gen.IntRange(1, 6))
	properties.Property("broadcasting a shape with itself is the identity", prop.ForAll(
		func(dims []int) bool {
			s := ir.ShapeOf(dims...)
			got, err := relations.Broadcast(s, s)
			return err == nil && ir.ShapeEqual(got, s)
		},
		dims,
	))
	properties.Property("broadcasting with ones keeps the longer shape", prop.ForAll(
		func(dims []int, rank int) bool {
			s := ir.ShapeOf(dims...)
			ones := make([]int, rank)
			for i := range ones {
				ones[i] = 1
			}
			got, err := relations.Broadcast(ir.ShapeOf(ones...), s)
			return err == nil && ir.ShapeEqual(got, s)
		},
		dims,
		gen.IntRange(0, 4),
	))
	properties.Property("broadcast is commutative", prop.ForAll(
		func(lhs, rhs []int) bool {
			for i := range lhs {
				if lhs[i] != rhs[i] && lhs[i] != 1 && rhs[i] != 1 {
					lhs[i] = rhs[i]
				}
			}
			x, y := ir.ShapeOf(lhs...), ir.ShapeOf(rhs[1:]...)
			xy, xyErr := relations.Broadcast(x, y)
			yx, yxErr := relations.Broadcast(y, x)
			if xyErr != nil || yxErr != nil {
				return (xyErr != nil) == (yxErr != nil)
			}
			return ir.ShapeEqual(xy, yx)
		},
		dims,
		dims,
	))
	properties.TestingRun(t)
}
