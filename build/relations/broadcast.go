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
	"fmt"

	"github.com/gx-org/opcore/build/ir"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ErrIncompatibleBroadcast is returned when two shapes cannot be broadcast together.
var ErrIncompatibleBroadcast = errors.New("incompatible shapes for broadcast")

// Assumption is an unchecked constraint taken when broadcasting an unresolved placeholder.
// At runtime, Placeholder has to be equal to 1 or to Other but this is not enforced.
type Assumption struct {
	// Placeholder is the unresolved axis length.
	Placeholder *ir.AnyDim
	// Other is the axis length the placeholder is broadcast against.
	// It is also the axis length of the output.
	Other ir.IndexExpr
	// Axis is the index of the axis in the output shape.
	Axis int
	// LHS and RHS are the shapes being broadcast.
	LHS, RHS ir.Shape
}

// String representation of the assumption.
func (a Assumption) String() string {
	return fmt.Sprintf("axis %d: assuming %s is 1 or %s when broadcasting %s and %s", a.Axis, a.Placeholder, a.Other, a.LHS, a.RHS)
}

func warnAssumption(a Assumption) {
	klog.Warningf("unchecked broadcast of an unresolved axis length: %s", a)
}

// Broadcast computes the shape resulting from broadcasting two shapes.
//
// Shapes are aligned on their last axis. For each pair of axes, the output is
// the common axis length if both are equal, the other axis length if one of them is 1
// or an unresolved placeholder. Leading axes of the longer shape are copied to the output.
// Broadcasting a placeholder is not checked and a warning is logged.
func Broadcast(lhs, rhs ir.Shape) (ir.Shape, error) {
	return BroadcastWith(lhs, rhs, warnAssumption)
}

// BroadcastWith computes the shape resulting from broadcasting two shapes.
// onAny is called for every unresolved placeholder resolved to the other axis length.
func BroadcastWith(lhs, rhs ir.Shape, onAny func(Assumption)) (ir.Shape, error) {
	lhsRank, rhsRank := len(lhs), len(rhs)
	outRank := max(lhsRank, rhsRank)
	out := make(ir.Shape, outRank)
	for i := 1; i <= min(lhsRank, rhsRank); i++ {
		s1, s2 := lhs[lhsRank-i], rhs[rhsRank-i]
		axis := outRank - i
		switch {
		case EqualCheck(s1, s2):
			out[axis] = s1
		case EqualConstInt(s1, 1):
			out[axis] = s2
		case EqualConstInt(s2, 1):
			out[axis] = s1
		case ir.IsAny(s1):
			out[axis] = s2
			onAny(Assumption{Placeholder: s1.(*ir.AnyDim), Other: s2, Axis: axis, LHS: lhs, RHS: rhs})
		case ir.IsAny(s2):
			out[axis] = s1
			onAny(Assumption{Placeholder: s2.(*ir.AnyDim), Other: s1, Axis: axis, LHS: lhs, RHS: rhs})
		default:
			return nil, errors.Wrapf(ErrIncompatibleBroadcast, "cannot broadcast %s and %s: axis length %s and %s differ", lhs, rhs, s1, s2)
		}
	}
	longer := lhs
	if rhsRank > lhsRank {
		longer = rhs
	}
	copy(out, longer[:outRank-min(lhsRank, rhsRank)])
	return out, nil
}
