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
	"cmp"
	"slices"

	"github.com/gx-org/opcore/base/iter"
	"github.com/pkg/errors"
)

// ErrNoImplementation is returned when no implementation applies to a context.
var ErrNoImplementation = errors.New("no implementation")

// Candidates returns all the implementations of the specializations whose condition
// holds in the context. Implementations are sorted by decreasing priority level,
// then by registration order.
func (s *OpStrategy) Candidates(ctx *Context) []*OpImplement {
	specs := s.Specializations()
	applicable := iter.Filter(func(spec *OpSpecialization) bool {
		return spec.cond.Eval(ctx)
	}, specs)
	var impls []*OpImplement
	for impl := range iter.Flatten(applicable, (*OpSpecialization).Implements) {
		impls = append(impls, impl)
	}
	slices.SortFunc(impls, func(a, b *OpImplement) int {
		if a.plevel != b.plevel {
			return cmp.Compare(b.plevel, a.plevel)
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return impls
}

// Select returns the implementation with the highest priority level among the
// specializations whose condition holds in the context.
// If several implementations have the same priority level, the first registered one is returned.
func (s *OpStrategy) Select(ctx *Context) (*OpImplement, error) {
	candidates := s.Candidates(ctx)
	if len(candidates) == 0 {
		return nil, errors.Wrapf(ErrNoImplementation, "operator %s", s.op)
	}
	return candidates[0], nil
}
