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
	"slices"

	"github.com/gx-org/opcore/base/sync"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Registry maps operator names to their type relation.
// A registry is safe for concurrent use.
type Registry struct {
	rels sync.Map[string, Relation]
}

// NewRegistry returns a new empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register a relation for the operator named rel.Name.
// Registering two relations for the same operator is an error.
func (reg *Registry) Register(rel Relation) error {
	if rel.Func == nil {
		return errors.Errorf("relation for operator %q has no function", rel.Name)
	}
	if _, loaded := reg.rels.LoadOrStore(rel.Name, rel); loaded {
		return errors.Errorf("relation for operator %q already registered", rel.Name)
	}
	klog.V(2).Infof("registered type relation for %s with %d inputs", rel.Name, rel.NumInputs)
	return nil
}

// Lookup returns the relation of an operator.
func (reg *Registry) Lookup(op string) (Relation, bool) {
	return reg.rels.Load(op)
}

// Names returns the sorted names of all the operators with a relation.
func (reg *Registry) Names() []string {
	var names []string
	for name := range reg.rels.Iter() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var (
	broadcastOps = []string{
		"add", "subtract", "multiply", "divide", "maximum", "minimum",
	}
	comparisonOps = []string{
		"equal", "not_equal", "less", "greater", "less_equal", "greater_equal",
	}
	identityOps = []string{
		"copy", "negative", "exp", "sigmoid",
	}
)

// NewStandardRegistry returns a registry with the relations of elementwise operators.
func NewStandardRegistry() *Registry {
	reg := NewRegistry()
	mustRegister := func(names []string, numInputs int, f Func) {
		for _, name := range names {
			if err := reg.Register(Relation{Name: name, NumInputs: numInputs, Func: f}); err != nil {
				panic(err)
			}
		}
	}
	mustRegister(broadcastOps, 2, BroadcastRel)
	mustRegister(comparisonOps, 2, BroadcastCompRel)
	mustRegister(identityOps, 1, IdentityRel)
	return reg
}
