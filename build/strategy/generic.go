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
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// GenericFunc is a function with a default implementation overridden by target keys.
type GenericFunc[F any] struct {
	name     string
	fallback F

	mu        sync.RWMutex
	overrides map[string]F
}

// NewGenericFunc returns a generic function given its default implementation.
func NewGenericFunc[F any](name string, fallback F) *GenericFunc[F] {
	return &GenericFunc[F]{
		name:      name,
		fallback:  fallback,
		overrides: make(map[string]F),
	}
}

// Name of the generic function.
func (g *GenericFunc[F]) Name() string { return g.name }

// Register fn for targets with any of the given keys.
// Registering two functions for the same key is an error.
func (g *GenericFunc[F]) Register(fn F, keys ...string) error {
	if len(keys) == 0 {
		return errors.Errorf("%s: no target key to register a function for", g.name)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, key := range keys {
		if _, ok := g.overrides[key]; ok {
			return errors.Errorf("%s: function already registered for target key %q", g.name, key)
		}
	}
	for _, key := range keys {
		g.overrides[key] = fn
		klog.V(2).Infof("%s: registered function for target key %s", g.name, key)
	}
	return nil
}

// Dispatch returns the function registered for the first key of the target
// with an override, or the default function.
func (g *GenericFunc[F]) Dispatch(target *Target) F {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if target != nil {
		for _, key := range target.Keys {
			if fn, ok := g.overrides[key]; ok {
				return fn
			}
		}
	}
	return g.fallback
}
