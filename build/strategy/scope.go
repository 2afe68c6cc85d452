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

import "k8s.io/klog/v2"

// Scope is a stack of conditions under which implementations are registered.
// A scope is owned by a single goroutine.
type Scope struct {
	stack []*Condition
}

// Push a condition on the stack.
// A nil condition is the generic condition.
func (s *Scope) Push(cond *Condition) {
	s.stack = append(s.stack, cond.orGeneric())
}

// Pop the last condition pushed on the stack.
// Popping an empty stack logs a warning and does nothing.
func (s *Scope) Pop() {
	if len(s.stack) == 0 {
		klog.Warning("pop called on an empty specialization scope")
		return
	}
	s.stack[len(s.stack)-1] = nil
	s.stack = s.stack[:len(s.stack)-1]
}

// Current returns the condition on top of the stack
// or the generic condition if the stack is empty.
func (s *Scope) Current() *Condition {
	if s == nil || len(s.stack) == 0 {
		return Generic()
	}
	return s.stack[len(s.stack)-1]
}

// Depth returns the number of conditions on the stack.
func (s *Scope) Depth() int {
	return len(s.stack)
}

// With runs fn with cond pushed on the stack.
// The condition is popped when fn returns, including when it panics.
func (s *Scope) With(cond *Condition, fn func() error) error {
	s.Push(cond)
	defer s.Pop()
	return fn()
}
