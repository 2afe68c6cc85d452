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

// Package ir defines the types and symbolic index expressions
// consumed by the type relation engine.
package ir

// Node is a node of the intermediate representation.
type Node interface {
	node()
	String() string
}

// Attrs are the attributes of an operator call.
// They are opaque to the type relation engine and only passed through to relations.
type Attrs any
