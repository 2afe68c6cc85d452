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

package irkind_test

import (
	"testing"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/opcore/build/ir/irkind"
)

func TestDTypeString(t *testing.T) {
	want := map[dtype.DataType]string{
		dtype.Bool:     "bool",
		dtype.Int32:    "int32",
		dtype.Uint64:   "uint64",
		dtype.Bfloat16: "bfloat16",
		dtype.Float32:  "float32",
		dtype.Invalid:  "invalid",
	}
	for dt, name := range want {
		if got := irkind.DTypeString(dt); got != name {
			t.Errorf("DTypeString(%v) = %q but want %q", dt, got, name)
		}
	}
}

func TestKindString(t *testing.T) {
	want := map[irkind.Kind]string{
		irkind.Tensor:     "tensor",
		irkind.Tuple:      "tuple",
		irkind.Func:       "func",
		irkind.Incomplete: "incomplete",
		irkind.Invalid:    "invalid",
	}
	for k, s := range want {
		if k.String() != s {
			t.Errorf("Kind(%d).String() = %q but want %q", k, k.String(), s)
		}
	}
}
