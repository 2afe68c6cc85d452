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

// Package fmt provides utility methods for building string representations of registry objects.
package fmt

import (
	"reflect"
	"runtime"
	"strings"
)

// Indent every line of the given string by a tabulation.
func Indent(x string) string {
	var y strings.Builder
	for line := range strings.Lines(x) {
		y.WriteString("\t")
		y.WriteString(line)
	}
	return y.String()
}

// Func returns the fully qualified name of a function.
func Func(f any) string {
	if f == nil {
		return "<nil>"
	}
	val := reflect.ValueOf(f)
	if val.Kind() != reflect.Func || val.IsNil() {
		return "<nil>"
	}
	fn := runtime.FuncForPC(val.Pointer())
	if fn == nil {
		return "<unknown>"
	}
	return fn.Name()
}

// ShortFunc returns the name of a function without its package path,
// for example "x86.scheduleInjective".
func ShortFunc(f any) string {
	name := Func(f)
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
