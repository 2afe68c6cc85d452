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
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Target describes the device code is generated for.
type Target struct {
	// Kind of the target, for example llvm or cuda.
	Kind string
	// Keys identifying the target, from the most to the least specific.
	Keys []string
	// Attrs are the options of the target.
	Attrs map[string][]string
}

var defaultKeys = map[string][]string{
	"llvm":   {"cpu"},
	"c":      {"cpu"},
	"cuda":   {"cuda", "gpu"},
	"nvptx":  {"cuda", "gpu"},
	"rocm":   {"rocm", "gpu"},
	"opencl": {"opencl", "gpu"},
	"metal":  {"metal", "gpu"},
	"vulkan": {"vulkan", "gpu"},
	"hybrid": {"cpu"},
}

// ParseTarget parses a target string such as "llvm -device=arm_cpu -mattr=+neon".
//
// The keys of the target are the value of -device, followed by the values of -keys,
// followed by the default keys of the target kind.
func ParseTarget(s string) (*Target, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, errors.Errorf("empty target string")
	}
	t := &Target{
		Kind:  fields[0],
		Attrs: make(map[string][]string),
	}
	kindKeys, ok := defaultKeys[t.Kind]
	if !ok {
		return nil, errors.Errorf("target kind %q not supported", t.Kind)
	}
	for _, field := range fields[1:] {
		opt, found := strings.CutPrefix(field, "-")
		if !found || opt == "" {
			return nil, errors.Errorf("invalid option %q in target %q: options start with -", field, s)
		}
		name, value, hasValue := strings.Cut(opt, "=")
		if !hasValue {
			t.Attrs[name] = []string{"true"}
			continue
		}
		t.Attrs[name] = strings.Split(value, ",")
	}
	var keys []string
	keys = append(keys, t.Attrs["device"]...)
	keys = append(keys, t.Attrs["keys"]...)
	keys = append(keys, kindKeys...)
	for _, key := range keys {
		if key != "" && !slices.Contains(t.Keys, key) {
			t.Keys = append(t.Keys, key)
		}
	}
	return t, nil
}

// MustParseTarget parses a target string and panics on error.
func MustParseTarget(s string) *Target {
	t, err := ParseTarget(s)
	if err != nil {
		panic(err)
	}
	return t
}

// HasKey returns true if the target has a key.
func (t *Target) HasKey(key string) bool {
	return t != nil && slices.Contains(t.Keys, key)
}

// Attr returns the values of an option.
func (t *Target) Attr(name string) []string {
	if t == nil {
		return nil
	}
	return t.Attrs[name]
}

// String representation of the target.
// Options are sorted by name.
func (t *Target) String() string {
	names := make([]string, 0, len(t.Attrs))
	for name := range t.Attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	var b strings.Builder
	b.WriteString(t.Kind)
	for _, name := range names {
		b.WriteString(" -")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(strings.Join(t.Attrs[name], ","))
	}
	return b.String()
}
