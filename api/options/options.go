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

// Package options specifies options for the type relation solver.
package options

// DefaultMaxIterations is the default number of passes run by a solver over its constraints.
const DefaultMaxIterations = 64

type (
	// Config is the configuration built from a list of options.
	Config struct {
		// MaxIterations is the maximum number of passes over all constraints.
		MaxIterations int
		// LogAnyBroadcast logs a warning every time an unresolved placeholder
		// is broadcast against another axis length.
		LogAnyBroadcast bool
	}

	// Option modifies a configuration.
	Option func(*Config)
)

// New returns a configuration given a list of options.
func New(opts ...Option) Config {
	cfg := Config{
		MaxIterations:   DefaultMaxIterations,
		LogAnyBroadcast: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxIterations sets the maximum number of passes of a solver.
// Values lower than 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(cfg *Config) {
		if n < 1 {
			return
		}
		cfg.MaxIterations = n
	}
}

// WithLogAnyBroadcast enables or disables warnings when an unresolved placeholder is broadcast.
func WithLogAnyBroadcast(enable bool) Option {
	return func(cfg *Config) {
		cfg.LogAnyBroadcast = enable
	}
}
