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

package fmterr

import (
	"fmt"
	"runtime/debug"

	"github.com/pkg/errors"
)

type (
	// ErrorWithOp is an error attached to an operator.
	ErrorWithOp interface {
		error
		Op() string
		Err() error
	}

	errorWithOp struct {
		op  string
		err error
	}
)

// AtOp attaches the name of an operator to an error.
// A nil error returns nil.
func AtOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return errorWithOp{op: op, err: err}
}

// Errorf returns a formatted error for an operator.
func Errorf(op string, format string, a ...any) error {
	return AtOp(op, errors.Errorf(format, a...))
}

// Internal marks an error as internal, potentially adding additional information.
func Internal(err error) error {
	return fmt.Errorf("opcore internal error. This is a bug. Please report it. Error:\n%+v", err)
}

// Internalf returns a formatted internal error for an operator.
func Internalf(op string, format string, a ...any) error {
	return Internal(Errorf(op, format, a...))
}

// Error returns a string description of the error.
func (err errorWithOp) Error() (s string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s = fmt.Sprintf("recovered from panic when building error message: %T:\n%v", err.err, string(debug.Stack()))
	}()
	if err.op == "" {
		return err.err.Error()
	}
	return err.op + ": " + err.err.Error()
}

// Unwrap the error.
func (err errorWithOp) Unwrap() error {
	return err.err
}

// Format writes the error into the state of the formatter.
func (err errorWithOp) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}

func (err errorWithOp) Op() string {
	return err.op
}

func (err errorWithOp) Err() error {
	return err.err
}

// OpOf returns the name of the outermost operator attached to an error.
func OpOf(err error) (string, bool) {
	var withOp ErrorWithOp
	if !errors.As(err, &withOp) {
		return "", false
	}
	return withOp.Op(), true
}
