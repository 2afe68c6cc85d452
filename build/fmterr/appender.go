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

// Appender appends errors to a set.
type Appender struct {
	errors *Errors
}

// Append an error to the list of errors.
func (app *Appender) Append(err error) bool {
	return app.errors.Append(err)
}

// AppendInternalf appends an internal error for an operator.
func (app *Appender) AppendInternalf(op string, format string, a ...any) bool {
	return app.Append(Internalf(op, format, a...))
}

// Op returns an appender for a specific operator.
func (app *Appender) Op(op string) *OpAppender {
	return &OpAppender{app: app, op: op}
}

// Errors returns the set of errors or nil if no errors has been appended.
func (app *Appender) Errors() *Errors {
	if app.errors.Empty() {
		return nil
	}
	return app.errors
}

// Empty returns true if no errors has been appended.
func (app *Appender) Empty() bool {
	return app.errors.Empty()
}

// String representation of the error.
func (app *Appender) String() string {
	return app.errors.String()
}

// OpAppender is an error appender for a given operator.
type OpAppender struct {
	app *Appender
	op  string
}

// Append appends an error, attaching the operator to it.
func (app *OpAppender) Append(err error) bool {
	return app.app.Append(AtOp(app.op, err))
}

// AppendInternalf appends an internal error for the operator.
func (app *OpAppender) AppendInternalf(format string, a ...any) bool {
	return app.app.AppendInternalf(app.op, format, a...)
}
