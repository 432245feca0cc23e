// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package syserror handles "system errors".
//
// A system error is an error that should never actually happen, and should be
// propagated to the user as a bug in the codebase.
package syserror

import (
	"errors"
	"fmt"
)

// Error is a system error.
type Error struct {
	Underlying error
}

// Error implements error.
func (e *Error) Error() string {
	if e == nil || e.Underlying == nil {
		return ""
	}
	return "system error: " + e.Underlying.Error()
}

// Unwrap implements errors.Unwrap for Error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Underlying
}

// New is a convenience function that returns a new system error by calling errors.New.
func New(text string) *Error {
	return &Error{
		Underlying: errors.New(text),
	}
}

// Newf is a convenience function that returns a new system error by calling fmt.Errorf.
func Newf(format string, args ...any) *Error {
	return &Error{
		Underlying: fmt.Errorf(format, args...),
	}
}

