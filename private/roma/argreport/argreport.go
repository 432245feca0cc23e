// Copyright 2024 The roma Authors
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

// Package argreport writes a human-readable report of a process argument vector.
//
// For the invocation "prog a b" the report is:
//
//	Number of arguments: 3
//	Program name: prog
//	Arguments:
//	  1: a
//	  2: b
//
// Arguments are opaque text and are written exactly as given.
package argreport

import (
	"fmt"
	"io"

	"github.com/AntonioBerna/roma/private/pkg/app"
	"github.com/AntonioBerna/roma/private/pkg/syserror"
)

// Report writes the report for args to writer.
//
// args must contain at least the invocation name at index 0.
// Lines are streamed in a single forward pass, one write per line.
func Report(writer io.Writer, args app.ArgContainer) error {
	numArgs := args.NumArgs()
	if numArgs < 1 {
		return syserror.New("argument vector is empty, the invocation name is missing")
	}
	if _, err := fmt.Fprintf(writer, "Number of arguments: %d\n", numArgs); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Program name: %s\n", args.Arg(0)); err != nil {
		return err
	}
	if _, err := io.WriteString(writer, "Arguments:\n"); err != nil {
		return err
	}
	for i := 1; i < numArgs; i++ {
		if _, err := fmt.Fprintf(writer, "  %d: %s\n", i, args.Arg(i)); err != nil {
			return err
		}
	}
	return nil
}
