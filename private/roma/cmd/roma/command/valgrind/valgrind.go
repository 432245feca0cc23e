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

package valgrind

import (
	"context"

	"github.com/AntonioBerna/roma/private/pkg/app/appcmd"
	"github.com/AntonioBerna/roma/private/pkg/app/appflag"
	"github.com/AntonioBerna/roma/private/roma/romacli"
)

// NewCommand returns a new Command.
func NewCommand(
	name string,
	builder appflag.Builder,
) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name + " <project-dir>",
		Short: "Build a project and run it under valgrind",
		Long: `
The project is built first, as with the build command. The binary then runs
under valgrind with full leak checking, and the valgrind report is written to
<project-dir>/log/valgrind.txt. The program keeps the terminal for its own
input and output.

    $ roma valgrind hello -l c --target-options "input.txt 5"
    Build completed. Run with ./hello/bin/hello
    Valgrind completed. Check ./hello/log/valgrind.txt

With --compress, the report is written to <project-dir>/log/valgrind.txt.zst
instead.
`,
		Args: appcmd.ExactArgs(1),
		Run: builder.NewRunFunc(
			func(ctx context.Context, container appflag.Container) error {
				return run(ctx, container, flags)
			},
		),
		BindFlags: appcmd.BindMultiple(
			flags.ProjectFlags.Bind,
			flags.ValgrindFlags.Bind,
		),
	}
}

type flags struct {
	ProjectFlags  *romacli.ProjectFlags
	ValgrindFlags *romacli.ValgrindFlags
}

func newFlags() *flags {
	return &flags{
		ProjectFlags:  romacli.NewProjectFlags(),
		ValgrindFlags: romacli.NewValgrindFlags(),
	}
}

func run(
	ctx context.Context,
	container appflag.Container,
	flags *flags,
) error {
	project, err := romacli.NewProject(container, flags.ProjectFlags)
	if err != nil {
		return err
	}
	return project.Valgrind(ctx, flags.ValgrindFlags.ValgrindOptions()...)
}
