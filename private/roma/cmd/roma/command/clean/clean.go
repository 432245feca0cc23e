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

package clean

import (
	"context"

	"github.com/AntonioBerna/roma/private/pkg/app/appcmd"
	"github.com/AntonioBerna/roma/private/pkg/app/appflag"
	"github.com/AntonioBerna/roma/private/roma/romacli"
	"github.com/spf13/pflag"
)

// NewCommand returns a new Command.
func NewCommand(
	name string,
	builder appflag.Builder,
) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name + " <project-dir>",
		Short: "Remove the bin and log directories of a project",
		Args:  appcmd.ExactArgs(1),
		Run: builder.NewRunFunc(
			func(ctx context.Context, container appflag.Container) error {
				return run(ctx, container, flags)
			},
		),
		BindFlags: flags.Bind,
	}
}

type flags struct {
	ProjectFlags *romacli.ProjectFlags
}

func newFlags() *flags {
	return &flags{
		ProjectFlags: romacli.NewProjectFlags(),
	}
}

func (f *flags) Bind(flagSet *pflag.FlagSet) {
	f.ProjectFlags.Bind(flagSet)
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
	return project.Clean(ctx)
}
