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

// Package roma contains the roma command.
package roma

import (
	"context"

	"github.com/AntonioBerna/roma/private/pkg/app/appcmd"
	"github.com/AntonioBerna/roma/private/pkg/app/appflag"
	"github.com/AntonioBerna/roma/private/pkg/interrupt"
	"github.com/AntonioBerna/roma/private/roma/cmd/roma/command/build"
	"github.com/AntonioBerna/roma/private/roma/cmd/roma/command/clean"
	"github.com/AntonioBerna/roma/private/roma/cmd/roma/command/valgrind"
	"github.com/AntonioBerna/roma/private/roma/romacli"
)

// Main is the entrypoint to the roma CLI.
func Main(name string) {
	appcmd.Main(interrupt.Handle(context.Background()), NewRootCommand(name))
}

// NewRootCommand returns a new root command.
//
// This is public for use in testing.
func NewRootCommand(name string) *appcmd.Command {
	builder := appflag.NewBuilder(
		name,
		appflag.BuilderWithInterceptor(romacli.NewErrorInterceptor()),
	)
	return &appcmd.Command{
		Use:                 name,
		Short:               "Build and memory-check native projects",
		Version:             romacli.Version,
		BindPersistentFlags: builder.BindRoot,
		SubCommands: []*appcmd.Command{
			build.NewCommand("build", builder),
			valgrind.NewCommand("valgrind", builder),
			clean.NewCommand("clean", builder),
		},
	}
}
