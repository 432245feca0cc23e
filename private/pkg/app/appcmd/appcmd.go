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

// Package appcmd contains helper functionality for applications using commands.
package appcmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AntonioBerna/roma/private/pkg/app"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Command is a command.
type Command struct {
	// Use is the one-line usage message.
	// Required.
	Use string
	// Short is the short message shown in the 'help' output.
	// Required if Long is set.
	Short string
	// Long is the long message shown in the 'help <this-command>' output.
	// The Short field will be prepended to the Long field with a newline.
	// Must be unset if short is unset.
	Long string
	// Args are the expected arguments.
	Args cobra.PositionalArgs
	// Version the version of the command.
	//
	// If this is specified, a flag --version will be added to the command
	// that precedes all other functionality, and which prints the version
	// to stdout.
	Version string
	// Hidden says whether this command should be hidden.
	Hidden bool
	// BindFlags allows binding of flags on build.
	BindFlags func(*pflag.FlagSet)
	// BindPersistentFlags allows binding of flags on build.
	BindPersistentFlags func(*pflag.FlagSet)
	// Run is the command to run.
	// Required if there are no sub-commands.
	// Must be unset if there are sub-commands.
	Run func(context.Context, app.Container) error
	// SubCommands are the sub-commands. Optional.
	// Must be unset if there is a run function.
	SubCommands []*Command
}

// NewInvalidArgumentError creates a new invalidArgumentError, indicating that
// the error was caused by argument validation. This causes us to print the usage
// help text for the command that it is returned from.
func NewInvalidArgumentError(message string) error {
	return newInvalidArgumentError(message)
}

// NewInvalidArgumentErrorf creates a new InvalidArgumentError, indicating that
// the error was caused by argument validation. This causes us to print the usage
// help text for the command that it is returned from.
func NewInvalidArgumentErrorf(format string, args ...interface{}) error {
	return newInvalidArgumentError(fmt.Sprintf(format, args...))
}

// Main runs the application using the OS container and calling os.Exit on the return value of Run.
func Main(ctx context.Context, command *Command) {
	app.Main(ctx, newRunFunc(command))
}

// Run runs the application using the container.
func Run(ctx context.Context, container app.Container, command *Command) error {
	return app.Run(ctx, container, newRunFunc(command))
}

// BindMultiple is a convenience function for binding multiple flag functions.
func BindMultiple(bindFuncs ...func(*pflag.FlagSet)) func(*pflag.FlagSet) {
	return func(flagSet *pflag.FlagSet) {
		for _, bindFunc := range bindFuncs {
			bindFunc(flagSet)
		}
	}
}

// ExactArgs returns a cobra.PositionalArgs that requires exactly n arguments.
func ExactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return NewInvalidArgumentErrorf("accepts %d arg(s), received %d", n, len(args))
		}
		return nil
	}
}

func newRunFunc(command *Command) func(context.Context, app.Container) error {
	return func(ctx context.Context, container app.Container) error {
		return run(ctx, container, command)
	}
}

func run(
	ctx context.Context,
	container app.Container,
	command *Command,
) error {
	var runErr error

	cobraCommand, err := commandToCobra(ctx, container, command, &runErr)
	if err != nil {
		return err
	}
	// Errors are printed once by app.Run, and usage is only printed for invalid arguments.
	cobraCommand.SilenceErrors = true
	cobraCommand.SilenceUsage = true
	cobraCommand.CompletionOptions.DisableDefaultCmd = true

	if container.NumArgs() > 0 {
		cobraCommand.SetArgs(app.Args(container)[1:])
	} else {
		cobraCommand.SetArgs(nil)
	}
	cobraCommand.SetOut(container.Stdout())
	cobraCommand.SetErr(container.Stderr())

	if err := cobraCommand.Execute(); err != nil {
		return err
	}
	return runErr
}

func commandToCobra(
	ctx context.Context,
	container app.Container,
	command *Command,
	runErrAddr *error,
) (*cobra.Command, error) {
	if err := commandValidate(command); err != nil {
		return nil, err
	}
	cobraCommand := &cobra.Command{
		Use:    command.Use,
		Short:  strings.TrimSpace(command.Short),
		Hidden: command.Hidden,
	}
	if command.Long != "" {
		cobraCommand.Long = cobraCommand.Short + "\n\n" + strings.TrimSpace(command.Long)
	}
	if command.Version != "" {
		cobraCommand.Version = command.Version
		cobraCommand.SetVersionTemplate("{{.Version}}\n")
	}
	if command.BindFlags != nil {
		command.BindFlags(cobraCommand.Flags())
	}
	if command.BindPersistentFlags != nil {
		command.BindPersistentFlags(cobraCommand.PersistentFlags())
	}
	if command.Args != nil {
		cobraCommand.Args = func(cmd *cobra.Command, args []string) error {
			if err := command.Args(cmd, args); err != nil {
				printUsage(container, cmd)
				return err
			}
			return nil
		}
	}
	if command.Run != nil {
		cobraCommand.Run = func(cmd *cobra.Command, args []string) {
			runErr := command.Run(ctx, app.NewContainerForArgs(container, args...))
			if asInvalidArgumentError := (&invalidArgumentError{}); errors.As(runErr, &asInvalidArgumentError) {
				printUsage(container, cmd)
			}
			*runErrAddr = runErr
		}
	}
	for _, subCommand := range command.SubCommands {
		subCobraCommand, err := commandToCobra(ctx, container, subCommand, runErrAddr)
		if err != nil {
			return nil, err
		}
		cobraCommand.AddCommand(subCobraCommand)
	}
	return cobraCommand, nil
}

func commandValidate(command *Command) error {
	if command.Use == "" {
		return errors.New("must set Command.Use")
	}
	if command.Long != "" && command.Short == "" {
		return errors.New("must set Command.Short if Command.Long is set")
	}
	if command.Run != nil && len(command.SubCommands) > 0 {
		return errors.New("cannot set both Command.Run and Command.SubCommands")
	}
	if command.Run == nil && len(command.SubCommands) == 0 {
		return errors.New("must set one of Command.Run and Command.SubCommands")
	}
	return nil
}

func printUsage(container app.StderrContainer, cmd *cobra.Command) {
	_, _ = fmt.Fprintln(container.Stderr(), cmd.UsageString())
}

type invalidArgumentError struct {
	message string
}

func newInvalidArgumentError(message string) *invalidArgumentError {
	return &invalidArgumentError{
		message: message,
	}
}

func (e *invalidArgumentError) Error() string {
	return e.message
}
