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

// Package romacli contains the shared flag, configuration, and error
// handling for the roma commands.
package romacli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AntonioBerna/roma/private/pkg/app"
	"github.com/AntonioBerna/roma/private/pkg/app/appcmd"
	"github.com/AntonioBerna/roma/private/pkg/app/appflag"
	"github.com/AntonioBerna/roma/private/pkg/command"
	"github.com/AntonioBerna/roma/private/pkg/stringutil"
	"github.com/AntonioBerna/roma/private/roma/romaproject"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Version is the version of roma.
const Version = "1.0.0"

const (
	languageFlagName         = "language"
	languageFlagShortName    = "l"
	compilerFlagName         = "compiler"
	targetFlagName           = "target"
	targetOptionsFlagName    = "target-options"
	compressFlagName         = "compress"
	errorPrefix              = "Error:"
	colorErrorPrefix         = "\x1b[1;31m" + errorPrefix + "\x1b[0m"
	interruptedMessageSuffix = ": interrupted"
	timedOutMessage          = "timed out"
)

// Config is the roma configuration file config.yaml.
//
// Every key is optional. Unset keys fall back to the built-in defaults.
type Config struct {
	Compiler      string   `yaml:"compiler,omitempty"`
	CFlags        []string `yaml:"cflags,omitempty"`
	Libs          []string `yaml:"libs,omitempty"`
	Valgrind      string   `yaml:"valgrind,omitempty"`
	ValgrindFlags []string `yaml:"valgrind_flags,omitempty"`
}

// ReadConfig reads the Config from the configuration directory of the container.
//
// Returns an empty Config if there is no configuration file.
func ReadConfig(container appflag.NameContainer) (*Config, error) {
	config := &Config{}
	if err := appflag.ReadConfig(container, config); err != nil {
		return nil, err
	}
	return config, nil
}

// ProjectFlags are the flags shared by all commands that operate on a project.
type ProjectFlags struct {
	Language string
	Compiler string
	Target   string
}

// NewProjectFlags returns a new ProjectFlags.
func NewProjectFlags() *ProjectFlags {
	return &ProjectFlags{}
}

// Bind binds the flags.
func (f *ProjectFlags) Bind(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(
		&f.Language,
		languageFlagName,
		languageFlagShortName,
		"",
		fmt.Sprintf(
			"The project language. Must be one of %s. Required",
			stringutil.SliceToHumanStringOrQuoted(romaproject.AllLanguageFlagValues()),
		),
	)
	flagSet.StringVar(
		&f.Compiler,
		compilerFlagName,
		"",
		fmt.Sprintf(`The compiler to use. Defaults to the configuration file value, then %q`, romaproject.DefaultCompiler),
	)
	flagSet.StringVar(
		&f.Target,
		targetFlagName,
		"",
		"The name of the binary written to bin. Defaults to the project directory name",
	)
}

// ValgrindFlags are the flags for the valgrind command.
type ValgrindFlags struct {
	// TargetOptions are the raw --target-options values.
	TargetOptions []string
	Compress      bool
}

// NewValgrindFlags returns a new ValgrindFlags.
func NewValgrindFlags() *ValgrindFlags {
	return &ValgrindFlags{}
}

// Bind binds the flags.
func (f *ValgrindFlags) Bind(flagSet *pflag.FlagSet) {
	flagSet.StringArrayVar(
		&f.TargetOptions,
		targetOptionsFlagName,
		nil,
		`Arguments passed to the program under valgrind, separated by whitespace, for example "input.txt 5". May be repeated`,
	)
	flagSet.BoolVar(
		&f.Compress,
		compressFlagName,
		false,
		"Compress the valgrind log with zstd into log/valgrind.txt.zst",
	)
}

// TargetArgs returns the arguments for the program under valgrind.
//
// Each --target-options value is split on whitespace. Commas and other
// characters are kept as part of an argument.
func (f *ValgrindFlags) TargetArgs() []string {
	var targetArgs []string
	for _, targetOptions := range f.TargetOptions {
		targetArgs = append(targetArgs, strings.Fields(targetOptions)...)
	}
	return targetArgs
}

// ValgrindOptions returns the romaproject.ValgrindOptions for the flags.
func (f *ValgrindFlags) ValgrindOptions() []romaproject.ValgrindOption {
	return []romaproject.ValgrindOption{
		romaproject.ValgrindWithTargetArgs(f.TargetArgs()...),
		romaproject.ValgrindWithCompress(f.Compress),
	}
}

// NewProject returns a new Project for the single project directory argument.
//
// Flags take precedence over the configuration file, which takes precedence
// over the built-in defaults.
func NewProject(container appflag.Container, projectFlags *ProjectFlags) (romaproject.Project, error) {
	if container.NumArgs() != 1 {
		return nil, appcmd.NewInvalidArgumentErrorf("expected exactly one project directory, got %d", container.NumArgs())
	}
	if projectFlags.Language == "" {
		return nil, appcmd.NewInvalidArgumentErrorf("required flag --%s not set", languageFlagName)
	}
	language, err := romaproject.ParseLanguage(projectFlags.Language)
	if err != nil {
		return nil, appcmd.NewInvalidArgumentError(err.Error())
	}
	config, err := ReadConfig(container)
	if err != nil {
		return nil, err
	}
	dirPath := container.Arg(0)
	container.Logger().Debug(
		"project",
		zap.String("dir", dirPath),
		zap.Stringer("language", language),
	)
	return romaproject.NewProject(
		container.Logger(),
		container,
		command.NewRunner(),
		dirPath,
		language,
		romaproject.ProjectWithCompiler(config.Compiler),
		romaproject.ProjectWithCompiler(projectFlags.Compiler),
		romaproject.ProjectWithTarget(projectFlags.Target),
		romaproject.ProjectWithCFlags(config.CFlags),
		romaproject.ProjectWithLibs(config.Libs),
		romaproject.ProjectWithValgrind(config.Valgrind),
		romaproject.ProjectWithValgrindFlags(config.ValgrindFlags),
	)
}

// NewErrorInterceptor returns a new Interceptor that prefixes errors with
// Error: for display.
//
// The prefix is colored when stderr is a terminal. Errors caused by an
// interrupt are replaced with "<app>: interrupted".
func NewErrorInterceptor() appflag.Interceptor {
	return func(next func(context.Context, appflag.Container) error) func(context.Context, appflag.Container) error {
		return func(ctx context.Context, container appflag.Container) error {
			err := next(ctx, container)
			if err == nil {
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return app.NewError(1, container.AppName()+interruptedMessageSuffix)
			}
			if errors.Is(err, context.DeadlineExceeded) {
				err = app.NewError(1, timedOutMessage)
			}
			return fmt.Errorf("%s %w", getErrorPrefix(container), err)
		}
	}
}

func getErrorPrefix(container app.StderrContainer) string {
	if file, ok := container.Stderr().(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return colorErrorPrefix
	}
	return errorPrefix
}
