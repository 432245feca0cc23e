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

// Package romaproject builds, memory-checks, and cleans native projects.
//
// A project directory D is laid out as:
//
//	D/src      sources, if present; otherwise D itself holds the sources
//	D/include  headers, passed to the compiler with -I when present
//	D/bin      build output
//	D/log      valgrind output
package romaproject

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/AntonioBerna/roma/private/pkg/app"
	"github.com/AntonioBerna/roma/private/pkg/command"
	"github.com/AntonioBerna/roma/private/pkg/stringutil"
	"github.com/AntonioBerna/roma/private/pkg/syserror"
	"go.uber.org/zap"
)

const (
	// LanguageC is the C language.
	LanguageC Language = iota + 1
	// LanguageAsm is assembly.
	LanguageAsm
	// LanguageCpp is C++.
	LanguageCpp
)

var (
	// DefaultCompiler is the default compiler for C projects.
	DefaultCompiler = "gcc"
	// DefaultCFlags are the default compiler flags for C projects.
	DefaultCFlags = []string{"-Wall", "-Wextra", "-Werror", "-Wpedantic", "-g"}
	// DefaultLibs are the default libraries linked into C projects.
	DefaultLibs = []string{"-lm", "-lpthread"}
	// DefaultValgrind is the default valgrind executable.
	DefaultValgrind = "valgrind"
	// DefaultValgrindFlags are the default valgrind flags, not including --log-file.
	DefaultValgrindFlags = []string{"--leak-check=full", "--show-leak-kinds=all"}

	languageToString = map[Language]string{
		LanguageC:   "C",
		LanguageAsm: "Assembly",
		LanguageCpp: "C++",
	}
	languageToFlagValue = map[Language]string{
		LanguageC:   "c",
		LanguageAsm: "asm",
		LanguageCpp: "cpp",
	}
	flagValueToLanguage = map[string]Language{
		"c":   LanguageC,
		"asm": LanguageAsm,
		"cpp": LanguageCpp,
	}
)

// Language is a project language.
type Language int

// String implements fmt.Stringer.
func (l Language) String() string {
	if s, ok := languageToString[l]; ok {
		return s
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

// FlagValue returns the value used to select this language on the command line.
func (l Language) FlagValue() string {
	return languageToFlagValue[l]
}

// ParseLanguage parses the Language from its flag value.
//
// Matching is case-insensitive.
func ParseLanguage(value string) (Language, error) {
	language, ok := flagValueToLanguage[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return 0, fmt.Errorf("unknown language %q, must be one of %s", value, stringutil.SliceToHumanStringOrQuoted(AllLanguageFlagValues()))
	}
	return language, nil
}

// AllLanguageFlagValues returns the flag values of all languages, in declaration order.
func AllLanguageFlagValues() []string {
	languages := make([]Language, 0, len(languageToFlagValue))
	for language := range languageToFlagValue {
		languages = append(languages, language)
	}
	sort.Slice(languages, func(i int, j int) bool { return languages[i] < languages[j] })
	values := make([]string, len(languages))
	for i, language := range languages {
		values[i] = language.FlagValue()
	}
	return values
}

// Project is a native project directory.
type Project interface {
	// DirPath is the project directory path, unnormalized.
	DirPath() string
	// Language is the project language.
	Language() Language
	// Build compiles all sources into bin/<target>.
	Build(ctx context.Context) error
	// Valgrind builds the project, then runs bin/<target> under valgrind
	// with the log written to log/valgrind.txt.
	Valgrind(ctx context.Context, options ...ValgrindOption) error
	// Clean removes the bin and log directories.
	Clean(ctx context.Context) error
}

// NewProject returns a new Project for the directory.
//
// Progress messages are written to the stdout of container. The environment
// of container is passed to all external commands.
func NewProject(
	logger *zap.Logger,
	container app.EnvStdioContainer,
	runner command.Runner,
	dirPath string,
	language Language,
	options ...ProjectOption,
) (Project, error) {
	switch language {
	case LanguageC:
		return newCProject(logger, container, runner, dirPath, options...)
	case LanguageAsm, LanguageCpp:
		return newUnimplementedProject(dirPath, language), nil
	default:
		return nil, syserror.Newf("unknown Language: %v", language)
	}
}

// ProjectOption is an option for a new Project.
type ProjectOption func(*projectOptions)

// ProjectWithCompiler returns a new ProjectOption that sets the compiler.
//
// The default is DefaultCompiler. Empty values are ignored.
func ProjectWithCompiler(compiler string) ProjectOption {
	return func(projectOptions *projectOptions) {
		if compiler != "" {
			projectOptions.compiler = compiler
		}
	}
}

// ProjectWithTarget returns a new ProjectOption that sets the target binary name.
//
// The default is the base name of the project directory, or a.out if the
// directory has no usable base name. Empty values are ignored.
func ProjectWithTarget(target string) ProjectOption {
	return func(projectOptions *projectOptions) {
		if target != "" {
			projectOptions.target = target
		}
	}
}

// ProjectWithCFlags returns a new ProjectOption that sets the compiler flags.
//
// The default is DefaultCFlags. A nil value is ignored, an empty non-nil value
// removes all flags.
func ProjectWithCFlags(cflags []string) ProjectOption {
	return func(projectOptions *projectOptions) {
		if cflags != nil {
			projectOptions.cflags = cflags
		}
	}
}

// ProjectWithLibs returns a new ProjectOption that sets the linked libraries.
//
// The default is DefaultLibs. A nil value is ignored, an empty non-nil value
// removes all libraries.
func ProjectWithLibs(libs []string) ProjectOption {
	return func(projectOptions *projectOptions) {
		if libs != nil {
			projectOptions.libs = libs
		}
	}
}

// ProjectWithValgrind returns a new ProjectOption that sets the valgrind executable.
//
// The default is DefaultValgrind. Empty values are ignored.
func ProjectWithValgrind(valgrind string) ProjectOption {
	return func(projectOptions *projectOptions) {
		if valgrind != "" {
			projectOptions.valgrind = valgrind
		}
	}
}

// ProjectWithValgrindFlags returns a new ProjectOption that sets the valgrind flags.
//
// The default is DefaultValgrindFlags. --log-file is always added.
// A nil value is ignored.
func ProjectWithValgrindFlags(valgrindFlags []string) ProjectOption {
	return func(projectOptions *projectOptions) {
		if valgrindFlags != nil {
			projectOptions.valgrindFlags = valgrindFlags
		}
	}
}

// ValgrindOption is an option for Valgrind.
type ValgrindOption func(*valgrindOptions)

// ValgrindWithTargetArgs returns a new ValgrindOption that passes the
// arguments to the program under test.
func ValgrindWithTargetArgs(targetArgs ...string) ValgrindOption {
	return func(valgrindOptions *valgrindOptions) {
		valgrindOptions.targetArgs = targetArgs
	}
}

// ValgrindWithCompress returns a new ValgrindOption that compresses the
// valgrind log with zstd, replacing log/valgrind.txt with log/valgrind.txt.zst.
func ValgrindWithCompress(compress bool) ValgrindOption {
	return func(valgrindOptions *valgrindOptions) {
		valgrindOptions.compress = compress
	}
}

type projectOptions struct {
	compiler      string
	target        string
	cflags        []string
	libs          []string
	valgrind      string
	valgrindFlags []string
}

func newProjectOptions() *projectOptions {
	return &projectOptions{
		compiler:      DefaultCompiler,
		cflags:        DefaultCFlags,
		libs:          DefaultLibs,
		valgrind:      DefaultValgrind,
		valgrindFlags: DefaultValgrindFlags,
	}
}

type valgrindOptions struct {
	targetArgs []string
	compress   bool
}

func newValgrindOptions() *valgrindOptions {
	return &valgrindOptions{}
}
