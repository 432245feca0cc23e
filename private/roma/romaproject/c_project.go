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

package romaproject

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/AntonioBerna/roma/private/pkg/app"
	"github.com/AntonioBerna/roma/private/pkg/command"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	cSourceFileExt      = ".c"
	valgrindLogFileName = "valgrind.txt"
)

type cProject struct {
	logger    *zap.Logger
	container app.EnvStdioContainer
	runner    command.Runner
	layout    *layout

	compiler      string
	target        string
	cflags        []string
	libs          []string
	valgrind      string
	valgrindFlags []string
}

func newCProject(
	logger *zap.Logger,
	container app.EnvStdioContainer,
	runner command.Runner,
	dirPath string,
	options ...ProjectOption,
) (*cProject, error) {
	projectOptions := newProjectOptions()
	for _, option := range options {
		option(projectOptions)
	}
	layout, err := newLayout(dirPath)
	if err != nil {
		return nil, err
	}
	target := projectOptions.target
	if target == "" {
		target = defaultTarget(dirPath)
	}
	return &cProject{
		logger:        logger.Named("romaproject"),
		container:     container,
		runner:        runner,
		layout:        layout,
		compiler:      projectOptions.compiler,
		target:        target,
		cflags:        projectOptions.cflags,
		libs:          projectOptions.libs,
		valgrind:      projectOptions.valgrind,
		valgrindFlags: projectOptions.valgrindFlags,
	}, nil
}

func (p *cProject) DirPath() string {
	return p.layout.dirPath
}

func (*cProject) Language() Language {
	return LanguageC
}

func (p *cProject) Build(ctx context.Context) error {
	if err := os.MkdirAll(p.layout.binDirPath, 0755); err != nil {
		return fmt.Errorf("failed to create binary directory: %w", err)
	}
	sourceFilePaths, err := p.sourceFilePaths()
	if err != nil {
		return err
	}
	if len(sourceFilePaths) == 0 {
		return errors.New("no source files found")
	}
	args := p.compileArgs(sourceFilePaths)
	p.logger.Debug("compile", zap.String("compiler", p.compiler), zap.Strings("args", args))
	stderr := bytes.NewBuffer(nil)
	if err := p.runner.Run(
		ctx,
		p.compiler,
		command.RunWithArgs(args...),
		command.RunWithEnv(app.EnvironMap(p.container)),
		command.RunWithStderr(stderr),
	); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		exitError := &exec.ExitError{}
		if errors.As(err, &exitError) {
			return fmt.Errorf("build failed:\n%s", stderr.String())
		}
		return fmt.Errorf("failed to execute compiler: %w", err)
	}
	_, err = fmt.Fprintf(p.container.Stdout(), "Build completed. Run with %s\n", displayPath(p.targetFilePath()))
	return err
}

func (p *cProject) Valgrind(ctx context.Context, options ...ValgrindOption) error {
	valgrindOptions := newValgrindOptions()
	for _, option := range options {
		option(valgrindOptions)
	}
	if err := p.Build(ctx); err != nil {
		return err
	}
	if err := os.MkdirAll(p.layout.logDirPath, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFilePath := filepath.Join(p.layout.logDirPath, valgrindLogFileName)
	args := p.valgrindArgs(logFilePath, valgrindOptions.targetArgs)
	p.logger.Debug("valgrind", zap.String("valgrind", p.valgrind), zap.Strings("args", args))
	if err := p.runner.Run(
		ctx,
		p.valgrind,
		command.RunWithArgs(args...),
		command.RunWithEnv(app.EnvironMap(p.container)),
		command.RunWithStdin(p.container.Stdin()),
		command.RunWithStdout(p.container.Stdout()),
		command.RunWithStderr(p.container.Stderr()),
	); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		exitError := &exec.ExitError{}
		if errors.As(err, &exitError) {
			return fmt.Errorf("program exited with code: %d", exitError.ExitCode())
		}
		return fmt.Errorf("failed to execute valgrind: %w", err)
	}
	if valgrindOptions.compress {
		compressedLogFilePath, err := compressFile(logFilePath)
		if err != nil {
			return fmt.Errorf("failed to compress valgrind log: %w", err)
		}
		p.logger.Debug("compressed", zap.String("path", compressedLogFilePath))
		logFilePath = compressedLogFilePath
	}
	_, err := fmt.Fprintf(p.container.Stdout(), "Valgrind completed. Check %s\n", displayPath(logFilePath))
	return err
}

func (p *cProject) Clean(context.Context) error {
	return clean(p.container.Stdout(), p.layout)
}

func (p *cProject) compileArgs(sourceFilePaths []string) []string {
	args := make([]string, 0, len(p.cflags)+len(sourceFilePaths)+len(p.libs)+3)
	args = append(args, p.cflags...)
	if p.layout.includeDirPath != "" {
		args = append(args, "-I"+p.layout.includeDirPath)
	}
	args = append(args, "-o", p.targetFilePath())
	args = append(args, sourceFilePaths...)
	return append(args, p.libs...)
}

func (p *cProject) valgrindArgs(logFilePath string, targetArgs []string) []string {
	args := make([]string, 0, len(p.valgrindFlags)+len(targetArgs)+2)
	args = append(args, p.valgrindFlags...)
	args = append(args, "--log-file="+logFilePath, p.targetFilePath())
	return append(args, targetArgs...)
}

func (p *cProject) targetFilePath() string {
	return filepath.Join(p.layout.binDirPath, p.target)
}

// sourceFilePaths returns all C sources under the source directory, sorted.
func (p *cProject) sourceFilePaths() ([]string, error) {
	var sourceFilePaths []string
	if err := filepath.WalkDir(
		p.layout.srcDirPath,
		func(path string, dirEntry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !dirEntry.IsDir() && filepath.Ext(path) == cSourceFileExt {
				sourceFilePaths = append(sourceFilePaths, path)
			}
			return nil
		},
	); err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}
	sort.Strings(sourceFilePaths)
	return sourceFilePaths, nil
}

func clean(stdout io.Writer, layout *layout) error {
	var cleaned bool
	var retErr error
	for _, dirPath := range []string{layout.binDirPath, layout.logDirPath} {
		if _, err := os.Stat(dirPath); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				retErr = multierr.Append(retErr, err)
			}
			continue
		}
		if err := os.RemoveAll(dirPath); err != nil {
			retErr = multierr.Append(retErr, fmt.Errorf("failed to remove %s: %w", displayPath(dirPath), err))
			continue
		}
		cleaned = true
	}
	if retErr != nil {
		return retErr
	}
	message := "Nothing to clean."
	if cleaned {
		message = "Clean completed."
	}
	_, err := fmt.Fprintln(stdout, message)
	return err
}
