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
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/AntonioBerna/roma/private/pkg/app"
	"github.com/AntonioBerna/roma/private/pkg/command"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLanguage(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		value    string
		expected Language
	}{
		{"c", LanguageC},
		{"C", LanguageC},
		{"asm", LanguageAsm},
		{" cpp ", LanguageCpp},
	}
	for _, testCase := range testCases {
		language, err := ParseLanguage(testCase.value)
		require.NoError(t, err, testCase.value)
		assert.Equal(t, testCase.expected, language, testCase.value)
	}
	_, err := ParseLanguage("rust")
	assert.EqualError(t, err, `unknown language "rust", must be one of "c", "asm", or "cpp"`)
}

func TestLanguageString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "C", LanguageC.String())
	assert.Equal(t, "Assembly", LanguageAsm.String())
	assert.Equal(t, "C++", LanguageCpp.String())
	assert.Equal(t, "Language(0)", Language(0).String())
	assert.Equal(t, []string{"c", "asm", "cpp"}, AllLanguageFlagValues())
}

func TestDefaultTarget(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "hello", defaultTarget("hello"))
	assert.Equal(t, "hello", defaultTarget("projects/hello/"))
	assert.Equal(t, "a.out", defaultTarget("."))
	assert.Equal(t, "a.out", defaultTarget(""))
	assert.Equal(t, "a.out", defaultTarget(".."))
	if runtime.GOOS != "windows" {
		assert.Equal(t, "a.out", defaultTarget("/"))
	}
}

func TestDisplayPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "."+string(filepath.Separator)+filepath.Join("hello", "bin"), displayPath(filepath.Join("hello", "bin")))
	absPath, err := filepath.Abs("hello")
	require.NoError(t, err)
	assert.Equal(t, absPath, displayPath(absPath))
}

func TestLayout(t *testing.T) {
	t.Parallel()
	dirPath := t.TempDir()
	layout, err := newLayout(dirPath)
	require.NoError(t, err)
	assert.Equal(t, dirPath, layout.srcDirPath)
	assert.Empty(t, layout.includeDirPath)
	assert.Equal(t, filepath.Join(dirPath, "bin"), layout.binDirPath)
	assert.Equal(t, filepath.Join(dirPath, "log"), layout.logDirPath)

	require.NoError(t, os.Mkdir(filepath.Join(dirPath, "src"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(dirPath, "include"), 0755))
	layout, err = newLayout(dirPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dirPath, "src"), layout.srcDirPath)
	assert.Equal(t, filepath.Join(dirPath, "include"), layout.includeDirPath)

	_, err = newLayout(filepath.Join(dirPath, "missing"))
	assert.ErrorContains(t, err, "does not exist")
	filePath := filepath.Join(dirPath, "file.c")
	writeFile(t, filePath, "")
	_, err = newLayout(filePath)
	assert.ErrorContains(t, err, "is not a directory")
}

func TestCompileArgs(t *testing.T) {
	t.Parallel()
	dirPath := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dirPath, "include"), 0755))
	project := newTestCProject(t, nil, dirPath, ProjectWithTarget("hello"))
	assert.Equal(
		t,
		[]string{
			"-Wall", "-Wextra", "-Werror", "-Wpedantic", "-g",
			"-I" + filepath.Join(dirPath, "include"),
			"-o", filepath.Join(dirPath, "bin", "hello"),
			"a.c", "b.c",
			"-lm", "-lpthread",
		},
		project.compileArgs([]string{"a.c", "b.c"}),
	)
	project = newTestCProject(
		t,
		nil,
		t.TempDir(),
		ProjectWithTarget("hello"),
		ProjectWithCFlags([]string{}),
		ProjectWithLibs([]string{"-lz"}),
	)
	assert.Equal(
		t,
		[]string{
			"-o", filepath.Join(project.layout.binDirPath, "hello"),
			"a.c",
			"-lz",
		},
		project.compileArgs([]string{"a.c"}),
	)
}

func TestValgrindArgs(t *testing.T) {
	t.Parallel()
	dirPath := t.TempDir()
	project := newTestCProject(t, nil, dirPath, ProjectWithTarget("hello"))
	assert.Equal(
		t,
		[]string{
			"--leak-check=full",
			"--show-leak-kinds=all",
			"--log-file=log/valgrind.txt",
			filepath.Join(dirPath, "bin", "hello"),
			"--verbose",
			"input.txt",
		},
		project.valgrindArgs("log/valgrind.txt", []string{"--verbose", "input.txt"}),
	)
}

func TestSourceFilePaths(t *testing.T) {
	t.Parallel()
	dirPath := t.TempDir()
	writeFile(t, filepath.Join(dirPath, "src", "main.c"), "")
	writeFile(t, filepath.Join(dirPath, "src", "util", "util.c"), "")
	writeFile(t, filepath.Join(dirPath, "src", "util", "util.h"), "")
	writeFile(t, filepath.Join(dirPath, "src", "a.c"), "")
	writeFile(t, filepath.Join(dirPath, "notes.c"), "")
	project := newTestCProject(t, nil, dirPath)
	sourceFilePaths, err := project.sourceFilePaths()
	require.NoError(t, err)
	assert.Equal(
		t,
		[]string{
			filepath.Join(dirPath, "src", "a.c"),
			filepath.Join(dirPath, "src", "main.c"),
			filepath.Join(dirPath, "src", "util", "util.c"),
		},
		sourceFilePaths,
	)
}

func TestBuildNoSources(t *testing.T) {
	t.Parallel()
	dirPath := t.TempDir()
	project := newTestCProject(t, nil, dirPath)
	err := project.Build(context.Background())
	assert.EqualError(t, err, "no source files found")
	assert.DirExists(t, filepath.Join(dirPath, "bin"))
}

func TestBuildSuccess(t *testing.T) {
	t.Parallel()
	truePath := lookPathOrSkip(t, "true")
	dirPath := t.TempDir()
	writeFile(t, filepath.Join(dirPath, "main.c"), "int main(void) { return 0; }\n")
	stdout := bytes.NewBuffer(nil)
	project := newTestCProject(t, stdout, dirPath, ProjectWithCompiler(truePath), ProjectWithTarget("hello"))
	require.NoError(t, project.Build(context.Background()))
	assert.Equal(t, "Build completed. Run with "+filepath.Join(dirPath, "bin", "hello")+"\n", stdout.String())
}

func TestBuildCompilerFailure(t *testing.T) {
	t.Parallel()
	falsePath := lookPathOrSkip(t, "false")
	dirPath := t.TempDir()
	writeFile(t, filepath.Join(dirPath, "main.c"), "")
	stdout := bytes.NewBuffer(nil)
	project := newTestCProject(t, stdout, dirPath, ProjectWithCompiler(falsePath))
	err := project.Build(context.Background())
	assert.EqualError(t, err, "build failed:\n")
	assert.Empty(t, stdout.String())
}

func TestBuildCompilerMissing(t *testing.T) {
	t.Parallel()
	dirPath := t.TempDir()
	writeFile(t, filepath.Join(dirPath, "main.c"), "")
	project := newTestCProject(t, nil, dirPath, ProjectWithCompiler(filepath.Join(dirPath, "no-such-compiler")))
	err := project.Build(context.Background())
	assert.ErrorContains(t, err, "failed to execute compiler: ")
}

func TestBuildCancelled(t *testing.T) {
	t.Parallel()
	truePath := lookPathOrSkip(t, "true")
	dirPath := t.TempDir()
	writeFile(t, filepath.Join(dirPath, "main.c"), "")
	project := newTestCProject(t, nil, dirPath, ProjectWithCompiler(truePath))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, project.Build(ctx), context.Canceled)
}

func TestValgrindSuccess(t *testing.T) {
	t.Parallel()
	truePath := lookPathOrSkip(t, "true")
	dirPath := t.TempDir()
	writeFile(t, filepath.Join(dirPath, "main.c"), "")
	stdout := bytes.NewBuffer(nil)
	project := newTestCProject(
		t,
		stdout,
		dirPath,
		ProjectWithCompiler(truePath),
		ProjectWithValgrind(truePath),
		ProjectWithTarget("hello"),
	)
	require.NoError(t, project.Valgrind(context.Background()))
	assert.Equal(
		t,
		"Build completed. Run with "+filepath.Join(dirPath, "bin", "hello")+"\n"+
			"Valgrind completed. Check "+filepath.Join(dirPath, "log", "valgrind.txt")+"\n",
		stdout.String(),
	)
	assert.DirExists(t, filepath.Join(dirPath, "log"))
}

func TestValgrindProgramFailure(t *testing.T) {
	t.Parallel()
	truePath := lookPathOrSkip(t, "true")
	falsePath := lookPathOrSkip(t, "false")
	dirPath := t.TempDir()
	writeFile(t, filepath.Join(dirPath, "main.c"), "")
	project := newTestCProject(t, nil, dirPath, ProjectWithCompiler(truePath), ProjectWithValgrind(falsePath))
	assert.EqualError(t, project.Valgrind(context.Background()), "program exited with code: 1")
}

func TestValgrindBuildFailure(t *testing.T) {
	t.Parallel()
	truePath := lookPathOrSkip(t, "true")
	dirPath := t.TempDir()
	project := newTestCProject(t, nil, dirPath, ProjectWithValgrind(truePath))
	assert.EqualError(t, project.Valgrind(context.Background()), "no source files found")
	assert.NoDirExists(t, filepath.Join(dirPath, "log"))
}

func TestClean(t *testing.T) {
	t.Parallel()
	dirPath := t.TempDir()
	writeFile(t, filepath.Join(dirPath, "bin", "hello"), "binary")
	writeFile(t, filepath.Join(dirPath, "log", "valgrind.txt"), "log")
	writeFile(t, filepath.Join(dirPath, "main.c"), "")
	stdout := bytes.NewBuffer(nil)
	project := newTestCProject(t, stdout, dirPath)
	require.NoError(t, project.Clean(context.Background()))
	assert.Equal(t, "Clean completed.\n", stdout.String())
	assert.NoDirExists(t, filepath.Join(dirPath, "bin"))
	assert.NoDirExists(t, filepath.Join(dirPath, "log"))
	assert.FileExists(t, filepath.Join(dirPath, "main.c"))

	stdout.Reset()
	require.NoError(t, project.Clean(context.Background()))
	assert.Equal(t, "Nothing to clean.\n", stdout.String())
}

func TestCompressFile(t *testing.T) {
	t.Parallel()
	dirPath := t.TempDir()
	filePath := filepath.Join(dirPath, "valgrind.txt")
	content := bytes.Repeat([]byte("==1== All heap blocks were freed -- no leaks are possible\n"), 100)
	writeFile(t, filePath, string(content))
	compressedFilePath, err := compressFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, filePath+".zst", compressedFilePath)
	assert.NoFileExists(t, filePath)

	compressedFile, err := os.Open(compressedFilePath)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, compressedFile.Close()) })
	decoder, err := zstd.NewReader(compressedFile)
	require.NoError(t, err)
	t.Cleanup(decoder.Close)
	decompressed, err := io.ReadAll(decoder)
	require.NoError(t, err)
	assert.Equal(t, content, decompressed)
}

func TestCompressFileMissing(t *testing.T) {
	t.Parallel()
	dirPath := t.TempDir()
	_, err := compressFile(filepath.Join(dirPath, "valgrind.txt"))
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dirPath, "valgrind.txt.zst"))
}

func TestUnimplementedLanguages(t *testing.T) {
	t.Parallel()
	for _, language := range []Language{LanguageAsm, LanguageCpp} {
		project, err := NewProject(zap.NewNop(), newTestContainer(nil), command.NewRunner(), "anything", language)
		require.NoError(t, err)
		assert.Equal(t, language, project.Language())
		assert.Equal(t, "anything", project.DirPath())
		expected := language.String() + " support is not implemented yet"
		assert.EqualError(t, project.Build(context.Background()), expected)
		assert.EqualError(t, project.Valgrind(context.Background()), expected)
		assert.EqualError(t, project.Clean(context.Background()), expected)
	}
	_, err := NewProject(zap.NewNop(), newTestContainer(nil), command.NewRunner(), "anything", Language(0))
	assert.ErrorContains(t, err, "system error")
}

func TestBuildAndValgrindWithToolchain(t *testing.T) {
	t.Parallel()
	if runtime.GOOS != "linux" {
		t.Skip("valgrind requires linux")
	}
	gccPath := lookPathOrSkip(t, "gcc")
	valgrindPath := lookPathOrSkip(t, "valgrind")
	dirPath := t.TempDir()
	writeFile(
		t,
		filepath.Join(dirPath, "include", "greet.h"),
		"#ifndef GREET_H\n#define GREET_H\nint greet(void);\n#endif\n",
	)
	writeFile(
		t,
		filepath.Join(dirPath, "src", "greet.c"),
		"#include <stdio.h>\n#include \"greet.h\"\nint greet(void) { return puts(\"hi\") < 0; }\n",
	)
	writeFile(
		t,
		filepath.Join(dirPath, "src", "main.c"),
		"#include \"greet.h\"\nint main(void) { return greet(); }\n",
	)
	stdout := bytes.NewBuffer(nil)
	project := newTestCProject(
		t,
		stdout,
		dirPath,
		ProjectWithCompiler(gccPath),
		ProjectWithValgrind(valgrindPath),
	)
	require.NoError(t, project.Valgrind(context.Background(), ValgrindWithCompress(true)))
	assert.FileExists(t, filepath.Join(dirPath, "bin", filepath.Base(dirPath)))
	assert.FileExists(t, filepath.Join(dirPath, "log", "valgrind.txt.zst"))
	assert.NoFileExists(t, filepath.Join(dirPath, "log", "valgrind.txt"))
	assert.Contains(t, stdout.String(), "hi\n")
	assert.Contains(t, stdout.String(), "Valgrind completed. Check "+filepath.Join(dirPath, "log", "valgrind.txt.zst")+"\n")
}

func newTestCProject(t *testing.T, stdout io.Writer, dirPath string, options ...ProjectOption) *cProject {
	project, err := newCProject(zap.NewNop(), newTestContainer(stdout), command.NewRunner(), dirPath, options...)
	require.NoError(t, err)
	return project
}

func newTestContainer(stdout io.Writer) app.EnvStdioContainer {
	return app.NewContainer(
		map[string]string{
			"PATH": os.Getenv("PATH"),
		},
		nil,
		stdout,
		nil,
	)
}

func writeFile(t *testing.T, path string, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func lookPathOrSkip(t *testing.T, name string) string {
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not found", name)
	}
	return path
}
