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

package printargs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/AntonioBerna/roma/private/pkg/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()
	testRun(
		t,
		"Number of arguments: 3\nProgram name: prog\nArguments:\n  1: a\n  2: b\n",
		"prog", "a", "b",
	)
	testRun(
		t,
		"Number of arguments: 1\nProgram name: print-args\nArguments:\n",
		"print-args",
	)
}

func TestRunDoesNotInterpretFlags(t *testing.T) {
	t.Parallel()
	testRun(
		t,
		"Number of arguments: 4\nProgram name: prog\nArguments:\n  1: --help\n  2: -h\n  3: --version\n",
		"prog", "--help", "-h", "--version",
	)
}

func TestRunIgnoresEnvAndStdin(t *testing.T) {
	t.Parallel()
	stdout := bytes.NewBuffer(nil)
	stderr := bytes.NewBuffer(nil)
	stdin := bytes.NewBufferString("ignored")
	container := app.NewContainer(
		map[string]string{"ROMA_CONFIG_DIR": "/nonexistent"},
		stdin,
		stdout,
		stderr,
		"prog",
		"x",
	)
	require.NoError(t, app.Run(context.Background(), container, Run))
	assert.Equal(t, "Number of arguments: 2\nProgram name: prog\nArguments:\n  1: x\n", stdout.String())
	assert.Empty(t, stderr.String())
	assert.Equal(t, "ignored", stdin.String())
}

func TestRunStdoutFailure(t *testing.T) {
	t.Parallel()
	stderr := bytes.NewBuffer(nil)
	container := app.NewContainer(nil, nil, errorWriter{}, stderr, "prog")
	err := app.Run(context.Background(), container, Run)
	require.Error(t, err)
	assert.Equal(t, 1, app.GetExitCode(err))
	assert.Equal(t, "broken pipe\n", stderr.String())
}

func testRun(t *testing.T, expectedStdout string, args ...string) {
	t.Helper()
	stdout := bytes.NewBuffer(nil)
	stderr := bytes.NewBuffer(nil)
	container := app.NewContainer(nil, nil, stdout, stderr, args...)
	err := app.Run(context.Background(), container, Run)
	require.NoError(t, err)
	assert.Equal(t, 0, app.GetExitCode(err))
	assert.Equal(t, expectedStdout, stdout.String())
	assert.Empty(t, stderr.String())
}

type errorWriter struct{}

func (errorWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}
