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

package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvContainer(t *testing.T) {
	t.Parallel()
	envContainer := NewEnvContainer(
		map[string]string{
			"foo1": "bar1",
			"foo2": "bar2",
			"foo3": "",
		},
	)
	assert.Equal(t, "bar1", envContainer.Env("foo1"))
	assert.Equal(t, "bar2", envContainer.Env("foo2"))
	assert.Equal(t, "", envContainer.Env("foo3"))
	assert.Equal(
		t,
		[]string{
			"foo1=bar1",
			"foo2=bar2",
		},
		Environ(envContainer),
	)
	assert.Equal(
		t,
		map[string]string{
			"foo1": "bar1",
			"foo2": "bar2",
		},
		EnvironMap(envContainer),
	)

	envContainer, err := newEnvContainerForEnviron(
		[]string{
			"foo1=bar1",
			"foo2=bar2",
			"foo3=bar3",
			"foo4=",
		},
	)
	require.NoError(t, err)
	assert.Equal(t, "bar3", envContainer.Env("foo3"))
	assert.Equal(t, "", envContainer.Env("foo4"))

	envContainer = NewEnvContainerWithOverrides(
		envContainer,
		map[string]string{
			"foo1": "",
			"foo2": "baz2",
		},
	)
	assert.Equal(
		t,
		[]string{
			"foo2=baz2",
			"foo3=bar3",
		},
		Environ(envContainer),
	)

	_, err = newEnvContainerForEnviron(
		[]string{
			"foo1=bar1",
			"foo3",
		},
	)
	require.Error(t, err)
}

func TestArgContainer(t *testing.T) {
	t.Parallel()
	args := []string{"foo", "bar", "baz"}
	assert.Equal(t, args, Args(NewArgContainer(args...)))
	assert.Empty(t, Args(NewArgContainer()))
}

func TestContainerForArgs(t *testing.T) {
	t.Parallel()
	stdout := bytes.NewBuffer(nil)
	container := NewContainer(
		map[string]string{"KEY": "VALUE"},
		nil,
		stdout,
		nil,
		"prog",
		"one",
	)
	container = NewContainerForArgs(container, "two", "three")
	assert.Equal(t, []string{"two", "three"}, Args(container))
	assert.Equal(t, "VALUE", container.Env("KEY"))
	_, err := container.Stdout().Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", stdout.String())
}

func TestRunPrintsErrorToStderr(t *testing.T) {
	t.Parallel()
	stdout := bytes.NewBuffer(nil)
	stderr := bytes.NewBuffer(nil)
	err := Run(
		context.Background(),
		NewContainer(nil, nil, stdout, stderr, "prog"),
		func(context.Context, Container) error {
			return NewError(3, "boom")
		},
	)
	require.Error(t, err)
	assert.Equal(t, 3, GetExitCode(err))
	assert.Empty(t, stdout.String())
	assert.Equal(t, "boom\n", stderr.String())
}

func TestGetExitCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, GetExitCode(nil))
	assert.Equal(t, 1, GetExitCode(errors.New("foo")))
	assert.Equal(t, 5, GetExitCode(NewErrorf(5, "foo %d", 1)))
	// exit code 0 is not a valid error exit code
	err := NewError(0, "foo")
	assert.Equal(t, 1, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid exit code 0")
}

func TestConfigDirPathFromEnv(t *testing.T) {
	t.Parallel()
	_, err := ConfigDirPath(NewEnvContainer(nil))
	assert.Error(t, err)
}
