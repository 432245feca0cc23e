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

//go:build !windows

package app

import (
	"errors"
	"path/filepath"
)

// HomeDirPath returns the home directory path.
//
// This will be $HOME for darwin and linux.
// This will be %USERPROFILE% for windows.
func HomeDirPath(envContainer EnvContainer) (string, error) {
	if value := envContainer.Env("HOME"); value != "" {
		return value, nil
	}
	return "", errors.New("$HOME is not set")
}

// ConfigDirPath returns the config directory path.
//
// This will be $XDG_CONFIG_HOME for darwin and linux, falling back to $HOME/.config.
// This will be %AppData% for windows.
func ConfigDirPath(envContainer EnvContainer) (string, error) {
	if value := envContainer.Env("XDG_CONFIG_HOME"); value != "" {
		return value, nil
	}
	home, err := HomeDirPath(envContainer)
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}
