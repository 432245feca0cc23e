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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	srcDirName     = "src"
	includeDirName = "include"
	binDirName     = "bin"
	logDirName     = "log"
	// defaultTargetName is used when the project directory has no usable base name.
	defaultTargetName = "a.out"
)

type layout struct {
	dirPath string
	// srcDirPath is dirPath/src if it is a directory, otherwise dirPath.
	srcDirPath string
	// includeDirPath is empty if dirPath/include is not a directory.
	includeDirPath string
	binDirPath     string
	logDirPath     string
}

func newLayout(dirPath string) (*layout, error) {
	fileInfo, err := os.Stat(dirPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("project directory %s does not exist", displayPath(dirPath))
		}
		return nil, err
	}
	if !fileInfo.IsDir() {
		return nil, fmt.Errorf("project path %s is not a directory", displayPath(dirPath))
	}
	srcDirPath := dirPath
	if isDir(filepath.Join(dirPath, srcDirName)) {
		srcDirPath = filepath.Join(dirPath, srcDirName)
	}
	var includeDirPath string
	if isDir(filepath.Join(dirPath, includeDirName)) {
		includeDirPath = filepath.Join(dirPath, includeDirName)
	}
	return &layout{
		dirPath:        dirPath,
		srcDirPath:     srcDirPath,
		includeDirPath: includeDirPath,
		binDirPath:     filepath.Join(dirPath, binDirName),
		logDirPath:     filepath.Join(dirPath, logDirName),
	}, nil
}

func defaultTarget(dirPath string) string {
	switch base := filepath.Base(filepath.Clean(dirPath)); base {
	case "", ".", "..", string(filepath.Separator):
		return defaultTargetName
	default:
		return base
	}
}

// displayPath returns the path as printed to the user.
//
// Relative paths are prefixed with ./ so that they can be copied into a shell.
func displayPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return "." + string(filepath.Separator) + path
}

func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	return err == nil && fileInfo.IsDir()
}
