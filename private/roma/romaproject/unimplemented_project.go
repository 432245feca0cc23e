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
	"context"
	"fmt"
)

// unimplementedProject is a Project for a language without a toolchain yet.
type unimplementedProject struct {
	dirPath  string
	language Language
}

func newUnimplementedProject(dirPath string, language Language) *unimplementedProject {
	return &unimplementedProject{
		dirPath:  dirPath,
		language: language,
	}
}

func (p *unimplementedProject) DirPath() string {
	return p.dirPath
}

func (p *unimplementedProject) Language() Language {
	return p.language
}

func (p *unimplementedProject) Build(context.Context) error {
	return p.newNotImplementedError()
}

func (p *unimplementedProject) Valgrind(context.Context, ...ValgrindOption) error {
	return p.newNotImplementedError()
}

func (p *unimplementedProject) Clean(context.Context) error {
	return p.newNotImplementedError()
}

func (p *unimplementedProject) newNotImplementedError() error {
	return fmt.Errorf("%s support is not implemented yet", p.language)
}
