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

// Package printargs implements the print-args program.
//
// print-args echoes its own argument vector. It takes no flags: every
// argument, including ones that look like flags, is reported verbatim.
package printargs

import (
	"context"

	"github.com/AntonioBerna/roma/private/pkg/app"
	"github.com/AntonioBerna/roma/private/roma/argreport"
)

// Main is the main.
func Main() {
	app.Main(context.Background(), Run)
}

// Run reports the arguments of container to its stdout.
func Run(_ context.Context, container app.Container) error {
	return argreport.Report(container.Stdout(), container)
}
