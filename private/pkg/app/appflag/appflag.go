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

// Package appflag contains functionality to work with flags.
package appflag

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AntonioBerna/roma/private/pkg/app"
	"github.com/AntonioBerna/roma/private/pkg/app/applog"
	"github.com/AntonioBerna/roma/private/pkg/encoding"
	"github.com/spf13/pflag"
)

const configFileName = "config.yaml"

// NameContainer is a container for named applications.
//
// Application name foo-bar translates to environment variable prefix FOO_BAR_.
type NameContainer interface {
	// AppName is the application name.
	AppName() string
	// ConfigDirPath is the config directory path for the named application.
	//
	// First checks for $APP_NAME_CONFIG_DIR.
	// If this is not set, uses app.ConfigDirPath()/app-name.
	// Returns empty if neither can be determined.
	ConfigDirPath() string
}

// Container contains not just the base app container, but all extended containers.
type Container interface {
	applog.Container
	NameContainer
}

// Interceptor intercepts and adapts the request or response of run functions.
type Interceptor func(func(context.Context, Container) error) func(context.Context, Container) error

// Builder builds run functions.
type Builder interface {
	BindRoot(flagSet *pflag.FlagSet)
	NewRunFunc(
		f func(context.Context, Container) error,
		interceptors ...Interceptor,
	) func(context.Context, app.Container) error
}

// NewBuilder returns a new Builder.
func NewBuilder(appName string, options ...BuilderOption) Builder {
	return newBuilder(appName, options...)
}

// BuilderOption is an option for a new Builder
type BuilderOption func(*builder)

// BuilderWithInterceptor adds the given interceptor for all run functions.
func BuilderWithInterceptor(interceptor Interceptor) BuilderOption {
	return func(builder *builder) {
		builder.interceptors = append(builder.interceptors, interceptor)
	}
}

// ReadConfig reads the configuration from the YAML configuration file config.yaml
// in the configuration directory.
//
// If the file does not exist, this is a no-op.
// The value should be a pointer to unmarshal into.
func ReadConfig(container NameContainer, value interface{}) error {
	configDirPath := container.ConfigDirPath()
	if configDirPath == "" {
		return nil
	}
	configFilePath := filepath.Join(configDirPath, configFileName)
	data, err := os.ReadFile(configFilePath)
	if !errors.Is(err, os.ErrNotExist) {
		if err != nil {
			return fmt.Errorf("could not read %s configuration file at %s: %w", container.AppName(), configFilePath, err)
		}
		if err := encoding.UnmarshalYAMLStrict(data, value); err != nil {
			return fmt.Errorf("invalid %s configuration file: %w", container.AppName(), err)
		}
	}
	return nil
}

type nameContainer struct {
	app.EnvContainer
	appName       string
	configDirPath string
}

func newNameContainer(envContainer app.EnvContainer, appName string) *nameContainer {
	return &nameContainer{
		EnvContainer:  envContainer,
		appName:       appName,
		configDirPath: getConfigDirPath(envContainer, appName),
	}
}

func (c *nameContainer) AppName() string {
	return c.appName
}

func (c *nameContainer) ConfigDirPath() string {
	return c.configDirPath
}

func getConfigDirPath(envContainer app.EnvContainer, appName string) string {
	if value := envContainer.Env(getAppNameEnvPrefix(appName) + "CONFIG_DIR"); value != "" {
		return value
	}
	configDirPath, err := app.ConfigDirPath(envContainer)
	if err != nil {
		return ""
	}
	return filepath.Join(configDirPath, appName)
}

func getAppNameEnvPrefix(appName string) string {
	return strings.ToUpper(strings.ReplaceAll(appName, "-", "_")) + "_"
}

type container struct {
	applog.Container
	NameContainer
}
