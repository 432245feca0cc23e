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

package appflag

import (
	"context"
	"time"

	"github.com/AntonioBerna/roma/private/pkg/app"
	"github.com/AntonioBerna/roma/private/pkg/app/applog"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type builder struct {
	appName string

	logLevel  string
	logFormat string

	timeout time.Duration

	interceptors []Interceptor
}

func newBuilder(appName string, options ...BuilderOption) *builder {
	builder := &builder{
		appName: appName,
	}
	for _, option := range options {
		option(builder)
	}
	return builder
}

func (b *builder) BindRoot(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&b.logLevel, "log-level", "info", "The log level [debug,info,warn,error]")
	flagSet.StringVar(&b.logFormat, "log-format", "color", "The log format [text,color,json]")
	flagSet.DurationVar(&b.timeout, "timeout", 0, `The duration until timing out, setting it to zero means no timeout`)
}

func (b *builder) NewRunFunc(
	f func(context.Context, Container) error,
	interceptors ...Interceptor,
) func(context.Context, app.Container) error {
	allInterceptors := make([]Interceptor, 0, len(b.interceptors)+len(interceptors))
	allInterceptors = append(allInterceptors, b.interceptors...)
	interceptor := chainInterceptors(append(allInterceptors, interceptors...)...)
	return func(ctx context.Context, appContainer app.Container) error {
		if interceptor != nil {
			return b.run(ctx, appContainer, interceptor(f))
		}
		return b.run(ctx, appContainer, f)
	}
}

func (b *builder) run(
	ctx context.Context,
	appContainer app.Container,
	f func(context.Context, Container) error,
) error {
	logger, err := applog.NewLogger(appContainer.Stderr(), b.logLevel, b.logFormat)
	if err != nil {
		return err
	}
	defer func() {
		// Sync errors on stderr are not actionable, for example EINVAL on a terminal.
		_ = logger.Sync()
	}()
	container := &container{
		Container:     applog.NewContainer(appContainer, logger),
		NameContainer: newNameContainer(appContainer, b.appName),
	}
	if b.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	logger.Debug("run", zap.String("app", b.appName), zap.Strings("args", app.Args(appContainer)))
	return f(ctx, container)
}

// chainInterceptors consolidates the given interceptors into one.
// The interceptors are applied in the order they are declared.
func chainInterceptors(interceptors ...Interceptor) Interceptor {
	filtered := make([]Interceptor, 0, len(interceptors))
	for _, interceptor := range interceptors {
		if interceptor != nil {
			filtered = append(filtered, interceptor)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	default:
		first := filtered[0]
		return func(next func(context.Context, Container) error) func(context.Context, Container) error {
			for i := len(filtered) - 1; i > 0; i-- {
				next = filtered[i](next)
			}
			return first(next)
		}
	}
}
