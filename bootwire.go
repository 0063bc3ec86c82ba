// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package bootwire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kilnworks/bootwire/internal/try"
	"github.com/kilnworks/bootwire/lifecycle"
	"github.com/kilnworks/bootwire/wire"
)

// Option configures an [App].
type Option func(*App)

// Resolver sets the pattern resolution collaborator for every
// container the [App] boots.
func Resolver(r wire.Resolver) Option {
	return func(app *App) {
		app.wireOpts = append(app.wireOpts, wire.WithResolver(r))
	}
}

// Loader sets the fragment loading collaborator for every container
// the [App] boots.
func Loader(l wire.Loader) Option {
	return func(app *App) {
		app.wireOpts = append(app.wireOpts, wire.WithLoader(l))
	}
}

// Logger sets the [slog.Logger] for every container the [App] boots.
func Logger(log *slog.Logger) Option {
	return func(app *App) {
		app.wireOpts = append(app.wireOpts, wire.WithLogger(log))
	}
}

// App holds a boot function and turns it into booted containers.
// A single App may be booted any number of times; every call to
// [App.Boot] starts from a fresh [wire.Context].
type App struct {
	boot     wire.Func
	wireOpts []wire.Option
}

// New returns a fully initialized [App] around the given boot function.
func New(boot wire.Func, opts ...Option) *App {
	app := &App{
		boot: boot,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// BootError occurs when the boot function fails.
type BootError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e BootError) Error() string {
	return fmt.Sprintf("failed to boot: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e BootError) Unwrap() error {
	return e.Cause
}

// Boot builds a fresh [wire.Context], merges the given overrides into
// it left to right as initial values (later maps win over earlier
// ones), invokes the boot function and returns the wired container.
//
// The merge happens before any wiring runs, so an in-boot Set or
// Provide on an overridden key sees it as already assigned and skips.
// This is the mechanism for pre-seeding dependencies in tests; there
// are no reserved key names.
//
// Hooks registered via [lifecycle.Context.OnPostBoot] during boot run
// once the boot function returns, regardless of whether it failed or
// panicked. Panics are recovered and returned as errors.
func (app *App) Boot(ctx context.Context, overrides ...map[string]any) (_ *wire.Context, err error) {
	defer try.Recover(&err)

	merged := make(map[string]any)
	for _, override := range overrides {
		for k, v := range override {
			merged[k] = v
		}
	}

	var lc lifecycle.Context
	ctx = lifecycle.NewContext(ctx, &lc)

	opts := append([]wire.Option{wire.WithValues(merged)}, app.wireOpts...)
	c := wire.New(opts...)

	defer runPostBoot(ctx, &lc, &err)

	bootErr := app.boot(ctx, c)
	if bootErr != nil {
		return nil, BootError{Cause: bootErr}
	}
	return c, nil
}

func runPostBoot(ctx context.Context, lc *lifecycle.Context, err *error) {
	hookErr := lc.PostBoot().Run(ctx)

	// errors.Join will not return an error if both
	// *err and hookErr are nil.
	*err = errors.Join(*err, hookErr)
}
