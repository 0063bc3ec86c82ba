// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package lifecycle provides helpers for defining actions to execute
// relative to a boot procedure.
package lifecycle

import (
	"context"
	"errors"
)

// Hook represents functionality that needs to be performed at a
// specific "time" relative to a boot procedure.
type Hook interface {
	Run(context.Context) error
}

// HookFunc is a func variant of the [Hook] interface.
type HookFunc func(context.Context) error

// Run implements the [Hook] interface.
func (f HookFunc) Run(ctx context.Context) error {
	return f(ctx)
}

type multiHook []Hook

func (mh multiHook) Run(ctx context.Context) error {
	errs := make([]error, 0, len(mh))
	for _, h := range mh {
		err := h.Run(ctx)
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

// MultiHook returns a [Hook] that's the logical concatenation of the
// provided [Hook]s. They're applied sequentially and every hook runs
// regardless of earlier failures.
func MultiHook(hooks ...Hook) Hook {
	return multiHook(hooks)
}

// Context collects hooks registered by wiring fragments during boot.
type Context struct {
	postBoots multiHook
}

// PostBoot returns the [Hook] which is meant to be executed after the
// boot function returns.
func (c *Context) PostBoot() Hook {
	return c.postBoots
}

// OnPostBoot registers the given [Hook] to be executed after the boot
// function returns. This can be called multiple times; the hooks are
// composed into the single [Hook] returned by [Context.PostBoot].
func (c *Context) OnPostBoot(hook Hook) {
	c.postBoots = append(c.postBoots, hook)
}

type key struct{}

var contextKey = &key{}

// NewContext returns a new [context.Context] containing the lifecycle [Context].
func NewContext(parent context.Context, c *Context) context.Context {
	return context.WithValue(parent, contextKey, c)
}

// FromContext extracts the lifecycle [Context], if any, from the
// given [context.Context].
func FromContext(ctx context.Context) (*Context, bool) {
	c, ok := ctx.Value(contextKey).(*Context)
	return c, ok
}
