// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package wire

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Func is the wiring function contract. Every boot fragment, whether
// passed to [Context.Run] directly or discovered via [Context.Discover],
// receives the shared [Context] and may freely read and assign keys on it.
type Func func(context.Context, *Context) error

// Factory produces the value for a key on behalf of [Context.Provide].
// It receives the container so it can read previously assigned keys.
type Factory func(context.Context, *Context) (any, error)

// Option configures a [Context].
type Option func(*Context)

// WithResolver sets the pattern resolution collaborator used by [Context.Discover].
func WithResolver(r Resolver) Option {
	return func(c *Context) {
		c.resolver = r
	}
}

// WithLoader sets the fragment loading collaborator used by [Context.Discover].
func WithLoader(l Loader) Option {
	return func(c *Context) {
		c.loader = l
	}
}

// WithLogger sets the [slog.Logger] used for debug logging of
// container activity.
func WithLogger(log *slog.Logger) Option {
	return func(c *Context) {
		c.log = log
	}
}

// WithValues merges the given values directly into the container
// before it is returned by [New]. Later options win over earlier
// ones. Since this happens before any wiring runs, subsequent Set
// or Provide calls for the same keys see them as already assigned
// and skip, which is the mechanism for pre-seeding dependencies
// in tests.
func WithValues(values map[string]any) Option {
	return func(c *Context) {
		for k, v := range values {
			c.values[k] = v
		}
	}
}

// Context is the shared, mutable, set-once key value container passed
// through an entire boot procedure. It is safe for use from multiple
// goroutines; the set-once rule guarantees that even racing writers
// observe a single deterministic winner per key.
type Context struct {
	resolver Resolver
	loader   Loader
	log      *slog.Logger

	mu      sync.Mutex
	values  map[string]any
	signals map[string]*Signal
	loaded  map[string]struct{}
}

// New returns a fully initialized [Context].
func New(opts ...Option) *Context {
	c := &Context{
		log:     slog.Default(),
		values:  make(map[string]any),
		signals: make(map[string]*Signal),
		loaded:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// signalLocked returns the key's signal, lazily creating it.
// Callers must hold c.mu.
func (c *Context) signalLocked(key string) *Signal {
	sig, ok := c.signals[key]
	if !ok {
		sig = NewSignal()
		c.signals[key] = sig
	}
	return sig
}

func (c *Context) setLocked(key string, value any) {
	sig := c.signalLocked(key)

	cur, ok := c.values[key]
	if ok {
		// First write wins. Fulfilling with the existing value
		// covers keys that were merged in as initial values and
		// never went through an assignment.
		sig.Fulfill(cur)
		return
	}

	c.values[key] = value
	sig.Fulfill(value)
}

// Set assigns value to key unless key is already assigned, in which
// case it does nothing. Either way the key's signal ends up fulfilled
// so later [Context.WaitFor] calls resolve immediately.
func (c *Context) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

// SetAll is [Context.Set] for every entry of values.
func (c *Context) SetAll(values map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range values {
		c.setLocked(k, v)
	}
}

// ProvideError occurs when a [Factory] given to [Context.Provide] fails.
type ProvideError struct {
	Key   string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ProvideError) Error() string {
	return fmt.Sprintf("failed to provide %q: %s", e.Key, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ProvideError) Unwrap() error {
	return e.Cause
}

// Provide assigns the value produced by factory to key. If key is
// already assigned, Provide returns immediately and factory is never
// invoked. Provide returns only after the assignment has happened,
// so downstream code may rely on the key being readable.
//
// If factory fails the error is returned to the caller wrapped in a
// [ProvideError], the key stays unassigned and its signal stays
// pending. Waiters on the key are deliberately not woken with the
// failure; the boot attempt as a whole is expected to abort through
// the caller.
func (c *Context) Provide(ctx context.Context, key string, factory Factory) error {
	c.mu.Lock()
	c.signalLocked(key)
	_, ok := c.values[key]
	c.mu.Unlock()
	if ok {
		return nil
	}

	v, err := factory(ctx, c)
	if err != nil {
		return ProvideError{Key: key, Cause: err}
	}

	c.log.DebugContext(ctx, "provided key", slog.String("key", key))

	c.Set(key, v)
	return nil
}

// Run invokes each [Func], in order, with the container. Each function
// runs to completion before the next begins. The first failure aborts
// the sequence and is returned; the remaining functions never run.
func (c *Context) Run(ctx context.Context, fns ...Func) error {
	for _, fn := range fns {
		err := fn(ctx, c)
		if err != nil {
			return err
		}
	}
	return nil
}

// WaitFor blocks until every listed key has been assigned or ctx is
// cancelled. There is no implicit timeout; waiting on a key nothing
// ever assigns blocks until ctx cancellation. Keys already assigned,
// including ones merged in as initial values, never block.
func (c *Context) WaitFor(ctx context.Context, keys ...string) error {
	sigs := make([]*Signal, len(keys))

	c.mu.Lock()
	for i, key := range keys {
		sig := c.signalLocked(key)
		if v, ok := c.values[key]; ok {
			sig.Fulfill(v)
		}
		sigs[i] = sig
	}
	c.mu.Unlock()

	for i, sig := range sigs {
		_, err := sig.Wait(ctx)
		if err != nil {
			return fmt.Errorf("waiting for %q: %w", keys[i], err)
		}
	}
	return nil
}

// Get returns the value at the dotted keyPath, or nil if any segment
// is missing. See [Context.GetOK].
func (c *Context) Get(keyPath string) any {
	v, _ := c.GetOK(keyPath)
	return v
}

// GetOr returns the value at the dotted keyPath, or def if any
// segment is missing.
func (c *Context) GetOr(keyPath string, def any) any {
	v, ok := c.GetOK(keyPath)
	if !ok {
		return def
	}
	return v
}

// GetOK looks up a dotted keyPath e.g. "db.pool.size". The first
// segment is a container key; the remaining segments traverse nested
// map[string]any values. GetOK is a plain read and never interacts
// with key signals.
func (c *Context) GetOK(keyPath string) (any, bool) {
	segments := strings.Split(keyPath, ".")

	c.mu.Lock()
	v, ok := c.values[segments[0]]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	for _, seg := range segments[1:] {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return v, true
}

// Loaded reports whether the given fragment identity has already been
// processed by [Context.Discover] on this container.
func (c *Context) Loaded(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.loaded[path]
	return ok
}

// markLoaded records path as processed. It reports false if path was
// already recorded.
func (c *Context) markLoaded(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.loaded[path]; ok {
		return false
	}
	c.loaded[path] = struct{}{}
	return true
}
