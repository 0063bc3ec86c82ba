// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package registry maps slash separated fragment identities to wiring
// functions. In a compiled program there is nothing to load from disk
// at boot time, so fragments register themselves, typically from init
// functions, under paths that mirror the source layout. A [Registry]
// then serves as both the [wire.Loader] and the [wire.Resolver] for
// [wire.Context.Discover].
package registry

import (
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/kilnworks/bootwire/wire"

	"github.com/bmatcuk/doublestar/v4"
)

// AlreadyRegisteredError occurs when a fragment identity is registered twice.
type AlreadyRegisteredError struct {
	Path string
}

// Error implements the [builtin.error] interface.
func (e AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("fragment already registered for %q", e.Path)
}

// NotRegisteredError occurs when loading an identity no fragment was
// registered under.
type NotRegisteredError struct {
	Path string
}

// Error implements the [builtin.error] interface.
func (e NotRegisteredError) Error() string {
	return fmt.Sprintf("no fragment registered for %q", e.Path)
}

// PatternError occurs when a resolve pattern is malformed.
type PatternError struct {
	Pattern string
	Cause   error
}

// Error implements the [builtin.error] interface.
func (e PatternError) Error() string {
	return fmt.Sprintf("malformed pattern %q: %s", e.Pattern, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e PatternError) Unwrap() error {
	return e.Cause
}

// Registry holds registered wiring fragments keyed by identity.
// It implements both [wire.Loader] and [wire.Resolver]. The zero
// value is not usable; use [New].
type Registry struct {
	mu    sync.RWMutex
	fns   map[string]wire.Func
	order []string
}

// New returns an empty [Registry].
func New() *Registry {
	return &Registry{
		fns: make(map[string]wire.Func),
	}
}

// Register records fn under the cleaned identity p. Registering the
// same identity twice, or a nil fn, is an error.
func (r *Registry) Register(p string, fn wire.Func) error {
	if fn == nil {
		return fmt.Errorf("nil fragment for %q", p)
	}

	p = path.Clean(p)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.fns[p]; ok {
		return AlreadyRegisteredError{Path: p}
	}
	r.fns[p] = fn
	r.order = append(r.order, p)
	return nil
}

// MustRegister is [Registry.Register] but panics on error. It is meant
// for use from init functions.
func (r *Registry) MustRegister(p string, fn wire.Func) {
	err := r.Register(p, fn)
	if err != nil {
		panic(err)
	}
}

// Load implements the [wire.Loader] interface.
func (r *Registry) Load(p string) (wire.Func, error) {
	p = path.Clean(p)

	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.fns[p]
	if !ok {
		return nil, NotRegisteredError{Path: p}
	}
	return fn, nil
}

// Resolve implements the [wire.Resolver] interface. It matches the
// given patterns against every registered identity under dir and
// returns the matches relative to dir, in registration order.
func (r *Registry) Resolve(dir string, patterns ...string) ([]string, error) {
	dir = path.Clean(dir)

	r.mu.RLock()
	order := slices.Clone(r.order)
	r.mu.RUnlock()

	var matches []string
	for _, id := range order {
		rel, ok := relativeTo(dir, id)
		if !ok {
			continue
		}

		for _, pattern := range patterns {
			matched, err := doublestar.Match(pattern, rel)
			if err != nil {
				return nil, PatternError{Pattern: pattern, Cause: err}
			}
			if matched {
				matches = append(matches, rel)
				break
			}
		}
	}
	return matches, nil
}

// Paths returns every registered identity, in registration order.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

func relativeTo(dir, id string) (string, bool) {
	if dir == "." {
		return id, true
	}
	rel, ok := strings.CutPrefix(id, dir+"/")
	if !ok {
		return "", false
	}
	return rel, true
}

var defaultRegistry = New()

// Default returns the process wide [Registry] used by the package
// level [Register] and [MustRegister].
func Default() *Registry {
	return defaultRegistry
}

// Register records fn on the default [Registry].
func Register(p string, fn wire.Func) error {
	return defaultRegistry.Register(p, fn)
}

// MustRegister records fn on the default [Registry] and panics on error.
func MustRegister(p string, fn wire.Func) {
	defaultRegistry.MustRegister(p, fn)
}
