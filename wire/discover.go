// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package wire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/kilnworks/bootwire/internal/depth"

	"golang.org/x/sync/errgroup"
)

// Resolver is the pattern resolution collaborator for [Context.Discover].
// Given glob style patterns and a base directory it returns the matching
// fragment identities, relative to dir. Implementations must support the
// conventional "*" and "**" wildcards.
type Resolver interface {
	Resolve(dir string, patterns ...string) ([]string, error)
}

// Loader is the fragment loading collaborator for [Context.Discover].
// Given a resolved fragment identity it returns the fragment's [Func].
type Loader interface {
	Load(path string) (Func, error)
}

// ErrNoDiscovery is returned by [Context.Discover] when the [Context]
// was built without a [Resolver] or [Loader].
var ErrNoDiscovery = errors.New("wire: no resolver or loader configured")

// ResolveError occurs when the [Resolver] fails to resolve patterns.
type ResolveError struct {
	Dir      string
	Patterns []string
	Cause    error
}

// Error implements the [builtin.error] interface.
func (e ResolveError) Error() string {
	return fmt.Sprintf("failed to resolve %v under %q: %s", e.Patterns, e.Dir, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ResolveError) Unwrap() error {
	return e.Cause
}

// LoadError occurs when the [Loader] fails to load a resolved fragment.
type LoadError struct {
	Path  string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e LoadError) Error() string {
	return fmt.Sprintf("failed to load %q: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e LoadError) Unwrap() error {
	return e.Cause
}

// Discover loads and runs every wiring fragment matching the given
// patterns, resolved relative to the directory of the calling fragment.
// The caller identifies itself through from, its own fragment identity;
// its directory is the resolution base and the caller itself is marked
// as loaded so no pattern, here or in a later Discover call, ever runs
// it again.
//
// Matches run in ascending path depth order, fewest segments first,
// ties keeping the resolver's order. Fragments of equal depth run
// concurrently; a depth level only starts once every shallower level
// has completed. Across all Discover calls sharing this [Context],
// every resolved identity runs at most once.
//
// The first fragment failure aborts the call and is returned, as is
// any resolve or load failure.
func (c *Context) Discover(ctx context.Context, from string, patterns ...string) error {
	if c.resolver == nil || c.loader == nil {
		return ErrNoDiscovery
	}

	from = path.Clean(from)
	dir := path.Dir(from)
	c.markLoaded(from)

	matches, err := c.resolver.Resolve(dir, patterns...)
	if err != nil {
		return ResolveError{Dir: dir, Patterns: patterns, Cause: err}
	}

	depth.Sort(matches)

	c.log.DebugContext(ctx, "discovered fragments",
		slog.String("from", from),
		slog.Int("matches", len(matches)),
	)

	for level := 0; level < len(matches); {
		d := depth.Of(matches[level])

		// Load the whole level before running any of it so a load
		// failure never races with half started fragments.
		var fns []Func
		for ; level < len(matches) && depth.Of(matches[level]) == d; level++ {
			identity := path.Join(dir, matches[level])
			if !c.markLoaded(identity) {
				continue
			}

			fn, err := c.loader.Load(identity)
			if err != nil {
				return LoadError{Path: identity, Cause: err}
			}

			c.log.DebugContext(ctx, "running fragment", slog.String("path", identity))

			fns = append(fns, fn)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, fn := range fns {
			fn := fn
			g.Go(func() error {
				return fn(gctx, c)
			})
		}

		err := g.Wait()
		if err != nil {
			return err
		}
	}
	return nil
}
