// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package globfs resolves wiring fragment patterns against an [fs.FS].
// It suits programs whose registered fragment identities mirror an
// embedded or on disk source tree: the tree answers "which fragments
// exist", while loading stays with a [registry.Registry].
package globfs

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/bmatcuk/doublestar/v4"
)

// FS is a [wire.Resolver] backed by an [fs.FS].
type FS struct {
	fsys fs.FS
}

// New returns an [FS] resolving against fsys. Fragment directories are
// interpreted relative to the root of fsys.
func New(fsys fs.FS) FS {
	return FS{fsys: fsys}
}

// Resolve implements the [wire.Resolver] interface. Matches are
// returned relative to dir, in the glob walk's lexical order, only
// regular files, each at most once.
func (f FS) Resolve(dir string, patterns ...string) ([]string, error) {
	base := f.fsys

	dir = path.Clean(dir)
	if dir != "." {
		sub, err := fs.Sub(f.fsys, dir)
		if err != nil {
			return nil, fmt.Errorf("invalid base directory %q: %w", dir, err)
		}
		base = sub
	}

	seen := make(map[string]struct{})

	var matches []string
	for _, pattern := range patterns {
		ms, err := doublestar.Glob(base, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("malformed pattern %q: %w", pattern, err)
		}
		for _, m := range ms {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			matches = append(matches, m)
		}
	}
	return matches, nil
}
