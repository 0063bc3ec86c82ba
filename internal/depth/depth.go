// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package depth orders slash separated paths by how many directory
// levels deep they are.
package depth

import (
	"cmp"
	"path"
	"slices"
	"strings"
)

// Of returns the number of path segments in p after cleaning.
// "a.wire" has depth 1, "b/c.wire" depth 2 and so on. The empty
// path and "." have depth 0.
func Of(p string) int {
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "/")
	if p == "" || p == "." {
		return 0
	}
	return strings.Count(p, "/") + 1
}

// Compare orders a before b if a has fewer path segments.
// Paths of equal depth compare as equal so sorting with a
// stable sort preserves their relative order.
func Compare(a, b string) int {
	return cmp.Compare(Of(a), Of(b))
}

// Sort stable sorts paths in ascending depth order, in place.
func Sort(paths []string) {
	slices.SortStableFunc(paths, Compare)
}
