// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"

	"github.com/kilnworks/bootwire/wire"
)

// Wire returns a wiring function which reads and merges the given
// sources and provides the resulting [*Manager] under key. The usual
// set-once rule applies: if the key was pre-seeded, for example by a
// test, the sources are never read.
func Wire(key string, srcs ...Source) wire.Func {
	return func(ctx context.Context, c *wire.Context) error {
		return c.Provide(ctx, key, func(ctx context.Context, c *wire.Context) (any, error) {
			return Read(srcs...)
		})
	}
}
