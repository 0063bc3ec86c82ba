// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package bootwire wires applications together from independent boot
// fragments over a shared set-once container.
//
// The package is built around a small number of pieces:
//
//   - wire.Context: the set-once key value container every fragment receives
//   - wire.Func: the wiring function contract fragments implement
//   - App: a thin bootable wrapper which builds a fresh container per boot,
//     merges caller supplied initial values and runs the boot function
//
// # Basic Usage
//
// Define a boot function and run it:
//
//	app := bootwire.New(func(ctx context.Context, c *wire.Context) error {
//	    c.Set("greeting", "hello")
//	    return c.Run(ctx, wireDatabase, wireServer)
//	})
//
//	c, err := app.Boot(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Tests can pre-seed dependencies to bypass real bootstrap, since the
// set-once rule makes in-boot assignments to seeded keys no-ops:
//
//	c, err := app.Boot(context.Background(), map[string]any{
//	    "db": fakeDB,
//	})
//
// Fragments can also be discovered by glob pattern and executed in
// directory depth order; see [wire.Context.Discover] and package
// registry.
package bootwire
