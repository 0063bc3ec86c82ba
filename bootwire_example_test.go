// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package bootwire_test

import (
	"context"
	"fmt"

	"github.com/kilnworks/bootwire"
	"github.com/kilnworks/bootwire/wire"
)

func ExampleApp_Boot() {
	app := bootwire.New(func(ctx context.Context, c *wire.Context) error {
		c.Set("greeting", "hello")
		return nil
	})

	c, err := app.Boot(context.Background())
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(c.Get("greeting"))
	// Output: hello
}

func ExampleApp_Boot_overrides() {
	app := bootwire.New(func(ctx context.Context, c *wire.Context) error {
		// already seeded by the caller so this assignment is skipped
		c.Set("db", "real connection")
		return nil
	})

	c, err := app.Boot(context.Background(), map[string]any{"db": "fake"})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(c.Get("db"))
	// Output: fake
}
