// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package bootwire

import (
	"context"
	"errors"
	"testing"

	"github.com/kilnworks/bootwire/internal/try"
	"github.com/kilnworks/bootwire/lifecycle"
	"github.com/kilnworks/bootwire/registry"
	"github.com/kilnworks/bootwire/wire"

	"github.com/stretchr/testify/assert"
)

func TestApp_Boot(t *testing.T) {
	t.Run("will return the wired container", func(t *testing.T) {
		t.Run("if the boot function succeeds", func(t *testing.T) {
			app := New(func(ctx context.Context, c *wire.Context) error {
				c.Set("greeting", "hello")
				return nil
			})

			c, err := app.Boot(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "hello", c.Get("greeting")) {
				return
			}
		})

		t.Run("if it is booted more than once", func(t *testing.T) {
			app := New(func(ctx context.Context, c *wire.Context) error {
				c.Set("n", c.GetOr("n", 0))
				return nil
			})

			first, err := app.Boot(context.Background())
			if !assert.Nil(t, err) {
				return
			}

			second, err := app.Boot(context.Background())
			if !assert.Nil(t, err) {
				return
			}

			// every boot starts from a fresh container
			if !assert.NotSame(t, first, second) {
				return
			}
		})
	})

	t.Run("will merge overrides", func(t *testing.T) {
		t.Run("if one override is given", func(t *testing.T) {
			app := New(func(ctx context.Context, c *wire.Context) error {
				return nil
			})

			c, err := app.Boot(context.Background(), map[string]any{"a": "b"})
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "b", c.Get("a")) {
				return
			}
		})

		t.Run("if later overrides share keys with earlier ones", func(t *testing.T) {
			app := New(func(ctx context.Context, c *wire.Context) error {
				return nil
			})

			c, err := app.Boot(
				context.Background(),
				map[string]any{"a": "first", "b": 1},
				map[string]any{"a": "second"},
			)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "second", c.Get("a")) {
				return
			}
			if !assert.Equal(t, 1, c.Get("b")) {
				return
			}
		})

		t.Run("if the boot function sets an overridden key", func(t *testing.T) {
			invoked := false
			app := New(func(ctx context.Context, c *wire.Context) error {
				c.Set("db", "real connection")
				return c.Provide(ctx, "db", func(ctx context.Context, c *wire.Context) (any, error) {
					invoked = true
					return "another connection", nil
				})
			})

			c, err := app.Boot(context.Background(), map[string]any{"db": "fake"})
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "fake", c.Get("db")) {
				return
			}
			if !assert.False(t, invoked) {
				return
			}
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the boot function fails", func(t *testing.T) {
			bootErr := errors.New("failed to wire")

			app := New(func(ctx context.Context, c *wire.Context) error {
				return bootErr
			})

			_, err := app.Boot(context.Background())

			var berr BootError
			if !assert.ErrorAs(t, err, &berr) {
				return
			}
			if !assert.ErrorIs(t, err, bootErr) {
				return
			}
		})

		t.Run("if the boot function panics", func(t *testing.T) {
			app := New(func(ctx context.Context, c *wire.Context) error {
				panic("hello world")
			})

			_, err := app.Boot(context.Background())

			var perr try.PanicError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
			if !assert.Equal(t, "hello world", perr.Value) {
				return
			}
		})
	})

	t.Run("will run post boot hooks", func(t *testing.T) {
		t.Run("if the boot function registered any", func(t *testing.T) {
			ran := false
			app := New(func(ctx context.Context, c *wire.Context) error {
				lc, ok := lifecycle.FromContext(ctx)
				if !ok {
					return errors.New("no lifecycle context")
				}
				lc.OnPostBoot(lifecycle.HookFunc(func(ctx context.Context) error {
					ran = true
					return nil
				}))
				return nil
			})

			_, err := app.Boot(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			if !assert.True(t, ran) {
				return
			}
		})

		t.Run("if the boot function fails afterwards", func(t *testing.T) {
			bootErr := errors.New("failed to wire")

			ran := false
			app := New(func(ctx context.Context, c *wire.Context) error {
				lc, _ := lifecycle.FromContext(ctx)
				lc.OnPostBoot(lifecycle.HookFunc(func(ctx context.Context) error {
					ran = true
					return nil
				}))
				return bootErr
			})

			_, err := app.Boot(context.Background())
			if !assert.ErrorIs(t, err, bootErr) {
				return
			}
			if !assert.True(t, ran) {
				return
			}
		})

		t.Run("if a hook fails after a successful boot", func(t *testing.T) {
			hookErr := errors.New("hook failed")

			app := New(func(ctx context.Context, c *wire.Context) error {
				lc, _ := lifecycle.FromContext(ctx)
				lc.OnPostBoot(lifecycle.HookFunc(func(ctx context.Context) error {
					return hookErr
				}))
				return nil
			})

			_, err := app.Boot(context.Background())
			if !assert.ErrorIs(t, err, hookErr) {
				return
			}
		})
	})

	t.Run("will support discovery", func(t *testing.T) {
		t.Run("if a registry is configured as resolver and loader", func(t *testing.T) {
			reg := registry.New()
			reg.MustRegister("boot/db.wire", func(ctx context.Context, c *wire.Context) error {
				c.Set("db", "connected")
				return nil
			})
			reg.MustRegister("boot/api/server.wire", func(ctx context.Context, c *wire.Context) error {
				err := c.WaitFor(ctx, "db")
				if err != nil {
					return err
				}
				c.Set("server", "listening on top of "+c.Get("db").(string))
				return nil
			})

			app := New(
				func(ctx context.Context, c *wire.Context) error {
					return c.Discover(ctx, "boot/index.wire", "**/*.wire")
				},
				Resolver(reg),
				Loader(reg),
			)

			c, err := app.Boot(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "connected", c.Get("db")) {
				return
			}
			if !assert.Equal(t, "listening on top of connected", c.Get("server")) {
				return
			}
		})
	})
}
