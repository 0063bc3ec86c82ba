// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/kilnworks/bootwire"
	"github.com/kilnworks/bootwire/config"
	"github.com/kilnworks/bootwire/registry"
	"github.com/kilnworks/bootwire/wire"
)

const appYaml = `
http:
  addr: ":8080"
db:
  dsn: "postgres://localhost/webapp"
`

type appConfig struct {
	Http struct {
		Addr string `config:"addr"`
	} `config:"http"`
	Db struct {
		Dsn string `config:"dsn"`
	} `config:"db"`
}

// Fragments register themselves under identities mirroring the boot
// layout. The shallow config fragment runs before the deeper ones, so
// everything else can simply wait for the "config" key.
func init() {
	registry.MustRegister("boot/config.wire", config.Wire("config", config.FromYaml(strings.NewReader(appYaml))))

	registry.MustRegister("boot/db/conn.wire", func(ctx context.Context, c *wire.Context) error {
		return c.Provide(ctx, "db", func(ctx context.Context, c *wire.Context) (any, error) {
			err := c.WaitFor(ctx, "config")
			if err != nil {
				return nil, err
			}

			var cfg appConfig
			err = c.Get("config").(*config.Manager).Unmarshal(&cfg)
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("connection to %s", cfg.Db.Dsn), nil
		})
	})

	registry.MustRegister("boot/http/server.wire", func(ctx context.Context, c *wire.Context) error {
		return c.Provide(ctx, "server", func(ctx context.Context, c *wire.Context) (any, error) {
			err := c.WaitFor(ctx, "config", "db")
			if err != nil {
				return nil, err
			}

			var cfg appConfig
			err = c.Get("config").(*config.Manager).Unmarshal(&cfg)
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("server on %s using %s", cfg.Http.Addr, c.Get("db")), nil
		})
	})
}

func main() {
	app := bootwire.New(
		func(ctx context.Context, c *wire.Context) error {
			return c.Discover(ctx, "boot/index.wire", "**/*.wire")
		},
		bootwire.Resolver(registry.Default()),
		bootwire.Loader(registry.Default()),
	)

	c, err := app.Boot(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(c.Get("server"))
}
