// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"io"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFileReader(t *testing.T) {
	t.Run("will read the file", func(t *testing.T) {
		t.Run("if it exists", func(t *testing.T) {
			fsys := fstest.MapFS{
				"app.yaml": &fstest.MapFile{Data: []byte("timeout: 5s")},
			}

			m, err := Read(FromYaml(NewFileReader(fsys, "app.yaml")))
			if !assert.Nil(t, err) {
				return
			}

			var cfg struct {
				Timeout time.Duration `config:"timeout"`
			}
			err = m.Unmarshal(&cfg)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 5*time.Second, cfg.Timeout) {
				return
			}
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the file does not exist", func(t *testing.T) {
			r := NewFileReader(fstest.MapFS{}, "missing.yaml")

			_, err := io.ReadAll(r)
			if !assert.NotNil(t, err) {
				return
			}

			// subsequent reads keep returning the open failure
			_, err = io.ReadAll(r)
			if !assert.NotNil(t, err) {
				return
			}
		})
	})

	t.Run("will close cleanly", func(t *testing.T) {
		t.Run("if the file was never opened", func(t *testing.T) {
			r := NewFileReader(fstest.MapFS{}, "missing.yaml")

			if !assert.Nil(t, r.Close()) {
				return
			}
		})
	})
}
