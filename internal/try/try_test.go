// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package try

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecover(t *testing.T) {
	t.Run("will do nothing", func(t *testing.T) {
		t.Run("if no panic occurred", func(t *testing.T) {
			f := func() (err error) {
				defer Recover(&err)
				return nil
			}

			err := f()
			if !assert.Nil(t, err) {
				return
			}
		})
	})

	t.Run("will capture the panic value", func(t *testing.T) {
		t.Run("if the value is an error", func(t *testing.T) {
			panicErr := errors.New("panicked")
			f := func() (err error) {
				defer Recover(&err)
				panic(panicErr)
			}

			err := f()
			if !assert.ErrorIs(t, err, panicErr) {
				return
			}
		})

		t.Run("if the value is not an error", func(t *testing.T) {
			f := func() (err error) {
				defer Recover(&err)
				panic("hello world")
			}

			err := f()

			var perr PanicError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
			if !assert.Equal(t, "hello world", perr.Value) {
				return
			}
			if !assert.Nil(t, perr.Unwrap()) {
				return
			}
		})

		t.Run("if an error was already set", func(t *testing.T) {
			origErr := errors.New("original")
			panicErr := errors.New("panicked")
			f := func() (err error) {
				defer Recover(&err)
				err = origErr
				panic(panicErr)
			}

			err := f()
			if !assert.ErrorIs(t, err, origErr) {
				return
			}
			if !assert.ErrorIs(t, err, panicErr) {
				return
			}
		})
	})
}

type closeFunc func() error

func (f closeFunc) Close() error {
	return f()
}

func TestClose(t *testing.T) {
	t.Run("will do nothing", func(t *testing.T) {
		t.Run("if the value is not an io.Closer", func(t *testing.T) {
			var err error
			Close(&err, "not a closer")
			if !assert.Nil(t, err) {
				return
			}
		})

		t.Run("if close succeeds", func(t *testing.T) {
			var err error
			Close(&err, closeFunc(func() error { return nil }))
			if !assert.Nil(t, err) {
				return
			}
		})
	})

	t.Run("will set the error", func(t *testing.T) {
		t.Run("if close fails", func(t *testing.T) {
			closeErr := errors.New("failed to close")

			var err error
			Close(&err, closeFunc(func() error { return closeErr }))
			if !assert.ErrorIs(t, err, closeErr) {
				return
			}
		})

		t.Run("if an error was already set", func(t *testing.T) {
			origErr := errors.New("original")
			closeErr := errors.New("failed to close")

			err := origErr
			Close(&err, closeFunc(func() error { return closeErr }))
			if !assert.ErrorIs(t, err, origErr) {
				return
			}
			if !assert.ErrorIs(t, err, closeErr) {
				return
			}
		})
	})
}
