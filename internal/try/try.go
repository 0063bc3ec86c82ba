// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package try

import (
	"errors"
	"fmt"
	"io"
)

// PanicError wraps any value recovered from a panic.
type PanicError struct {
	Value any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("recovered from panic: %v", e.Value)
}

func (e PanicError) Unwrap() error {
	err, ok := e.Value.(error)
	if !ok {
		return nil
	}
	return err
}

// Recover is meant to be used in a defer and captures any
// panic into *err, joining with any error already present.
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}

	perr := PanicError{
		Value: r,
	}
	if *err == nil {
		*err = perr
		return
	}
	*err = errors.Join(*err, perr)
}

// Close closes v if it implements io.Closer and joins any
// close failure into *err.
func Close(err *error, v any) {
	c, ok := v.(io.Closer)
	if !ok {
		return
	}

	cerr := c.Close()
	if cerr == nil {
		return
	}

	if *err == nil {
		*err = cerr
		return
	}
	*err = errors.Join(*err, cerr)
}
