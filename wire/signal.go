// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package wire

import (
	"context"
	"sync"
)

// Signal is a single assignment future. It starts out pending and
// transitions to fulfilled exactly once, notifying every waiter,
// past or future. The zero value is not usable; use [NewSignal].
type Signal struct {
	once sync.Once
	done chan struct{}
	val  any
}

// NewSignal returns a pending [Signal].
func NewSignal() *Signal {
	return &Signal{
		done: make(chan struct{}),
	}
}

// Fulfill transitions the signal to fulfilled with the given value.
// Fulfilling an already fulfilled signal is a no-op.
func (s *Signal) Fulfill(v any) {
	s.once.Do(func() {
		s.val = v
		close(s.done)
	})
}

// Done returns a channel which is closed once the signal is fulfilled.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Value returns the fulfilled value, if any, without blocking.
func (s *Signal) Value() (any, bool) {
	select {
	case <-s.done:
		return s.val, true
	default:
		return nil, false
	}
}

// Wait blocks until the signal is fulfilled or the given
// [context.Context] is cancelled.
func (s *Signal) Wait(ctx context.Context) (any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.done:
		return s.val, nil
	}
}
