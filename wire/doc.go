// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package wire implements a set-once boot container for wiring
// applications together from many independent boot fragments.
//
// A [Context] maps string keys to values with a first write wins rule:
// once a key is assigned, every later [Context.Set] or [Context.Provide]
// for it is silently ignored. Each key has an associated [Signal] which
// is fulfilled at the moment of first assignment, allowing fragments to
// coordinate with [Context.WaitFor] instead of relying on execution order.
//
// Fragments themselves are [Func] values. They can be run directly and
// sequentially with [Context.Run], or discovered by glob pattern and run
// in directory depth order with [Context.Discover], each fragment at
// most once per [Context] lifetime.
package wire
