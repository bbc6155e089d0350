// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool provides typed [sync.Pool] wrappers and shared pools of scratch buffers.
package pool

import (
	"bytes"
	"strings"
	"sync"
)

// Pool is a typed wrapper around [sync.Pool].
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
}

// New returns a [Pool] that uses fn to construct values when empty and reset
// to clear values handed back with Put. A nil reset keeps values as is.
func New[T any](fn func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return fn()
			},
		},
		reset: reset,
	}
}

// Get gets a T from the pool, or creates a new one if the pool is empty.
func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put resets x and returns it into the pool.
func (p *Pool[T]) Put(x T) {
	if p.reset != nil {
		p.reset(x)
	}
	p.pool.Put(x)
}

// Buffer pools [*bytes.Buffer] values used for encoding tool and CLI output.
var Buffer = New(
	func() *bytes.Buffer { return new(bytes.Buffer) },
	(*bytes.Buffer).Reset,
)

// String pools [*strings.Builder] values used for building instructions.
var String = New(
	func() *strings.Builder { return new(strings.Builder) },
	(*strings.Builder).Reset,
)
