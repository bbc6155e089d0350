// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import "testing"

func TestBufferPutResets(t *testing.T) {
	buf := Buffer.Get()
	buf.WriteString("artifact")
	Buffer.Put(buf)

	if got := buf.Len(); got != 0 {
		t.Fatalf("buffer length after Put = %d, want 0", got)
	}
}

func TestStringPutResets(t *testing.T) {
	sb := String.Get()
	sb.WriteString("instruction")
	String.Put(sb)

	if got := sb.Len(); got != 0 {
		t.Fatalf("builder length after Put = %d, want 0", got)
	}
}

func TestNewWithoutReset(t *testing.T) {
	p := New(func() []int { return make([]int, 0, 4) }, nil)
	s := p.Get()
	if cap(s) != 4 {
		t.Fatalf("cap = %d, want 4", cap(s))
	}
	p.Put(s)
}
