// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"strings"
	"sync"
)

// State key prefixes selecting the scope a key is stored in.
const (
	AppPrefix  = "app:"
	UserPrefix = "user:"
	TempPrefix = "temp:"
)

// State is the session state seen by callbacks and tools.
//
// Reads see the committed session state overlaid by the pending delta.
// Writes only touch the delta, which is committed by the session service when
// the event carrying it is appended. Keys with [TempPrefix] never outlive the invocation.
type State struct {
	mu        sync.RWMutex
	committed map[string]any
	delta     map[string]any
}

// NewState returns a State reading committed and recording writes into delta.
//
// committed is never modified. A nil delta is replaced by an empty map.
func NewState(committed, delta map[string]any) *State {
	if delta == nil {
		delta = make(map[string]any)
	}
	return &State{committed: committed, delta: delta}
}

// Get returns the value stored under key.
func (s *State) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.delta[key]; ok {
		return v, true
	}
	v, ok := s.committed[key]
	return v, ok
}

// GetString returns the string stored under key, or "" when the key is unset or not a string.
func (s *State) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// Set records val under key in the pending delta.
func (s *State) Set(key string, val any) {
	s.mu.Lock()
	s.delta[key] = val
	s.mu.Unlock()
}

// IsTempKey reports whether key is scoped to a single invocation.
func IsTempKey(key string) bool {
	return strings.HasPrefix(key, TempPrefix)
}
