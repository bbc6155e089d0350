// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"sync"
	"time"

	"github.com/go-a2a/design-studio/types"
)

type session struct {
	appName string
	userID  string
	id      string

	mu      sync.RWMutex
	events  []*types.Event
	state   map[string]any
	updated time.Time
}

var _ types.Session = (*session)(nil)

func newSession(appName, userID, id string, state map[string]any, updated time.Time) *session {
	if state == nil {
		state = make(map[string]any)
	}
	return &session{
		appName: appName,
		userID:  userID,
		id:      id,
		state:   state,
		updated: updated,
	}
}

func (s *session) ID() string      { return s.id }
func (s *session) AppName() string { return s.appName }
func (s *session) UserID() string  { return s.userID }

func (s *session) Events() []*types.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events
}

func (s *session) State() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *session) LastUpdateTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated
}

func (s *session) Append(event *types.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	s.updated = event.Timestamp
	if event.Actions == nil {
		return
	}
	for key, value := range event.Actions.StateDelta {
		if !types.IsTempKey(key) {
			s.state[key] = value
		}
	}
}
