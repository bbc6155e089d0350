// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"

	"github.com/go-a2a/design-studio/pkg/logging"
	"github.com/go-a2a/design-studio/types"
)

// InMemoryService is an in-memory implementation of the [types.SessionService].
type InMemoryService struct {
	// sessions is a map from app name to a map from user ID to a map from session ID to session.
	sessions map[string]map[string]map[string]*session

	// userState is a map from app name to a map from user ID to a map from key to value.
	userState map[string]map[string]map[string]any

	// appState is a map from app name to a map from key to value.
	appState map[string]map[string]any

	mu sync.RWMutex
}

var _ types.SessionService = (*InMemoryService)(nil)

// NewInMemoryService creates a new [InMemoryService].
func NewInMemoryService() *InMemoryService {
	return &InMemoryService{
		sessions:  make(map[string]map[string]map[string]*session),
		userState: make(map[string]map[string]map[string]any),
		appState:  make(map[string]map[string]any),
	}
}

// CreateSession creates a new session.
func (s *InMemoryService) CreateSession(ctx context.Context, appName, userID, sessionID string, state map[string]any) (types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	logging.FromContext(ctx).DebugContext(ctx, "creating session",
		slog.String("app_name", appName),
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)

	if _, ok := s.sessions[appName][userID][sessionID]; ok {
		return nil, fmt.Errorf("session %s already exists for user %s in app %s", sessionID, userID, appName)
	}

	initial := make(map[string]any, len(state))
	if err := deepcopy.Copy(&initial, state); err != nil {
		return nil, fmt.Errorf("copy initial state: %w", err)
	}
	ses := newSession(appName, userID, sessionID, make(map[string]any), time.Now())
	s.applyDelta(ses, initial)

	if _, ok := s.sessions[appName]; !ok {
		s.sessions[appName] = make(map[string]map[string]*session)
	}
	if _, ok := s.sessions[appName][userID]; !ok {
		s.sessions[appName][userID] = make(map[string]*session)
	}
	s.sessions[appName][userID][sessionID] = ses

	return s.copySession(ses, nil)
}

// GetSession retrieves a session by ID.
func (s *InMemoryService) GetSession(ctx context.Context, appName, userID, sessionID string, config *types.GetSessionConfig) (types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ses, ok := s.sessions[appName][userID][sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s for user %s in app %s: %w", sessionID, userID, appName, types.ErrSessionNotFound)
	}

	return s.copySession(ses, config)
}

// ListSessions lists all sessions for a user, without events or state.
func (s *InMemoryService) ListSessions(ctx context.Context, appName, userID string) ([]types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := s.sessions[appName][userID]
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	sessions := make([]types.Session, 0, len(ids))
	for _, id := range ids {
		ses := byID[id]
		sessions = append(sessions, newSession(ses.appName, ses.userID, ses.id, nil, ses.LastUpdateTime()))
	}
	return sessions, nil
}

// DeleteSession deletes a session. Deleting a missing session is not an error.
func (s *InMemoryService) DeleteSession(ctx context.Context, appName, userID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logging.FromContext(ctx).DebugContext(ctx, "deleting session",
		slog.String("app_name", appName),
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)

	if byID, ok := s.sessions[appName][userID]; ok {
		delete(byID, sessionID)
	}
	return nil
}

// AppendEvent appends an event to a session and applies its state delta.
//
// Partial events are returned untouched. The passed ses is updated as well as
// the stored copy, so callers holding ses observe the new event and state.
func (s *InMemoryService) AppendEvent(ctx context.Context, ses types.Session, event *types.Event) (*types.Event, error) {
	if event == nil {
		return nil, errors.New("event must not be nil")
	}
	if event.LLMResponse != nil && event.Partial {
		return event, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.ID == "" {
		event.ID = types.NewEventID()
	}

	stored, ok := s.sessions[ses.AppName()][ses.UserID()][ses.ID()]
	if !ok {
		return nil, fmt.Errorf("session %s for user %s in app %s: %w", ses.ID(), ses.UserID(), ses.AppName(), types.ErrSessionNotFound)
	}

	ses.Append(event)
	stored.mu.Lock()
	stored.events = append(stored.events, event)
	stored.updated = event.Timestamp
	stored.mu.Unlock()
	if event.Actions != nil {
		s.applyDelta(stored, event.Actions.StateDelta)
	}

	return event, nil
}

// applyDelta routes each key of delta to the app, user or session scope.
func (s *InMemoryService) applyDelta(ses *session, delta map[string]any) {
	for key, value := range delta {
		switch {
		case types.IsTempKey(key):
		case strings.HasPrefix(key, types.AppPrefix):
			if _, ok := s.appState[ses.appName]; !ok {
				s.appState[ses.appName] = make(map[string]any)
			}
			s.appState[ses.appName][strings.TrimPrefix(key, types.AppPrefix)] = value
		case strings.HasPrefix(key, types.UserPrefix):
			if _, ok := s.userState[ses.appName]; !ok {
				s.userState[ses.appName] = make(map[string]map[string]any)
			}
			if _, ok := s.userState[ses.appName][ses.userID]; !ok {
				s.userState[ses.appName][ses.userID] = make(map[string]any)
			}
			s.userState[ses.appName][ses.userID][strings.TrimPrefix(key, types.UserPrefix)] = value
		default:
			ses.mu.Lock()
			ses.state[key] = value
			ses.mu.Unlock()
		}
	}
}

// copySession returns a deep copy of ses merged with its app and user state.
func (s *InMemoryService) copySession(ses *session, config *types.GetSessionConfig) (types.Session, error) {
	ses.mu.RLock()
	defer ses.mu.RUnlock()

	state := make(map[string]any, len(ses.state))
	if err := deepcopy.Copy(&state, ses.state); err != nil {
		return nil, fmt.Errorf("copy session state: %w", err)
	}
	for key, value := range s.appState[ses.appName] {
		state[types.AppPrefix+key] = value
	}
	for key, value := range s.userState[ses.appName][ses.userID] {
		state[types.UserPrefix+key] = value
	}

	copied := newSession(ses.appName, ses.userID, ses.id, state, ses.updated)
	events := ses.events
	if config != nil {
		if !config.AfterTimestamp.IsZero() {
			i := sort.Search(len(events), func(i int) bool {
				return !events[i].Timestamp.Before(config.AfterTimestamp)
			})
			events = events[i:]
		}
		if n := config.NumRecentEvents; n > 0 && n < len(events) {
			events = events[len(events)-n:]
		}
	}
	copied.events = append(copied.events, events...)

	return copied, nil
}
