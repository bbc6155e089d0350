// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"time"
)

// GetSessionConfig narrows the events returned by [SessionService.GetSession].
// Zero values disable a filter.
type GetSessionConfig struct {
	NumRecentEvents int
	AfterTimestamp  time.Time
}

// SessionService stores sessions. The runner appends every non-partial event
// through it, which is how state written by tools reaches later turns.
type SessionService interface {
	// CreateSession starts a session seeded with state. An empty sessionID generates one.
	CreateSession(ctx context.Context, appName, userID, sessionID string, state map[string]any) (Session, error)

	// GetSession returns a copy of the session, or an error wrapping [ErrSessionNotFound].
	GetSession(ctx context.Context, appName, userID, sessionID string, config *GetSessionConfig) (Session, error)

	// ListSessions returns the sessions of a user, without events or state.
	ListSessions(ctx context.Context, appName, userID string) ([]Session, error)

	DeleteSession(ctx context.Context, appName, userID, sessionID string) error

	// AppendEvent records event on ses and on the stored session.
	AppendEvent(ctx context.Context, ses Session, event *Event) (*Event, error)
}
