// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"time"
)

// Session is one conversation between a user and the agent tree.
//
// The artifacts produced during the conversation are keyed by the session
// identity (AppName, UserID, ID).
type Session interface {
	ID() string
	AppName() string
	UserID() string

	// State returns the merged session, user and app state. Callers must not mutate it.
	State() map[string]any

	// Events returns the events in the order they were appended.
	Events() []*Event

	LastUpdateTime() time.Time

	// Append records event and applies its state delta, skipping temp keys.
	Append(event *Event)
}
