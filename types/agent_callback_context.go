// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

// ErrNoArtifactService is returned by the artifact helpers when the invocation has no [ArtifactService].
var ErrNoArtifactService = errors.New("artifact service is not initialized")

// CallbackContext provides the context of model callbacks and tools within an agent run.
type CallbackContext struct {
	*ReadOnlyContext

	eventActions *EventActions
	state        *State
}

// NewCallbackContext creates a new [*CallbackContext] that records its side effects on a fresh [EventActions].
func NewCallbackContext(ictx *InvocationContext) *CallbackContext {
	return newCallbackContext(ictx, NewEventActions())
}

func newCallbackContext(ictx *InvocationContext, actions *EventActions) *CallbackContext {
	var value map[string]any
	if ictx.Session != nil {
		value = ictx.Session.State()
	}
	return &CallbackContext{
		ReadOnlyContext: NewReadOnlyContext(ictx),
		eventActions:    actions,
		state:           NewState(value, actions.StateDelta),
	}
}

// WithEventActions returns a callback context of the same invocation recording its side effects on actions.
func (cc *CallbackContext) WithEventActions(actions *EventActions) *CallbackContext {
	return newCallbackContext(cc.InvocationContext, actions)
}

// EventActions returns the actions recorded so far.
func (cc *CallbackContext) EventActions() *EventActions {
	return cc.eventActions
}

// State returns the delta-aware state of the current session.
//
// Writes are visible immediately and are committed to the session when the
// event carrying [CallbackContext.EventActions] is appended.
func (cc *CallbackContext) State() *State {
	return cc.state
}

func (cc *CallbackContext) artifactService() (ArtifactService, error) {
	svc := cc.InvocationContext.ArtifactService
	if svc == nil {
		return nil, ErrNoArtifactService
	}
	return svc, nil
}

// LoadArtifact loads an artifact attached to the current session.
//
// Pass [LatestVersion] to load the newest version. A missing artifact yields (nil, nil).
func (cc *CallbackContext) LoadArtifact(ctx context.Context, filename string, version int) (*genai.Part, error) {
	svc, err := cc.artifactService()
	if err != nil {
		return nil, err
	}

	ictx := cc.InvocationContext
	return svc.LoadArtifact(ctx, ictx.AppName(), ictx.UserID(), ictx.Session.ID(), filename, version)
}

// SaveArtifact saves an artifact and records its version as delta for the current session.
func (cc *CallbackContext) SaveArtifact(ctx context.Context, filename string, artifact *genai.Part) (int, error) {
	svc, err := cc.artifactService()
	if err != nil {
		return 0, err
	}

	ictx := cc.InvocationContext
	version, err := svc.SaveArtifact(ctx, ictx.AppName(), ictx.UserID(), ictx.Session.ID(), filename, artifact)
	if err != nil {
		return 0, err
	}
	cc.eventActions.ArtifactDelta[filename] = version

	return version, nil
}

// ListArtifacts lists the filenames of the artifacts visible to the current session.
func (cc *CallbackContext) ListArtifacts(ctx context.Context) ([]string, error) {
	svc, err := cc.artifactService()
	if err != nil {
		return nil, err
	}

	ictx := cc.InvocationContext
	return svc.ListArtifactKey(ctx, ictx.AppName(), ictx.UserID(), ictx.Session.ID())
}
