// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package session provides conversation tracking and state management for agent interactions.
//
// Sessions are organized hierarchically:
//
//	{appName} -> {userID} -> {sessionID} -> Session
//
// State keys are scoped by prefix when an event is appended:
//
//   - "app:" keys are shared across all users of an application
//   - "user:" keys are shared across the sessions of one user
//   - "temp:" keys are never persisted
//   - every other key belongs to the session
//
// Basic usage:
//
//	svc := session.NewInMemoryService()
//	ses, err := svc.CreateSession(ctx, "design_studio", "user", "", nil)
//	if err != nil {
//		return err
//	}
//	event := types.NewEvent().WithAuthor("user")
//	event.Actions.StateDelta["user:brand"] = "countertop"
//	if _, err := svc.AppendEvent(ctx, ses, event); err != nil {
//		return err
//	}
//
// Sessions returned by the service are deep copies; mutate them only through AppendEvent.
package session
