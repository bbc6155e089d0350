// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil builds invocation and tool contexts for tests.
package testutil

import (
	"testing"

	"github.com/go-a2a/design-studio/artifact"
	"github.com/go-a2a/design-studio/session"
	"github.com/go-a2a/design-studio/types"
)

// AppName is the app name of the sessions created by this package.
const AppName = "design_studio"

type namedAgent struct {
	types.Agent
	name string
}

func (a *namedAgent) Name() string { return a.name }

// InvocationContext returns an invocation of an agent called agentName over a
// fresh in-memory session and artifact service.
func InvocationContext(t testing.TB, agentName string) *types.InvocationContext {
	t.Helper()

	sessions := session.NewInMemoryService()
	ses, err := sessions.CreateSession(t.Context(), AppName, "u1", "s1", nil)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	return types.NewInvocationContext(&namedAgent{name: agentName}, ses, sessions,
		types.WithArtifactService(artifact.NewInMemoryService()),
	)
}

// ToolContext returns a tool context for the function call fcid of a fresh invocation.
func ToolContext(t testing.TB, agentName, fcid string) *types.ToolContext {
	t.Helper()
	return types.NewToolContext(InvocationContext(t, agentName), fcid, nil)
}

// NoArtifactsToolContext is like [ToolContext] without an artifact service.
func NoArtifactsToolContext(t testing.TB, agentName, fcid string) *types.ToolContext {
	t.Helper()
	ictx := InvocationContext(t, agentName)
	ictx.ArtifactService = nil
	return types.NewToolContext(ictx, fcid, nil)
}
