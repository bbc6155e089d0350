// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools_test

import (
	"testing"

	"github.com/go-a2a/design-studio/artifact"
	"github.com/go-a2a/design-studio/session"
	"github.com/go-a2a/design-studio/types"
)

type stubAgent struct {
	types.Agent
	name string
}

func (a *stubAgent) Name() string { return a.name }

func newToolContext(t *testing.T, fcid string) *types.ToolContext {
	t.Helper()

	sessions := session.NewInMemoryService()
	ses, err := sessions.CreateSession(t.Context(), "design_studio", "u1", "s1", nil)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	ictx := types.NewInvocationContext(&stubAgent{name: "image_gen_agent"}, ses, sessions,
		types.WithArtifactService(artifact.NewInMemoryService()),
	)

	return types.NewToolContext(ictx, fcid, nil)
}
