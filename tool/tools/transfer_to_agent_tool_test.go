// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools_test

import (
	"testing"

	"github.com/go-a2a/design-studio/tool/tools"
)

func TestTransferToAgent(t *testing.T) {
	toolCtx := newToolContext(t, "fc-1")

	got, err := tools.NewTransferToAgentTool().Run(t.Context(), map[string]any{"agent_name": "gcs_agent"}, toolCtx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if status := got.(map[string]any)["status"]; status != tools.StatusSuccess {
		t.Fatalf("status = %v, want %q", status, tools.StatusSuccess)
	}
	if got, want := toolCtx.Actions().TransferToAgent, "gcs_agent"; got != want {
		t.Errorf("TransferToAgent = %q, want %q", got, want)
	}
}

func TestTransferToAgent_MissingName(t *testing.T) {
	toolCtx := newToolContext(t, "fc-1")

	got, err := tools.NewTransferToAgentTool().Run(t.Context(), nil, toolCtx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if status := got.(map[string]any)["status"]; status != tools.StatusError {
		t.Fatalf("status = %v, want %q", status, tools.StatusError)
	}
	if toolCtx.Actions().TransferToAgent != "" {
		t.Error("TransferToAgent set for a failed call")
	}
}
