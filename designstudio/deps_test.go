// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package designstudio_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/design-studio/agent"
	"github.com/go-a2a/design-studio/designstudio"
	"github.com/go-a2a/design-studio/internal/config"
)

func TestNewDepsGeminiAPIKeyOnly(t *testing.T) {
	cfg := testConfig()
	cfg.Google = config.GoogleConfig{APIKey: "key", UseVertexAI: false}
	cfg.Storage = config.StorageConfig{MaxImageSize: "10MB"}
	cfg.Artifacts = config.ArtifactsConfig{Backend: "memory"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	deps, err := designstudio.NewDeps(t.Context(), cfg)
	if err != nil {
		t.Fatalf("NewDeps() error = %v", err)
	}
	t.Cleanup(func() { _ = deps.Close() })

	if deps.FastBackground != nil || deps.CapabilityBackground != nil {
		t.Errorf("background editors = %v, %v, want none without a Vertex AI project", deps.FastBackground, deps.CapabilityBackground)
	}
	if deps.Generator == nil || deps.Editor == nil {
		t.Error("image generator and editor must be available on the Gemini API")
	}

	root, err := designstudio.New(cfg, deps)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	edit, ok := root.FindSubAgent(config.ImageEditAgent).(*agent.LLMAgent)
	if !ok {
		t.Fatalf("FindSubAgent(%s) is not an LLM agent", config.ImageEditAgent)
	}
	var names []string
	for _, tool := range edit.Tools() {
		names = append(names, tool.Name())
	}
	if diff := cmp.Diff([]string{"edit_image_tool", "load_artifacts"}, names); diff != "" {
		t.Errorf("image_edit_agent tools mismatch (-want +got):\n%s", diff)
	}
}
