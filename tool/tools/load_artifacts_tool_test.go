// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/tool/tools"
	"github.com/go-a2a/design-studio/types"
)

func TestLoadArtifactsTool_Run(t *testing.T) {
	tests := map[string]struct {
		args map[string]any
		want []string
	}{
		"decoded json": {
			args: map[string]any{"artifact_names": []any{"a.png", "b.png"}},
			want: []string{"a.png", "b.png"},
		},
		"missing": {
			args: map[string]any{},
			want: []string{},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := tools.NewLoadArtifactsTool().Run(t.Context(), tt.args, newToolContext(t, "fc-1"))
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got.(map[string]any)["artifact_names"]); diff != "" {
				t.Errorf("artifact_names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadArtifactsTool_ProcessLLMRequest(t *testing.T) {
	ctx := t.Context()
	toolCtx := newToolContext(t, "")
	if _, err := toolCtx.SaveArtifact(ctx, "input_image_1.png", genai.NewPartFromBytes([]byte{1}, "image/png")); err != nil {
		t.Fatalf("SaveArtifact() error = %v", err)
	}

	request := types.NewLLMRequest([]*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromFunctionResponse(tools.LoadArtifactsName, map[string]any{
				"artifact_names": []any{"input_image_1.png", "missing.png"},
			}),
		}, genai.RoleUser),
	})
	if err := tools.NewLoadArtifactsTool().ProcessLLMRequest(ctx, toolCtx, request); err != nil {
		t.Fatalf("ProcessLLMRequest() error = %v", err)
	}

	if got := request.SystemInstructionText(); !strings.Contains(got, `["input_image_1.png"]`) {
		t.Errorf("system instruction does not list artifacts: %q", got)
	}
	if got, want := len(request.Contents), 2; got != want {
		t.Fatalf("len(Contents) = %d, want %d", got, want)
	}
	attached := request.Contents[1]
	if got, want := attached.Parts[0].Text, "Artifact input_image_1.png is:"; got != want {
		t.Errorf("caption = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]byte{1}, attached.Parts[1].InlineData.Data); diff != "" {
		t.Errorf("artifact data mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadArtifactsTool_NoArtifacts(t *testing.T) {
	request := types.NewLLMRequest(nil)
	if err := tools.NewLoadArtifactsTool().ProcessLLMRequest(t.Context(), newToolContext(t, ""), request); err != nil {
		t.Fatalf("ProcessLLMRequest() error = %v", err)
	}
	if got := request.SystemInstructionText(); got != "" {
		t.Errorf("system instruction = %q, want empty", got)
	}
	if _, ok := request.ToolMap[tools.LoadArtifactsName]; !ok {
		t.Error("load_artifacts not declared")
	}
}
