// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/session"
	"github.com/go-a2a/design-studio/types"
)

func TestGetContents(t *testing.T) {
	events := []*types.Event{
		types.NewEvent().WithAuthor("user").WithContent(genai.NewContentFromText("replace the background", genai.RoleUser)),
		types.NewEvent().WithAuthor("root_agent").WithContent(genai.NewContentFromParts([]*genai.Part{
			{FunctionCall: &genai.FunctionCall{ID: "adk-1", Name: "transfer_to_agent", Args: map[string]any{"agent_name": "image_edit_agent"}}},
		}, genai.RoleModel)),
		types.NewEvent().WithAuthor("image_edit_agent").WithContent(genai.NewContentFromText("Which image?", genai.RoleModel)),
		types.NewEvent().WithAuthor("image_edit_agent").WithBranch("other"),
		types.NewEvent().WithAuthor("image_edit_agent").WithBranch("parallel_branch").WithContent(genai.NewContentFromText("hidden", genai.RoleModel)),
	}

	got, err := getContents("main", events, "image_edit_agent")
	if err != nil {
		t.Fatalf("getContents() error = %v", err)
	}

	want := []*genai.Content{
		genai.NewContentFromText("replace the background", genai.RoleUser),
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				genai.NewPartFromText("For context:"),
				genai.NewPartFromText("[root_agent] called tool `transfer_to_agent` with parameters: map[agent_name:image_edit_agent]"),
			},
		},
		genai.NewContentFromText("Which image?", genai.RoleModel),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("getContents() mismatch (-want +got):\n%s", diff)
	}
}

func TestGetContents_DoesNotMutateHistory(t *testing.T) {
	event := types.NewEvent().WithAuthor("image_gen_agent").WithContent(genai.NewContentFromParts([]*genai.Part{
		{FunctionCall: &genai.FunctionCall{ID: "adk-42", Name: "generate_image_tool"}},
	}, genai.RoleModel))

	got, err := getContents("", []*types.Event{event}, "image_gen_agent")
	if err != nil {
		t.Fatalf("getContents() error = %v", err)
	}
	if id := got[0].Parts[0].FunctionCall.ID; id != "" {
		t.Errorf("request function call id = %q, want stripped", id)
	}
	if id := event.Content.Parts[0].FunctionCall.ID; id != "adk-42" {
		t.Errorf("session function call id = %q, want adk-42", id)
	}
}

func TestInjectSessionState(t *testing.T) {
	sessions := session.NewInMemoryService()
	ses, err := sessions.CreateSession(t.Context(), "design_studio", "u1", "s1", map[string]any{
		"brand":      "Acme",
		"user:style": "minimal",
	})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	ictx := types.NewInvocationContext(nil, ses, sessions)

	tests := map[string]struct {
		template string
		want     string
		wantErr  bool
	}{
		"state":          {template: "Brand {brand}, style {user:style}.", want: "Brand Acme, style minimal."},
		"optional":       {template: "SKU {sku?}.", want: "SKU ."},
		"not a name":     {template: `Return {"status": "success"}.`, want: `Return {"status": "success"}.`},
		"missing":        {template: "SKU {sku}.", wantErr: true},
		"no artifacts":   {template: "{artifact.brief.txt}", wantErr: true},
		"unknown prefix": {template: "{bad:key}", want: "{bad:key}"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := injectSessionState(t.Context(), tt.template, ictx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("injectSessionState() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("injectSessionState() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetTransferTargets(t *testing.T) {
	gen, _ := NewLLMAgent("image_gen_agent")
	edit, _ := NewLLMAgent("image_edit_agent", WithDisallowTransferToPeers(true))
	gcs, _ := NewLLMAgent("gcs_agent", WithDisallowTransferToParent(true), WithDisallowTransferToPeers(true))
	root, err := NewLLMAgent("root_agent", WithSubAgents(gen, edit, gcs))
	if err != nil {
		t.Fatalf("NewLLMAgent() error = %v", err)
	}

	names := func(agents []types.Agent) []string {
		out := make([]string, len(agents))
		for i, a := range agents {
			out[i] = a.Name()
		}
		return out
	}

	tests := map[string]struct {
		agent *LLMAgent
		want  []string
	}{
		"root":         {agent: root, want: []string{"image_gen_agent", "image_edit_agent", "gcs_agent"}},
		"peers":        {agent: gen, want: []string{"root_agent", "image_edit_agent", "gcs_agent"}},
		"no peers":     {agent: edit, want: []string{"root_agent"}},
		"no transfers": {agent: gcs, want: []string{}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, names(getTransferTargets(tt.agent))); diff != "" {
				t.Errorf("getTransferTargets() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
