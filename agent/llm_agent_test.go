// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/agent"
	"github.com/go-a2a/design-studio/session"
	"github.com/go-a2a/design-studio/tool/tools"
	"github.com/go-a2a/design-studio/types"
)

type fakeModel struct {
	name      string
	responses []*types.LLMResponse
	requests  []*types.LLMRequest
}

func (m *fakeModel) Name() string { return m.name }

func (m *fakeModel) GenerateContent(_ context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	m.requests = append(m.requests, request)
	if len(m.responses) == 0 {
		return nil, errors.New("no scripted response left")
	}
	response := m.responses[0]
	m.responses = m.responses[1:]
	return response, nil
}

func textResponse(text string) *types.LLMResponse {
	return &types.LLMResponse{Content: genai.NewContentFromText(text, genai.RoleModel)}
}

func callResponse(name string, args map[string]any) *types.LLMResponse {
	return &types.LLMResponse{Content: genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromFunctionCall(name, args),
	}, genai.RoleModel)}
}

type skuArgs struct {
	SKU string `json:"sku"`
}

type skuResult struct {
	Status string `json:"status"`
	Name   string `json:"name"`
}

func skuTool() types.Tool {
	return tools.MustFunctionTool("get_sku_details", "Gets SKU details.", nil,
		func(_ context.Context, toolCtx *types.ToolContext, args skuArgs) (skuResult, error) {
			toolCtx.State().Set("last_sku", args.SKU)
			return skuResult{Status: tools.StatusSuccess, Name: "Oak countertop " + args.SKU}, nil
		})
}

// run drives root for one user message the way the runner does, appending
// every event to the session as it is produced.
func run(t *testing.T, root types.Agent, opts ...types.InvocationContextOption) ([]*types.Event, error) {
	t.Helper()
	ctx := t.Context()

	sessions := session.NewInMemoryService()
	ses, err := sessions.CreateSession(ctx, "design_studio", "u1", "s1", nil)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	userContent := genai.NewContentFromText("show me SKU CT-01", genai.RoleUser)
	userEvent := types.NewEvent().WithAuthor("user").WithContent(userContent)
	if _, err := sessions.AppendEvent(ctx, ses, userEvent); err != nil {
		t.Fatalf("AppendEvent() error = %v", err)
	}

	ictx := types.NewInvocationContext(root, ses, sessions, append([]types.InvocationContextOption{types.WithUserContent(userContent)}, opts...)...)
	var events []*types.Event
	for event, err := range root.Run(ctx, ictx) {
		if err != nil {
			return events, err
		}
		if _, err := sessions.AppendEvent(ctx, ses, event); err != nil {
			t.Fatalf("AppendEvent() error = %v", err)
		}
		events = append(events, event)
	}
	return events, nil
}

func authors(events []*types.Event) []string {
	out := make([]string, len(events))
	for i, event := range events {
		out[i] = event.Author
	}
	return out
}

func TestLLMAgent_RunToolThenAnswer(t *testing.T) {
	model := &fakeModel{
		name: "gemini-2.5-flash",
		responses: []*types.LLMResponse{
			callResponse("get_sku_details", map[string]any{"sku": "CT-01"}),
			textResponse("CT-01 is an oak countertop."),
		},
	}
	a, err := agent.NewLLMAgent("image_gen_agent",
		agent.WithModel(model),
		agent.WithInstruction("Help with SKU {last_sku?}."),
		agent.WithTools(skuTool()),
		agent.WithOutputKey("answer"),
	)
	if err != nil {
		t.Fatalf("NewLLMAgent() error = %v", err)
	}

	events, err := run(t, a)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := len(events), 3; got != want {
		t.Fatalf("len(events) = %d, want %d", got, want)
	}

	call := events[0].GetFunctionCalls()[0]
	if !strings.HasPrefix(call.ID, agent.FunctionCallIDPrefix) {
		t.Errorf("function call id = %q, want prefix %q", call.ID, agent.FunctionCallIDPrefix)
	}
	resp := events[1].GetFunctionResponses()[0]
	if resp.ID != call.ID {
		t.Errorf("function response id = %q, want %q", resp.ID, call.ID)
	}
	if diff := cmp.Diff(map[string]any{"last_sku": "CT-01"}, events[1].Actions.StateDelta); diff != "" {
		t.Errorf("function response state delta mismatch (-want +got):\n%s", diff)
	}
	if got, want := events[2].Actions.StateDelta["answer"], "CT-01 is an oak countertop."; got != want {
		t.Errorf("output key = %v, want %q", got, want)
	}

	if got, want := len(model.requests), 2; got != want {
		t.Fatalf("model calls = %d, want %d", got, want)
	}
	first, second := model.requests[0], model.requests[1]
	if si := first.SystemInstructionText(); !strings.Contains(si, "Help with SKU .") {
		t.Errorf("first system instruction = %q, want empty optional state", si)
	}
	if si := second.SystemInstructionText(); !strings.Contains(si, "Help with SKU CT-01.") {
		t.Errorf("second system instruction = %q, want injected state", si)
	}
	if got, want := len(second.Contents), 3; got != want {
		t.Fatalf("second request contents = %d, want %d", got, want)
	}
	if id := second.Contents[1].Parts[0].FunctionCall.ID; id != "" {
		t.Errorf("client function call id sent to model: %q", id)
	}
}

func TestLLMAgent_Transfer(t *testing.T) {
	rootModel := &fakeModel{
		name: "gemini-2.5-flash",
		responses: []*types.LLMResponse{
			callResponse(tools.TransferToAgentName, map[string]any{"agent_name": "gcs_agent"}),
		},
	}
	gcsModel := &fakeModel{
		name:      "gemini-2.5-flash",
		responses: []*types.LLMResponse{textResponse("Found 2 images.")},
	}
	gcs, err := agent.NewLLMAgent("gcs_agent",
		agent.WithModel(gcsModel),
		agent.WithDescription("Searches images in Cloud Storage."),
	)
	if err != nil {
		t.Fatalf("NewLLMAgent() error = %v", err)
	}
	root, err := agent.NewLLMAgent("root_agent",
		agent.WithModel(rootModel),
		agent.WithSubAgents(gcs),
	)
	if err != nil {
		t.Fatalf("NewLLMAgent() error = %v", err)
	}

	events, err := run(t, root)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if diff := cmp.Diff([]string{"root_agent", "root_agent", "gcs_agent"}, authors(events)); diff != "" {
		t.Errorf("authors mismatch (-want +got):\n%s", diff)
	}
	if got := events[1].Actions.TransferToAgent; got != "gcs_agent" {
		t.Errorf("TransferToAgent = %q, want gcs_agent", got)
	}

	si := rootModel.requests[0].SystemInstructionText()
	if !strings.Contains(si, "Agent name: gcs_agent") || !strings.Contains(si, "Searches images in Cloud Storage.") {
		t.Errorf("root instruction does not list transfer targets: %q", si)
	}
	if _, ok := rootModel.requests[0].ToolMap[tools.TransferToAgentName]; !ok {
		t.Error("transfer_to_agent not declared for root")
	}
	// the peer-less sub-agent may still transfer back to its parent
	if si := gcsModel.requests[0].SystemInstructionText(); !strings.Contains(si, "Your parent agent is root_agent.") {
		t.Errorf("sub-agent instruction does not mention parent: %q", si)
	}
}

func TestLLMAgent_TransferUnknownAgent(t *testing.T) {
	root, err := agent.NewLLMAgent("root_agent",
		agent.WithModel(&fakeModel{
			name:      "gemini-2.5-flash",
			responses: []*types.LLMResponse{callResponse(tools.TransferToAgentName, map[string]any{"agent_name": "nobody"})},
		}),
	)
	if err != nil {
		t.Fatalf("NewLLMAgent() error = %v", err)
	}

	if _, err := run(t, root); !errors.Is(err, types.ErrAgentNotFound) {
		t.Fatalf("Run() error = %v, want %v", err, types.ErrAgentNotFound)
	}
}

func TestLLMAgent_BeforeModelCallbackShortCircuits(t *testing.T) {
	model := &fakeModel{name: "gemini-2.5-flash"}
	a, err := agent.NewLLMAgent("root_agent",
		agent.WithModel(model),
		agent.WithBeforeModelCallback(func(_ context.Context, cctx *types.CallbackContext, request *types.LLMRequest) (*types.LLMResponse, error) {
			cctx.State().Set("seen", len(request.Contents))
			return textResponse("cached"), nil
		}),
	)
	if err != nil {
		t.Fatalf("NewLLMAgent() error = %v", err)
	}

	events, err := run(t, a)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(model.requests) != 0 {
		t.Fatalf("model called %d times, want 0", len(model.requests))
	}
	if got := events[0].Text(); got != "cached" {
		t.Errorf("text = %q, want cached", got)
	}
	if got := events[0].Actions.StateDelta["seen"]; got != 1 {
		t.Errorf("callback state delta = %v, want 1", got)
	}
}

func TestLLMAgent_MaxLLMCalls(t *testing.T) {
	responses := make([]*types.LLMResponse, 5)
	for i := range responses {
		responses[i] = callResponse("get_sku_details", map[string]any{"sku": "CT-01"})
	}
	a, err := agent.NewLLMAgent("image_gen_agent",
		agent.WithModel(&fakeModel{name: "gemini-2.5-flash", responses: responses}),
		agent.WithTools(skuTool()),
	)
	if err != nil {
		t.Fatalf("NewLLMAgent() error = %v", err)
	}

	_, err = run(t, a, types.WithRunConfig(&types.RunConfig{MaxLLMCalls: 2}))
	var limitErr types.LLMCallsLimitExceededError
	if !errors.As(err, &limitErr) {
		t.Fatalf("Run() error = %v, want LLMCallsLimitExceededError", err)
	}
}

func TestLLMAgent_UnknownFunction(t *testing.T) {
	a, err := agent.NewLLMAgent("image_gen_agent",
		agent.WithModel(&fakeModel{
			name: "gemini-2.5-flash",
			responses: []*types.LLMResponse{
				callResponse("made_up_tool", nil),
				textResponse("sorry"),
			},
		}),
	)
	if err != nil {
		t.Fatalf("NewLLMAgent() error = %v", err)
	}

	events, err := run(t, a)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	result := events[1].GetFunctionResponses()[0].Response
	if result["status"] != tools.StatusError {
		t.Errorf("unknown function result = %v, want error status", result)
	}
}

func TestNewLLMAgent_Validation(t *testing.T) {
	sub, err := agent.NewLLMAgent("gcs_agent")
	if err != nil {
		t.Fatalf("NewLLMAgent() error = %v", err)
	}
	if _, err := agent.NewLLMAgent("root_agent", agent.WithSubAgents(sub)); err != nil {
		t.Fatalf("NewLLMAgent() error = %v", err)
	}

	tests := map[string]struct {
		name string
		opts []agent.LLMAgentOption
	}{
		"reserved name":   {name: "user"},
		"invalid name":    {name: "image-gen"},
		"second parent":   {name: "other_root", opts: []agent.LLMAgentOption{agent.WithSubAgents(sub)}},
		"include content": {name: "root_agent", opts: []agent.LLMAgentOption{agent.WithIncludeContents("all")}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := agent.NewLLMAgent(tt.name, tt.opts...); err == nil {
				t.Fatal("NewLLMAgent() error = nil, want error")
			}
		})
	}
}

func TestLLMAgent_InheritsModel(t *testing.T) {
	model := &fakeModel{name: "gemini-2.5-flash"}
	sub, err := agent.NewLLMAgent("image_edit_agent")
	if err != nil {
		t.Fatalf("NewLLMAgent() error = %v", err)
	}
	if _, err := agent.NewLLMAgent("root_agent", agent.WithModel(model), agent.WithSubAgents(sub)); err != nil {
		t.Fatalf("NewLLMAgent() error = %v", err)
	}

	got, err := sub.CanonicalModel()
	if err != nil {
		t.Fatalf("CanonicalModel() error = %v", err)
	}
	if got != types.Model(model) {
		t.Errorf("CanonicalModel() = %v, want the root model", got)
	}
}
