// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/pkg/logging"
	"github.com/go-a2a/design-studio/tool/tools"
	"github.com/go-a2a/design-studio/types"
)

// FunctionCallIDPrefix marks function call ids assigned by the agent rather than the model.
const FunctionCallIDPrefix = "adk-"

func generateClientFunctionCallID() string {
	return FunctionCallIDPrefix + uuid.NewString()
}

// populateClientFunctionCallID assigns an id to every function call the model left without one.
func populateClientFunctionCallID(modelResponseEvent *types.Event) {
	for _, funcCall := range modelResponseEvent.GetFunctionCalls() {
		if funcCall.ID == "" {
			funcCall.ID = generateClientFunctionCallID()
		}
	}
}

// removeClientFunctionCallID strips the ids assigned by the agent before content is sent back to the model.
func removeClientFunctionCallID(content *genai.Content) *genai.Content {
	for _, part := range content.Parts {
		if part.FunctionCall != nil && strings.HasPrefix(part.FunctionCall.ID, FunctionCallIDPrefix) {
			part.FunctionCall.ID = ""
		}
		if part.FunctionResponse != nil && strings.HasPrefix(part.FunctionResponse.ID, FunctionCallIDPrefix) {
			part.FunctionResponse.ID = ""
		}
	}
	return content
}

// handleFunctionCalls runs the tools the model called and returns one merged function response event.
//
// Every call gets its own [types.ToolContext]; their actions are merged into
// the returned event.
func handleFunctionCalls(ctx context.Context, ictx *types.InvocationContext, functionCallEvent *types.Event, toolMap map[string]types.Tool) (*types.Event, error) {
	logger := logging.FromContext(ctx)

	funcCalls := functionCallEvent.GetFunctionCalls()
	responseEvents := make([]*types.Event, 0, len(funcCalls))
	for _, funcCall := range funcCalls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		toolCtx := types.NewToolContext(ictx, funcCall.ID, nil)
		t, ok := toolMap[funcCall.Name]
		if !ok {
			logger.WarnContext(ctx, "model called an unknown function", slog.String("function", funcCall.Name))
			result := tools.ErrorResult("Function %s is not found in the tools of agent %s", funcCall.Name, ictx.Agent.Name())
			responseEvents = append(responseEvents, buildResponseEvent(funcCall.Name, result, toolCtx, ictx))
			continue
		}

		result, err := callTool(ctx, t, funcCall.Args, toolCtx)
		if err != nil {
			return nil, fmt.Errorf("call tool %s: %w", funcCall.Name, err)
		}
		responseEvents = append(responseEvents, buildResponseEvent(t.Name(), result, toolCtx, ictx))
	}

	return mergeParallelFunctionResponseEvents(responseEvents), nil
}

// callTool runs t and returns its result as the object the model receives.
func callTool(ctx context.Context, t types.Tool, args map[string]any, toolCtx *types.ToolContext) (map[string]any, error) {
	res, err := t.Run(ctx, args, toolCtx)
	if err != nil {
		return nil, err
	}

	switch res := res.(type) {
	case map[string]any:
		return res, nil
	case nil:
		return map[string]any{}, nil
	default:
		return map[string]any{"result": res}, nil
	}
}

func buildResponseEvent(name string, result map[string]any, toolCtx *types.ToolContext, ictx *types.InvocationContext) *types.Event {
	part := genai.NewPartFromFunctionResponse(name, result)
	part.FunctionResponse.ID = toolCtx.FunctionCallID()

	return types.NewEvent().
		WithInvocationID(ictx.InvocationID).
		WithAuthor(ictx.Agent.Name()).
		WithBranch(ictx.Branch).
		WithContent(genai.NewContentFromParts([]*genai.Part{part}, genai.RoleUser)).
		WithActions(toolCtx.Actions())
}

// mergeParallelFunctionResponseEvents merges function response events into a
// single event so every function call of a model turn is answered in one content.
func mergeParallelFunctionResponseEvents(events []*types.Event) *types.Event {
	switch len(events) {
	case 0:
		return nil
	case 1:
		return events[0]
	}

	base := events[0]
	var parts []*genai.Part
	actions := types.NewEventActions()
	for _, event := range events {
		parts = append(parts, event.Content.Parts...)
		actions.Merge(event.Actions)
	}

	merged := types.NewEvent().
		WithInvocationID(base.InvocationID).
		WithAuthor(base.Author).
		WithBranch(base.Branch).
		WithContent(genai.NewContentFromParts(parts, genai.RoleUser)).
		WithActions(actions)
	merged.Timestamp = base.Timestamp

	return merged
}
