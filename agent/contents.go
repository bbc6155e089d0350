// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"fmt"
	"strings"

	deepcopy "github.com/tiendc/go-deepcopy"
	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/types"
)

// contentsProcessor builds the request contents from the session history.
type contentsProcessor struct{}

func (contentsProcessor) processRequest(_ context.Context, a *LLMAgent, ictx *types.InvocationContext, request *types.LLMRequest) error {
	if a.includeContents == types.IncludeContentsNone {
		return nil
	}

	contents, err := getContents(ictx.Branch, ictx.Session.Events(), a.name)
	if err != nil {
		return err
	}
	request.Contents = contents
	return nil
}

// getContents converts the events visible on branch into model contents.
//
// Replies of other agents are rewritten as user context so the current agent
// can continue from them.
func getContents(currentBranch string, events []*types.Event, agentName string) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(events))
	for _, event := range events {
		if event.LLMResponse == nil || event.Content == nil || len(event.Content.Parts) == 0 {
			// events purely for mutating session state
			continue
		}
		if !isEventBelongsToBranch(currentBranch, event) {
			continue
		}

		content := event.Content
		if isOtherAgentReply(agentName, event) {
			content = convertForeignContent(event)
		}

		copied := &genai.Content{}
		if err := deepcopy.Copy(copied, content); err != nil {
			return nil, fmt.Errorf("copy content of event %s: %w", event.ID, err)
		}
		contents = append(contents, removeClientFunctionCallID(copied))
	}

	return contents, nil
}

// isOtherAgentReply reports whether the event is a reply from another agent.
func isOtherAgentReply(currentAgentName string, event *types.Event) bool {
	return currentAgentName != "" && event.Author != currentAgentName && event.Author != "user"
}

// convertForeignContent converts the content of an event authored by another agent into user context.
func convertForeignContent(event *types.Event) *genai.Content {
	content := &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			genai.NewPartFromText("For context:"),
		},
	}

	for _, part := range event.Content.Parts {
		switch {
		case part.Thought:
			// thoughts of other agents are not shared
		case part.Text != "":
			content.Parts = append(content.Parts, genai.NewPartFromText(fmt.Sprintf("[%s] said: %s", event.Author, part.Text)))

		case part.FunctionCall != nil:
			content.Parts = append(content.Parts, genai.NewPartFromText(fmt.Sprintf("[%s] called tool `%s` with parameters: %v", event.Author, part.FunctionCall.Name, part.FunctionCall.Args)))

		case part.FunctionResponse != nil:
			content.Parts = append(content.Parts, genai.NewPartFromText(fmt.Sprintf("[%s] `%s` tool returned result: %v", event.Author, part.FunctionResponse.Name, part.FunctionResponse.Response)))

		default:
			content.Parts = append(content.Parts, part)
		}
	}

	return content
}

// isEventBelongsToBranch reports whether the event belongs to the invocation branch,
// that is when the event branch is a prefix of the invocation branch.
func isEventBelongsToBranch(invocationBranch string, event *types.Event) bool {
	if invocationBranch == "" || event.Branch == "" {
		return true
	}
	return strings.HasPrefix(invocationBranch, event.Branch)
}
