// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

// Event represents an event in a conversation between agents and users.
//
// It is used to store the content of the conversation, as well as the actions
// taken by the agents like function calls, etc.
type Event struct {
	*LLMResponse

	// InvocationID is the invocation ID of the event.
	InvocationID string

	// Author is the 'user' or the name of the agent, indicating who appended the event to the session.
	Author string

	// Actions is the actions taken by the agent.
	Actions *EventActions

	// Branch is the branch of the event.
	//
	// The format is like agent_1.agent_2.agent_3, where agent_1 is the parent of
	// agent_2, and agent_2 is the parent of agent_3.
	Branch string

	// ID is the unique identifier of the event.
	ID string

	// Timestamp is the creation time of the event.
	Timestamp time.Time
}

// WithLLMResponse sets the LLMResponse for the event.
func (e *Event) WithLLMResponse(response *LLMResponse) *Event {
	e.LLMResponse = response
	return e
}

// WithContent sets the content of the event's LLMResponse.
func (e *Event) WithContent(content *genai.Content) *Event {
	if e.LLMResponse == nil {
		e.LLMResponse = new(LLMResponse)
	}
	e.LLMResponse.Content = content
	return e
}

// WithInvocationID sets the invocation ID of the event.
func (e *Event) WithInvocationID(id string) *Event {
	e.InvocationID = id
	return e
}

// WithAuthor sets the author of the event.
func (e *Event) WithAuthor(author string) *Event {
	e.Author = author
	return e
}

// WithActions sets the actions of the event.
func (e *Event) WithActions(actions *EventActions) *Event {
	e.Actions = actions
	return e
}

// WithBranch sets the branch of the event.
func (e *Event) WithBranch(branch string) *Event {
	e.Branch = branch
	return e
}

// NewEvent creates a new event with a unique ID and timestamp.
func NewEvent() *Event {
	return &Event{
		LLMResponse: &LLMResponse{},
		Actions:     NewEventActions(),
		ID:          NewEventID(),
		Timestamp:   time.Now(),
	}
}

// IsFinalResponse returns whether the event is the final response of the agent.
func (e *Event) IsFinalResponse() bool {
	if e.Actions != nil && e.Actions.SkipSummarization {
		return true
	}
	partial := e.LLMResponse != nil && e.Partial

	return len(e.GetFunctionCalls()) == 0 && len(e.GetFunctionResponses()) == 0 && !partial
}

// GetFunctionCalls returns the function calls in the event.
func (e *Event) GetFunctionCalls() []*genai.FunctionCall {
	if e.LLMResponse == nil || e.Content == nil {
		return nil
	}

	var funcCalls []*genai.FunctionCall
	for _, part := range e.Content.Parts {
		if part.FunctionCall != nil {
			funcCalls = append(funcCalls, part.FunctionCall)
		}
	}
	return funcCalls
}

// GetFunctionResponses returns the function responses in the event.
func (e *Event) GetFunctionResponses() []*genai.FunctionResponse {
	if e.LLMResponse == nil || e.Content == nil {
		return nil
	}

	var funcResponses []*genai.FunctionResponse
	for _, part := range e.Content.Parts {
		if part.FunctionResponse != nil {
			funcResponses = append(funcResponses, part.FunctionResponse)
		}
	}
	return funcResponses
}

// Text returns the concatenated text parts of the event.
func (e *Event) Text() string {
	if e.LLMResponse == nil || e.Content == nil {
		return ""
	}

	var text string
	for _, part := range e.Content.Parts {
		if part.Text != "" && !part.Thought {
			text += part.Text
		}
	}
	return text
}

// NewEventID returns a new random event id.
func NewEventID() string {
	return uuid.NewString()
}
