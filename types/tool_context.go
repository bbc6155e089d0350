// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

// ToolContext is the context handed to a [Tool] for a single function call.
type ToolContext struct {
	*CallbackContext

	functionCallID string
}

// NewToolContext returns a [*ToolContext] whose side effects are recorded on actions.
//
// A nil actions allocates a fresh [EventActions].
func NewToolContext(ictx *InvocationContext, functionCallID string, actions *EventActions) *ToolContext {
	if actions == nil {
		actions = NewEventActions()
	}
	return &ToolContext{
		CallbackContext: newCallbackContext(ictx, actions),
		functionCallID:  functionCallID,
	}
}

// FunctionCallID returns the id of the function call this tool runs for.
func (tc *ToolContext) FunctionCallID() string {
	return tc.functionCallID
}

// Actions returns the event actions of the function response event.
func (tc *ToolContext) Actions() *EventActions {
	return tc.eventActions
}
