// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"google.golang.org/genai"
)

// ReadOnlyContext is the view of an invocation handed to instruction providers.
type ReadOnlyContext struct {
	InvocationContext *InvocationContext
}

// NewReadOnlyContext wraps ictx.
func NewReadOnlyContext(ictx *InvocationContext) *ReadOnlyContext {
	return &ReadOnlyContext{InvocationContext: ictx}
}

// InvocationID returns the id of the running invocation.
func (rc *ReadOnlyContext) InvocationID() string { return rc.InvocationContext.InvocationID }

// AgentName returns the name of the running agent.
func (rc *ReadOnlyContext) AgentName() string { return rc.InvocationContext.Agent.Name() }

// UserContent returns the message that started the invocation.
func (rc *ReadOnlyContext) UserContent() *genai.Content { return rc.InvocationContext.UserContent }

// StateValue returns the committed session state stored under key.
func (rc *ReadOnlyContext) StateValue(key string) (any, bool) {
	ses := rc.InvocationContext.Session
	if ses == nil {
		return nil, false
	}
	v, ok := ses.State()[key]
	return v, ok
}
