// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"iter"
)

// Agent is a node of the agent tree.
type Agent interface {
	// Name returns the agent's name.
	//
	// Agent name must be unique within the agent tree and cannot be "user",
	// since it's reserved for end-user's input.
	Name() string

	// Description returns the one-line capability description.
	//
	// The model uses this to determine whether to delegate control to the agent.
	Description() string

	// ParentAgent returns the parent agent, or nil for the root.
	ParentAgent() Agent

	// SubAgents returns the direct children of this agent.
	SubAgents() []Agent

	// Run runs the agent for one invocation and streams the events it produces.
	Run(ctx context.Context, ictx *InvocationContext) iter.Seq2[*Event, error]

	// RootAgent returns the root of the tree this agent belongs to.
	RootAgent() Agent

	// FindAgent finds the agent with the given name in this agent and its descendants.
	FindAgent(name string) Agent

	// FindSubAgent finds the agent with the given name in this agent's descendants.
	FindSubAgent(name string) Agent
}

// TransferableAgent is implemented by agents that report whether the model may
// move the conversation away from them.
type TransferableAgent interface {
	Agent

	// DisallowTransferToParent reports whether LLM-controlled transfer to the parent agent is disabled.
	DisallowTransferToParent() bool

	// DisallowTransferToPeers reports whether LLM-controlled transfer to the peer agents is disabled.
	DisallowTransferToPeers() bool
}

// BeforeModelCallback runs before the model is called.
//
// Returning a non-nil [*LLMResponse] skips the model call and uses the returned
// response instead. The callback may rewrite request in place.
type BeforeModelCallback func(ctx context.Context, cctx *CallbackContext, request *LLMRequest) (*LLMResponse, error)

// AfterModelCallback runs after the model returned. A non-nil result replaces the response.
type AfterModelCallback func(ctx context.Context, cctx *CallbackContext, response *LLMResponse) (*LLMResponse, error)

// IncludeContents controls whether the session history is sent to the model.
type IncludeContents string

const (
	IncludeContentsDefault IncludeContents = "default"
	IncludeContentsNone    IncludeContents = "none"
)
