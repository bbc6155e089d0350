// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

// LLMCallsLimitExceededError is returned when an invocation makes more model calls than [RunConfig.MaxLLMCalls].
type LLMCallsLimitExceededError string

// NewLLMCallsLimitExceededError returns the new [LLMCallsLimitExceededError] error.
func NewLLMCallsLimitExceededError(msg string, a ...any) error {
	return LLMCallsLimitExceededError(fmt.Sprintf(msg, a...))
}

// Error returns a string representation of the LLMCallsLimitExceededError.
func (e LLMCallsLimitExceededError) Error() string {
	return string(e)
}

type invocationCostManager struct {
	llmCalls int
}

func (mgr *invocationCostManager) incrementAndEnforce(runConfig *RunConfig) error {
	mgr.llmCalls++
	if runConfig != nil && runConfig.MaxLLMCalls > 0 && mgr.llmCalls > runConfig.MaxLLMCalls {
		return NewLLMCallsLimitExceededError("max number of llm calls limit of %d exceeded", runConfig.MaxLLMCalls)
	}
	return nil
}

// InvocationContext holds the data of a single invocation of an agent.
//
// An invocation starts with a user message and ends with a final response. It
// can contain several agent calls when the model transfers the conversation;
// an LLM agent call runs steps in a loop, and a step calls the model once and
// then the tools it asked for.
//
//	┌─────────────────────── invocation ──────────────────────────┐
//	┌──────────── llm_agent_call_1 ────────────┐ ┌─ agent_call_2 ─┐
//	┌──── step_1 ────────┐ ┌───── step_2 ──────┐
//	[call_llm] [call_tool] [call_llm] [transfer]
type InvocationContext struct {
	ArtifactService ArtifactService
	SessionService  SessionService

	// InvocationID is the id of this invocation context.
	InvocationID string

	// Branch isolates the history of agents running side by side, e.g.
	// root_agent.gcs_agent. Agents reached by transfer share the branch of the
	// agent that transferred.
	Branch string

	// Agent is the agent currently running.
	Agent Agent

	// UserContent is the user content that started this invocation.
	UserContent *genai.Content

	// Session is the session of this invocation.
	Session Session

	// EndInvocation is set by callbacks or tools to terminate the invocation.
	EndInvocation bool

	RunConfig *RunConfig

	costManager *invocationCostManager
}

// InvocationContextOption is a function that modifies the [InvocationContext].
type InvocationContextOption func(*InvocationContext)

// WithArtifactService sets the artifact service of the invocation.
func WithArtifactService(svc ArtifactService) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.ArtifactService = svc
	}
}

// WithUserContent sets the user content that started the invocation.
func WithUserContent(content *genai.Content) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.UserContent = content
	}
}

// WithRunConfig sets the run configuration of the invocation.
func WithRunConfig(cfg *RunConfig) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.RunConfig = cfg
	}
}

// WithInvocationID overrides the generated invocation id.
func WithInvocationID(id string) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.InvocationID = id
	}
}

// NewInvocationContext creates a new [InvocationContext].
func NewInvocationContext(agent Agent, session Session, sessionSvc SessionService, opts ...InvocationContextOption) *InvocationContext {
	ictx := &InvocationContext{
		Agent:          agent,
		Session:        session,
		SessionService: sessionSvc,
		InvocationID:   NewInvocationContextID(),
		RunConfig:      &RunConfig{MaxLLMCalls: DefaultMaxLLMCalls},
		costManager:    &invocationCostManager{},
	}
	for _, opt := range opts {
		opt(ictx)
	}

	return ictx
}

// WithAgent returns a shallow copy of ictx running agent.
//
// The copy shares the LLM call budget of ictx.
func (ictx *InvocationContext) WithAgent(agent Agent) *InvocationContext {
	clone := *ictx
	clone.Agent = agent
	return &clone
}

// IncrementLLMCallCount tracks number of llm calls made.
func (ictx *InvocationContext) IncrementLLMCallCount() error {
	if ictx.costManager == nil {
		ictx.costManager = &invocationCostManager{}
	}
	return ictx.costManager.incrementAndEnforce(ictx.RunConfig)
}

// AppName returns the application name of the session.
func (ictx *InvocationContext) AppName() string {
	return ictx.Session.AppName()
}

// UserID returns the user id of the session.
func (ictx *InvocationContext) UserID() string {
	return ictx.Session.UserID()
}

// NewInvocationContextID generates a new invocation context ID.
func NewInvocationContextID() string {
	return `e-` + uuid.NewString()
}
