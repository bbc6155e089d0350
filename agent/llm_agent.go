// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	deepcopy "github.com/tiendc/go-deepcopy"
	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/pkg/logging"
	"github.com/go-a2a/design-studio/types"
)

// InstructionProvider builds an instruction from the invocation.
//
// Instructions returned by a provider are used as is; session state is not
// injected into them.
type InstructionProvider func(rctx *types.ReadOnlyContext) string

// LLMAgent is an agent powered by a language model.
//
// One step of the agent calls the model once and then runs the tools it asked
// for. The agent keeps stepping until the model returns a final response.
type LLMAgent struct {
	*baseAgent

	// model is the model to use for the agent. When not set, the agent inherits
	// the model of its closest ancestor.
	model types.Model

	// instruction guides the agent's behavior.
	instruction any // string | InstructionProvider

	// globalInstruction applies to every agent of the tree. It only takes
	// effect on the root agent.
	globalInstruction any // string | InstructionProvider

	tools []types.Tool

	// generateContentConfig carries sampling settings. Tools and the system
	// instruction are built from the agent's own fields.
	generateContentConfig *genai.GenerateContentConfig

	disallowTransferToParent bool
	disallowTransferToPeers  bool

	// includeContents controls whether the session history is sent to the model.
	includeContents types.IncludeContents

	// outputKey is the session state key the final text response is stored under.
	outputKey string

	beforeModelCallbacks []types.BeforeModelCallback
	afterModelCallbacks  []types.AfterModelCallback

	subAgentsToAttach []types.Agent
}

var (
	_ types.Agent             = (*LLMAgent)(nil)
	_ types.TransferableAgent = (*LLMAgent)(nil)
)

// LLMAgentOption configures an [LLMAgent].
type LLMAgentOption func(*LLMAgent)

// WithModel sets the model to use.
func WithModel(model types.Model) LLMAgentOption {
	return func(a *LLMAgent) {
		a.model = model
	}
}

// WithDescription sets the one-line capability description other agents see.
func WithDescription(description string) LLMAgentOption {
	return func(a *LLMAgent) {
		a.description = description
	}
}

// WithInstruction sets the instruction for the agent.
func WithInstruction[T string | InstructionProvider](instruction T) LLMAgentOption {
	return func(a *LLMAgent) {
		a.instruction = instruction
	}
}

// WithGlobalInstruction sets the global instruction for the agent tree.
func WithGlobalInstruction[T string | InstructionProvider](instruction T) LLMAgentOption {
	return func(a *LLMAgent) {
		a.globalInstruction = instruction
	}
}

// WithTools appends tools to the agent.
func WithTools(tools ...types.Tool) LLMAgentOption {
	return func(a *LLMAgent) {
		a.tools = append(a.tools, tools...)
	}
}

// WithSubAgents attaches sub-agents to the agent.
func WithSubAgents(agents ...types.Agent) LLMAgentOption {
	return func(a *LLMAgent) {
		a.subAgentsToAttach = append(a.subAgentsToAttach, agents...)
	}
}

// WithGenerateContentConfig sets the [genai.GenerateContentConfig] for the agent.
func WithGenerateContentConfig(config *genai.GenerateContentConfig) LLMAgentOption {
	return func(a *LLMAgent) {
		a.generateContentConfig = config
	}
}

// WithDisallowTransferToParent prevents transferring control to parent.
func WithDisallowTransferToParent(disallow bool) LLMAgentOption {
	return func(a *LLMAgent) {
		a.disallowTransferToParent = disallow
	}
}

// WithDisallowTransferToPeers prevents transferring control to peers.
func WithDisallowTransferToPeers(disallow bool) LLMAgentOption {
	return func(a *LLMAgent) {
		a.disallowTransferToPeers = disallow
	}
}

// WithIncludeContents sets the [types.IncludeContents] for the agent.
func WithIncludeContents(includeContents types.IncludeContents) LLMAgentOption {
	return func(a *LLMAgent) {
		a.includeContents = includeContents
	}
}

// WithOutputKey sets the session state key the final response text is stored under.
func WithOutputKey(key string) LLMAgentOption {
	return func(a *LLMAgent) {
		a.outputKey = key
	}
}

// WithBeforeModelCallback adds a callback to run before sending a request to the model.
func WithBeforeModelCallback(callback types.BeforeModelCallback) LLMAgentOption {
	return func(a *LLMAgent) {
		a.beforeModelCallbacks = append(a.beforeModelCallbacks, callback)
	}
}

// WithAfterModelCallback adds a callback to run after receiving a response from the model.
func WithAfterModelCallback(callback types.AfterModelCallback) LLMAgentOption {
	return func(a *LLMAgent) {
		a.afterModelCallbacks = append(a.afterModelCallbacks, callback)
	}
}

// NewLLMAgent creates a new [LLMAgent] with the given name and options.
func NewLLMAgent(name string, opts ...LLMAgentOption) (*LLMAgent, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	a := &LLMAgent{
		baseAgent:       &baseAgent{name: name},
		includeContents: types.IncludeContentsDefault,
	}
	a.self = a
	for _, opt := range opts {
		opt(a)
	}

	if err := a.attach(a.subAgentsToAttach...); err != nil {
		return nil, err
	}
	a.subAgentsToAttach = nil

	switch a.includeContents {
	case types.IncludeContentsDefault, types.IncludeContentsNone:
	default:
		return nil, fmt.Errorf("agent %s: unknown include contents mode %q", name, a.includeContents)
	}

	return a, nil
}

// CanonicalModel returns the model of the agent, inherited from the closest ancestor when unset.
func (a *LLMAgent) CanonicalModel() (types.Model, error) {
	for ancestor := types.Agent(a); ancestor != nil; ancestor = ancestor.ParentAgent() {
		if llmAgent, ok := ancestor.(*LLMAgent); ok && llmAgent.model != nil {
			return llmAgent.model, nil
		}
	}
	return nil, fmt.Errorf("no model found for agent %s", a.name)
}

// CanonicalInstruction resolves the instruction of the agent.
//
// The second result reports whether session state injection must be skipped.
func (a *LLMAgent) CanonicalInstruction(rctx *types.ReadOnlyContext) (string, bool) {
	return resolveInstruction(a.instruction, rctx)
}

// CanonicalGlobalInstruction resolves the global instruction of the agent.
func (a *LLMAgent) CanonicalGlobalInstruction(rctx *types.ReadOnlyContext) (string, bool) {
	return resolveInstruction(a.globalInstruction, rctx)
}

func resolveInstruction(instruction any, rctx *types.ReadOnlyContext) (string, bool) {
	switch inst := instruction.(type) {
	case string:
		return inst, false
	case InstructionProvider:
		return inst(rctx), true
	default:
		return "", false
	}
}

// Tools returns the tools of the agent.
func (a *LLMAgent) Tools() []types.Tool {
	return a.tools
}

// DisallowTransferToParent implements [types.TransferableAgent].
func (a *LLMAgent) DisallowTransferToParent() bool {
	return a.disallowTransferToParent
}

// DisallowTransferToPeers implements [types.TransferableAgent].
func (a *LLMAgent) DisallowTransferToPeers() bool {
	return a.disallowTransferToPeers
}

// IncludeContents returns the mode of include contents in the model request.
func (a *LLMAgent) IncludeContents() types.IncludeContents {
	return a.includeContents
}

// OutputKey returns the key in session state to store the output of the agent.
func (a *LLMAgent) OutputKey() string {
	return a.outputKey
}

// generateConfig returns a copy of the agent's generate content config the request may mutate.
func (a *LLMAgent) generateConfig() (*genai.GenerateContentConfig, error) {
	config := &genai.GenerateContentConfig{}
	if a.generateContentConfig == nil {
		return config, nil
	}
	if err := deepcopy.Copy(config, a.generateContentConfig); err != nil {
		return nil, fmt.Errorf("copy generate content config: %w", err)
	}
	config.Tools = nil
	config.SystemInstruction = nil
	return config, nil
}

// Run implements [types.Agent].
func (a *LLMAgent) Run(ctx context.Context, parentContext *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		ictx := parentContext.WithAgent(a)
		logger := logging.FromContext(ctx).With(slog.String("agent", a.name))
		ctx = logging.NewContext(ctx, logger)

		for {
			var lastEvent *types.Event
			for event, err := range a.runOneStep(ctx, ictx) {
				if err != nil {
					yield(nil, err)
					return
				}
				lastEvent = event
				if !yield(event, nil) {
					return
				}
			}

			if lastEvent == nil || lastEvent.IsFinalResponse() || ictx.EndInvocation {
				return
			}
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

// saveOutputToState stores the final text of event under the output key.
func (a *LLMAgent) saveOutputToState(event *types.Event) {
	if a.outputKey == "" || !event.IsFinalResponse() {
		return
	}
	if text := event.Text(); text != "" {
		event.Actions.StateDelta[a.outputKey] = text
	}
}
