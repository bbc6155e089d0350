// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package imagegen provides the image_gen_agent, which generates product
// images from reference images.
package imagegen

import (
	"github.com/go-a2a/design-studio/agent"
	"github.com/go-a2a/design-studio/designstudio/callbacks"
	"github.com/go-a2a/design-studio/internal/config"
	"github.com/go-a2a/design-studio/types"
)

// New returns the image_gen_agent. opts are applied after the defaults.
func New(deps Deps, opts ...agent.LLMAgentOption) (*agent.LLMAgent, error) {
	defaults := []agent.LLMAgentOption{
		agent.WithDescription(Description),
		agent.WithInstruction(Instruction),
		agent.WithTools(NewTools(deps)...),
		agent.WithIncludeContents(types.IncludeContentsDefault),
		agent.WithBeforeModelCallback(callbacks.ProcessArtifacts(GenerateImageToolName, GenerateUnlabeledImageToolName)),
	}
	return agent.NewLLMAgent(config.ImageGenAgent, append(defaults, opts...)...)
}
