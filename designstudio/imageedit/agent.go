// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package imageedit provides the image_edit_agent, which changes the
// background of existing product images.
package imageedit

import (
	"github.com/go-a2a/design-studio/agent"
	"github.com/go-a2a/design-studio/designstudio/callbacks"
	"github.com/go-a2a/design-studio/internal/config"
	"github.com/go-a2a/design-studio/types"
)

// New returns the image_edit_agent. opts are applied after the defaults.
func New(deps Deps, opts ...agent.LLMAgentOption) (*agent.LLMAgent, error) {
	defaults := []agent.LLMAgentOption{
		agent.WithDescription(Description),
		agent.WithInstruction(Instruction),
		agent.WithTools(NewTools(deps)...),
		agent.WithIncludeContents(types.IncludeContentsDefault),
		agent.WithBeforeModelCallback(callbacks.ProcessArtifacts(
			ChangeBackgroundFastToolName,
			ChangeBackgroundCapabilityToolName,
			EditImageToolName,
		)),
	}
	return agent.NewLLMAgent(config.ImageEditAgent, append(defaults, opts...)...)
}
