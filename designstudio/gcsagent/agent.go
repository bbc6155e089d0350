// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package gcsagent provides the gcs_agent, which searches, loads and
// publishes images in Cloud Storage.
package gcsagent

import (
	"github.com/go-a2a/design-studio/agent"
	"github.com/go-a2a/design-studio/internal/config"
)

// New returns the gcs_agent. opts are applied after the defaults.
func New(store AssetStore, opts ...agent.LLMAgentOption) (*agent.LLMAgent, error) {
	defaults := []agent.LLMAgentOption{
		agent.WithDescription(Description),
		agent.WithInstruction(Instruction),
		agent.WithTools(NewTools(store)...),
	}
	return agent.NewLLMAgent(config.GCSAgent, append(defaults, opts...)...)
}
