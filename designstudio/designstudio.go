// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package designstudio assembles the design studio agent tree: a root agent
// delegating to the image generation, image editing and Cloud Storage agents.
package designstudio

import (
	"fmt"

	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/agent"
	"github.com/go-a2a/design-studio/designstudio/callbacks"
	"github.com/go-a2a/design-studio/designstudio/gcsagent"
	"github.com/go-a2a/design-studio/designstudio/imageedit"
	"github.com/go-a2a/design-studio/designstudio/imagegen"
	"github.com/go-a2a/design-studio/internal/config"
	"github.com/go-a2a/design-studio/model"
)

// AssetStore is the Cloud Storage surface shared by the image_gen_agent and gcs_agent tools.
type AssetStore interface {
	imagegen.AssetStore
	gcsagent.AssetStore
}

// New returns the root_agent of the design studio.
//
// Each agent gets the model and sampling parameters cfg resolves for it.
func New(cfg *config.Config, deps *Deps) (*agent.LLMAgent, error) {
	opts := make(map[string][]agent.LLMAgentOption, 4)
	for _, name := range []string{config.RootAgent, config.ImageGenAgent, config.ImageEditAgent, config.GCSAgent} {
		o, err := agentOptions(cfg, deps, name)
		if err != nil {
			return nil, fmt.Errorf("configure %s: %w", name, err)
		}
		opts[name] = o
	}

	imageGen, err := imagegen.New(imagegen.Deps{Generator: deps.Generator, Assets: deps.Assets}, opts[config.ImageGenAgent]...)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", config.ImageGenAgent, err)
	}

	imageEdit, err := imageedit.New(imageedit.Deps{
		Fast:       deps.FastBackground,
		Capability: deps.CapabilityBackground,
		Editor:     deps.Editor,
	}, opts[config.ImageEditAgent]...)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", config.ImageEditAgent, err)
	}

	gcs, err := gcsagent.New(deps.Assets, opts[config.GCSAgent]...)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", config.GCSAgent, err)
	}

	root, err := agent.NewLLMAgent(config.RootAgent, append(opts[config.RootAgent],
		agent.WithDescription(RootDescription),
		agent.WithInstruction(RootInstruction),
		agent.WithSubAgents(imageGen, imageEdit, gcs),
		agent.WithBeforeModelCallback(callbacks.ProcessArtifacts()),
	)...)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", config.RootAgent, err)
	}
	return root, nil
}

func agentOptions(cfg *config.Config, deps *Deps, name string) ([]agent.LLMAgentOption, error) {
	params := cfg.Agents.Params(name)

	llm, err := model.New(params.Model, deps.Models)
	if err != nil {
		return nil, err
	}

	generateConfig := &genai.GenerateContentConfig{Temperature: params.Temperature}
	if params.MaxOutputTokens != nil {
		generateConfig.MaxOutputTokens = *params.MaxOutputTokens
	}

	return []agent.LLMAgentOption{
		agent.WithModel(llm),
		agent.WithGenerateContentConfig(generateConfig),
	}, nil
}
