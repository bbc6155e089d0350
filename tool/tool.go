// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"

	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/types"
)

// Tool holds the name and description every tool implementation shares.
//
// Embed it and implement GetDeclaration and Run to satisfy [types.Tool].
type Tool struct {
	name        string
	description string
}

// NewTool returns the tool with the given name and description.
func NewTool(name, description string) *Tool {
	return &Tool{
		name:        name,
		description: description,
	}
}

// Name implements [types.Tool].
func (t *Tool) Name() string {
	return t.name
}

// Description implements [types.Tool].
func (t *Tool) Description() string {
	return t.description
}

// Declaration returns the function declaration of t taking params.
func (t *Tool) Declaration(params *genai.Schema) *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.name,
		Description: t.description,
		Parameters:  params,
	}
}

// Declare registers self on request so the model can call it.
//
// Implementations of [types.Tool] without extra request processing call it
// from ProcessLLMRequest.
func Declare(_ context.Context, self types.Tool, request *types.LLMRequest) error {
	request.AppendTools(self)
	return nil
}
