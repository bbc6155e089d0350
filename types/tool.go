// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"

	"google.golang.org/genai"
)

// Tool is a capability an agent can offer to its model.
type Tool interface {
	Name() string
	Description() string

	// GetDeclaration returns the function declaration sent to the model, or
	// nil for tools that only rewrite the request.
	GetDeclaration() *genai.FunctionDeclaration

	// Run executes a function call of the model. args are the decoded call arguments.
	Run(ctx context.Context, args map[string]any, toolCtx *ToolContext) (any, error)

	// ProcessLLMRequest lets the tool amend the request before it is sent,
	// typically by adding its declaration.
	ProcessLLMRequest(ctx context.Context, toolCtx *ToolContext, request *LLMRequest) error
}
