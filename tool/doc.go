// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package tool provides the base every tool of the design studio embeds.
//
// A tool implementation embeds [*Tool] for its name and description and
// implements the rest of [types.Tool]:
//
//	type SkuTool struct {
//		*tool.Tool
//	}
//
//	func (t *SkuTool) GetDeclaration() *genai.FunctionDeclaration {
//		return t.Declaration(&genai.Schema{Type: genai.TypeObject})
//	}
//
//	func (t *SkuTool) ProcessLLMRequest(ctx context.Context, _ *types.ToolContext, request *types.LLMRequest) error {
//		return tool.Declare(ctx, t, request)
//	}
//
// Most tools are built with the typed wrapper in package tools instead.
package tool
