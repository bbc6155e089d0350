// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"strings"

	"google.golang.org/genai"
)

// LLMRequest represents a LLM request that carries the contents, the generation config and the tools.
type LLMRequest struct {
	// The model name.
	Model string `json:"model,omitempty"`

	// The contents to send to the model.
	Contents []*genai.Content `json:"contents"`

	// Additional config for the generate content request.
	Config *genai.GenerateContentConfig `json:"config,omitempty"`

	// The tools map.
	ToolMap map[string]Tool `json:"-"`
}

// LLMRequestOption configures a [LLMRequest].
type LLMRequestOption func(*LLMRequest)

// WithModelName sets the model name.
func WithModelName(name string) LLMRequestOption {
	return func(r *LLMRequest) {
		r.Model = name
	}
}

// WithGenerationConfig sets the [*genai.GenerateContentConfig] for the [LLMRequestOption].
func WithGenerationConfig(config *genai.GenerateContentConfig) LLMRequestOption {
	return func(r *LLMRequest) {
		r.Config = config
	}
}

// NewLLMRequest creates a new [LLMRequest].
func NewLLMRequest(contents []*genai.Content, opts ...LLMRequestOption) *LLMRequest {
	r := &LLMRequest{
		Contents: contents,
		ToolMap:  make(map[string]Tool),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Config == nil {
		r.Config = &genai.GenerateContentConfig{}
	}

	return r
}

// AppendInstructions appends instructions to the system instruction.
func (r *LLMRequest) AppendInstructions(instructions ...string) {
	if len(instructions) == 0 {
		return
	}
	if r.Config == nil {
		r.Config = &genai.GenerateContentConfig{}
	}

	text := strings.Join(instructions, "\n\n")
	if r.Config.SystemInstruction == nil || len(r.Config.SystemInstruction.Parts) == 0 {
		r.Config.SystemInstruction = genai.NewContentFromText(text, genai.RoleUser)
		return
	}

	r.Config.SystemInstruction.Parts = append(r.Config.SystemInstruction.Parts, genai.NewPartFromText("\n\n"+text))
}

// SystemInstructionText returns the joined text of the system instruction.
func (r *LLMRequest) SystemInstructionText() string {
	if r.Config == nil || r.Config.SystemInstruction == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Config.SystemInstruction.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// AppendTools adds the declarations of tools to the request and indexes them by name.
//
// Tools without a declaration are indexed but not declared.
func (r *LLMRequest) AppendTools(tools ...Tool) *LLMRequest {
	if r.Config == nil {
		r.Config = &genai.GenerateContentConfig{}
	}
	if r.ToolMap == nil {
		r.ToolMap = make(map[string]Tool)
	}

	var declarations []*genai.FunctionDeclaration
	for _, tool := range tools {
		r.ToolMap[tool.Name()] = tool
		if decl := tool.GetDeclaration(); decl != nil {
			declarations = append(declarations, decl)
		}
	}
	if len(declarations) == 0 {
		return r
	}

	// merge into an existing function-declaration tool so the request carries one
	for _, t := range r.Config.Tools {
		if t.FunctionDeclarations != nil {
			t.FunctionDeclarations = append(t.FunctionDeclarations, declarations...)
			return r
		}
	}
	r.Config.Tools = append(r.Config.Tools, &genai.Tool{
		FunctionDeclarations: declarations,
	})

	return r
}

// FunctionDeclarations returns every function declaration carried by the request.
func (r *LLMRequest) FunctionDeclarations() []*genai.FunctionDeclaration {
	if r.Config == nil {
		return nil
	}
	var decls []*genai.FunctionDeclaration
	for _, t := range r.Config.Tools {
		decls = append(decls, t.FunctionDeclarations...)
	}
	return decls
}
