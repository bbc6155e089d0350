// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/pkg/logging"
	"github.com/go-a2a/design-studio/types"
)

// GeminiDefaultModel is the default model name for [Gemini].
const GeminiDefaultModel = "gemini-2.5-flash"

// ContentGenerator is the subset of [*genai.Models] used by [Gemini].
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var _ ContentGenerator = (*genai.Models)(nil)

// Gemini represents a Google Gemini Large Language Model.
type Gemini struct {
	name   string
	models ContentGenerator
}

var _ types.Model = (*Gemini)(nil)

// NewGemini creates a new [Gemini] that calls models, typically client.Models of a [*genai.Client].
func NewGemini(models ContentGenerator, modelName string) *Gemini {
	if modelName == "" {
		modelName = GeminiDefaultModel
	}
	return &Gemini{
		name:   modelName,
		models: models,
	}
}

// GoogleConfig configures [NewGenAIClient].
type GoogleConfig struct {
	// VertexAI selects the Vertex AI backend with Project and Location,
	// otherwise the Gemini API with APIKey is used.
	VertexAI bool

	APIKey   string
	Project  string
	Location string
}

// NewGenAIClient creates a [*genai.Client] for the backend cfg selects.
func NewGenAIClient(ctx context.Context, cfg GoogleConfig) (*genai.Client, error) {
	cc := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  cfg.APIKey,
	}
	if cfg.VertexAI {
		if cfg.Project == "" {
			return nil, errors.New("vertex ai backend needs a project")
		}
		cc = &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  cfg.Project,
			Location: cfg.Location,
		}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client, nil
}

// Name implements [types.Model].
func (m *Gemini) Name() string {
	return m.name
}

// appendUserContent checks if the last message is from the user and if not, appends a user message.
func appendUserContent(contents []*genai.Content) []*genai.Content {
	switch {
	case len(contents) == 0:
		return append(contents, genai.NewContentFromText(`Handle the requests as specified in the System Instruction.`, genai.RoleUser))

	case strings.ToLower(contents[len(contents)-1].Role) != genai.RoleUser:
		return append(contents, genai.NewContentFromText(`Continue processing previous requests as instructed. Exit or provide a summary if no more outputs are needed.`, genai.RoleUser))

	default:
		return contents
	}
}

// GenerateContent implements [types.Model].
func (m *Gemini) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	contents := appendUserContent(slices.Clone(request.Contents))

	resp, err := m.models.GenerateContent(ctx, m.name, contents, request.Config)
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	logging.FromContext(ctx).DebugContext(ctx, "llm response",
		slog.String("model", m.name),
		buildResponseLog(resp),
	)

	return types.CreateLLMResponse(resp), nil
}

const responseLogFmt = `
LLM Response:
-----------------------------------------------------------
Text:
%s
-----------------------------------------------------------
Function calls:
%s
-----------------------------------------------------------
`

func buildResponseLog(resp *genai.GenerateContentResponse) slog.Attr {
	if resp == nil {
		return slog.String("response", "<nil>")
	}
	functionCalls := resp.FunctionCalls()
	functionCallsText := make([]string, len(functionCalls))
	for i, funcCall := range functionCalls {
		functionCallsText[i] = fmt.Sprintf("name: %s, args: %v", funcCall.Name, funcCall.Args)
	}

	return slog.String("response", fmt.Sprintf(responseLogFmt, resp.Text(), strings.Join(functionCallsText, "\n")))
}
