// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"
	"github.com/anthropics/anthropic-sdk-go/vertex"
	"github.com/bytedance/sonic"
	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/pkg/logging"
	"github.com/go-a2a/design-studio/types"
)

// claudeDefaultMaxTokens is used when the request carries no MaxOutputTokens.
const claudeDefaultMaxTokens = 4096

// MessageCreator is the subset of [anthropic.MessageService] used by [Claude].
type MessageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

var _ MessageCreator = (*anthropic.MessageService)(nil)

// Claude represents a Claude Large Language Model.
type Claude struct {
	name     string
	messages MessageCreator
}

var _ types.Model = (*Claude)(nil)

// NewClaude creates a new [Claude] that calls messages, typically &client.Messages of an [anthropic.Client].
func NewClaude(messages MessageCreator, modelName string) *Claude {
	return &Claude{
		name:     modelName,
		messages: messages,
	}
}

// AnthropicConfig configures [NewAnthropicClient].
type AnthropicConfig struct {
	// APIKey selects the Anthropic API when set.
	APIKey string

	// Project and Region select Claude on Vertex AI.
	Project string
	Region  string
}

// NewAnthropicClient creates an [anthropic.Client] for the Anthropic API, or for Vertex AI when no API key is configured.
func NewAnthropicClient(ctx context.Context, cfg AnthropicConfig) (*anthropic.Client, error) {
	var opts []option.RequestOption
	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.Project != "" && cfg.Region != "":
		opts = append(opts, vertex.WithGoogleAuth(ctx, cfg.Region, cfg.Project))
	default:
		return nil, errors.New("claude requires either an API key or a Vertex AI project and region")
	}

	client := anthropic.NewClient(opts...)
	return &client, nil
}

// Name implements [types.Model].
func (m *Claude) Name() string {
	return m.name
}

// GenerateContent implements [types.Model].
func (m *Claude) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	params, err := m.messageParams(request)
	if err != nil {
		return nil, err
	}

	message, err := m.messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("claude API error: %w", err)
	}
	logging.FromContext(ctx).DebugContext(ctx, "llm response",
		slog.String("model", m.name),
		slog.String("stop_reason", string(message.StopReason)),
		slog.Int64("input_tokens", message.Usage.InputTokens),
		slog.Int64("output_tokens", message.Usage.OutputTokens),
	)

	return claudeMessageToLLMResponse(message), nil
}

func (m *Claude) messageParams(request *types.LLMRequest) (anthropic.MessageNewParams, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(m.name),
		MaxTokens: claudeDefaultMaxTokens,
	}

	contents := appendUserContent(slices.Clone(request.Contents))
	for _, content := range contents {
		msg, ok := contentToClaudeMessageParam(content)
		if !ok {
			continue
		}
		// consecutive turns of the same role are merged
		if n := len(params.Messages); n > 0 && params.Messages[n-1].Role == msg.Role {
			params.Messages[n-1].Content = append(params.Messages[n-1].Content, msg.Content...)
			continue
		}
		params.Messages = append(params.Messages, msg)
	}

	config := request.Config
	if config == nil {
		return params, nil
	}

	if config.MaxOutputTokens > 0 {
		params.MaxTokens = int64(config.MaxOutputTokens)
	}
	if config.Temperature != nil {
		params.Temperature = anthropic.Float(float64(*config.Temperature))
	}
	if config.TopK != nil {
		params.TopK = anthropic.Int(int64(*config.TopK))
	}
	if config.TopP != nil {
		params.TopP = anthropic.Float(float64(*config.TopP))
	}
	if len(config.StopSequences) > 0 {
		params.StopSequences = config.StopSequences
	}

	if text := request.SystemInstructionText(); text != "" {
		params.System = []anthropic.TextBlockParam{{Text: text}}
	}

	for _, decl := range request.FunctionDeclarations() {
		toolUnion, err := functionDeclarationToToolParam(decl)
		if err != nil {
			return params, err
		}
		params.Tools = append(params.Tools, toolUnion)
	}

	return params, nil
}

func functionDeclarationToToolParam(funcDeclaration *genai.FunctionDeclaration) (toolUnion anthropic.ToolUnionParam, err error) {
	if funcDeclaration.Name == "" {
		return toolUnion, errors.New("functionDeclaration name is empty")
	}

	inputSchema := anthropic.ToolInputSchemaParam{
		Type:       constant.Object("object"),
		Properties: map[string]any{},
	}
	if params := funcDeclaration.Parameters; params != nil {
		props := make(map[string]any, len(params.Properties))
		for name, prop := range params.Properties {
			props[name] = schemaToJSON(prop)
		}
		inputSchema.Properties = props
		inputSchema.Required = params.Required
	}

	toolUnion = anthropic.ToolUnionParamOfTool(inputSchema, funcDeclaration.Name)
	toolUnion.OfTool.Description = param.NewOpt(funcDeclaration.Description)

	return toolUnion, nil
}

// schemaToJSON converts a [*genai.Schema] to a JSON Schema object with lower-case types.
func schemaToJSON(s *genai.Schema) map[string]any {
	if s == nil {
		return map[string]any{}
	}

	out := map[string]any{}
	if s.Type != "" {
		out["type"] = strings.ToLower(string(s.Type))
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if s.Items != nil {
		out["items"] = schemaToJSON(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = schemaToJSON(prop)
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	if s.Minimum != nil {
		out["minimum"] = *s.Minimum
	}
	if s.Maximum != nil {
		out["maximum"] = *s.Maximum
	}
	return out
}

func asClaudeRole(role string) anthropic.MessageParamRole {
	switch role {
	case RoleModel, RoleAssistant:
		return anthropic.MessageParamRoleAssistant
	default:
		return anthropic.MessageParamRoleUser
	}
}

// claudeImageTypes lists the inline media types accepted as image blocks.
var claudeImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

func partToClaudeMessageBlock(part *genai.Part) (anthropic.ContentBlockParamUnion, error) {
	switch {
	case part.Thought:
		return anthropic.ContentBlockParamUnion{}, errors.New("thought parts are not sent to claude")

	case part.Text != "":
		return anthropic.NewTextBlock(part.Text), nil

	case part.FunctionCall != nil:
		funcCall := part.FunctionCall
		if funcCall.Name == "" {
			return anthropic.ContentBlockParamUnion{}, errors.New("FunctionCall name is empty")
		}
		args := funcCall.Args
		if args == nil {
			args = map[string]any{}
		}
		return anthropic.NewToolUseBlock(funcCall.ID, args, funcCall.Name), nil

	case part.FunctionResponse != nil:
		funcResp := part.FunctionResponse
		result, err := sonic.ConfigStd.MarshalToString(funcResp.Response)
		if err != nil {
			return anthropic.ContentBlockParamUnion{}, fmt.Errorf("marshal function response: %w", err)
		}
		return anthropic.NewToolResultBlock(funcResp.ID, result, false), nil

	case part.InlineData != nil && slices.Contains(claudeImageTypes, part.InlineData.MIMEType):
		data := base64.StdEncoding.EncodeToString(part.InlineData.Data)
		return anthropic.NewImageBlockBase64(part.InlineData.MIMEType, data), nil
	}

	return anthropic.ContentBlockParamUnion{}, fmt.Errorf("not supported yet %T part type", part)
}

// contentToClaudeMessageParam converts [*genai.Content] to [anthropic.MessageParam].
//
// It reports false when no part of content can be sent.
func contentToClaudeMessageParam(content *genai.Content) (anthropic.MessageParam, bool) {
	msgParam := anthropic.MessageParam{
		Role:    asClaudeRole(content.Role),
		Content: make([]anthropic.ContentBlockParamUnion, 0, len(content.Parts)),
	}
	if content.Role == RoleSystem {
		return msgParam, false
	}

	for _, part := range content.Parts {
		msgBlock, err := partToClaudeMessageBlock(part)
		if err != nil {
			continue
		}
		msgParam.Content = append(msgParam.Content, msgBlock)
	}

	return msgParam, len(msgParam.Content) > 0
}

func claudeContentBlockToPart(contentBlock anthropic.ContentBlockUnion) (*genai.Part, error) {
	switch cBlock := contentBlock.AsAny().(type) {
	case anthropic.TextBlock:
		return genai.NewPartFromText(cBlock.Text), nil

	case anthropic.ToolUseBlock:
		args := map[string]any{}
		if len(cBlock.Input) > 0 {
			if err := sonic.ConfigStd.Unmarshal(cBlock.Input, &args); err != nil {
				return nil, fmt.Errorf("unmarshal ToolUseBlock input: %w", err)
			}
		}
		part := genai.NewPartFromFunctionCall(cBlock.Name, args)
		part.FunctionCall.ID = cBlock.ID
		return part, nil
	}

	return nil, fmt.Errorf("not supported yet %q content block", contentBlock.Type)
}

func claudeMessageToLLMResponse(message *anthropic.Message) *types.LLMResponse {
	parts := make([]*genai.Part, 0, len(message.Content))
	for _, mcontent := range message.Content {
		part, err := claudeContentBlockToPart(mcontent)
		if err != nil {
			continue
		}
		parts = append(parts, part)
	}

	resp := &types.LLMResponse{
		Content: &genai.Content{
			Role:  RoleModel,
			Parts: parts,
		},
		TurnComplete: true,
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     int32(message.Usage.InputTokens),
			CandidatesTokenCount: int32(message.Usage.OutputTokens),
			TotalTokenCount:      int32(message.Usage.InputTokens + message.Usage.OutputTokens),
		},
	}
	if len(parts) == 0 {
		resp.ErrorCode = string(message.StopReason)
		resp.ErrorMessage = "claude returned no supported content"
	}
	return resp
}
