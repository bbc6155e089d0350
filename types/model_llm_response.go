// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"google.golang.org/genai"
)

// LLMResponse represents a response from a language model.
type LLMResponse struct {
	// Content is the content of the response.
	Content *genai.Content

	// Partial indicates whether the text content is part of an unfinished text stream.
	Partial bool

	// TurnComplete indicates whether the response from the model is complete.
	TurnComplete bool

	// ErrorCode is the error code if the response is an error. Code varies by model.
	ErrorCode string

	// ErrorMessage is the error message if the response is an error.
	ErrorMessage string

	// UsageMetadata is the token usage reported by the model.
	UsageMetadata *genai.GenerateContentResponseUsageMetadata
}

// CreateLLMResponse creates an [LLMResponse] from a [*genai.GenerateContentResponse].
func CreateLLMResponse(resp *genai.GenerateContentResponse) *LLMResponse {
	response := &LLMResponse{}

	if resp == nil {
		response.ErrorCode = "UNKNOWN_ERROR"
		response.ErrorMessage = "Generate content response is nil."
		return response
	}
	response.UsageMetadata = resp.UsageMetadata

	switch {
	case len(resp.Candidates) > 0:
		candidate := resp.Candidates[0]
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			response.Content = candidate.Content
		} else {
			response.ErrorCode = string(candidate.FinishReason)
			response.ErrorMessage = candidate.FinishMessage
		}

	case resp.PromptFeedback != nil:
		response.ErrorCode = string(resp.PromptFeedback.BlockReason)
		if response.ErrorCode == "" {
			response.ErrorCode = "UNKNOWN_BLOCK"
		}
		response.ErrorMessage = resp.PromptFeedback.BlockReasonMessage
		if response.ErrorMessage == "" {
			response.ErrorMessage = "Content was blocked. Check prompt feedback for details."
		}

	default:
		response.ErrorCode = "UNKNOWN_ERROR"
		response.ErrorMessage = "Unknown error in generate content response."
	}

	return response
}
