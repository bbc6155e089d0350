// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package model implements [types.Model] for Google Gemini and Anthropic Claude.
//
// Requests and responses use google.golang.org/genai content types on both
// providers; the Claude adapter converts them to and from the Anthropic
// Messages API, including tool declarations, tool calls and inline images.
//
//	client, err := model.NewGenAIClient(ctx, model.GoogleConfig{VertexAI: true, Project: "p", Location: "us-central1"})
//	if err != nil {
//		return err
//	}
//	llm, err := model.New("gemini-2.5-flash", model.Clients{Gemini: client.Models})
//
// Both adapters append a trailing user turn when the conversation does not
// end with one, since the providers expect the user to speak last.
package model
