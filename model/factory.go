// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"strings"

	"github.com/go-a2a/design-studio/types"
)

// ModelType represents a type of model.
type ModelType = string

const (
	// ModelTypeGemini represents Gemini models.
	ModelTypeGemini ModelType = "gemini"
	// ModelTypeClaude represents Claude models.
	ModelTypeClaude ModelType = "claude"
)

// Clients holds the provider clients used by [New].
type Clients struct {
	Gemini ContentGenerator
	Claude MessageCreator
}

// New returns the model named modelName.
//
// Names starting with "claude" use the Claude client; every other name uses Gemini.
func New(modelName string, clients Clients) (types.Model, error) {
	if modelName == "" {
		return nil, fmt.Errorf("model name is empty")
	}

	switch getModelType(modelName) {
	case ModelTypeClaude:
		if clients.Claude == nil {
			return nil, fmt.Errorf("model %s: claude client is not configured", modelName)
		}
		return NewClaude(clients.Claude, modelName), nil
	default:
		if clients.Gemini == nil {
			return nil, fmt.Errorf("model %s: gemini client is not configured", modelName)
		}
		return NewGemini(clients.Gemini, modelName), nil
	}
}

// getModelType returns the model type for the specified model name.
func getModelType(modelName string) ModelType {
	if strings.HasPrefix(strings.ToLower(modelName), ModelTypeClaude) {
		return ModelTypeClaude
	}
	return ModelTypeGemini
}
