// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"google.golang.org/genai"
)

// Role is the author of a content. Gemini speaks user and model, Claude user
// and assistant; system only appears in instructions.
type Role = string

const (
	RoleUser      Role = genai.RoleUser
	RoleModel     Role = genai.RoleModel
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)
