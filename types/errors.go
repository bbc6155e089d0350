// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import "errors"

// ErrSessionNotFound is wrapped by session lookups of unknown ids.
var ErrSessionNotFound = errors.New("session not found")

// ErrAgentNotFound is returned when a transfer names an agent that is not in the tree.
var ErrAgentNotFound = errors.New("agent not found")
