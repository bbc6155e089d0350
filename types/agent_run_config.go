// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

// DefaultMaxLLMCalls is the default limit on the total number of llm calls.
const DefaultMaxLLMCalls = 500

// RunConfig configures the runtime behavior of an invocation.
type RunConfig struct {
	// SaveInputBlobsAsArtifacts saves inline blobs of the user message as artifacts
	// before the invocation starts.
	SaveInputBlobsAsArtifacts bool

	// MaxLLMCalls limits the total number of llm calls for a given run. Zero or
	// negative disables the limit.
	MaxLLMCalls int
}
