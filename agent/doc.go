// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package agent provides the language model agent and the tree it is arranged in.
//
// An [LLMAgent] runs in steps. Each step builds a request from the agent
// identity, its instructions, the session history and the declarations of
// its tools, calls the model once and runs the function calls of the
// response. When a tool sets [types.EventActions.TransferToAgent] the named
// agent of the tree takes over the invocation.
//
//	gcs, err := agent.NewLLMAgent("gcs_agent",
//		agent.WithDescription("Searches and saves images in Cloud Storage."),
//		agent.WithTools(searchTool, getTool, saveTool),
//	)
//	root, err := agent.NewLLMAgent("root_agent",
//		agent.WithModel(gemini),
//		agent.WithInstruction(rootInstruction),
//		agent.WithSubAgents(gcs),
//	)
//
// Sub-agents without a model inherit the model of their closest ancestor.
//
// Instructions given as strings get session state injected: {key} is replaced
// by the state value of key, {artifact.name} by the text of an artifact, and
// {key?} resolves to the empty string when key is missing.
package agent
