// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"errors"

	"github.com/go-a2a/design-studio/types"
)

// TransferToAgentName is the function name the model calls to hand the conversation to another agent.
const TransferToAgentName = "transfer_to_agent"

// TransferArgs are the arguments of transfer_to_agent.
type TransferArgs struct {
	AgentName string `json:"agent_name" description:"the agent name to transfer to."`
}

// TransferResult is the result of transfer_to_agent.
type TransferResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewTransferToAgentTool returns the tool that transfers the question to another agent.
//
// The tool only records the target on the function response actions; the
// agent resolves and runs it.
func NewTransferToAgentTool() *FunctionTool[TransferArgs, TransferResult] {
	return MustFunctionTool(
		TransferToAgentName,
		"Transfer the question to another agent.",
		nil,
		transferToAgent,
	)
}

func transferToAgent(_ context.Context, toolCtx *types.ToolContext, args TransferArgs) (TransferResult, error) {
	if args.AgentName == "" {
		return TransferResult{}, errors.New("agent_name is required")
	}
	toolCtx.Actions().TransferToAgent = args.AgentName

	return TransferResult{
		Status:  StatusSuccess,
		Message: "Transferred to " + args.AgentName + ".",
	}, nil
}
