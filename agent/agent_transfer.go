// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"fmt"

	"github.com/go-a2a/design-studio/internal/pool"
	"github.com/go-a2a/design-studio/tool/tools"
	"github.com/go-a2a/design-studio/types"
)

// agentTransferProcessor lists the agents the model may transfer to and
// declares transfer_to_agent.
type agentTransferProcessor struct{}

var transferToAgentTool = tools.NewTransferToAgentTool()

func (agentTransferProcessor) processRequest(ctx context.Context, a *LLMAgent, ictx *types.InvocationContext, request *types.LLMRequest) error {
	targets := getTransferTargets(a)
	if len(targets) == 0 {
		return nil
	}

	request.AppendInstructions(buildTargetAgentsInstructions(a, targets))

	return transferToAgentTool.ProcessLLMRequest(ctx, types.NewToolContext(ictx, "", nil), request)
}

func buildTargetAgentsInstructions(a *LLMAgent, targets []types.Agent) string {
	sb := pool.String.Get()
	defer pool.String.Put(sb)

	sb.WriteString("\nYou have a list of other agents to transfer to:\n\n")
	for i, target := range targets {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(sb, "\nAgent name: %s\nAgent description: %s\n", target.Name(), target.Description())
	}
	sb.WriteString(`
If you are the best to answer the question according to your description, you
can answer it.

If another agent is better for answering the question according to its
description, call ` + "`" + tools.TransferToAgentName + "`" + ` function to transfer the
question to that agent. When transferring, do not generate any text other than
the function call.
`)

	if parent := a.ParentAgent(); parent != nil && !a.disallowTransferToParent {
		fmt.Fprintf(sb, `
Your parent agent is %s. If neither the other agents nor
you are best for answering the question according to the descriptions, transfer
to your parent agent.
`, parent.Name())
	}

	return sb.String()
}

// getTransferTargets returns the sub-agents of a, then its parent and peers
// when the parent is an LLM agent and the transfers are allowed.
func getTransferTargets(a *LLMAgent) []types.Agent {
	targets := append([]types.Agent(nil), a.SubAgents()...)

	parent, ok := a.ParentAgent().(*LLMAgent)
	if !ok {
		return targets
	}

	if !a.disallowTransferToParent {
		targets = append(targets, parent)
	}
	if !a.disallowTransferToPeers {
		for _, peer := range parent.SubAgents() {
			if peer.Name() != a.name {
				targets = append(targets, peer)
			}
		}
	}

	return targets
}
