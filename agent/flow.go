// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/go-a2a/design-studio/internal/metrics"
	"github.com/go-a2a/design-studio/pkg/logging"
	"github.com/go-a2a/design-studio/types"
)

// requestProcessor contributes to the model request of one step.
type requestProcessor interface {
	processRequest(ctx context.Context, a *LLMAgent, ictx *types.InvocationContext, request *types.LLMRequest) error
}

// requestProcessors run in order before every model call.
var requestProcessors = []requestProcessor{
	identityProcessor{},
	instructionsProcessor{},
	contentsProcessor{},
	agentTransferProcessor{},
}

// runOneStep calls the model once and runs the tools it asked for.
func (a *LLMAgent) runOneStep(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		llm, err := a.CanonicalModel()
		if err != nil {
			yield(nil, err)
			return
		}

		request, err := a.preprocess(ctx, ictx, llm)
		if err != nil {
			yield(nil, err)
			return
		}
		if ictx.EndInvocation {
			return
		}

		modelResponseEvent := types.NewEvent().
			WithInvocationID(ictx.InvocationID).
			WithAuthor(a.name).
			WithBranch(ictx.Branch)

		response, err := a.callLLM(ctx, ictx, llm, request, modelResponseEvent)
		if err != nil {
			yield(nil, err)
			return
		}
		if response == nil || (response.Content == nil && response.ErrorCode == "") {
			return
		}

		modelResponseEvent.WithLLMResponse(response)
		populateClientFunctionCallID(modelResponseEvent)
		a.saveOutputToState(modelResponseEvent)
		if !yield(modelResponseEvent, nil) {
			return
		}

		if len(modelResponseEvent.GetFunctionCalls()) == 0 {
			return
		}
		funcResponseEvent, err := handleFunctionCalls(ctx, ictx, modelResponseEvent, request.ToolMap)
		if err != nil {
			yield(nil, err)
			return
		}
		if funcResponseEvent == nil {
			return
		}
		if !yield(funcResponseEvent, nil) {
			return
		}

		transferTo := funcResponseEvent.Actions.TransferToAgent
		if transferTo == "" {
			return
		}
		agentToRun := a.RootAgent().FindAgent(transferTo)
		if agentToRun == nil {
			yield(nil, fmt.Errorf("transfer to %s: %w", transferTo, types.ErrAgentNotFound))
			return
		}
		logging.FromContext(ctx).InfoContext(ctx, "transferring to agent", slog.String("target", transferTo))
		for event, err := range agentToRun.Run(ctx, ictx) {
			if !yield(event, err) || err != nil {
				return
			}
		}
	}
}

// preprocess builds the model request of one step.
func (a *LLMAgent) preprocess(ctx context.Context, ictx *types.InvocationContext, llm types.Model) (*types.LLMRequest, error) {
	config, err := a.generateConfig()
	if err != nil {
		return nil, err
	}
	request := types.NewLLMRequest(nil,
		types.WithModelName(llm.Name()),
		types.WithGenerationConfig(config),
	)

	for _, processor := range requestProcessors {
		if err := processor.processRequest(ctx, a, ictx, request); err != nil {
			return nil, err
		}
	}

	toolCtx := types.NewToolContext(ictx, "", nil)
	for _, tool := range a.tools {
		if err := tool.ProcessLLMRequest(ctx, toolCtx, request); err != nil {
			return nil, fmt.Errorf("process request for tool %s: %w", tool.Name(), err)
		}
	}

	return request, nil
}

// callLLM runs the model callbacks around one model call.
func (a *LLMAgent) callLLM(ctx context.Context, ictx *types.InvocationContext, llm types.Model, request *types.LLMRequest, modelResponseEvent *types.Event) (*types.LLMResponse, error) {
	cctx := types.NewCallbackContext(ictx).WithEventActions(modelResponseEvent.Actions)

	for i, callback := range a.beforeModelCallbacks {
		response, err := callback(ctx, cctx, request)
		if err != nil {
			return nil, fmt.Errorf("before model callback %d: %w", i, err)
		}
		if response != nil {
			return response, nil
		}
	}

	if err := ictx.IncrementLLMCallCount(); err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.DebugContext(ctx, "calling model",
		slog.String("model", llm.Name()),
		slog.Int("contents", len(request.Contents)),
		slog.Int("tools", len(request.ToolMap)),
	)
	response, err := llm.GenerateContent(ctx, request)
	var inputTokens, outputTokens int32
	if response != nil && response.UsageMetadata != nil {
		inputTokens = response.UsageMetadata.PromptTokenCount
		outputTokens = response.UsageMetadata.CandidatesTokenCount
	}
	metrics.RecordModelCall(a.name, llm.Name(), inputTokens, outputTokens, err)
	if err != nil {
		return nil, fmt.Errorf("agent %s: generate content: %w", a.name, err)
	}
	if response.ErrorCode != "" {
		logger.WarnContext(ctx, "model returned an error response",
			slog.String("error_code", response.ErrorCode),
			slog.String("error_message", response.ErrorMessage),
		)
	}

	for i, callback := range a.afterModelCallbacks {
		altered, err := callback(ctx, cctx, response)
		if err != nil {
			return nil, fmt.Errorf("after model callback %d: %w", i, err)
		}
		if altered != nil {
			return altered, nil
		}
	}

	return response, nil
}
