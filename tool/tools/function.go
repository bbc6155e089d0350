// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-json-experiment/json"
	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/internal/metrics"
	"github.com/go-a2a/design-studio/pkg/logging"
	"github.com/go-a2a/design-studio/tool"
	"github.com/go-a2a/design-studio/types"
)

// Result statuses reported to the model.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorResult returns the result reported to the model when a tool fails.
func ErrorResult(format string, a ...any) map[string]any {
	return map[string]any{
		"status":  StatusError,
		"message": fmt.Sprintf(format, a...),
	}
}

// Handler is the typed body of a [FunctionTool].
//
// A returned error never reaches the agent: it is reported to the model as an
// error-status result.
type Handler[A, R any] func(ctx context.Context, toolCtx *types.ToolContext, args A) (R, error)

// FunctionTool adapts a typed [Handler] to [types.Tool].
//
// The arguments the model sends are decoded into A, and R is encoded back
// into a JSON object.
type FunctionTool[A, R any] struct {
	*tool.Tool

	params  *genai.Schema
	handler Handler[A, R]
}

var _ types.Tool = (*FunctionTool[struct{}, struct{}])(nil)

// NewFunctionTool returns a [FunctionTool] calling handler.
//
// A nil params derives the parameter schema from A with [SchemaFor].
func NewFunctionTool[A, R any](name, description string, params *genai.Schema, handler Handler[A, R]) (*FunctionTool[A, R], error) {
	if params == nil {
		schema, err := SchemaFor[A]()
		if err != nil {
			return nil, fmt.Errorf("derive %s parameters: %w", name, err)
		}
		params = schema
	}

	return &FunctionTool[A, R]{
		Tool:    tool.NewTool(name, description),
		params:  params,
		handler: handler,
	}, nil
}

// MustFunctionTool is like [NewFunctionTool] but panics if the parameter schema cannot be derived.
func MustFunctionTool[A, R any](name, description string, params *genai.Schema, handler Handler[A, R]) *FunctionTool[A, R] {
	t, err := NewFunctionTool(name, description, params, handler)
	if err != nil {
		panic(err)
	}
	return t
}

// GetDeclaration implements [types.Tool].
func (t *FunctionTool[A, R]) GetDeclaration() *genai.FunctionDeclaration {
	return t.Declaration(t.params)
}

// Run implements [types.Tool].
func (t *FunctionTool[A, R]) Run(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
	logger := logging.FromContext(ctx).With(slog.String("tool", t.Name()))
	if toolCtx != nil {
		logger = logger.With(slog.String("function_call_id", toolCtx.FunctionCallID()))
	}
	ctx = logging.NewContext(ctx, logger)

	start := time.Now()
	result := t.call(ctx, args, toolCtx)
	elapsed := time.Since(start)

	failed := result["status"] == StatusError
	metrics.RecordToolCall(t.Name(), elapsed, failed)
	if failed {
		logger.ErrorContext(ctx, "tool failed", slog.Any("message", result["message"]), slog.Duration("elapsed", elapsed))
	} else {
		logger.InfoContext(ctx, "tool finished", slog.Duration("elapsed", elapsed))
	}

	return result, nil
}

func (t *FunctionTool[A, R]) call(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) map[string]any {
	var in A
	if err := decodeArgs(args, &in); err != nil {
		return ErrorResult("invalid arguments for %s: %v", t.Name(), err)
	}

	out, err := t.handler(ctx, toolCtx, in)
	if err != nil {
		return ErrorResult("%v", err)
	}

	result, err := encodeResult(out)
	if err != nil {
		return ErrorResult("encode %s result: %v", t.Name(), err)
	}
	return result
}

// ProcessLLMRequest implements [types.Tool].
func (t *FunctionTool[A, R]) ProcessLLMRequest(ctx context.Context, _ *types.ToolContext, request *types.LLMRequest) error {
	return tool.Declare(ctx, t, request)
}

func decodeArgs(args map[string]any, v any) error {
	if args == nil {
		args = map[string]any{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// encodeResult converts v to the JSON object handed back to the model.
//
// Objects without a status are marked successful; non-object values are
// wrapped under "result".
func encodeResult(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok && m != nil {
		if _, ok := m["status"]; !ok {
			m["status"] = StatusSuccess
		}
		return m, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, err
	}
	m, ok := decoded.(map[string]any)
	if !ok {
		m = map[string]any{"result": decoded}
	}
	if _, ok := m["status"]; !ok {
		m["status"] = StatusSuccess
	}
	return m, nil
}
