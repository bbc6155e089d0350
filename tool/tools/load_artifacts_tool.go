// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-json-experiment/json"
	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/internal/pool"
	"github.com/go-a2a/design-studio/pkg/logging"
	"github.com/go-a2a/design-studio/tool"
	"github.com/go-a2a/design-studio/types"
)

// LoadArtifactsName is the function name of [LoadArtifactsTool].
const LoadArtifactsName = "load_artifacts"

// LoadArtifactsTool lets the model look at session artifacts.
//
// It lists the artifacts of the session in the system instruction. When the
// model calls it, the requested artifacts are attached to the next model
// request only; the session history is left untouched.
type LoadArtifactsTool struct {
	*tool.Tool
}

var _ types.Tool = (*LoadArtifactsTool)(nil)

// NewLoadArtifactsTool returns the new [LoadArtifactsTool].
func NewLoadArtifactsTool() *LoadArtifactsTool {
	return &LoadArtifactsTool{
		Tool: tool.NewTool(LoadArtifactsName, "Loads the artifacts and adds them to the session."),
	}
}

// GetDeclaration implements [types.Tool].
func (t *LoadArtifactsTool) GetDeclaration() *genai.FunctionDeclaration {
	return t.Declaration(&genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"artifact_names": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeString,
				},
			},
		},
	})
}

// Run implements [types.Tool].
func (t *LoadArtifactsTool) Run(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
	return map[string]any{
		"artifact_names": artifactNames(args["artifact_names"]),
	}, nil
}

// ProcessLLMRequest implements [types.Tool].
func (t *LoadArtifactsTool) ProcessLLMRequest(ctx context.Context, toolCtx *types.ToolContext, request *types.LLMRequest) error {
	if err := tool.Declare(ctx, t, request); err != nil {
		return err
	}

	return t.appendArtifactsToLLMRequest(ctx, toolCtx, request)
}

func (t *LoadArtifactsTool) appendArtifactsToLLMRequest(ctx context.Context, toolCtx *types.ToolContext, request *types.LLMRequest) error {
	names, err := toolCtx.ListArtifacts(ctx)
	if err != nil {
		return fmt.Errorf("list artifacts: %w", err)
	}
	if len(names) == 0 {
		return nil
	}

	buf := pool.Buffer.Get()
	defer pool.Buffer.Put(buf)
	if err := json.MarshalWrite(buf, names); err != nil {
		return err
	}

	request.AppendInstructions(`You have a list of artifacts:
  ` + buf.String() + `

  When the user asks questions about any of the artifacts, you should call the
  ` + "`load_artifacts`" + ` function to load the artifact. Do not generate any text other
  than the function call.
`)

	if len(request.Contents) == 0 {
		return nil
	}
	last := request.Contents[len(request.Contents)-1]
	if len(last.Parts) == 0 {
		return nil
	}
	resp := last.Parts[0].FunctionResponse
	if resp == nil || resp.Name != LoadArtifactsName {
		return nil
	}

	logger := logging.FromContext(ctx)
	for _, name := range artifactNames(resp.Response["artifact_names"]) {
		artifact, err := toolCtx.LoadArtifact(ctx, name, types.LatestVersion)
		if err != nil {
			return fmt.Errorf("load artifact %s: %w", name, err)
		}
		if artifact == nil {
			logger.WarnContext(ctx, "requested artifact not found", slog.String("artifact", name))
			continue
		}
		request.Contents = append(request.Contents, genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(fmt.Sprintf("Artifact %s is:", name)),
			artifact,
		}, genai.RoleUser))
	}

	return nil
}

// artifactNames normalises the artifact_names argument, which arrives as
// []any from decoded JSON and as []string from Run.
func artifactNames(v any) []string {
	switch names := v.(type) {
	case []string:
		return names
	case []any:
		out := make([]string, 0, len(names))
		for _, name := range names {
			if s, ok := name.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
