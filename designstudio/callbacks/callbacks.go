// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package callbacks holds the model callbacks shared by the design studio agents.
package callbacks

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/internal/imageutil"
	"github.com/go-a2a/design-studio/pkg/logging"
	"github.com/go-a2a/design-studio/types"
)

// UploadPrefix prefixes the artifact ids of user uploaded images.
const UploadPrefix = "input_image_"

// ResponseArtifactKey is the function response key naming the artifacts a tool produced.
const ResponseArtifactKey = "tool_response_artifact_id"

// UploadCaption introduces a user uploaded image to the model.
func UploadCaption(artifactID string) string {
	return fmt.Sprintf("[User Uploaded Artifact]\nBelow is the content of artifact ID : %s", artifactID)
}

// ToolResponseCaption introduces an image produced by a tool to the model.
func ToolResponseCaption(artifactID string) string {
	return fmt.Sprintf("[Tool Response Artifact]\nBelow is the content of artifact ID : %s", artifactID)
}

// ProcessArtifacts returns a callback that rewrites the request contents so
// the model can refer to images by artifact id.
//
// Inline images are saved once as input_image_<hash>.<ext> artifacts and
// preceded by a caption naming them. Function responses of imageTools are
// followed by the artifacts listed under [ResponseArtifactKey].
func ProcessArtifacts(imageTools ...string) types.BeforeModelCallback {
	return func(ctx context.Context, cctx *types.CallbackContext, request *types.LLMRequest) (*types.LLMResponse, error) {
		p := &processor{cctx: cctx, imageTools: imageTools}
		for _, content := range request.Contents {
			if content == nil || len(content.Parts) == 0 {
				continue
			}
			parts := make([]*genai.Part, 0, len(content.Parts))
			for _, part := range content.Parts {
				processed, err := p.process(ctx, part)
				if err != nil {
					return nil, err
				}
				parts = append(parts, processed...)
			}
			content.Parts = parts
		}
		return nil, nil
	}
}

type processor struct {
	cctx       *types.CallbackContext
	imageTools []string

	// saved caches the artifact listing of the session.
	saved map[string]bool
}

func (p *processor) process(ctx context.Context, part *genai.Part) ([]*genai.Part, error) {
	switch {
	case part == nil:
		return nil, nil
	case part.InlineData != nil:
		return p.processUpload(ctx, part)
	case part.FunctionResponse != nil && slices.Contains(p.imageTools, part.FunctionResponse.Name):
		return p.processToolResponse(ctx, part)
	default:
		return []*genai.Part{part}, nil
	}
}

func (p *processor) isSaved(ctx context.Context, artifactID string) (bool, error) {
	if p.saved == nil {
		names, err := p.cctx.ListArtifacts(ctx)
		if err != nil {
			return false, fmt.Errorf("list artifacts: %w", err)
		}
		p.saved = make(map[string]bool, len(names))
		for _, name := range names {
			p.saved[name] = true
		}
	}
	return p.saved[artifactID], nil
}

func (p *processor) processUpload(ctx context.Context, part *genai.Part) ([]*genai.Part, error) {
	blob := part.InlineData
	artifactID := imageutil.UploadArtifactID(UploadPrefix, blob.DisplayName, blob.Data, blob.MIMEType)

	saved, err := p.isSaved(ctx, artifactID)
	if err != nil {
		return nil, err
	}
	if !saved {
		if _, err := p.cctx.SaveArtifact(ctx, artifactID, part); err != nil {
			return nil, fmt.Errorf("save uploaded image %s: %w", artifactID, err)
		}
		p.saved[artifactID] = true
		logging.FromContext(ctx).InfoContext(ctx, "saved uploaded image",
			slog.String("artifact_id", artifactID),
			slog.String("mime_type", blob.MIMEType),
		)
	}

	return []*genai.Part{genai.NewPartFromText(UploadCaption(artifactID)), part}, nil
}

func (p *processor) processToolResponse(ctx context.Context, part *genai.Part) ([]*genai.Part, error) {
	parts := []*genai.Part{part}

	ids, _ := part.FunctionResponse.Response[ResponseArtifactKey].(string)
	for id := range strings.SplitSeq(ids, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		artifact, err := p.cctx.LoadArtifact(ctx, id, types.LatestVersion)
		if err != nil {
			return nil, fmt.Errorf("load tool artifact %s: %w", id, err)
		}
		if artifact == nil {
			logging.FromContext(ctx).WarnContext(ctx, "tool artifact not found", slog.String("artifact_id", id))
			continue
		}
		parts = append(parts, genai.NewPartFromText(ToolResponseCaption(id)), artifact)
	}
	return parts, nil
}
