// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package imageedit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/internal/imaging"
	"github.com/go-a2a/design-studio/pkg/logging"
	"github.com/go-a2a/design-studio/tool/tools"
	"github.com/go-a2a/design-studio/types"
)

// Tool names.
const (
	ChangeBackgroundFastToolName       = "change_background_fast_tool"
	ChangeBackgroundCapabilityToolName = "change_background_capability_tool"
	EditImageToolName                  = "edit_image_tool"
)

// Artifact id prefixes of edited images.
const (
	BackgroundPrefix = "edited_img_bkg_"
	EditedPrefix     = "edited_img_"
)

// BackgroundChanger replaces the background of a product image.
type BackgroundChanger interface {
	ChangeBackground(ctx context.Context, req imaging.BackgroundRequest) ([]imaging.Image, error)
}

var (
	_ BackgroundChanger = (*imaging.FastBackgroundEditor)(nil)
	_ BackgroundChanger = (*imaging.CapabilityBackgroundEditor)(nil)
)

// Editor edits a reference image following a prompt.
type Editor interface {
	Edit(ctx context.Context, reference *genai.Part, prompt string) (*genai.Part, error)
}

var _ Editor = (*imaging.Editor)(nil)

// Deps are the clients the image_edit_agent tools call. A nil background
// changer leaves its tool out of the agent.
type Deps struct {
	Fast       BackgroundChanger
	Capability BackgroundChanger
	Editor     Editor
}

// BackgroundArgs are the arguments of change_background_fast_tool.
type BackgroundArgs struct {
	Description     string `json:"description" description:"The desired new background or scene, e.g. \"on a snowy mountain peak at sunset\"."`
	ImageArtifactID string `json:"image_artifact_id" description:"Artifact id of the reference product image."`
	AspectRatio     string `json:"aspect_ratio,omitempty" description:"One of 1:1, 4:3, 3:4, 9:16, 16:9. Defaults to 1:1."`
	SampleCount     int    `json:"sample_count,omitempty" description:"Number of images to generate, 1 to 4. Defaults to 1."`
}

// CapabilityArgs are the arguments of change_background_capability_tool.
type CapabilityArgs struct {
	Description     string `json:"description" description:"The desired new background or scene, e.g. \"on a snowy mountain peak at sunset\"."`
	ImageArtifactID string `json:"image_artifact_id" description:"Artifact id of the reference product image."`
	SampleCount     int    `json:"sample_count,omitempty" description:"Number of images to generate, 1 to 4. Defaults to 1."`
}

// BackgroundResult reports a background change.
type BackgroundResult struct {
	Status                 string `json:"status"`
	Message                string `json:"message"`
	ToolResponseArtifactID string `json:"tool_response_artifact_id"`
	ToolInputArtifactID    string `json:"tool_input_artifact_id"`
	UsedPrompt             string `json:"used_prompt"`
}

type backgroundTool struct {
	changer BackgroundChanger
	// aspectRatios is nil when the model only renders square images.
	aspectRatios []string
}

func (b *backgroundTool) run(ctx context.Context, toolCtx *types.ToolContext, args BackgroundArgs) (*BackgroundResult, error) {
	logger := logging.FromContext(ctx)
	logger.InfoContext(ctx, "changing background",
		slog.String("image_artifact_id", args.ImageArtifactID),
		slog.Int("sample_count", args.SampleCount),
	)

	res := &BackgroundResult{
		Status:     tools.StatusError,
		UsedPrompt: args.Description,
	}
	if args.ImageArtifactID == "" {
		res.Message = "No reference image provided. Please provide a reference image to change the background of."
		return res, nil
	}

	artifact, err := toolCtx.LoadArtifact(ctx, args.ImageArtifactID, types.LatestVersion)
	if err != nil {
		return nil, fmt.Errorf("load artifact %s: %w", args.ImageArtifactID, err)
	}
	if artifact == nil || artifact.InlineData == nil {
		res.Message = fmt.Sprintf("Artifact %s not found", args.ImageArtifactID)
		return res, nil
	}
	res.ToolInputArtifactID = args.ImageArtifactID
	res.UsedPrompt = imaging.PreserveProductPrompt(args.Description)

	aspectRatio := imaging.DefaultAspectRatio
	if b.aspectRatios != nil {
		var ok bool
		aspectRatio, ok = imaging.NormalizeAspectRatio(args.AspectRatio, b.aspectRatios)
		if !ok {
			logger.WarnContext(ctx, "unsupported aspect ratio, using default",
				slog.String("aspect_ratio", args.AspectRatio),
				slog.String("default", aspectRatio),
			)
		}
	}
	sampleCount := imaging.ClampSampleCount(args.SampleCount)
	if sampleCount != args.SampleCount {
		logger.WarnContext(ctx, "sample count out of range, clamped",
			slog.Int("sample_count", args.SampleCount),
			slog.Int("clamped", sampleCount),
		)
	}

	images, err := b.changer.ChangeBackground(ctx, imaging.BackgroundRequest{
		Prompt:      res.UsedPrompt,
		Image:       artifact.InlineData.Data,
		AspectRatio: aspectRatio,
		SampleCount: sampleCount,
	})
	switch {
	case errors.Is(err, imaging.ErrNoImage):
		res.Message = "No images generated"
		return res, nil
	case err != nil:
		res.Message = fmt.Sprintf("Error changing background: %v", err)
		return res, nil
	}

	ids := make([]string, 0, len(images))
	for _, image := range images {
		id := fmt.Sprintf("%s%s_%d.png", BackgroundPrefix, toolCtx.FunctionCallID(), image.Index)
		if _, err := toolCtx.SaveArtifact(ctx, id, genai.NewPartFromBytes(image.Data, image.MIMEType)); err != nil {
			return nil, fmt.Errorf("save edited image %s: %w", id, err)
		}
		logger.InfoContext(ctx, "saved edited image", slog.String("artifact_id", id))
		ids = append(ids, id)
	}

	res.Status = tools.StatusSuccess
	res.ToolResponseArtifactID = strings.Join(ids, ", ")
	res.Message = "Input image updated successfully."
	return res, nil
}

// NewChangeBackgroundFastTool returns change_background_fast_tool.
func NewChangeBackgroundFastTool(changer BackgroundChanger) types.Tool {
	b := &backgroundTool{changer: changer, aspectRatios: imaging.BackgroundAspectRatios}
	return tools.MustFunctionTool(ChangeBackgroundFastToolName,
		"Changes the background of a product image to the described scene while strictly preserving the product. "+
			"Not for generating new images; delegate those to image_gen_agent.",
		nil, b.run)
}

// NewChangeBackgroundCapabilityTool returns change_background_capability_tool, which always renders square images.
func NewChangeBackgroundCapabilityTool(changer BackgroundChanger) types.Tool {
	b := &backgroundTool{changer: changer}
	return tools.MustFunctionTool(ChangeBackgroundCapabilityToolName,
		"Changes the background of a product image to the described scene with the capability model, "+
			"strictly preserving the product. Output images are square.",
		nil,
		func(ctx context.Context, toolCtx *types.ToolContext, args CapabilityArgs) (*BackgroundResult, error) {
			return b.run(ctx, toolCtx, BackgroundArgs{
				Description:     args.Description,
				ImageArtifactID: args.ImageArtifactID,
				SampleCount:     args.SampleCount,
			})
		})
}

// EditArgs are the arguments of edit_image_tool.
type EditArgs struct {
	Description      string   `json:"description" description:"The requested edit, e.g. \"put this on a beach\"."`
	ImageArtifactIDs []string `json:"image_artifact_ids" description:"Artifact ids of the images to edit. Only the first one is used."`
}

// EditResult reports an edit.
type EditResult struct {
	Status                 string `json:"status"`
	Message                string `json:"message"`
	ToolResponseArtifactID string `json:"tool_response_artifact_id"`
	ToolInputArtifactID    string `json:"tool_input_artifact_id"`
	UsedPrompt             string `json:"used_prompt"`
}

// NewEditImageTool returns edit_image_tool.
func NewEditImageTool(editor Editor) types.Tool {
	return tools.MustFunctionTool(EditImageToolName,
		"Edits an existing image by replacing its whole background with the described scene, preserving the product.",
		nil,
		func(ctx context.Context, toolCtx *types.ToolContext, args EditArgs) (*EditResult, error) {
			res := &EditResult{
				Status:     tools.StatusError,
				UsedPrompt: args.Description,
			}
			if len(args.ImageArtifactIDs) == 0 || args.ImageArtifactIDs[0] == "" {
				res.Message = "No reference image artifact ID provided."
				return res, nil
			}
			id := args.ImageArtifactIDs[0]

			reference, err := toolCtx.LoadArtifact(ctx, id, types.LatestVersion)
			if err != nil {
				return nil, fmt.Errorf("load artifact %s: %w", id, err)
			}
			if reference == nil || reference.InlineData == nil {
				res.Message = fmt.Sprintf("Artifact %s not found.", id)
				return res, nil
			}
			res.ToolInputArtifactID = id
			res.UsedPrompt = imaging.ReplaceBackgroundPrompt(args.Description)

			edited, err := editor.Edit(ctx, reference, res.UsedPrompt)
			if err != nil {
				res.Message = fmt.Sprintf("Error editing image: %v", err)
				return res, nil
			}

			outID := EditedPrefix + toolCtx.FunctionCallID() + ".png"
			if _, err := toolCtx.SaveArtifact(ctx, outID, edited); err != nil {
				return nil, fmt.Errorf("save edited image %s: %w", outID, err)
			}
			logging.FromContext(ctx).InfoContext(ctx, "saved edited image", slog.String("artifact_id", outID))

			res.Status = tools.StatusSuccess
			res.ToolResponseArtifactID = outID
			res.Message = "Image edited successfully."
			return res, nil
		})
}

// NewTools returns the tools of the image_edit_agent that deps can serve.
func NewTools(deps Deps) []types.Tool {
	var ts []types.Tool
	if deps.Fast != nil {
		ts = append(ts, NewChangeBackgroundFastTool(deps.Fast))
	}
	if deps.Capability != nil {
		ts = append(ts, NewChangeBackgroundCapabilityTool(deps.Capability))
	}
	return append(ts, NewEditImageTool(deps.Editor), tools.NewLoadArtifactsTool())
}
