// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package imagegen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/internal/assets"
	"github.com/go-a2a/design-studio/internal/imaging"
	"github.com/go-a2a/design-studio/pkg/logging"
	"github.com/go-a2a/design-studio/tool/tools"
	"github.com/go-a2a/design-studio/types"
)

// Tool names.
const (
	GenerateImageToolName          = "generate_image_tool"
	GenerateUnlabeledImageToolName = "generate_image_without_labels_tool"
	SaveImageToGCSToolName         = "save_image_to_gcs"
	SaveArtifactToStateToolName    = "save_artifact_to_state"
	ClearImageStateToolName        = "clear_image_state_tool"
	BrandGuidelinesToolName        = "get_brand_guidelines"
	SKUDetailsToolName             = "get_sku_details"
	ListReferenceImagesToolName    = "list_reference_images"
)

// CurrentImageKey is the session state key holding the image being worked on.
const CurrentImageKey = "current_image_artifact_id"

// GeneratedPrefix prefixes the artifact ids of generated images.
const GeneratedPrefix = "generated_img_"

// Generator generates images from references and a prompt.
type Generator interface {
	Generate(ctx context.Context, req imaging.GenerateRequest) ([]*genai.Part, error)
}

var _ Generator = (*imaging.Generator)(nil)

// AssetStore publishes generated images and serves the product catalogue.
type AssetStore interface {
	PublishUnder(ctx context.Context, folder string, data []byte) (*assets.Published, error)
	SKUDetails(ctx context.Context, names []string) (map[string]any, error)
	ListReferenceImages(ctx context.Context) ([]string, error)
}

var _ AssetStore = (*assets.Store)(nil)

// Deps are the clients the image_gen_agent tools call.
type Deps struct {
	Generator Generator
	Assets    AssetStore
}

// GenerateArgs are the arguments of the generation tools.
type GenerateArgs struct {
	Description      string   `json:"description" description:"Detailed description of the desired image, e.g. \"Image of a shampoo bottle on a spa counter.\""`
	AspectRatio      string   `json:"aspect_ratio,omitempty" description:"One of 1:1, 2:3, 3:2, 3:4, 4:3, 4:5, 5:4, 9:16, 16:9, 21:9. Defaults to 1:1."`
	CandidateCount   int      `json:"candidate_count,omitempty" description:"Number of images to generate, 1 to 4. Defaults to 1."`
	ImageArtifactIDs []string `json:"image_artifact_ids" description:"Artifact ids of the reference images, e.g. [\"product.png\"]."`
}

// GenerateResult reports a generation.
type GenerateResult struct {
	Status                 string `json:"status"`
	Message                string `json:"message"`
	ToolResponseArtifactID string `json:"tool_response_artifact_id"`
	ToolInputArtifactID    string `json:"tool_input_artifact_id"`
	UsedPrompt             string `json:"used_prompt"`
}

type generateTool struct {
	generator Generator
	prompt    func(description string) string
}

func (g *generateTool) run(ctx context.Context, toolCtx *types.ToolContext, args GenerateArgs) (*GenerateResult, error) {
	logger := logging.FromContext(ctx)
	logger.InfoContext(ctx, "generating image",
		slog.String("aspect_ratio", args.AspectRatio),
		slog.Int("candidate_count", args.CandidateCount),
		slog.Any("image_artifact_ids", args.ImageArtifactIDs),
	)

	res := &GenerateResult{
		Status:     tools.StatusError,
		UsedPrompt: args.Description,
	}
	if len(args.ImageArtifactIDs) == 0 {
		res.Message = "No reference image provided. Please provide a reference image to generate the image."
		return res, nil
	}

	references := make([]*genai.Part, 0, len(args.ImageArtifactIDs))
	for _, id := range args.ImageArtifactIDs {
		artifact, err := toolCtx.LoadArtifact(ctx, id, types.LatestVersion)
		if err != nil {
			return nil, fmt.Errorf("load artifact %s: %w", id, err)
		}
		if artifact == nil || artifact.InlineData == nil {
			res.Message = fmt.Sprintf("Artifact %s not found", id)
			return res, nil
		}
		references = append(references, artifact)
	}
	res.ToolInputArtifactID = strings.Join(args.ImageArtifactIDs, ", ")
	res.UsedPrompt = g.prompt(args.Description)

	aspectRatio, ok := imaging.NormalizeAspectRatio(args.AspectRatio, imaging.GenerationAspectRatios)
	if !ok {
		logger.WarnContext(ctx, "invalid aspect ratio, using default",
			slog.String("aspect_ratio", args.AspectRatio),
			slog.String("default", aspectRatio),
		)
	}
	candidateCount := imaging.ClampCandidateCount(args.CandidateCount)
	if candidateCount != args.CandidateCount {
		logger.WarnContext(ctx, "invalid candidate count, using default", slog.Int("candidate_count", args.CandidateCount))
	}

	images, err := g.generator.Generate(ctx, imaging.GenerateRequest{
		References:     references,
		Prompt:         res.UsedPrompt,
		AspectRatio:    aspectRatio,
		CandidateCount: candidateCount,
	})
	if err != nil {
		res.Message = fmt.Sprintf("Error generating image: %v", err)
		return res, nil
	}

	ids := make([]string, 0, len(images))
	for i, image := range images {
		id := GeneratedPrefix + toolCtx.FunctionCallID() + ".png"
		if len(images) > 1 {
			id = fmt.Sprintf("%s%s_%d.png", GeneratedPrefix, toolCtx.FunctionCallID(), i)
		}
		if _, err := toolCtx.SaveArtifact(ctx, id, image); err != nil {
			return nil, fmt.Errorf("save generated image %s: %w", id, err)
		}
		logger.InfoContext(ctx, "saved generated image",
			slog.String("artifact_id", id),
			slog.String("mime_type", image.InlineData.MIMEType),
		)
		ids = append(ids, id)
	}

	res.Status = tools.StatusSuccess
	res.ToolResponseArtifactID = strings.Join(ids, ", ")
	res.Message = fmt.Sprintf("Image generated successfully using %d input image(s)", len(references))
	return res, nil
}

// NewGenerateImageTool returns generate_image_tool, which keeps the reference product unaltered.
func NewGenerateImageTool(generator Generator) types.Tool {
	g := &generateTool{generator: generator, prompt: imaging.PreserveProductPrompt}
	return tools.MustFunctionTool(GenerateImageToolName,
		"Generates a new image from a text description and reference images. "+
			"Not for image editing such as changing the background; delegate those to image_edit_agent.",
		nil, g.run)
}

// NewGenerateUnlabeledImageTool returns generate_image_without_labels_tool, which removes every label from the product.
func NewGenerateUnlabeledImageTool(generator Generator) types.Tool {
	g := &generateTool{generator: generator, prompt: imaging.UnbrandedProductPrompt}
	return tools.MustFunctionTool(GenerateUnlabeledImageToolName,
		"Generates a new image from a text description and reference images, removing all labels, "+
			"text and logos from the product while keeping its shape and colours.",
		nil, g.run)
}

// SaveImageArgs are the arguments of save_image_to_gcs.
type SaveImageArgs struct {
	ImageArtifactID string `json:"image_artifact_id" description:"Artifact id of the image to publish."`
}

// SaveImageResult reports a published image.
type SaveImageResult struct {
	SignedURL string `json:"signed_url"`
	Filename  string `json:"filename"`
}

// NewSaveImageToGCSTool returns save_image_to_gcs, publishing under the tool folder with a 30 minute URL.
func NewSaveImageToGCSTool(store AssetStore) types.Tool {
	return tools.MustFunctionTool(SaveImageToGCSToolName,
		"Saves an image artifact to Cloud Storage and returns a signed URL valid for 30 minutes.",
		nil,
		func(ctx context.Context, toolCtx *types.ToolContext, args SaveImageArgs) (*SaveImageResult, error) {
			artifact, err := toolCtx.LoadArtifact(ctx, args.ImageArtifactID, types.LatestVersion)
			if err != nil {
				return nil, fmt.Errorf("load artifact %s: %w", args.ImageArtifactID, err)
			}
			if artifact == nil || artifact.InlineData == nil {
				return nil, fmt.Errorf("artifact %s not found", args.ImageArtifactID)
			}

			published, err := store.PublishUnder(ctx, GenerateImageToolName, artifact.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("save image to GCS: %w", err)
			}
			return &SaveImageResult{SignedURL: published.SignedURL, Filename: published.Filename}, nil
		})
}

// ArtifactStateArgs are the arguments of save_artifact_to_state.
type ArtifactStateArgs struct {
	ArtifactID string `json:"artifact_id" description:"Artifact id of the image the user keeps working on."`
}

// NewSaveArtifactToStateTool returns save_artifact_to_state, remembering an existing artifact under [CurrentImageKey].
func NewSaveArtifactToStateTool() types.Tool {
	return tools.MustFunctionTool(SaveArtifactToStateToolName,
		"Stores the artifact id of the image being worked on in the session state for further edits.",
		nil,
		func(ctx context.Context, toolCtx *types.ToolContext, args ArtifactStateArgs) (map[string]any, error) {
			artifact, err := toolCtx.LoadArtifact(ctx, args.ArtifactID, types.LatestVersion)
			if err != nil {
				return nil, fmt.Errorf("load artifact %s: %w", args.ArtifactID, err)
			}
			if artifact == nil {
				return nil, fmt.Errorf("artifact %s not found", args.ArtifactID)
			}
			toolCtx.State().Set(CurrentImageKey, args.ArtifactID)
			return map[string]any{
				"message":       fmt.Sprintf("Artifact %s stored in session state.", args.ArtifactID),
				CurrentImageKey: args.ArtifactID,
			}, nil
		})
}

// NewClearImageStateTool returns clear_image_state_tool, forgetting the image being worked on.
func NewClearImageStateTool() types.Tool {
	return tools.MustFunctionTool(ClearImageStateToolName,
		"Clears the image being worked on from the session state so the user can start over.",
		nil,
		func(ctx context.Context, toolCtx *types.ToolContext, _ struct{}) (map[string]any, error) {
			toolCtx.State().Set(CurrentImageKey, "")
			return map[string]any{"message": "Image state cleared."}, nil
		})
}

// BrandGuidelines are the guideline snippets selected by keyword. The "default" entry is always included.
var BrandGuidelines = map[string]string{
	"default":           "Image must be high-resolution. Adhere to a minimalist aesthetic.",
	"countertop":        "Lighting must be soft, originating from the left. No reflections. Use only colors from the primary brand palette (neutrals, deep blue).",
	"forest":            "Ensure the product lighting is adjusted to match the new background. The forest should be natural and out-of-focus. Maintain a high-quality, professional look.",
	"general_aesthetic": "Colors must be from the primary brand palette. Minimalist background.",
}

// GuidelinesFor joins the default guideline with those of the known keywords, in keyword order.
func GuidelinesFor(keywords []string) string {
	guidelines := []string{BrandGuidelines["default"]}
	for _, keyword := range keywords {
		if keyword == "default" {
			continue
		}
		if g, ok := BrandGuidelines[keyword]; ok {
			guidelines = append(guidelines, g)
		}
	}
	return strings.Join(guidelines, " ")
}

// BrandGuidelinesArgs are the arguments of get_brand_guidelines.
type BrandGuidelinesArgs struct {
	Keywords []string `json:"keywords,omitempty" description:"Scene keywords such as countertop, forest or general_aesthetic."`
}

// NewBrandGuidelinesTool returns get_brand_guidelines.
func NewBrandGuidelinesTool() types.Tool {
	return tools.MustFunctionTool(BrandGuidelinesToolName,
		"Returns the brand guidelines that apply to the given scene keywords.",
		nil,
		func(_ context.Context, _ *types.ToolContext, args BrandGuidelinesArgs) (map[string]any, error) {
			return map[string]any{"guidelines": GuidelinesFor(args.Keywords)}, nil
		})
}

// SKUDetailsArgs are the arguments of get_sku_details.
type SKUDetailsArgs struct {
	SKUNames []string `json:"sku_names" description:"Product (SKU) names to look up."`
}

// NewSKUDetailsTool returns get_sku_details.
func NewSKUDetailsTool(store AssetStore) types.Tool {
	return tools.MustFunctionTool(SKUDetailsToolName,
		"Fetches product details for a list of SKU names from the product catalogue.",
		nil,
		func(ctx context.Context, _ *types.ToolContext, args SKUDetailsArgs) (map[string]any, error) {
			if len(args.SKUNames) == 0 {
				return nil, errors.New("no SKU names provided")
			}
			details, err := store.SKUDetails(ctx, args.SKUNames)
			if err != nil {
				return nil, fmt.Errorf("get SKU details: %w", err)
			}
			return map[string]any{"skus": details}, nil
		})
}

// NewListReferenceImagesTool returns list_reference_images.
func NewListReferenceImagesTool(store AssetStore) types.Tool {
	return tools.MustFunctionTool(ListReferenceImagesToolName,
		"Lists the available high-resolution reference images of the brand.",
		nil,
		func(ctx context.Context, _ *types.ToolContext, _ struct{}) (map[string]any, error) {
			images, err := store.ListReferenceImages(ctx)
			if err != nil {
				return nil, fmt.Errorf("list reference images: %w", err)
			}
			if len(images) == 0 {
				return nil, errors.New("no reference images found")
			}
			return map[string]any{"images": images}, nil
		})
}

// NewTools returns every tool of the image_gen_agent.
func NewTools(deps Deps) []types.Tool {
	return []types.Tool{
		NewGenerateImageTool(deps.Generator),
		NewGenerateUnlabeledImageTool(deps.Generator),
		NewSaveImageToGCSTool(deps.Assets),
		tools.NewLoadArtifactsTool(),
		NewSaveArtifactToStateTool(),
		NewClearImageStateTool(),
		NewBrandGuidelinesTool(),
		NewSKUDetailsTool(deps.Assets),
		NewListReferenceImagesTool(deps.Assets),
	}
}
