// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package imaging

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
	"google.golang.org/genai"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/go-a2a/design-studio/pkg/logging"
)

// Background editing defaults.
const (
	BackgroundSeed          = 257
	BackgroundImageSize     = 1024
	FastGuidanceScale       = 15
	CapabilityGuidanceScale = 14
	CapabilityBaseSteps     = 65

	// BackgroundMaskClass is the segmentation class of the product mask.
	BackgroundMaskClass = 115

	FastNegativePrompt       = "Dark colors, dark background, low res, low quality"
	CapabilityNegativePrompt = "Dark colors"
)

// BackgroundRequest asks to replace the background of a product image.
type BackgroundRequest struct {
	Prompt      string
	Image       []byte
	AspectRatio string
	SampleCount int
}

// Predictor is the subset of [*aiplatform.PredictionClient] used by [FastBackgroundEditor].
type Predictor interface {
	Predict(ctx context.Context, req *aiplatformpb.PredictRequest, opts ...gax.CallOption) (*aiplatformpb.PredictResponse, error)
	Close() error
}

var _ Predictor = (*aiplatform.PredictionClient)(nil)

// FastBackgroundEditor replaces backgrounds with the Imagen background editing mode of the Vertex AI prediction API.
type FastBackgroundEditor struct {
	predictor Predictor
	endpoint  string
	model     string
	opts      options
}

// NewFastBackgroundEditor dials the regional Vertex AI prediction endpoint of location.
func NewFastBackgroundEditor(ctx context.Context, project, location, model string, opts ...Option) (*FastBackgroundEditor, error) {
	if project == "" || location == "" {
		return nil, fmt.Errorf("fast background editor requires a project and a location")
	}
	client, err := aiplatform.NewPredictionClient(ctx, option.WithEndpoint(location+"-aiplatform.googleapis.com:443"))
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction client: %w", err)
	}
	return NewFastBackgroundEditorWithPredictor(client, project, location, model, opts...), nil
}

// NewFastBackgroundEditorWithPredictor returns a [FastBackgroundEditor] sending requests to predictor.
func NewFastBackgroundEditorWithPredictor(predictor Predictor, project, location, model string, opts ...Option) *FastBackgroundEditor {
	return &FastBackgroundEditor{
		predictor: predictor,
		endpoint:  fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s", project, location, model),
		model:     model,
		opts:      newOptions(opts),
	}
}

// Model returns the model name.
func (e *FastBackgroundEditor) Model() string {
	return e.model
}

// Close closes the prediction client.
func (e *FastBackgroundEditor) Close() error {
	return e.predictor.Close()
}

// ChangeBackground returns the decoded predictions. Predictions without image bytes are skipped.
func (e *FastBackgroundEditor) ChangeBackground(ctx context.Context, req BackgroundRequest) ([]Image, error) {
	instance, err := structpb.NewValue(map[string]any{
		"prompt": req.Prompt,
		"image": map[string]any{
			"bytesBase64Encoded": base64.StdEncoding.EncodeToString(req.Image),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build instance: %w", err)
	}
	params, err := structpb.NewValue(map[string]any{
		"aspectRatio":       req.AspectRatio,
		"IsProductImage":    true,
		"mode":              "backgroundEditing",
		"sampleImageSize":   BackgroundImageSize,
		"sampleCount":       req.SampleCount,
		"guidanceScale":     FastGuidanceScale,
		"disablePersonFace": true,
		"seed":              BackgroundSeed,
		"negativePrompt":    FastNegativePrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("build parameters: %w", err)
	}

	logger := logging.FromContext(ctx)
	logger.InfoContext(ctx, "calling background editing model",
		slog.String("model", e.model),
		slog.String("aspect_ratio", req.AspectRatio),
		slog.Int("sample_count", req.SampleCount),
	)

	resp, err := observe(ctx, e.opts, "background_fast", e.model, func() (*aiplatformpb.PredictResponse, error) {
		return e.predictor.Predict(ctx, &aiplatformpb.PredictRequest{
			Endpoint:   e.endpoint,
			Instances:  []*structpb.Value{instance},
			Parameters: params,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	var images []Image
	for i, prediction := range resp.GetPredictions() {
		fields := prediction.GetStructValue().GetFields()
		encoded := fields["bytesBase64Encoded"].GetStringValue()
		if encoded == "" {
			logger.ErrorContext(ctx, "prediction is missing image bytes", slog.Int("index", i))
			continue
		}
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode prediction %d: %w", i, err)
		}
		mimeType := fields["mimeType"].GetStringValue()
		if mimeType == "" {
			mimeType = PNG
		}
		images = append(images, Image{Index: i, Data: data, MIMEType: mimeType})
	}
	if len(images) == 0 {
		return nil, ErrNoImage
	}
	return images, nil
}

// ImageEditor is the subset of [*genai.Models] used by [CapabilityBackgroundEditor].
type ImageEditor interface {
	EditImage(ctx context.Context, model, prompt string, referenceImages []genai.ReferenceImage, config *genai.EditImageConfig) (*genai.EditImageResponse, error)
}

var _ ImageEditor = (*genai.Models)(nil)

// CapabilityBackgroundEditor swaps backgrounds with the Imagen capability model.
//
// The product is kept with an automatic background mask of the reference image.
type CapabilityBackgroundEditor struct {
	models ImageEditor
	model  string
	opts   options
}

// NewCapabilityBackgroundEditor returns a [CapabilityBackgroundEditor] calling model through models.
func NewCapabilityBackgroundEditor(models ImageEditor, model string, opts ...Option) *CapabilityBackgroundEditor {
	return &CapabilityBackgroundEditor{
		models: models,
		model:  model,
		opts:   newOptions(opts),
	}
}

// Model returns the model name.
func (e *CapabilityBackgroundEditor) Model() string {
	return e.model
}

// ChangeBackground returns the generated images. Images without bytes are skipped.
func (e *CapabilityBackgroundEditor) ChangeBackground(ctx context.Context, req BackgroundRequest) ([]Image, error) {
	ref := &genai.Image{ImageBytes: req.Image}
	references := []genai.ReferenceImage{
		genai.NewRawReferenceImage(ref, 1),
		genai.NewMaskReferenceImage(ref, 2, &genai.MaskReferenceConfig{
			MaskMode:            genai.MaskReferenceModeMaskModeBackground,
			SegmentationClasses: []int32{BackgroundMaskClass},
			MaskDilation:        genai.Ptr[float32](0),
		}),
	}
	config := &genai.EditImageConfig{
		EditMode:         genai.EditModeBgswap,
		BaseSteps:        genai.Ptr[int32](CapabilityBaseSteps),
		NumberOfImages:   int32(req.SampleCount),
		GuidanceScale:    genai.Ptr[float32](CapabilityGuidanceScale),
		PersonGeneration: genai.PersonGenerationAllowAll,
		Seed:             genai.Ptr[int32](BackgroundSeed),
		AddWatermark:     genai.Ptr(false),
		NegativePrompt:   CapabilityNegativePrompt,
		AspectRatio:      req.AspectRatio,
	}

	logger := logging.FromContext(ctx)
	logger.InfoContext(ctx, "calling background swap model",
		slog.String("model", e.model),
		slog.Int("sample_count", req.SampleCount),
	)

	resp, err := observe(ctx, e.opts, "background_capability", e.model, func() (*genai.EditImageResponse, error) {
		return e.models.EditImage(ctx, e.model, req.Prompt, references, config)
	})
	if err != nil {
		return nil, fmt.Errorf("edit image: %w", err)
	}

	var images []Image
	for i, generated := range resp.GeneratedImages {
		if generated == nil || generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
			if generated != nil && generated.RAIFilteredReason != "" {
				logger.WarnContext(ctx, "generated image was filtered",
					slog.Int("index", i),
					slog.String("reason", generated.RAIFilteredReason),
				)
			}
			continue
		}
		mimeType := generated.Image.MIMEType
		if mimeType == "" {
			mimeType = PNG
		}
		images = append(images, Image{Index: i, Data: generated.Image.ImageBytes, MIMEType: mimeType})
	}
	if len(images) == 0 {
		return nil, ErrNoImage
	}
	return images, nil
}
