// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package imaging

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/pkg/logging"
)

// ContentGenerator is the subset of [*genai.Models] used by [Generator] and [Editor].
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var _ ContentGenerator = (*genai.Models)(nil)

// GenerateRequest is a reference-guided image generation request.
type GenerateRequest struct {
	// References are the reference images, sent before the prompt.
	References     []*genai.Part
	Prompt         string
	AspectRatio    string
	CandidateCount int
}

// Generator creates images from reference images and a prompt.
type Generator struct {
	models ContentGenerator
	model  string
	opts   options
}

// NewGenerator returns a [Generator] calling model through models.
func NewGenerator(models ContentGenerator, model string, opts ...Option) *Generator {
	return &Generator{
		models: models,
		model:  model,
		opts:   newOptions(opts),
	}
}

// Model returns the model name.
func (g *Generator) Model() string {
	return g.model
}

// Generate returns the inline image parts of the first candidate.
//
// The aspect ratio and candidate count must already be normalized.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) ([]*genai.Part, error) {
	parts := make([]*genai.Part, 0, len(req.References)+1)
	parts = append(parts, req.References...)
	parts = append(parts, genai.NewPartFromText(req.Prompt))

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage)},
		CandidateCount:     int32(req.CandidateCount),
		ImageConfig: &genai.ImageConfig{
			AspectRatio: req.AspectRatio,
		},
	}

	logging.FromContext(ctx).InfoContext(ctx, "calling image generation model",
		slog.String("model", g.model),
		slog.String("aspect_ratio", req.AspectRatio),
		slog.Int("candidate_count", req.CandidateCount),
		slog.Int("references", len(req.References)),
	)

	return generateImageParts(ctx, g.models, g.opts, "generate", g.model, parts, config)
}

// Editor performs single-candidate image-to-image edits.
type Editor struct {
	models ContentGenerator
	model  string
	opts   options
}

// NewEditor returns an [Editor] calling model through models.
func NewEditor(models ContentGenerator, model string, opts ...Option) *Editor {
	return &Editor{
		models: models,
		model:  model,
		opts:   newOptions(opts),
	}
}

// Model returns the model name.
func (e *Editor) Model() string {
	return e.model
}

// Edit returns the first image the model produced from reference and prompt.
func (e *Editor) Edit(ctx context.Context, reference *genai.Part, prompt string) (*genai.Part, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage)},
		CandidateCount:     1,
	}
	parts := []*genai.Part{reference, genai.NewPartFromText(prompt)}

	images, err := generateImageParts(ctx, e.models, e.opts, "edit", e.model, parts, config)
	if err != nil {
		return nil, err
	}
	return images[0], nil
}

func generateImageParts(ctx context.Context, models ContentGenerator, o options, operation, model string, parts []*genai.Part, config *genai.GenerateContentConfig) ([]*genai.Part, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := observe(ctx, o, operation, model, func() (*genai.GenerateContentResponse, error) {
		return models.GenerateContent(ctx, model, contents, config)
	})
	if err != nil {
		return nil, fmt.Errorf("%s image: %w", operation, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrNoImage
	}
	var images []*genai.Part
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			images = append(images, part)
		}
	}
	if len(images) == 0 {
		return nil, ErrNoImage
	}
	return images, nil
}
