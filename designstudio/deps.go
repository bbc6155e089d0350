// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package designstudio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/artifact"
	"github.com/go-a2a/design-studio/designstudio/imageedit"
	"github.com/go-a2a/design-studio/designstudio/imagegen"
	"github.com/go-a2a/design-studio/internal/assets"
	"github.com/go-a2a/design-studio/internal/config"
	"github.com/go-a2a/design-studio/internal/imaging"
	"github.com/go-a2a/design-studio/model"
	"github.com/go-a2a/design-studio/pkg/logging"
	"github.com/go-a2a/design-studio/types"
)

// Deps are the external clients of the agent tree.
type Deps struct {
	Models model.Clients

	Generator            imagegen.Generator
	Editor               imageedit.Editor
	FastBackground       imageedit.BackgroundChanger
	CapabilityBackground imageedit.BackgroundChanger
	Assets               AssetStore

	ArtifactService types.ArtifactService

	closers []io.Closer
}

// NewDeps dials the clients cfg describes.
//
// Buckets left unnamed in cfg stay unconfigured and their tools report an
// error to the model. Both background editors run on Vertex AI only: they
// are built whenever a project is configured, even when the agents use the
// Gemini API, and are left nil otherwise.
func NewDeps(ctx context.Context, cfg *config.Config) (_ *Deps, err error) {
	logger := logging.FromContext(ctx)
	deps := &Deps{}
	defer func() {
		if err != nil {
			_ = deps.Close()
		}
	}()

	genaiClient, err := model.NewGenAIClient(ctx, model.GoogleConfig{
		VertexAI: cfg.Google.UseVertexAI,
		APIKey:   cfg.Google.APIKey,
		Project:  cfg.Google.Project,
		Location: cfg.Google.Location,
	})
	if err != nil {
		return nil, err
	}
	deps.Models.Gemini = genaiClient.Models

	if usesClaude(cfg) {
		claude, err := model.NewAnthropicClient(ctx, model.AnthropicConfig{
			APIKey:  cfg.Anthropic.APIKey,
			Project: cfg.Google.Project,
			Region:  cfg.Anthropic.Region,
		})
		if err != nil {
			return nil, err
		}
		deps.Models.Claude = &claude.Messages
	}

	limiter := imaging.WithLimiter(imaging.NewLimiter(cfg.Tools.RequestsPerMinute))
	deps.Generator = imaging.NewGenerator(genaiClient.Models, cfg.Tools.ImageGenerationModel, limiter)
	deps.Editor = imaging.NewEditor(genaiClient.Models, cfg.Tools.ImageEditModel, limiter)
	if err := deps.dialBackgroundEditors(ctx, cfg, genaiClient, limiter); err != nil {
		return nil, err
	}

	storeCfg := assets.Config{
		ImagePrefix:  cfg.Storage.ImagePrefix,
		SKUFilePath:  cfg.Storage.SKUFilePath,
		MaxImageSize: cfg.Storage.MaxImageSizeBytes(),
	}
	if cfg.Storage.SKUDataBucket == "" && cfg.Storage.AgentOutputsBucket == "" {
		logger.WarnContext(ctx, "no GCS buckets configured, storage tools are disabled")
		deps.Assets = assets.New(storeCfg)
	} else {
		storageClient, err := assets.NewStorageClient(ctx)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, storageClient)
		deps.Assets = assets.NewGCSStore(storageClient, cfg.Storage.SKUDataBucket, cfg.Storage.AgentOutputsBucket, storeCfg)
	}

	deps.ArtifactService, err = artifact.New(ctx, artifact.Config{
		Backend:     cfg.Artifacts.Backend,
		GCSBucket:   cfg.Artifacts.GCSBucket,
		RedisURL:    cfg.Artifacts.RedisURL,
		RedisPrefix: cfg.Artifacts.RedisPrefix,
		TTL:         cfg.Artifacts.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("create artifact service: %w", err)
	}
	deps.closers = append(deps.closers, deps.ArtifactService)

	logger.InfoContext(ctx, "design studio clients ready",
		slog.String("artifact_backend", cfg.Artifacts.Backend),
		slog.String("sku_bucket", cfg.Storage.SKUDataBucket),
		slog.String("outputs_bucket", cfg.Storage.AgentOutputsBucket),
		slog.String("max_image_size", cfg.Storage.HumanMaxImageSize()),
	)
	return deps, nil
}

func (d *Deps) dialBackgroundEditors(ctx context.Context, cfg *config.Config, client *genai.Client, limiter imaging.Option) error {
	if cfg.Google.Project == "" {
		logging.FromContext(ctx).WarnContext(ctx, "no Vertex AI project, background tools are disabled")
		return nil
	}

	vertex := client
	if !cfg.Google.UseVertexAI {
		var err error
		vertex, err = model.NewGenAIClient(ctx, model.GoogleConfig{
			VertexAI: true,
			Project:  cfg.Google.Project,
			Location: cfg.Google.Location,
		})
		if err != nil {
			return fmt.Errorf("create vertex ai client for image editing: %w", err)
		}
	}
	d.CapabilityBackground = imaging.NewCapabilityBackgroundEditor(vertex.Models, cfg.Tools.BackgroundCapabilityModel, limiter)

	fast, err := imaging.NewFastBackgroundEditor(ctx, cfg.Google.Project, cfg.Google.Location, cfg.Tools.BackgroundFastModel, limiter)
	if err != nil {
		return err
	}
	d.FastBackground = fast
	d.closers = append(d.closers, fast)
	return nil
}

// Close releases the clients opened by [NewDeps].
func (d *Deps) Close() error {
	var errs []error
	for _, c := range d.closers {
		errs = append(errs, c.Close())
	}
	d.closers = nil
	return errors.Join(errs...)
}

func usesClaude(cfg *config.Config) bool {
	for _, name := range []string{config.RootAgent, config.ImageGenAgent, config.ImageEditAgent, config.GCSAgent} {
		if strings.HasPrefix(strings.ToLower(cfg.Agents.Params(name).Model), model.ModelTypeClaude) {
			return true
		}
	}
	return false
}
