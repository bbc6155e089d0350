// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package gcsagent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/internal/assets"
	"github.com/go-a2a/design-studio/internal/imaging"
	"github.com/go-a2a/design-studio/internal/imageutil"
	"github.com/go-a2a/design-studio/pkg/logging"
	"github.com/go-a2a/design-studio/tool/tools"
	"github.com/go-a2a/design-studio/types"
)

// Tool names.
const (
	SearchImagesToolName = "search_images_in_gcs"
	GetImageToolName     = "get_image_from_gcs"
	SaveImageToolName    = "save_image_to_gcs"
)

// ImagePrefix prefixes the artifact ids of images fetched from the bucket.
const ImagePrefix = "gcs_image_"

// AssetStore searches, fetches and publishes images.
type AssetStore interface {
	Search(ctx context.Context, query string) ([]string, error)
	Fetch(ctx context.Context, name string) ([]byte, string, error)
	Publish(ctx context.Context, data []byte, mimeType string) (*assets.Published, error)
}

var _ AssetStore = (*assets.Store)(nil)

// SearchArgs are the arguments of search_images_in_gcs.
type SearchArgs struct {
	SearchQuery string `json:"search_query" description:"Fuzzy name or description of the image, e.g. \"red shampoo bottle\"."`
}

// NewSearchImagesTool returns search_images_in_gcs.
func NewSearchImagesTool(store AssetStore) types.Tool {
	return tools.MustFunctionTool(SearchImagesToolName,
		"Searches the high-resolution product images for file names fuzzily matching the query. "+
			"Returns the matching names, best match first.",
		nil,
		func(ctx context.Context, _ *types.ToolContext, args SearchArgs) (map[string]any, error) {
			images, err := store.Search(ctx, args.SearchQuery)
			if err != nil {
				return nil, fmt.Errorf("search GCS: %w", err)
			}
			if len(images) == 0 {
				return tools.ErrorResult("No matching files found."), nil
			}
			return map[string]any{"images": images}, nil
		})
}

// GetImageArgs are the arguments of get_image_from_gcs.
type GetImageArgs struct {
	ImageName string `json:"image_name" description:"Exact file name returned by search_images_in_gcs."`
}

// NewGetImageTool returns get_image_from_gcs, which saves the image as gcs_image_<name>.
func NewGetImageTool(store AssetStore) types.Tool {
	return tools.MustFunctionTool(GetImageToolName,
		"Downloads a product image by its exact file name and saves it as an artifact.",
		nil,
		func(ctx context.Context, toolCtx *types.ToolContext, args GetImageArgs) (map[string]any, error) {
			data, contentType, err := store.Fetch(ctx, args.ImageName)
			switch {
			case errors.Is(err, assets.ErrNotFound):
				return tools.ErrorResult("Image %s not found in GCS bucket.", args.ImageName), nil
			case err != nil:
				return nil, fmt.Errorf("fetch image from GCS: %w", err)
			}

			mimeType := contentType
			if !strings.HasPrefix(mimeType, "image/") {
				// Objects uploaded as base64 text decode to the image itself.
				if decoded, decodedMIME, err := imageutil.DecodeBase64(string(data)); err == nil {
					data, mimeType = decoded, decodedMIME
				}
				if !strings.HasPrefix(mimeType, "image/") {
					mimeType = imaging.PNG
				}
			}

			id := ImagePrefix + imageutil.SanitizeFilename(args.ImageName)
			if _, err := toolCtx.SaveArtifact(ctx, id, genai.NewPartFromBytes(data, mimeType)); err != nil {
				return nil, fmt.Errorf("save artifact %s: %w", id, err)
			}
			logging.FromContext(ctx).InfoContext(ctx, "saved image from GCS",
				slog.String("artifact_id", id),
				slog.String("mime_type", mimeType),
			)
			return map[string]any{"artifact_id": id}, nil
		})
}

// SaveImageArgs are the arguments of save_image_to_gcs.
type SaveImageArgs struct {
	ImageArtifactID string `json:"image_artifact_id" description:"Artifact id of the image to publish."`
}

// NewSaveImageTool returns save_image_to_gcs, publishing with a 120 minute signed URL.
func NewSaveImageTool(store AssetStore) types.Tool {
	return tools.MustFunctionTool(SaveImageToolName,
		"Publishes an image artifact to the outputs bucket and returns a signed URL valid for 120 minutes.",
		nil,
		func(ctx context.Context, toolCtx *types.ToolContext, args SaveImageArgs) (map[string]any, error) {
			artifact, err := toolCtx.LoadArtifact(ctx, args.ImageArtifactID, types.LatestVersion)
			if err != nil {
				return nil, fmt.Errorf("load artifact %s: %w", args.ImageArtifactID, err)
			}
			if artifact == nil || artifact.InlineData == nil {
				return tools.ErrorResult("Artifact %s not found.", args.ImageArtifactID), nil
			}

			published, err := store.Publish(ctx, artifact.InlineData.Data, artifact.InlineData.MIMEType)
			if err != nil {
				return nil, fmt.Errorf("save image to GCS: %w", err)
			}
			return map[string]any{
				"signed_url": published.SignedURL,
				"filename":   published.Filename,
			}, nil
		})
}

// NewTools returns every tool of the gcs_agent.
func NewTools(store AssetStore) []types.Tool {
	return []types.Tool{
		NewSearchImagesTool(store),
		NewGetImageTool(store),
		NewSaveImageTool(store),
	}
}
