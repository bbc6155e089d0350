// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package imagegen_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/designstudio/imagegen"
	"github.com/go-a2a/design-studio/internal/assets"
	"github.com/go-a2a/design-studio/internal/imaging"
	"github.com/go-a2a/design-studio/internal/testutil"
	"github.com/go-a2a/design-studio/types"
)

type fakeGenerator struct {
	images []*genai.Part
	err    error
	got    imaging.GenerateRequest
	calls  int
}

func (f *fakeGenerator) Generate(_ context.Context, req imaging.GenerateRequest) ([]*genai.Part, error) {
	f.calls++
	f.got = req
	return f.images, f.err
}

type fakeAssets struct {
	published []byte
	folder    string
	err       error
}

func (f *fakeAssets) PublishUnder(_ context.Context, folder string, data []byte) (*assets.Published, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.folder = folder
	f.published = data
	return &assets.Published{Filename: folder + "/20251208-090000-1.png", SignedURL: "https://signed.example/1"}, nil
}

func (f *fakeAssets) SKUDetails(_ context.Context, names []string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]any)
	for _, n := range names {
		out[n] = assets.SKUNotFound
	}
	return out, nil
}

func (f *fakeAssets) ListReferenceImages(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

func run(t *testing.T, tool types.Tool, toolCtx *types.ToolContext, args map[string]any) map[string]any {
	t.Helper()
	got, err := tool.Run(t.Context(), args, toolCtx)
	if err != nil {
		t.Fatalf("%s: Run() error = %v", tool.Name(), err)
	}
	return got.(map[string]any)
}

func saveReference(t *testing.T, toolCtx *types.ToolContext, id string) {
	t.Helper()
	if _, err := toolCtx.SaveArtifact(t.Context(), id, genai.NewPartFromBytes([]byte(id), "image/png")); err != nil {
		t.Fatal(err)
	}
}

func TestGenerateImageTool(t *testing.T) {
	gen := &fakeGenerator{images: []*genai.Part{
		genai.NewPartFromBytes([]byte("out-0"), "image/png"),
		genai.NewPartFromBytes([]byte("out-1"), "image/png"),
	}}
	toolCtx := testutil.ToolContext(t, "image_gen_agent", "fc1")
	saveReference(t, toolCtx, "input_image_a.png")
	saveReference(t, toolCtx, "input_image_b.png")

	got := run(t, imagegen.NewGenerateImageTool(gen), toolCtx, map[string]any{
		"description":        "a bottle on a spa counter",
		"aspect_ratio":       "7:5",
		"candidate_count":    float64(9),
		"image_artifact_ids": []any{"input_image_a.png", "input_image_b.png"},
	})

	if got["status"] != "success" {
		t.Fatalf("status = %v, message = %v", got["status"], got["message"])
	}
	if want := "generated_img_fc1_0.png, generated_img_fc1_1.png"; got["tool_response_artifact_id"] != want {
		t.Errorf("tool_response_artifact_id = %v, want %q", got["tool_response_artifact_id"], want)
	}
	if want := "input_image_a.png, input_image_b.png"; got["tool_input_artifact_id"] != want {
		t.Errorf("tool_input_artifact_id = %v, want %q", got["tool_input_artifact_id"], want)
	}
	if want := imaging.PreserveProductPrompt("a bottle on a spa counter"); got["used_prompt"] != want {
		t.Errorf("used_prompt = %v", got["used_prompt"])
	}

	if gen.got.AspectRatio != imaging.DefaultAspectRatio || gen.got.CandidateCount != 1 {
		t.Errorf("request aspect ratio = %q, candidate count = %d, want defaults", gen.got.AspectRatio, gen.got.CandidateCount)
	}
	if len(gen.got.References) != 2 {
		t.Errorf("got %d references, want 2", len(gen.got.References))
	}

	saved, err := toolCtx.LoadArtifact(t.Context(), "generated_img_fc1_1.png", types.LatestVersion)
	if err != nil || saved == nil {
		t.Fatalf("LoadArtifact() = %v, %v", saved, err)
	}
	if string(saved.InlineData.Data) != "out-1" {
		t.Errorf("saved artifact = %q", saved.InlineData.Data)
	}
}

func TestGenerateImageToolSingleImage(t *testing.T) {
	gen := &fakeGenerator{images: []*genai.Part{genai.NewPartFromBytes([]byte("out"), "image/png")}}
	toolCtx := testutil.ToolContext(t, "image_gen_agent", "fc2")
	saveReference(t, toolCtx, "ref.png")

	got := run(t, imagegen.NewGenerateUnlabeledImageTool(gen), toolCtx, map[string]any{
		"description":        "plain bottle",
		"aspect_ratio":       "9:16",
		"candidate_count":    1,
		"image_artifact_ids": []any{"ref.png"},
	})
	if got["tool_response_artifact_id"] != "generated_img_fc2.png" {
		t.Errorf("tool_response_artifact_id = %v", got["tool_response_artifact_id"])
	}
	if gen.got.AspectRatio != "9:16" {
		t.Errorf("aspect ratio = %q, want 9:16", gen.got.AspectRatio)
	}
	if gen.got.Prompt != imaging.UnbrandedProductPrompt("plain bottle") {
		t.Errorf("prompt = %q", gen.got.Prompt)
	}
}

func TestGenerateImageToolErrors(t *testing.T) {
	tests := map[string]struct {
		args        map[string]any
		gen         *fakeGenerator
		noArtifacts bool
		wantMessage string
		wantCalls   int
	}{
		"no references": {
			args:        map[string]any{"description": "x", "image_artifact_ids": []any{}},
			gen:         &fakeGenerator{},
			wantMessage: "No reference image provided",
		},
		"missing reference": {
			args:        map[string]any{"description": "x", "image_artifact_ids": []any{"ref.png", "nope.png"}},
			gen:         &fakeGenerator{},
			wantMessage: "Artifact nope.png not found",
		},
		"api error": {
			args:        map[string]any{"description": "x", "image_artifact_ids": []any{"ref.png"}},
			gen:         &fakeGenerator{err: errors.New("quota exceeded")},
			wantMessage: "quota exceeded",
			wantCalls:   1,
		},
		"no artifact service": {
			args:        map[string]any{"description": "x", "image_artifact_ids": []any{"ref.png"}},
			gen:         &fakeGenerator{},
			noArtifacts: true,
			wantMessage: types.ErrNoArtifactService.Error(),
		},
		"bad arguments": {
			args:        map[string]any{"description": "x", "candidate_count": "two", "image_artifact_ids": []any{"ref.png"}},
			gen:         &fakeGenerator{},
			wantMessage: "invalid arguments",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var toolCtx *types.ToolContext
			if tt.noArtifacts {
				toolCtx = testutil.NoArtifactsToolContext(t, "image_gen_agent", "fc")
			} else {
				toolCtx = testutil.ToolContext(t, "image_gen_agent", "fc")
				saveReference(t, toolCtx, "ref.png")
			}

			got := run(t, imagegen.NewGenerateImageTool(tt.gen), toolCtx, tt.args)
			if got["status"] != "error" {
				t.Fatalf("status = %v, want error", got["status"])
			}
			if msg, _ := got["message"].(string); !strings.Contains(msg, tt.wantMessage) {
				t.Errorf("message = %q, want it to contain %q", msg, tt.wantMessage)
			}
			if tt.gen.calls != tt.wantCalls {
				t.Errorf("generator called %d times, want %d", tt.gen.calls, tt.wantCalls)
			}
		})
	}
}

func TestSaveImageToGCSTool(t *testing.T) {
	store := &fakeAssets{}
	toolCtx := testutil.ToolContext(t, "image_gen_agent", "fc")
	saveReference(t, toolCtx, "generated_img_fc.png")

	got := run(t, imagegen.NewSaveImageToGCSTool(store), toolCtx, map[string]any{"image_artifact_id": "generated_img_fc.png"})
	want := map[string]any{
		"status":     "success",
		"signed_url": "https://signed.example/1",
		"filename":   "generate_image_tool/20251208-090000-1.png",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if string(store.published) != "generated_img_fc.png" {
		t.Errorf("published %q", store.published)
	}

	got = run(t, imagegen.NewSaveImageToGCSTool(store), toolCtx, map[string]any{"image_artifact_id": "missing.png"})
	if got["status"] != "error" {
		t.Errorf("missing artifact: status = %v, want error", got["status"])
	}

	unconfigured := &fakeAssets{err: assets.ErrNotConfigured}
	got = run(t, imagegen.NewSaveImageToGCSTool(unconfigured), toolCtx, map[string]any{"image_artifact_id": "generated_img_fc.png"})
	if msg, _ := got["message"].(string); got["status"] != "error" || !strings.Contains(msg, "not configured") {
		t.Errorf("unconfigured bucket: result = %v", got)
	}
}

func TestArtifactStateTools(t *testing.T) {
	toolCtx := testutil.ToolContext(t, "image_gen_agent", "fc")
	saveReference(t, toolCtx, "generated_img_fc.png")

	got := run(t, imagegen.NewSaveArtifactToStateTool(), toolCtx, map[string]any{"artifact_id": "generated_img_fc.png"})
	if got["status"] != "success" {
		t.Fatalf("save_artifact_to_state: %v", got)
	}
	if v, _ := toolCtx.State().Get(imagegen.CurrentImageKey); v != "generated_img_fc.png" {
		t.Errorf("state %s = %v", imagegen.CurrentImageKey, v)
	}
	if toolCtx.Actions().StateDelta[imagegen.CurrentImageKey] != "generated_img_fc.png" {
		t.Errorf("state delta = %v", toolCtx.Actions().StateDelta)
	}

	got = run(t, imagegen.NewSaveArtifactToStateTool(), toolCtx, map[string]any{"artifact_id": "missing.png"})
	if got["status"] != "error" {
		t.Errorf("missing artifact: status = %v, want error", got["status"])
	}

	run(t, imagegen.NewClearImageStateTool(), toolCtx, nil)
	if v := toolCtx.State().GetString(imagegen.CurrentImageKey); v != "" {
		t.Errorf("after clear, state %s = %v", imagegen.CurrentImageKey, v)
	}
}

func TestGuidelinesFor(t *testing.T) {
	tests := map[string]struct {
		keywords []string
		want     string
	}{
		"none":    {want: imagegen.BrandGuidelines["default"]},
		"unknown": {keywords: []string{"beach"}, want: imagegen.BrandGuidelines["default"]},
		"ordered": {
			keywords: []string{"forest", "countertop"},
			want:     imagegen.BrandGuidelines["default"] + " " + imagegen.BrandGuidelines["forest"] + " " + imagegen.BrandGuidelines["countertop"],
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := imagegen.GuidelinesFor(tt.keywords); got != tt.want {
				t.Errorf("GuidelinesFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCatalogueTools(t *testing.T) {
	toolCtx := testutil.ToolContext(t, "image_gen_agent", "fc")

	got := run(t, imagegen.NewSKUDetailsTool(&fakeAssets{}), toolCtx, map[string]any{"sku_names": []any{"SKU-Z"}})
	want := map[string]any{"status": "success", "skus": map[string]any{"SKU-Z": assets.SKUNotFound}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("get_sku_details mismatch (-want +got):\n%s", diff)
	}

	got = run(t, imagegen.NewSKUDetailsTool(&fakeAssets{}), toolCtx, map[string]any{"sku_names": []any{}})
	if got["status"] != "error" {
		t.Errorf("empty names: status = %v, want error", got["status"])
	}

	got = run(t, imagegen.NewListReferenceImagesTool(&fakeAssets{}), toolCtx, nil)
	if got["status"] != "error" {
		t.Errorf("no images: status = %v, want error", got["status"])
	}
}
