// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"
)

func TestSchemaFor(t *testing.T) {
	type args struct {
		Prompt      string   `json:"prompt" description:"what to draw"`
		ArtifactIDs []string `json:"image_artifact_ids"`
		AspectRatio *string  `json:"aspect_ratio"`
		Count       int      `json:"candidate_count,omitzero"`
		Scale       float64  `json:"scale,omitempty"`
		Raw         bool
		Ignored     string `json:"-"`
		hidden      string
	}

	got, err := SchemaFor[args]()
	if err != nil {
		t.Fatalf("SchemaFor() error = %v", err)
	}
	want := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"prompt":             {Type: genai.TypeString, Description: "what to draw"},
			"image_artifact_ids": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"aspect_ratio":       {Type: genai.TypeString},
			"candidate_count":    {Type: genai.TypeInteger},
			"scale":              {Type: genai.TypeNumber},
			"Raw":                {Type: genai.TypeBoolean},
		},
		PropertyOrdering: []string{"prompt", "image_artifact_ids", "aspect_ratio", "candidate_count", "scale", "Raw"},
		Required:         []string{"prompt", "image_artifact_ids", "Raw"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SchemaFor() mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaFor_Unsupported(t *testing.T) {
	type args struct {
		Callback func() `json:"callback"`
	}
	if _, err := SchemaFor[args](); err == nil {
		t.Fatal("SchemaFor() error = nil, want error for func field")
	}
}

func TestSchemaFor_NonStringMapKey(t *testing.T) {
	if _, err := SchemaFor[map[int]string](); err == nil {
		t.Fatal("SchemaFor() error = nil, want error for int map keys")
	}
}
