// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package imaging

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"github.com/google/go-cmp/cmp"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/genai"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestNormalizeAspectRatio(t *testing.T) {
	tests := map[string]struct {
		ratio   string
		allowed []string
		want    string
		wantOK  bool
	}{
		"generation ok":         {ratio: "21:9", allowed: GenerationAspectRatios, want: "21:9", wantOK: true},
		"generation unknown":    {ratio: "7:3", allowed: GenerationAspectRatios, want: "1:1"},
		"background ok":         {ratio: "9:16", allowed: BackgroundAspectRatios, want: "9:16", wantOK: true},
		"background restricted": {ratio: "21:9", allowed: BackgroundAspectRatios, want: "1:1"},
		"empty":                 {ratio: "", allowed: GenerationAspectRatios, want: "1:1"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := NormalizeAspectRatio(tt.ratio, tt.allowed)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NormalizeAspectRatio(%q) = %q, %t, want %q, %t", tt.ratio, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClampCandidateCount(t *testing.T) {
	for n, want := range map[int]int{-1: 1, 0: 1, 1: 1, 3: 3, 4: 4, 5: 1, 100: 1} {
		if got := ClampCandidateCount(n); got != want {
			t.Errorf("ClampCandidateCount(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestClampSampleCount(t *testing.T) {
	for n, want := range map[int]int{-1: 1, 0: 1, 1: 1, 2: 2, 4: 4, 5: 4, 100: 4} {
		if got := ClampSampleCount(n); got != want {
			t.Errorf("ClampSampleCount(%d) = %d, want %d", n, got, want)
		}
	}
}

type fakeContentGenerator struct {
	resp *genai.GenerateContentResponse
	err  error

	gotModel    string
	gotContents []*genai.Content
	gotConfig   *genai.GenerateContentConfig
}

func (f *fakeContentGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	f.gotContents = contents
	f.gotConfig = config
	return f.resp, f.err
}

func imageResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromParts(parts, genai.RoleModel)},
		},
	}
}

func TestGeneratorGenerate(t *testing.T) {
	img := genai.NewPartFromBytes([]byte("out"), "image/png")
	fake := &fakeContentGenerator{resp: imageResponse(genai.NewPartFromText("here you go"), img)}
	g := NewGenerator(fake, "image-model")

	ref := genai.NewPartFromBytes([]byte("ref"), "image/jpeg")
	got, err := g.Generate(t.Context(), GenerateRequest{
		References:     []*genai.Part{ref},
		Prompt:         "on a beach",
		AspectRatio:    "16:9",
		CandidateCount: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || string(got[0].InlineData.Data) != "out" {
		t.Fatalf("Generate() = %v, want the inline image only", got)
	}

	if fake.gotModel != "image-model" {
		t.Errorf("model = %q", fake.gotModel)
	}
	if diff := cmp.Diff([]string{"IMAGE"}, fake.gotConfig.ResponseModalities); diff != "" {
		t.Errorf("ResponseModalities mismatch (-want +got):\n%s", diff)
	}
	if fake.gotConfig.CandidateCount != 2 || fake.gotConfig.ImageConfig.AspectRatio != "16:9" {
		t.Errorf("config = %+v", fake.gotConfig)
	}
	parts := fake.gotContents[0].Parts
	if len(parts) != 2 || parts[0] != ref || parts[1].Text != "on a beach" {
		t.Errorf("request parts = %v, want reference then prompt", parts)
	}
}

func TestGeneratorNoImage(t *testing.T) {
	tests := map[string]*genai.GenerateContentResponse{
		"no candidates": {},
		"text only":     imageResponse(genai.NewPartFromText("sorry")),
	}
	for name, resp := range tests {
		t.Run(name, func(t *testing.T) {
			g := NewGenerator(&fakeContentGenerator{resp: resp}, "m")
			if _, err := g.Generate(t.Context(), GenerateRequest{Prompt: "x"}); !errors.Is(err, ErrNoImage) {
				t.Fatalf("Generate() error = %v, want ErrNoImage", err)
			}
		})
	}
}

func TestGeneratorAPIError(t *testing.T) {
	g := NewGenerator(&fakeContentGenerator{err: errors.New("quota")}, "m")
	if _, err := g.Generate(t.Context(), GenerateRequest{Prompt: "x"}); err == nil || errors.Is(err, ErrNoImage) {
		t.Fatalf("Generate() error = %v, want the API error", err)
	}
}

func TestEditorEdit(t *testing.T) {
	fake := &fakeContentGenerator{resp: imageResponse(
		genai.NewPartFromBytes([]byte("first"), "image/png"),
		genai.NewPartFromBytes([]byte("second"), "image/png"),
	)}
	e := NewEditor(fake, "edit-model")

	got, err := e.Edit(t.Context(), genai.NewPartFromBytes([]byte("ref"), "image/png"), "snowy background")
	if err != nil {
		t.Fatal(err)
	}
	if string(got.InlineData.Data) != "first" {
		t.Errorf("Edit() = %q, want first image", got.InlineData.Data)
	}
	if fake.gotConfig.CandidateCount != 1 {
		t.Errorf("CandidateCount = %d, want 1", fake.gotConfig.CandidateCount)
	}
}

type fakePredictor struct {
	resp *aiplatformpb.PredictResponse
	err  error
	req  *aiplatformpb.PredictRequest
}

func (f *fakePredictor) Predict(_ context.Context, req *aiplatformpb.PredictRequest, _ ...gax.CallOption) (*aiplatformpb.PredictResponse, error) {
	f.req = req
	return f.resp, f.err
}

func (f *fakePredictor) Close() error { return nil }

func prediction(t *testing.T, fields map[string]any) *structpb.Value {
	t.Helper()
	v, err := structpb.NewValue(fields)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestFastBackgroundEditor(t *testing.T) {
	fake := &fakePredictor{resp: &aiplatformpb.PredictResponse{
		Predictions: []*structpb.Value{
			prediction(t, map[string]any{"bytesBase64Encoded": base64.StdEncoding.EncodeToString([]byte("a"))}),
			prediction(t, map[string]any{"mimeType": "image/png"}),
			prediction(t, map[string]any{"bytesBase64Encoded": base64.StdEncoding.EncodeToString([]byte("c")), "mimeType": "image/jpeg"}),
		},
	}}
	e := NewFastBackgroundEditorWithPredictor(fake, "proj", "us-central1", "imagen")

	got, err := e.ChangeBackground(t.Context(), BackgroundRequest{
		Prompt:      "forest",
		Image:       []byte("ref"),
		AspectRatio: "4:3",
		SampleCount: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []Image{
		{Index: 0, Data: []byte("a"), MIMEType: PNG},
		{Index: 2, Data: []byte("c"), MIMEType: "image/jpeg"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ChangeBackground() mismatch (-want +got):\n%s", diff)
	}

	if want := "projects/proj/locations/us-central1/publishers/google/models/imagen"; fake.req.GetEndpoint() != want {
		t.Errorf("endpoint = %q, want %q", fake.req.GetEndpoint(), want)
	}
	params := fake.req.GetParameters().GetStructValue().GetFields()
	if params["mode"].GetStringValue() != "backgroundEditing" || params["sampleCount"].GetNumberValue() != 3 {
		t.Errorf("parameters = %v", params)
	}
}

func TestFastBackgroundEditorNoPredictions(t *testing.T) {
	e := NewFastBackgroundEditorWithPredictor(&fakePredictor{resp: &aiplatformpb.PredictResponse{}}, "p", "l", "m")
	if _, err := e.ChangeBackground(t.Context(), BackgroundRequest{SampleCount: 1}); !errors.Is(err, ErrNoImage) {
		t.Fatalf("ChangeBackground() error = %v, want ErrNoImage", err)
	}
}

type fakeImageEditor struct {
	resp   *genai.EditImageResponse
	refs   []genai.ReferenceImage
	config *genai.EditImageConfig
}

func (f *fakeImageEditor) EditImage(_ context.Context, _, _ string, refs []genai.ReferenceImage, config *genai.EditImageConfig) (*genai.EditImageResponse, error) {
	f.refs = refs
	f.config = config
	return f.resp, nil
}

func TestCapabilityBackgroundEditor(t *testing.T) {
	fake := &fakeImageEditor{resp: &genai.EditImageResponse{
		GeneratedImages: []*genai.GeneratedImage{
			{RAIFilteredReason: "filtered"},
			{Image: &genai.Image{ImageBytes: []byte("ok")}},
		},
	}}
	e := NewCapabilityBackgroundEditor(fake, "imagen-capability")

	got, err := e.ChangeBackground(t.Context(), BackgroundRequest{Prompt: "studio", Image: []byte("ref"), SampleCount: 2})
	if err != nil {
		t.Fatal(err)
	}
	want := []Image{{Index: 1, Data: []byte("ok"), MIMEType: PNG}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ChangeBackground() mismatch (-want +got):\n%s", diff)
	}
	if len(fake.refs) != 2 {
		t.Fatalf("got %d reference images, want raw and mask", len(fake.refs))
	}
	if fake.config.EditMode != genai.EditModeBgswap || fake.config.NumberOfImages != 2 {
		t.Errorf("config = %+v", fake.config)
	}
}

func TestPrompts(t *testing.T) {
	tests := map[string]struct {
		got    string
		prefix string
	}{
		"preserve":  {got: PreserveProductPrompt("beach"), prefix: "USER PROMPT: beach.\n\n---\n"},
		"unbranded": {got: UnbrandedProductPrompt("beach"), prefix: "USER PROMPT: beach.\n\n---\n"},
		"replace":   {got: ReplaceBackgroundPrompt("beach"), prefix: "USER REQUEST: beach\n\n---\n"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if len(tt.got) <= len(tt.prefix) || tt.got[:len(tt.prefix)] != tt.prefix {
				t.Errorf("prompt = %q, want prefix %q", tt.got, tt.prefix)
			}
		})
	}
}
