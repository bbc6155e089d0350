// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package fuzzy_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/design-studio/internal/fuzzy"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{a: "abc", b: "abc", want: 100},
		{a: "abc", b: "", want: 0},
		{a: "", b: "", want: 0},
		{a: "kitten", b: "sitting", want: 62},
		{a: "dry", b: "dry spray", want: 50},
		{a: "héllo", b: "héllo", want: 100},
	}
	for _, tt := range tests {
		if got := fuzzy.Ratio(tt.a, tt.b); got != tt.want {
			t.Errorf("Ratio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "subset", a: "dry spray", b: "DRY-SPRAY-travel.png", want: 100},
		{name: "underscores join words", a: "dry spray", b: "Dry_Spray_Shampoo.png", want: 53},
		{name: "underscores in a path", a: "dry spray", b: "high_resolution_images/dry_spray_shampoo.png", want: 30},
		{name: "order and duplicates", a: "fuzzy was a bear", b: "fuzzy fuzzy was a bear", want: 100},
		{name: "partial overlap", a: "dry spray", b: "dry_shampoo.png", want: 42},
		{name: "non-ascii dropped", a: "dry spray", b: "drý spray", want: 94},
		{name: "empty query", a: "  ", b: "shampoo.png", want: 0},
		{name: "no common characters", a: "dry spray", b: "-_-", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fuzzy.TokenSetRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("TokenSetRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}

	if got := fuzzy.TokenSetRatio("blue shampoo", "red conditioner"); got >= 50 {
		t.Errorf("TokenSetRatio(unrelated) = %d, want < 50", got)
	}
}

func TestSearch(t *testing.T) {
	candidates := []string{
		"dry_shampoo.png",
		"dry_spray_shampoo.png",
		"red_conditioner.png",
		"spray-dry.jpg",
		"DRY-SPRAY-travel.png",
	}

	tests := map[string]struct {
		threshold int
		want      []fuzzy.Match
	}{
		"strict threshold": {
			threshold: 80,
			want: []fuzzy.Match{
				{Value: "spray-dry.jpg", Score: 100},
				{Value: "DRY-SPRAY-travel.png", Score: 100},
			},
		},
		"loose threshold ranks partial matches last": {
			threshold: 40,
			want: []fuzzy.Match{
				{Value: "spray-dry.jpg", Score: 100},
				{Value: "DRY-SPRAY-travel.png", Score: 100},
				{Value: "dry_spray_shampoo.png", Score: 53},
				{Value: "dry_shampoo.png", Score: 42},
			},
		},
		"threshold is exclusive": {
			threshold: 100,
			want:      nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := fuzzy.Search("dry spray", candidates, tt.threshold)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Search() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
