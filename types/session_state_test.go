// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/design-studio/types"
)

func TestStateWritesOnlyDelta(t *testing.T) {
	committed := map[string]any{"current_image_artifact_id": "a.png", "user:brand": "acme"}
	delta := map[string]any{}
	state := types.NewState(committed, delta)

	state.Set("current_image_artifact_id", "b.png")
	state.Set("temp:scratch", 1)

	if got := state.GetString("current_image_artifact_id"); got != "b.png" {
		t.Errorf("GetString() = %q, want b.png", got)
	}
	if got := state.GetString("user:brand"); got != "acme" {
		t.Errorf("GetString(user:brand) = %q, want acme", got)
	}
	if _, ok := state.Get("missing"); ok {
		t.Error("Get(missing) reported a value")
	}
	if got := state.GetString("temp:scratch"); got != "" {
		t.Errorf("GetString of a non-string = %q, want empty", got)
	}

	if diff := cmp.Diff(map[string]any{"current_image_artifact_id": "a.png", "user:brand": "acme"}, committed); diff != "" {
		t.Errorf("committed state mutated (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"current_image_artifact_id": "b.png", "temp:scratch": 1}, delta); diff != "" {
		t.Errorf("delta mismatch (-want +got):\n%s", diff)
	}
}

func TestIsTempKey(t *testing.T) {
	tests := map[string]bool{
		"temp:scratch":              true,
		"user:brand":                false,
		"current_image_artifact_id": false,
		"temporary":                 false,
	}
	for key, want := range tests {
		if got := types.IsTempKey(key); got != want {
			t.Errorf("IsTempKey(%q) = %t, want %t", key, got, want)
		}
	}
}
