// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package session_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/design-studio/session"
	"github.com/go-a2a/design-studio/types"
)

func TestInMemoryService_CreateAndGet(t *testing.T) {
	ctx := t.Context()
	svc := session.NewInMemoryService()

	ses, err := svc.CreateSession(ctx, "app", "u1", "", map[string]any{"k": "v"})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if ses.ID() == "" {
		t.Fatal("CreateSession() returned an empty session id")
	}

	got, err := svc.GetSession(ctx, "app", "u1", ses.ID(), nil)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if diff := cmp.Diff(map[string]any{"k": "v"}, got.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}

	// mutations of a returned copy must not leak into the store
	got.State()["k"] = "changed"
	again, err := svc.GetSession(ctx, "app", "u1", ses.ID(), nil)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if again.State()["k"] != "v" {
		t.Fatalf("stored state was mutated: %v", again.State())
	}

	if _, err := svc.CreateSession(ctx, "app", "u1", ses.ID(), nil); err == nil {
		t.Fatal("CreateSession() with a duplicate id should fail")
	}
}

func TestInMemoryService_GetMissing(t *testing.T) {
	svc := session.NewInMemoryService()
	_, err := svc.GetSession(t.Context(), "app", "u1", "nope", nil)
	if !errors.Is(err, types.ErrSessionNotFound) {
		t.Fatalf("GetSession() error = %v, want ErrSessionNotFound", err)
	}
}

func TestInMemoryService_AppendEventScopes(t *testing.T) {
	ctx := t.Context()
	svc := session.NewInMemoryService()

	s1, err := svc.CreateSession(ctx, "app", "u1", "s1", nil)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := svc.CreateSession(ctx, "app", "u1", "s2", nil)
	if err != nil {
		t.Fatal(err)
	}

	ev := types.NewEvent().WithAuthor("user")
	ev.Actions.StateDelta = map[string]any{
		"app:theme":    "dark",
		"user:brand":   "forest",
		"temp:scratch": 1,
		"step":         2,
	}
	if _, err := svc.AppendEvent(ctx, s1, ev); err != nil {
		t.Fatalf("AppendEvent() error = %v", err)
	}
	if len(s1.Events()) != 1 {
		t.Fatalf("caller session has %d events, want 1", len(s1.Events()))
	}

	got1, err := svc.GetSession(ctx, "app", "u1", "s1", nil)
	if err != nil {
		t.Fatal(err)
	}
	want1 := map[string]any{"app:theme": "dark", "user:brand": "forest", "step": 2}
	if diff := cmp.Diff(want1, got1.State()); diff != "" {
		t.Fatalf("s1 state mismatch (-want +got):\n%s", diff)
	}

	got2, err := svc.GetSession(ctx, "app", "u1", s2.ID(), nil)
	if err != nil {
		t.Fatal(err)
	}
	want2 := map[string]any{"app:theme": "dark", "user:brand": "forest"}
	if diff := cmp.Diff(want2, got2.State()); diff != "" {
		t.Fatalf("s2 state mismatch (-want +got):\n%s", diff)
	}
}

func TestInMemoryService_PartialEventsAreNotStored(t *testing.T) {
	ctx := t.Context()
	svc := session.NewInMemoryService()
	ses, err := svc.CreateSession(ctx, "app", "u1", "s1", nil)
	if err != nil {
		t.Fatal(err)
	}

	ev := types.NewEvent().WithAuthor("agent")
	ev.Partial = true
	if _, err := svc.AppendEvent(ctx, ses, ev); err != nil {
		t.Fatal(err)
	}
	got, err := svc.GetSession(ctx, "app", "u1", "s1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(got.Events()); n != 0 {
		t.Fatalf("stored %d events, want 0", n)
	}
}

func TestInMemoryService_GetSessionConfig(t *testing.T) {
	ctx := t.Context()
	svc := session.NewInMemoryService()
	ses, err := svc.CreateSession(ctx, "app", "u1", "s1", nil)
	if err != nil {
		t.Fatal(err)
	}

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		ev := types.NewEvent().WithAuthor("user")
		ev.Timestamp = base.Add(time.Duration(i) * time.Minute)
		if _, err := svc.AppendEvent(ctx, ses, ev); err != nil {
			t.Fatal(err)
		}
	}

	tests := map[string]struct {
		config *types.GetSessionConfig
		want   int
	}{
		"all":     {config: nil, want: 5},
		"recent":  {config: &types.GetSessionConfig{NumRecentEvents: 2}, want: 2},
		"after":   {config: &types.GetSessionConfig{AfterTimestamp: base.Add(3 * time.Minute)}, want: 2},
		"both":    {config: &types.GetSessionConfig{NumRecentEvents: 1, AfterTimestamp: base.Add(1 * time.Minute)}, want: 1},
		"tooMany": {config: &types.GetSessionConfig{NumRecentEvents: 50}, want: 5},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := svc.GetSession(ctx, "app", "u1", "s1", tt.config)
			if err != nil {
				t.Fatal(err)
			}
			if n := len(got.Events()); n != tt.want {
				t.Fatalf("got %d events, want %d", n, tt.want)
			}
		})
	}
}

func TestInMemoryService_ListAndDelete(t *testing.T) {
	ctx := t.Context()
	svc := session.NewInMemoryService()
	for _, id := range []string{"b", "a"} {
		if _, err := svc.CreateSession(ctx, "app", "u1", id, nil); err != nil {
			t.Fatal(err)
		}
	}

	list, err := svc.ListSessions(ctx, "app", "u1")
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, s := range list {
		ids = append(ids, s.ID())
	}
	if diff := cmp.Diff([]string{"a", "b"}, ids); diff != "" {
		t.Fatalf("ListSessions() mismatch (-want +got):\n%s", diff)
	}

	if err := svc.DeleteSession(ctx, "app", "u1", "a"); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteSession(ctx, "app", "u1", "missing"); err != nil {
		t.Fatalf("DeleteSession() of a missing session error = %v", err)
	}
	if _, err := svc.GetSession(ctx, "app", "u1", "a", nil); !errors.Is(err, types.ErrSessionNotFound) {
		t.Fatalf("GetSession() after delete error = %v", err)
	}

	empty, err := svc.ListSessions(ctx, "other", "u1")
	if err != nil || len(empty) != 0 {
		t.Fatalf("ListSessions() for unknown app = %v, %v", empty, err)
	}
}
