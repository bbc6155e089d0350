// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/types"
)

// scope identifies the owner of an artifact. User namespaced artifacts have an empty session.
type scope struct {
	app, user, session string
}

func newScope(appName, userID, sessionID, filename string) scope {
	if fileHasUserNamespace(filename) {
		sessionID = ""
	}
	return scope{app: appName, user: userID, session: sessionID}
}

// InMemoryService keeps every version of every artifact in process memory.
// It backs tests and the "memory" backend.
type InMemoryService struct {
	mu    sync.Mutex
	files map[scope]map[string][]*genai.Part
}

var _ types.ArtifactService = (*InMemoryService)(nil)

// NewInMemoryService returns an empty [InMemoryService].
func NewInMemoryService() *InMemoryService {
	return &InMemoryService{files: make(map[scope]map[string][]*genai.Part)}
}

func (a *InMemoryService) versions(appName, userID, sessionID, filename string) []*genai.Part {
	return a.files[newScope(appName, userID, sessionID, filename)][filename]
}

// SaveArtifact implements [types.ArtifactService].
func (a *InMemoryService) SaveArtifact(ctx context.Context, appName, userID, sessionID, filename string, artifact *genai.Part) (int, error) {
	if artifact == nil {
		return 0, fmt.Errorf("save artifact %q: nil part", filename)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	s := newScope(appName, userID, sessionID, filename)
	if a.files[s] == nil {
		a.files[s] = make(map[string][]*genai.Part)
	}
	version := len(a.files[s][filename])
	a.files[s][filename] = append(a.files[s][filename], artifact)
	return version, nil
}

// LoadArtifact implements [types.ArtifactService].
func (a *InMemoryService) LoadArtifact(ctx context.Context, appName, userID, sessionID, filename string, version int) (*genai.Part, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	versions := a.versions(appName, userID, sessionID, filename)
	if version == types.LatestVersion {
		version = len(versions) - 1
	}
	if version < 0 || version >= len(versions) {
		return nil, nil
	}
	return versions[version], nil
}

// ListArtifactKey implements [types.ArtifactService].
func (a *InMemoryService) ListArtifactKey(ctx context.Context, appName, userID, sessionID string) ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var names []string
	for _, s := range []scope{{appName, userID, sessionID}, {appName, userID, ""}} {
		for name := range a.files[s] {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// DeleteArtifact implements [types.ArtifactService].
func (a *InMemoryService) DeleteArtifact(ctx context.Context, appName, userID, sessionID, filename string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.files[newScope(appName, userID, sessionID, filename)], filename)
	return nil
}

// ListVersions implements [types.ArtifactService].
func (a *InMemoryService) ListVersions(ctx context.Context, appName, userID, sessionID, filename string) ([]int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(a.versions(appName, userID, sessionID, filename))
	if n == 0 {
		return nil, nil
	}
	versions := make([]int, n)
	for i := range versions {
		versions[i] = i
	}
	return versions, nil
}

// Close implements [types.ArtifactService].
func (a *InMemoryService) Close() error { return nil }
