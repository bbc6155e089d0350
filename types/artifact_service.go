// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"

	"google.golang.org/genai"
)

// LatestVersion asks [ArtifactService.LoadArtifact] for the newest version of an artifact.
const LatestVersion = -1

// ArtifactService stores versioned binary artifacts scoped to an app, user and session.
//
// Filenames prefixed with "user:" are scoped to the user and visible from every
// session of that user.
type ArtifactService interface {
	// SaveArtifact saves an artifact to the artifact service storage.
	//
	// The artifact is a file identified by the app name, user ID, session ID, and
	// filename. The first save returns version 0 and each later save of the same
	// filename returns the previous version plus one.
	SaveArtifact(ctx context.Context, appName, userID, sessionID, filename string, artifact *genai.Part) (int, error)

	// LoadArtifact gets an artifact from the artifact service storage.
	//
	// Pass [LatestVersion] for the newest version. A missing artifact or version
	// returns (nil, nil).
	LoadArtifact(ctx context.Context, appName, userID, sessionID, filename string, version int) (*genai.Part, error)

	// ListArtifactKey lists all the artifact filenames within a session, sorted.
	ListArtifactKey(ctx context.Context, appName, userID, sessionID string) ([]string, error)

	// DeleteArtifact deletes all versions of an artifact.
	DeleteArtifact(ctx context.Context, appName, userID, sessionID, filename string) error

	// ListVersions lists all versions of an artifact in ascending order.
	ListVersions(ctx context.Context, appName, userID, sessionID, filename string) ([]int, error)

	// Close closes the artifact service connection.
	Close() error
}
