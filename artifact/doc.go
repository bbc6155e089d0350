// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package artifact provides versioned storage for the images agents produce and consume.
//
// # Backends
//
//   - InMemoryService: process-local maps, used by tests and the default CLI
//   - GCSService: one object per version in a Cloud Storage bucket
//   - RedisService: one Redis list per artifact, optionally expiring with the session
//
// [New] picks a backend from a [Config].
//
// # Layout
//
// Artifacts are organized hierarchically:
//
//	{appName}/{userID}/{sessionID}/{filename}  // Session-scoped artifacts
//	{appName}/{userID}/user/{filename}         // User-scoped artifacts (user: prefix)
//
// # Versioning
//
// The first save of a filename returns version 0 and every later save the next
// integer. Load with [types.LatestVersion] for the newest version:
//
//	svc := artifact.NewInMemoryService()
//	v, err := svc.SaveArtifact(ctx, "design_studio", "user", "s1", "generated_img_1.png",
//		genai.NewPartFromBytes(data, "image/png"))
//	part, err := svc.LoadArtifact(ctx, "design_studio", "user", "s1", "generated_img_1.png", types.LatestVersion)
//
// Loading an unknown filename or version returns a nil part and a nil error.
package artifact
