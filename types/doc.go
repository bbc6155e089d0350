// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package types defines the contracts shared by the design studio runtime.
//
// Agents, tools, models, sessions and artifact stores only talk to each other
// through the interfaces declared here, so that a package such as [agent]
// never imports a concrete model or storage backend.
//
// # Agents
//
// An [Agent] is a node in a tree. The root agent receives every user turn and
// may hand the conversation to one of its descendants through the
// transfer_to_agent function call:
//
//	root_agent
//	├── image_gen_agent
//	├── image_edit_agent
//	└── gcs_agent
//
// Running an agent yields a stream of [*Event] values:
//
//	for event, err := range a.Run(ctx, ictx) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(event.Author, event.IsFinalResponse())
//	}
//
// # Contexts
//
// An [InvocationContext] lives for one user turn. Callbacks receive a
// [CallbackContext] and tools a [ToolContext]; both record side effects
// (state changes, saved artifacts, transfers) on an [EventActions] value that
// travels with the event they produce.
//
// # Artifacts
//
// An [ArtifactService] stores versioned binary parts keyed by
// app, user, session and filename. Filenames beginning with "user:" are
// shared by every session of the same user.
//
//	version, err := cctx.SaveArtifact(ctx, "generated_img_1.png", part)
//	latest, err := cctx.LoadArtifact(ctx, "generated_img_1.png", types.LatestVersion)
//
// Loading a filename that was never saved returns a nil part and a nil error.
package types
