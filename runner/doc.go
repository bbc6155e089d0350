// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner runs an agent tree against the sessions of an application.
//
//	r := runner.New("design_studio", root, func(o *runner.Options) {
//		o.ArtifactService = artifacts
//	})
//	for event, err := range r.Run(ctx, userID, sessionID, genai.NewContentFromText(prompt, genai.RoleUser)) {
//		...
//	}
//
// A follow-up message goes to the agent that replied last when it and all of
// its ancestors allow transfer to their parent; otherwise it starts at the root.
package runner
