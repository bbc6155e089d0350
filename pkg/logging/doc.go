// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides context-based structured logging utilities using Go's standard slog package.
//
// Loggers are stored in and retrieved from context.Context values, so every
// layer of the agent runtime logs through the logger the command installed:
//
//	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
//	if err != nil {
//		return err
//	}
//	ctx = logging.NewContext(ctx, logger)
//
//	logging.FromContext(ctx).InfoContext(ctx, "image generated",
//		slog.String("artifact_id", id),
//	)
//
// When no logger is found in the context, FromContext returns a JSON logger
// that writes to stderr at info level.
package logging
