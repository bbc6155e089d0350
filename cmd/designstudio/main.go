// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command designstudio talks to the design studio agents from the terminal.
//
// Usage:
//
//	designstudio run [flags] <prompt>
//	designstudio chat [flags]
//
// Examples:
//
//	designstudio run --image bottle.png "Put this bottle on a marble countertop"
//	designstudio run --json "Find the red shampoo bottle image"
//	designstudio chat --out ./images
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
