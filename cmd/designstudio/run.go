// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	var images []string
	cmd := &cobra.Command{
		Use:   "run [flags] <prompt>",
		Short: "Send one request to the agents and print the events",
		Example: `  designstudio run --image bottle.png "Put this bottle on a marble countertop"
  echo "Find the red shampoo bottle image" | designstudio run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			if prompt == "" {
				prompt = readFromStdin(cmd.InOrStdin())
			}
			if prompt == "" {
				return errors.New("no prompt provided")
			}

			message, err := newMessage(prompt, images)
			if err != nil {
				return err
			}

			ctx, a, err := newApp(cmd.Context(), flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.close(ctx)

			return a.send(ctx, message)
		},
	}
	cmd.Flags().StringArrayVar(&images, "image", nil, "image file or base64 data URI to attach (repeatable)")
	return cmd
}

// newMessage builds the user message of prompt followed by the images.
func newMessage(prompt string, images []string) (*genai.Content, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	for _, image := range images {
		part, err := loadImage(image)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return genai.NewContentFromParts(parts, genai.RoleUser), nil
}

// readFromStdin returns piped input, or "" when stdin is a terminal.
func readFromStdin(r io.Reader) string {
	if f, ok := r.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return ""
		}
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
