// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

const chatHelp = `Commands:
  /attach FILE   attach an image file or data URI to the next message
  /artifacts     list the artifacts of the session
  /quit          leave the chat`

func newChatCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [flags]",
		Short: "Talk to the agents interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, a, err := newApp(cmd.Context(), flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.close(ctx)

			fmt.Fprintf(cmd.OutOrStdout(), "Session %s. Type /quit to leave.\n%s\n", a.sessionID, chatHelp)
			return chat(ctx, a, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// chatSession holds the REPL state between lines.
type chatSession struct {
	app     *app
	out     io.Writer
	pending []*genai.Part
}

func chat(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	s := &chatSession{app: a, out: out}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 32<<20)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		quit, err := s.handle(ctx, strings.TrimSpace(scanner.Text()))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (s *chatSession) handle(ctx context.Context, line string) (quit bool, err error) {
	command, arg, _ := strings.Cut(line, " ")
	switch command {
	case "":
		return false, nil
	case "/quit", "/exit":
		return true, nil
	case "/help":
		fmt.Fprintln(s.out, chatHelp)
		return false, nil
	case "/attach":
		arg = strings.TrimSpace(arg)
		if arg == "" {
			return false, errors.New("usage: /attach FILE")
		}
		part, err := loadImage(arg)
		if err != nil {
			return false, err
		}
		s.pending = append(s.pending, part)
		fmt.Fprintf(s.out, "attached %s (%s, %s)\n", arg, part.InlineData.MIMEType, humanize.Bytes(uint64(len(part.InlineData.Data))))
		return false, nil
	case "/artifacts":
		return false, s.listArtifacts(ctx)
	}

	if strings.HasPrefix(command, "/") {
		return false, fmt.Errorf("unknown command %s", command)
	}

	parts := append([]*genai.Part{genai.NewPartFromText(line)}, s.pending...)
	s.pending = nil
	return false, s.app.send(ctx, genai.NewContentFromParts(parts, genai.RoleUser))
}

func (s *chatSession) listArtifacts(ctx context.Context) error {
	names, err := s.app.listArtifacts(ctx)
	if err != nil {
		return fmt.Errorf("list artifacts: %w", err)
	}
	if len(names) == 0 {
		fmt.Fprintln(s.out, "no artifacts yet")
		return nil
	}
	for _, name := range names {
		part, err := s.app.loadArtifact(ctx, name)
		if err != nil {
			return fmt.Errorf("load artifact %s: %w", name, err)
		}
		size := "-"
		if part != nil && part.InlineData != nil {
			size = humanize.Bytes(uint64(len(part.InlineData.Data)))
		}
		fmt.Fprintf(s.out, "  %s  %s\n", name, size)
	}
	return nil
}
