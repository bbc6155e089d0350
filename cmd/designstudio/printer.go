// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dustin/go-humanize"
	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/internal/imageutil"
	"github.com/go-a2a/design-studio/types"
)

type artifactLoader func(ctx context.Context, name string) (*genai.Part, error)

// printer writes events as readable text or as JSON lines, and optionally
// exports the artifacts they save.
type printer struct {
	w      io.Writer
	json   bool
	outDir string
	load   artifactLoader
}

func newPrinter(w io.Writer, json bool, outDir string, load artifactLoader) *printer {
	return &printer{w: w, json: json, outDir: outDir, load: load}
}

type functionCallJSON struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

type functionResponseJSON struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response,omitempty"`
}

type eventJSON struct {
	ID                string                 `json:"id"`
	InvocationID      string                 `json:"invocation_id"`
	Author            string                 `json:"author"`
	Timestamp         time.Time              `json:"timestamp"`
	Text              string                 `json:"text,omitempty"`
	FunctionCalls     []functionCallJSON     `json:"function_calls,omitempty"`
	FunctionResponses []functionResponseJSON `json:"function_responses,omitempty"`
	ArtifactDelta     map[string]int         `json:"artifact_delta,omitempty"`
	StateDelta        map[string]any         `json:"state_delta,omitempty"`
	TransferToAgent   string                 `json:"transfer_to_agent,omitempty"`
	ErrorMessage      string                 `json:"error_message,omitempty"`
	Final             bool                   `json:"final"`
}

func toEventJSON(event *types.Event) eventJSON {
	out := eventJSON{
		ID:           event.ID,
		InvocationID: event.InvocationID,
		Author:       event.Author,
		Timestamp:    event.Timestamp,
		Final:        event.IsFinalResponse(),
	}
	if event.LLMResponse != nil {
		out.Text = event.Text()
		out.ErrorMessage = event.ErrorMessage
	}
	for _, call := range event.GetFunctionCalls() {
		out.FunctionCalls = append(out.FunctionCalls, functionCallJSON{Name: call.Name, Args: call.Args})
	}
	for _, resp := range event.GetFunctionResponses() {
		out.FunctionResponses = append(out.FunctionResponses, functionResponseJSON{Name: resp.Name, Response: resp.Response})
	}
	if event.Actions != nil {
		out.ArtifactDelta = event.Actions.ArtifactDelta
		out.StateDelta = event.Actions.StateDelta
		out.TransferToAgent = event.Actions.TransferToAgent
	}
	return out
}

func (p *printer) print(ctx context.Context, event *types.Event) error {
	e := toEventJSON(event)

	if p.json {
		line, err := sonic.ConfigStd.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode event: %w", err)
		}
		if _, err := fmt.Fprintf(p.w, "%s\n", line); err != nil {
			return err
		}
	} else {
		p.printText(e)
	}

	if p.outDir == "" {
		return nil
	}
	for _, name := range slices.Sorted(maps.Keys(e.ArtifactDelta)) {
		if err := p.export(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) printText(e eventJSON) {
	for _, call := range e.FunctionCalls {
		args, _ := sonic.ConfigStd.MarshalToString(call.Args)
		fmt.Fprintf(p.w, "[%s] -> %s(%s)\n", e.Author, call.Name, args)
	}
	for _, resp := range e.FunctionResponses {
		status, _ := resp.Response["status"].(string)
		line := fmt.Sprintf("[%s] <- %s: %s", e.Author, resp.Name, status)
		if msg, ok := resp.Response["message"].(string); ok && msg != "" {
			line += " (" + msg + ")"
		}
		if url, ok := resp.Response["signed_url"].(string); ok {
			line += "\n    " + url
		}
		fmt.Fprintln(p.w, line)
	}
	for _, name := range slices.Sorted(maps.Keys(e.ArtifactDelta)) {
		fmt.Fprintf(p.w, "[%s] saved artifact %s (version %d)\n", e.Author, name, e.ArtifactDelta[name])
	}
	if e.ErrorMessage != "" {
		fmt.Fprintf(p.w, "[%s] error: %s\n", e.Author, e.ErrorMessage)
	}
	if text := strings.TrimSpace(e.Text); text != "" {
		fmt.Fprintf(p.w, "%s: %s\n", e.Author, text)
	}
}

func (p *printer) export(ctx context.Context, name string) error {
	part, err := p.load(ctx, name)
	if err != nil {
		return fmt.Errorf("load artifact %s: %w", name, err)
	}
	if part == nil || part.InlineData == nil {
		return nil
	}

	if err := os.MkdirAll(p.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(p.outDir, imageutil.SanitizeFilename(name))
	if err := os.WriteFile(path, part.InlineData.Data, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", name, err)
	}
	if !p.json {
		fmt.Fprintf(p.w, "    wrote %s (%s)\n", path, humanize.Bytes(uint64(len(part.InlineData.Data))))
	}
	return nil
}
