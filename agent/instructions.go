// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-a2a/design-studio/types"
)

// identityProcessor tells the model which agent it is.
type identityProcessor struct{}

func (identityProcessor) processRequest(_ context.Context, a *LLMAgent, _ *types.InvocationContext, request *types.LLMRequest) error {
	si := `You are an agent. Your internal name is "` + a.name + `".`
	if a.description != "" {
		si += ` The description about you is "` + a.description + `"`
	}
	request.AppendInstructions(si)
	return nil
}

// instructionsProcessor adds the global instruction of the root agent and the
// agent's own instruction, with session state injected.
type instructionsProcessor struct{}

func (instructionsProcessor) processRequest(ctx context.Context, a *LLMAgent, ictx *types.InvocationContext, request *types.LLMRequest) error {
	rctx := types.NewReadOnlyContext(ictx)

	if root, ok := a.RootAgent().(*LLMAgent); ok {
		si, bypass := root.CanonicalGlobalInstruction(rctx)
		if err := appendInstruction(ctx, ictx, request, si, bypass); err != nil {
			return fmt.Errorf("global instruction: %w", err)
		}
	}

	si, bypass := a.CanonicalInstruction(rctx)
	if err := appendInstruction(ctx, ictx, request, si, bypass); err != nil {
		return fmt.Errorf("instruction of %s: %w", a.name, err)
	}
	return nil
}

func appendInstruction(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest, si string, bypassStateInjection bool) error {
	if si == "" {
		return nil
	}
	if !bypassStateInjection {
		var err error
		if si, err = injectSessionState(ctx, si, ictx); err != nil {
			return err
		}
	}
	request.AppendInstructions(si)
	return nil
}

var stateVarPattern = regexp.MustCompile(`{+[^{}]*}+`)

// injectSessionState replaces {key} with the session state value of key and
// {artifact.name} with the text of the artifact name. A trailing ? makes the
// placeholder optional. Braces around anything that is not a valid state name
// are left untouched.
func injectSessionState(ctx context.Context, template string, ictx *types.InvocationContext) (string, error) {
	var firstErr error
	out := stateVarPattern.ReplaceAllStringFunc(template, func(match string) string {
		if firstErr != nil {
			return match
		}
		replacement, err := replaceStateVar(ctx, match, ictx)
		if err != nil {
			firstErr = err
			return match
		}
		return replacement
	})
	return out, firstErr
}

func replaceStateVar(ctx context.Context, match string, ictx *types.InvocationContext) (string, error) {
	name := strings.TrimSpace(strings.Trim(match, "{}"))
	name, optional := strings.CutSuffix(name, "?")

	if filename, ok := strings.CutPrefix(name, "artifact."); ok {
		if ictx.ArtifactService == nil {
			return "", types.ErrNoArtifactService
		}
		artifact, err := ictx.ArtifactService.LoadArtifact(ctx, ictx.AppName(), ictx.UserID(), ictx.Session.ID(), filename, types.LatestVersion)
		if err != nil {
			return "", err
		}
		if artifact == nil {
			if optional {
				return "", nil
			}
			return "", fmt.Errorf("artifact %s not found", filename)
		}
		return artifact.Text, nil
	}

	if !isValidStateName(name) {
		return match, nil
	}
	if val, ok := types.NewReadOnlyContext(ictx).StateValue(name); ok {
		return fmt.Sprint(val), nil
	}
	if optional {
		return "", nil
	}
	return "", fmt.Errorf("context variable not found: %s", name)
}

// isValidStateName reports whether name is an identifier, optionally behind
// one of the app:, user: or temp: prefixes.
func isValidStateName(name string) bool {
	prefix, rest, found := strings.Cut(name, ":")
	if !found {
		return isIdentifier(name)
	}
	switch prefix + ":" {
	case types.AppPrefix, types.UserPrefix, types.TempPrefix:
		return isIdentifier(rest)
	}
	return false
}
