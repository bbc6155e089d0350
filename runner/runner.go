// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/artifact"
	"github.com/go-a2a/design-studio/pkg/logging"
	"github.com/go-a2a/design-studio/session"
	"github.com/go-a2a/design-studio/types"
)

// Options holds the dependency and configuration overrides passed to [New].
type Options struct {
	// SessionService stores sessions. Defaults to an in-memory service.
	SessionService types.SessionService

	// ArtifactService stores artifacts. Defaults to an in-memory service.
	ArtifactService types.ArtifactService

	// RunConfig applies to every invocation. Defaults to [types.DefaultMaxLLMCalls] model calls.
	RunConfig *types.RunConfig
}

// Runner runs an agent tree for the messages of a session.
//
// It appends the user message and every non-partial event to the session
// before handing the event to the caller.
type Runner struct {
	appName         string
	agent           types.Agent
	sessionService  types.SessionService
	artifactService types.ArtifactService
	runConfig       *types.RunConfig
}

// New returns a [Runner] for the root agent of appName.
func New(appName string, agent types.Agent, optFns ...func(o *Options)) *Runner {
	opts := Options{
		SessionService:  session.NewInMemoryService(),
		ArtifactService: artifact.NewInMemoryService(),
		RunConfig:       &types.RunConfig{MaxLLMCalls: types.DefaultMaxLLMCalls},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Runner{
		appName:         appName,
		agent:           agent,
		sessionService:  opts.SessionService,
		artifactService: opts.ArtifactService,
		runConfig:       opts.RunConfig,
	}
}

// AppName returns the application name sessions are stored under.
func (r *Runner) AppName() string {
	return r.appName
}

// SessionService returns the session service of the runner.
func (r *Runner) SessionService() types.SessionService {
	return r.sessionService
}

// ArtifactService returns the artifact service of the runner.
func (r *Runner) ArtifactService() types.ArtifactService {
	return r.artifactService
}

// Session returns the session of userID, creating it when it does not exist.
func (r *Runner) Session(ctx context.Context, userID, sessionID string) (types.Session, error) {
	ses, err := r.sessionService.GetSession(ctx, r.appName, userID, sessionID, nil)
	switch {
	case err == nil:
		return ses, nil
	case errors.Is(err, types.ErrSessionNotFound):
		return r.sessionService.CreateSession(ctx, r.appName, userID, sessionID, nil)
	default:
		return nil, err
	}
}

// Run runs the agent for one user message in an existing session.
func (r *Runner) Run(ctx context.Context, userID, sessionID string, newMessage *genai.Content) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		ses, err := r.sessionService.GetSession(ctx, r.appName, userID, sessionID, nil)
		if err != nil {
			yield(nil, fmt.Errorf("get session %s: %w", sessionID, err))
			return
		}

		ictx := types.NewInvocationContext(r.agent, ses, r.sessionService,
			types.WithArtifactService(r.artifactService),
			types.WithRunConfig(r.runConfig),
			types.WithUserContent(newMessage),
		)
		logger := logging.FromContext(ctx).With(
			slog.String("invocation_id", ictx.InvocationID),
			slog.String("session_id", sessionID),
		)
		ctx = logging.NewContext(ctx, logger)

		if newMessage != nil {
			if err := r.appendNewMessage(ctx, ictx, newMessage); err != nil {
				yield(nil, err)
				return
			}
		}

		agentToRun := r.findAgentToRun(ses)
		ictx = ictx.WithAgent(agentToRun)
		logger.InfoContext(ctx, "running agent", slog.String("agent", agentToRun.Name()))

		for event, err := range agentToRun.Run(ctx, ictx) {
			if err != nil {
				logger.ErrorContext(ctx, "invocation failed", slog.String("error", err.Error()))
				yield(nil, err)
				return
			}
			if !event.Partial {
				if _, err := r.sessionService.AppendEvent(ctx, ses, event); err != nil {
					yield(nil, fmt.Errorf("append event: %w", err))
					return
				}
			}
			if !yield(event, nil) {
				return
			}
		}
	}
}

// appendNewMessage appends the user message to the session, saving its inline
// blobs as artifacts first when the run config asks for it.
func (r *Runner) appendNewMessage(ctx context.Context, ictx *types.InvocationContext, newMessage *genai.Content) error {
	if ictx.RunConfig != nil && ictx.RunConfig.SaveInputBlobsAsArtifacts {
		if r.artifactService == nil {
			return types.ErrNoArtifactService
		}
		for i, part := range newMessage.Parts {
			if part.InlineData == nil {
				continue
			}
			filename := fmt.Sprintf("artifact_%s_%d", ictx.InvocationID, i)
			if _, err := r.artifactService.SaveArtifact(ctx, r.appName, ictx.UserID(), ictx.Session.ID(), filename, part); err != nil {
				return fmt.Errorf("save input blob: %w", err)
			}
			newMessage.Parts[i] = genai.NewPartFromText("Uploaded file: " + filename + ". It is saved into artifacts")
		}
	}

	event := types.NewEvent().
		WithInvocationID(ictx.InvocationID).
		WithAuthor("user").
		WithContent(newMessage)
	if _, err := r.sessionService.AppendEvent(ctx, ictx.Session, event); err != nil {
		return fmt.Errorf("append user message: %w", err)
	}
	return nil
}

// findAgentToRun returns the agent that replied last in the session when the
// conversation can be routed back to it, and the root agent otherwise.
func (r *Runner) findAgentToRun(ses types.Session) types.Agent {
	events := ses.Events()
	for i := len(events) - 1; i >= 0; i-- {
		author := events[i].Author
		if author == "user" {
			continue
		}
		if author == r.agent.Name() {
			return r.agent
		}
		agent := r.agent.FindSubAgent(author)
		if agent == nil {
			continue
		}
		if isTransferableAcrossAgentTree(agent) {
			return agent
		}
	}
	return r.agent
}

// isTransferableAcrossAgentTree reports whether every agent from agent up to
// the root allows transferring to its parent.
func isTransferableAcrossAgentTree(agent types.Agent) bool {
	for ; agent != nil; agent = agent.ParentAgent() {
		transferable, ok := agent.(types.TransferableAgent)
		if !ok || transferable.DisallowTransferToParent() {
			return false
		}
	}
	return true
}
