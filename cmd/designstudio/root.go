// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/go-a2a/design-studio/designstudio"
	"github.com/go-a2a/design-studio/internal/config"
	"github.com/go-a2a/design-studio/internal/metrics"
	"github.com/go-a2a/design-studio/pkg/logging"
	"github.com/go-a2a/design-studio/runner"
	"github.com/go-a2a/design-studio/types"
)

type rootFlags struct {
	envFile     string
	json        bool
	metricsAddr string
	userID      string
	sessionID   string
	outDir      string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "designstudio",
		Short:         "Generate, edit and publish product images with the design studio agents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", "", "dotenv file to load instead of ./.env")
	pf.BoolVar(&flags.json, "json", false, "print events as JSON lines")
	pf.StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	pf.StringVar(&flags.userID, "user", "user", "user id of the session")
	pf.StringVar(&flags.sessionID, "session", "", "session id (defaults to a new one per process)")
	pf.StringVar(&flags.outDir, "out", "", "write every saved artifact to this directory")

	cmd.AddCommand(newRunCmd(flags), newChatCmd(flags))
	return cmd
}

// app is a configured agent tree bound to one session.
type app struct {
	cfg       *config.Config
	deps      *designstudio.Deps
	runner    *runner.Runner
	printer   *printer
	userID    string
	sessionID string

	metricsServer *http.Server
}

func newApp(ctx context.Context, flags *rootFlags, out io.Writer) (context.Context, *app, error) {
	var envFiles []string
	if flags.envFile != "" {
		envFiles = append(envFiles, flags.envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return ctx, nil, err
	}

	logger, err := logging.New(os.Stderr, cfg.App.LogLevel, cfg.App.LogFormat)
	if err != nil {
		return ctx, nil, err
	}
	ctx = logging.NewContext(ctx, logger)
	metrics.Init()

	deps, err := designstudio.NewDeps(ctx, cfg)
	if err != nil {
		return ctx, nil, err
	}
	root, err := designstudio.New(cfg, deps)
	if err != nil {
		_ = deps.Close()
		return ctx, nil, err
	}

	r := runner.New(cfg.App.Name, root, func(o *runner.Options) {
		o.ArtifactService = deps.ArtifactService
		o.RunConfig = &types.RunConfig{MaxLLMCalls: cfg.App.MaxLLMCalls}
	})

	a := &app{
		cfg:       cfg,
		deps:      deps,
		runner:    r,
		userID:    flags.userID,
		sessionID: flags.sessionID,
	}
	if a.sessionID == "" {
		a.sessionID = fmt.Sprintf("cli-%d", time.Now().Unix())
	}
	if _, err := r.Session(ctx, a.userID, a.sessionID); err != nil {
		_ = deps.Close()
		return ctx, nil, fmt.Errorf("open session: %w", err)
	}
	a.printer = newPrinter(out, flags.json, flags.outDir, a.loadArtifact)

	if flags.metricsAddr != "" {
		a.serveMetrics(ctx, flags.metricsAddr)
	}
	return ctx, a, nil
}

func (a *app) serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	a.metricsServer = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	logger := logging.FromContext(ctx)
	go func() {
		logger.InfoContext(ctx, "serving metrics", slog.String("addr", addr))
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "metrics server failed", slog.Any("error", err))
		}
	}()
}

func (a *app) close(ctx context.Context) {
	if a.metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = a.metricsServer.Shutdown(shutdownCtx)
	}
	if err := a.deps.Close(); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "close clients", slog.Any("error", err))
	}
}

// send runs the agents for one user message and prints every event.
func (a *app) send(ctx context.Context, message *genai.Content) error {
	for event, err := range a.runner.Run(ctx, a.userID, a.sessionID, message) {
		if err != nil {
			return err
		}
		if err := a.printer.print(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) loadArtifact(ctx context.Context, name string) (*genai.Part, error) {
	return a.runner.ArtifactService().LoadArtifact(ctx, a.runner.AppName(), a.userID, a.sessionID, name, types.LatestVersion)
}

func (a *app) listArtifacts(ctx context.Context) ([]string, error) {
	return a.runner.ArtifactService().ListArtifactKey(ctx, a.runner.AppName(), a.userID, a.sessionID)
}
