// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/woozymasta/chunkdoc"
	"github.com/woozymasta/chunkdoc/internal/config"
	"github.com/woozymasta/chunkdoc/internal/preview"
	"github.com/woozymasta/chunkdoc/internal/watch"
)

// shutdownTimeout bounds graceful preview server shutdown.
const shutdownTimeout = 5 * time.Second

// errWatchStdin rejects watch mode without an input file.
var errWatchStdin = errors.New("watch requires input file path")

// compileJob is resolved configuration of one build or serve run.
type compileJob struct {
	cfg    *config.Config
	input  string
	logger zerolog.Logger
}

// prepareJob loads config, applies flags and builds logger.
func (runner *cliRunner) prepareJob(configValues configFlags, compileValues compileFlags, logValues logFlags, input string) (*compileJob, error) {
	cfg, err := config.LoadWithFallback(configValues.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	mergeCompileFlags(cfg, compileValues)
	if logValues.LogLevel != "" {
		cfg.Logging.Level = logValues.LogLevel
	}
	if logValues.LogFormat != "" {
		cfg.Logging.Format = logValues.LogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := newLogger(runner.stderr, cfg.Logging)
	if err != nil {
		return nil, err
	}

	if input = strings.TrimSpace(input); input == "" {
		input = cfg.Input
	}

	return &compileJob{cfg: cfg, input: input, logger: logger}, nil
}

// newLogger builds zerolog logger writing to output in configured format.
func newLogger(output io.Writer, cfg config.LoggingConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
	}

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}

// compile parses inputs and compiles the page map.
func (runner *cliRunner) compile(job *compileJob) (map[string]string, error) {
	store, err := runner.readChunkGraph(job.input)
	if err != nil {
		return nil, err
	}

	settings, err := job.cfg.Settings()
	if err != nil {
		return nil, err
	}

	options := chunkdoc.Options{
		Settings:           settings,
		WidgetDependencies: job.cfg.Render.WidgetDependencies,
		Logger:             &job.logger,
	}

	if job.cfg.Snippets != "" {
		snippets, err := chunkdoc.LoadSnippetsFile(job.cfg.Snippets)
		if err != nil {
			return nil, err
		}

		options.Snippets = snippets
	}

	if job.cfg.Render.Widget != "" {
		options.Widgets = chunkdoc.JSXWidget{Component: job.cfg.Render.Widget}
	}

	pages, err := chunkdoc.Compile(store, options)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	return pages, nil
}

// readChunkGraph reads chunk graph from file path or stdin.
func (runner *cliRunner) readChunkGraph(path string) (*chunkdoc.ChunkStore, error) {
	if path != "" {
		return chunkdoc.ParseChunkGraphFile(path)
	}

	data, err := io.ReadAll(runner.stdin)
	if err != nil {
		return nil, fmt.Errorf("read chunk graph from stdin: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("read chunk graph from stdin: empty input")
	}

	return chunkdoc.ParseChunkGraph(data)
}

// runBuild compiles once and writes pages to disk.
func (runner *cliRunner) runBuild(job *compileJob) error {
	pages, err := runner.compile(job)
	if err != nil {
		return err
	}

	if err := writePages(pages); err != nil {
		return err
	}

	job.logger.Info().
		Int("files", len(pages)).
		Str("out", job.cfg.Output.Dir).
		Msg("documentation written")

	return nil
}

// runBuildWatch builds, then rebuilds on every input change until ctx is done.
func (runner *cliRunner) runBuildWatch(ctx context.Context, job *compileJob) error {
	if job.input == "" {
		return errWatchStdin
	}

	if err := runner.runBuild(job); err != nil {
		job.logger.Error().Err(err).Msg("initial build failed")
	}

	watcher, err := watch.New([]string{job.input, job.cfg.Snippets}, func(string) error {
		return runner.runBuild(job)
	}, watch.DefaultDebounce, job.logger)
	if err != nil {
		return err
	}

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

// runServe serves compiled pages until ctx is done.
func (runner *cliRunner) runServe(ctx context.Context, job *compileJob, watchInputs bool) error {
	if watchInputs && job.input == "" {
		return errWatchStdin
	}

	pages, err := runner.compile(job)
	if err != nil {
		return err
	}

	server := preview.NewServer(pages, job.logger)

	if watchInputs {
		watcher, err := watch.New([]string{job.input, job.cfg.Snippets}, func(string) error {
			pages, err := runner.compile(job)
			if err != nil {
				return err
			}

			server.SetPages(pages)
			return nil
		}, watch.DefaultDebounce, job.logger)
		if err != nil {
			return err
		}

		go func() {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				job.logger.Error().Err(err).Msg("input watcher stopped")
			}
		}()
	}

	httpServer := &http.Server{
		Addr:              job.cfg.Preview.Addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		job.logger.Info().Str("addr", httpServer.Addr).Msg("starting preview server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("preview server: %w", err)
	case <-ctx.Done():
		job.logger.Info().Msg("shutting down preview server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown preview server: %w", err)
	}

	return nil
}

// writePages writes page map to disk in sorted path order.
func writePages(pages map[string]string) error {
	paths := make([]string, 0, len(pages))
	for pagePath := range pages {
		paths = append(paths, pagePath)
	}

	slices.Sort(paths)

	for _, pagePath := range paths {
		filePath := filepath.FromSlash(pagePath)
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return fmt.Errorf("create output directory for %q: %w", pagePath, err)
		}

		//nolint:gosec // generated pages are published artifacts.
		if err := os.WriteFile(filePath, []byte(pages[pagePath]), 0o644); err != nil {
			return fmt.Errorf("write page file %q: %w", pagePath, err)
		}
	}

	return nil
}
