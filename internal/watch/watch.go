// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

// Package watch triggers rebuilds when input files change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce coalesces editor save bursts into one rebuild.
const DefaultDebounce = 200 * time.Millisecond

var (
	// ErrNoPaths indicates watcher creation without any file to watch.
	ErrNoPaths = errors.New("no paths to watch")
	// ErrWatch indicates fsnotify watcher setup failure.
	ErrWatch = errors.New("watch files")
)

// Watcher calls a rebuild function after watched files change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	rebuild  func(changed string) error
	logger   zerolog.Logger
	debounce time.Duration

	closeOnce sync.Once
}

// New creates a watcher over paths; empty paths are ignored.
func New(paths []string, rebuild func(changed string) error, debounce time.Duration, logger zerolog.Logger) (*Watcher, error) {
	files := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWatch, err)
		}

		files[absPath] = struct{}{}
		dirs[filepath.Dir(absPath)] = struct{}{}
	}

	if len(files) == 0 {
		return nil, ErrNoPaths
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatch, err)
	}

	// Directories survive atomic saves that replace the file inode.
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("%w: directory %q: %w", ErrWatch, dir, err)
		}
	}

	return &Watcher{
		watcher:  watcher,
		files:    files,
		rebuild:  rebuild,
		logger:   logger,
		debounce: debounce,
	}, nil
}

// Run dispatches debounced rebuilds until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()

	for path := range w.files {
		w.logger.Info().Str("path", path).Msg("watching file for changes")
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var pending string
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if _, watched := w.files[filepath.Clean(event.Name)]; !watched {
				continue
			}

			// Atomic save shows up as create.
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			w.logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("input file changed")

			pending = event.Name
			timer.Reset(w.debounce)

		case <-timer.C:
			if err := w.rebuild(pending); err != nil {
				w.logger.Error().Err(err).Str("file", pending).Msg("rebuild failed")
				continue
			}

			w.logger.Info().Str("file", pending).Msg("rebuild finished")

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}

			w.logger.Error().Err(err).Msg("file watcher error")

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close stops watching; it is safe to call more than once.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		_ = w.watcher.Close()
	})
}
