package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	assetbridge "github.com/halver/assetbridge"
	"github.com/halver/assetbridge/internal/fileutil"
)

// runWatch rewrites sources as they change until interrupted.
func runWatch(ctx context.Context, positionalArgs []string, flags *watchFlags, env *Environment) error {
	cfg, _, err := loadMergedConfig(&flags.common, &flags.server, env)
	if err != nil {
		return err
	}
	if flags.debounceMS > 0 {
		cfg.Watch.DebounceMS = flags.debounceMS
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	root, err := resolveInputPath(positionalArgs, cfg.Input.DefaultDir)
	if err != nil {
		return err
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch root %q is not a directory", root)
	}

	logger, err := newLogger(cfg, &flags.common, env.Stderr)
	if err != nil {
		return err
	}

	rewriter := buildRewriter(cfg)
	return watchLoop(ctx, root, rewriter, cfg.Watch.DebounceDuration(), logger)
}

// watchLoop owns the fsnotify watcher. Events for dialect files are
// collected into a pending set and flushed after the debounce window.
// Rewrites are idempotent and in-place writes happen only on change,
// so the loop's own writes do not ping-pong the watcher.
func watchLoop(ctx context.Context, root string, rewriter *assetbridge.Rewriter, debounce time.Duration, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, root); err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}

	logger.Info("watching",
		"root", root,
		"server", rewriter.ServerURL(),
		"debounce", debounce,
	)

	pending := make(map[string]struct{})
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						logger.Warn("watching new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, ok := assetbridge.DialectForFile(event.Name); !ok {
				continue
			}
			pending[event.Name] = struct{}{}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case <-timer.C:
			flushPending(pending, rewriter, logger)
			pending = make(map[string]struct{})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// flushPending rewrites every pending path in place.
// Per-file failures are logged, never fatal: the loop outlives bad saves.
func flushPending(pending map[string]struct{}, rewriter *assetbridge.Rewriter, logger *slog.Logger) {
	for path := range pending {
		changed, err := rewriteInPlace(rewriter, path)
		switch {
		case err != nil:
			logger.Warn("rewrite failed", "path", path, "error", err)
		case changed:
			logger.Info("rewrote", "path", path)
		default:
			logger.Debug("unchanged", "path", path)
		}
	}
}

// rewriteInPlace rewrites one file, writing only when content changed.
func rewriteInPlace(rewriter *assetbridge.Rewriter, path string) (bool, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- watched path
	if err != nil {
		// Deleted between event and flush; nothing to do.
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	res, err := rewriter.RewriteFile(path, string(content))
	if err != nil {
		return false, err
	}
	if !res.Changed {
		return false, nil
	}

	if err := fileutil.WriteFileAtomic(path, []byte(res.Code), filePermissions); err != nil {
		return false, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return true, nil
}

// watchTree registers root and every non-excluded subdirectory.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipSourceDir(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
