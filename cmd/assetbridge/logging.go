package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/halver/assetbridge/internal/config"
)

// Log rotation defaults applied when the config leaves them zero.
const (
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAgeDays = 28
)

// parseSlogLevel maps a config log level to a slog.Level.
func parseSlogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", config.ErrInvalidLogLevel, level)
	}
}

// newLogger builds the logger for long-running commands.
// With log.file set, output goes through lumberjack rotation; otherwise
// it goes to stderr. --verbose and --quiet override the configured level.
func newLogger(cfg *config.Config, common *commonFlags, stderr io.Writer) (*slog.Logger, error) {
	level, err := parseSlogLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if common.verbose {
		level = slog.LevelDebug
	}
	if common.quiet {
		level = slog.LevelWarn
	}

	var out io.Writer = stderr
	if cfg.Log.File != "" {
		maxSize := cfg.Log.MaxSizeMB
		if maxSize == 0 {
			maxSize = defaultLogMaxSizeMB
		}
		maxBackups := cfg.Log.MaxBackups
		if maxBackups == 0 {
			maxBackups = defaultLogMaxBackups
		}
		maxAge := cfg.Log.MaxAgeDays
		if maxAge == 0 {
			maxAge = defaultLogMaxAgeDays
		}
		out = &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			MaxAge:     maxAge,
			Compress:   cfg.Log.Compress,
		}
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), nil
}
