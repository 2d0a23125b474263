package main

import (
	"errors"
	"os"

	assetbridge "github.com/halver/assetbridge"
	"github.com/halver/assetbridge/internal/config"
	"github.com/halver/assetbridge/internal/hints"
)

// Exit codes for assetbridge CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitDrift   = 4 // --check found sources that would be rewritten
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Drift detected by --check (exit 4)
	if errors.Is(err, ErrCheckDrift) {
		return ExitDrift
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidServerURL) ||
		errors.Is(err, config.ErrInvalidWorkers) ||
		errors.Is(err, config.ErrInvalidLogLevel) ||
		errors.Is(err, config.ErrInvalidDebounce) ||
		errors.Is(err, assetbridge.ErrUnknownDialect) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for the error, or "" when none applies.
// Printed after the error message itself.
func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound()
	case errors.Is(err, config.ErrInvalidServerURL):
		return hints.ForInvalidServerURL()
	case errors.Is(err, assetbridge.ErrUnknownDialect):
		return hints.ForUnknownDialect()
	case errors.Is(err, ErrCheckDrift):
		return hints.ForCheckDrift()
	case errors.Is(err, ErrNoInput):
		return hints.ForNoInput()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForWriteOutput()
	default:
		return ""
	}
}
