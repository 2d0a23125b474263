// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import "strings"

// ForConfigNotFound returns hints for config file not found errors.
// The error itself lists the searched paths; the hint suggests remedies.
func ForConfigNotFound() string {
	return formatHints([]string{
		"use --config /path/to/file.yaml",
		"create assetbridge.yaml in the project root",
	})
}

// ForInvalidServerURL returns a hint about the expected server URL shape.
func ForInvalidServerURL() string {
	return format("use an absolute http(s) URL, e.g. http://localhost:5173")
}

// ForUnknownDialect returns a hint listing the rewritable source types.
func ForUnknownDialect() string {
	return format("rewritable sources: .css .scss .sass .less .styl .js .jsx .ts .tsx .vue")
}

// ForCheckDrift returns a hint for --check failures.
func ForCheckDrift() string {
	return format("run 'assetbridge rewrite' without --check to apply the changes")
}

// ForNoInput returns a hint for missing input path errors.
func ForNoInput() string {
	return format("pass a path argument or set input.defaultDir in the config")
}

// ForWriteOutput returns hints for output write errors.
func ForWriteOutput() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
