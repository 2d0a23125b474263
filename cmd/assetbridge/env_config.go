package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/halver/assetbridge/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // ASSETBRIDGE_CONFIG: config file path
	ServerURL  string // ASSETBRIDGE_SERVER_URL: asset server base URL
	InputDir   string // ASSETBRIDGE_INPUT_DIR: default input directory
	OutputDir  string // ASSETBRIDGE_OUTPUT_DIR: default output directory
	Workers    int    // ASSETBRIDGE_WORKERS: parallel workers
}

// knownEnvVars lists valid ASSETBRIDGE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"ASSETBRIDGE_CONFIG":     true,
	"ASSETBRIDGE_SERVER_URL": true,
	"ASSETBRIDGE_INPUT_DIR":  true,
	"ASSETBRIDGE_OUTPUT_DIR": true,
	"ASSETBRIDGE_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized ASSETBRIDGE_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("ASSETBRIDGE_CONFIG"),
		ServerURL:  os.Getenv("ASSETBRIDGE_SERVER_URL"),
		InputDir:   os.Getenv("ASSETBRIDGE_INPUT_DIR"),
		OutputDir:  os.Getenv("ASSETBRIDGE_OUTPUT_DIR"),
	}

	if workers := os.Getenv("ASSETBRIDGE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized ASSETBRIDGE_* variables.
// Helps catch typos like ASSETBRIDGE_SERVER instead of ASSETBRIDGE_SERVER_URL.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "ASSETBRIDGE_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeServerFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.ServerURL != "" && cfg.Server.URL == "" {
		cfg.Server.URL = env.ServerURL
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.Dir == "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
}
