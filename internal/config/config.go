package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/halver/assetbridge/internal/fileutil"
	"github.com/halver/assetbridge/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrEmptyConfigName  = errors.New("config name cannot be empty")
	ErrConfigParse      = errors.New("failed to parse config")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
	ErrInvalidServerURL = errors.New("invalid server url")
	ErrInvalidWorkers   = errors.New("invalid workers value")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidDebounce  = errors.New("invalid debounce value")
)

// Field limits. Config files are hand-written; anything past these is a
// mistake, not a use case.
const (
	MaxURLLength         = 2048 // Browser limit
	MaxPathLength        = 4096 // Filesystem limit
	MaxAddrLength        = 256  // host:port
	MaxAliasTokenLength  = 100  // "@fonts", "~assets"
	MaxAliasTargetLength = 2048 // Alias target path
	MaxWorkers           = 64   // Parallel rewrite workers
	MaxDebounceMS        = 10_000
)

// Defaults applied by DefaultConfig.
const (
	DefaultServerURL  = "http://localhost:5173"
	DefaultServeAddr  = ":4173"
	DefaultServeRoot  = "."
	DefaultDebounceMS = 100
	DefaultLogLevel   = "info"
)

// Config holds all configuration for the rewrite, watch, and serve modes.
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Aliases map[string]any `yaml:"aliases"`
	Input   InputConfig    `yaml:"input"`
	Output  OutputConfig   `yaml:"output"`
	Workers int            `yaml:"workers"`
	Serve   ServeConfig    `yaml:"serve"`
	Watch   WatchConfig    `yaml:"watch"`
	Log     LogConfig      `yaml:"log"`
}

// ServerConfig points at the dev asset server rewrites resolve against.
type ServerConfig struct {
	URL string `yaml:"url"` // Empty = http://localhost:5173
}

// InputConfig defines input discovery options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default root for discovery (empty = must specify)
}

// OutputConfig defines where rewritten files go.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = rewrite in place
}

// ServeConfig defines the dev-bridge server options.
type ServeConfig struct {
	Addr string `yaml:"addr"` // Listen address (default ":4173")
	Root string `yaml:"root"` // Directory served and watched (default ".")
}

// WatchConfig defines filesystem watch options.
type WatchConfig struct {
	DebounceMS int `yaml:"debounceMs"` // Event debounce window (default 100)
}

// LogConfig defines structured logging for the long-running modes.
// An empty File logs to stderr only; otherwise the file is size-rotated.
type LogConfig struct {
	Level      string `yaml:"level"`      // debug, info, warn, error (default "info")
	File       string `yaml:"file"`       // Empty = stderr only
	MaxSizeMB  int    `yaml:"maxSizeMb"`  // Rotate after this size (default 10)
	MaxBackups int    `yaml:"maxBackups"` // Rotated files kept (default 3)
	MaxAgeDays int    `yaml:"maxAgeDays"` // Rotated file retention (default 28)
	Compress   bool   `yaml:"compress"`   // Gzip rotated files
}

// DebounceDuration returns the watch debounce as a duration,
// falling back to the default when unset.
func (w WatchConfig) DebounceDuration() time.Duration {
	ms := w.DebounceMS
	if ms == 0 {
		ms = DefaultDebounceMS
	}
	return time.Duration(ms) * time.Millisecond
}

// EffectiveURL returns the configured server URL or the default.
func (s ServerConfig) EffectiveURL() string {
	if s.URL == "" {
		return DefaultServerURL
	}
	return s.URL
}

// Validate checks field shapes and limits.
// Called automatically by LoadConfig, but available for consumers who
// construct Config manually. Non-string alias targets are not an error
// here: the rewriter treats them as inert entries.
func (c *Config) Validate() error {
	if err := validateFieldLength("server.url", c.Server.URL, MaxURLLength); err != nil {
		return err
	}
	if c.Server.URL != "" {
		if err := validateServerURL(c.Server.URL); err != nil {
			return err
		}
	}

	for token, target := range c.Aliases {
		if err := validateFieldLength(fmt.Sprintf("aliases[%q]", token), token, MaxAliasTokenLength); err != nil {
			return err
		}
		if s, ok := target.(string); ok {
			if err := validateFieldLength(fmt.Sprintf("aliases[%q] target", token), s, MaxAliasTargetLength); err != nil {
				return err
			}
		}
	}

	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("serve.addr", c.Serve.Addr, MaxAddrLength); err != nil {
		return err
	}
	if err := validateFieldLength("serve.root", c.Serve.Root, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("log.file", c.Log.File, MaxPathLength); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidWorkers, c.Workers, MaxWorkers)
	}

	if c.Watch.DebounceMS < 0 || c.Watch.DebounceMS > MaxDebounceMS {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidDebounce, c.Watch.DebounceMS, MaxDebounceMS)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("%w: %q (must be debug, info, warn, or error)", ErrInvalidLogLevel, c.Log.Level)
	}

	return nil
}

// validateServerURL checks that the URL is absolute http or https.
func validateServerURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidServerURL, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q (scheme must be http or https)", ErrInvalidServerURL, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q (missing host)", ErrInvalidServerURL, raw)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{URL: DefaultServerURL},
		Serve:  ServeConfig{Addr: DefaultServeAddr, Root: DefaultServeRoot},
		Watch:  WatchConfig{DebounceMS: DefaultDebounceMS},
		Log: LogConfig{
			Level:      DefaultLogLevel,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise it's treated as a config name and searched in standard
// locations. Returns an error if the file is not found (no silent
// fallback; the caller decides whether not-found is acceptable).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/assetbridge/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "assetbridge", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
