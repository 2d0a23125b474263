package main

// Notes:
// - resolveConfig: explicit names must exist, the default name may be absent.
// - loadMergedConfig: we test the CLI > env > file precedence with a real
//   temp config file and t.Setenv, so no parallelism in those tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"testing"

	"github.com/halver/assetbridge/internal/config"
)

const testConfigYAML = `server:
  url: http://localhost:9000
aliases:
  "@fonts": /src/assets/fonts
output:
  dir: build
workers: 2
`

// ---------------------------------------------------------------------------
// TestResolveConfig - Config file resolution
// ---------------------------------------------------------------------------

func TestResolveConfigExplicitMissing(t *testing.T) {
	t.Parallel()
	env, _, _ := newTestEnv()

	_, _, err := resolveConfig("definitely/not/here.yaml", "", env)
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Errorf("err = %v, want ErrConfigNotFound", err)
	}
}

func TestResolveConfigExplicitFile(t *testing.T) {
	t.Parallel()
	env, _, _ := newTestEnv()

	path := writeTestFile(t, t.TempDir(), "bridge.yaml", testConfigYAML)
	cfg, source, err := resolveConfig(path, "", env)
	if err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}
	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}
	if cfg.Server.URL != "http://localhost:9000" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
}

func TestResolveConfigEnvPath(t *testing.T) {
	t.Parallel()
	env, _, _ := newTestEnv()

	path := writeTestFile(t, t.TempDir(), "bridge.yaml", testConfigYAML)
	cfg, source, err := resolveConfig("", path, env)
	if err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}
	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}
	if cfg.Server.URL != "http://localhost:9000" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
}

func TestResolveConfigDefaultAbsent(t *testing.T) {
	t.Parallel()
	env, _, _ := newTestEnv()

	cfg, source, err := resolveConfig("", "", env)
	if err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}
	if source != "defaults" {
		t.Errorf("source = %q, want %q", source, "defaults")
	}
	// Zero config: defaults apply at point of use.
	if cfg.Server.URL != "" {
		t.Errorf("Server.URL = %q, want empty", cfg.Server.URL)
	}
	if cfg.Server.EffectiveURL() != config.DefaultServerURL {
		t.Errorf("EffectiveURL() = %q, want %q", cfg.Server.EffectiveURL(), config.DefaultServerURL)
	}
}

// ---------------------------------------------------------------------------
// TestMergeServerFlags - CLI flags override config
// ---------------------------------------------------------------------------

func TestMergeServerFlags(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Server:  config.ServerConfig{URL: "http://from-config:1"},
		Aliases: map[string]any{"@keep": "/src/keep", "@both": "/src/config"},
	}
	flags := &serverFlags{
		serverURL: "http://from-flag:2",
		aliases:   map[string]string{"@new": "/src/new", "@both": "/src/flag"},
	}

	mergeServerFlags(flags, cfg)

	if cfg.Server.URL != "http://from-flag:2" {
		t.Errorf("Server.URL = %q, want flag value", cfg.Server.URL)
	}
	if cfg.Aliases["@keep"] != "/src/keep" {
		t.Errorf("Aliases[@keep] = %v, want config value kept", cfg.Aliases["@keep"])
	}
	if cfg.Aliases["@new"] != "/src/new" {
		t.Errorf("Aliases[@new] = %v, want flag value added", cfg.Aliases["@new"])
	}
	if cfg.Aliases["@both"] != "/src/flag" {
		t.Errorf("Aliases[@both] = %v, want flag value winning", cfg.Aliases["@both"])
	}
}

func TestMergeServerFlagsNilConfigAliases(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	mergeServerFlags(&serverFlags{aliases: map[string]string{"@a": "/src/a"}}, cfg)

	if cfg.Aliases["@a"] != "/src/a" {
		t.Errorf("Aliases = %v, want flag alias present", cfg.Aliases)
	}
}

func TestMergeServerFlagsEmptyLeavesConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Server: config.ServerConfig{URL: "http://keep:1"}}
	mergeServerFlags(&serverFlags{}, cfg)

	if cfg.Server.URL != "http://keep:1" {
		t.Errorf("Server.URL = %q, want config value kept", cfg.Server.URL)
	}
	if cfg.Aliases != nil {
		t.Errorf("Aliases = %v, want nil", cfg.Aliases)
	}
}

// ---------------------------------------------------------------------------
// TestLoadMergedConfig - Full precedence chain
// ---------------------------------------------------------------------------

func TestLoadMergedConfigPrecedence(t *testing.T) {
	// t.Setenv is incompatible with t.Parallel.
	path := writeTestFile(t, t.TempDir(), "bridge.yaml", testConfigYAML)
	t.Setenv("ASSETBRIDGE_SERVER_URL", "http://from-env:3")
	t.Setenv("ASSETBRIDGE_OUTPUT_DIR", "env-out")

	env, _, _ := newTestEnv()
	common := &commonFlags{config: path}
	server := &serverFlags{serverURL: "http://from-flag:2"}

	cfg, source, err := loadMergedConfig(common, server, env)
	if err != nil {
		t.Fatalf("loadMergedConfig() error = %v", err)
	}

	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}
	// Flag beats env beats file.
	if cfg.Server.URL != "http://from-flag:2" {
		t.Errorf("Server.URL = %q, want flag value", cfg.Server.URL)
	}
	// File value set, env must not override it.
	if cfg.Output.Dir != "build" {
		t.Errorf("Output.Dir = %q, want file value", cfg.Output.Dir)
	}
}

func TestLoadMergedConfigEnvFillsUnset(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "bridge.yaml", "aliases:\n  \"@a\": /src/a\n")
	t.Setenv("ASSETBRIDGE_SERVER_URL", "http://from-env:3")
	t.Setenv("ASSETBRIDGE_WORKERS", "5")

	env, _, _ := newTestEnv()
	cfg, _, err := loadMergedConfig(&commonFlags{config: path}, &serverFlags{}, env)
	if err != nil {
		t.Fatalf("loadMergedConfig() error = %v", err)
	}

	if cfg.Server.URL != "http://from-env:3" {
		t.Errorf("Server.URL = %q, want env value", cfg.Server.URL)
	}
	if cfg.Workers != 5 {
		t.Errorf("Workers = %d, want env value 5", cfg.Workers)
	}
	if cfg.Aliases["@a"] != "/src/a" {
		t.Errorf("Aliases = %v, want file alias kept", cfg.Aliases)
	}
}

func TestLoadMergedConfigValidatesMergedValues(t *testing.T) {
	t.Parallel()
	env, _, _ := newTestEnv()

	_, _, err := loadMergedConfig(&commonFlags{}, &serverFlags{serverURL: "ftp://nope"}, env)
	if !errors.Is(err, config.ErrInvalidServerURL) {
		t.Errorf("err = %v, want ErrInvalidServerURL", err)
	}
}

// ---------------------------------------------------------------------------
// TestBuildRewriter - Rewriter construction from config
// ---------------------------------------------------------------------------

func TestBuildRewriter(t *testing.T) {
	t.Parallel()

	rewriter := buildRewriter(&config.Config{
		Aliases: map[string]any{"@fonts": "/src/assets/fonts"},
	})

	if got := rewriter.ServerURL(); got != config.DefaultServerURL {
		t.Errorf("ServerURL() = %q, want default", got)
	}
	aliases := rewriter.Aliases()
	if len(aliases) != 1 || aliases[0].Token != "@fonts" {
		t.Errorf("Aliases() = %v, want the @fonts alias", aliases)
	}
}

func TestBuildRewriterCustomURL(t *testing.T) {
	t.Parallel()

	rewriter := buildRewriter(&config.Config{
		Server: config.ServerConfig{URL: "http://localhost:3000"},
	})
	if got := rewriter.ServerURL(); got != "http://localhost:3000" {
		t.Errorf("ServerURL() = %q, want configured value", got)
	}
}
