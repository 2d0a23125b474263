package main

import (
	"errors"
	"fmt"

	assetbridge "github.com/halver/assetbridge"
	"github.com/halver/assetbridge/internal/config"
)

// defaultConfigName is the config searched for when --config is not given.
const defaultConfigName = "assetbridge"

// loadMergedConfig builds the effective configuration for a command.
// Precedence: CLI flags > environment > config file > defaults. The
// config file is optional unless named explicitly; anything still unset
// falls back to defaults at point of use.
func loadMergedConfig(common *commonFlags, server *serverFlags, env *Environment) (*config.Config, string, error) {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, source, err := resolveConfig(common.config, envCfg.ConfigPath, env)
	if err != nil {
		return nil, "", err
	}

	applyEnvConfig(envCfg, cfg)
	mergeServerFlags(server, cfg)

	// Environment and flag additions bypass LoadConfig's validation.
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return cfg, source, nil
}

// resolveConfig loads the config file. An explicitly named config (flag
// or environment) must exist; the default name may be absent, in which
// case an empty config is returned and defaults apply downstream.
func resolveConfig(explicit, fromEnv string, env *Environment) (*config.Config, string, error) {
	name := explicit
	if name == "" {
		name = fromEnv
	}
	if name != "" {
		cfg, err := env.LoadConfig(name)
		if err != nil {
			return nil, "", fmt.Errorf("loading config: %w", err)
		}
		return cfg, name, nil
	}

	cfg, err := env.LoadConfig(defaultConfigName)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return &config.Config{}, "defaults", nil
		}
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	return cfg, defaultConfigName, nil
}

// mergeServerFlags merges rewriter flags into config. CLI values override
// config values; --alias entries override same-token config aliases.
func mergeServerFlags(f *serverFlags, cfg *config.Config) {
	if f.serverURL != "" {
		cfg.Server.URL = f.serverURL
	}
	if len(f.aliases) > 0 && cfg.Aliases == nil {
		cfg.Aliases = make(map[string]any, len(f.aliases))
	}
	for token, target := range f.aliases {
		cfg.Aliases[token] = target
	}
}

// buildRewriter constructs the rewriter from effective configuration.
func buildRewriter(cfg *config.Config) *assetbridge.Rewriter {
	return assetbridge.New(
		assetbridge.WithServerURL(cfg.Server.EffectiveURL()),
		assetbridge.WithAliases(cfg.Aliases),
	)
}
