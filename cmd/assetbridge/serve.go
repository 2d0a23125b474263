package main

import (
	"context"

	"github.com/halver/assetbridge/internal/server"
)

// runServe starts the transforming dev server until interrupted.
// The root comes from the positional argument, then serve.root in config;
// the server itself defaults anything still unset.
func runServe(ctx context.Context, positionalArgs []string, flags *serveFlags, env *Environment) error {
	cfg, _, err := loadMergedConfig(&flags.common, &flags.server, env)
	if err != nil {
		return err
	}

	addr := flags.addr
	if addr == "" {
		addr = cfg.Serve.Addr
	}
	root := cfg.Serve.Root
	if len(positionalArgs) > 0 {
		root = positionalArgs[0]
	}

	logger, err := newLogger(cfg, &flags.common, env.Stderr)
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Addr:     addr,
		Root:     root,
		Rewriter: buildRewriter(cfg),
		Logger:   logger,
		Debounce: cfg.Watch.DebounceDuration(),
	})
	return srv.Run(ctx)
}
