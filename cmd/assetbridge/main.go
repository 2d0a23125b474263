package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(run(os.Args[1:], DefaultEnv()))
}

// hasVerboseFlag scans raw arguments for --verbose before parsing,
// so maxprocs logging can be decided up front.
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}

// run dispatches to a subcommand and returns the process exit code.
func run(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	command, rest := args[0], args[1:]

	switch command {
	case "rewrite":
		flags, positional, err := parseRewriteFlags(rest)
		if err != nil {
			return flagExit(err, env)
		}
		ctx, stop := notifyContext(context.Background())
		defer stop()
		return reportExit(runRewrite(ctx, positional, flags, env), env)

	case "watch":
		flags, positional, err := parseWatchFlags(rest)
		if err != nil {
			return flagExit(err, env)
		}
		ctx, stop := notifyContext(context.Background())
		defer stop()
		return reportExit(runWatch(ctx, positional, flags, env), env)

	case "serve":
		flags, positional, err := parseServeFlags(rest)
		if err != nil {
			return flagExit(err, env)
		}
		ctx, stop := notifyContext(context.Background())
		defer stop()
		return reportExit(runServe(ctx, positional, flags, env), env)

	case "inspect":
		flags, err := parseInspectFlags(rest)
		if err != nil {
			return flagExit(err, env)
		}
		return runInspectCmd(flags, env)

	case "preview":
		flags, positional, err := parsePreviewFlags(rest)
		if err != nil {
			return flagExit(err, env)
		}
		return reportExit(runPreview(positional, flags, env), env)

	case "completion":
		return reportExit(runCompletion(rest, env), env)

	case "version", "--version":
		fmt.Fprintf(env.Stdout, "assetbridge %s\n", Version)
		return ExitSuccess

	case "help", "--help", "-h":
		runHelp(rest, env)
		return ExitSuccess

	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", command)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// flagExit maps a flag parsing result to an exit code.
// pflag already printed usage for --help and parse errors.
func flagExit(err error, env *Environment) int {
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintln(env.Stderr, err)
	return ExitUsage
}

// reportExit prints a command error plus any hint and maps it to an exit code.
func reportExit(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "%v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}
