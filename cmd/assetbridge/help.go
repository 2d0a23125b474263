package main

import (
	"fmt"
	"io"

	"github.com/halver/assetbridge/internal/server"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetbridge <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  rewrite     Rewrite asset references under a path")
	fmt.Fprintln(w, "  watch       Rewrite sources continuously as they change")
	fmt.Fprintln(w, "  serve       Serve a directory with on-the-fly rewriting")
	fmt.Fprintln(w, "  inspect     Show the effective rewrite configuration")
	fmt.Fprintln(w, "  preview     Print a single file after rewriting")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'assetbridge help <command>' for details on a specific command.")
}

// printServerFlagsHelp prints the rewriter flags shared by most commands.
func printServerFlagsHelp(w io.Writer) {
	fmt.Fprintln(w, "Rewriting:")
	fmt.Fprintln(w, "  -s, --server <url>        Asset server base URL (default http://localhost:5173)")
	fmt.Fprintln(w, "  -a, --alias <token=path>  Alias mapping, repeatable")
}

// printCommonFlagsHelp prints the flags every command accepts.
func printCommonFlagsHelp(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed output")
}

// printRewriteUsage prints usage for the rewrite command.
func printRewriteUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetbridge rewrite <path> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rewrite asset references to point at the dev asset server.")
	fmt.Fprintln(w, "Stylesheet url() calls and script imports, attributes, and object")
	fmt.Fprintln(w, "properties are rewritten; everything else passes through untouched.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  path    Source file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Write rewritten copies here instead of in place")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --check               Report files that would change, write nothing")
	fmt.Fprintln(w)
	printServerFlagsHelp(w)
	fmt.Fprintln(w)
	printCommonFlagsHelp(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 error, 2 usage, 3 I/O, 4 --check found drift")
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetbridge watch <dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch a directory and rewrite sources in place as they change.")
	fmt.Fprintln(w, "Runs until interrupted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  dir    Directory to watch (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watching:")
	fmt.Fprintln(w, "      --debounce <ms>       Event debounce window in milliseconds")
	fmt.Fprintln(w)
	printServerFlagsHelp(w)
	fmt.Fprintln(w)
	printCommonFlagsHelp(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetbridge serve [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve a directory over HTTP, rewriting stylesheet and script sources")
	fmt.Fprintln(w, "on the fly. Connected browsers get reload events over SSE at")
	fmt.Fprintf(w, "%s when watched files change.\n", server.EventsPath)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  dir    Directory to serve (default: serve.root from config, else \".\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serving:")
	fmt.Fprintln(w, "      --addr <addr>         Listen address (default \":4173\")")
	fmt.Fprintln(w)
	printServerFlagsHelp(w)
	fmt.Fprintln(w)
	printCommonFlagsHelp(w)
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetbridge inspect [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the effective configuration after merging flags, environment,")
	fmt.Fprintln(w, "and config file: server URL, normalized aliases, and pass counts.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --json                Output as JSON")
	fmt.Fprintln(w)
	printServerFlagsHelp(w)
	fmt.Fprintln(w)
	printCommonFlagsHelp(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetbridge preview <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print one file to stdout the way the dev server would transform it,")
	fmt.Fprintln(w, "syntax-highlighted for terminals.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --style <name>        Highlight style (default monokai)")
	fmt.Fprintln(w, "      --plain               Disable highlighting")
	fmt.Fprintln(w, "      --original            Show the source without rewriting")
	fmt.Fprintln(w)
	printServerFlagsHelp(w)
	fmt.Fprintln(w)
	printCommonFlagsHelp(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "rewrite":
		printRewriteUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: assetbridge version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: assetbridge help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
