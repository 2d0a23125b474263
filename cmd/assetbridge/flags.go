package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// serverFlags holds rewriter configuration flags shared by every
// command that builds a rewriter.
type serverFlags struct {
	serverURL string
	aliases   map[string]string
}

// rewriteFlags holds all flags for the rewrite command.
type rewriteFlags struct {
	common  commonFlags
	server  serverFlags
	output  string
	workers int
	check   bool
}

// watchFlags holds all flags for the watch command.
type watchFlags struct {
	common     commonFlags
	server     serverFlags
	debounceMS int
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common commonFlags
	server serverFlags
	addr   string
}

// inspectFlags holds all flags for the inspect command.
type inspectFlags struct {
	common commonFlags
	server serverFlags
	json   bool
}

// previewFlags holds all flags for the preview command.
type previewFlags struct {
	common   commonFlags
	server   serverFlags
	style    string
	plain    bool
	original bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed output")
}

// addServerFlags adds rewriter configuration flags to a FlagSet.
func addServerFlags(fs *flag.FlagSet, f *serverFlags) {
	fs.StringVarP(&f.serverURL, "server", "s", "", "asset server base URL")
	fs.StringToStringVarP(&f.aliases, "alias", "a", nil, "alias mapping token=path (repeatable)")
}

// newRewriteFlagSet creates the rewrite FlagSet with all flags registered.
// Shared between parsing and completion so flag definitions stay in one place.
func newRewriteFlagSet() (*flag.FlagSet, *rewriteFlags) {
	fs := flag.NewFlagSet("rewrite", flag.ContinueOnError)
	f := &rewriteFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "write rewritten copies into this directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.check, "check", false, "report files that would change, write nothing")
	addCommonFlags(fs, &f.common)
	addServerFlags(fs, &f.server)

	return fs, f
}

// newWatchFlagSet creates the watch FlagSet with all flags registered.
func newWatchFlagSet() (*flag.FlagSet, *watchFlags) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	f := &watchFlags{}

	fs.IntVar(&f.debounceMS, "debounce", 0, "event debounce window in milliseconds")
	addCommonFlags(fs, &f.common)
	addServerFlags(fs, &f.server)

	return fs, f
}

// newServeFlagSet creates the serve FlagSet with all flags registered.
func newServeFlagSet() (*flag.FlagSet, *serveFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	f := &serveFlags{}

	fs.StringVar(&f.addr, "addr", "", "listen address (default \":4173\")")
	addCommonFlags(fs, &f.common)
	addServerFlags(fs, &f.server)

	return fs, f
}

// newInspectFlagSet creates the inspect FlagSet with all flags registered.
func newInspectFlagSet() (*flag.FlagSet, *inspectFlags) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	f := &inspectFlags{}

	fs.BoolVar(&f.json, "json", false, "output as JSON")
	addCommonFlags(fs, &f.common)
	addServerFlags(fs, &f.server)

	return fs, f
}

// newPreviewFlagSet creates the preview FlagSet with all flags registered.
func newPreviewFlagSet() (*flag.FlagSet, *previewFlags) {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	f := &previewFlags{}

	fs.StringVar(&f.style, "style", "monokai", "highlight style name")
	fs.BoolVar(&f.plain, "plain", false, "disable highlighting")
	fs.BoolVar(&f.original, "original", false, "show the source without rewriting")
	addCommonFlags(fs, &f.common)
	addServerFlags(fs, &f.server)

	return fs, f
}

// parseRewriteFlags parses rewrite command flags and returns positional args.
func parseRewriteFlags(args []string) (*rewriteFlags, []string, error) {
	fs, f := newRewriteFlagSet()
	fs.Usage = func() { printRewriteUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string) (*watchFlags, []string, error) {
	fs, f := newWatchFlagSet()
	fs.Usage = func() { printWatchUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string) (*serveFlags, []string, error) {
	fs, f := newServeFlagSet()
	fs.Usage = func() { printServeUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseInspectFlags parses inspect command flags.
func parseInspectFlags(args []string) (*inspectFlags, error) {
	fs, f := newInspectFlagSet()
	fs.Usage = func() { printInspectUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// parsePreviewFlags parses preview command flags and returns positional args.
func parsePreviewFlags(args []string) (*previewFlags, []string, error) {
	fs, f := newPreviewFlagSet()
	fs.Usage = func() { printPreviewUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
