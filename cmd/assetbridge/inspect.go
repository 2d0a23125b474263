package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	assetbridge "github.com/halver/assetbridge"
)

// inspectReport holds the effective rewriter configuration.
type inspectReport struct {
	ConfigSource string        `json:"config_source"`
	ServerURL    string        `json:"server_url"`
	Aliases      []aliasReport `json:"aliases,omitempty"`
	Passes       passReport    `json:"passes"`
}

// aliasReport describes one configured alias entry.
type aliasReport struct {
	Token      string `json:"token"`
	Target     string `json:"target,omitempty"`
	Normalized string `json:"normalized,omitempty"`
	Note       string `json:"note,omitempty"`
}

// passReport holds per-dialect pass counts.
type passReport struct {
	Stylesheet int `json:"stylesheet"`
	Script     int `json:"script"`
}

// runInspectCmd executes the inspect command and returns an exit code.
func runInspectCmd(flags *inspectFlags, env *Environment) int {
	cfg, source, err := loadMergedConfig(&flags.common, &flags.server, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "%v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}

	rewriter := buildRewriter(cfg)
	report := buildInspectReport(cfg.Aliases, source, rewriter)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printInspectReport(env.Stdout, report)
	}

	return ExitSuccess
}

// buildInspectReport reconciles raw alias configuration with what the
// rewriter actually uses, noting entries that were skipped or are inert.
func buildInspectReport(raw map[string]any, source string, rewriter *assetbridge.Rewriter) *inspectReport {
	report := &inspectReport{
		ConfigSource: source,
		ServerURL:    rewriter.ServerURL(),
		Passes: passReport{
			Stylesheet: rewriter.PassCount(assetbridge.DialectStylesheet),
			Script:     rewriter.PassCount(assetbridge.DialectScript),
		},
	}

	normalized := make(map[string]string)
	for _, a := range rewriter.Aliases() {
		normalized[a.Token] = a.Path
	}

	tokens := make([]string, 0, len(raw))
	for token := range raw {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	for _, token := range tokens {
		entry := aliasReport{Token: token}
		target, isString := raw[token].(string)
		entry.Target = target

		switch {
		case token == "":
			entry.Note = "skipped: empty token"
		case !isString:
			entry.Target = fmt.Sprintf("%v", raw[token])
			entry.Note = "skipped: target is not a string"
		default:
			entry.Normalized = normalized[token]
			if shadowsServer(report.ServerURL, token) {
				entry.Note = "inert: token overlaps server URL"
			}
		}

		report.Aliases = append(report.Aliases, entry)
	}

	return report
}

// shadowsServer reports whether a token shares a prefix with the server
// URL in either direction. Such tokens get no rewrite pass.
func shadowsServer(serverURL, token string) bool {
	return strings.HasPrefix(serverURL, token) || strings.HasPrefix(token, serverURL)
}

// printInspectReport outputs a human-readable configuration summary.
func printInspectReport(w io.Writer, r *inspectReport) {
	fmt.Fprintf(w, "Config:  %s\n", r.ConfigSource)
	fmt.Fprintf(w, "Server:  %s\n", r.ServerURL)
	fmt.Fprintf(w, "Passes:  %d stylesheet, %d script\n", r.Passes.Stylesheet, r.Passes.Script)
	fmt.Fprintln(w)

	if len(r.Aliases) == 0 {
		fmt.Fprintln(w, "No aliases configured.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Token", "Target", "Normalized", "Note"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	for _, a := range r.Aliases {
		table.Append([]string{a.Token, a.Target, a.Normalized, a.Note})
	}
	table.Render()
}
