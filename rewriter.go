package assetbridge

import "fmt"

// Rewriter holds an immutable rewrite configuration: the dev server URL,
// the normalized alias entries, and the pass lists compiled from them.
// It is safe for concurrent use. Reconfiguration means building a new
// Rewriter; a snapshot is never partially mutated.
type Rewriter struct {
	serverURL  string
	aliases    []Alias
	stylesheet []pass
	script     []pass
}

// New creates a Rewriter with the default server URL and no aliases.
// Use options to customize (e.g. WithServerURL, WithAliases).
func New(opts ...Option) *Rewriter {
	r := &Rewriter{serverURL: DefaultServerURL}

	for _, opt := range opts {
		opt(r)
	}

	r.stylesheet = buildStylesheetPasses(r.serverURL, r.aliases)
	r.script = buildScriptPasses(r.serverURL, r.aliases)
	return r
}

// Rewrite transforms one source unit in the given dialect. An unknown
// dialect passes the text through unchanged: the rewrite path never
// returns an error, and the only observable signal is Result.Changed.
func (r *Rewriter) Rewrite(text string, dialect Dialect) Result {
	switch dialect {
	case DialectStylesheet:
		return applyPasses(text, r.stylesheet)
	case DialectScript:
		return applyPasses(text, r.script)
	}
	return Result{Code: text}
}

// RewriteFile classifies name by extension and transforms text in the
// resulting dialect. Unlike Rewrite, it reports unclassifiable names:
// the caller asked for dispatch, so silence would hide a misconfiguration.
func (r *Rewriter) RewriteFile(name, text string) (Result, error) {
	dialect, ok := DialectForFile(name)
	if !ok {
		return Result{Code: text}, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
	return r.Rewrite(text, dialect), nil
}

// ServerURL returns the configured dev server base URL.
func (r *Rewriter) ServerURL() string {
	return r.serverURL
}

// Aliases returns a copy of the normalized alias entries.
func (r *Rewriter) Aliases() []Alias {
	return append([]Alias(nil), r.aliases...)
}

// PassCount reports how many passes are compiled for a dialect,
// including the per-alias ones.
func (r *Rewriter) PassCount(dialect Dialect) int {
	switch dialect {
	case DialectStylesheet:
		return len(r.stylesheet)
	case DialectScript:
		return len(r.script)
	}
	return 0
}
