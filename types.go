package assetbridge

// DefaultServerURL is the dev asset server origin used when none is configured.
const DefaultServerURL = "http://localhost:5173"

// Dialect selects which pass set applies to a source unit.
type Dialect string

// Supported dialects.
const (
	DialectStylesheet Dialect = "stylesheet"
	DialectScript     Dialect = "script"
)

// Result is the outcome of one rewrite call.
// When Changed is false, Code is byte-identical to the input and callers
// must treat the source as untouched. When true, Code is plain-text
// substituted output with no position mapping available.
type Result struct {
	Code    string
	Changed bool
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithServerURL sets the dev asset server base URL.
// Panics if url is empty (programmer error, similar to time.NewTicker).
func WithServerURL(url string) Option {
	if url == "" {
		panic("assetbridge: WithServerURL url must not be empty")
	}
	return func(r *Rewriter) {
		r.serverURL = url
	}
}

// WithAliases sets the raw alias mapping. Entries with an empty token or
// a non-string target are skipped during normalization, not rejected.
func WithAliases(raw map[string]any) Option {
	return func(r *Rewriter) {
		r.aliases = NormalizeAliases(raw)
	}
}

// WithNormalizedAliases sets already-normalized alias entries, bypassing
// NormalizeAliases. Useful when the caller normalizes once and builds
// several rewriters from the same snapshot.
func WithNormalizedAliases(aliases []Alias) Option {
	return func(r *Rewriter) {
		r.aliases = append([]Alias(nil), aliases...)
	}
}
