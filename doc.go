// Package assetbridge rewrites asset-reference URLs in stylesheet and
// script sources so they resolve against a local dev asset server.
//
// During development, asset paths like /src/assets/logo.svg resolve only
// when the page is served from the dev server itself. When the page comes
// from another origin (a CMS-rendered template, a proxied backend), those
// references 404. assetbridge prefixes them with the dev server URL so
// they stay reachable.
//
// # Quick Start
//
// Create a rewriter and transform source text by dialect:
//
//	rw := assetbridge.New(
//	    assetbridge.WithServerURL("http://localhost:5173"),
//	    assetbridge.WithAliases(map[string]any{"@fonts": "/src/assets/fonts"}),
//	)
//
//	res := rw.Rewrite(css, assetbridge.DialectStylesheet)
//	if res.Changed {
//	    os.WriteFile("out.css", []byte(res.Code), 0644)
//	}
//
// Or let the file name pick the dialect:
//
//	res, err := rw.RewriteFile("theme.scss", css)
//
// # How It Works
//
// Each dialect runs a fixed ordered list of regex passes; there is no
// parser and no AST. The stylesheet dialect rewrites url() references
// (escaped-quote, plain-quote, and unquoted forms); the script dialect
// rewrites static imports, dynamic imports, markup attributes, and
// object-literal property values whose paths end in a known asset
// extension. Only /src/-rooted absolute paths and configured alias
// prefixes are eligible. Matching is deliberately conservative: text a
// pattern cannot close cleanly passes through unchanged, because a missed
// rewrite is a visible 404 while a wrong rewrite silently corrupts source.
//
// # Aliases
//
// Alias mappings come in as raw configuration and are normalized before
// use: targets containing a /src/ segment are truncated to start there,
// other targets get a leading slash. Malformed entries (empty token,
// non-string target) are skipped, never an error. In the script dialect
// only static imports are alias-aware.
//
// # Results
//
// Every rewrite returns a Result with the output text and a Changed flag.
// Changed=false guarantees the text is byte-identical to the input.
// Rewriting is plain text substitution; no source map is produced, so
// callers propagating maps must drop them when Changed is true.
//
// The rewrite path never returns an error and a Rewriter is safe for
// concurrent use. Pure function variants (RewriteStylesheet,
// RewriteScript) are available when constructing a Rewriter is not worth
// it for a one-off call.
package assetbridge
