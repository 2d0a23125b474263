package assetbridge

import "regexp"

// Precompiled patterns for /src/-rooted url() references.
// Escaped-quote forms cover stylesheet text embedded inside an
// already-quoted string; the path runs until the matching close quote,
// or until the closing parenthesis for the unquoted form. Quote variants
// are separate patterns because RE2 has no backreferences.
var (
	urlEscapedDouble = regexp.MustCompile(`url\(\\"(/src/[^"\\]+)\\"\)`)
	urlEscapedSingle = regexp.MustCompile(`url\(\\'(/src/[^'\\]+)\\'\)`)
	urlDoubleQuoted  = regexp.MustCompile(`url\("(/src/[^"]+)"\)`)
	urlSingleQuoted  = regexp.MustCompile(`url\('(/src/[^']+)'\)`)
	urlUnquoted      = regexp.MustCompile(`url\((/src/[^)]+)\)`)
)

// RewriteStylesheet rewrites url() asset references in stylesheet-dialect
// text so they resolve against serverURL. Only /src/-rooted absolute paths
// and configured alias prefixes are eligible; any other url() content
// passes through untouched.
func RewriteStylesheet(text, serverURL string, aliases []Alias) Result {
	return applyPasses(text, buildStylesheetPasses(serverURL, aliases))
}

// buildStylesheetPasses assembles the fixed pass order: escaped-quote,
// plain-quote, then unquoted absolute paths, then the quoted and unquoted
// forms of each alias. Once a path carries the serverURL prefix it starts
// with neither /src/ nor a bare alias token after the url( delimiter, so
// no later pass (and no second application) can match it again.
func buildStylesheetPasses(serverURL string, aliases []Alias) []pass {
	base := templateLiteral(serverURL)

	passes := []pass{
		{urlEscapedDouble, `url(\"` + base + `${1}\")`},
		{urlEscapedSingle, `url(\'` + base + `${1}\')`},
		{urlDoubleQuoted, `url("` + base + `${1}")`},
		{urlSingleQuoted, `url('` + base + `${1}')`},
		{urlUnquoted, `url(` + base + `${1})`},
	}

	for _, a := range aliases {
		if shadowsServerURL(serverURL, a.Token) {
			continue
		}
		token := regexp.QuoteMeta(a.Token)
		target := base + templateLiteral(a.Path)
		passes = append(passes,
			pass{
				regexp.MustCompile(`url\("` + token + `/([^"]+)"\)`),
				`url("` + target + `/${1}")`,
			},
			pass{
				regexp.MustCompile(`url\('` + token + `/([^']+)'\)`),
				`url('` + target + `/${1}')`,
			},
			pass{
				regexp.MustCompile(`url\(` + token + `/([^)]+)\)`),
				`url(` + target + `/${1})`,
			},
		)
	}

	return passes
}
