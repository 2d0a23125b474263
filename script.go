package assetbridge

import (
	"regexp"
	"strings"
)

// assetExtensions are the asset file types the script rewriter recognizes,
// matched case-sensitively. Paths ending in anything else (e.g. .json)
// are never script-rewritten.
var assetExtensions = []string{
	"svg", "png", "jpg", "jpeg", "gif", "webp",
	"woff", "woff2", "ttf", "otf", "eot",
	"mp4", "webm", "ogg",
}

// extAlternation is the extension set as a regex alternation. The closing
// quote anchor after it makes alternation order irrelevant (woff2 still
// wins over woff when the text demands it).
var extAlternation = strings.Join(assetExtensions, "|")

// Precompiled patterns for /src/-rooted references in script-dialect text.
// Prefix groups capture the surrounding syntax verbatim so substitution
// preserves spacing and quote characters exactly. Quote variants are
// separate patterns because RE2 has no backreferences.
var (
	importFromDouble = regexp.MustCompile(`(import\s+.*?\s+from\s+)"(/src/[^"]+\.(?:` + extAlternation + `))"`)
	importFromSingle = regexp.MustCompile(`(import\s+.*?\s+from\s+)'(/src/[^']+\.(?:` + extAlternation + `))'`)

	dynamicImportDouble = regexp.MustCompile(`(import\(\s*)"(/src/[^"]+\.(?:` + extAlternation + `))"`)
	dynamicImportSingle = regexp.MustCompile(`(import\(\s*)'(/src/[^']+\.(?:` + extAlternation + `))'`)

	attributeDouble = regexp.MustCompile(`((?:src|href|poster|data)=)"(/src/[^"]+\.(?:` + extAlternation + `))"`)
	attributeSingle = regexp.MustCompile(`((?:src|href|poster|data)=)'(/src/[^']+\.(?:` + extAlternation + `))'`)

	propertyDouble = regexp.MustCompile(`((?:backgroundImage|src|href|poster|image|icon|logo|avatar|thumbnail|background):\s*)"(/src/[^"]+\.(?:` + extAlternation + `))"`)
	propertySingle = regexp.MustCompile(`((?:backgroundImage|src|href|poster|image|icon|logo|avatar|thumbnail|background):\s*)'(/src/[^']+\.(?:` + extAlternation + `))'`)
)

// RewriteScript rewrites asset references in script-dialect text so they
// resolve against serverURL. A reference is eligible only when its path is
// /src/-rooted (or alias-prefixed, for static imports) and ends in one of
// assetExtensions.
func RewriteScript(text, serverURL string, aliases []Alias) Result {
	return applyPasses(text, buildScriptPasses(serverURL, aliases))
}

// buildScriptPasses assembles the fixed pass order: static imports,
// dynamic imports, markup attributes, object-literal properties, then the
// static-import form of each alias. Alias rewriting is deliberately
// narrower here than in the stylesheet dialect: attribute, property, and
// dynamic-import forms stay alias-unaware.
func buildScriptPasses(serverURL string, aliases []Alias) []pass {
	base := templateLiteral(serverURL)

	passes := []pass{
		{importFromDouble, `${1}"` + base + `${2}"`},
		{importFromSingle, `${1}'` + base + `${2}'`},
		{dynamicImportDouble, `${1}"` + base + `${2}"`},
		{dynamicImportSingle, `${1}'` + base + `${2}'`},
		{attributeDouble, `${1}"` + base + `${2}"`},
		{attributeSingle, `${1}'` + base + `${2}'`},
		{propertyDouble, `${1}"` + base + `${2}"`},
		{propertySingle, `${1}'` + base + `${2}'`},
	}

	for _, a := range aliases {
		if shadowsServerURL(serverURL, a.Token) {
			continue
		}
		token := regexp.QuoteMeta(a.Token)
		target := base + templateLiteral(a.Path)
		passes = append(passes,
			pass{
				regexp.MustCompile(`(import\s+.*?\s+from\s+)"` + token + `/([^"]+\.(?:` + extAlternation + `))"`),
				`${1}"` + target + `/${2}"`,
			},
			pass{
				regexp.MustCompile(`(import\s+.*?\s+from\s+)'` + token + `/([^']+\.(?:` + extAlternation + `))'`),
				`${1}'` + target + `/${2}'`,
			},
		)
	}

	return passes
}
