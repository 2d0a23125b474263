package assetbridge

import (
	"regexp"
	"strings"
)

// pass pairs one pattern with the replacement template that rewrites its
// matches. Templates use ${n} references; literal fragments are embedded
// through templateLiteral so they cannot be mistaken for references.
type pass struct {
	pattern *regexp.Regexp
	replace string
}

// apply substitutes every match of the pattern in text.
// The match test up front keeps the common no-match case allocation-free.
func (p pass) apply(text string) (string, bool) {
	if !p.pattern.MatchString(text) {
		return text, false
	}
	return p.pattern.ReplaceAllString(text, p.replace), true
}

// applyPasses runs passes in their fixed order, accumulating substitutions.
// Every pass runs regardless of whether earlier passes matched.
func applyPasses(text string, passes []pass) Result {
	changed := false
	for _, p := range passes {
		var did bool
		text, did = p.apply(text)
		changed = changed || did
	}
	return Result{Code: text, Changed: changed}
}

// templateLiteral escapes $ so a string can be embedded verbatim in a
// ReplaceAllString template.
func templateLiteral(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
