package assetbridge

import (
	"sort"
	"strings"
)

// srcMarker is the web-root segment that anchors dev-server asset paths.
const srcMarker = "/src/"

// Alias pairs an alias token with its web-root-relative target path.
type Alias struct {
	Token string // literal prefix as written in source, e.g. "@fonts"
	Path  string // target beginning with "/", e.g. "/src/assets/fonts"
}

// NormalizeAliases converts a raw alias mapping into normalized entries.
// Entries with an empty token or a non-string target are skipped, never
// an error: malformed configuration must not break a transformation.
// Output is sorted by token so pass construction is deterministic.
func NormalizeAliases(raw map[string]any) []Alias {
	if len(raw) == 0 {
		return nil
	}

	out := make([]Alias, 0, len(raw))
	for token, target := range raw {
		if token == "" {
			continue
		}
		path, ok := target.(string)
		if !ok {
			continue
		}
		out = append(out, Alias{Token: token, Path: normalizeAliasPath(path)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

// normalizeAliasPath reduces a raw alias target to a web-root-relative path.
// Targets may arrive as absolute filesystem paths; only the portion from
// the /src/ marker onward means anything to the dev server.
func normalizeAliasPath(target string) string {
	if i := strings.Index(target, srcMarker); i >= 0 {
		return target[i:]
	}
	if strings.HasPrefix(target, "/") {
		return target
	}
	return "/" + target
}

// shadowsServerURL reports whether an alias token shares a prefix with the
// server URL in either direction. Such a token could re-match inside
// already-rewritten output, so no pass is built for it.
func shadowsServerURL(serverURL, token string) bool {
	return strings.HasPrefix(serverURL, token) || strings.HasPrefix(token, serverURL)
}
