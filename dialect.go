package assetbridge

import (
	"path"
	"strings"
)

// Extension sets for dialect classification.
var (
	stylesheetExtensions = map[string]bool{
		"css": true, "scss": true, "sass": true, "less": true, "styl": true,
	}
	scriptExtensions = map[string]bool{
		"js": true, "jsx": true, "ts": true, "tsx": true, "vue": true,
	}
)

// DialectForFile classifies a file name or module id by extension.
// A trailing query string after the extension (e.g. "logo.ts?v=3") is
// ignored. Returns ok=false for extensions belonging to neither dialect.
func DialectForFile(name string) (Dialect, bool) {
	if i := strings.IndexByte(name, '?'); i >= 0 {
		name = name[:i]
	}

	ext := strings.TrimPrefix(path.Ext(name), ".")
	switch {
	case stylesheetExtensions[ext]:
		return DialectStylesheet, true
	case scriptExtensions[ext]:
		return DialectScript, true
	}
	return "", false
}
