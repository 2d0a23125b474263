package assetbridge

import (
	"reflect"
	"testing"
)

func TestNormalizeAliases(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		expected []Alias
	}{
		{
			name:     "nil mapping",
			raw:      nil,
			expected: nil,
		},
		{
			name:     "empty mapping",
			raw:      map[string]any{},
			expected: nil,
		},
		{
			name: "web-root-relative target kept as-is",
			raw:  map[string]any{"@fonts": "/src/assets/fonts"},
			expected: []Alias{
				{Token: "@fonts", Path: "/src/assets/fonts"},
			},
		},
		{
			name: "absolute filesystem target truncated at src marker",
			raw:  map[string]any{"@fonts": "/Users/dev/project/src/assets/fonts"},
			expected: []Alias{
				{Token: "@fonts", Path: "/src/assets/fonts"},
			},
		},
		{
			name: "windows-style target truncated at src marker",
			raw:  map[string]any{"@images": `C:\dev\project/src/assets/images`},
			expected: []Alias{
				{Token: "@images", Path: "/src/assets/images"},
			},
		},
		{
			name: "first src marker wins",
			raw:  map[string]any{"@pages": "/app/src/pages/src/assets"},
			expected: []Alias{
				{Token: "@pages", Path: "/src/pages/src/assets"},
			},
		},
		{
			name: "relative target gains leading slash",
			raw:  map[string]any{"@assets": "assets/fonts"},
			expected: []Alias{
				{Token: "@assets", Path: "/assets/fonts"},
			},
		},
		{
			name: "absolute target without src marker kept as-is",
			raw:  map[string]any{"@public": "/public/images"},
			expected: []Alias{
				{Token: "@public", Path: "/public/images"},
			},
		},
		{
			name: "empty token skipped",
			raw: map[string]any{
				"":       "/src/skipped",
				"@fonts": "/src/assets/fonts",
			},
			expected: []Alias{
				{Token: "@fonts", Path: "/src/assets/fonts"},
			},
		},
		{
			name: "non-string targets skipped",
			raw: map[string]any{
				"@num":   42,
				"@list":  []string{"/src/a"},
				"@nil":   nil,
				"@fonts": "/src/assets/fonts",
			},
			expected: []Alias{
				{Token: "@fonts", Path: "/src/assets/fonts"},
			},
		},
		{
			name: "entries sorted by token",
			raw: map[string]any{
				"@media":  "/src/assets/media",
				"@fonts":  "/src/assets/fonts",
				"@images": "/src/assets/images",
			},
			expected: []Alias{
				{Token: "@fonts", Path: "/src/assets/fonts"},
				{Token: "@images", Path: "/src/assets/images"},
				{Token: "@media", Path: "/src/assets/media"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAliases(tt.raw)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("NormalizeAliases() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNormalizeAliasesDeterministic(t *testing.T) {
	raw := map[string]any{
		"@a": "/src/a",
		"@b": "/src/b",
		"@c": "/src/c",
		"@d": "/src/d",
	}

	first := NormalizeAliases(raw)
	for i := 0; i < 20; i++ {
		if got := NormalizeAliases(raw); !reflect.DeepEqual(got, first) {
			t.Fatalf("NormalizeAliases() order varies between calls: %v vs %v", got, first)
		}
	}
}

func TestNormalizeAliasPath(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		expected string
	}{
		{"src marker at start", "/src/assets", "/src/assets"},
		{"src marker mid-path", "/home/ci/build/src/icons", "/src/icons"},
		{"bare src without trailing slash", "/src", "/src"},
		{"relative path", "vendor/fonts", "/vendor/fonts"},
		{"empty target", "", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeAliasPath(tt.target)
			if got != tt.expected {
				t.Errorf("normalizeAliasPath(%q) = %q, want %q", tt.target, got, tt.expected)
			}
		})
	}
}

func TestShadowsServerURL(t *testing.T) {
	tests := []struct {
		name     string
		server   string
		token    string
		expected bool
	}{
		{"ordinary alias", "http://localhost:5173", "@fonts", false},
		{"token is scheme prefix", "http://localhost:5173", "http:", true},
		{"token extends server url", "http://h", "http://h/src", true},
		{"token equals server url", "http://localhost:5173", "http://localhost:5173", true},
		{"tilde alias", "http://localhost:5173", "~", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shadowsServerURL(tt.server, tt.token)
			if got != tt.expected {
				t.Errorf("shadowsServerURL(%q, %q) = %v, want %v", tt.server, tt.token, got, tt.expected)
			}
		})
	}
}
