package assetbridge

import (
	"strings"
	"testing"
)

func TestRewriteScript(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		aliases     map[string]any
		expected    string
		wantChanged bool
	}{
		{
			name:        "static import single quotes",
			input:       `import logo from '/src/assets/svg/logo.svg';`,
			expected:    `import logo from 'http://localhost:5173/src/assets/svg/logo.svg';`,
			wantChanged: true,
		},
		{
			name:        "static import double quotes",
			input:       `import hero from "/src/assets/images/hero.webp";`,
			expected:    `import hero from "http://localhost:5173/src/assets/images/hero.webp";`,
			wantChanged: true,
		},
		{
			name:        "named import",
			input:       `import { ReactComponent as Arrow } from "/src/icons/arrow.svg";`,
			expected:    `import { ReactComponent as Arrow } from "http://localhost:5173/src/icons/arrow.svg";`,
			wantChanged: true,
		},
		{
			name:        "import preceding unrelated import",
			input:       `import api from "./api"; import logo from "/src/logo.png";`,
			expected:    `import api from "./api"; import logo from "http://localhost:5173/src/logo.png";`,
			wantChanged: true,
		},
		{
			name:        "dynamic import",
			input:       `const video = await import("/src/assets/intro.mp4");`,
			expected:    `const video = await import("http://localhost:5173/src/assets/intro.mp4");`,
			wantChanged: true,
		},
		{
			name:        "dynamic import with inner whitespace",
			input:       `import(  '/src/assets/font.woff2')`,
			expected:    `import(  'http://localhost:5173/src/assets/font.woff2')`,
			wantChanged: true,
		},
		{
			name:        "src attribute",
			input:       `const tpl = '<img src="/src/assets/hero.jpg" alt="hero">';`,
			expected:    `const tpl = '<img src="http://localhost:5173/src/assets/hero.jpg" alt="hero">';`,
			wantChanged: true,
		},
		{
			name:        "href attribute single quotes",
			input:       `el.innerHTML = "<link href='/src/fonts/inter.woff2' rel='preload'>";`,
			expected:    `el.innerHTML = "<link href='http://localhost:5173/src/fonts/inter.woff2' rel='preload'>";`,
			wantChanged: true,
		},
		{
			name:        "poster attribute",
			input:       `<video poster="/src/assets/poster.png" controls>`,
			expected:    `<video poster="http://localhost:5173/src/assets/poster.png" controls>`,
			wantChanged: true,
		},
		{
			name:        "data attribute",
			input:       `<object data="/src/assets/diagram.svg"></object>`,
			expected:    `<object data="http://localhost:5173/src/assets/diagram.svg"></object>`,
			wantChanged: true,
		},
		{
			name:        "data-src attribute rewritten through src suffix",
			input:       `<img data-src="/src/assets/lazy.png">`,
			expected:    `<img data-src="http://localhost:5173/src/assets/lazy.png">`,
			wantChanged: true,
		},
		{
			name:        "backgroundImage property",
			input:       `const style = { backgroundImage: "/src/assets/bg.jpg" };`,
			expected:    `const style = { backgroundImage: "http://localhost:5173/src/assets/bg.jpg" };`,
			wantChanged: true,
		},
		{
			name:        "icon property single quotes no space",
			input:       `const item = {icon:'/src/icons/home.svg', label:'Home'};`,
			expected:    `const item = {icon:'http://localhost:5173/src/icons/home.svg', label:'Home'};`,
			wantChanged: true,
		},
		{
			name:        "avatar and thumbnail properties",
			input:       `{ avatar: "/src/img/me.png", thumbnail: "/src/img/thumb.webp" }`,
			expected:    `{ avatar: "http://localhost:5173/src/img/me.png", thumbnail: "http://localhost:5173/src/img/thumb.webp" }`,
			wantChanged: true,
		},
		{
			name:        "ineligible extension untouched",
			input:       `import config from '/src/data/config.json';`,
			expected:    `import config from '/src/data/config.json';`,
			wantChanged: false,
		},
		{
			name:        "uppercase extension untouched",
			input:       `import x from '/src/assets/logo.SVG';`,
			expected:    `import x from '/src/assets/logo.SVG';`,
			wantChanged: false,
		},
		{
			name:        "woff2 not truncated to woff",
			input:       `import inter from '/src/fonts/inter.woff2';`,
			expected:    `import inter from 'http://localhost:5173/src/fonts/inter.woff2';`,
			wantChanged: true,
		},
		{
			name:        "path outside src untouched",
			input:       `import logo from '/public/logo.png';`,
			expected:    `import logo from '/public/logo.png';`,
			wantChanged: false,
		},
		{
			name:        "relative import untouched",
			input:       `import icon from './icons/check.svg';`,
			expected:    `import icon from './icons/check.svg';`,
			wantChanged: false,
		},
		{
			name:        "bare module import untouched",
			input:       `import React from 'react';`,
			expected:    `import React from 'react';`,
			wantChanged: false,
		},
		{
			name:        "no references at all",
			input:       `export function add(a, b) { return a + b; }`,
			expected:    `export function add(a, b) { return a + b; }`,
			wantChanged: false,
		},
		{
			name:        "empty input",
			input:       "",
			expected:    "",
			wantChanged: false,
		},
		{
			name:        "alias static import",
			input:       `import arrow from '@icons/arrow.svg';`,
			aliases:     map[string]any{"@icons": "/src/assets/icons"},
			expected:    `import arrow from 'http://localhost:5173/src/assets/icons/arrow.svg';`,
			wantChanged: true,
		},
		{
			name:        "alias static import double quotes",
			input:       `import bg from "@images/bg.jpeg";`,
			aliases:     map[string]any{"@images": "/Users/dev/project/src/assets/images"},
			expected:    `import bg from "http://localhost:5173/src/assets/images/bg.jpeg";`,
			wantChanged: true,
		},
		{
			name:        "alias dynamic import left unchanged",
			input:       `const icon = await import('@icons/arrow.svg');`,
			aliases:     map[string]any{"@icons": "/src/assets/icons"},
			expected:    `const icon = await import('@icons/arrow.svg');`,
			wantChanged: false,
		},
		{
			name:        "alias attribute left unchanged",
			input:       `<img src="@icons/arrow.svg">`,
			aliases:     map[string]any{"@icons": "/src/assets/icons"},
			expected:    `<img src="@icons/arrow.svg">`,
			wantChanged: false,
		},
		{
			name:        "alias property left unchanged",
			input:       `const item = { icon: "@icons/home.svg" };`,
			aliases:     map[string]any{"@icons": "/src/assets/icons"},
			expected:    `const item = { icon: "@icons/home.svg" };`,
			wantChanged: false,
		},
		{
			name:        "alias import with ineligible extension untouched",
			input:       `import data from '@icons/meta.json';`,
			aliases:     map[string]any{"@icons": "/src/assets/icons"},
			expected:    `import data from '@icons/meta.json';`,
			wantChanged: false,
		},
		{
			name: "several reference shapes in one unit",
			input: `import logo from '/src/logo.svg';
const hero = { backgroundImage: "/src/hero.jpg" };
const tpl = '<video poster="/src/poster.png"></video>';`,
			expected: `import logo from 'http://localhost:5173/src/logo.svg';
const hero = { backgroundImage: "http://localhost:5173/src/hero.jpg" };
const tpl = '<video poster="http://localhost:5173/src/poster.png"></video>';`,
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aliases := NormalizeAliases(tt.aliases)

			got := RewriteScript(tt.input, DefaultServerURL, aliases)
			if got.Code != tt.expected {
				t.Errorf("RewriteScript():\ngot:  %q\nwant: %q", got.Code, tt.expected)
			}
			if got.Changed != tt.wantChanged {
				t.Errorf("RewriteScript() changed = %v, want %v", got.Changed, tt.wantChanged)
			}

			// A second application must be a no-op.
			again := RewriteScript(got.Code, DefaultServerURL, aliases)
			if again.Changed {
				t.Errorf("second application changed text: %q -> %q", got.Code, again.Code)
			}
			if again.Code != got.Code {
				t.Errorf("second application altered output:\ngot:  %q\nwant: %q", again.Code, got.Code)
			}
		})
	}
}

func TestRewriteScriptEligibleExtensions(t *testing.T) {
	for _, ext := range assetExtensions {
		t.Run(ext, func(t *testing.T) {
			input := `import asset from "/src/assets/file.` + ext + `";`
			expected := `import asset from "http://localhost:5173/src/assets/file.` + ext + `";`

			got := RewriteScript(input, DefaultServerURL, nil)
			if got.Code != expected {
				t.Errorf("RewriteScript() = %q, want %q", got.Code, expected)
			}
			if !got.Changed {
				t.Errorf("RewriteScript() changed = false, want true for .%s", ext)
			}
		})
	}
}

func TestRewriteScriptPreservesSurroundingWhitespace(t *testing.T) {
	input := "import   spaced    from   \"/src/a.png\";"
	got := RewriteScript(input, DefaultServerURL, nil)

	expected := "import   spaced    from   \"http://localhost:5173/src/a.png\";"
	if got.Code != expected {
		t.Errorf("RewriteScript() = %q, want %q", got.Code, expected)
	}
	if !strings.Contains(got.Code, "import   spaced    from   ") {
		t.Error("surrounding whitespace was not preserved verbatim")
	}
}

func TestRewriteScriptMultilineImportUntouched(t *testing.T) {
	// The static-import pattern is line-bound; an import whose clause
	// spans lines is left alone rather than risk a bad splice.
	input := "import {\n  a,\n  b,\n} from \"/src/sheet.png\";"

	got := RewriteScript(input, DefaultServerURL, nil)
	if got.Changed {
		t.Errorf("RewriteScript() changed = true, want false")
	}
	if got.Code != input {
		t.Errorf("RewriteScript() = %q, want %q", got.Code, input)
	}
}
