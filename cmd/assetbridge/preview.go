package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// runPreview rewrites a single file and prints the result to stdout,
// syntax-highlighted for terminals unless --plain is set.
func runPreview(positionalArgs []string, flags *previewFlags, env *Environment) error {
	if len(positionalArgs) == 0 {
		return fmt.Errorf("%w: preview needs a file argument", ErrNoInput)
	}
	path := positionalArgs[0]

	cfg, _, err := loadMergedConfig(&flags.common, &flags.server, env)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	text := string(content)
	if !flags.original {
		res, err := buildRewriter(cfg).RewriteFile(path, text)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		text = res.Code
	}

	if flags.plain {
		_, err := fmt.Fprint(env.Stdout, text)
		return err
	}
	return highlight(env.Stdout, text, path, flags.style)
}

// highlight writes text to w with ANSI colors chosen by file name.
func highlight(w io.Writer, text, path, styleName string) error {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return fmt.Errorf("highlighting: %w", err)
	}
	return formatter.Format(w, style, iterator)
}
