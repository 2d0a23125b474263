package main

// Shared test helpers for the CLI package.

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/halver/assetbridge/internal/config"
)

// newTestEnv returns an Environment with captured output buffers.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:        func() time.Time { return time.Now() },
		Stdout:     &stdout,
		Stderr:     &stderr,
		LoadConfig: config.LoadConfig,
	}
	return env, &stdout, &stderr
}

// writeTestFile creates a file under dir, creating parents as needed.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// readTestFile reads a file or fails the test.
func readTestFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(content)
}
