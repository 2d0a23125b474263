package main

// Notes:
// - runServe binds a real listener on 127.0.0.1:0, so the tests never
//   collide on a port. Config resolution keeps them serial.

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestRunServe - Lifecycle and validation
// ---------------------------------------------------------------------------

func TestRunServeStopsOnCancel(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "index.html", "<html></html>")

	ctx, cancel := context.WithCancel(context.Background())
	env, _, _ := newTestEnv()
	flags := &serveFlags{addr: "127.0.0.1:0", common: commonFlags{quiet: true}}

	done := make(chan error, 1)
	go func() {
		done <- runServe(ctx, []string{root}, flags, env)
	}()

	// Give the server a moment to start before asking it to stop.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestRunServeMissingRoot(t *testing.T) {
	env, _, _ := newTestEnv()
	flags := &serveFlags{addr: "127.0.0.1:0"}

	err := runServe(context.Background(), []string{"definitely/not/here"}, flags, env)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestRunServeRootNotDirectory(t *testing.T) {
	env, _, _ := newTestEnv()
	path := writeTestFile(t, t.TempDir(), "app.css", "x")
	flags := &serveFlags{addr: "127.0.0.1:0"}

	err := runServe(context.Background(), []string{path}, flags, env)
	if err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("err = %v, want not-a-directory", err)
	}
}

func TestRunServeInvalidLogLevel(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "bridge.yaml", "log:\n  level: loud\n")

	env, _, _ := newTestEnv()
	flags := &serveFlags{common: commonFlags{config: path}}

	err := runServe(context.Background(), nil, flags, env)
	if err == nil {
		t.Fatal("err = nil, want invalid log level")
	}
}
