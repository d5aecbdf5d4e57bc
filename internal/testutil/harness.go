// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package testutil provides the shared harness for tests that drive a whole
// App: temporary directories, manifests, test-case files and log capture.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/hilseq/internal/app"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Harness is an App rooted in a temporary directory.
type Harness struct {
	App    *app.App
	Logs   *SafeBuffer
	Root   string
	Config *app.Config
}

// Options tweak the harness before the App is built.
type Options struct {
	// Files are written relative to the harness root before the App starts.
	// Manifests go under "blocks/", test cases under "testcases/".
	Files map[string]string

	// Modules replace the compiled-in block modules.
	Modules []handlers.Module

	// Configure may adjust the config.
	Configure func(cfg *app.Config)
}

// NewHarness writes opts.Files into a temporary root and builds an App over
// it. When any file lives under "blocks/" that directory replaces the
// built-in manifests.
func NewHarness(t *testing.T, opts Options) *Harness {
	t.Helper()

	root := t.TempDir()
	customBlocks := false
	for name, content := range opts.Files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		if filepath.Dir(filepath.FromSlash(name)) == "blocks" {
			customBlocks = true
		}
	}

	raw := app.Config{
		TestcasesDir: filepath.Join(root, "testcases"),
		ResultsDir:   filepath.Join(root, "results"),
		LogFormat:    "text",
		LogLevel:     "debug",
	}
	if customBlocks {
		raw.BlocksPath = filepath.Join(root, "blocks")
	}
	if opts.Configure != nil {
		opts.Configure(&raw)
	}
	cfg, err := app.NewConfig(raw)
	require.NoError(t, err)

	logs := &SafeBuffer{}
	a, err := app.NewApp(logs, cfg, opts.Modules...)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = a.Close()
		if os.Getenv("HILSEQ_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return &Harness{App: a, Logs: logs, Root: root, Config: cfg}
}
