package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/hilseq/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"--help"})

	require.NoError(t, err, "run() should return a nil error for --help")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_InvalidHardwareFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{
		"--testcases-dir", filepath.Join(dir, "testcases"),
		"--hardware", filepath.Join(dir, "missing.hcl"),
		"blocks",
	})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load hardware configuration")
}
