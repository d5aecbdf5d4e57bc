package fsutil

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	fsys := fstest.MapFS{
		"b.hcl":            {Data: []byte("")},
		"a.hcl":            {Data: []byte("")},
		"nested/c.hcl":     {Data: []byte("")},
		"nested/notes.txt": {Data: []byte("")},
	}

	files, err := FindFilesByExtension(fsys, ".", ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.hcl", "b.hcl", "nested/c.hcl"}, files)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	_, err := FindFilesByExtension(fstest.MapFS{}, "missing", ".hcl")
	require.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.json")

	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("new"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file may be left behind")
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "case.json")

	err := WriteFileAtomic(path, []byte("data"), 0o644)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
