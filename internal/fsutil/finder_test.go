// internal/fsutil/finder_test.go
package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for _, name := range []string{"b.hcl", "a.hcl", "notes.md", "nested/c.hcl", "nested/d.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	files, err := FindByExtensions(dir, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "nested", "c.hcl"),
	}, files)

	files, err = FindByExtensions(dir, ".hcl", ".json")
	require.NoError(t, err)
	assert.Len(t, files, 4)
}

func TestFindByExtensions_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := FindByExtensions(filepath.Join(t.TempDir(), "absent"), ".hcl")
	assert.Error(t, err)
}
