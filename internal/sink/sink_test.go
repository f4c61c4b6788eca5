package sink

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIfChanged_MissingFileIsWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "report.md")
	w := NewWriter(nil)

	changed, err := w.WriteIfChanged(path, []byte("content\n"))
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content\n", string(data))
}

func TestWriteIfChanged_IdenticalContentIsNotWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	w := NewWriter(nil)

	_, err := w.WriteIfChanged(path, []byte("{}\n"))
	require.NoError(t, err)

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	changed, err := w.WriteIfChanged(path, []byte("{}\n"))
	require.NoError(t, err)
	assert.False(t, changed)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "file must not be touched")
}

func TestWriteIfChanged_DifferentContentIsWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	changed, err := NewWriter(nil).WriteIfChanged(path, []byte("new"))
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteIfChanged_EmptyContentOverMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.md")

	changed, err := NewWriter(nil).WriteIfChanged(path, []byte{})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.FileExists(t, path)
}
