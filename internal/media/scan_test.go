package media

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestScanFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.mp4"))
	touch(t, filepath.Join(dir, "a.MKV"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "clip.webm"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.mp4"), 0o755))

	files, err := NewScanner(nil).Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.MKV"),
		filepath.Join(dir, "b.mp4"),
		filepath.Join(dir, "clip.webm"),
	}, files)
}

func TestScanCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.avi"))
	touch(t, filepath.Join(dir, "b.mp4"))

	files, err := NewScanner([]string{"avi"}).Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "a.avi"), files[0])
}

func TestScanMissingDirectory(t *testing.T) {
	_, err := NewScanner(nil).Scan(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestScanFileIsNotDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.mp4")
	touch(t, file)
	_, err := NewScanner(nil).Scan(file)
	assert.True(t, errors.Is(err, ErrNotDirectory))
}

func TestParseExtensions(t *testing.T) {
	assert.Equal(t, []string{".mp4", "mkv"}, ParseExtensions(" .mp4, mkv ,"))
	assert.Empty(t, ParseExtensions(""))
}

func TestSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "movies"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".hidden"), 0o755))
	touch(t, filepath.Join(dir, "a.mp4"))

	dirs, err := Subdirectories(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "movies")}, dirs)
}
