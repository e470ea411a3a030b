package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jgivc/uploader/internal/common"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const testRoot = "/project"

func newTestArchiver(t *testing.T) (*Archiver, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	return NewArchiverWithFS(fs, log), fs
}

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()

	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
}

func readArchive(t *testing.T, fs afero.Fs, path string) map[string]string {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)

		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		_, seen := entries[f.Name]
		require.False(t, seen, "duplicate entry %s", f.Name)
		entries[f.Name] = string(content)
	}

	return entries
}

func TestCreate(t *testing.T) {
	a, fs := newTestArchiver(t)
	writeFiles(t, fs, map[string]string{
		testRoot + "/build/index.html":    "hi",
		testRoot + "/build/assets/app.js": "x",
	})

	info, err := a.Create(testRoot, "build")
	require.NoError(t, err)
	require.Equal(t, testRoot+"/"+FileName, info.Path)
	require.Equal(t, 2, info.FileCount)
	require.Equal(t, int64(3), info.Bytes)

	entries := readArchive(t, fs, info.Path)
	require.Equal(t, map[string]string{
		"index.html":    "hi",
		"assets/app.js": "x",
	}, entries)
}

func TestCreateStripsPrefixOnce(t *testing.T) {
	a, fs := newTestArchiver(t)

	// A nested directory that repeats the output directory name must keep
	// its inner occurrence.
	writeFiles(t, fs, map[string]string{
		testRoot + "/build/build/page.html": "nested",
	})

	info, err := a.Create(testRoot, "build")
	require.NoError(t, err)

	entries := readArchive(t, fs, info.Path)
	require.Equal(t, map[string]string{
		"build/page.html": "nested",
	}, entries)
}

func TestCreateNoPrefixLeaks(t *testing.T) {
	a, fs := newTestArchiver(t)
	writeFiles(t, fs, map[string]string{
		testRoot + "/build/a.txt":       "a",
		testRoot + "/build/sub/b.txt":   "b",
		testRoot + "/build/sub/c/d.txt": "d",
	})

	info, err := a.Create(testRoot, "build")
	require.NoError(t, err)
	require.Equal(t, 3, info.FileCount)

	for name := range readArchive(t, fs, info.Path) {
		require.NotContains(t, name, "build/")
	}
}

func TestCreateEmptyDir(t *testing.T) {
	a, fs := newTestArchiver(t)
	require.NoError(t, fs.MkdirAll(testRoot+"/build", 0755))

	info, err := a.Create(testRoot, "build")
	require.NoError(t, err)
	require.Equal(t, 0, info.FileCount)
	require.Empty(t, readArchive(t, fs, info.Path))
}

func TestCreateMissingDir(t *testing.T) {
	a, fs := newTestArchiver(t)
	require.NoError(t, fs.MkdirAll(testRoot, 0755))

	_, err := a.Create(testRoot, "build")
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrOutputDirNotFound))

	ok, err := afero.Exists(fs, testRoot+"/"+FileName)
	require.NoError(t, err)
	require.False(t, ok, "no archive file should appear for a missing output directory")
}
