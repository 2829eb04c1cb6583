package gallery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagehelper/internal/errors"
	"imagehelper/pkg/testutils"
	"imagehelper/pkg/types"
)

func TestScannerList(t *testing.T) {
	dir := t.TempDir()
	testutils.WritePNG(t, dir, "b.png", 4, 4)
	testutils.WriteJPEG(t, dir, "a.JPG", 4, 4)
	testutils.WriteJPEG(t, dir, "c.jpeg", 4, 4)
	testutils.WriteGIF(t, dir, "d.gif", 4, 4)
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"notes.txt":  "text",
		"image.webp": "webp",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0755))
	testutils.WritePNG(t, filepath.Join(dir, "nested.png"), "deep.png", 4, 4)

	s, err := NewScanner(nil)
	require.NoError(t, err)

	files, err := s.List(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name())
		assert.Greater(t, f.Size, int64(0))
	}
	assert.Equal(t, []string{"a.JPG", "b.png", "c.jpeg", "d.gif"}, names)
}

func TestScannerCustomPatterns(t *testing.T) {
	dir := t.TempDir()
	testutils.WritePNG(t, dir, "keep.png", 4, 4)
	testutils.WriteJPEG(t, dir, "skip.jpg", 4, 4)

	s, err := NewScanner([]string{"*.PNG"})
	require.NoError(t, err)

	files, err := s.List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "keep.png")}, types.Paths(files))
}

func TestScannerInvalidPattern(t *testing.T) {
	_, err := NewScanner([]string{"*.[png"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestScannerMissingFolder(t *testing.T) {
	s, err := NewScanner(nil)
	require.NoError(t, err)

	missing := filepath.Join(t.TempDir(), "gone")
	_, err = s.List(missing)
	require.Error(t, err)
	assert.True(t, errors.IsScanFailed(err))

	var fileErr *errors.FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, missing, fileErr.Path())
}
