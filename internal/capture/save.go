package capture

import (
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"imagehelper/internal/errors"
)

// Default file naming.
const (
	DefaultPrefix = "screenshot_"
	DefaultLayout = "20060102_150405"
)

// stagingPattern names the in-flight file. It must not match any image
// pattern, or a rescan could pick up a half-written capture.
const stagingPattern = ".capture-*.tmp"

// FileName returns prefix + t formatted with layout + ".png".
func FileName(prefix, layout string, t time.Time) string {
	return prefix + t.Format(layout) + ".png"
}

// Save writes img as a PNG named name inside dir. The image is encoded into
// a temporary file in dir which is renamed into place, so a failed write
// leaves nothing behind.
func Save(img image.Image, dir, name string) (string, error) {
	path := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, stagingPattern)
	if err != nil {
		return "", errors.NewFileError("cannot create capture file", path, errors.WriteFailed, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := imaging.Encode(tmp, img, imaging.PNG); err != nil {
		tmp.Close()
		return "", errors.NewFileError("cannot encode capture", path, errors.EncodeFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.NewFileError("cannot write capture file", path, errors.WriteFailed, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", errors.NewFileError("cannot write capture file", path, errors.WriteFailed, err)
	}
	return path, nil
}
