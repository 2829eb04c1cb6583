package errors

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	err = Newf("formatted %s", "error")
	assert.NotNil(t, err)
	assert.Equal(t, "formatted error", err.Error())

	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, "formatted error", appErr.Error())
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.NotNil(t, wrappedErr)
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())

	assert.Equal(t, origErr, errors.Unwrap(wrappedErr))

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())
	assert.True(t, Is(deepWrapped, origErr))
}

func TestFileError(t *testing.T) {
	fileErr := NewFileError("cannot decode image", "/photos/a.png", DecodeFailed, nil)
	assert.Equal(t, "cannot decode image: /photos/a.png", fileErr.Error())
	assert.Equal(t, "/photos/a.png", fileErr.Path())
	assert.Equal(t, DecodeFailed, fileErr.Kind())

	origErr := fmt.Errorf("unexpected EOF")
	fileErr = NewFileError("cannot decode image", "/photos/a.png", DecodeFailed, origErr)
	assert.Equal(t, "cannot decode image: /photos/a.png: unexpected EOF", fileErr.Error())
	assert.Equal(t, origErr, errors.Unwrap(fileErr))

	missing := NewFileError("cannot open folder", "/gone", FileNotFound, nil)
	assert.True(t, IsFileNotFound(missing))
	assert.False(t, IsFileNotFound(fileErr))
	assert.True(t, IsDecodeFailed(fileErr))
	assert.False(t, IsScanFailed(fileErr))
}

func TestKindSurvivesWrapping(t *testing.T) {
	scanErr := NewFileError("cannot list folder", "/gone", ScanFailed, errors.New("no such file or directory"))
	wrapped := Wrap(scanErr, "rescan")

	assert.Equal(t, ScanFailed, KindOf(wrapped))
	assert.True(t, IsScanFailed(wrapped))
	assert.Equal(t, Unknown, KindOf(errors.New("plain")))
	assert.Equal(t, Unknown, KindOf(nil))
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "gallery.thumbnail_size", InvalidConfig, nil)
	assert.Equal(t, "invalid value: gallery.thumbnail_size", configErr.Error())
	assert.Equal(t, "gallery.thumbnail_size", configErr.Param())
	assert.True(t, IsInvalidConfig(configErr))

	withCause := NewConfigError("invalid value", "gallery.patterns", InvalidConfig, errors.New("bad glob"))
	assert.Equal(t, "invalid value: gallery.patterns: bad glob", withCause.Error())
}

func TestCaptureError(t *testing.T) {
	region := image.Rect(50, 50, 150, 120)
	captureErr := NewCaptureError("screen grab failed", region, CaptureFailed, errors.New("no display"))
	assert.Equal(t, "screen grab failed: (50,50)-(150,120): no display", captureErr.Error())
	assert.Equal(t, region, captureErr.Region())
	assert.Equal(t, CaptureFailed, KindOf(captureErr))

	assert.Equal(t, "empty capture region", ErrEmptyRegion.Error())
	assert.True(t, IsInvalidRegion(ErrEmptyRegion))
}

func TestNewKind(t *testing.T) {
	err := NewKind(Unsupported, "native window access not available", nil)
	assert.True(t, IsUnsupported(err))
	assert.Equal(t, "native window access not available", err.Error())
}
