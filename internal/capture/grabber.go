package capture

import (
	"image"

	"github.com/kbinani/screenshot"

	"imagehelper/internal/errors"
)

// Grabber reads screen pixels.
type Grabber interface {
	Grab(r image.Rectangle) (image.Image, error)
}

// ScreenGrabber grabs from the real displays.
type ScreenGrabber struct{}

// Grab returns the pixels inside r, in virtual screen coordinates.
func (ScreenGrabber) Grab(r image.Rectangle) (image.Image, error) {
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Bounds returns the bounds of the primary display.
func (ScreenGrabber) Bounds() (image.Rectangle, error) {
	if screenshot.NumActiveDisplays() < 1 {
		return image.Rectangle{}, errors.NewKind(errors.CaptureFailed, "no active display", nil)
	}
	return screenshot.GetDisplayBounds(0), nil
}
