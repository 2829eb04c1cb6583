// Package nativewin moves windows and keeps them on top, which fyne does not
// expose. It reaches the platform handle through driver.NativeWindow and
// talks to X11 or Win32 directly; other platforms report Unsupported.
package nativewin

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"

	"imagehelper/internal/errors"
)

// ErrUnsupported is returned when the window system has no native backend.
var ErrUnsupported = errors.NewKind(errors.Unsupported, "native window access not available", nil)

// backend is the platform half of a native call.
type backend interface {
	position() (image.Point, error)
	move(p image.Point) error
	topmost() error
}

// Position returns the screen position of w in pixels.
func Position(w fyne.Window) (image.Point, error) {
	var p image.Point
	err := withBackend(w, func(b backend) (err error) {
		p, err = b.position()
		return err
	})
	return p, err
}

// Move places the top-left corner of w at p, in screen pixels.
func Move(w fyne.Window, p image.Point) error {
	return withBackend(w, func(b backend) error {
		return b.move(p)
	})
}

// SetTopmost keeps w above normal windows.
func SetTopmost(w fyne.Window) error {
	return withBackend(w, func(b backend) error {
		return b.topmost()
	})
}

func withBackend(w fyne.Window, fn func(backend) error) error {
	nw, ok := w.(driver.NativeWindow)
	if !ok {
		return ErrUnsupported
	}

	err := ErrUnsupported
	nw.RunNative(func(ctx any) {
		if b := backendFor(ctx); b != nil {
			err = fn(b)
		}
	})
	return err
}

func backendFor(ctx any) backend {
	switch c := ctx.(type) {
	case driver.X11WindowContext:
		if c.WindowHandle == 0 {
			return nil
		}
		return x11Window(c.WindowHandle)
	case driver.WindowsWindowContext:
		if c.HWND == 0 {
			return nil
		}
		return newWin32Window(c.HWND)
	default:
		return nil
	}
}
