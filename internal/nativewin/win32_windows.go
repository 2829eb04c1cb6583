package nativewin

import (
	"image"

	"github.com/lxn/win"

	"imagehelper/internal/errors"
)

type win32Window win.HWND

func newWin32Window(hwnd uintptr) backend {
	return win32Window(hwnd)
}

func (w win32Window) position() (image.Point, error) {
	var r win.RECT
	if !win.GetWindowRect(win.HWND(w), &r) {
		return image.Point{}, errors.New("GetWindowRect failed")
	}
	return image.Pt(int(r.Left), int(r.Top)), nil
}

func (w win32Window) move(p image.Point) error {
	flags := uint32(win.SWP_NOSIZE | win.SWP_NOZORDER | win.SWP_NOACTIVATE)
	if !win.SetWindowPos(win.HWND(w), 0, int32(p.X), int32(p.Y), 0, 0, flags) {
		return errors.New("SetWindowPos failed")
	}
	return nil
}

func (w win32Window) topmost() error {
	flags := uint32(win.SWP_NOMOVE | win.SWP_NOSIZE | win.SWP_NOACTIVATE)
	if !win.SetWindowPos(win.HWND(w), win.HWND_TOPMOST, 0, 0, 0, 0, flags) {
		return errors.New("SetWindowPos failed")
	}
	return nil
}
