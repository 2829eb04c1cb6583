package nativewin

import (
	"fmt"
	"image"
	"testing"

	"fyne.io/fyne/v2/driver"
	"fyne.io/fyne/v2/test"
	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagehelper/internal/errors"
)

func TestBackendFor(t *testing.T) {
	assert.Nil(t, backendFor(nil))
	assert.Nil(t, backendFor(driver.X11WindowContext{}))
	assert.Nil(t, backendFor(driver.WindowsWindowContext{}))
	assert.Nil(t, backendFor(driver.MacWindowContext{NSWindow: 1}))

	b := backendFor(driver.X11WindowContext{WindowHandle: 42})
	assert.Equal(t, x11Window(42), b)
}

func TestUnsupportedWindow(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	w := a.NewWindow("plain")
	defer w.Close()

	_, err := Position(w)
	assert.True(t, errors.IsUnsupported(err))
	assert.True(t, errors.IsUnsupported(Move(w, image.Pt(10, 10))))
	assert.True(t, errors.IsUnsupported(SetTopmost(w)))
}

func TestTopLevel(t *testing.T) {
	const root = xproto.Window(1)
	// client 30 inside a WM decoration 20 inside the frame 10
	parents := map[xproto.Window]xproto.Window{30: 20, 20: 10, 10: root, 40: root}
	parentOf := func(w xproto.Window) (xproto.Window, error) {
		p, ok := parents[w]
		if !ok {
			return 0, fmt.Errorf("no window %d", w)
		}
		return p, nil
	}

	frame, err := topLevel(30, root, parentOf)
	require.NoError(t, err)
	assert.Equal(t, xproto.Window(10), frame, "reparented windows resolve to the frame")

	frame, err = topLevel(40, root, parentOf)
	require.NoError(t, err)
	assert.Equal(t, xproto.Window(40), frame, "unparented windows are their own frame")

	_, err = topLevel(99, root, parentOf)
	assert.Error(t, err)
}
