package nativewin

import (
	"image"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"imagehelper/internal/errors"
)

// _NET_WM_STATE client message action.
const netWMStateAdd = 1

var (
	x11Once sync.Once
	x11Conn *xgb.Conn
	x11Err  error
)

// x11Connection returns the shared connection to the display fyne uses.
func x11Connection() (*xgb.Conn, error) {
	x11Once.Do(func() {
		x11Conn, x11Err = xgb.NewConn()
	})
	return x11Conn, x11Err
}

type x11Window uintptr

func (w x11Window) id() xproto.Window {
	return xproto.Window(w)
}

// position reads the origin of the window's frame, which is what a
// NorthWest-gravity ConfigureWindow in move places, so saved positions do not
// creep by the title bar height.
func (w x11Window) position() (image.Point, error) {
	conn, err := x11Connection()
	if err != nil {
		return image.Point{}, errors.Wrap(err, "cannot connect to X server")
	}
	root := xproto.Setup(conn).DefaultScreen(conn).Root

	frame, err := topLevel(w.id(), root, func(win xproto.Window) (xproto.Window, error) {
		reply, err := xproto.QueryTree(conn, win).Reply()
		if err != nil {
			return 0, err
		}
		return reply.Parent, nil
	})
	if err != nil {
		return image.Point{}, errors.Wrap(err, "cannot find window frame")
	}
	geom, err := xproto.GetGeometry(conn, xproto.Drawable(frame)).Reply()
	if err != nil {
		return image.Point{}, errors.Wrap(err, "cannot read window position")
	}
	return image.Pt(int(geom.X), int(geom.Y)), nil
}

// maxTreeDepth bounds the walk up the window tree.
const maxTreeDepth = 16

// topLevel walks up from w to the child of root: the window manager's frame
// when it reparents, w itself when it does not.
func topLevel(w, root xproto.Window, parent func(xproto.Window) (xproto.Window, error)) (xproto.Window, error) {
	for i := 0; i < maxTreeDepth; i++ {
		p, err := parent(w)
		if err != nil {
			return 0, err
		}
		if p == root || p == 0 {
			return w, nil
		}
		w = p
	}
	return w, nil
}

func (w x11Window) move(p image.Point) error {
	conn, err := x11Connection()
	if err != nil {
		return errors.Wrap(err, "cannot connect to X server")
	}
	values := []uint32{uint32(int32(p.X)), uint32(int32(p.Y))}
	err = xproto.ConfigureWindowChecked(conn, w.id(), xproto.ConfigWindowX|xproto.ConfigWindowY, values).Check()
	return errors.Wrap(err, "cannot move window")
}

func (w x11Window) topmost() error {
	conn, err := x11Connection()
	if err != nil {
		return errors.Wrap(err, "cannot connect to X server")
	}
	state, err := internAtom(conn, "_NET_WM_STATE")
	if err != nil {
		return err
	}
	above, err := internAtom(conn, "_NET_WM_STATE_ABOVE")
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w.id(),
		Type:   state,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{netWMStateAdd, uint32(above), 0, 1, 0}),
	}
	root := xproto.Setup(conn).DefaultScreen(conn).Root
	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
	err = xproto.SendEventChecked(conn, false, root, mask, string(ev.Bytes())).Check()
	return errors.Wrap(err, "cannot raise window")
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, errors.Wrapf(err, "cannot intern atom %s", name)
	}
	return reply.Atom, nil
}
