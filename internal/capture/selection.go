// Package capture turns a dragged screen rectangle into a PNG file in the
// active folder.
package capture

import (
	"image"
	"math"
)

// State is the phase of a capture drag.
type State int

const (
	Idle State = iota
	Dragging
	Capturing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Capturing:
		return "capturing"
	default:
		return "unknown"
	}
}

// Selection follows one press/drag/release gesture in screen pixels.
type Selection struct {
	state      State
	start, end image.Point
}

// Press starts a new drag at p.
func (s *Selection) Press(p image.Point) {
	s.state = Dragging
	s.start = p
	s.end = p
}

// Drag moves the free corner to p. It reports false outside a drag.
func (s *Selection) Drag(p image.Point) bool {
	if s.state != Dragging {
		return false
	}
	s.end = p
	return true
}

// Release ends the drag at p and returns the selected rectangle. ok is false
// when no drag was in progress or the rectangle has zero width or height.
// Release is idempotent: later calls report false.
func (s *Selection) Release(p image.Point) (r image.Rectangle, ok bool) {
	if s.state != Dragging {
		return image.Rectangle{}, false
	}
	s.end = p
	s.state = Capturing
	r = s.Rect()
	return r, !r.Empty()
}

// Rect returns the normalized rectangle between the drag points.
func (s *Selection) Rect() image.Rectangle {
	return Normalize(s.start, s.end)
}

func (s *Selection) State() State {
	return s.state
}

// Reset returns the selection to Idle.
func (s *Selection) Reset() {
	*s = Selection{}
}

// Normalize returns the rectangle spanned by two corner points, whichever
// order they were given in.
func Normalize(a, b image.Point) image.Rectangle {
	return image.Rect(a.X, a.Y, b.X, b.Y)
}

// ScreenPoint converts a position in logical canvas units to a screen pixel,
// given the canvas scale and the screen origin of the canvas.
func ScreenPoint(x, y, scale float32, origin image.Point) image.Point {
	return image.Pt(
		origin.X+int(math.Round(float64(x*scale))),
		origin.Y+int(math.Round(float64(y*scale))),
	)
}
