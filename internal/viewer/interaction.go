// Package viewer holds the gesture logic of the full-view window: dragging
// the bottom-right corner resizes it with the image's aspect ratio, dragging
// anywhere else moves it.
package viewer

import (
	"math"

	"fyne.io/fyne/v2"
)

// Defaults for the resize handle.
const (
	DefaultMargin   = 10
	DefaultMinWidth = 100
)

// Mode is what the current drag does to the window.
type Mode int

const (
	None Mode = iota
	Moving
	Resizing
)

func (m Mode) String() string {
	switch m {
	case Moving:
		return "moving"
	case Resizing:
		return "resizing"
	default:
		return "none"
	}
}

// Action is the window change a drag step asks for.
type Action struct {
	Resize bool
	Size   fyne.Size

	Move bool
	Pos  fyne.Position
}

// Interaction tracks one press/drag/release gesture over the image. Pointer
// positions are relative to the window content; window positions are in the
// same units, relative to the screen.
type Interaction struct {
	Margin   float32
	MinWidth float32
	Aspect   float64 // source width / source height

	mode   Mode
	offset fyne.Position
	winPos fyne.Position
}

// NewInteraction returns an Interaction for a source image of w x h pixels.
func NewInteraction(w, h int, margin, minWidth float32) *Interaction {
	aspect := 1.0
	if w > 0 && h > 0 {
		aspect = float64(w) / float64(h)
	}
	return &Interaction{Margin: margin, MinWidth: minWidth, Aspect: aspect}
}

// InResizeZone reports whether p lies within Margin of the bottom-right
// corner of a window of the given size.
func (i *Interaction) InResizeZone(p fyne.Position, size fyne.Size) bool {
	return p.X >= size.Width-i.Margin && p.Y >= size.Height-i.Margin
}

// Press starts a gesture. winPos is the window's current screen position.
func (i *Interaction) Press(p fyne.Position, size fyne.Size, winPos fyne.Position) Mode {
	if i.InResizeZone(p, size) {
		i.mode = Resizing
		return i.mode
	}
	i.mode = Moving
	i.offset = p
	i.winPos = winPos
	return i.mode
}

// Drag returns what the window should do for pointer position p.
func (i *Interaction) Drag(p fyne.Position) Action {
	switch i.mode {
	case Resizing:
		return Action{Resize: true, Size: ResizeFor(p.X, i.MinWidth, i.Aspect)}
	case Moving:
		// p is relative to the window, so keep the press offset under it
		i.winPos = i.winPos.Add(p).Subtract(i.offset)
		return Action{Move: true, Pos: i.winPos}
	default:
		return Action{}
	}
}

// Release ends the gesture.
func (i *Interaction) Release() {
	i.mode = None
}

func (i *Interaction) Mode() Mode {
	return i.mode
}

// ResizeFor returns the window size for a resize drag reaching x: the width
// is x (at least minWidth) and the height keeps aspect.
func ResizeFor(x, minWidth float32, aspect float64) fyne.Size {
	w := max(minWidth, float32(math.Round(float64(x))))
	if aspect <= 0 {
		aspect = 1
	}
	h := float32(math.Round(float64(w) / aspect))
	return fyne.NewSize(w, h)
}

// FitSize returns the largest size with the given aspect that fits within box.
func FitSize(box fyne.Size, aspect float64) fyne.Size {
	if aspect <= 0 || box.Width <= 0 || box.Height <= 0 {
		return box
	}
	if float64(box.Width)/float64(box.Height) > aspect {
		return fyne.NewSize(float32(float64(box.Height)*aspect), box.Height)
	}
	return fyne.NewSize(box.Width, float32(float64(box.Width)/aspect))
}
