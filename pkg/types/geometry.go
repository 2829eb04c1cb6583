package types

// Default main window geometry used when nothing has been persisted.
const (
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
	DefaultWindowX      = 100
	DefaultWindowY      = 100
)

// Geometry is the size and screen position of a window.
type Geometry struct {
	Width  int
	Height int
	X      int
	Y      int
}

// DefaultGeometry returns the geometry used on first launch.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:  DefaultWindowWidth,
		Height: DefaultWindowHeight,
		X:      DefaultWindowX,
		Y:      DefaultWindowY,
	}
}

// Valid reports whether the geometry has a usable size.
func (g Geometry) Valid() bool {
	return g.Width > 0 && g.Height > 0
}
