// Package settings persists the values the main window restores on startup:
// the last opened folder and the window geometry.
package settings

import (
	"fyne.io/fyne/v2"

	"imagehelper/pkg/types"
)

// Preference keys.
const (
	KeyLastFolder   = "last_opened_directory"
	KeyWindowWidth  = "window_width"
	KeyWindowHeight = "window_height"
	KeyWindowX      = "window_x"
	KeyWindowY      = "window_y"
)

// Store loads and saves the persisted window state.
type Store interface {
	LastFolder() string
	SetLastFolder(path string)
	Geometry() types.Geometry
	SetGeometry(g types.Geometry)
}

// PreferencesStore keeps settings in a fyne Preferences instance.
type PreferencesStore struct {
	prefs fyne.Preferences
}

// NewPreferencesStore wraps prefs, usually fyne.App.Preferences().
func NewPreferencesStore(prefs fyne.Preferences) *PreferencesStore {
	return &PreferencesStore{prefs: prefs}
}

func (s *PreferencesStore) LastFolder() string {
	return s.prefs.String(KeyLastFolder)
}

func (s *PreferencesStore) SetLastFolder(path string) {
	s.prefs.SetString(KeyLastFolder, path)
}

// Geometry returns the saved geometry, falling back to the defaults key by key.
func (s *PreferencesStore) Geometry() types.Geometry {
	return types.Geometry{
		Width:  s.prefs.IntWithFallback(KeyWindowWidth, types.DefaultWindowWidth),
		Height: s.prefs.IntWithFallback(KeyWindowHeight, types.DefaultWindowHeight),
		X:      s.prefs.IntWithFallback(KeyWindowX, types.DefaultWindowX),
		Y:      s.prefs.IntWithFallback(KeyWindowY, types.DefaultWindowY),
	}
}

func (s *PreferencesStore) SetGeometry(g types.Geometry) {
	s.prefs.SetInt(KeyWindowWidth, g.Width)
	s.prefs.SetInt(KeyWindowHeight, g.Height)
	s.prefs.SetInt(KeyWindowX, g.X)
	s.prefs.SetInt(KeyWindowY, g.Y)
}
