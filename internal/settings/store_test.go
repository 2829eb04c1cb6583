package settings

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"imagehelper/pkg/types"
)

func TestPreferencesStoreDefaults(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	s := NewPreferencesStore(a.Preferences())
	assert.Empty(t, s.LastFolder())
	assert.Equal(t, types.DefaultGeometry(), s.Geometry())
}

func TestPreferencesStoreRoundTrip(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	s := NewPreferencesStore(a.Preferences())
	s.SetLastFolder("/home/user/Pictures")
	s.SetGeometry(types.Geometry{Width: 1024, Height: 700, X: 12, Y: 34})

	// A second store over the same preferences sees the saved values
	other := NewPreferencesStore(a.Preferences())
	assert.Equal(t, "/home/user/Pictures", other.LastFolder())
	assert.Equal(t, types.Geometry{Width: 1024, Height: 700, X: 12, Y: 34}, other.Geometry())
}

func TestPreferencesStorePartialGeometry(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	a.Preferences().SetInt(KeyWindowWidth, 640)

	g := NewPreferencesStore(a.Preferences()).Geometry()
	assert.Equal(t, 640, g.Width)
	assert.Equal(t, types.DefaultWindowHeight, g.Height)
	assert.Equal(t, types.DefaultWindowX, g.X)
	assert.Equal(t, types.DefaultWindowY, g.Y)
}
