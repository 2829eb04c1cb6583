package gui

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagehelper/internal/config"
	"imagehelper/internal/errors"
	"imagehelper/internal/settings"
	"imagehelper/pkg/testutils"
	"imagehelper/pkg/types"
)

// memoryStore is an in-memory settings.Store
type memoryStore struct {
	folder string
	geom   types.Geometry
}

func (m *memoryStore) LastFolder() string { return m.folder }

func (m *memoryStore) SetLastFolder(path string) { m.folder = path }

func (m *memoryStore) Geometry() types.Geometry { return m.geom }

func (m *memoryStore) SetGeometry(g types.Geometry) { m.geom = g }

var _ settings.Store = (*memoryStore)(nil)

// fakeScreen serves a fixed 1920x1080 display
type fakeScreen struct{}

func (fakeScreen) Bounds() (image.Rectangle, error) {
	return image.Rect(0, 0, 1920, 1080), nil
}

func (fakeScreen) Grab(r image.Rectangle) (image.Image, error) {
	return testutils.Gradient(r.Dx(), r.Dy()), nil
}

func newTestApp(t *testing.T, store settings.Store) *App {
	t.Helper()
	fa := test.NewApp()
	t.Cleanup(fa.Quit)

	cfg := config.New()
	cfg.Gallery.WatchEvents = false
	cfg.Gallery.RescanInterval = 3600
	cfg.Capture.HideDelayMS = 0

	if store == nil {
		store = &memoryStore{geom: types.DefaultGeometry()}
	}
	a, err := NewApp(cfg, WithFyneApp(fa), WithStore(store), WithScreen(fakeScreen{}))
	require.NoError(t, err)
	t.Cleanup(a.rescanner.Stop)
	return a
}

func thumbnails(a *App) []*thumbnail {
	var out []*thumbnail
	for _, o := range a.grid.Objects {
		out = append(out, o.(*thumbnail))
	}
	return out
}

func TestNewAppShowsPrompt(t *testing.T) {
	a := newTestApp(t, nil)
	require.NotNil(t, a.GetMainWindow())
	assert.Equal(t, a.promptView, a.GetMainWindow().Content())
	assert.Empty(t, a.Folder())
}

func TestOpenFolder(t *testing.T) {
	dir := t.TempDir()
	testutils.WritePNG(t, dir, "a.png", 400, 200)
	testutils.WriteJPEG(t, dir, "b.jpg", 50, 100)
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{"notes.txt": "skip me"})

	store := &memoryStore{}
	a := newTestApp(t, store)

	require.NoError(t, a.OpenFolder(dir))
	assert.Equal(t, dir, a.Folder())
	assert.Equal(t, dir, store.LastFolder())
	assert.Equal(t, a.galleryView, a.GetMainWindow().Content())
	assert.Equal(t, "Current folder: "+dir, a.folderLabel.Text)

	thumbs := thumbnails(a)
	require.Len(t, thumbs, 2)
	assert.Equal(t, "a.png", thumbs[0].Name())
	assert.Equal(t, fyne.NewSize(102, 52), thumbs[0].MinSize())
	assert.Equal(t, fyne.NewSize(52, 102), thumbs[1].MinSize())
}

func TestOpenFolderRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.png")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	a := newTestApp(t, nil)
	assert.Error(t, a.OpenFolder(file))
	assert.Equal(t, a.promptView, a.GetMainWindow().Content())

	err := a.OpenFolder(filepath.Join(filepath.Dir(file), "gone"))
	assert.True(t, errors.IsFileNotFound(err))
}

func TestOpenFolderStartsOver(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	testutils.WritePNG(t, first, "a.png", 10, 10)
	testutils.WritePNG(t, second, "b.png", 10, 10)
	testutils.WritePNG(t, second, "c.png", 10, 10)

	a := newTestApp(t, nil)
	require.NoError(t, a.OpenFolder(first))
	test.Tap(thumbnails(a)[0])

	require.NoError(t, a.OpenFolder(second))
	assert.Equal(t, 2, a.Gallery().Len())
	_, ok := a.Gallery().Selected()
	assert.False(t, ok)
	assert.False(t, a.Gallery().Has(filepath.Join(first, "a.png")))
}

func TestOpenLastFolder(t *testing.T) {
	dir := t.TempDir()
	testutils.WritePNG(t, dir, "a.png", 10, 10)

	t.Run("existing folder", func(t *testing.T) {
		a := newTestApp(t, &memoryStore{folder: dir})
		a.OpenLastFolder()
		assert.Equal(t, dir, a.Folder())
		assert.Len(t, thumbnails(a), 1)
	})

	t.Run("missing folder", func(t *testing.T) {
		a := newTestApp(t, &memoryStore{folder: filepath.Join(dir, "gone")})
		a.OpenLastFolder()
		assert.Empty(t, a.Folder())
		assert.Equal(t, a.promptView, a.GetMainWindow().Content())
	})

	t.Run("nothing saved", func(t *testing.T) {
		a := newTestApp(t, &memoryStore{})
		a.OpenLastFolder()
		assert.Empty(t, a.Folder())
	})
}

func TestRescanReconciles(t *testing.T) {
	dir := t.TempDir()
	a1 := testutils.WritePNG(t, dir, "a.png", 10, 10)

	a := newTestApp(t, nil)
	require.NoError(t, a.OpenFolder(dir))
	require.Len(t, thumbnails(a), 1)

	a.Rescan()
	assert.Len(t, thumbnails(a), 1, "rescanning an unchanged folder adds nothing")

	testutils.WriteGIF(t, dir, "b.gif", 10, 10)
	require.NoError(t, os.Remove(a1))
	a.Rescan()

	thumbs := thumbnails(a)
	require.Len(t, thumbs, 1)
	assert.Equal(t, "b.gif", thumbs[0].Name())
}

func TestRescanFailureKeepsEntries(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "photos")
	require.NoError(t, os.Mkdir(dir, 0755))
	testutils.WritePNG(t, dir, "a.png", 10, 10)

	a := newTestApp(t, nil)
	require.NoError(t, a.OpenFolder(dir))
	require.NoError(t, os.RemoveAll(dir))

	a.Rescan()
	assert.True(t, a.scanErrShown)
	assert.Len(t, thumbnails(a), 1)

	require.NoError(t, os.Mkdir(dir, 0755))
	a.Rescan()
	assert.False(t, a.scanErrShown)
	assert.Empty(t, thumbnails(a))
}

func TestSelectAndDelete(t *testing.T) {
	dir := t.TempDir()
	pathA := testutils.WritePNG(t, dir, "a.png", 10, 10)
	testutils.WritePNG(t, dir, "b.png", 10, 10)

	a := newTestApp(t, nil)
	require.NoError(t, a.OpenFolder(dir))
	thumbs := thumbnails(a)
	require.Len(t, thumbs, 2)

	test.Tap(thumbs[1])
	test.Tap(thumbs[0])
	assert.True(t, thumbs[0].Selected())
	assert.False(t, thumbs[1].Selected(), "selecting clears the previous selection")

	a.GetMainWindow().Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyDelete})

	assert.NoFileExists(t, pathA)
	assert.Len(t, thumbnails(a), 1)
	assert.False(t, a.Gallery().Has(pathA))
	_, ok := a.Gallery().Selected()
	assert.False(t, ok)

	// Delete with nothing selected does nothing
	a.GetMainWindow().Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyDelete})
	assert.Len(t, thumbnails(a), 1)
}

func TestDoubleTapOpensFullView(t *testing.T) {
	dir := t.TempDir()
	testutils.WritePNG(t, dir, "a.png", 64, 36)
	testutils.WritePNG(t, dir, "b.png", 10, 10)

	a := newTestApp(t, nil)
	require.NoError(t, a.OpenFolder(dir))
	thumbs := thumbnails(a)
	test.Tap(thumbs[1])

	before := len(a.fyneApp.Driver().AllWindows())
	test.DoubleTap(thumbs[0])
	windows := a.fyneApp.Driver().AllWindows()
	require.Len(t, windows, before+1)

	sel, ok := a.Gallery().Selected()
	require.True(t, ok)
	assert.Equal(t, "b.png", sel.Name, "double tap leaves the selection alone")

	full := windows[len(windows)-1]
	_, isView := full.Content().(*fullView)
	assert.True(t, isView)
	assert.Equal(t, fyne.NewSize(64, 36), full.Canvas().Size())
}

func TestOpenFullViewDecodeFailure(t *testing.T) {
	path := testutils.WriteCorrupt(t, t.TempDir(), "broken.png")

	a := newTestApp(t, nil)
	before := len(a.fyneApp.Driver().AllWindows())
	a.OpenFullView(path)
	assert.Len(t, a.fyneApp.Driver().AllWindows(), before)
}

func TestSaveGeometry(t *testing.T) {
	store := &memoryStore{geom: types.DefaultGeometry()}
	a := newTestApp(t, store)

	a.GetMainWindow().Resize(fyne.NewSize(1024, 700))
	a.saveGeometry()

	g := store.Geometry()
	assert.Equal(t, 1024, g.Width)
	assert.Equal(t, 700, g.Height)
	// The test window has no native position, the saved one is kept
	assert.Equal(t, types.DefaultWindowX, g.X)
	assert.Equal(t, types.DefaultWindowY, g.Y)
}

func TestCaptureWritesIntoFolder(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, nil)
	require.NoError(t, a.OpenFolder(dir))

	a.showOverlay(dir, image.Rect(0, 0, 1920, 1080), nil)
	require.NotNil(t, a.overlay)
	o := a.overlay

	o.MouseDown(mouseAt(50, 50))
	o.Dragged(dragTo(150, 120))
	o.MouseUp(mouseAt(150, 120))

	var shot string
	require.Eventually(t, func() bool {
		matches, _ := filepath.Glob(filepath.Join(dir, "screenshot_*.png"))
		if len(matches) == 1 {
			shot = matches[0]
			return true
		}
		return false
	}, 3*time.Second, 10*time.Millisecond)

	img := testutils.DecodePNG(t, shot)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 70, img.Bounds().Dy())
}

func TestOpenFolderStartsRescanning(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	a := newTestApp(t, nil)
	require.NoError(t, a.OpenFolder(first))
	st := a.rescanner.Status()
	assert.True(t, st.Running)
	assert.Equal(t, first, st.Folder)
	assert.False(t, st.Watching)

	require.NoError(t, a.OpenFolder(second))
	assert.Equal(t, second, a.rescanner.Status().Folder)
}

func TestOverlayCloseRestoresMainWindow(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, nil)
	require.NoError(t, a.OpenFolder(dir))

	overlayWindow := func() fyne.Window {
		windows := a.fyneApp.Driver().AllWindows()
		return windows[len(windows)-1]
	}

	t.Run("closed by the window manager", func(t *testing.T) {
		a.showOverlay(dir, image.Rect(0, 0, 1920, 1080), nil)
		require.NotNil(t, a.overlay)
		w := overlayWindow()

		w.Close()
		assert.Nil(t, a.overlay)
		assert.NotPanics(t, w.Close)
	})

	t.Run("escape", func(t *testing.T) {
		a.showOverlay(dir, image.Rect(0, 0, 1920, 1080), nil)
		require.NotNil(t, a.overlay)

		overlayWindow().Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyEscape})
		assert.Nil(t, a.overlay)
		matches, _ := filepath.Glob(filepath.Join(dir, "screenshot_*.png"))
		assert.Empty(t, matches)
	})
}
