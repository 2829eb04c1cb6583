// Package gui is the desktop front end: the main window with its folder
// prompt and thumbnail gallery, the full-view image windows and the screen
// capture overlay.
package gui

import (
	"image"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"imagehelper/internal/capture"
	"imagehelper/internal/config"
	"imagehelper/internal/errors"
	"imagehelper/internal/gallery"
	"imagehelper/internal/log"
	"imagehelper/internal/nativewin"
	"imagehelper/internal/settings"
	"imagehelper/internal/watch"
	"imagehelper/pkg/types"
)

// AppID keys the fyne preferences store.
const AppID = "dev.webarata3.imagehelper"

const windowTitle = "Image Helper"

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	store      settings.Store
	screen     Screen

	syncer    *gallery.Syncer
	gallery   *gallery.Gallery
	rescanner *watch.Rescanner
	folder    string
	initial   string

	// Whether the current scan failure has been reported already
	scanErrShown bool

	promptView  fyne.CanvasObject
	galleryView fyne.CanvasObject
	folderLabel *widget.Label
	grid        *fyne.Container
	scroll      *container.Scroll
	overlay     *captureOverlay
}

// Option customizes an App
type Option func(*App)

// WithFyneApp runs the GUI on an existing fyne app, such as the test app.
func WithFyneApp(fa fyne.App) Option {
	return func(a *App) {
		a.fyneApp = fa
	}
}

// WithStore replaces the preferences-backed settings store.
func WithStore(s settings.Store) Option {
	return func(a *App) {
		a.store = s
	}
}

// WithScreen replaces the real screen grabber.
func WithScreen(s Screen) Option {
	return func(a *App) {
		a.screen = s
	}
}

// WithFolder opens path on start instead of the saved folder.
func WithFolder(path string) Option {
	return func(a *App) {
		a.initial = path
	}
}

// NewApp creates the GUI application and builds its main window.
func NewApp(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.New()
	}
	scanner, err := gallery.NewScanner(cfg.Gallery.Patterns)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:     cfg,
		syncer:  gallery.NewSyncer(scanner, cfg.Gallery.ThumbnailSize),
		gallery: gallery.New(),
		screen:  capture.ScreenGrabber{},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.fyneApp == nil {
		a.fyneApp = app.NewWithID(AppID)
	}
	if a.store == nil {
		a.store = settings.NewPreferencesStore(a.fyneApp.Preferences())
	}

	a.rescanner = watch.NewRescanner(cfg.RescanEvery(), cfg.Gallery.WatchEvents, func(reason watch.Reason) {
		fyne.Do(func() {
			log.Debugf("rescan (%s)", reason)
			a.Rescan()
		})
	})

	a.mainWindow = a.fyneApp.NewWindow(windowTitle)
	a.mainWindow.SetMaster()
	a.setupMainWindow()
	return a, nil
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Folder returns the active folder, empty when none is open.
func (a *App) Folder() string {
	return a.folder
}

// Gallery returns the tracked entries of the active folder.
func (a *App) Gallery() *gallery.Gallery {
	return a.gallery
}

// Run restores the window, opens the last folder and blocks until the main
// window closes.
func (a *App) Run() {
	geom := a.store.Geometry()
	if !geom.Valid() {
		geom = types.DefaultGeometry()
	}
	a.mainWindow.Resize(fyne.NewSize(float32(geom.Width), float32(geom.Height)))

	a.fyneApp.Lifecycle().SetOnStarted(func() {
		// The native window exists only once the app is running
		if err := nativewin.Move(a.mainWindow, image.Pt(geom.X, geom.Y)); err != nil {
			log.LogWithError(err).Debug("window position not restored")
		}
	})

	if a.initial != "" {
		if err := a.OpenFolder(a.initial); err != nil {
			log.LogWithError(err).Warn("cannot open folder")
			a.OpenLastFolder()
		}
	} else {
		a.OpenLastFolder()
	}
	a.mainWindow.ShowAndRun()
}

// setupMainWindow builds both views and the window handlers.
func (a *App) setupMainWindow() {
	a.promptView = container.NewBorder(
		widget.NewLabel("Please choose a folder"),
		nil, nil, nil,
		widget.NewButtonWithIcon("Choose folder", theme.FolderOpenIcon(), a.ChooseFolder),
	)

	a.folderLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.folderLabel.Truncation = fyne.TextTruncateEllipsis
	toolbar := container.NewHBox(
		widget.NewButtonWithIcon("Choose folder", theme.FolderOpenIcon(), a.ChooseFolder),
		widget.NewButtonWithIcon("Capture screen", theme.MediaPhotoIcon(), a.StartCapture),
		layout.NewSpacer(),
	)

	a.grid = container.New(NewWrapLayout(float32(a.cfg.Gallery.HGap), float32(a.cfg.Gallery.VGap), func() float32 {
		if a.scroll == nil {
			return 0
		}
		return a.scroll.Size().Width
	}))
	a.scroll = container.NewVScroll(a.grid)

	a.galleryView = container.NewBorder(
		container.NewVBox(a.folderLabel, toolbar),
		nil, nil, nil,
		a.scroll,
	)

	a.mainWindow.SetContent(a.promptView)

	a.mainWindow.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyDelete {
			a.DeleteSelected()
		}
	})

	a.mainWindow.SetCloseIntercept(func() {
		a.saveGeometry()
		a.logRescanStatus("closing")
		a.rescanner.Stop()
		a.mainWindow.Close()
	})
}

// saveGeometry persists the window size and, where the platform reports it,
// its position.
func (a *App) saveGeometry() {
	geom := a.store.Geometry()
	size := a.mainWindow.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		geom.Width = int(size.Width)
		geom.Height = int(size.Height)
	}
	p, err := nativewin.Position(a.mainWindow)
	switch {
	case err == nil:
		geom.X, geom.Y = p.X, p.Y
	case errors.IsUnsupported(err):
		log.Debugf("window position not saved: %v", err)
	default:
		log.LogWithError(err).Warn("window position not saved")
	}
	a.store.SetGeometry(geom)
}

// OpenLastFolder reopens the saved folder if it is still a directory,
// otherwise it leaves the prompt showing.
func (a *App) OpenLastFolder() {
	last := a.store.LastFolder()
	if last == "" {
		return
	}
	if err := a.OpenFolder(last); err != nil {
		if errors.IsFileNotFound(err) {
			log.LogWithFields(log.F("folder", last)).Info("last folder is gone")
			return
		}
		log.LogWithError(err).Warn("cannot reopen last folder")
	}
}

// ChooseFolder asks for a folder and opens it.
func (a *App) ChooseFolder() {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		if uri == nil {
			return
		}
		if err := a.OpenFolder(uri.Path()); err != nil {
			dialog.ShowError(err, a.mainWindow)
		}
	}, a.mainWindow)

	if a.folder != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(a.folder)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}

// OpenFolder makes path the active folder: it is saved, the gallery starts
// over and rescanning moves to the new folder.
func (a *App) OpenFolder(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.NewFileError("invalid folder", path, errors.InvalidPath, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		kind := errors.FileNotFound
		if os.IsPermission(err) {
			kind = errors.FileAccessDenied
		}
		return errors.NewFileError("cannot open folder", abs, kind, err)
	}
	if !info.IsDir() {
		return errors.NewFileError("not a folder", abs, errors.InvalidPath, nil)
	}

	a.store.SetLastFolder(abs)
	a.clearEntries()
	a.folder = abs
	a.scanErrShown = false
	a.folderLabel.SetText("Current folder: " + abs)
	a.mainWindow.SetContent(a.galleryView)

	a.logRescanStatus("leaving folder")
	a.Rescan()
	if err := a.rescanner.Start(abs); err != nil {
		log.LogWithError(err).Error("cannot start rescanning")
	}
	log.LogWithFields(log.F("folder", abs), log.F("watching", a.rescanner.Status().Watching)).Info("folder opened")
	return nil
}

// logRescanStatus records how the active folder was kept fresh.
func (a *App) logRescanStatus(msg string) {
	st := a.rescanner.Status()
	if !st.Running {
		return
	}
	log.LogWithFields(
		log.F("folder", st.Folder),
		log.F("scans", st.Scans),
		log.F("last_scan", st.LastScan.Format(time.RFC3339)),
		log.F("watching", st.Watching),
	).Debug(msg)
}

func (a *App) clearEntries() {
	a.gallery.Clear()
	a.grid.Objects = nil
	a.grid.Refresh()
}

// Rescan reconciles the gallery with the active folder. A folder that cannot
// be listed is reported once until it can be listed again.
func (a *App) Rescan() {
	if a.folder == "" {
		return
	}
	res, err := a.syncer.Sync(a.gallery, a.folder)
	if err != nil {
		log.LogWithError(err).Warn("rescan failed")
		if !a.scanErrShown {
			a.scanErrShown = true
			msg := "Error while loading images"
			if !errors.IsScanFailed(err) {
				msg = "Unexpected error while loading images"
			}
			dialog.ShowError(errors.Wrap(err, msg), a.mainWindow)
		}
		return
	}
	a.scanErrShown = false
	if !res.Changed() {
		return
	}

	for _, e := range res.Removed {
		if obj, ok := e.Handle.(fyne.CanvasObject); ok {
			a.grid.Remove(obj)
		}
	}
	scale := a.mainWindow.Canvas().Scale()
	for _, e := range res.Added {
		t := newThumbnail(e.Path, e.Name, e.Thumb, scale)
		t.onTapped = a.selectEntry
		t.onDoubleTapped = a.OpenFullView
		e.Handle = t
		a.grid.Add(t)
	}
	a.scroll.Refresh()
}

// selectEntry marks path as the only selected thumbnail.
func (a *App) selectEntry(path string) {
	if prev, ok := a.gallery.Selected(); ok {
		if t, ok := prev.Handle.(*thumbnail); ok {
			t.SetSelected(false)
		}
	}
	if !a.gallery.Select(path) {
		return
	}
	if e, ok := a.gallery.Get(path); ok {
		if t, ok := e.Handle.(*thumbnail); ok {
			t.SetSelected(true)
		}
	}
	// Keep key presses on the window canvas so Delete reaches it
	a.mainWindow.Canvas().Unfocus()
}

// DeleteSelected deletes the selected image file and its thumbnail.
func (a *App) DeleteSelected() {
	e, ok := gallery.DeleteSelected(a.gallery)
	if !ok {
		return
	}
	if obj, ok := e.Handle.(fyne.CanvasObject); ok {
		a.grid.Remove(obj)
	}
	log.LogWithFields(log.F("file", e.Name)).Info("image deleted")
}
