package gui

import (
	"image"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"imagehelper/internal/capture"
	"imagehelper/internal/errors"
	"imagehelper/internal/log"
	"imagehelper/internal/nativewin"
)

// Screen grabs pixels and reports the area the overlay covers.
type Screen interface {
	capture.Grabber
	Bounds() (image.Rectangle, error)
}

var (
	veilColor    = color.NRGBA{A: 50}
	outlineColor = color.NRGBA{R: 255, A: 255}
)

// captureOverlay covers the screen and lets the user drag out a rectangle.
// It shows a still of the screen under a dark veil since fyne windows
// cannot be translucent.
type captureOverlay struct {
	widget.BaseWidget

	sel    capture.Selection
	origin image.Point
	scale  func() float32

	backdrop *canvas.Image
	veil     *canvas.Rectangle
	outline  *canvas.Rectangle

	start, end fyne.Position

	onRelease func(region image.Rectangle, ok bool)
}

func newCaptureOverlay(origin image.Point, backdrop image.Image, scale func() float32) *captureOverlay {
	o := &captureOverlay{
		origin: origin,
		scale:  scale,
		veil:   canvas.NewRectangle(veilColor),
	}
	if backdrop != nil {
		o.backdrop = canvas.NewImageFromImage(backdrop)
		o.backdrop.FillMode = canvas.ImageFillStretch
	}
	o.outline = canvas.NewRectangle(color.Transparent)
	o.outline.StrokeColor = outlineColor
	o.outline.StrokeWidth = 1
	o.outline.Hide()

	o.ExtendBaseWidget(o)
	return o
}

func (o *captureOverlay) toScreen(p fyne.Position) image.Point {
	scale := float32(1)
	if o.scale != nil && o.scale() > 0 {
		scale = o.scale()
	}
	return capture.ScreenPoint(p.X, p.Y, scale, o.origin)
}

func (o *captureOverlay) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	o.sel.Press(o.toScreen(ev.Position))
	o.start, o.end = ev.Position, ev.Position
	o.Refresh()
}

func (o *captureOverlay) Dragged(ev *fyne.DragEvent) {
	if o.sel.Drag(o.toScreen(ev.Position)) {
		o.end = ev.Position
		o.Refresh()
	}
}

func (o *captureOverlay) MouseUp(ev *desktop.MouseEvent) {
	o.release(ev.Position)
}

// DragEnd carries no position, so the last dragged point ends the drag.
func (o *captureOverlay) DragEnd() {
	o.release(o.end)
}

func (o *captureOverlay) release(p fyne.Position) {
	if o.sel.State() != capture.Dragging {
		return
	}
	o.end = p
	region, ok := o.sel.Release(o.toScreen(p))
	o.Refresh()
	if o.onRelease != nil {
		o.onRelease(region, ok)
	}
}

func (o *captureOverlay) Cursor() desktop.Cursor {
	return desktop.CrosshairCursor
}

func (o *captureOverlay) CreateRenderer() fyne.WidgetRenderer {
	var objects []fyne.CanvasObject
	if o.backdrop != nil {
		objects = append(objects, o.backdrop)
	}
	objects = append(objects, o.veil, o.outline)
	return &overlayRenderer{o: o, objects: objects}
}

type overlayRenderer struct {
	o       *captureOverlay
	objects []fyne.CanvasObject
}

func (r *overlayRenderer) Layout(size fyne.Size) {
	if r.o.backdrop != nil {
		r.o.backdrop.Resize(size)
	}
	r.o.veil.Resize(size)
	r.placeOutline()
}

func (r *overlayRenderer) placeOutline() {
	o := r.o
	if o.sel.State() != capture.Dragging {
		o.outline.Hide()
		return
	}
	minX, minY := min(o.start.X, o.end.X), min(o.start.Y, o.end.Y)
	maxX, maxY := max(o.start.X, o.end.X), max(o.start.Y, o.end.Y)
	o.outline.Move(fyne.NewPos(minX, minY))
	o.outline.Resize(fyne.NewSize(maxX-minX, maxY-minY))
	o.outline.Show()
}

func (r *overlayRenderer) MinSize() fyne.Size {
	return fyne.NewSize(1, 1)
}

func (r *overlayRenderer) Refresh() {
	r.placeOutline()
	r.o.outline.Refresh()
}

func (r *overlayRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *overlayRenderer) Destroy() {}

// StartCapture hides the main window and, once it is gone, covers the screen
// with the capture overlay for the active folder.
func (a *App) StartCapture() {
	if a.folder == "" {
		return
	}
	folder := a.folder
	a.mainWindow.Hide()

	go func() {
		// The backdrop must not show the main window
		time.Sleep(a.cfg.HideDelay())
		bounds, backdrop := a.screenBackdrop()
		fyne.Do(func() {
			a.showOverlay(folder, bounds, backdrop)
		})
	}()
}

func (a *App) screenBackdrop() (image.Rectangle, image.Image) {
	bounds, err := a.screen.Bounds()
	if err != nil {
		log.LogWithError(err).Error("cannot find the screen")
		return image.Rectangle{}, nil
	}
	img, err := a.screen.Grab(bounds)
	if err != nil {
		log.LogWithError(err).Warn("cannot grab screen backdrop")
		return bounds, nil
	}
	return bounds, img
}

func (a *App) showOverlay(folder string, bounds image.Rectangle, backdrop image.Image) {
	if bounds.Empty() {
		a.mainWindow.Show()
		return
	}

	w := a.newBorderlessWindow("Capture")
	overlay := newCaptureOverlay(bounds.Min, backdrop, func() float32 { return w.Canvas().Scale() })

	// However the overlay goes away, the main window comes back exactly once
	var closed sync.Once
	w.SetOnClosed(func() {
		closed.Do(func() {
			if a.overlay == overlay {
				a.overlay = nil
			}
			a.mainWindow.Show()
		})
	})

	restore := func() {
		fyne.Do(func() {
			w.Close()
			a.Rescan()
		})
	}
	overlay.onRelease = func(region image.Rectangle, _ bool) {
		w.Hide()
		session := capture.NewSession(folder, a.screen, a.cfg.HideDelay(), restore)
		session.Prefix = a.cfg.Capture.FilePrefix
		session.Layout = a.cfg.Capture.TimestampLayout
		// Failures are logged by the session and the windows restored either way
		go func() {
			if _, err := session.Run(region); errors.IsInvalidRegion(err) {
				log.Debugf("capture cancelled: empty selection %v", region)
			}
		}()
	}

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			w.Close()
		}
	})
	w.SetContent(overlay)
	w.SetFullScreen(true)
	w.Show()
	if err := nativewin.SetTopmost(w); err != nil {
		log.LogWithError(err).Debug("capture overlay is not topmost")
	}
	a.overlay = overlay
}
