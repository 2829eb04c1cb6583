package gui

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"imagehelper/internal/errors"
	"imagehelper/internal/gallery"
	"imagehelper/internal/log"
	"imagehelper/internal/nativewin"
	"imagehelper/internal/viewer"
)

// fullView is the content of a borderless image window. Dragging the
// bottom-right corner resizes the window, dragging elsewhere moves it and a
// double tap closes it.
type fullView struct {
	widget.BaseWidget

	win         fyne.Window
	image       *canvas.Image
	background  *canvas.Rectangle
	interaction *viewer.Interaction
	inZone      bool

	// swapped out in tests, which have no native window
	resize     func(fyne.Size)
	move       func(fyne.Position)
	positionOf func() (fyne.Position, bool)
}

func newFullView(win fyne.Window, img image.Image, margin, minWidth float32) *fullView {
	b := img.Bounds()
	pic := canvas.NewImageFromImage(img)
	pic.FillMode = canvas.ImageFillContain
	pic.ScaleMode = canvas.ImageScaleSmooth

	v := &fullView{
		win:         win,
		image:       pic,
		background:  canvas.NewRectangle(color.Black),
		interaction: viewer.NewInteraction(b.Dx(), b.Dy(), margin, minWidth),
	}
	v.resize = v.resizeWindow
	v.move = v.moveWindow
	v.positionOf = v.windowPosition
	v.ExtendBaseWidget(v)
	return v
}

func (v *fullView) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	winPos, ok := v.positionOf()
	mode := v.interaction.Press(ev.Position, v.Size(), winPos)
	if mode == viewer.Moving && !ok {
		// Without a native position the window cannot follow the pointer
		v.interaction.Release()
	}
}

func (v *fullView) MouseUp(*desktop.MouseEvent) {
	v.interaction.Release()
}

func (v *fullView) Dragged(ev *fyne.DragEvent) {
	act := v.interaction.Drag(ev.Position)
	switch {
	case act.Resize:
		v.resize(act.Size)
	case act.Move:
		v.move(act.Pos)
	}
}

func (v *fullView) DragEnd() {
	v.interaction.Release()
}

func (v *fullView) DoubleTapped(*fyne.PointEvent) {
	v.win.Close()
}

func (v *fullView) MouseIn(ev *desktop.MouseEvent) {
	v.MouseMoved(ev)
}

func (v *fullView) MouseMoved(ev *desktop.MouseEvent) {
	v.inZone = v.interaction.InResizeZone(ev.Position, v.Size())
}

func (v *fullView) MouseOut() {
	v.inZone = false
}

// Cursor shows a resize cursor over the corner handle.
func (v *fullView) Cursor() desktop.Cursor {
	if v.inZone || v.interaction.Mode() == viewer.Resizing {
		return desktop.HResizeCursor
	}
	return desktop.DefaultCursor
}

func (v *fullView) resizeWindow(size fyne.Size) {
	v.win.Resize(size)
	// The image keeps its aspect inside the new viewport
	v.image.Refresh()
}

func (v *fullView) canvasScale() float32 {
	if c := v.win.Canvas(); c != nil && c.Scale() > 0 {
		return c.Scale()
	}
	return 1
}

func (v *fullView) moveWindow(pos fyne.Position) {
	scale := v.canvasScale()
	p := image.Pt(int(math.Round(float64(pos.X*scale))), int(math.Round(float64(pos.Y*scale))))
	if err := nativewin.Move(v.win, p); err != nil && !errors.IsUnsupported(err) {
		log.LogWithError(err).Debug("cannot move full view")
	}
}

func (v *fullView) windowPosition() (fyne.Position, bool) {
	p, err := nativewin.Position(v.win)
	if err != nil {
		log.LogWithError(err).Debug("cannot read full view position")
		return fyne.Position{}, false
	}
	scale := v.canvasScale()
	return fyne.NewPos(float32(p.X)/scale, float32(p.Y)/scale), true
}

func (v *fullView) CreateRenderer() fyne.WidgetRenderer {
	return &fullViewRenderer{v: v, objects: []fyne.CanvasObject{v.background, v.image}}
}

type fullViewRenderer struct {
	v       *fullView
	objects []fyne.CanvasObject
}

func (r *fullViewRenderer) Layout(size fyne.Size) {
	r.v.background.Resize(size)
	fit := viewer.FitSize(size, r.v.interaction.Aspect)
	r.v.image.Resize(fit)
	r.v.image.Move(fyne.NewPos((size.Width-fit.Width)/2, (size.Height-fit.Height)/2))
}

func (r *fullViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(1, 1)
}

func (r *fullViewRenderer) Refresh() {
	r.v.background.Refresh()
	r.v.image.Refresh()
}

func (r *fullViewRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *fullViewRenderer) Destroy() {}

// OpenFullView shows path in a borderless window at its natural size,
// centred and kept on top. A decode failure is reported in a dialog on
// parent and no window opens.
func (a *App) OpenFullView(path string) {
	img, err := gallery.Decode(path)
	if err != nil {
		log.LogWithError(err).Warn("cannot open full view")
		msg := "Could not display the image"
		if errors.IsFileNotFound(err) {
			msg = "The image no longer exists"
		}
		dialog.ShowError(errors.Wrap(err, msg), a.mainWindow)
		return
	}

	w := a.newBorderlessWindow("Image")
	view := newFullView(w, img, float32(a.cfg.Viewer.ResizeMargin), float32(a.cfg.Viewer.MinWidth))
	w.SetContent(view)

	scale := a.mainWindow.Canvas().Scale()
	if scale <= 0 {
		scale = 1
	}
	b := img.Bounds()
	w.Resize(fyne.NewSize(float32(b.Dx())/scale, float32(b.Dy())/scale))
	w.CenterOnScreen()
	w.Show()
	if err := nativewin.SetTopmost(w); err != nil {
		log.LogWithError(err).Debug("full view is not topmost")
	}
}

// newBorderlessWindow returns an undecorated window where the driver
// supports one.
func (a *App) newBorderlessWindow(title string) fyne.Window {
	if drv, ok := a.fyneApp.Driver().(desktop.Driver); ok {
		w := drv.CreateSplashWindow()
		w.SetPadded(false)
		return w
	}
	w := a.fyneApp.NewWindow(title)
	w.SetPadded(false)
	return w
}
