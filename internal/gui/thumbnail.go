package gui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

var (
	selectedBorder   = color.NRGBA{R: 255, A: 255}
	unselectedBorder = color.Transparent
)

const thumbnailBorder = 1

// thumbnail shows one gallery entry. A tap selects it, a double tap opens
// the full view.
type thumbnail struct {
	widget.BaseWidget

	path     string
	name     string
	image    *canvas.Image
	border   *canvas.Rectangle
	selected bool

	onTapped       func(path string)
	onDoubleTapped func(path string)
}

func newThumbnail(path, name string, img image.Image, scale float32) *thumbnail {
	b := img.Bounds()
	pic := canvas.NewImageFromImage(img)
	pic.FillMode = canvas.ImageFillContain
	// Thumbnails are sized in pixels; keep them pixel sized on scaled canvases
	if scale <= 0 {
		scale = 1
	}
	pic.SetMinSize(fyne.NewSize(float32(b.Dx())/scale, float32(b.Dy())/scale))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = unselectedBorder
	border.StrokeWidth = thumbnailBorder

	t := &thumbnail{path: path, name: name, image: pic, border: border}
	t.ExtendBaseWidget(t)
	return t
}

// Name returns the file name shown by this thumbnail.
func (t *thumbnail) Name() string {
	return t.name
}

func (t *thumbnail) Selected() bool {
	return t.selected
}

// SetSelected toggles the selection border.
func (t *thumbnail) SetSelected(selected bool) {
	if t.selected == selected {
		return
	}
	t.selected = selected
	if selected {
		t.border.StrokeColor = selectedBorder
	} else {
		t.border.StrokeColor = unselectedBorder
	}
	t.border.Refresh()
}

func (t *thumbnail) Tapped(*fyne.PointEvent) {
	if t.onTapped != nil {
		t.onTapped(t.path)
	}
}

func (t *thumbnail) DoubleTapped(*fyne.PointEvent) {
	if t.onDoubleTapped != nil {
		t.onDoubleTapped(t.path)
	}
}

func (t *thumbnail) CreateRenderer() fyne.WidgetRenderer {
	return &thumbnailRenderer{t: t, objects: []fyne.CanvasObject{t.image, t.border}}
}

type thumbnailRenderer struct {
	t       *thumbnail
	objects []fyne.CanvasObject
}

func (r *thumbnailRenderer) Layout(size fyne.Size) {
	r.t.border.Resize(size)
	r.t.border.Move(fyne.NewPos(0, 0))
	r.t.image.Resize(size.SubtractWidthHeight(2*thumbnailBorder, 2*thumbnailBorder))
	r.t.image.Move(fyne.NewPos(thumbnailBorder, thumbnailBorder))
}

func (r *thumbnailRenderer) MinSize() fyne.Size {
	return r.t.image.MinSize().AddWidthHeight(2*thumbnailBorder, 2*thumbnailBorder)
}

func (r *thumbnailRenderer) Refresh() {
	r.t.image.Refresh()
	r.t.border.Refresh()
}

func (r *thumbnailRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *thumbnailRenderer) Destroy() {}
