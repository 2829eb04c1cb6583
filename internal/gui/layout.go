package gui

import (
	"math"

	"fyne.io/fyne/v2"
)

// WrapLayout places objects left to right and starts a new row when the next
// object would not fit the target width. Rows are as tall as their tallest
// object. It keeps no state between calls.
type WrapLayout struct {
	HGap, VGap float32

	// Width returns the width to wrap at. Zero or a nil func means the
	// container has not been sized yet and everything goes on one row.
	Width func() float32
}

// NewWrapLayout returns a WrapLayout wrapping at width().
func NewWrapLayout(hgap, vgap float32, width func() float32) *WrapLayout {
	return &WrapLayout{HGap: hgap, VGap: vgap, Width: width}
}

func (l *WrapLayout) targetWidth() float32 {
	if l.Width == nil {
		return 0
	}
	return l.Width()
}

// rows greedily packs the visible objects for a target width. size picks the
// per-object size to pack by.
func (l *WrapLayout) rows(objects []fyne.CanvasObject, width float32, size func(fyne.CanvasObject) fyne.Size) [][]fyne.CanvasObject {
	maxWidth := float32(math.MaxFloat32)
	if width > 0 {
		maxWidth = width - 2*l.HGap
	}

	var rows [][]fyne.CanvasObject
	var row []fyne.CanvasObject
	var x float32
	for _, o := range objects {
		if !o.Visible() {
			continue
		}
		d := size(o)
		// An object wider than the row still gets a row of its own
		if len(row) > 0 && x+d.Width > maxWidth {
			rows = append(rows, row)
			row = nil
			x = 0
		}
		row = append(row, o)
		x += d.Width + l.HGap
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// measure returns the widest row (including outer gaps) and the total
// height: one gap above the first row, one between rows, none below.
func (l *WrapLayout) measure(objects []fyne.CanvasObject, width float32, size func(fyne.CanvasObject) fyne.Size) (float32, float32) {
	widest := float32(0)
	height := l.VGap
	for i, row := range l.rows(objects, width, size) {
		if i > 0 {
			height += l.VGap
		}
		var rowW, rowH float32
		for j, o := range row {
			d := size(o)
			if j > 0 {
				rowW += l.HGap
			}
			rowW += d.Width
			rowH = max(rowH, d.Height)
		}
		widest = max(widest, rowW+2*l.HGap)
		height += rowH
	}
	return widest, height
}

// PreferredSize is the target width and the height needed to show every row
// at that width. With no target width it is the single-row width.
func (l *WrapLayout) PreferredSize(objects []fyne.CanvasObject, width float32) fyne.Size {
	widest, height := l.measure(objects, width, fyne.CanvasObject.MinSize)
	if width <= 0 {
		width = widest
	}
	return fyne.NewSize(width, height)
}

// MinimumSize is PreferredSize narrowed by one gap and one unit.
func (l *WrapLayout) MinimumSize(objects []fyne.CanvasObject, width float32) fyne.Size {
	s := l.PreferredSize(objects, width)
	s.Width -= l.HGap + 1
	return s
}

// MinSize lets a vertical scroller shrink to the widest object while
// growing tall enough for every row at the current width.
func (l *WrapLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	widest := float32(0)
	for _, o := range objects {
		if o.Visible() {
			widest = max(widest, o.MinSize().Width)
		}
	}
	pref := l.PreferredSize(objects, l.targetWidth())
	return fyne.NewSize(widest+2*l.HGap, pref.Height)
}

// Layout positions the objects for the container size.
func (l *WrapLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	y := l.VGap
	for i, row := range l.rows(objects, size.Width, fyne.CanvasObject.MinSize) {
		if i > 0 {
			y += l.VGap
		}
		x := l.HGap
		var rowH float32
		for _, o := range row {
			d := o.MinSize()
			o.Resize(d)
			o.Move(fyne.NewPos(x, y))
			x += d.Width + l.HGap
			rowH = max(rowH, d.Height)
		}
		y += rowH
	}
}
