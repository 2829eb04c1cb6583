package capture

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionLifecycle(t *testing.T) {
	var s Selection
	assert.Equal(t, Idle, s.State())
	assert.False(t, s.Drag(image.Pt(10, 10)), "drag before press is ignored")

	s.Press(image.Pt(50, 50))
	assert.Equal(t, Dragging, s.State())

	assert.True(t, s.Drag(image.Pt(90, 80)))
	assert.Equal(t, image.Rect(50, 50, 90, 80), s.Rect())

	r, ok := s.Release(image.Pt(150, 120))
	assert.True(t, ok)
	assert.Equal(t, image.Rect(50, 50, 150, 120), r)
	assert.Equal(t, 100, r.Dx())
	assert.Equal(t, 70, r.Dy())
	assert.Equal(t, Capturing, s.State())

	_, ok = s.Release(image.Pt(150, 120))
	assert.False(t, ok, "second release does nothing")

	s.Reset()
	assert.Equal(t, Idle, s.State())
}

func TestSelectionDegenerate(t *testing.T) {
	tests := []struct {
		name       string
		start, end image.Point
	}{
		{"click without drag", image.Pt(40, 40), image.Pt(40, 40)},
		{"zero width", image.Pt(40, 10), image.Pt(40, 90)},
		{"zero height", image.Pt(10, 40), image.Pt(90, 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Selection
			s.Press(tt.start)
			_, ok := s.Release(tt.end)
			assert.False(t, ok)
		})
	}

	var s Selection
	_, ok := s.Release(image.Pt(5, 5))
	assert.False(t, ok, "release without press")
}

func TestNormalize(t *testing.T) {
	want := image.Rect(50, 50, 150, 120)
	assert.Equal(t, want, Normalize(image.Pt(50, 50), image.Pt(150, 120)))
	assert.Equal(t, want, Normalize(image.Pt(150, 120), image.Pt(50, 50)))
	assert.Equal(t, want, Normalize(image.Pt(150, 50), image.Pt(50, 120)))
	assert.Equal(t, want, Normalize(image.Pt(50, 120), image.Pt(150, 50)))
}

func TestScreenPoint(t *testing.T) {
	assert.Equal(t, image.Pt(50, 50), ScreenPoint(50, 50, 1, image.Point{}))
	assert.Equal(t, image.Pt(100, 61), ScreenPoint(50, 30.4, 2, image.Point{}))
	assert.Equal(t, image.Pt(1970, 15), ScreenPoint(50, 15, 1, image.Pt(1920, 0)))
}
