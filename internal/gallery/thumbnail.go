package gallery

import (
	"image"
	"io/fs"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"imagehelper/internal/errors"
)

// ThumbnailSize is the edge of the box thumbnails are fitted into.
const ThumbnailSize = 100

// Decode reads an image file, applying any EXIF orientation.
func Decode(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewFileError("image is gone", path, errors.FileNotFound, err)
		}
		return nil, errors.NewFileError("cannot decode image", path, errors.DecodeFailed, err)
	}
	return img, nil
}

// FitSize scales w x h uniformly into a box x box square. The scale is
// min(box/w, box/h) and each side is floored, so the longer side becomes
// exactly box. Smaller images are scaled up.
func FitSize(w, h, box int) (int, int) {
	if w <= 0 || h <= 0 || box <= 0 {
		return 0, 0
	}
	if w >= h {
		return box, h * box / w
	}
	return w * box / h, box
}

// Thumbnail returns img resampled to its FitSize within box. A side that
// floors to zero is drawn one pixel wide.
func Thumbnail(img image.Image, box int) image.Image {
	b := img.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), box)
	w, h = max(w, 1), max(h, 1)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
