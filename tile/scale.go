package tile

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Scale resizes m to exactly width by height pixels. If fit is true the
// aspect ratio is preserved instead and the result is the largest image that
// fits within width by height, scaling up if necessary.
func Scale(m image.Image, width, height int, filter imaging.ResampleFilter, fit bool) *image.NRGBA {
	if fit {
		width, height = fitSize(m.Bounds().Size(), width, height)
	}
	return imaging.Resize(m, width, height, filter)
}

func fitSize(src image.Point, width, height int) (int, int) {
	if src.X <= 0 || src.Y <= 0 {
		return width, height
	}

	ratio := math.Min(float64(width)/float64(src.X), float64(height)/float64(src.Y))

	w := int(math.Max(1, math.Round(float64(src.X)*ratio)))
	h := int(math.Max(1, math.Round(float64(src.Y)*ratio)))
	if w > width {
		w = width
	}
	if h > height {
		h = height
	}
	return w, h
}
