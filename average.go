package mosaic

import "image"

// Average computes the representative color of an image, the arithmetic
// mean of each non-premultiplied channel over every pixel. It panics if the
// image has no pixels.
func Average(img image.Image) Color {
	b := img.Bounds()
	if b.Empty() {
		panic("mosaic: average of empty image")
	}

	var r, g, bl, a uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := nrgba64(img.At(x, y))
			r += uint64(c.R)
			g += uint64(c.G)
			bl += uint64(c.B)
			a += uint64(c.A)
		}
	}

	n := float64(b.Dx() * b.Dy())

	return Color{
		channel(float64(r) / n),
		channel(float64(g) / n),
		channel(float64(bl) / n),
		channel(float64(a) / n),
	}
}
