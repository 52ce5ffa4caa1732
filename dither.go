package mosaic

import (
	"image"
	"image/color"
)

// ColorMap maps arbitrary colors onto a limited set. Palette implements it.
type ColorMap interface {
	Index(c color.NRGBA) int
	Map(c *color.NRGBA)
}

// Dither reduces img in place to the colors of m using Floyd-Steinberg error
// diffusion. Only the red, green and blue error is diffused, in whole 8-bit
// steps, with neighbours outside the image skipped.
func Dither(img *image.NRGBA, m ColorMap) {
	b := img.Bounds()

	diffuse := func(x, y int, e [3]int, k int) {
		if !image.Pt(x, y).In(b) {
			return
		}
		i := img.PixOffset(x, y)
		for j := range e {
			v := int(img.Pix[i+j]) + e[j]*k/16
			switch {
			case v < 0:
				v = 0
			case v > 0xff:
				v = 0xff
			}
			img.Pix[i+j] = uint8(v)
		}
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			old := img.NRGBAAt(x, y)
			c := old
			m.Map(&c)
			img.SetNRGBA(x, y, c)

			e := [3]int{
				int(old.R) - int(c.R),
				int(old.G) - int(c.G),
				int(old.B) - int(c.B),
			}
			if e == [3]int{} {
				continue
			}

			diffuse(x+1, y, e, 7)
			diffuse(x-1, y+1, e, 3)
			diffuse(x, y+1, e, 5)
			diffuse(x+1, y+1, e, 1)
		}
	}
}
