package mosaic

import (
	"image/color"
	"math"
)

// Color is a non-premultiplied RGBA color with each channel normalized to
// the range [0, 1].
type Color [4]float32

// channel scales a 16-bit channel value into [0, 1]. Both FromColor and
// Average go through here so a uniform tile averages to exactly the color of
// its pixels.
func channel(v float64) float32 {
	return float32(v / 0xffff)
}

func toByte(v float32) uint8 {
	switch f := math.Round(float64(v) * 0xff); {
	case f < 0:
		return 0
	case f > 0xff:
		return 0xff
	default:
		return uint8(f)
	}
}

// nrgba64 avoids the premultiplied round trip for colors that are already
// non-premultiplied, so translucent pixels keep their exact channel values.
func nrgba64(c color.Color) color.NRGBA64 {
	switch c := c.(type) {
	case color.NRGBA:
		return color.NRGBA64{
			R: uint16(c.R) * 0x101,
			G: uint16(c.G) * 0x101,
			B: uint16(c.B) * 0x101,
			A: uint16(c.A) * 0x101,
		}
	case color.NRGBA64:
		return c
	default:
		return color.NRGBA64Model.Convert(c).(color.NRGBA64)
	}
}

// FromColor converts any color.Color into a Color.
func FromColor(c color.Color) Color {
	n := nrgba64(c)
	return Color{
		channel(float64(n.R)),
		channel(float64(n.G)),
		channel(float64(n.B)),
		channel(float64(n.A)),
	}
}

// NRGBA returns the 8-bit form of c, rounding and clamping each channel.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{toByte(c[0]), toByte(c[1]), toByte(c[2]), toByte(c[3])}
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	return c.NRGBA().RGBA()
}
