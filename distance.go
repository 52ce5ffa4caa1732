package mosaic

// QuantizationFactor is the fixed factor passed to Distance for every palette
// lookup.
const QuantizationFactor float32 = 64

// Distance returns a redmean-style perceptual distance between two colors,
// smaller meaning more similar. The alpha term never reaches zero so
// identical colors are 261120 apart, not 0.
//
// q and qf only matter for error diffusion tie-breaking; when qf > 0 the
// value q/qf is added before truncating to an integer.
func Distance(c1, c2 Color, q uint64, qf float32) uint64 {
	dr := c2[0] - c1[0]
	dg := c2[1] - c1[1]
	db := c2[2] - c1[2]
	da := c2[3] - c1[3]

	r := (c1[0] + c2[0]) / 2

	wr := (2 + r/256) * dr * dr
	wg := 4 * dg * dg
	wb := (2 + (255-r)/256) * db * db
	wa := 255 - da/256

	d := (wr + wg + wb + wa) * 1024
	if qf > 0 {
		d += float32(q) / qf
	}
	if d < 0 {
		return 0
	}
	return uint64(d)
}
