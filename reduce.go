package mosaic

import (
	"image"
	"image/color"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"
)

// Reduce returns a palette of at most n entries chosen to cover the color
// range of p. The representative colors are median-cut quantized to n colors
// and each quantized color keeps the entry closest to it. Entries keep their
// original relative order. If n is not positive or p already has n or fewer
// entries, p is returned unchanged.
func (p *Palette) Reduce(n int) *Palette {
	if n <= 0 || n >= len(p.entries) {
		return p
	}

	m := image.NewNRGBA(image.Rect(0, 0, len(p.entries), 1))
	for i, e := range p.entries {
		m.SetNRGBA(i, 0, e.Color.NRGBA())
	}

	q := quantize.MedianCutQuantizer{}

	seen := make(map[int]struct{}, n)
	var indices []int
	for _, c := range q.Quantize(make(color.Palette, 0, n), m) {
		i := p.Index(color.NRGBAModel.Convert(c).(color.NRGBA))
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		indices = append(indices, i)
	}
	if len(indices) == 0 {
		return p
	}
	sort.Ints(indices)

	entries := make([]Entry, len(indices))
	for i, idx := range indices {
		entries[i] = p.entries[idx]
	}

	return &Palette{
		entries: entries,
	}
}
