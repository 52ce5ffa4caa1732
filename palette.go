package mosaic

import (
	"errors"
	"image/color"
)

// ErrEmptyPalette is returned when a palette would have no entries.
var ErrEmptyPalette = errors.New("mosaic: palette has no entries")

// Entry pairs a tile reference with its representative color. The reference
// is opaque to the palette; it is only handed back to the caller.
type Entry struct {
	Ref   string
	Color Color
}

// Palette is an ordered, immutable set of entries. Lookups scan every entry
// and the first of several equally distant entries wins.
type Palette struct {
	entries []Entry
}

// NewPalette returns a palette holding a copy of entries in the given order.
func NewPalette(entries []Entry) (*Palette, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyPalette
	}
	return &Palette{
		entries: append([]Entry(nil), entries...),
	}, nil
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	return len(p.entries)
}

// Entry returns the entry at index i.
func (p *Palette) Entry(i int) Entry {
	return p.entries[i]
}

// Entries returns a copy of all entries.
func (p *Palette) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}

func (p *Palette) nearest(c Color) int {
	if len(p.entries) == 0 {
		panic("mosaic: lookup in empty palette")
	}
	best, bestDistance := 0, Distance(p.entries[0].Color, c, 0, QuantizationFactor)
	for i, e := range p.entries[1:] {
		if d := Distance(e.Color, c, 0, QuantizationFactor); d < bestDistance {
			best, bestDistance = i+1, d
		}
	}
	return best
}

// Nearest returns the entry whose color is closest to c.
func (p *Palette) Nearest(c Color) Entry {
	return p.entries[p.nearest(c)]
}

// Index returns the index of the entry closest to c.
func (p *Palette) Index(c color.NRGBA) int {
	return p.nearest(FromColor(c))
}

// Map replaces c with the color of the entry closest to it.
func (p *Palette) Map(c *color.NRGBA) {
	*c = p.entries[p.Index(*c)].Color.NRGBA()
}
