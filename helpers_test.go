package mosaic

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"testing"

	"github.com/bodgit/mosaic/tile"
	"github.com/stretchr/testify/require"
)

var errNoTile = errors.New("no such tile")

func uniform(w, h int, c color.Color) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(m, m.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return m
}

// memLoader serves already decoded tiles.
type memLoader map[string]image.Image

func (l memLoader) Load(ref string) (image.Image, error) {
	m, ok := l[ref]
	if !ok {
		return nil, &tile.DecodeError{Ref: ref, Err: errNoTile}
	}
	return m, nil
}

// pngLoader serves PNG encoded tiles and so can be used with a TileDB.
type pngLoader map[string][]byte

func newPNGLoader(t *testing.T, tiles map[string]image.Image) pngLoader {
	l := make(pngLoader, len(tiles))
	for ref, m := range tiles {
		b := new(bytes.Buffer)
		require.NoError(t, png.Encode(b, m))
		l[ref] = b.Bytes()
	}
	return l
}

func (l pngLoader) Open(ref string) (io.ReadCloser, error) {
	b, ok := l[ref]
	if !ok {
		return nil, &tile.DecodeError{Ref: ref, Err: errNoTile}
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (l pngLoader) Load(ref string) (image.Image, error) {
	rc, err := l.Open(ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return tile.Decode(ref, rc)
}
