/*
Package mosaic builds photo mosaics: a source image is recreated as a grid of
smaller tile images, each chosen because its average color best matches the
region of the source it replaces.

A Palette holds every candidate tile together with its representative color
and answers nearest-color queries using a perceptual distance. Mosaic ties a
tile loader, an optional TileDB of cached averages and a logger together to
build palettes and compose the final image.
*/
package mosaic

import (
	"io"
	"log"

	"github.com/bodgit/mosaic/tile"
)

type Mosaic struct {
	loader tile.Loader
	db     *TileDB
	logger *log.Logger
}

// New returns a Mosaic that resolves tile references with loader. db may be
// nil, in which case every tile is decoded to compute its average. A nil
// logger discards all output.
func New(loader tile.Loader, db *TileDB, logger *log.Logger) *Mosaic {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Mosaic{
		loader: loader,
		db:     db,
		logger: logger,
	}
}
