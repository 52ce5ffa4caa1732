package mosaic

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/bodgit/mosaic/tile"
	"github.com/disintegration/imaging"
)

// ErrTooSmall is returned when the scaled source image is smaller than a
// single tile in either direction.
var ErrTooSmall = errors.New("mosaic: image is smaller than one tile")

// Options control how a mosaic is composed.
type Options struct {
	// Scale is applied to the source dimensions to give the output
	// dimensions. Zero means 1.
	Scale float64
	// TileWidth and TileHeight are the size in output pixels of each tile.
	TileWidth  int
	TileHeight int
	// Dither enables Floyd-Steinberg error diffusion over the tile grid
	// before tiles are matched.
	Dither bool
	// Filter names the resampling filter, see tile.FilterNames. Empty
	// means tile.DefaultFilter.
	Filter string
	// Fit scales tiles preserving their aspect ratio rather than
	// stretching them to fill the cell.
	Fit bool
	// Workers is the number of rows composed concurrently. Zero means
	// runtime.NumCPU().
	Workers int
}

type tileCache struct {
	loader tile.Loader
	width  int
	height int
	filter imaging.ResampleFilter
	fit    bool

	mu    sync.Mutex
	tiles map[string]*image.NRGBA
}

func (c *tileCache) get(ref string) (*image.NRGBA, error) {
	c.mu.Lock()
	t, ok := c.tiles[ref]
	c.mu.Unlock()
	if ok {
		return t, nil
	}

	img, err := c.loader.Load(ref)
	if err != nil {
		return nil, decodeError(ref, err)
	}
	t = tile.Scale(img, c.width, c.height, c.filter, c.fit)

	c.mu.Lock()
	c.tiles[ref] = t
	c.mu.Unlock()

	return t, nil
}

func (m *Mosaic) rowWorker(ctx context.Context, cancel context.CancelFunc, in <-chan int, grid *image.NRGBA, canvas *image.NRGBA, p *Palette, tiles *tileCache, done *int64) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		rows := grid.Bounds().Dy()
		for y := range in {
			for x := 0; x < grid.Bounds().Dx(); x++ {
				e := p.Nearest(FromColor(grid.NRGBAAt(x, y)))

				t, err := tiles.get(e.Ref)
				if err != nil {
					cancel()
					errc <- err
					return
				}

				pt := image.Pt(x*tiles.width, y*tiles.height)
				draw.Draw(canvas, image.Rectangle{Min: pt, Max: pt.Add(t.Bounds().Size())}, t, t.Bounds().Min, draw.Src)
			}

			n := atomic.AddInt64(done, 1)
			m.logger.Printf("mapping pixels: %.2f%%\n", float64(n)/float64(rows)*100)

			if ctx.Err() != nil {
				return
			}
		}
	}()
	return errc
}

// Compose recreates src as a mosaic of the tiles in p. The source is scaled
// by opts.Scale, divided into cells of opts.TileWidth by opts.TileHeight
// pixels and each cell replaced with the tile whose color is closest to that
// of the cell. Any remainder along the right and bottom edges is left
// transparent.
//
// If any tile cannot be loaded the whole composition fails with a
// *tile.DecodeError.
func (m *Mosaic) Compose(ctx context.Context, src image.Image, p *Palette, opts Options) (*image.NRGBA, error) {
	if opts.TileWidth <= 0 || opts.TileHeight <= 0 {
		return nil, fmt.Errorf("mosaic: invalid tile size %dx%d", opts.TileWidth, opts.TileHeight)
	}

	scale := opts.Scale
	switch {
	case scale == 0:
		scale = 1
	case scale < 0:
		return nil, fmt.Errorf("mosaic: invalid scale %v", scale)
	}

	name := opts.Filter
	if name == "" {
		name = tile.DefaultFilter
	}
	filter, err := tile.ParseFilter(name)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	b := src.Bounds()
	width := int(float64(b.Dx()) * scale)
	height := int(float64(b.Dy()) * scale)

	gridWidth, gridHeight := width/opts.TileWidth, height/opts.TileHeight
	if gridWidth == 0 || gridHeight == 0 {
		return nil, ErrTooSmall
	}

	// One pixel per cell, this is the color each tile is matched against
	grid := imaging.Resize(src, gridWidth, gridHeight, filter)

	if opts.Dither {
		Dither(grid, p)
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))

	tiles := &tileCache{
		loader: m.loader,
		width:  opts.TileWidth,
		height: opts.TileHeight,
		filter: filter,
		fit:    opts.Fit,
		tiles:  make(map[string]*image.NRGBA),
	}

	wctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var done int64

	rows := produceJobs(wctx, gridHeight)

	var errcList []<-chan error
	for i := 0; i < workers; i++ {
		errcList = append(errcList, m.rowWorker(wctx, cancelFunc, rows, grid, canvas, p, tiles, &done))
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return canvas, nil
}
