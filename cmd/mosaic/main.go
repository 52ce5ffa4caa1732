package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bodgit/mosaic"
	"github.com/bodgit/mosaic/cache"
	"github.com/bodgit/mosaic/tile"
	"github.com/disintegration/imaging"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newMosaic(c *cli.Context) (*mosaic.Mosaic, func() error, error) {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	if c.String("db") == "" {
		return mosaic.New(tile.FileLoader{}, nil, logger), func() error { return nil }, nil
	}

	db, err := mosaic.NewTileDB(c.String("db"))
	if err != nil {
		return nil, nil, err
	}

	return mosaic.New(tile.FileLoader{}, db, logger), db.Close, nil
}

// loadPalette prefers an existing cache file, otherwise it builds the
// palette from the tiles in dir and writes the cache file if one was named.
func loadPalette(ctx context.Context, m *mosaic.Mosaic, dir, file string) (*mosaic.Palette, error) {
	if file != "" {
		p, err := cache.Load(file)
		switch {
		case err == nil:
			return p, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}

	if dir == "" {
		return nil, errors.New("no palette directory given")
	}

	refs, err := tile.List(dir)
	if err != nil {
		return nil, err
	}

	p, err := m.BuildPalette(ctx, refs)
	if err != nil {
		return nil, err
	}

	if file != "" {
		if err := cache.Save(file, p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func generate(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m, closer, err := newMosaic(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer closer()

	src, err := tile.FileLoader{}.Load(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	p, err := loadPalette(c.Context, m, c.String("palette"), c.String("cache"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	p = p.Reduce(c.Int("limit"))

	out, err := m.Compose(c.Context, src, p, mosaic.Options{
		Scale:      c.Float64("scale"),
		TileWidth:  c.Int("tile-width"),
		TileHeight: c.Int("tile-height"),
		Dither:     c.Bool("dither"),
		Filter:     c.String("filter"),
		Fit:        c.Bool("fit"),
		Workers:    c.Int("workers"),
	})
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := imaging.Save(out, c.String("output")); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func palette(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m, closer, err := newMosaic(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer closer()

	refs, err := tile.List(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	p, err := m.BuildPalette(c.Context, refs)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := cache.Save(c.String("cache"), p.Reduce(c.Int("limit"))); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func show(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	p, err := cache.Load(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	for _, e := range p.Entries() {
		n := e.Color.NRGBA()
		fmt.Fprintf(c.App.Writer, "#%02x%02x%02x%02x\t%s\n", n.R, n.G, n.B, n.A, e.Ref)
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "mosaic"
	app.Usage = "Photo mosaic generator"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"MOSAIC_DB"},
			Usage:   "path to database of cached tile averages",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	limitFlag := &cli.IntFlag{
		Name:  "limit",
		Usage: "reduce the palette to at most `N` tiles",
	}

	app.Commands = []*cli.Command{
		{
			Name:        "generate",
			Usage:       "Generate a mosaic from an image",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "output",
					Aliases:  []string{"o"},
					Usage:    "write mosaic to `FILE`, the format is chosen by extension",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "palette",
					Usage: "`DIRECTORY` of tile images",
				},
				&cli.StringFlag{
					Name:  "cache",
					Usage: "read the palette from `FILE` if it exists, otherwise write it there",
				},
				&cli.IntFlag{
					Name:     "tile-width",
					Aliases:  []string{"palette-width"},
					Usage:    "width of each tile in the output",
					Required: true,
				},
				&cli.IntFlag{
					Name:     "tile-height",
					Aliases:  []string{"palette-height"},
					Usage:    "height of each tile in the output",
					Required: true,
				},
				&cli.Float64Flag{
					Name:  "scale",
					Value: 1.0,
					Usage: "scale of the output relative to the input image",
				},
				&cli.BoolFlag{
					Name:    "dither",
					Aliases: []string{"d"},
					Usage:   "enable dithering",
				},
				limitFlag,
				&cli.StringFlag{
					Name:  "filter",
					Value: tile.DefaultFilter,
					Usage: fmt.Sprintf("resampling filter, one of %v", tile.FilterNames()),
				},
				&cli.BoolFlag{
					Name:  "fit",
					Usage: "preserve the aspect ratio of each tile",
				},
				&cli.IntFlag{
					Name:  "workers",
					Usage: "number of rows to compose concurrently",
				},
			},
			Action: generate,
		},
		{
			Name:        "palette",
			Usage:       "Build a palette cache file from a directory of tiles",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "cache",
					Value: cache.Filename,
					Usage: "write the palette to `FILE`",
				},
				limitFlag,
			},
			Action: palette,
		},
		{
			Name:        "show",
			Usage:       "List the tiles and colors in a palette cache file",
			Description: "",
			ArgsUsage:   "FILE",
			Action:      show,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
