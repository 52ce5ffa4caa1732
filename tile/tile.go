/*
Package tile loads, decodes and scales the images used as mosaic tiles.

Tiles are referred to by an opaque string reference. FileLoader treats the
reference as a path on the local filesystem; any other source can be plugged
in by implementing Loader and, optionally, Opener.

Decoders for GIF, JPEG, PNG, BMP, TIFF and WebP are registered.
*/
package tile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultFilter is the resampling filter used when none is chosen.
const DefaultFilter = "gaussian"

var filters = map[string]imaging.ResampleFilter{
	"box":        imaging.Box,
	"catmullrom": imaging.CatmullRom,
	"gaussian":   imaging.Gaussian,
	"lanczos":    imaging.Lanczos,
	"linear":     imaging.Linear,
	"mitchell":   imaging.MitchellNetravali,
	"nearest":    imaging.NearestNeighbor,
}

// ParseFilter returns the resampling filter with the given name.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("tile: unknown filter %q, expected one of %s", name, strings.Join(FilterNames(), ", "))
	}
	return f, nil
}

// FilterNames returns the sorted names accepted by ParseFilter.
func FilterNames() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
