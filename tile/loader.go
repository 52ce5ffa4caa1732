package tile

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"
	"sort"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// A Loader resolves a tile reference into a decoded image.
type Loader interface {
	Load(ref string) (image.Image, error)
}

// An Opener provides the undecoded bytes behind a tile reference.
type Opener interface {
	Open(ref string) (io.ReadCloser, error)
}

// DecodeError records a tile that could not be read or decoded.
type DecodeError struct {
	Ref string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tile: %s: %v", e.Ref, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode decodes the image read from r. Any failure is returned as a
// *DecodeError naming ref.
func Decode(ref string, r io.Reader) (image.Image, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Ref: ref, Err: err}
	}
	return m, nil
}

// FileLoader loads tiles from the local filesystem.
type FileLoader struct{}

// Open opens the file named by ref.
func (FileLoader) Open(ref string) (io.ReadCloser, error) {
	f, err := os.Open(ref)
	if err != nil {
		return nil, &DecodeError{Ref: ref, Err: err}
	}
	return f, nil
}

// Load opens and decodes the file named by ref.
func (l FileLoader) Load(ref string) (image.Image, error) {
	f, err := l.Open(ref)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(ref, f)
}

// List returns the paths of the regular files directly inside dir, sorted by
// name. Hidden files are ignored.
func List(dir string) ([]string, error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	info, err := d.Stat()
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("tile: %s: not a directory", dir)
	}

	entries, err := d.ReadDir(0)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		// Ignore any hidden files, otherwise we end up fighting with things like Spotlight, etc.
		if entry.Name()[0] == '.' || !entry.Type().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	return files, nil
}
