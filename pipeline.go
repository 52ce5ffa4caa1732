package mosaic

import (
	"bytes"
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/bodgit/mosaic/tile"
)

const numWorkers = 10

// ErrEmptyImage is returned for a tile with no pixels.
var ErrEmptyImage = errors.New("mosaic: image has no pixels")

func produceJobs(ctx context.Context, n int) <-chan int {
	out := make(chan int)
	go func() {
		defer close(out)
		for i := 0; i < n; i++ {
			select {
			case out <- i:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (m *Mosaic) averageWorker(ctx context.Context, cancel context.CancelFunc, in <-chan int, refs []string, entries []Entry, done *int64) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for i := range in {
			c, err := m.tileColor(refs[i])
			if err != nil {
				cancel()
				errc <- err
				return
			}
			entries[i] = Entry{Ref: refs[i], Color: c}

			n := atomic.AddInt64(done, 1)
			m.logger.Printf("generating palette: %.2f%%\n", float64(n)/float64(len(entries))*100)

			if ctx.Err() != nil {
				return
			}
		}
	}()
	return errc
}

// decodeError makes sure loader failures always identify the tile.
func decodeError(ref string, err error) error {
	var de *tile.DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &tile.DecodeError{Ref: ref, Err: err}
}

func (m *Mosaic) tileColor(ref string) (Color, error) {
	opener, ok := m.loader.(tile.Opener)
	if m.db == nil || !ok {
		img, err := m.loader.Load(ref)
		if err != nil {
			return Color{}, decodeError(ref, err)
		}
		if img.Bounds().Empty() {
			return Color{}, fmt.Errorf("%s: %w", ref, ErrEmptyImage)
		}
		return Average(img), nil
	}

	rc, err := opener.Open(ref)
	if err != nil {
		return Color{}, decodeError(ref, err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return Color{}, &tile.DecodeError{Ref: ref, Err: err}
	}
	sha := fmt.Sprintf("%X", sha1.Sum(b))

	c, found, err := m.db.FindColorBySHA1(sha)
	if err != nil {
		return Color{}, err
	}
	if found {
		return c, nil
	}

	img, err := tile.Decode(ref, bytes.NewReader(b))
	if err != nil {
		return Color{}, err
	}
	if img.Bounds().Empty() {
		return Color{}, fmt.Errorf("%s: %w", ref, ErrEmptyImage)
	}
	c = Average(img)

	if err := m.db.AddColor(sha, c); err != nil {
		return Color{}, err
	}
	m.logger.Printf("No cached average for \"%s\", with SHA-1 \"%s\"\n", ref, sha)

	return c, nil
}

// waitForPipeline returns the first error from any stage but only once every
// stage has finished, so nothing is still writing when the caller returns.
func waitForPipeline(errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// BuildPalette computes the representative color of every tile in refs and
// returns them as a palette in the same order. The first tile that cannot be
// loaded aborts the build.
func (m *Mosaic) BuildPalette(ctx context.Context, refs []string) (*Palette, error) {
	if len(refs) == 0 {
		return nil, ErrEmptyPalette
	}

	wctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	entries := make([]Entry, len(refs))
	var done int64

	jobs := produceJobs(wctx, len(refs))

	var errcList []<-chan error
	for i := 0; i < numWorkers; i++ {
		errcList = append(errcList, m.averageWorker(wctx, cancelFunc, jobs, refs, entries, &done))
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	// Workers stop early without an error if the caller cancelled
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return NewPalette(entries)
}
