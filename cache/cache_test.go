package cache

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/mosaic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPalette(t *testing.T) *mosaic.Palette {
	p, err := mosaic.NewPalette([]mosaic.Entry{
		{Ref: "tiles/b.png", Color: mosaic.Color{1.0 / 3, 0.1, 2.0 / 255, 1}},
		{Ref: "tiles/a.png", Color: mosaic.Color{0, 0, 0, 1}},
		{Ref: "", Color: mosaic.Color{1, 1, 1, 0.5}},
		{Ref: "tiles/ünïcode.png", Color: mosaic.Color{0.999, 0.001, 0.5, 0.25}},
	})
	require.NoError(t, err)
	return p
}

func TestRoundTrip(t *testing.T) {
	p := testPalette(t)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, p))

	got, err := Decode(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, p.Entries(), got.Entries())

	for _, c := range []mosaic.Color{{}, {1, 1, 1, 1}, {0.3, 0.2, 0.1, 1}, {0.9, 0.1, 0.4, 0.3}} {
		assert.Equal(t, p.Nearest(c), got.Nearest(c))
	}

	// Encoding is byte-stable
	b2 := new(bytes.Buffer)
	require.NoError(t, Encode(b2, got))
	assert.Equal(t, b.Bytes(), b2.Bytes())
}

func TestDecodeErrors(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, testPalette(t)))
	good := b.Bytes()

	corrupt := func(f func([]byte) []byte) []byte {
		return f(append([]byte(nil), good...))
	}

	tables := []struct {
		name string
		b    []byte
		err  error
	}{
		{"empty", nil, nil},
		{"magic", corrupt(func(b []byte) []byte { b[0] = 'X'; return b }), errBadMagic},
		{"checksum", corrupt(func(b []byte) []byte { b[10] ^= 0xff; return b }), errBadChecksum},
		{"truncated", good[:len(good)-1], nil},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(table.b))
			require.Error(t, err)
			if table.err != nil {
				assert.Equal(t, table.err, err)
			}
		})
	}
}

func seal(body []byte) []byte {
	var sum [crc32.Size]byte
	binary.LittleEndian.PutUint32(sum[:], crc32.ChecksumIEEE(body))
	return append(body, sum[:]...)
}

func TestDecodeVersion(t *testing.T) {
	body := append(magic[:], version+1, 0, 0, 0, 0)
	_, err := Decode(bytes.NewReader(seal(body)))
	assert.Equal(t, errBadVersion, err)
}

func TestDecodeNoEntries(t *testing.T) {
	body := append(magic[:], version, 0, 0, 0, 0)
	_, err := Decode(bytes.NewReader(seal(body)))
	assert.True(t, errors.Is(err, mosaic.ErrEmptyPalette))
}

func TestDecodeTrailingData(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, testPalette(t)))

	body := b.Bytes()[:b.Len()-crc32.Size]
	body = append(body, 0)

	_, err := Decode(bytes.NewReader(seal(body)))
	assert.Equal(t, errTooMuch, err)
}

func TestDecodeHugeCount(t *testing.T) {
	body := append(magic[:], version, 0xff, 0xff, 0xff, 0xff)
	_, err := Decode(bytes.NewReader(seal(body)))
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), Filename)
	p := testPalette(t)

	require.NoError(t, Save(file, p))

	got, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, p.Entries(), got.Entries())

	_, err = Load(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
