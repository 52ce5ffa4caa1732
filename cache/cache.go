/*
Package cache implements the palette cache file, which saves a built palette
so the tiles do not need to be decoded and averaged again.

The file is little-endian: the four byte magic "MSPL" and a version byte,
a uint32 count of entries, then for each entry a uint16 length followed by
that many bytes of tile reference and the four float32 color channels in
IEEE 754 form. A CRC-32 (IEEE) of everything before it closes the file.
Colors are stored bit for bit so a decoded palette matches exactly.
*/
package cache

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"os"

	"github.com/bodgit/mosaic"
)

const (
	// Filename is the suggested name for a cache file
	Filename = "palette.mspl"

	version = 1
	maxRef  = math.MaxUint16
)

var magic = [4]byte{'M', 'S', 'P', 'L'}

var (
	errBadMagic    = errors.New("cache: not a palette cache file")
	errBadVersion  = errors.New("cache: unsupported version")
	errBadChecksum = errors.New("cache: checksum mismatch")
	errTooMuch     = errors.New("cache: trailing data")
)

// Encode writes p to w.
func Encode(w io.Writer, p *mosaic.Palette) error {
	h := crc32.NewIEEE()
	bw := bufio.NewWriter(io.MultiWriter(w, h))

	if _, err := bw.Write(magic[:]); err != nil {
		return err
	}
	if err := bw.WriteByte(version); err != nil {
		return err
	}

	entries := p.Entries()
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(entries))); err != nil {
		return err
	}

	for _, e := range entries {
		if len(e.Ref) > maxRef {
			return fmt.Errorf("cache: reference longer than %d bytes", maxRef)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(e.Ref))); err != nil {
			return err
		}
		if _, err := bw.WriteString(e.Ref); err != nil {
			return err
		}
		var bits [4]uint32
		for i, v := range e.Color {
			bits[i] = math.Float32bits(v)
		}
		if err := binary.Write(bw, binary.LittleEndian, &bits); err != nil {
			return err
		}
	}

	// Flush before reading the checksum, it's computed as data passes through
	if err := bw.Flush(); err != nil {
		return err
	}

	return binary.Write(w, binary.LittleEndian, h.Sum32())
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Decode reads a palette previously written by Encode.
func Decode(r io.Reader) (*mosaic.Palette, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(b) < len(magic)+1+4+crc32.Size {
		return nil, io.ErrUnexpectedEOF
	}

	body, trailer := b[:len(b)-crc32.Size], b[len(b)-crc32.Size:]
	if !bytes.Equal(body[:len(magic)], magic[:]) {
		return nil, errBadMagic
	}
	if crc32.ChecksumIEEE(body) != binary.LittleEndian.Uint32(trailer) {
		return nil, errBadChecksum
	}

	br := bytes.NewReader(body[len(magic):])

	v, err := br.ReadByte()
	if err != nil {
		return nil, err
	}
	if v != version {
		return nil, errBadVersion
	}

	var n uint32
	if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
		return nil, err
	}

	// Each entry needs at least 18 bytes so don't trust a huge count
	if int64(n) > int64(br.Len())/18 {
		return nil, io.ErrUnexpectedEOF
	}

	entries := make([]mosaic.Entry, n)
	for i := range entries {
		var length uint16
		if err := binary.Read(br, binary.LittleEndian, &length); err != nil {
			return nil, err
		}
		ref := make([]byte, length)
		if err := readFull(br, ref); err != nil {
			return nil, err
		}
		var bits [4]uint32
		if err := binary.Read(br, binary.LittleEndian, &bits); err != nil {
			return nil, err
		}

		entries[i].Ref = string(ref)
		for j, u := range bits {
			entries[i].Color[j] = math.Float32frombits(u)
		}
	}

	if br.Len() != 0 {
		return nil, errTooMuch
	}

	return mosaic.NewPalette(entries)
}

// Load reads the palette cache file named file.
func Load(file string) (*mosaic.Palette, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return p, nil
}

// Save writes p to the palette cache file named file, replacing it if it
// exists.
func Save(file string, p *mosaic.Palette) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := Encode(f, p); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
