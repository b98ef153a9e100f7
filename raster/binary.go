package raster

import (
	"encoding/binary"

	"blainsmith.com/go/seahash"
	"github.com/pkg/errors"
)

const (
	headerMagic      = 1000
	headerMagicAt8   = 8
	headerMagicAt16  = 16
	paletteOffset    = 0x200
	paletteEntries   = 256
	paletteBytesEach = 3
	dataOffset       = 0x600
)

// DefaultPalette returns the fixed 256-entry RGB palette used by ToBuffer
// when the caller does not supply one. Index 0 (empty cell) is black;
// every other entry i is derived deterministically from i alone as
// (i*53, i*97, i*151) mod 256; the instruction family plays no part, so
// related codes do not necessarily get similar colors.
func DefaultPalette() [][3]byte {
	p := make([][3]byte, paletteEntries)
	for i := 1; i < paletteEntries; i++ {
		p[i] = [3]byte{
			byte((i * 53) % 256),
			byte((i * 97) % 256),
			byte((i * 151) % 256),
		}
	}
	return p
}

// ToBuffer serializes the store as the little-endian, palette-indexed,
// run-length-encoded binary format. It returns the encoded
// bytes and a seahash digest of those bytes, so callers (tests, the CLI)
// can check the determinism guarantee without diffing
// whole buffers.
func (s *Store) ToBuffer(palette [][3]byte) (buf []byte, digest uint64, err error) {
	if palette == nil {
		palette = DefaultPalette()
	}
	if len(palette) != paletteEntries {
		return nil, 0, errors.Errorf("raster: palette must have %d entries, got %d", paletteEntries, len(palette))
	}

	runs := s.EncodeRLE()
	size := dataOffset + 2*len(runs)
	buf = make([]byte, size)

	binary.LittleEndian.PutUint16(buf[0:2], 0)
	binary.LittleEndian.PutUint16(buf[2:4], 0)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(s.FullWidth-1))
	binary.LittleEndian.PutUint16(buf[6:8], uint16(s.FullHeight-1))
	binary.LittleEndian.PutUint16(buf[headerMagicAt8:headerMagicAt8+2], headerMagic)
	binary.LittleEndian.PutUint16(buf[headerMagicAt16:headerMagicAt16+2], headerMagic)

	for i, rgb := range palette {
		off := paletteOffset + i*paletteBytesEach
		buf[off] = rgb[0]
		buf[off+1] = rgb[1]
		buf[off+2] = rgb[2]
	}

	for i, run := range runs {
		if int(run.Index) >= paletteEntries {
			return nil, 0, errors.Errorf("raster: palette index %d >= %d", run.Index, paletteEntries)
		}
		if int(run.Length) > s.FullWidth {
			return nil, 0, errors.Errorf("raster: run length %d exceeds width %d", run.Length, s.FullWidth)
		}
		off := dataOffset + 2*i
		buf[off] = run.Index
		buf[off+1] = run.Length
	}

	digest = seahash.Sum64(buf)
	return buf, digest, nil
}
