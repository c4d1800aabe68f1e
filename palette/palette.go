// Package palette loads the 64-entry RGB color table the PPU uses to turn
// palette indices into displayable pixels.
package palette

import (
	"errors"
	"fmt"
	"io"
)

// NumColors is the fixed size of an NES color palette.
const NumColors = 64

// bytesPerColor is the on-disk encoding: one byte each for R, G, B.
const bytesPerColor = 3

// ErrShortPalette is returned when a palette source has fewer than the
// required 192 bytes (64 * 3).
var ErrShortPalette = errors.New("palette: source shorter than 192 bytes")

// Color is one RGB palette entry. Alpha is always opaque on the NES's
// framebuffer (spec.md §6), so it is not stored here.
type Color struct {
	R, G, B uint8
}

// Table is a fixed 64-entry color palette.
type Table [NumColors]Color

// Load reads a raw 192-byte palette file (spec.md §6: "raw 192 bytes = 64 ×
// (R,G,B)") from r and returns the decoded Table.
func Load(r io.Reader) (Table, error) {
	var raw [NumColors * bytesPerColor]byte
	n, err := io.ReadFull(r, raw[:])
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Table{}, fmt.Errorf("palette: read %d of %d bytes: %w", n, len(raw), ErrShortPalette)
		}
		return Table{}, fmt.Errorf("palette: reading palette data: %w", err)
	}

	var t Table
	for i := 0; i < NumColors; i++ {
		t[i] = Color{
			R: raw[i*bytesPerColor],
			G: raw[i*bytesPerColor+1],
			B: raw[i*bytesPerColor+2],
		}
	}
	return t, nil
}

// Default returns the canonical NTSC palette used when no palette file is
// supplied, e.g. by cmd/nes and by tests. Grounded in the 2C02 NTSC palette
// values carried by the teacher's ppu.SYSTEM_PALETTE table.
func Default() Table {
	return defaultTable
}

var defaultTable = Table{
	{0x80, 0x80, 0x80}, {0x00, 0x3D, 0xA6}, {0x00, 0x12, 0xB0}, {0x44, 0x00, 0x96}, {0xA1, 0x00, 0x5E},
	{0xC7, 0x00, 0x28}, {0xBA, 0x06, 0x00}, {0x8C, 0x17, 0x00}, {0x5C, 0x2F, 0x00}, {0x10, 0x45, 0x00},
	{0x05, 0x4A, 0x00}, {0x00, 0x47, 0x2E}, {0x00, 0x41, 0x66}, {0x00, 0x00, 0x00}, {0x05, 0x05, 0x05}, {0x05, 0x05, 0x05},
	{0xC7, 0xC7, 0xC7}, {0x00, 0x77, 0xFF}, {0x21, 0x55, 0xFF}, {0x82, 0x37, 0xFA}, {0xEB, 0x2F, 0xB5},
	{0xFF, 0x29, 0x50}, {0xFF, 0x22, 0x00}, {0xD6, 0x32, 0x00}, {0xC4, 0x62, 0x00}, {0x35, 0x80, 0x00},
	{0x05, 0x8F, 0x00}, {0x00, 0x8A, 0x55}, {0x00, 0x99, 0xCC}, {0x21, 0x21, 0x21}, {0x09, 0x09, 0x09}, {0x09, 0x09, 0x09},
	{0xFF, 0xFF, 0xFF}, {0x0F, 0xD7, 0xFF}, {0x69, 0xA2, 0xFF}, {0xD4, 0x80, 0xFF}, {0xFF, 0x45, 0xF3},
	{0xFF, 0x61, 0x8B}, {0xFF, 0x88, 0x33}, {0xFF, 0x9C, 0x12}, {0xFA, 0xBC, 0x20}, {0x9F, 0xE3, 0x0E},
	{0x2B, 0xF0, 0x35}, {0x0C, 0xF0, 0xA4}, {0x05, 0xFB, 0xFF}, {0x5E, 0x5E, 0x5E}, {0x0D, 0x0D, 0x0D}, {0x0D, 0x0D, 0x0D},
	{0xFF, 0xFF, 0xFF}, {0xA6, 0xFC, 0xFF}, {0xB3, 0xEC, 0xFF}, {0xDA, 0xAB, 0xEB}, {0xFF, 0xA8, 0xF9},
	{0xFF, 0xAB, 0xB3}, {0xFF, 0xD2, 0xB0}, {0xFF, 0xEF, 0xA6}, {0xFF, 0xF7, 0x9C}, {0xD7, 0xE8, 0x95},
	{0xA6, 0xED, 0xAF}, {0xA2, 0xF2, 0xDA}, {0x99, 0xFF, 0xFC}, {0xDD, 0xDD, 0xDD}, {0x11, 0x11, 0x11}, {0x11, 0x11, 0x11},
}
