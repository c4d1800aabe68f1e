package console

import (
	"fmt"

	"github.com/bdwalton/nescore/cartridge"
)

const (
	vramSize    = 2048
	paletteSize = 32
)

// PpuBus is the PPU-side address decoder (spec.md §4.3).
type PpuBus struct {
	mapper     cartridge.Mapper
	mirroring  cartridge.Mirroring
	vram       [vramSize]uint8
	paletteRAM [paletteSize]uint8
}

func NewPpuBus(m cartridge.Mapper, mirroring cartridge.Mirroring) *PpuBus {
	return &PpuBus{mapper: m, mirroring: mirroring}
}

func (b *PpuBus) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x1FFF:
		return b.mapper.PpuRead(addr)
	case addr <= 0x3EFF:
		return b.vram[b.mirrorVRAM(addr)]
	case addr <= 0x3FFF:
		return b.paletteRAM[paletteIndex(addr)]
	default:
		panic(fmt.Sprintf("console: PpuBus.Read: unmapped address %04X", addr))
	}
}

func (b *PpuBus) Write(addr uint16, v uint8) {
	switch {
	case addr <= 0x1FFF:
		b.mapper.PpuWrite(addr, v)
	case addr <= 0x3EFF:
		b.vram[b.mirrorVRAM(addr)] = v
	case addr <= 0x3FFF:
		b.paletteRAM[paletteIndex(addr)] = v
	default:
		panic(fmt.Sprintf("console: PpuBus.Write: unmapped address %04X", addr))
	}
}

// mirrorVRAM maps a $2000-$3EFF nametable address into the 2KB physical
// VRAM window according to the cartridge's mirroring mode, per spec.md
// §4.3/§9: "the correct mapping depends on cart.mirroring" (rejecting the
// naive "& 0x7FF" the source uses, per SPEC_FULL.md §5).
func (b *PpuBus) mirrorVRAM(addr uint16) uint16 {
	a := (addr - 0x2000) & 0x0FFF
	switch b.mirroring {
	case cartridge.Horizontal:
		// Collapse bit 11: nametables 0/2 and 1/3 alias each other.
		return a & 0x07FF
	case cartridge.Vertical:
		// Collapse bit 10: nametables 0/1 and 2/3 alias each other.
		return ((a & 0x0800) >> 1) | (a & 0x03FF)
	default: // four-screen: only 2KB of VRAM exists, so bit 11 is dropped as in horizontal mode
		return a & 0x07FF
	}
}

// paletteIndex folds the 32-entry palette window, aliasing $3F10/14/18/1C
// onto $3F00/04/08/0C (spec.md §3).
func paletteIndex(addr uint16) uint16 {
	i := (addr - 0x3F00) % 0x20
	if i >= 0x10 && i%4 == 0 {
		i -= 0x10
	}
	return i
}
