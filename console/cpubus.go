// Package console composes the CPU, PPU, cartridge, and memory buses into
// a single clocked machine, mirroring the teacher's Bus/console wiring
// adapted to spec.md's component boundaries.
package console

import (
	"fmt"

	"github.com/bdwalton/nescore/cartridge"
	"github.com/bdwalton/nescore/ppu"
)

const (
	workRAMSize = 2048

	oamDMAAddr = 0x4014
)

// CpuBus is the CPU-side address decoder (spec.md §4.2).
type CpuBus struct {
	ram    [workRAMSize]uint8
	ppu    *ppu.PPU
	mapper cartridge.Mapper

	// dmaCycles accumulates the stall the CPU must absorb after an
	// OAM DMA write, per SPEC_FULL.md §5.
	dmaCycles int
}

func NewCpuBus(p *ppu.PPU, m cartridge.Mapper) *CpuBus {
	return &CpuBus{ppu: p, mapper: m}
}

// TakeDMACycles returns and clears the CPU cycles stolen by the last OAM
// DMA. Console adds them to its own dmaStall counter; they are not folded
// into the CPU's CyclesRemaining.
func (b *CpuBus) TakeDMACycles() int {
	c := b.dmaCycles
	b.dmaCycles = 0
	return c
}

func (b *CpuBus) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x1FFF:
		return b.ram[addr&0x07FF]
	case addr <= 0x3FFF:
		return b.ppu.ReadRegister(uint8(addr & 0x0007))
	case addr <= 0x4017:
		return 0 // APU/IO stub
	case addr <= 0x7FFF:
		return 0 // unmapped
	case addr <= 0xFFFF:
		return b.mapper.CpuRead(addr)
	default:
		panic(fmt.Sprintf("console: CpuBus.Read: unmapped address %04X", addr))
	}
}

func (b *CpuBus) Write(addr uint16, v uint8) {
	switch {
	case addr <= 0x1FFF:
		b.ram[addr&0x07FF] = v
	case addr <= 0x3FFF:
		b.ppu.WriteRegister(uint8(addr&0x0007), v)
	case addr == oamDMAAddr:
		b.doOAMDMA(v)
	case addr <= 0x4017:
		// rest of APU/IO region: swallowed
	case addr <= 0x7FFF:
		// unmapped
	case addr <= 0xFFFF:
		b.mapper.CpuWrite(addr, v)
	default:
		panic(fmt.Sprintf("console: CpuBus.Write: unmapped address %04X", addr))
	}
}

// doOAMDMA copies 256 bytes starting at page val<<8 into OAM via OAMDATA
// writes, and charges a flat 513 CPU cycles; the extra odd-cycle alignment
// cycle of real hardware is not modeled (SPEC_FULL.md §5, grounded in the
// teacher's console.Bus.Write OAMDMA case).
func (b *CpuBus) doOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := uint16(0); i < 256; i++ {
		b.ppu.OAMDMAWrite(b.Read(base + i))
	}
	b.dmaCycles = 513
}
