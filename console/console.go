package console

import (
	"fmt"
	"io"

	"github.com/bdwalton/nescore/cartridge"
	"github.com/bdwalton/nescore/cpu"
	"github.com/bdwalton/nescore/palette"
	"github.com/bdwalton/nescore/ppu"
)

// Console is the top-level composer: it owns the cartridge, both buses,
// the CPU, and the PPU, and advances them in lockstep (spec.md §4.6).
type Console struct {
	Cart   *cartridge.Image
	Mapper cartridge.Mapper

	CPU    *cpu.CPU
	PPU    *ppu.PPU
	CpuBus *CpuBus
	PpuBus *PpuBus

	clock uint64

	// dmaStall counts down CPU cycles stolen by an in-flight OAM DMA. It
	// is a full int, not folded into cpu.CPU.CyclesRemaining (a uint8,
	// far too narrow for a 513-cycle stall): while nonzero, tick skips
	// CPU.Step entirely, matching real hardware halting the CPU rather
	// than merely padding its next instruction boundary.
	dmaStall int
}

// Load builds a Console from an iNES ROM stream and a palette table.
func Load(rom io.Reader, pal palette.Table) (*Console, error) {
	img, err := cartridge.Load(rom)
	if err != nil {
		return nil, fmt.Errorf("console: loading cartridge: %w", err)
	}
	m, err := cartridge.NewMapper(img)
	if err != nil {
		return nil, fmt.Errorf("console: selecting mapper: %w", err)
	}

	c := New(img, m, pal)
	return c, nil
}

// New wires a Console around an already-loaded cartridge image and
// mapper, exposed separately from Load so tests can construct one
// without a byte stream.
func New(img *cartridge.Image, m cartridge.Mapper, pal palette.Table) *Console {
	c := &Console{Cart: img, Mapper: m}

	c.PpuBus = NewPpuBus(m, img.Mirroring)
	c.PPU = ppu.New(c.PpuBus, pal)
	c.CpuBus = NewCpuBus(c.PPU, m)
	c.CPU = cpu.New(c.CpuBus)

	c.PPU.Reset()
	c.CPU.Reset()
	return c
}

// ResetTo is a test/debug convenience: resets the PPU normally but pins
// the CPU's PC to pc instead of reading the reset vector.
func (c *Console) ResetTo(pc uint16) {
	c.PPU.Reset()
	c.CPU.ResetTo(pc)
}

// tick is the single advancement primitive (spec.md §4.6): three PPU
// dots, consuming any raised NMI edge into the CPU's latch, then one CPU
// cycle. Ordering is strict: PPU-before-CPU within a tick.
func (c *Console) tick() {
	for i := 0; i < 3; i++ {
		c.PPU.Step()
		if c.PPU.ConsumeNMI() {
			c.CPU.RaiseNMI()
		}
	}

	if dma := c.CpuBus.TakeDMACycles(); dma > 0 {
		c.dmaStall += dma
	}

	if c.dmaStall > 0 {
		c.dmaStall--
		c.CPU.Stall()
	} else {
		c.CPU.Step()
	}
	c.clock++
}

// RunOneInstruction ticks the console until the CPU completes one
// instruction boundary.
func (c *Console) RunOneInstruction() {
	c.tick()
	for c.CPU.CyclesRemaining > 0 {
		c.tick()
	}
}

// RunFrame runs until the PPU finishes the frame in progress, i.e. until
// its position wraps from scanline 261 back to scanline 0, starting from
// wherever it currently sits. Intended for a host render loop (cmd/nes).
func (c *Console) RunFrame() {
	prev := c.PPU.Scanline*ppu.DotsPerScanline + c.PPU.Dot
	for {
		c.RunOneInstruction()
		pos := c.PPU.Scanline*ppu.DotsPerScanline + c.PPU.Dot
		if pos < prev {
			return
		}
		prev = pos
	}
}
