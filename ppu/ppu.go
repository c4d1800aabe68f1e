// Package ppu implements the picture processing unit: the scanline/dot
// state machine, its CPU-visible register ports, and background
// rendering into an RGBA framebuffer.
package ppu

import "github.com/bdwalton/nescore/palette"

const (
	ScanlinesPerFrame = 262
	DotsPerScanline   = 341

	FrameWidth  = 256
	FrameHeight = 240

	oamSize = 256
)

// Bus is what the PPU needs from its side of the address map: CHR reads
// through the cartridge mapper, nametable VRAM, and palette RAM. The
// console package's PpuBus satisfies it.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, v uint8)
}

// PPUCTRL ($2000, write-only) bit layout.
const (
	CtrlNametableX  = 1 << 0
	CtrlNametableY  = 1 << 1
	CtrlIncrement32 = 1 << 2
	CtrlSpriteTable = 1 << 3
	CtrlBgTable     = 1 << 4
	CtrlSpriteSize  = 1 << 5
	CtrlMasterSlave = 1 << 6
	CtrlNMIEnable   = 1 << 7
)

// PPUMASK ($2001, write-only) bit layout.
const (
	MaskGreyscale      = 1 << 0
	MaskShowBgLeft     = 1 << 1
	MaskShowSpriteLeft = 1 << 2
	MaskShowBg         = 1 << 3
	MaskShowSprites    = 1 << 4
	MaskEmphasizeRed   = 1 << 5
	MaskEmphasizeGreen = 1 << 6
	MaskEmphasizeBlue  = 1 << 7
)

// PPUSTATUS ($2002, read-only) bit layout.
const (
	StatusOverflow   = 1 << 5
	StatusSprite0Hit = 1 << 6
	StatusVBlank     = 1 << 7
)

// Pixel is one RGBA framebuffer entry, always opaque (spec.md §6).
type Pixel struct {
	R, G, B, A uint8
}

// PPU is the picture processing unit state machine (spec.md §3, §4.5).
type PPU struct {
	bus     Bus
	palette palette.Table

	Ctrl   uint8
	Mask   uint8
	Status uint8

	oamAddr uint8
	oam     [oamSize]uint8

	// Loopy-style scroll/address registers.
	v      uint16 // current VRAM address, 15 bits
	t      uint16 // temporary VRAM address, 15 bits
	x      uint8  // fine X scroll, 3 bits
	wLatch bool   // shared write toggle for $2005/$2006

	dataBuffer uint8 // $2007 read buffer (one-read-behind, like real hardware)

	Scanline int
	Dot      int

	NMISignal bool

	Framebuffer [FrameWidth * FrameHeight]Pixel
}

// New constructs a PPU against bus using tbl to resolve palette indices
// into RGB. Reset should be called before the first Step.
func New(bus Bus, tbl palette.Table) *PPU {
	return &PPU{bus: bus, palette: tbl}
}

// Reset puts the PPU at the start of the pre-render line (spec.md §3:
// "After PPU reset, scanline=261, dot=0").
func (p *PPU) Reset() {
	p.Scanline = 261
	p.Dot = 0
	p.Ctrl, p.Mask, p.Status = 0, 0, 0
	p.v, p.t, p.x = 0, 0, 0
	p.wLatch = false
	p.NMISignal = false
}

// Step advances the PPU by exactly one dot (spec.md §4.5) and then applies
// the event of the dot it arrived at.
func (p *PPU) Step() {
	p.Dot++
	if p.Dot > 340 {
		p.Dot = 0
		p.Scanline++
		if p.Scanline > 261 {
			p.Scanline = 0
		}
	}

	switch {
	case p.Scanline == 241 && p.Dot == 1:
		p.Status |= StatusVBlank
		if p.Ctrl&CtrlNMIEnable != 0 {
			p.NMISignal = true
		}
	case p.Scanline == 261 && p.Dot == 1:
		p.Status &^= StatusVBlank | StatusSprite0Hit | StatusOverflow
	case p.Scanline == 240 && p.Dot == 0:
		p.renderFrame()
	}
}

// ConsumeNMI reports and clears a raised NMI edge, per spec.md §3's
// "NMI edge is single-shot" invariant: the console latches this into the
// CPU's nmi_pending exactly once per Step.
func (p *PPU) ConsumeNMI() bool {
	v := p.NMISignal
	p.NMISignal = false
	return v
}
