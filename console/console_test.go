package console

import (
	"bytes"
	"testing"

	"github.com/bdwalton/nescore/cartridge"
	"github.com/bdwalton/nescore/palette"
	"github.com/bdwalton/nescore/ppu"
)

// buildNROM assembles a minimal one-bank NROM image with prg filled with
// NOPs (0xEA), program bytes spliced in at $8000, and a reset vector
// pointing at 0x8000. PRG-ROM is read-only once loaded (mapper_nrom.go's
// CpuWrite is a no-op), so any program a test needs to execute has to be
// baked into the image here rather than poked in afterward.
func buildNROM(mirroring byte, program []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.Write([]byte{1, 1, mirroring, 0, 0, 0, 0, 0, 0, 0, 0, 0})

	prg := bytes.Repeat([]byte{0xEA}, 16384)
	copy(prg, program) // $8000 maps to PRG offset 0 under the 0x3FFF mask
	// A single 16KB PRG bank is mirrored across $8000-$BFFF and
	// $C000-$FFFF (mask 0x3FFF), so $FFFC lands at offset 0x3FFC.
	prg[0x3FFC] = 0x00 // reset vector low -> $8000
	prg[0x3FFD] = 0x80 // reset vector high
	buf.Write(prg)
	buf.Write(bytes.Repeat([]byte{0}, 8192)) // one CHR bank

	return buf.Bytes()
}

func newConsoleWithProgram(t *testing.T, program []byte) *Console {
	t.Helper()
	img, err := cartridge.Load(bytes.NewReader(buildNROM(0, program)))
	if err != nil {
		t.Fatalf("cartridge.Load: %v", err)
	}
	m, err := cartridge.NewMapper(img)
	if err != nil {
		t.Fatalf("cartridge.NewMapper: %v", err)
	}
	return New(img, m, palette.Default())
}

func newTestConsole(t *testing.T) *Console {
	t.Helper()
	return newConsoleWithProgram(t, nil)
}

func TestConsoleResetsCPUToResetVector(t *testing.T) {
	c := newTestConsole(t)
	if c.CPU.PC != 0x8000 {
		t.Errorf("PC = %04X, want 8000", c.CPU.PC)
	}
}

func TestConsoleRunOneInstructionAdvancesPPUThreeDotsPerCycle(t *testing.T) {
	c := newTestConsole(t)
	c.RunOneInstruction() // absorbs the 7 reset cycles, executes nothing yet

	startDot := c.PPU.Dot
	startScanline := c.PPU.Scanline

	c.RunOneInstruction() // NOP costs 2 CPU cycles -> 6 PPU dots

	gotDots := (c.PPU.Scanline-startScanline)*DotsPerScanlineForTest + c.PPU.Dot - startDot
	if gotDots != 6 {
		t.Errorf("PPU advanced %d dots across one 2-cycle NOP, want 6", gotDots)
	}
}

// DotsPerScanlineForTest mirrors ppu.DotsPerScanline without importing the
// ppu package twice in this file's arithmetic helper.
const DotsPerScanlineForTest = 341

func TestCpuBusRAMMirroring(t *testing.T) {
	c := newTestConsole(t)
	c.CpuBus.Write(0x0000, 0x42)

	for _, mirror := range []uint16{0x0800, 0x1000, 0x1800} {
		if got := c.CpuBus.Read(mirror); got != 0x42 {
			t.Errorf("Read(%04X) = %02X, want 42 (RAM mirror)", mirror, got)
		}
	}
}

func TestCpuBusPPURegisterMirroring(t *testing.T) {
	c := newTestConsole(t)
	c.CpuBus.Write(0x2000, 0xFF) // PPUCTRL
	c.CpuBus.Write(0x2008, 0x00) // mirror of PPUCTRL

	if c.PPU.Ctrl != 0x00 {
		t.Errorf("Ctrl = %02X, want 00 (second write through the 2008 mirror landed on the same port)", c.PPU.Ctrl)
	}
}

func TestNametableMirroringHorizontal(t *testing.T) {
	c := newTestConsole(t)
	c.PpuBus.Write(0x2000, 0x11)
	if got := c.PpuBus.Read(0x2800); got != 0x11 {
		t.Errorf("Read(2800) = %02X, want 11 (horizontal mirrors 0/2)", got)
	}
	c.PpuBus.Write(0x2400, 0x22)
	if got := c.PpuBus.Read(0x2C00); got != 0x22 {
		t.Errorf("Read(2C00) = %02X, want 22 (horizontal mirrors 1/3)", got)
	}
}

func TestOAMDMACostsCycles(t *testing.T) {
	c := newTestConsole(t)
	c.CpuBus.Write(0x0200, 0xAA) // one byte of the DMA source page

	c.CpuBus.Write(0x4014, 0x02) // trigger DMA from page 2

	if c.CpuBus.TakeDMACycles() != 513 {
		t.Error("OAM DMA should report 513 stolen cycles")
	}
	c.PPU.WriteRegister(ppu.RegOAMADDR, 0)
	if got := c.PPU.ReadRegister(ppu.RegOAMDATA); got != 0xAA {
		t.Errorf("OAM[0] after DMA = %02X, want AA", got)
	}
}

func TestRunOneInstructionFoldsDMAStallIntoCPU(t *testing.T) {
	// LDA #$02; STA $4014 - triggers an OAM DMA from page 2 as the
	// second instruction.
	program := []byte{0xA9, 0x02, 0x8D, 0x14, 0x40}
	c := newConsoleWithProgram(t, program)
	c.RunOneInstruction() // absorb the 7 reset cycles
	c.RunOneInstruction() // LDA #$02

	before := c.CPU.ClockCount
	c.RunOneInstruction() // STA $4014, DMA fires and stalls the next boundary
	elapsed := c.CPU.ClockCount - before

	if elapsed < 513 {
		t.Errorf("elapsed cycles = %d, want at least 513 (DMA stall folded in)", elapsed)
	}
}
