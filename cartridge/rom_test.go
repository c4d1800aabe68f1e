package cartridge

import (
	"bytes"
	"errors"
	"testing"
)

func buildROM(prgPages, chrPages uint8, flags6, flags7 byte, prgFill, chrFill byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(headerConstant)
	buf.Write([]byte{prgPages, chrPages, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0})
	buf.Write(bytes.Repeat([]byte{prgFill}, prgPageSize*int(prgPages)))
	if chrPages > 0 {
		buf.Write(bytes.Repeat([]byte{chrFill}, chrPageSize*int(chrPages)))
	}
	return buf.Bytes()
}

func TestLoadNROM(t *testing.T) {
	raw := buildROM(2, 1, 0x01 /* vertical */, 0x00, 0xAB, 0xCD)
	img, err := Load(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.MapperID != 0 {
		t.Fatalf("MapperID = %d, want 0", img.MapperID)
	}
	if img.Mirroring != Vertical {
		t.Fatalf("Mirroring = %v, want Vertical", img.Mirroring)
	}
	if len(img.PrgROM) != prgPageSize*2 {
		t.Fatalf("len(PrgROM) = %d, want %d", len(img.PrgROM), prgPageSize*2)
	}
	if img.PrgROM[0] != 0xAB {
		t.Fatalf("PrgROM[0] = %02X, want AB", img.PrgROM[0])
	}
	if len(img.ChrROM) != chrPageSize {
		t.Fatalf("len(ChrROM) = %d, want %d", len(img.ChrROM), chrPageSize)
	}
}

func TestLoadChrRAMWhenNoChrPages(t *testing.T) {
	raw := buildROM(1, 0, 0, 0, 0x11, 0)
	img, err := Load(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(img.ChrRAM) != chrRAMSize {
		t.Fatalf("len(ChrRAM) = %d, want %d", len(img.ChrRAM), chrRAMSize)
	}
	if img.ChrROM != nil {
		t.Fatalf("ChrROM should be nil when ChrPages == 0")
	}
}

func TestLoadBadMagic(t *testing.T) {
	raw := append([]byte("XXXX"), make([]byte, 12)...)
	_, err := Load(bytes.NewReader(raw))
	if !errors.Is(err, ErrInvalidROM) {
		t.Fatalf("err = %v, want ErrInvalidROM", err)
	}
}

func TestLoadTruncated(t *testing.T) {
	raw := buildROM(2, 1, 0, 0, 0, 0)
	_, err := Load(bytes.NewReader(raw[:headerSize+10]))
	if !errors.Is(err, ErrTruncatedROM) {
		t.Fatalf("err = %v, want ErrTruncatedROM", err)
	}
}

func TestMapperIDCombinesNibbles(t *testing.T) {
	raw := buildROM(1, 1, 0x10 /* mapper low nibble 1 */, 0x20 /* mapper high nibble 2 */, 0, 0)
	img, err := Load(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.MapperID != 0x21 {
		t.Fatalf("MapperID = %#x, want 0x21", img.MapperID)
	}
}

func TestNewMapperUnsupported(t *testing.T) {
	img := &Image{MapperID: 999}
	_, err := NewMapper(img)
	if !errors.Is(err, ErrUnsupportedMapper) {
		t.Fatalf("err = %v, want ErrUnsupportedMapper", err)
	}
}

func TestNROMSinglePageMirrorsAcrossBothHalves(t *testing.T) {
	raw := buildROM(1, 1, 0, 0, 0x42, 0)
	img, err := Load(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m, err := NewMapper(img)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	if got := m.CpuRead(0x8000); got != 0x42 {
		t.Fatalf("CpuRead(0x8000) = %02X, want 42", got)
	}
	if got := m.CpuRead(0xC000); got != 0x42 {
		t.Fatalf("CpuRead(0xC000) = %02X, want 42 (mirrored)", got)
	}
}

func TestNROMChrRAMWriteRead(t *testing.T) {
	raw := buildROM(1, 0, 0, 0, 0, 0)
	img, err := Load(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m, err := NewMapper(img)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	m.PpuWrite(0x0010, 0x77)
	if got := m.PpuRead(0x0010); got != 0x77 {
		t.Fatalf("PpuRead(0x0010) = %02X, want 77", got)
	}
}
