package cartridge

import "fmt"

// Mapper is the cartridge-side address translator (spec.md §3, §9: "model
// as a variant... or a capability trait behind a single owned pointer").
// Every mapper is constructed against one Image and mediates all CPU/PPU
// access to it.
type Mapper interface {
	ID() uint16
	Name() string
	CpuRead(addr uint16) uint8
	CpuWrite(addr uint16, v uint8)
	PpuRead(addr uint16) uint8
	PpuWrite(addr uint16, v uint8)
	Mirroring() Mirroring
	HasSaveRAM() bool
}

// factory constructs a Mapper bound to a specific cartridge image.
type factory func(*Image) Mapper

var registry = map[uint16]factory{}

// RegisterMapper adds a mapper constructor under id. Called from each
// mapper implementation's init(), mirroring the teacher's
// mappers.RegisterMapper pattern.
func RegisterMapper(id uint16, f factory) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("cartridge: mapper id %d already registered", id))
	}
	registry[id] = f
}

// NewMapper looks up and constructs the mapper named by img.MapperID.
func NewMapper(img *Image) (Mapper, error) {
	f, ok := registry[img.MapperID]
	if !ok {
		return nil, fmt.Errorf("cartridge: mapper %d: %w", img.MapperID, ErrUnsupportedMapper)
	}
	return f(img), nil
}
