// Package mappers implements the cartridge bank-switching chips: NROM,
// MMC1, UxROM and CNROM. Mappers are looked up by iNES mapper id through
// a small global registry, following the registration pattern used
// throughout the rest of this codebase's ambient stack.
package mappers

import (
	"github.com/kbolino/nesgo/internal/cartridge"
)

// Mapper is the shared contract all bank-switching chips implement. A
// Mapper value is shared, unmodified, between the CPU-side main bus and
// the PPU-side bus — both read and write through the same instance.
type Mapper interface {
	ID() uint16
	Name() string

	// Read/Write service the CPU-visible PRG address space ($4020-$FFFF,
	// plus the cartridge's own $6000-$7FFF PRG RAM window).
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)

	// ReadCHR/WriteCHR service the PPU-visible pattern table window
	// ($0000-$1FFF).
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, val uint8)

	Mirroring() cartridge.Mirroring
	HasSaveRAM() bool
	Reset()
}

type constructor func(*cartridge.Cartridge) Mapper

var registry = map[uint16]constructor{}

// Register associates a mapper id with a constructor. Called from each
// mapper implementation's init().
func Register(id uint16, ctor constructor) {
	registry[id] = ctor
}

// New builds the Mapper named by the cartridge's header mapper id.
func New(c *cartridge.Cartridge) (Mapper, error) {
	ctor, ok := registry[c.MapperID]
	if !ok {
		return nil, &cartridge.ErrUnsupportedMapper{ID: c.MapperID}
	}
	return ctor(c), nil
}
