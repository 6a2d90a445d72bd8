// Package ppubus routes PPU-side address space ($0000-$3FFF) to the
// cartridge mapper's pattern tables, to 2 KiB of mirrored nametable VRAM,
// and to 32-byte palette RAM.
package ppubus

import (
	"github.com/kbolino/nesgo/internal/cartridge"
	"github.com/kbolino/nesgo/internal/mappers"
)

const (
	vramSize    = 2048
	paletteSize = 32
)

// Bus owns nametable VRAM and palette RAM, and forwards pattern-table
// accesses to the shared mapper.
type Bus struct {
	Mapper  mappers.Mapper
	vram    [vramSize]uint8
	palette [paletteSize]uint8
}

// New builds a PPU bus backed by the given shared mapper.
func New(m mappers.Mapper) *Bus {
	return &Bus{Mapper: m}
}

// SetMapper swaps the shared mapper, used when hot-swapping a cartridge.
func (b *Bus) SetMapper(m mappers.Mapper) {
	b.Mapper = m
}

func (b *Bus) Read(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return b.Mapper.ReadCHR(addr)
	case addr < 0x3F00:
		return b.vram[b.nametableIndex(addr)]
	default:
		return b.palette[paletteIndex(addr)]
	}
}

func (b *Bus) Write(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		b.Mapper.WriteCHR(addr, val)
	case addr < 0x3F00:
		b.vram[b.nametableIndex(addr)] = val
	default:
		b.palette[paletteIndex(addr)] = val
	}
}

// nametableIndex applies the mirroring rule for the mapper's mirroring
// mode to derive a 0-2047 VRAM index from a $2000-$3EFF address.
func (b *Bus) nametableIndex(addr uint16) uint16 {
	id := (addr & 0x0FFF) / 0x400

	switch b.Mapper.Mirroring() {
	case cartridge.MirrorHorizontal:
		if id == 1 || id == 2 {
			addr -= 0x400
		}
	case cartridge.MirrorOneScreenLower, cartridge.MirrorOneScreenUpper:
		return addr & 0x03FF
	}

	return addr & 0x07FF
}

// paletteIndex applies the $3F10/$14/$18/$1C -> $3F00/$04/$08/$0C alias.
func paletteIndex(addr uint16) uint16 {
	idx := addr & 0x1F
	switch idx {
	case 0x10, 0x14, 0x18, 0x1C:
		idx -= 0x10
	}
	return idx
}
