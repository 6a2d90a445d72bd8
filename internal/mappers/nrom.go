package mappers

import "github.com/kbolino/nesgo/internal/cartridge"

// nrom implements mapper 0: fixed PRG banks, no bank switching. A 16 KiB
// cartridge mirrors $8000-$BFFF into $C000-$FFFF; a 32 KiB cartridge
// uses both halves directly.
type nrom struct {
	cart *cartridge.Cartridge
}

func init() {
	Register(0, func(c *cartridge.Cartridge) Mapper { return &nrom{cart: c} })
}

func (m *nrom) ID() uint16   { return 0 }
func (m *nrom) Name() string { return "NROM" }

func (m *nrom) Read(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.PRGRAM[addr-0x6000]
	case addr >= 0x8000:
		i := addr - 0x8000
		if m.cart.NumPRGBanks16K() == 1 {
			i %= 0x4000
		}
		return m.cart.PRGROM[i]
	default:
		return 0
	}
}

func (m *nrom) Write(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.cart.PRGRAM[addr-0x6000] = val
	}
}

func (m *nrom) ReadCHR(addr uint16) uint8 {
	if m.cart.UsesCHRRAM() {
		return m.cart.CHRRAM[addr]
	}
	return m.cart.CHRROM[addr]
}

func (m *nrom) WriteCHR(addr uint16, val uint8) {
	if m.cart.UsesCHRRAM() {
		m.cart.CHRRAM[addr] = val
	}
}

func (m *nrom) Mirroring() cartridge.Mirroring { return m.cart.Mirroring }
func (m *nrom) HasSaveRAM() bool               { return m.cart.Battery }
func (m *nrom) Reset()                         {}
