package mappers

import "github.com/kbolino/nesgo/internal/cartridge"

// uxrom implements mapper 2: a switchable 16 KiB PRG bank at $8000 and
// a fixed bank (the last one on the cartridge) at $C000.
type uxrom struct {
	cart *cartridge.Cartridge
	bank uint8
}

func init() {
	Register(2, func(c *cartridge.Cartridge) Mapper { return &uxrom{cart: c} })
}

func (m *uxrom) ID() uint16   { return 2 }
func (m *uxrom) Name() string { return "UxROM" }

func (m *uxrom) Read(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.PRGRAM[addr-0x6000]
	case addr >= 0x8000 && addr < 0xC000:
		i := int(m.bank)*0x4000 + int(addr-0x8000)
		return m.cart.PRGROM[i]
	case addr >= 0xC000:
		last := m.cart.NumPRGBanks16K() - 1
		i := last*0x4000 + int(addr-0xC000)
		return m.cart.PRGROM[i]
	default:
		return 0
	}
}

func (m *uxrom) Write(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.PRGRAM[addr-0x6000] = val
	case addr >= 0x8000:
		m.bank = val & 0x0F
	}
}

func (m *uxrom) ReadCHR(addr uint16) uint8 {
	if m.cart.UsesCHRRAM() {
		return m.cart.CHRRAM[addr]
	}
	return m.cart.CHRROM[addr]
}

func (m *uxrom) WriteCHR(addr uint16, val uint8) {
	if m.cart.UsesCHRRAM() {
		m.cart.CHRRAM[addr] = val
	}
}

func (m *uxrom) Mirroring() cartridge.Mirroring { return m.cart.Mirroring }
func (m *uxrom) HasSaveRAM() bool               { return m.cart.Battery }
func (m *uxrom) Reset()                         { m.bank = 0 }
