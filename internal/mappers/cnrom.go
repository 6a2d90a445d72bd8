package mappers

import "github.com/kbolino/nesgo/internal/cartridge"

// cnrom implements mapper 3: fixed PRG, switchable 8 KiB CHR bank
// selected by any write to $8000-$FFFF.
type cnrom struct {
	cart *cartridge.Cartridge
	bank uint8
}

func init() {
	Register(3, func(c *cartridge.Cartridge) Mapper { return &cnrom{cart: c} })
}

func (m *cnrom) ID() uint16   { return 3 }
func (m *cnrom) Name() string { return "CNROM" }

func (m *cnrom) Read(addr uint16) uint8 {
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

func (m *cnrom) Write(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.PRGRAM[addr-0x6000] = val
	case addr >= 0x8000:
		m.bank = val & 0x03
	}
}

func (m *cnrom) ReadCHR(addr uint16) uint8 {
	if m.cart.UsesCHRRAM() {
		return m.cart.CHRRAM[addr]
	}
	return m.cart.CHRROM[int(m.bank)*0x2000+int(addr)]
}

func (m *cnrom) WriteCHR(addr uint16, val uint8) {
	if m.cart.UsesCHRRAM() {
		m.cart.CHRRAM[addr] = val
	}
}

func (m *cnrom) Mirroring() cartridge.Mirroring { return m.cart.Mirroring }
func (m *cnrom) HasSaveRAM() bool               { return m.cart.Battery }
func (m *cnrom) Reset()                         { m.bank = 0 }
