package mappers

import "github.com/kbolino/nesgo/internal/cartridge"

// mmc1 implements mapper 1. Writes load a 5-bit serial shift register,
// low bit first; the register fills on the fifth write and its value is
// latched into one of four target registers chosen by the write address.
// Any write with bit 7 set resets the shift register and forces the
// control register's PRG-fixed-bank mode, regardless of shift state.
type mmc1 struct {
	cart *cartridge.Cartridge

	shift       uint8
	control     uint8
	chrBankLow  uint8
	chrBankHigh uint8
	prgBank     uint8
}

func init() {
	Register(1, func(c *cartridge.Cartridge) Mapper {
		m := &mmc1{cart: c}
		m.Reset()
		return m
	})
}

func (m *mmc1) ID() uint16   { return 1 }
func (m *mmc1) Name() string { return "MMC1" }

func (m *mmc1) Reset() {
	m.shift = 0b10000
	m.control = 0b11100
	m.chrBankLow = 0
	m.chrBankHigh = 0
	m.prgBank = 0
}

// shiftIn feeds one bit into the serial register, returning true when the
// register has just filled (fifth write).
func (m *mmc1) shiftIn(val uint8) bool {
	if val&0x80 != 0 {
		m.shift = 0b10000
		m.control |= 0x0C
		return false
	}
	full := m.shift&1 == 1
	m.shift = (m.shift >> 1) | ((val & 1) << 4)
	return full
}

func (m *mmc1) Write(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.PRGRAM[addr-0x6000] = val
	case addr >= 0x8000:
		if m.shiftIn(val) {
			switch {
			case addr < 0xA000:
				m.control = m.shift
			case addr < 0xC000:
				m.chrBankLow = m.shift
			case addr < 0xE000:
				m.chrBankHigh = m.shift
			default:
				m.prgBank = m.shift & 0x0F
			}
			m.shift = 0b10000
		}
	}
}

func (m *mmc1) Read(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.PRGRAM[addr-0x6000]
	case addr >= 0x8000 && addr < 0xC000:
		if m.control&0x08 == 0 {
			// 32 KiB mode, ignore low bit of bank.
			bank := m.prgBank & 0b1110
			return m.cart.PRGROM[int(bank)*0x4000+int(addr-0x8000)]
		}
		if m.control&0x04 != 0 {
			return m.cart.PRGROM[int(m.prgBank)*0x4000+int(addr-0x8000)]
		}
		return m.cart.PRGROM[int(addr-0x8000)]
	case addr >= 0xC000:
		if m.control&0x08 == 0 {
			bank := m.prgBank & 0b1110
			return m.cart.PRGROM[int(bank)*0x4000+0x4000+int(addr-0xC000)]
		}
		if m.control&0x04 != 0 {
			last := m.cart.NumPRGBanks16K() - 1
			return m.cart.PRGROM[last*0x4000+int(addr-0xC000)]
		}
		return m.cart.PRGROM[int(m.prgBank)*0x4000+int(addr-0xC000)]
	default:
		return 0
	}
}

func (m *mmc1) chrIndex(addr uint16) int {
	if m.control&0x10 == 0 {
		// 8 KiB mode, ignore low bit of bank.
		bank := m.chrBankLow & 0b11110
		return int(bank)*0x1000 + int(addr)
	}
	if addr < 0x1000 {
		return int(m.chrBankLow)*0x1000 + int(addr)
	}
	return int(m.chrBankHigh)*0x1000 + int(addr-0x1000)
}

func (m *mmc1) ReadCHR(addr uint16) uint8 {
	if m.cart.UsesCHRRAM() {
		return m.cart.CHRRAM[addr&0x1FFF]
	}
	return m.cart.CHRROM[m.chrIndex(addr)]
}

func (m *mmc1) WriteCHR(addr uint16, val uint8) {
	if m.cart.UsesCHRRAM() {
		m.cart.CHRRAM[addr&0x1FFF] = val
	}
}

func (m *mmc1) Mirroring() cartridge.Mirroring {
	switch m.control & 0b11 {
	case 0:
		return cartridge.MirrorOneScreenLower
	case 1:
		return cartridge.MirrorOneScreenUpper
	case 2:
		return cartridge.MirrorVertical
	default:
		return cartridge.MirrorHorizontal
	}
}

func (m *mmc1) HasSaveRAM() bool { return m.cart.Battery }
