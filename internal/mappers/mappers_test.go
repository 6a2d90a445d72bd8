package mappers

import (
	"testing"

	"github.com/kbolino/nesgo/internal/cartridge"
)

func buildCartridge(t *testing.T, prgBanks, chrBanks uint8, flags6, flags7 uint8) *cartridge.Cartridge {
	t.Helper()
	header := []byte{'N', 'E', 'S', 0x1A, prgBanks, chrBanks, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0}
	rom := append([]byte(nil), header...)
	rom = append(rom, make([]byte, int(prgBanks)*16384)...)
	rom = append(rom, make([]byte, int(chrBanks)*8192)...)
	c, err := cartridge.New(rom)
	if err != nil {
		t.Fatalf("cartridge.New: %v", err)
	}
	return c
}

func TestNewUnsupportedMapper(t *testing.T) {
	c := buildCartridge(t, 1, 1, 0xF0, 0xF0) // mapper 255, unregistered
	_, err := New(c)
	if err == nil {
		t.Fatal("expected error for unsupported mapper id")
	}
}

func TestNROMMirrorsSingleBank(t *testing.T) {
	c := buildCartridge(t, 1, 1, 0, 0)
	c.PRGROM[0] = 0xAB
	m, err := New(c)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Read(0x8000) != 0xAB {
		t.Fatalf("Read($8000) = $%02X, want $AB", m.Read(0x8000))
	}
	if m.Read(0xC000) != 0xAB {
		t.Fatalf("Read($C000) = $%02X, want $AB (mirror of first 16K bank)", m.Read(0xC000))
	}
}

func TestUxROMBankSwitch(t *testing.T) {
	c := buildCartridge(t, 4, 1, 0x20, 0) // mapper 2
	c.PRGROM[0x4000*2] = 0x42             // bank 2, offset 0
	m, err := New(c)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Write(0x8000, 2)
	if got := m.Read(0x8000); got != 0x42 {
		t.Fatalf("Read($8000) after bank select 2 = $%02X, want $42", got)
	}
}

func TestCNROMCHRBankSwitch(t *testing.T) {
	c := buildCartridge(t, 1, 4, 0x30, 0) // mapper 3
	c.CHRROM[0x2000+5] = 0x99
	m, err := New(c)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Write(0x8000, 1)
	if got := m.ReadCHR(5); got != 0x99 {
		t.Fatalf("ReadCHR(5) after CHR bank select 1 = $%02X, want $99", got)
	}
}

func TestMMC1ShiftRegisterFillsOnFifthWrite(t *testing.T) {
	c := buildCartridge(t, 16, 1, 0x10, 0) // mapper 1
	m, err := New(c)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mm := m.(*mmc1)
	// Write control = 0b01010 (switch PRG mode, fixed low, vertical mirroring)
	// low bit first: 0,1,0,1,0
	mm.Write(0x8000, 0)
	mm.Write(0x8000, 1)
	mm.Write(0x8000, 0)
	mm.Write(0x8000, 1)
	mm.Write(0x8000, 0)
	if mm.control != 0b01010 {
		t.Fatalf("control = %05b, want %05b", mm.control, 0b01010)
	}
}

func TestMMC1ResetBitAbortsShift(t *testing.T) {
	c := buildCartridge(t, 16, 1, 0x10, 0)
	m, err := New(c)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mm := m.(*mmc1)
	mm.Write(0x8000, 1)
	mm.Write(0x8000, 0x80) // reset bit
	if mm.shift != 0b10000 {
		t.Fatalf("shift after reset write = %05b, want %05b", mm.shift, 0b10000)
	}
	if mm.control&0x0C != 0x0C {
		t.Fatalf("control low bits after reset = %04b, want 1100", mm.control&0x0C)
	}
}

func TestMMC1PRGFixedLastBank(t *testing.T) {
	c := buildCartridge(t, 4, 1, 0x10, 0)
	c.PRGROM[3*0x4000] = 0x55
	m, err := New(c)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mm := m.(*mmc1)
	mm.control = 0b01100 // PRG mode 11: fix last bank at $C000
	if got := m.Read(0xC000); got != 0x55 {
		t.Fatalf("Read($C000) with fixed-last-bank mode = $%02X, want $55", got)
	}
}
