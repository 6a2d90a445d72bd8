package ppubus

import (
	"testing"

	"github.com/kbolino/nesgo/internal/cartridge"
)

type stubMapper struct {
	chr       [0x2000]uint8
	mirroring cartridge.Mirroring
}

func (s *stubMapper) ID() uint16                        { return 0 }
func (s *stubMapper) Name() string                      { return "stub" }
func (s *stubMapper) Read(addr uint16) uint8             { return 0 }
func (s *stubMapper) Write(addr uint16, val uint8)       {}
func (s *stubMapper) ReadCHR(addr uint16) uint8          { return s.chr[addr] }
func (s *stubMapper) WriteCHR(addr uint16, val uint8)    { s.chr[addr] = val }
func (s *stubMapper) Mirroring() cartridge.Mirroring     { return s.mirroring }
func (s *stubMapper) HasSaveRAM() bool                   { return false }
func (s *stubMapper) Reset()                             {}

func TestReadWritePatternTable(t *testing.T) {
	m := &stubMapper{}
	b := New(m)
	b.Write(0x0123, 0x77)
	if got := b.Read(0x0123); got != 0x77 {
		t.Fatalf("Read($0123) = $%02X, want $77", got)
	}
}

func TestHorizontalMirroring(t *testing.T) {
	m := &stubMapper{mirroring: cartridge.MirrorHorizontal}
	b := New(m)
	b.Write(0x2000, 0xAA)
	if got := b.Read(0x2400); got != 0xAA {
		t.Fatalf("horizontal mirror: Read($2400) = $%02X, want $AA", got)
	}
	b.Write(0x2800, 0xBB)
	if got := b.Read(0x2C00); got != 0xBB {
		t.Fatalf("horizontal mirror: Read($2C00) = $%02X, want $BB", got)
	}
}

func TestOneScreenMirroring(t *testing.T) {
	m := &stubMapper{mirroring: cartridge.MirrorOneScreenLower}
	b := New(m)
	b.Write(0x2000, 0x11)
	if got := b.Read(0x2C00); got != 0x11 {
		t.Fatalf("one-screen mirror: Read($2C00) = $%02X, want $11", got)
	}
}

func TestPaletteMirroring(t *testing.T) {
	m := &stubMapper{}
	b := New(m)
	b.Write(0x3F00, 0x22)
	if got := b.Read(0x3F10); got != 0x22 {
		t.Fatalf("palette alias: Read($3F10) = $%02X, want $22", got)
	}
	if got := b.Read(0x3F04); got != 0x00 {
		t.Fatalf("Read($3F04) = $%02X, want $00 (not yet written)", got)
	}
}
