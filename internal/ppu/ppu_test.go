package ppu

import (
	"testing"

	"github.com/kbolino/nesgo/internal/cartridge"
	"github.com/kbolino/nesgo/internal/ppubus"
)

type stubMapper struct {
	chr [0x2000]uint8
}

func (s *stubMapper) ID() uint16                     { return 0 }
func (s *stubMapper) Name() string                   { return "stub" }
func (s *stubMapper) Read(addr uint16) uint8          { return 0 }
func (s *stubMapper) Write(addr uint16, val uint8)    {}
func (s *stubMapper) ReadCHR(addr uint16) uint8       { return s.chr[addr] }
func (s *stubMapper) WriteCHR(addr uint16, val uint8) { s.chr[addr] = val }
func (s *stubMapper) Mirroring() cartridge.Mirroring  { return cartridge.MirrorHorizontal }
func (s *stubMapper) HasSaveRAM() bool                { return false }
func (s *stubMapper) Reset()                          {}

func newTestPPU() *PPU {
	return New(ppubus.New(&stubMapper{}))
}

func TestWriteRegisterGuardedBeforeWarmup(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2000, 0x80, 0) // too early, NMI enable should not latch
	if p.ctrl != 0 {
		t.Fatalf("ctrl = $%02X, want $00 (write guarded before warm-up)", p.ctrl)
	}
	p.WriteRegister(0x2000, 0x80, warmupCPUCycles)
	if p.ctrl != 0x80 {
		t.Fatalf("ctrl = $%02X, want $80 (write allowed after warm-up)", p.ctrl)
	}
}

func TestStatusReadClearsVBlankAndLatch(t *testing.T) {
	p := newTestPPU()
	p.status = statusVBlank
	p.writeLatch = true
	v := p.ReadRegister(0x2002)
	if v&statusVBlank == 0 {
		t.Fatalf("read did not report vblank bit set")
	}
	if p.status&statusVBlank != 0 {
		t.Fatalf("status vblank bit not cleared after read")
	}
	if p.writeLatch {
		t.Fatalf("write latch not cleared after $2002 read")
	}
}

func TestOAMReadWrite(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2003, 0x10, warmupCPUCycles) // OAMADDR = $10
	p.WriteRegister(0x2004, 0x55, warmupCPUCycles) // OAMDATA write, auto-increments
	if p.oam[0x10] != 0x55 {
		t.Fatalf("oam[$10] = $%02X, want $55", p.oam[0x10])
	}
	if p.oamAddr != 0x11 {
		t.Fatalf("oamAddr = $%02X, want $11 after write", p.oamAddr)
	}
}

func TestPPUDataReadIsBuffered(t *testing.T) {
	p := newTestPPU()
	p.Bus.Write(0x0005, 0x42)
	p.v.data = 0x0005
	first := p.ReadRegister(0x2007)
	if first != 0x00 {
		t.Fatalf("first $2007 read = $%02X, want $00 (stale buffer)", first)
	}
	second := p.ReadRegister(0x2007)
	if second != 0x42 {
		t.Fatalf("second $2007 read = $%02X, want $42", second)
	}
}

func TestNMIEdgeTrigger(t *testing.T) {
	p := newTestPPU()
	p.status = statusVBlank
	// Enabling NMI while vblank is already active should raise one.
	p.WriteRegister(0x2000, ctrlNMIEnable, warmupCPUCycles)
	if !p.PollNMI() {
		t.Fatalf("expected NMI pending after re-enabling during vblank")
	}
	if p.PollNMI() {
		t.Fatalf("PollNMI should clear the pending flag")
	}
}
