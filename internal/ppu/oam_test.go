package ppu

import "testing"

func TestSpriteFromBytes(t *testing.T) {
	s := spriteFromBytes([4]uint8{0x50, 0x12, 0b11100001, 0x30})
	if s.y != 0x50 || s.tile != 0x12 || s.x != 0x30 {
		t.Fatalf("sprite = %+v, want y=$50 tile=$12 x=$30", s)
	}
	if s.palette() != 1 {
		t.Fatalf("palette() = %d, want 1", s.palette())
	}
	if s.priority() != 1 {
		t.Fatalf("priority() = %d, want 1", s.priority())
	}
	if !s.flipH() || !s.flipV() {
		t.Fatalf("flipH=%v flipV=%v, want both true", s.flipH(), s.flipV())
	}
}
