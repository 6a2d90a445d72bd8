package controller

import "testing"

func TestStrobeAndReadOrder(t *testing.T) {
	var s State
	s.SetState(0, 0b10100101)
	s.Write(1) // strobe high: reload shift registers
	s.Write(0) // strobe low: latch and begin shifting

	want := []uint8{1, 0, 1, 0, 0, 1, 0, 1}
	for i, w := range want {
		got := s.Read(0)
		if got != w {
			t.Fatalf("read %d = %d, want %d", i, got, w)
		}
	}
}

func TestButtonAIsFirstBitOut(t *testing.T) {
	var s State
	s.SetState(0, ButtonA)
	s.Write(1)
	s.Write(0)
	if got := s.Read(0); got != 1 {
		t.Fatalf("first read with only ButtonA held = %d, want 1", got)
	}
}

func TestSecondControllerIndependent(t *testing.T) {
	var s State
	s.SetState(0, 0xFF)
	s.SetState(1, 0x00)
	s.Write(1)
	s.Write(0)
	if s.Read(0) != 1 {
		t.Fatalf("controller 0 first bit = %d, want 1", s.Read(0))
	}
	if s.Read(1) != 0 {
		t.Fatalf("controller 1 first bit = %d, want 0", s.Read(1))
	}
}

func TestResetClearsState(t *testing.T) {
	var s State
	s.SetState(0, 0xFF)
	s.Write(1)
	s.Reset()
	if s.Read(0) != 0 {
		t.Fatalf("Read after Reset = %d, want 0", s.Read(0))
	}
}
