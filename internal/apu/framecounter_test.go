package apu

import "testing"

func tickN(f *frameCounter, n int) frameEvent {
	var last frameEvent
	for i := 0; i < n; i++ {
		last = f.tick()
	}
	return last
}

func TestFourStepModeQuarterAndHalfEvents(t *testing.T) {
	var f frameCounter
	if ev := tickN(&f, 7457); ev != frameEventQuarter {
		t.Fatalf("cycle 7457 event = %v, want quarter", ev)
	}
	if ev := tickN(&f, 14913-7457); ev != frameEventHalf {
		t.Fatalf("cycle 14913 event = %v, want half", ev)
	}
}

func TestFourStepModeIRQAtWrap(t *testing.T) {
	var f frameCounter
	tickN(&f, 29829)
	if !f.irqLatch {
		t.Fatalf("irqLatch not set by cycle 29829")
	}
	ev := f.tick() // cycle 29830: wraps to 0
	if ev != frameEventNone {
		t.Fatalf("cycle 29830 event = %v, want none", ev)
	}
	if f.cycle != 0 {
		t.Fatalf("cycle = %d, want 0 after wrap", f.cycle)
	}
}

func TestFourStepModeIRQInhibited(t *testing.T) {
	var f frameCounter
	f.irqInhibit = true
	tickN(&f, 29830)
	if f.irqLatch {
		t.Fatalf("irqLatch set despite inhibit flag")
	}
}

func TestFiveStepModeNoIRQAtWrap(t *testing.T) {
	var f frameCounter
	f.fiveStepMode = true
	tickN(&f, 37281)
	if !f.fiveStepMode {
		t.Fatalf("fiveStepMode unexpectedly cleared")
	}
	ev := f.tick() // 37282: wrap, no event, no IRQ ever
	if ev != frameEventNone {
		t.Fatalf("cycle 37282 event = %v, want none", ev)
	}
	if f.cycle != 0 {
		t.Fatalf("cycle = %d, want 0 after wrap", f.cycle)
	}
	if f.irqLatch {
		t.Fatalf("five-step mode must never latch a frame IRQ")
	}
}

func TestWriteResetsCycleAndMode(t *testing.T) {
	var f frameCounter
	f.cycle = 12345
	f.write(0x80) // five-step mode, IRQ not inhibited
	if !f.fiveStepMode {
		t.Fatalf("fiveStepMode not set by write($80)")
	}
	if f.cycle != 0 {
		t.Fatalf("cycle = %d, want 0 after write", f.cycle)
	}
}
