package apu

import "testing"

func TestLengthCounterHaltPreventsDecrement(t *testing.T) {
	var l lengthCounter
	l.setEnabled(true)
	l.setLength(0) // lengthTable[0] = 10
	l.setHalt(true)
	l.tick()
	if l.counter != 10 {
		t.Fatalf("counter = %d, want 10 (halted)", l.counter)
	}
}

func TestLengthCounterDisableZeroes(t *testing.T) {
	var l lengthCounter
	l.setEnabled(true)
	l.setLength(0)
	l.setEnabled(false)
	if l.isActive() {
		t.Fatalf("isActive() = true after disable, want false")
	}
}

func TestEnvelopeRestartThenDecay(t *testing.T) {
	var e envelope
	e.write(0x00) // volume 0, not constant, no loop
	e.restart()
	e.tick() // first tick after start reloads decay=15
	if e.decay != 15 {
		t.Fatalf("decay = %d, want 15 right after restart", e.decay)
	}
}

func TestEnvelopeConstantVolume(t *testing.T) {
	var e envelope
	e.write(0x1F) // constant flag + volume 15
	if e.output() != 15 {
		t.Fatalf("output() = %d, want 15 (constant volume)", e.output())
	}
}

func TestSweepMutesBelowMinimumPeriod(t *testing.T) {
	s := newSweep(1)
	if !s.isMuting(4) {
		t.Fatalf("isMuting(4) = false, want true (below 8)")
	}
}

func TestSweepTargetPeriodOnesComplement(t *testing.T) {
	s := newSweep(1)
	s.shift = 1
	s.negate = true
	// timer=100, change=50, target = 100-50-1 = 49
	if got := s.targetPeriod(100); got != 49 {
		t.Fatalf("targetPeriod = %d, want 49", got)
	}
}

func TestPulseActiveAfterLengthLoad(t *testing.T) {
	p := NewPulse1()
	p.SetEnabled(true)
	p.WriteRegister(0, 0x80) // duty 2 (50%), envelope mode, volume 0
	p.WriteRegister(1, 0)
	p.WriteRegister(2, 0)
	p.WriteRegister(3, 0x08) // length index nonzero, timer high 0
	if !p.IsActive() {
		t.Fatalf("pulse not active after enabling with nonzero length")
	}
}

func TestNoiseMutesOnShiftBitZero(t *testing.T) {
	n := NewNoise()
	n.SetEnabled(true)
	n.WriteRegister(3, 0x08) // load a nonzero length so only the LFSR decides
	n.shift = 0x02           // bit0 = 0
	if n.IsMute() {
		t.Fatalf("IsMute() = true with shift bit0=0, want false")
	}
	n.shift = 0x03 // bit0 = 1
	if !n.IsMute() {
		t.Fatalf("IsMute() = false with shift bit0=1, want true")
	}
}

func TestTriangleUltrasonicMute(t *testing.T) {
	tr := NewTriangle()
	tr.SetEnabled(true)
	tr.WriteRegister(0, 0x80) // control flag, linear load
	tr.WriteRegister(2, 0x00)
	tr.WriteRegister(3, 0x00) // length set, period = 0 (below the audible floor of 2)
	tr.linearCounter = 1
	if !tr.IsActive() {
		t.Fatalf("triangle length counter not active, test setup invalid")
	}
	if !tr.IsMute() {
		t.Fatalf("triangle with period<2 should be muted (anti-pop rule)")
	}
}

type fakeMemory struct{ data [0x10000]uint8 }

func (f *fakeMemory) Read(addr uint16) uint8 { return f.data[addr] }

func TestDMCSampleAddressFormula(t *testing.T) {
	mem := &fakeMemory{}
	d := NewDMC(mem)
	d.WriteRegister(2, 0x01) // $C000 + 1*64 = $C040
	if d.sampleAddr != 0xC040 {
		t.Fatalf("sampleAddr = $%04X, want $C040", d.sampleAddr)
	}
}

func TestDMCRestartOnEnable(t *testing.T) {
	mem := &fakeMemory{}
	d := NewDMC(mem)
	d.WriteRegister(2, 0x00) // $C000
	d.WriteRegister(3, 0x00) // length = 1
	d.SetEnabled(true)
	if !d.IsActive() {
		t.Fatalf("DMC not active immediately after enabling with nonzero length")
	}
	if d.currentAddr != 0xC000 {
		t.Fatalf("currentAddr = $%04X, want $C000", d.currentAddr)
	}
}

func TestAPUWriteRegisterDispatch(t *testing.T) {
	mem := &fakeMemory{}
	a := New(mem)
	a.WriteRegister(0x4000, 0x3F) // pulse1 duty/envelope
	if a.Pulse1.envelope.volume != 0x0F {
		t.Fatalf("pulse1 envelope volume = %d, want 15", a.Pulse1.envelope.volume)
	}
	a.WriteRegister(0x4015, 0x01) // enable pulse1 only
	if !a.Pulse1.enabled {
		t.Fatalf("pulse1 not enabled after $4015 write")
	}
	if a.Pulse2.enabled {
		t.Fatalf("pulse2 unexpectedly enabled")
	}
}

func TestAPUReadStatusClearsFrameIRQ(t *testing.T) {
	mem := &fakeMemory{}
	a := New(mem)
	a.frame.irqLatch = true
	v := a.ReadStatus()
	if v&0x40 == 0 {
		t.Fatalf("status byte frame-IRQ bit not set")
	}
	if a.frame.irqLatch {
		t.Fatalf("frame IRQ latch not cleared by status read")
	}
}

func TestAPUSampleMixerStaysInRange(t *testing.T) {
	mem := &fakeMemory{}
	a := New(mem)
	a.WriteRegister(0x4000, 0x3F)
	a.WriteRegister(0x4003, 0x08)
	a.WriteRegister(0x4015, 0x01)
	for i := 0; i < 1000; i++ {
		a.Tick()
	}
	for _, s := range a.GetBuffer() {
		if s < -2 || s > 2 {
			t.Fatalf("mixed sample %f out of plausible range", s)
		}
	}
}
