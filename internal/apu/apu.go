// Package apu implements the NES's five-channel audio processing unit:
// two pulse channels, triangle, noise and DMC, a frame sequencer, and the
// standard non-linear mixer feeding a three-stage biquad filter chain.
package apu

import "github.com/kbolino/nesgo/internal/bits"

const sampleEveryCycles = 41
const frameSampleCapacity = 735

// APU composes the five channels, the frame sequencer and the output
// mixer/filter chain.
type APU struct {
	Pulse1   *Pulse
	Pulse2   *Pulse
	Triangle *Triangle
	Noise    *Noise
	DMC      *DMC

	frame frameCounter
	cycle uint64

	filters *bits.Chain
	buffer  []float32
}

// New builds an APU. mem services the DMC channel's sample fetches,
// modeled after the CPU-visible address space.
func New(mem MemoryReader) *APU {
	return &APU{
		Pulse1:   NewPulse1(),
		Pulse2:   NewPulse2(),
		Triangle: NewTriangle(),
		Noise:    NewNoise(),
		DMC:      NewDMC(mem),
		filters: bits.NewChain(
			bits.HighPass(44100, 90),
			bits.HighPass(44100, 440),
			bits.LowPass(44100, 14000),
		),
		buffer: make([]float32, 0, frameSampleCapacity),
	}
}

// WriteRegister dispatches a CPU write in the $4000-$4017 APU window.
func (a *APU) WriteRegister(addr uint16, val uint8) {
	switch {
	case addr >= 0x4000 && addr <= 0x4003:
		a.Pulse1.WriteRegister(addr, val)
	case addr >= 0x4004 && addr <= 0x4007:
		a.Pulse2.WriteRegister(addr, val)
	case addr >= 0x4008 && addr <= 0x400B:
		a.Triangle.WriteRegister(addr, val)
	case addr >= 0x400C && addr <= 0x400F:
		a.Noise.WriteRegister(addr, val)
	case addr >= 0x4010 && addr <= 0x4013:
		a.DMC.WriteRegister(addr, val)
	case addr == 0x4015:
		a.writeStatus(val)
	case addr == 0x4017:
		a.frame.write(val)
	}
}

func (a *APU) writeStatus(val uint8) {
	a.Pulse1.SetEnabled(val&0x01 != 0)
	a.Pulse2.SetEnabled(val&0x02 != 0)
	a.Triangle.SetEnabled(val&0x04 != 0)
	a.Noise.SetEnabled(val&0x08 != 0)
	a.DMC.SetEnabled(val&0x10 != 0)
	a.DMC.ClearIRQ()
}

// ReadStatus services a CPU read of $4015, clearing the frame IRQ latch.
func (a *APU) ReadStatus() uint8 {
	var v uint8
	v = bits.Update(v, 0, a.Pulse1.IsActive())
	v = bits.Update(v, 1, a.Pulse2.IsActive())
	v = bits.Update(v, 2, a.Triangle.IsActive())
	v = bits.Update(v, 3, a.Noise.IsActive())
	v = bits.Update(v, 4, a.DMC.IsActive())
	v = bits.Update(v, 6, a.frame.irqLatch)
	v = bits.Update(v, 7, a.DMC.IRQPending())
	a.frame.irqLatch = false
	return v
}

// PollIRQ reports whether either the frame counter or the DMC has a
// latched IRQ pending.
func (a *APU) PollIRQ() bool {
	return a.frame.irqLatch || a.DMC.IRQPending()
}

// PendingDMACycles reports how many extra CPU cycles the most recent
// DMC sample fetch consumed.
func (a *APU) PendingDMACycles() int {
	return a.DMC.PendingDMACycles
}

// Tick advances the APU by one CPU cycle.
func (a *APU) Tick() {
	a.cycle++

	a.Triangle.TickTimer()
	if a.cycle%2 == 0 {
		a.Pulse1.TickTimer()
		a.Pulse2.TickTimer()
		a.Noise.TickTimer()
		a.DMC.TickTimer()
	}

	switch a.frame.tick() {
	case frameEventQuarter:
		a.tickQuarter()
	case frameEventHalf:
		a.tickQuarter()
		a.tickHalf()
	}

	if a.cycle%sampleEveryCycles == 0 {
		a.sample()
	}
}

func (a *APU) tickQuarter() {
	a.Pulse1.TickQuarterFrame()
	a.Pulse2.TickQuarterFrame()
	a.Triangle.TickQuarterFrame()
	a.Noise.TickQuarterFrame()
}

func (a *APU) tickHalf() {
	a.Pulse1.TickHalfFrame()
	a.Pulse2.TickHalfFrame()
	a.Triangle.TickHalfFrame()
	a.Noise.TickHalfFrame()
}

func (a *APU) sample() {
	p1 := float64(GetSample(a.Pulse1))
	p2 := float64(GetSample(a.Pulse2))
	t := float64(GetSample(a.Triangle))
	n := float64(GetSample(a.Noise))
	d := float64(GetSample(a.DMC))

	var pulseOut float64
	if p1+p2 > 0 {
		pulseOut = 95.88 / (8128/(p1+p2) + 100)
	}

	var tndOut float64
	if t > 0 || n > 0 || d > 0 {
		tndOut = 159.79 / (1/(t/8227+n/12241+d/22638) + 100)
	}

	sample := pulseOut + tndOut
	filtered := a.filters.Process(sample)

	if len(a.buffer) < frameSampleCapacity {
		a.buffer = append(a.buffer, float32(filtered))
	}
}

// GetBuffer returns the samples collected since the last ClearBuffer.
func (a *APU) GetBuffer() []float32 {
	return a.buffer
}

// ClearBuffer empties the sample buffer.
func (a *APU) ClearBuffer() {
	a.buffer = a.buffer[:0]
}
