package apu

// frameCounter sequences the quarter/half-frame envelope, sweep and
// length-counter ticks and optionally latches a frame IRQ, following the
// NTSC cycle table documented in the APU section of the specification.
type frameCounter struct {
	fiveStepMode bool
	irqInhibit   bool
	cycle        uint32
	irqLatch     bool
}

type frameEvent uint8

const (
	frameEventNone frameEvent = iota
	frameEventQuarter
	frameEventHalf
)

func (f *frameCounter) write(val uint8) {
	f.fiveStepMode = val&0x80 != 0
	f.irqInhibit = val&0x40 != 0
	if f.irqInhibit {
		f.irqLatch = false
	}
	f.cycle = 0
}

// tick advances the frame counter by one CPU cycle and reports which
// quarter/half-frame event (if any) fires this cycle.
func (f *frameCounter) tick() frameEvent {
	f.cycle++

	if f.fiveStepMode {
		switch f.cycle {
		case 7457, 22371:
			return frameEventQuarter
		case 14913:
			return frameEventHalf
		case 37281:
			return frameEventHalf
		case 37282:
			f.cycle = 0
			return frameEventNone
		}
		return frameEventNone
	}

	switch f.cycle {
	case 7457, 22371:
		return frameEventQuarter
	case 14913:
		return frameEventHalf
	case 29828:
		if !f.irqInhibit {
			f.irqLatch = true
		}
		return frameEventNone
	case 29829:
		if !f.irqInhibit {
			f.irqLatch = true
		}
		return frameEventHalf
	case 29830:
		if !f.irqInhibit {
			f.irqLatch = true
		}
		f.cycle = 0
		return frameEventNone
	}
	return frameEventNone
}
