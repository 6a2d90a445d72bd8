// Package machine composes the bus, CPU, PPU and APU into the
// host-facing NES emulation surface.
package machine

import (
	"fmt"

	"github.com/kbolino/nesgo/internal/bus"
	"github.com/kbolino/nesgo/internal/cartridge"
	"github.com/kbolino/nesgo/internal/cpu"
	"github.com/kbolino/nesgo/internal/mappers"
	"github.com/kbolino/nesgo/internal/ppu"
	"github.com/kbolino/nesgo/internal/ppubus"
)

// Machine is a complete, runnable NES: bus, CPU, PPU and APU wired
// together behind a small stepping API.
type Machine struct {
	bus    *bus.Bus
	cpu    *cpu.CPU
	ppu    *ppu.PPU
	ppuBus *ppubus.Bus
}

// New parses rom as an iNES image, builds its mapper, and wires up a
// fresh machine ready to Reset and step.
func New(rom []byte) (*Machine, error) {
	m := &Machine{}
	if err := m.SetCartridge(rom); err != nil {
		return nil, err
	}
	return m, nil
}

// SetCartridge parses rom and hot-swaps it into an existing (or not yet
// built) machine, rebuilding the mapper, bus, PPU and CPU.
func (m *Machine) SetCartridge(rom []byte) error {
	cart, err := cartridge.New(rom)
	if err != nil {
		return fmt.Errorf("nesgo: load cartridge: %w", err)
	}
	mapper, err := mappers.New(cart)
	if err != nil {
		return fmt.Errorf("nesgo: build mapper: %w", err)
	}

	m.ppuBus = ppubus.New(mapper)
	m.ppu = ppu.New(m.ppuBus)
	m.bus = bus.New()
	m.bus.PPU = m.ppu
	m.bus.SetMapper(mapper)
	m.cpu = cpu.New(m.bus)
	m.cpu.Reset()
	return nil
}

// Reset re-arms the machine as if the RESET line had been asserted.
func (m *Machine) Reset() {
	m.cpu.Reset()
}

// StepFrame runs the CPU until the PPU enters vertical blank.
func (m *Machine) StepFrame() {
	wasVBlank := m.ppu.InVBlank()
	for {
		m.step()
		if m.ppu.InVBlank() && !wasVBlank {
			return
		}
		wasVBlank = m.ppu.InVBlank()
	}
}

// StepVBlank runs the CPU until the PPU leaves vertical blank.
func (m *Machine) StepVBlank() {
	for m.ppu.InVBlank() {
		m.step()
	}
}

func (m *Machine) step() {
	cycles := m.cpu.Step()
	for i := 0; i < cycles; i++ {
		m.bus.Tick()
	}
}

// FrameBuffer returns the current 256x240 frame as one system-palette
// index per pixel.
func (m *Machine) FrameBuffer() []uint8 {
	return m.ppu.FrameBuffer[:]
}

// AudioBuffer returns the samples accumulated since the last
// ClearAudioBuffer call.
func (m *Machine) AudioBuffer() []float32 {
	return m.bus.APU.GetBuffer()
}

// ClearAudioBuffer empties the audio sample buffer.
func (m *Machine) ClearAudioBuffer() {
	m.bus.APU.ClearBuffer()
}

// SetControllerState sets controller id's (0 or 1) current button
// bitmap, in A/B/Select/Start/Up/Down/Left/Right order.
func (m *Machine) SetControllerState(id int, state uint8) {
	m.bus.Controllers.SetState(id, state)
}
