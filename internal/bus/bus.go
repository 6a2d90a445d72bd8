// Package bus implements the NES main bus: 2 KiB of mirrored work RAM,
// the MMIO dispatch table routing to the PPU, APU, controllers and
// cartridge mapper, and the OAM DMA controller.
package bus

import (
	"github.com/kbolino/nesgo/internal/apu"
	"github.com/kbolino/nesgo/internal/controller"
	"github.com/kbolino/nesgo/internal/mappers"
	"github.com/kbolino/nesgo/internal/ppu"
)

const ramSize = 0x0800

// Bus wires RAM, the PPU, APU, controllers and mapper behind the CPU's
// single 16-bit address space. It satisfies cpu.Bus.
type Bus struct {
	ram [ramSize]uint8

	PPU         *ppu.PPU
	APU         *apu.APU
	Controllers controller.State
	Mapper      mappers.Mapper

	cycle uint64

	dmaPending bool
	dmaPage    uint8
}

// New builds a bus with its APU wired in. The PPU field must be assigned
// by the caller, and the mapper set with SetMapper once a cartridge is
// loaded.
func New() *Bus {
	b := &Bus{}
	b.APU = apu.New(b)
	return b
}

// SetMapper installs the cartridge's mapper for CPU-side addressing. The
// PPU-side bus is wired to the same mapper separately by the machine.
func (b *Bus) SetMapper(m mappers.Mapper) {
	b.Mapper = m
}

// Read services a CPU memory read.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram[addr%ramSize]
	case addr < 0x4000:
		reg := 0x2000 + (addr % 8)
		return b.PPU.ReadRegister(reg)
	case addr == 0x4015:
		return b.APU.ReadStatus()
	case addr == 0x4016:
		return b.Controllers.Read(0)
	case addr == 0x4017:
		return b.Controllers.Read(1)
	case addr < 0x4018:
		return 0
	default:
		if b.Mapper != nil {
			return b.Mapper.Read(addr)
		}
		return 0
	}
}

// Write services a CPU memory write.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		b.ram[addr%ramSize] = val
	case addr < 0x4000:
		reg := 0x2000 + (addr % 8)
		b.PPU.WriteRegister(reg, val, b.cycle)
	case addr >= 0x4000 && addr <= 0x4013:
		b.APU.WriteRegister(addr, val)
	case addr == 0x4014:
		b.dmaPending = true
		b.dmaPage = val
	case addr == 0x4015:
		b.APU.WriteRegister(addr, val)
	case addr == 0x4016:
		b.Controllers.Write(val)
	case addr == 0x4017:
		b.APU.WriteRegister(addr, val)
	default:
		if b.Mapper != nil {
			b.Mapper.Write(addr, val)
		}
	}
}

// PollNMI forwards the PPU's edge-triggered NMI line.
func (b *Bus) PollNMI() bool {
	return b.PPU.PollNMI()
}

// PollIRQ forwards the APU's level-triggered IRQ line (frame counter and
// DMC), OR'd with any mapper-asserted IRQ.
func (b *Bus) PollIRQ() bool {
	if b.APU.PollIRQ() {
		return true
	}
	if irqMapper, ok := b.Mapper.(interface{ IRQPending() bool }); ok {
		return irqMapper.IRQPending()
	}
	return false
}

// PollOAMDMA reports and clears a pending $4014-triggered OAM DMA.
func (b *Bus) PollOAMDMA() (uint8, bool) {
	if !b.dmaPending {
		return 0, false
	}
	b.dmaPending = false
	return b.dmaPage, true
}

// DMCDMACycles reports how many cycles the APU's DMC channel stole on
// its most recent sample fetch.
func (b *Bus) DMCDMACycles() int {
	return b.APU.PendingDMACycles()
}

// Tick advances the PPU three dots and the APU one CPU cycle, then bumps the elapsed-cycle counter used for the PPU's
// power-on register write guard.
func (b *Bus) Tick() {
	b.PPU.Tick()
	b.PPU.Tick()
	b.PPU.Tick()
	b.APU.Tick()
	b.cycle++
}
