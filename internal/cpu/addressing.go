package cpu

// AddrMode identifies how an opcode's operand bytes are turned into an
// effective address (or, for Implied/Accumulator, not turned into one
// at all).
type AddrMode uint8

const (
	ModeImplied AddrMode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
	ModeRelative
)

// operand is the decoded result of reading an opcode's operand bytes:
// the effective address (zero and unused for Implied/Accumulator; for
// Immediate, the address of the immediate byte itself), and whether
// computing it crossed a page boundary.
type operand struct {
	addr    uint16
	crossed bool
}

// decodeOperand reads the bytes following an opcode according to mode,
// advancing PC, and returns the effective address plus whether forming
// it crossed a page boundary (relevant for AbsoluteX/Y and IndirectY).
func (c *CPU) decodeOperand(mode AddrMode) operand {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return operand{}
	case ModeImmediate:
		addr := c.PC
		c.PC++
		return operand{addr: addr}
	case ModeZeroPage:
		addr := uint16(c.fetch8())
		return operand{addr: addr}
	case ModeZeroPageX:
		addr := uint16(c.fetch8() + c.X)
		return operand{addr: addr}
	case ModeZeroPageY:
		addr := uint16(c.fetch8() + c.Y)
		return operand{addr: addr}
	case ModeAbsolute:
		addr := c.fetch16()
		return operand{addr: addr}
	case ModeAbsoluteX:
		base := c.fetch16()
		addr := base + uint16(c.X)
		return operand{addr: addr, crossed: (base & 0xFF00) != (addr & 0xFF00)}
	case ModeAbsoluteY:
		base := c.fetch16()
		addr := base + uint16(c.Y)
		return operand{addr: addr, crossed: (base & 0xFF00) != (addr & 0xFF00)}
	case ModeIndirect:
		ptr := c.fetch16()
		addr := c.readIndirectBug(ptr)
		return operand{addr: addr}
	case ModeIndirectX:
		base := c.fetch8() + c.X
		lo := uint16(c.Bus.Read(uint16(base)))
		hi := uint16(c.Bus.Read(uint16(base + 1)))
		return operand{addr: (hi << 8) | lo}
	case ModeIndirectY:
		base := c.fetch8()
		lo := uint16(c.Bus.Read(uint16(base)))
		hi := uint16(c.Bus.Read(uint16(base + 1)))
		ptr := (hi << 8) | lo
		addr := ptr + uint16(c.Y)
		return operand{addr: addr, crossed: (ptr & 0xFF00) != (addr & 0xFF00)}
	case ModeRelative:
		offset := int8(c.fetch8())
		base := c.PC
		addr := uint16(int32(base) + int32(offset))
		return operand{addr: addr, crossed: (base & 0xFF00) != (addr & 0xFF00)}
	default:
		panic("nesgo: unhandled addressing mode")
	}
}

// readIndirectBug implements JMP ($xxFF)'s page-wrap bug: the high byte
// is fetched from the start of the same page, not the next page.
func (c *CPU) readIndirectBug(ptr uint16) uint16 {
	lo := uint16(c.Bus.Read(ptr))
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := uint16(c.Bus.Read(hiAddr))
	return (hi << 8) | lo
}

func (c *CPU) fetch8() uint8 {
	v := c.Bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch8())
	hi := uint16(c.fetch8())
	return (hi << 8) | lo
}
