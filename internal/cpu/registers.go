package cpu

import "github.com/kbolino/nesgo/internal/bits"

// Status flag bit positions, matching the layout the specification
// assigns: C=0, Z=1, I=2, D=3, B=4, unused=5, V=6, N=7.
const (
	FlagC uint8 = 0
	FlagZ uint8 = 1
	FlagI uint8 = 2
	FlagD uint8 = 3
	FlagB uint8 = 4
	flagU uint8 = 5
	FlagV uint8 = 6
	FlagN uint8 = 7
)

func (c *CPU) getFlag(f uint8) bool {
	return bits.Contains(c.Status, f)
}

func (c *CPU) setFlag(f uint8, cond bool) {
	c.Status = bits.Update(c.Status, f, cond)
}

// setZN updates the Zero and Negative flags from v, the standard
// post-operation flag update every load/transfer/most ALU ops perform.
func (c *CPU) setZN(v uint8) {
	c.setFlag(FlagZ, v == 0)
	c.setFlag(FlagN, v&0x80 != 0)
}
