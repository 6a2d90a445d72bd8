package ppu

// sprite is the 4-byte decoded form of one primary/secondary OAM entry.
type sprite struct {
	y        uint8
	tile     uint8
	attr     uint8
	x        uint8
}

func spriteFromBytes(b [4]uint8) sprite {
	return sprite{y: b[0], tile: b[1], attr: b[2], x: b[3]}
}

func (s sprite) palette() uint8   { return s.attr & 0x03 }
func (s sprite) priority() uint8  { return (s.attr >> 5) & 1 } // 0 = in front of background
func (s sprite) flipH() bool      { return s.attr&0x40 != 0 }
func (s sprite) flipV() bool      { return s.attr&0x80 != 0 }
