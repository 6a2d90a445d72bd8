// Package ppu implements a dot-accurate NES picture processing unit:
// background and sprite pipelines, the Loopy scroll-address model, and
// NMI generation, rendering into a 256x240 palette-index frame buffer.
package ppu

import "github.com/kbolino/nesgo/internal/ppubus"

const (
	dotsPerScanline    = 341
	scanlinesPerFrame  = 262
	visibleWidth       = 256
	visibleHeight      = 240
	warmupCPUCycles    = 29658
)

// Control register bits ($2000).
const (
	ctrlNametableMask  = 0x03
	ctrlIncrement32    = 1 << 2
	ctrlSpritePattern  = 1 << 3
	ctrlBGPattern      = 1 << 4
	ctrlSpriteHeight16 = 1 << 5
	ctrlNMIEnable      = 1 << 7
)

// Mask register bits ($2001).
const (
	maskGreyscale       = 1 << 0
	maskShowBGLeft      = 1 << 1
	maskShowSpritesLeft = 1 << 2
	maskShowBG          = 1 << 3
	maskShowSprites     = 1 << 4
)

// Status register bits ($2002).
const (
	statusSpriteOverflow = 1 << 5
	statusSprite0Hit     = 1 << 6
	statusVBlank         = 1 << 7
)

// PPU renders one frame at a time into FrameBuffer, driven one dot per
// call to Tick.
type PPU struct {
	Bus *ppubus.Bus

	ctrl, mask, status uint8
	oamAddr             uint8
	oam                 [256]uint8
	secondaryOAM        [32]uint8

	spriteCount       int
	spritePatternLo   [8]uint8
	spritePatternHi   [8]uint8
	spriteAttr        [8]uint8
	spriteX           [8]uint8
	spriteZeroInRow   bool
	spriteZeroLoaded  bool

	v, t       loopy
	fineX      uint8
	writeLatch bool
	readBuffer uint8

	scanline int
	dot      int
	frameOdd bool

	bgNextTileID   uint8
	bgNextAttr     uint8
	bgNextLSB      uint8
	bgNextMSB      uint8
	bgShiftPatLo   uint16
	bgShiftPatHi   uint16
	bgShiftAttrLo  uint16
	bgShiftAttrHi  uint16

	nmiPending bool

	FrameBuffer [visibleWidth * visibleHeight]uint8
}

// New builds a PPU backed by the given PPU-side bus.
func New(bus *ppubus.Bus) *PPU {
	p := &PPU{Bus: bus}
	p.v = loopy{}
	p.t = loopy{}
	return p
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBG|maskShowSprites) != 0
}

// ReadRegister services a CPU read of $2000-$2007.
func (p *PPU) ReadRegister(reg uint16) uint8 {
	switch reg & 7 {
	case 2:
		v := (p.status & 0xE0) | (p.readBuffer & 0x1F)
		p.status &^= statusVBlank
		p.writeLatch = false
		return v
	case 4:
		return p.oam[p.oamAddr]
	case 7:
		val := p.readBuffer
		p.readBuffer = p.Bus.Read(p.v.data)
		if p.v.data >= 0x3F00 {
			val = p.readBuffer
		}
		p.incrementVRAMAddr()
		return val
	default:
		return p.readBuffer
	}
}

// WriteRegister services a CPU write of $2000-$2007. cpuCycle is the
// total elapsed CPU cycle count, used for the power-on warm-up guard.
func (p *PPU) WriteRegister(reg uint16, val uint8, cpuCycle uint64) {
	switch reg & 7 {
	case 0:
		if cpuCycle < warmupCPUCycles {
			return
		}
		wasEnabled := p.ctrl&ctrlNMIEnable != 0
		p.ctrl = val
		p.t.setNametableBits(uint16(val & ctrlNametableMask))
		if !wasEnabled && p.ctrl&ctrlNMIEnable != 0 && p.status&statusVBlank != 0 {
			p.nmiPending = true
		}
	case 1:
		if cpuCycle < warmupCPUCycles {
			return
		}
		p.mask = val
	case 3:
		p.oamAddr = val
	case 4:
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case 5:
		if cpuCycle < warmupCPUCycles {
			return
		}
		if !p.writeLatch {
			p.fineX = val & 0x07
			p.t.setCoarseX(uint16(val >> 3))
		} else {
			p.t.setFineY(uint16(val & 0x07))
			p.t.setCoarseY(uint16(val >> 3))
		}
		p.writeLatch = !p.writeLatch
	case 6:
		if cpuCycle < warmupCPUCycles {
			return
		}
		if !p.writeLatch {
			p.t.data = (p.t.data & 0x00FF) | (uint16(val&0x3F) << 8)
		} else {
			p.t.data = (p.t.data & 0xFF00) | uint16(val)
			p.v = p.t
		}
		p.writeLatch = !p.writeLatch
	case 7:
		p.Bus.Write(p.v.data, val)
		p.incrementVRAMAddr()
	}
}

func (p *PPU) incrementVRAMAddr() {
	if p.ctrl&ctrlIncrement32 != 0 {
		p.v.data += 32
	} else {
		p.v.data++
	}
}

// WriteOAM stores a byte directly into primary OAM at addr.
func (p *PPU) WriteOAM(addr uint8, val uint8) {
	p.oam[addr] = val
}

// PollNMI is edge-triggered: it returns whether an NMI is pending and
// clears the latch.
func (p *PPU) PollNMI() bool {
	pending := p.nmiPending
	p.nmiPending = false
	return pending
}

// InVBlank reports the status register's vblank flag: set at scanline
// 241 dot 1, cleared at pre-render dot 1 or by a $2002 read.
func (p *PPU) InVBlank() bool {
	return p.status&statusVBlank != 0
}

// Tick advances the PPU by one dot.
func (p *PPU) Tick() {
	if p.scanline >= 0 && p.scanline <= 239 || p.scanline == 261 {
		p.doRenderScanline()
	}

	if p.scanline == 241 && p.dot == 1 {
		p.status |= statusVBlank
		if p.ctrl&ctrlNMIEnable != 0 {
			p.nmiPending = true
		}
	}

	p.dot++
	if p.scanline == 261 && p.dot == 340 && p.frameOdd && p.renderingEnabled() {
		p.dot++
	}
	if p.dot >= dotsPerScanline {
		p.dot = 0
		p.scanline++
		if p.scanline >= scanlinesPerFrame {
			p.scanline = 0
			p.frameOdd = !p.frameOdd
		}
	}
}

func (p *PPU) doRenderScanline() {
	if p.scanline == 261 && p.dot == 1 {
		p.status &^= statusVBlank | statusSprite0Hit | statusSpriteOverflow
	}

	if (p.dot >= 1 && p.dot <= 256) || (p.dot >= 321 && p.dot <= 336) {
		p.updateBGShifters()
		switch (p.dot - 1) % 8 {
		case 0:
			p.loadBGShifters()
			p.bgNextTileID = p.Bus.Read(0x2000 | (p.v.data & 0x0FFF))
		case 2:
			addr := 0x23C0 | (p.v.data & 0x0C00) | ((p.v.coarseY() >> 2) << 3) | (p.v.coarseX() >> 2)
			attr := p.Bus.Read(addr)
			if p.v.coarseY()&2 != 0 {
				attr >>= 4
			}
			if p.v.coarseX()&2 != 0 {
				attr >>= 2
			}
			p.bgNextAttr = attr & 0x03
		case 4:
			base := uint16(0)
			if p.ctrl&ctrlBGPattern != 0 {
				base = 0x1000
			}
			addr := base + uint16(p.bgNextTileID)*16 + p.v.fineY()
			p.bgNextLSB = p.Bus.Read(addr)
		case 6:
			base := uint16(0)
			if p.ctrl&ctrlBGPattern != 0 {
				base = 0x1000
			}
			addr := base + uint16(p.bgNextTileID)*16 + p.v.fineY() + 8
			p.bgNextMSB = p.Bus.Read(addr)
		case 7:
			if p.renderingEnabled() {
				p.v.incCoarseX()
			}
		}
	}

	if p.dot == 256 && p.renderingEnabled() {
		p.v.incFineY()
	}
	if p.dot == 257 {
		p.loadBGShifters()
		if p.renderingEnabled() {
			p.v.copyHorizontalFrom(p.t)
		}
	}
	if p.scanline == 261 && p.dot >= 280 && p.dot <= 304 && p.renderingEnabled() {
		p.v.copyVerticalFrom(p.t)
	}

	p.evaluateSprites()

	if p.scanline >= 0 && p.scanline < visibleHeight && p.dot >= 1 && p.dot <= visibleWidth {
		p.composePixel()
	}
}

func (p *PPU) loadBGShifters() {
	p.bgShiftPatLo = (p.bgShiftPatLo & 0xFF00) | uint16(p.bgNextLSB)
	p.bgShiftPatHi = (p.bgShiftPatHi & 0xFF00) | uint16(p.bgNextMSB)
	lo := uint16(0)
	hi := uint16(0)
	if p.bgNextAttr&1 != 0 {
		lo = 0x00FF
	}
	if p.bgNextAttr&2 != 0 {
		hi = 0x00FF
	}
	p.bgShiftAttrLo = (p.bgShiftAttrLo & 0xFF00) | lo
	p.bgShiftAttrHi = (p.bgShiftAttrHi & 0xFF00) | hi
}

func (p *PPU) updateBGShifters() {
	if !p.renderingEnabled() {
		return
	}
	p.bgShiftPatLo <<= 1
	p.bgShiftPatHi <<= 1
	p.bgShiftAttrLo <<= 1
	p.bgShiftAttrHi <<= 1
}

func (p *PPU) spriteHeight() int {
	if p.ctrl&ctrlSpriteHeight16 != 0 {
		return 16
	}
	return 8
}

// evaluateSprites performs the dots-1-64 secondary-OAM clear and the
// dots-65-320 evaluation/fetch phases, active on visible scanlines.
func (p *PPU) evaluateSprites() {
	if p.scanline < 0 || p.scanline > 239 {
		return
	}

	if p.dot == 1 {
		for i := range p.secondaryOAM {
			p.secondaryOAM[i] = 0xFF
		}
	}

	if p.dot == 65 {
		p.spriteCount = 0
		p.spriteZeroInRow = false
		n := 0
		height := p.spriteHeight()
		for i := 0; i < 64 && p.spriteCount < 8; i++ {
			y := p.oam[i*4]
			offset := p.scanline - int(y)
			if offset >= 0 && offset < height {
				copy(p.secondaryOAM[p.spriteCount*4:p.spriteCount*4+4], p.oam[i*4:i*4+4])
				if i == 0 {
					p.spriteZeroInRow = true
				}
				p.spriteCount++
			}
			n++
		}
		if n < 64 {
			for i := n; i < 64; i++ {
				y := p.oam[i*4]
				offset := p.scanline - int(y)
				if offset >= 0 && offset < height {
					p.status |= statusSpriteOverflow
					break
				}
			}
		}
	}

	if p.dot == 320 {
		p.spriteZeroLoaded = p.spriteZeroInRow
		for i := 0; i < p.spriteCount; i++ {
			s := spriteFromBytes([4]uint8(p.secondaryOAM[i*4 : i*4+4]))
			row := p.scanline - int(s.y)
			p.spriteAttr[i] = s.attr
			p.spriteX[i] = s.x
			lo, hi := p.fetchSpritePattern(s, row)
			p.spritePatternLo[i] = lo
			p.spritePatternHi[i] = hi
		}
		for i := p.spriteCount; i < 8; i++ {
			p.spritePatternLo[i] = 0
			p.spritePatternHi[i] = 0
		}
	}
}

func (p *PPU) fetchSpritePattern(s sprite, row int) (uint8, uint8) {
	height := p.spriteHeight()
	if s.flipV() {
		row = height - 1 - row
	}

	var addr uint16
	if height == 16 {
		table := uint16(s.tile&1) * 0x1000
		tile := uint16(s.tile &^ 1)
		addr = table + (tile+uint16(row/8))*16 + uint16(row%8)
	} else {
		base := uint16(0)
		if p.ctrl&ctrlSpritePattern != 0 {
			base = 0x1000
		}
		addr = base + uint16(s.tile)*16 + uint16(row)
	}

	lo := p.Bus.Read(addr)
	hi := p.Bus.Read(addr + 8)
	if s.flipH() {
		lo = reverseBits(lo)
		hi = reverseBits(hi)
	}
	return lo, hi
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

func (p *PPU) composePixel() {
	x := p.dot - 1
	y := p.scanline

	var bgPixel, bgPalette uint8
	if p.mask&maskShowBG != 0 && (x >= 8 || p.mask&maskShowBGLeft != 0) {
		mux := uint16(0x8000) >> p.fineX
		p0 := uint8(0)
		if p.bgShiftPatLo&mux != 0 {
			p0 = 1
		}
		p1 := uint8(0)
		if p.bgShiftPatHi&mux != 0 {
			p1 = 1
		}
		bgPixel = p0 | (p1 << 1)

		a0 := uint8(0)
		if p.bgShiftAttrLo&mux != 0 {
			a0 = 1
		}
		a1 := uint8(0)
		if p.bgShiftAttrHi&mux != 0 {
			a1 = 1
		}
		bgPalette = a0 | (a1 << 1)
	}

	var sprPixel, sprPalette uint8
	sprPriority := uint8(1)
	sprIsZero := false
	if p.mask&maskShowSprites != 0 && (x >= 8 || p.mask&maskShowSpritesLeft != 0) {
		for i := 0; i < p.spriteCount; i++ {
			offset := x - int(p.spriteX[i])
			if offset < 0 || offset > 7 {
				continue
			}
			shift := uint(7 - offset)
			p0 := (p.spritePatternLo[i] >> shift) & 1
			p1 := (p.spritePatternHi[i] >> shift) & 1
			pix := p0 | (p1 << 1)
			if pix == 0 {
				continue
			}
			sprPixel = pix
			attr := p.spriteAttr[i]
			sprPalette = (attr & 0x03) + 4
			sprPriority = (attr >> 5) & 1
			sprIsZero = i == 0 && p.spriteZeroLoaded
			break
		}
	}

	var finalPixel, finalPalette uint8
	switch {
	case bgPixel == 0 && sprPixel == 0:
		finalPixel, finalPalette = 0, 0
	case bgPixel == 0 && sprPixel != 0:
		finalPixel, finalPalette = sprPixel, sprPalette
	case bgPixel != 0 && sprPixel == 0:
		finalPixel, finalPalette = bgPixel, bgPalette
	default:
		if sprPriority == 0 {
			finalPixel, finalPalette = sprPixel, sprPalette
		} else {
			finalPixel, finalPalette = bgPixel, bgPalette
		}
		if sprIsZero && x < 255 && x >= 1 {
			p.status |= statusSprite0Hit
		}
	}

	idx := p.Bus.Read(0x3F00 + uint16(finalPalette)*4 + uint16(finalPixel))
	p.FrameBuffer[y*visibleWidth+x] = idx & 0x3F
}
