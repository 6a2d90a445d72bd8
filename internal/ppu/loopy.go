package ppu

// loopy is the conventional name for the PPU's 15-bit internal scroll
// address registers (v and t): yyy NN YYYYY XXXXX, where X/Y are coarse
// tile coordinates, yyy is fine Y, and NN selects the nametable.
type loopy struct {
	data uint16
}

func (l loopy) coarseX() uint16      { return l.data & 0x1F }
func (l loopy) coarseY() uint16      { return (l.data >> 5) & 0x1F }
func (l loopy) nametableX() uint16   { return (l.data >> 10) & 1 }
func (l loopy) nametableY() uint16   { return (l.data >> 11) & 1 }
func (l loopy) fineY() uint16        { return (l.data >> 12) & 0x7 }
func (l loopy) nametableBits() uint16 { return (l.data >> 10) & 0x3 }

func (l *loopy) setCoarseX(v uint16)    { l.data = (l.data &^ 0x001F) | (v & 0x1F) }
func (l *loopy) setCoarseY(v uint16)    { l.data = (l.data &^ 0x03E0) | ((v & 0x1F) << 5) }
func (l *loopy) setNametableX(v uint16) { l.data = (l.data &^ 0x0400) | ((v & 1) << 10) }
func (l *loopy) setNametableY(v uint16) { l.data = (l.data &^ 0x0800) | ((v & 1) << 11) }
func (l *loopy) setFineY(v uint16)      { l.data = (l.data &^ 0x7000) | ((v & 0x7) << 12) }
func (l *loopy) setNametableBits(v uint16) {
	l.data = (l.data &^ 0x0C00) | ((v & 0x3) << 10)
}

// incCoarseX advances the horizontal scroll position by one tile,
// wrapping coarse-x at 31 and toggling the horizontal nametable bit.
func (l *loopy) incCoarseX() {
	if l.coarseX() == 31 {
		l.setCoarseX(0)
		l.setNametableX(l.nametableX() ^ 1)
	} else {
		l.setCoarseX(l.coarseX() + 1)
	}
}

// incFineY advances the vertical scroll position by one scanline,
// carrying into coarse-y (wrapping the 30-row nametable at 29, and the
// full 5-bit field without a nametable toggle at 31).
func (l *loopy) incFineY() {
	if l.fineY() < 7 {
		l.setFineY(l.fineY() + 1)
		return
	}
	l.setFineY(0)
	switch l.coarseY() {
	case 29:
		l.setCoarseY(0)
		l.setNametableY(l.nametableY() ^ 1)
	case 31:
		l.setCoarseY(0)
	default:
		l.setCoarseY(l.coarseY() + 1)
	}
}

func (l *loopy) copyHorizontalFrom(o loopy) {
	l.setCoarseX(o.coarseX())
	l.setNametableX(o.nametableX())
}

func (l *loopy) copyVerticalFrom(o loopy) {
	l.setCoarseY(o.coarseY())
	l.setFineY(o.fineY())
	l.setNametableY(o.nametableY())
}
