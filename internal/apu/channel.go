package apu

// Channel is the contract every one of the APU's five sound generators
// implements. WriteRegister dispatches the four register bytes the main
// bus routes to a channel (only the low two bits of addr select the
// register). RawSample returns the unscaled 0-15 (0-127 for DMC) output
// level; GetSample applies muting on top of it.
type Channel interface {
	WriteRegister(addr uint16, val uint8)
	RawSample() uint8
	IsActive() bool
	IsMute() bool
	SetEnabled(enabled bool)
}

// GetSample returns 0 when the channel reports itself muted, else its
// raw sample — the shared default every Channel gets for free in the
// source trait model, reimplemented here as a plain function since Go
// interfaces have no default methods.
func GetSample(c Channel) float32 {
	if c.IsMute() {
		return 0
	}
	return float32(c.RawSample())
}
