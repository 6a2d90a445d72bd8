package bits

import "math"

// Filter is a single first-order IIR biquad stage used by the APU mixer.
type Filter struct {
	b0, b1, a1     float64
	prevX, prevY   float64
}

// LowPass builds a one-pole low-pass filter with the given cutoff (Hz) at
// the given sample rate (Hz).
func LowPass(sampleRate, cutoff float64) Filter {
	c := sampleRate / (cutoff * math.Pi)
	a0 := 1 / (1 + c)
	return Filter{b0: a0, b1: a0, a1: (1 - c) * a0}
}

// HighPass builds a one-pole high-pass filter with the given cutoff (Hz) at
// the given sample rate (Hz).
func HighPass(sampleRate, cutoff float64) Filter {
	c := sampleRate / (cutoff * math.Pi)
	a0 := 1 / (1 + c)
	return Filter{b0: c * a0, b1: -c * a0, a1: (1 - c) * a0}
}

// Process runs one sample through the filter, updating its internal state.
func (f *Filter) Process(x float64) float64 {
	y := f.b0*x + f.b1*f.prevX - f.a1*f.prevY
	f.prevX = x
	f.prevY = y
	return y
}

// Chain is an ordered sequence of filters applied one after another.
type Chain struct {
	stages []Filter
}

// NewChain builds a Chain from the given filter stages, applied in order.
func NewChain(stages ...Filter) *Chain {
	return &Chain{stages: stages}
}

// Process runs x through every stage in the chain in order.
func (c *Chain) Process(x float64) float64 {
	for i := range c.stages {
		x = c.stages[i].Process(x)
	}
	return x
}
