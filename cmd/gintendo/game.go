package main

import (
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"golang.org/x/image/draw"

	"github.com/kbolino/nesgo/internal/controller"
	"github.com/kbolino/nesgo/internal/ppu"
	"github.com/kbolino/nesgo/machine"
)

const (
	screenWidth  = 256
	screenHeight = 240
	sampleRate   = 44100
)

// keymap binds ebiten keys to controller 1's button bits, grounded on
// the teacher's key-binding table.
var keymap = map[ebiten.Key]uint8{
	ebiten.KeyZ:          controller.ButtonA,
	ebiten.KeyX:          controller.ButtonB,
	ebiten.KeyShift:      controller.ButtonSelect,
	ebiten.KeyEnter:      controller.ButtonStart,
	ebiten.KeyArrowUp:    controller.ButtonUp,
	ebiten.KeyArrowDown:  controller.ButtonDown,
	ebiten.KeyArrowLeft:  controller.ButtonLeft,
	ebiten.KeyArrowRight: controller.ButtonRight,
}

// game implements ebiten.Game, bridging the core machine's frame/audio
// buffers and a background stepping goroutine into ebiten's UI loop.
type game struct {
	m *machine.Machine

	audioCtx   *audio.Context
	player     *audio.Player
	sampleFeed *sampleReader
	palette    color.Palette

	mu    sync.Mutex
	frame []uint8
}

func newGame(m *machine.Machine) *game {
	g := &game{
		m:       m,
		palette: make(color.Palette, 64),
	}
	for i, rgb := range ppu.SystemPalette {
		g.palette[i] = color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF}
	}

	g.audioCtx = audio.NewContext(sampleRate)
	g.sampleFeed = newSampleReader()
	player, err := g.audioCtx.NewPlayer(g.sampleFeed)
	if err == nil {
		g.player = player
		g.player.Play()
	}
	return g
}

// runStepper drives the machine at roughly 60Hz on its own goroutine,
// independent of ebiten's Update callback, as a supervised errgroup
// member alongside the UI loop.
func (g *game) runStepper(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			g.pollInput()
			g.m.StepFrame()
			g.m.StepVBlank()

			g.mu.Lock()
			g.frame = append(g.frame[:0], g.m.FrameBuffer()...)
			g.mu.Unlock()

			g.sampleFeed.push(g.m.AudioBuffer())
			g.m.ClearAudioBuffer()
		}
	}
}

func (g *game) pollInput() {
	var state uint8
	for key, bit := range keymap {
		if ebiten.IsKeyPressed(key) {
			state |= bit
		}
	}
	g.m.SetControllerState(0, state)
}

func (g *game) Update() error {
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	frame := append([]uint8(nil), g.frame...)
	g.mu.Unlock()
	if len(frame) != screenWidth*screenHeight {
		return
	}

	src := &image.Paletted{
		Pix:     frame,
		Stride:  screenWidth,
		Rect:    image.Rect(0, 0, screenWidth, screenHeight),
		Palette: g.palette,
	}
	dst := image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight))
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
	screen.WritePixels(dst.Pix)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// sampleReader adapts the machine's []float32 audio samples into the
// 16-bit stereo PCM stream ebiten/v2/audio expects.
type sampleReader struct {
	mu  sync.Mutex
	buf []byte
}

func newSampleReader() *sampleReader {
	return &sampleReader{}
}

func (r *sampleReader) push(samples []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range samples {
		v := int16(s * 32767)
		var frame [4]byte
		binary.LittleEndian.PutUint16(frame[0:2], uint16(v))
		binary.LittleEndian.PutUint16(frame[2:4], uint16(v))
		r.buf = append(r.buf, frame[:]...)
	}
}

func (r *sampleReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	if n == 0 {
		// No samples ready yet; report silence rather than blocking.
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	return n, nil
}
