// Command gintendo runs an NES ROM through an ebiten-backed display and
// audio host.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"

	"github.com/kbolino/nesgo/machine"
)

var romPath = flag.String("nes_rom", "", "path to an iNES (.nes) ROM file")

func main() {
	flag.Parse()
	if *romPath == "" {
		log.Fatal("gintendo: -nes_rom is required")
	}

	rom, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("gintendo: read rom: %v", err)
	}

	m, err := machine.New(rom)
	if err != nil {
		log.Fatalf("gintendo: load rom: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	g := newGame(m)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return g.runStepper(ctx)
	})
	group.Go(func() error {
		defer cancel()
		ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
		ebiten.SetWindowTitle("gintendo")
		return ebiten.RunGame(g)
	})

	if err := group.Wait(); err != nil && err != context.Canceled {
		log.Fatalf("gintendo: %v", err)
	}
}
