// Command nes runs an iNES ROM through the nescore console and displays
// its background framebuffer in an ebiten window.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/bdwalton/nescore/console"
	"github.com/bdwalton/nescore/palette"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	romFile     = flag.String("nes_rom", "", "Path to the iNES ROM to run.")
	paletteFile = flag.String("palette", "", "Path to a .pal file (64 RGB triples). Uses the built-in NTSC palette if unset.")
)

func main() {
	flag.Parse()

	if *romFile == "" {
		log.Fatal("nes: -nes_rom is required")
	}

	f, err := os.Open(*romFile)
	if err != nil {
		log.Fatalf("nes: opening ROM: %v", err)
	}
	defer f.Close()

	pal := palette.Default()
	if *paletteFile != "" {
		pf, err := os.Open(*paletteFile)
		if err != nil {
			log.Fatalf("nes: opening palette: %v", err)
		}
		pal, err = palette.Load(pf)
		pf.Close()
		if err != nil {
			log.Fatalf("nes: loading palette: %v", err)
		}
	}

	c, err := console.Load(f, pal)
	if err != nil {
		log.Fatalf("nes: loading ROM: %v", err)
	}

	game := &host{console: c}

	ebiten.SetWindowSize(256*2, 240*2)
	ebiten.SetWindowTitle("nescore")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("nes: %v", err)
	}
}

// host adapts a console.Console to the ebiten.Game interface.
type host struct {
	console *console.Console
}

// Layout pins the logical resolution to the NES's 256x240 frame; ebiten
// handles scaling up to the window size from there.
func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 256, 240
}

// Update advances the console by exactly one frame per call, driven by
// ebiten's ~60Hz tick.
func (h *host) Update() error {
	h.console.RunFrame()
	return nil
}

// Draw blits the PPU's background framebuffer into the ebiten screen.
func (h *host) Draw(screen *ebiten.Image) {
	fb := h.console.PPU.Framebuffer
	pix := make([]byte, len(fb)*4)
	for i, p := range fb {
		pix[i*4+0] = p.R
		pix[i*4+1] = p.G
		pix[i*4+2] = p.B
		pix[i*4+3] = p.A
	}
	screen.WritePixels(pix)
}
