// Simulation debug tool - steps one simulation off-screen and renders its
// display pass to a PNG file for inspection.
//
// Usage: go run ./cmd/shaderdebug -sim rd -steps 2000 -out debug.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/dominikklepl/Complexity-emergence/compute"
	"github.com/dominikklepl/Complexity-emergence/config"
	"github.com/dominikklepl/Complexity-emergence/sim"
	"github.com/dominikklepl/Complexity-emergence/snapshot"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	simID := flag.String("sim", "rd", "Simulation: rd, osc or boids")
	steps := flag.Int("steps", 2000, "Ticks to run before rendering")
	palette := flag.Int("palette", 0, "Palette index for the display pass")
	seed := flag.Int64("seed", 42, "RNG seed")
	outPath := flag.String("out", "debug.png", "Output PNG path")
	width := flag.Int("width", 800, "Render width")
	height := flag.Int("height", 800, "Render height")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Hidden window still provides the GL context the kernels need
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Simulation Debug")
	defer rl.CloseWindow()

	var s sim.Simulation
	switch *simID {
	case "rd":
		s = sim.NewReaction(*seed)
	case "osc":
		s = sim.NewOscillator(*seed)
	case "boids":
		s = sim.NewBoids(*seed)
	default:
		fmt.Fprintf(os.Stderr, "Unknown simulation: %s\n", *simID)
		os.Exit(1)
	}

	surface := compute.NewSurface()
	params := sim.DefaultParams(s.Meta())
	if err := s.Setup(surface, sim.Size{W: *width, H: *height}, params); err != nil {
		fmt.Fprintf(os.Stderr, "Setup failed: %v\n", err)
		os.Exit(1)
	}
	defer s.Teardown()

	for i := 0; i < *steps; i++ {
		s.Step(params, sim.Pointer{})
	}

	png, err := snapshot.Capture(*width, *height, func(w, h int) {
		s.Render(sim.Size{W: w, H: h}, *palette)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Render failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, png, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered %s after %d steps to: %s (%dx%d)\n", *simID, *steps, *outPath, *width, *height)
}
