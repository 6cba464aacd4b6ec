package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/dominikklepl/Complexity-emergence/config"
	"github.com/dominikklepl/Complexity-emergence/exhibit"
	"github.com/dominikklepl/Complexity-emergence/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	lang := flag.String("lang", "", "Start language, cs or en (empty = config default)")
	simID := flag.String("sim", "", "Start simulation: rd, osc or boids (empty = first)")
	headless := flag.Bool("headless", false, "Run the CPU reference without graphics")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update in headless mode")
	logStats := flag.Bool("log-stats", false, "Emit window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output dir", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if *headless {
		runHeadless(*simID, rngSeed, *maxTicks, *stepsPerUpdate, *logStats, output)
		return
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Complexity & Emergence")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	e := exhibit.New(exhibit.Options{
		Seed:     rngSeed,
		Locale:   *lang,
		StartSim: *simID,
		LogStats: *logStats,
		Output:   output,
	})
	defer e.Unload()

	for !rl.WindowShouldClose() {
		e.Update()
		e.Draw()

		if *maxTicks > 0 && e.Tick() >= *maxTicks {
			break
		}
	}
}

func runHeadless(simID string, seed int64, maxTicks, stepsPerUpdate int, logStats bool, output *telemetry.OutputManager) {
	if simID == "" {
		simID = "rd"
	}
	h, err := exhibit.NewHeadless(exhibit.HeadlessOptions{
		Sim:            simID,
		Seed:           seed,
		StepsPerUpdate: stepsPerUpdate,
		LogStats:       logStats,
		Output:         output,
	})
	if err != nil {
		slog.Error("failed to build headless run", "error", err)
		os.Exit(1)
	}

	slog.Info("starting headless run",
		"sim", simID,
		"seed", seed,
		"max_ticks", maxTicks,
		"steps_per_update", stepsPerUpdate,
	)
	for {
		h.Update()
		if maxTicks > 0 && h.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", h.Tick())
			return
		}
	}
}
