package exhibit

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/dominikklepl/Complexity-emergence/config"
	"github.com/dominikklepl/Complexity-emergence/flock"
	"github.com/dominikklepl/Complexity-emergence/lattice"
	"github.com/dominikklepl/Complexity-emergence/sim"
	"github.com/dominikklepl/Complexity-emergence/telemetry"
)

// HeadlessOptions configures a windowless run.
type HeadlessOptions struct {
	Sim            string // "rd", "osc" or "boids"
	Seed           int64
	StepsPerUpdate int
	LogStats       bool
	Output         *telemetry.OutputManager
}

// Headless steps the CPU reference of one simulation without any GL
// context, feeding the telemetry collector. The CPU kernels compute the
// same update rules as the GPU kernels, so headless runs characterize the
// exhibit's dynamics on machines with no graphics at all.
type Headless struct {
	simID          string
	stepsPerUpdate int
	tick           int

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool

	field      *lattice.Field
	reaction   lattice.Reaction
	oscillator lattice.Oscillator

	flk       *flock.Flock
	flkParams flock.Params
	agents    []float32
}

// NewHeadless builds the CPU mirror of the named simulation with its
// default parameters.
func NewHeadless(opts HeadlessOptions) (*Headless, error) {
	cfg := config.Cfg()
	rng := rand.New(rand.NewSource(opts.Seed))

	h := &Headless{
		simID:          opts.Sim,
		stepsPerUpdate: opts.StepsPerUpdate,
		collector:      telemetry.NewCollector(opts.Sim, cfg.Telemetry.WindowTicks),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.WindowTicks),
		output:         opts.Output,
		logStats:       opts.LogStats,
	}
	if h.stepsPerUpdate < 1 {
		h.stepsPerUpdate = 1
	}

	switch opts.Sim {
	case "rd":
		p := sim.DefaultParams(sim.NewReaction(opts.Seed).Meta())
		n := cfg.Grid.ReactionSize
		h.field = lattice.NewField(n, n, lattice.SeedReaction(n, n, rng))
		h.reaction = lattice.Reaction{
			Feed:        float32(p.Get("feed", 0)),
			Kill:        float32(p.Get("kill", 0)),
			DiffU:       float32(p.Get("diffU", 0)),
			DiffV:       float32(p.Get("diffV", 0)),
			DT:          1.0,
			TouchRadius: cfg.Derived.TouchRadius,
		}
	case "osc":
		p := sim.DefaultParams(sim.NewOscillator(opts.Seed).Meta())
		n := cfg.Grid.OscillatorSize
		h.field = lattice.NewField(n, n, lattice.SeedOscillator(n, n, p.Get("spread", 0.25), rng))
		h.oscillator = lattice.Oscillator{
			Coupling:    float32(p.Get("coupling", 0.8)),
			FreqScale:   float32(p.Get("tempo", 1.0)),
			DT:          0.05,
			TouchRadius: cfg.Derived.TouchRadius,
		}
	case "boids":
		p := sim.DefaultParams(sim.NewBoids(opts.Seed).Meta())
		maxSpeed := float32(p.Get("maxSpeed", 0.007))
		h.flk = flock.New(flock.SeedAgents(cfg.Derived.AgentCount, maxSpeed, rng))
		h.flkParams = flock.Params{
			Perception: float32(p.Get("perception", 0.08)),
			WeightSep:  float32(p.Get("separation", 1.2)),
			WeightAli:  float32(p.Get("alignment", 1.0)),
			WeightCoh:  float32(p.Get("cohesion", 0.9)),
			MaxSpeed:   maxSpeed,
			MinSpeed:   flock.DefaultMinSpeed,
			MaxForce:   flock.DefaultMaxForce,
			Mode:       flock.Mode(int(p.Get("mode", 0))),
			DT:         flock.DefaultDT,
		}
		h.agents = make([]float32, h.flk.Len()*4)
	default:
		return nil, fmt.Errorf("unknown simulation %q", opts.Sim)
	}
	return h, nil
}

// Tick returns the count of simulation steps taken.
func (h *Headless) Tick() int { return h.tick }

// Update advances steps-per-update ticks and flushes stats windows as they
// complete.
func (h *Headless) Update() {
	for i := 0; i < h.stepsPerUpdate; i++ {
		h.perf.StartTick()
		h.perf.StartPhase(telemetry.PhaseStep)
		h.step()
		h.tick++
		h.perf.StartPhase(telemetry.PhaseStats)
		h.collector.Record(h.observe())
		h.perf.EndTick()

		if h.collector.ShouldFlush(h.tick) {
			stats := h.collector.Flush(h.tick)
			perfStats := h.perf.Stats()
			if h.logStats {
				stats.Log()
				perfStats.Log()
			}
			// output failures must not stop the run
			if err := h.output.WriteStats(stats); err != nil {
				slog.Warn("stats write failed", "error", err)
			}
			if err := h.output.WritePerf(perfStats, h.tick); err != nil {
				slog.Warn("perf write failed", "error", err)
			}
		}
	}
}

func (h *Headless) step() {
	switch h.simID {
	case "rd":
		h.field.Step(h.reaction.Kernel(-1, -1, 1))
	case "osc":
		h.field.Step(h.oscillator.Kernel(-1, -1, 1))
	case "boids":
		h.flk.Step(h.flkParams, flock.Touch{})
	}
}

func (h *Headless) observe() telemetry.Observation {
	var o telemetry.Observation
	switch h.simID {
	case "rd":
		o.FieldMean, o.FieldStd, o.FieldMin, o.FieldMax = telemetry.FieldSummary(h.field.Cells(), 1)
	case "osc":
		o.FieldMean, o.FieldStd, o.FieldMin, o.FieldMax = telemetry.FieldSummary(h.field.Cells(), 0)
		o.OrderParam = telemetry.OrderParameter(h.field.Cells(), 0)
	case "boids":
		h.flk.Snapshot(h.agents)
		o.Polarization, o.MeanSpeed = telemetry.Polarization(h.agents)
	}
	return o
}
