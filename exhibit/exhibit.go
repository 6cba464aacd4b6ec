// Package exhibit hosts the interactive installation: it owns the
// simulation registry, switches the active simulation, runs the per-frame
// step/render loop, and wires the control panel, snapshot export and
// performance telemetry together.
package exhibit

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/dominikklepl/Complexity-emergence/compute"
	"github.com/dominikklepl/Complexity-emergence/config"
	"github.com/dominikklepl/Complexity-emergence/i18n"
	"github.com/dominikklepl/Complexity-emergence/sim"
	"github.com/dominikklepl/Complexity-emergence/snapshot"
	"github.com/dominikklepl/Complexity-emergence/telemetry"
	"github.com/dominikklepl/Complexity-emergence/ui"
)

const panelWidth = 360

// Options configures an exhibit instance.
type Options struct {
	Seed     int64
	Locale   string
	StartSim string // simulation ID to open with, empty = first
	LogStats bool
	Output   *telemetry.OutputManager // nil = no CSV output
}

// Exhibit is the running installation.
type Exhibit struct {
	surface *compute.Surface
	sims    []sim.Simulation
	strings i18n.Table

	active   int
	activeOK bool

	panel *ui.Panel
	state ui.State

	snap   *snapshot.Client
	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager

	screenW, screenH int
	tick             int
	windowTicks      int
	lastPerfFlush    int
	logStats         bool
}

// New builds the exhibit over an initialized raylib window. The three
// simulations are registered in visitor order; the requested start
// simulation is set up immediately.
func New(opts Options) *Exhibit {
	cfg := config.Cfg()

	e := &Exhibit{
		surface: compute.NewSurface(),
		sims: []sim.Simulation{
			sim.NewReaction(opts.Seed),
			sim.NewOscillator(opts.Seed),
			sim.NewBoids(opts.Seed),
		},
		panel:       ui.NewPanel(int32(cfg.Screen.Width)-panelWidth, panelWidth),
		snap:        snapshot.NewClient(cfg.Snapshot.Endpoint, cfg.Snapshot.FallbackDir),
		perf:        telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		output:      opts.Output,
		screenW:     cfg.Screen.Width,
		screenH:     cfg.Screen.Height,
		windowTicks: cfg.Telemetry.WindowTicks,
		logStats:    opts.LogStats,
	}
	if e.windowTicks < 1 {
		e.windowTicks = 1
	}
	for _, s := range e.sims {
		if pr, ok := s.(sim.PhaseReporter); ok {
			pr.SetPhaseFunc(e.perf.StartPhase)
		}
	}

	tables := []i18n.Table{i18n.Chrome}
	for _, s := range e.sims {
		tables = append(tables, s.Meta().Translations)
	}
	e.strings = i18n.Merge(tables...)

	e.state.Locale = opts.Locale
	if e.state.Locale == "" {
		e.state.Locale = cfg.Language.Default
	}

	start := 0
	for i, s := range e.sims {
		if s.ID() == opts.StartSim {
			start = i
		}
	}
	e.activate(start)
	return e
}

// Unload tears down the active simulation.
func (e *Exhibit) Unload() {
	if e.activeOK {
		e.sims[e.active].Teardown()
	}
}

// Tick returns the count of simulation steps taken.
func (e *Exhibit) Tick() int { return e.tick }

// activate switches the active simulation: the old one is torn down first,
// then the new one is set up with its default parameters. A failed setup
// leaves the slot selectable but inert so the exhibit keeps running on the
// other simulations.
func (e *Exhibit) activate(i int) {
	if e.activeOK {
		e.sims[e.active].Teardown()
	}
	e.active = i
	s := e.sims[i]
	meta := s.Meta()

	e.state.Params = sim.DefaultParams(meta)
	e.state.Palette = 0
	e.state.Speed = meta.Speed.Default

	if err := s.Setup(e.surface, sim.Size{W: e.screenW, H: e.screenH}, e.state.Params); err != nil {
		slog.Error("simulation setup failed", "sim", s.ID(), "error", err)
		e.activeOK = false
		return
	}
	e.activeOK = true
	slog.Info("simulation active", "sim", s.ID())
}

// reseed rebuilds the active simulation's state with the current params.
func (e *Exhibit) reseed() {
	if !e.activeOK {
		// inert slots get one more chance on explicit reset
		e.activate(e.active)
		return
	}
	s := e.sims[e.active]
	if err := s.Setup(e.surface, sim.Size{W: e.screenW, H: e.screenH}, e.state.Params); err != nil {
		slog.Error("simulation reseed failed", "sim", s.ID(), "error", err)
		e.activeOK = false
	}
}

// Update advances one frame: input, k simulation steps, nothing drawn.
func (e *Exhibit) Update() {
	e.perf.StartTick()
	e.handleKeys()

	if !e.activeOK || e.state.Paused {
		return
	}

	pointer := ReadPointer(float32(e.screenW), float32(e.screenH), e.panel.Contains)

	e.perf.StartPhase(telemetry.PhaseStep)
	s := e.sims[e.active]
	for i := 0; i < e.state.Speed; i++ {
		s.Step(e.state.Params, pointer)
		e.tick++
	}
}

// Draw renders the active simulation and the control panel, and services
// panel actions.
func (e *Exhibit) Draw() {
	e.perf.StartPhase(telemetry.PhaseRender)
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	if e.activeOK {
		e.sims[e.active].Render(sim.Size{W: e.screenW, H: e.screenH}, e.state.Palette)
	}

	simIDs := make([]string, len(e.sims))
	for i, s := range e.sims {
		simIDs[i] = s.ID()
	}
	act := e.panel.Draw(e.sims[e.active].Meta(), e.strings, &e.state, simIDs, e.active)
	rl.EndDrawing()
	e.perf.EndTick()
	e.perf.RecordFrame()

	if act.Switch >= 0 {
		e.activate(act.Switch)
	} else if act.Reseed {
		e.reseed()
	}
	if act.Snapshot {
		e.exportSnapshot()
	}

	e.flushPerf()
}

// flushPerf emits one perf window to the log and the CSV output every
// stats window of simulation ticks.
func (e *Exhibit) flushPerf() {
	if e.tick-e.lastPerfFlush < e.windowTicks {
		return
	}
	e.lastPerfFlush = e.tick

	stats := e.perf.Stats()
	if e.logStats {
		stats.Log()
	}
	if err := e.output.WritePerf(stats, e.tick); err != nil {
		slog.Warn("perf write failed", "error", err)
	}
}

// handleKeys services the operator shortcuts.
func (e *Exhibit) handleKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		e.activate(0)
	case rl.IsKeyPressed(rl.KeyTwo):
		e.activate(1)
	case rl.IsKeyPressed(rl.KeyThree):
		e.activate(2)
	case rl.IsKeyPressed(rl.KeyTab):
		e.activate((e.active + 1) % len(e.sims))
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		e.state.Paused = !e.state.Paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		e.reseed()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		if n := len(e.sims[e.active].Meta().Palettes); n > 0 {
			e.state.Palette = (e.state.Palette + 1) % n
		}
	}
	if rl.IsKeyPressed(rl.KeyV) {
		e.cyclePreset()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		e.exportSnapshot()
	}
	if rl.IsKeyPressed(rl.KeyL) {
		if e.state.Locale == "cs" {
			e.state.Locale = "en"
		} else {
			e.state.Locale = "cs"
		}
	}
	if rl.IsKeyPressed(rl.KeyH) {
		e.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
}

// cyclePreset applies the next preset in metadata order.
func (e *Exhibit) cyclePreset() {
	meta := e.sims[e.active].Meta()
	if len(meta.Presets) == 0 {
		return
	}
	// find the preset whose values match current params, then advance
	next := 0
	for i, p := range meta.Presets {
		match := true
		for id, v := range p.Values {
			if e.state.Params.Get(id, v) != v {
				match = false
				break
			}
		}
		if match {
			next = (i + 1) % len(meta.Presets)
			break
		}
	}
	reseed := false
	resets := make(map[string]bool, len(meta.Controls))
	for _, c := range meta.Controls {
		resets[c.ID] = c.Resets
	}
	for id, v := range meta.Presets[next].Values {
		if resets[id] && e.state.Params.Get(id, v) != v {
			reseed = true
		}
		e.state.Params[id] = v
	}
	if reseed {
		e.reseed()
	}
}

// exportSnapshot renders the active simulation once at print resolution and
// hands the postcard to the snapshot client. Export never disturbs the
// running simulation; failures only surface as a panel message.
func (e *Exhibit) exportSnapshot() {
	if !e.activeOK {
		return
	}
	cfg := config.Cfg()
	s := e.sims[e.active]
	meta := s.Meta()

	png, err := snapshot.Capture(cfg.Snapshot.Width, cfg.Snapshot.Height, func(w, h int) {
		s.Render(sim.Size{W: w, H: h}, e.state.Palette)
	})
	if err != nil {
		slog.Error("snapshot capture failed", "sim", s.ID(), "error", err)
		e.panel.ShowMessage(e.strings.T("chrome.sent.fail", e.state.Locale))
		return
	}

	result := e.snap.Send(png, snapshot.Card{
		Title:    e.strings.T(meta.TitleKey, e.state.Locale),
		Subtitle: e.strings.T(meta.SubtitleKey, e.state.Locale),
		SimType:  s.ID(),
		Lang:     e.state.Locale,
	})
	switch result {
	case snapshot.Sent:
		e.panel.ShowMessage(e.strings.T("chrome.sent", e.state.Locale))
	case snapshot.SavedLocal:
		e.panel.ShowMessage(e.strings.T("chrome.sent.local", e.state.Locale))
	default:
		e.panel.ShowMessage(e.strings.T("chrome.sent.fail", e.state.Locale))
	}
}
