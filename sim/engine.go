package sim

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/dominikklepl/Complexity-emergence/compute"
	"github.com/dominikklepl/Complexity-emergence/config"
)

// Descriptor declares a grid simulation: its kernel programs, initializer,
// per-tick uniform providers, and interactive metadata. Immutable once
// supplied; consumed once at construction.
type Descriptor struct {
	Name         string
	GridW, GridH int

	// StepSrc and DisplaySrc are fragment kernel sources. Step kernels must
	// be pure functions of (current buffer, uniforms); the ping-pong
	// discipline keeps them from reading the target they write.
	StepSrc    string
	DisplaySrc string

	// Init produces W*H*4 seed floats from the current params.
	Init func(w, h int, p Params) []float32

	// StepUniforms and DisplayUniforms extract simulation-specific uniforms
	// each tick. The engine sets the standard ones (resolution, touch,
	// touchRadius) itself.
	StepUniforms    func(p Params) []Uniform
	DisplayUniforms func() []Uniform

	Metadata Meta
}

// GridSim is the generic double-buffered grid simulation. It owns exactly
// two grid buffers; one is current (read-only this tick), the other is the
// write target, and they swap roles after every step.
type GridSim struct {
	desc    Descriptor
	surface *compute.Surface

	step    *compute.Kernel
	display *compute.Kernel
	grids   [2]compute.Grid
	current int

	touchRadius float32
	ready       bool
}

// NewGridSim builds a runnable simulation from a descriptor.
func NewGridSim(desc Descriptor) *GridSim {
	return &GridSim{desc: desc}
}

// ID returns the stable simulation identifier.
func (g *GridSim) ID() string { return g.desc.Name }

// Meta returns the declarative metadata.
func (g *GridSim) Meta() Meta { return g.desc.Metadata }

// Setup compiles both kernels, seeds and allocates the two grid buffers,
// and resets the active-buffer index. Calling Setup again without Teardown
// releases the previous resources first, so nothing leaks.
func (g *GridSim) Setup(surface *compute.Surface, _ Size, params Params) error {
	if g.ready {
		g.Teardown()
	}
	g.surface = surface
	g.touchRadius = config.Cfg().Derived.TouchRadius

	step, err := surface.CompileKernel("", g.desc.StepSrc, g.desc.Name+"/step")
	if err != nil {
		return err
	}
	display, err := surface.CompileKernel("", g.desc.DisplaySrc, g.desc.Name+"/display")
	if err != nil {
		step.Release()
		return err
	}

	seed := g.desc.Init(g.desc.GridW, g.desc.GridH, params)
	var grids [2]compute.Grid
	for i := range grids {
		grids[i], err = surface.CreateGrid(g.desc.GridW, g.desc.GridH, seed)
		if err == nil {
			err = surface.AttachTarget(&grids[i])
		}
		if err != nil {
			step.Release()
			display.Release()
			surface.ReleaseGrid(&grids[0])
			surface.ReleaseGrid(&grids[1])
			return fmt.Errorf("setting up %s: %w", g.desc.Name, err)
		}
	}

	g.step = step
	g.display = display
	g.grids = grids
	g.current = 0
	g.ready = true
	return nil
}

// Teardown releases both buffers, both render targets, and both kernel
// programs. Tolerates being called when nothing was ever set up.
func (g *GridSim) Teardown() {
	if !g.ready {
		return
	}
	g.step.Release()
	g.display.Release()
	g.surface.ReleaseGrid(&g.grids[0])
	g.surface.ReleaseGrid(&g.grids[1])
	g.step = nil
	g.display = nil
	g.current = 0
	g.ready = false
}

// Step advances exactly one discrete time step: the current buffer is read,
// the other buffer is written, then they swap. A failed step leaves the
// current-buffer index untouched.
func (g *GridSim) Step(params Params, pointer Pointer) {
	if !g.ready {
		slog.Warn("step on inert simulation", "sim", g.desc.Name)
		return
	}

	src := &g.grids[g.current]
	dst := &g.grids[1-g.current]

	g.step.SetVec2("resolution", float32(g.desc.GridW), float32(g.desc.GridH))
	tx, ty := pointer.Coords()
	g.step.SetVec2("touch", tx, ty)
	g.step.SetFloat("touchRadius", g.touchRadius)
	g.step.SetFloat("touchSign", pointer.Sign())
	if g.desc.StepUniforms != nil {
		applyUniforms(g.step, g.desc.StepUniforms(params))
	}
	g.step.SetTexture("state", src.Tex)

	rl.BeginTextureMode(dst.Target)
	rl.BeginShaderMode(g.step.Shader)
	g.surface.DrawFullFrame(g.desc.GridW, g.desc.GridH)
	rl.EndShaderMode()
	rl.EndTextureMode()

	g.current = 1 - g.current
}

// Render maps the current buffer to the visible surface through the display
// kernel. The display kernel samples by normalized coordinate, so the
// surface size may differ from the grid resolution. Simulation state is
// not touched.
func (g *GridSim) Render(size Size, paletteIndex int) {
	if !g.ready {
		return
	}

	g.display.SetVec2("resolution", float32(size.W), float32(size.H))
	g.display.SetFloat("palette", float32(paletteIndex))
	if g.desc.DisplayUniforms != nil {
		applyUniforms(g.display, g.desc.DisplayUniforms())
	}
	g.display.SetTexture("state", g.grids[g.current].Tex)

	rl.BeginShaderMode(g.display.Shader)
	g.surface.DrawFullFrame(size.W, size.H)
	rl.EndShaderMode()
}
