// Package sim defines the simulation module contract shared by every
// exhibit simulation, plus the generic double-buffered grid engine and the
// concrete reaction-diffusion, oscillator, and flocking simulations.
package sim

import (
	"github.com/dominikklepl/Complexity-emergence/compute"
)

// Size is an output surface extent in pixels.
type Size struct {
	W, H int
}

// Button discriminates pointer buttons. Semantics are simulation-defined;
// primary is attract-like, secondary repel-like.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Pointer is the normalized interaction state: a coordinate in [0,1]x[0,1]
// grid space with y increasing upward, an active flag, and the held button.
// It is read-only to simulations.
type Pointer struct {
	X, Y   float32
	Active bool
	Button Button
}

// Coords returns the pointer position, or the (-1,-1) sentinel when inactive.
func (p Pointer) Coords() (float32, float32) {
	if !p.Active {
		return -1, -1
	}
	return p.X, p.Y
}

// Sign maps the held button to a force sign: +1 primary (attract/inject),
// -1 secondary (repel/erase).
func (p Pointer) Sign() float32 {
	if p.Button == ButtonSecondary {
		return -1
	}
	return 1
}

// Params holds the current control values keyed by control ID.
type Params map[string]float64

// Get returns the value for id, or fallback if unset.
func (p Params) Get(id string, fallback float64) float64 {
	if v, ok := p[id]; ok {
		return v
	}
	return fallback
}

// ControlKind selects the widget a control is rendered with.
type ControlKind int

const (
	Slider ControlKind = iota
	Select
	Toggle
)

// Control describes one adjustable parameter exposed to the control panel.
type Control struct {
	ID         string
	Kind       ControlKind
	LabelKey   string  // i18n key for the display label
	Min, Max   float64 // slider bounds; for selects, Max is len(OptionKeys)-1
	Default    float64
	OptionKeys []string // i18n keys for select options
	Resets     bool     // changing this control forces a state reset
}

// Preset is a named parameter bundle.
type Preset struct {
	NameKey string
	Values  map[string]float64
}

// Palette names one display color mapping; the index into the palette list
// is passed to the display kernel.
type Palette struct {
	NameKey string
}

// SpeedRange bounds the steps-per-frame slider.
type SpeedRange struct {
	Min, Max, Default int
}

// Meta is the declarative metadata every simulation publishes.
type Meta struct {
	Controls     []Control
	Presets      []Preset
	Palettes     []Palette
	Speed        SpeedRange
	Translations map[string]map[string]string // key -> locale -> string
	EquationKeys []string                     // i18n keys of explanatory notation lines
	TitleKey     string                       // snapshot title i18n key
	SubtitleKey  string                       // snapshot subtitle i18n key
}

// Simulation is the uniform contract consumed by the orchestrator.
// Setup and Teardown bracket exclusive ownership of all GPU resources;
// Step advances exactly one discrete tick; Render maps current state to the
// visible surface and never mutates simulation state.
type Simulation interface {
	ID() string
	Setup(surface *compute.Surface, size Size, params Params) error
	Teardown()
	Step(params Params, pointer Pointer)
	Render(size Size, paletteIndex int)
	Meta() Meta
}

// PhaseReporter is implemented by simulations whose Step has internal
// phases worth timing separately.
type PhaseReporter interface {
	SetPhaseFunc(func(phase string))
}

// DefaultParams builds a params map from the control defaults.
func DefaultParams(m Meta) Params {
	p := make(Params, len(m.Controls))
	for _, c := range m.Controls {
		p[c.ID] = c.Default
	}
	return p
}

// Uniform is one per-tick shader uniform value: one float or a vec2.
type Uniform struct {
	Name string
	Vals []float32
}

// Float1 builds a scalar uniform.
func Float1(name string, v float32) Uniform {
	return Uniform{Name: name, Vals: []float32{v}}
}

// Float2 builds a vec2 uniform.
func Float2(name string, x, y float32) Uniform {
	return Uniform{Name: name, Vals: []float32{x, y}}
}

func applyUniforms(k *compute.Kernel, us []Uniform) {
	for _, u := range us {
		switch len(u.Vals) {
		case 1:
			k.SetFloat(u.Name, u.Vals[0])
		case 2:
			k.SetVec2(u.Name, u.Vals[0], u.Vals[1])
		}
	}
}
