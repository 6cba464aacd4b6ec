package sim

import (
	"math/rand"

	"github.com/dominikklepl/Complexity-emergence/config"
	"github.com/dominikklepl/Complexity-emergence/lattice"
)

// NewReaction builds the Gray-Scott reaction-diffusion simulation.
// Channel 0/1 of every cell hold the U/V reactant concentrations.
func NewReaction(seed int64) *GridSim {
	n := config.Cfg().Grid.ReactionSize

	meta := Meta{
		Controls: []Control{
			{ID: "feed", LabelKey: "rd.feed", Min: 0.01, Max: 0.09, Default: 0.037},
			{ID: "kill", LabelKey: "rd.kill", Min: 0.045, Max: 0.07, Default: 0.06},
			{ID: "diffU", LabelKey: "rd.diff_u", Min: 0.14, Max: 0.25, Default: 0.21},
			{ID: "diffV", LabelKey: "rd.diff_v", Min: 0.06, Max: 0.13, Default: 0.105},
		},
		Presets: []Preset{
			{NameKey: "rd.preset.mitosis", Values: map[string]float64{"feed": 0.0367, "kill": 0.0649}},
			{NameKey: "rd.preset.coral", Values: map[string]float64{"feed": 0.0545, "kill": 0.062}},
			{NameKey: "rd.preset.worms", Values: map[string]float64{"feed": 0.078, "kill": 0.061}},
			{NameKey: "rd.preset.solitons", Values: map[string]float64{"feed": 0.03, "kill": 0.062}},
		},
		Palettes: []Palette{
			{NameKey: "rd.pal.ink"},
			{NameKey: "rd.pal.heat"},
			{NameKey: "rd.pal.lagoon"},
			{NameKey: "rd.pal.duotone"},
		},
		Speed:        SpeedRange{Min: 1, Max: 16, Default: 8},
		EquationKeys: []string{"rd.eq.u", "rd.eq.v"},
		TitleKey:     "rd.title",
		SubtitleKey:  "rd.subtitle",
		Translations: reactionStrings,
	}

	return NewGridSim(Descriptor{
		Name:       "rd",
		GridW:      n,
		GridH:      n,
		StepSrc:    reactionStepFS,
		DisplaySrc: reactionDisplayFS,
		Init: func(w, h int, _ Params) []float32 {
			return lattice.SeedReaction(w, h, rand.New(rand.NewSource(seed)))
		},
		StepUniforms: func(p Params) []Uniform {
			return []Uniform{
				Float1("feed", float32(p.Get("feed", 0.037))),
				Float1("kill", float32(p.Get("kill", 0.06))),
				Float1("diffU", float32(p.Get("diffU", 0.21))),
				Float1("diffV", float32(p.Get("diffV", 0.105))),
				Float1("dt", 1.0),
			}
		},
		Metadata: meta,
	})
}

var reactionStrings = map[string]map[string]string{
	"rd.title":           {"cs": "Turingovy vzory", "en": "Turing Patterns"},
	"rd.subtitle":        {"cs": "Vaše volba parametrů vytvořila tento vzor", "en": "Your parameter choices created this pattern"},
	"rd.feed":            {"cs": "Přísun látky U", "en": "Feed rate"},
	"rd.kill":            {"cs": "Odebírání látky V", "en": "Kill rate"},
	"rd.diff_u":          {"cs": "Difuze U", "en": "Diffusion of U"},
	"rd.diff_v":          {"cs": "Difuze V", "en": "Diffusion of V"},
	"rd.preset.mitosis":  {"cs": "Dělení buněk", "en": "Mitosis"},
	"rd.preset.coral":    {"cs": "Korál", "en": "Coral"},
	"rd.preset.worms":    {"cs": "Červi", "en": "Worms"},
	"rd.preset.solitons": {"cs": "Solitony", "en": "Solitons"},
	"rd.pal.ink":         {"cs": "Inkoust", "en": "Ink"},
	"rd.pal.heat":        {"cs": "Žár", "en": "Heat"},
	"rd.pal.lagoon":      {"cs": "Laguna", "en": "Lagoon"},
	"rd.pal.duotone":     {"cs": "Dvoubarevný", "en": "Duotone"},
	"rd.eq.u":            {"cs": "∂u/∂t = Dᵤ∇²u − uv² + F(1−u)", "en": "∂u/∂t = Dᵤ∇²u − uv² + F(1−u)"},
	"rd.eq.v":            {"cs": "∂v/∂t = Dᵥ∇²v + uv² − (F+k)v", "en": "∂v/∂t = Dᵥ∇²v + uv² − (F+k)v"},
}
