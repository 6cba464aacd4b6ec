package sim

import (
	"os"
	"testing"

	"github.com/dominikklepl/Complexity-emergence/config"
)

func TestMain(m *testing.M) {
	config.MustInit("")
	os.Exit(m.Run())
}

func allSimulations() []Simulation {
	return []Simulation{
		NewReaction(1),
		NewOscillator(1),
		NewBoids(1),
	}
}

func TestControlDefaultsWithinBounds(t *testing.T) {
	for _, s := range allSimulations() {
		t.Run(s.ID(), func(t *testing.T) {
			for _, c := range s.Meta().Controls {
				if c.Min >= c.Max {
					t.Errorf("control %q: bounds [%v, %v] are not an interval", c.ID, c.Min, c.Max)
				}
				if c.Default < c.Min || c.Default > c.Max {
					t.Errorf("control %q: default %v outside [%v, %v]", c.ID, c.Default, c.Min, c.Max)
				}
				if c.Kind == Select && len(c.OptionKeys) < 2 {
					t.Errorf("select control %q has %d options", c.ID, len(c.OptionKeys))
				}
			}
		})
	}
}

func TestPresetsReferenceRealControls(t *testing.T) {
	for _, s := range allSimulations() {
		t.Run(s.ID(), func(t *testing.T) {
			meta := s.Meta()
			bounds := make(map[string][2]float64, len(meta.Controls))
			for _, c := range meta.Controls {
				bounds[c.ID] = [2]float64{c.Min, c.Max}
			}
			for _, p := range meta.Presets {
				for id, v := range p.Values {
					b, ok := bounds[id]
					if !ok {
						t.Errorf("preset %q sets unknown control %q", p.NameKey, id)
						continue
					}
					if v < b[0] || v > b[1] {
						t.Errorf("preset %q: %s = %v outside [%v, %v]", p.NameKey, id, v, b[0], b[1])
					}
				}
			}
		})
	}
}

func TestSpeedRangeSane(t *testing.T) {
	for _, s := range allSimulations() {
		sp := s.Meta().Speed
		if sp.Min < 1 || sp.Max < sp.Min || sp.Default < sp.Min || sp.Default > sp.Max {
			t.Errorf("%s: speed range %+v is inconsistent", s.ID(), sp)
		}
	}
}

// Every key the metadata references must translate in both exhibit locales.
func TestTranslationsComplete(t *testing.T) {
	for _, s := range allSimulations() {
		t.Run(s.ID(), func(t *testing.T) {
			meta := s.Meta()

			var keys []string
			keys = append(keys, meta.TitleKey, meta.SubtitleKey)
			keys = append(keys, meta.EquationKeys...)
			for _, c := range meta.Controls {
				keys = append(keys, c.LabelKey)
				keys = append(keys, c.OptionKeys...)
			}
			for _, p := range meta.Presets {
				keys = append(keys, p.NameKey)
			}
			for _, p := range meta.Palettes {
				keys = append(keys, p.NameKey)
			}

			for _, key := range keys {
				locs, ok := meta.Translations[key]
				if !ok {
					t.Errorf("key %q has no translations", key)
					continue
				}
				for _, locale := range []string{"cs", "en"} {
					if locs[locale] == "" {
						t.Errorf("key %q missing locale %q", key, locale)
					}
				}
			}
		})
	}
}

func TestDefaultParams(t *testing.T) {
	meta := NewReaction(1).Meta()
	p := DefaultParams(meta)
	for _, c := range meta.Controls {
		if p[c.ID] != c.Default {
			t.Errorf("param %q = %v, want default %v", c.ID, p[c.ID], c.Default)
		}
	}
}

func TestPointerSentinel(t *testing.T) {
	var p Pointer
	if x, y := p.Coords(); x != -1 || y != -1 {
		t.Errorf("inactive pointer coords = (%v, %v), want (-1, -1)", x, y)
	}

	p = Pointer{X: 0.25, Y: 0.75, Active: true}
	if x, y := p.Coords(); x != 0.25 || y != 0.75 {
		t.Errorf("active pointer coords = (%v, %v)", x, y)
	}

	if p.Sign() != 1 {
		t.Errorf("primary sign = %v, want 1", p.Sign())
	}
	p.Button = ButtonSecondary
	if p.Sign() != -1 {
		t.Errorf("secondary sign = %v, want -1", p.Sign())
	}
}

// Descriptor initializers must be reproducible: the same seed gives the
// same field, a different seed a different one.
func TestInitializersAreSeeded(t *testing.T) {
	for _, id := range []string{"rd", "osc", "boids"} {
		t.Run(id, func(t *testing.T) {
			build := func(seed int64) Simulation {
				switch id {
				case "rd":
					return NewReaction(seed)
				case "osc":
					return NewOscillator(seed)
				default:
					return NewBoids(seed)
				}
			}
			seedOf := func(s Simulation) []float32 {
				switch v := s.(type) {
				case *GridSim:
					return v.desc.Init(v.desc.GridW, v.desc.GridH, DefaultParams(v.Meta()))
				case *Boids:
					// the agent table seed path is exercised via Setup on
					// GPU; here we compare the deterministic table source
					return nil
				}
				return nil
			}

			a := seedOf(build(42))
			b := seedOf(build(42))
			c := seedOf(build(43))
			if a == nil {
				t.Skip("no CPU-visible initializer")
			}
			if len(a) != len(b) {
				t.Fatalf("seed lengths differ: %d vs %d", len(a), len(b))
			}
			for i := range a {
				if a[i] != b[i] {
					t.Fatalf("same seed diverges at %d", i)
				}
			}
			same := true
			for i := range a {
				if a[i] != c[i] {
					same = false
					break
				}
			}
			if same {
				t.Error("different seeds produced identical state")
			}
		})
	}
}
