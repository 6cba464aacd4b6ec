package sim

import (
	"image/color"
	"math"
	"testing"
)

func TestDecodePos16(t *testing.T) {
	cases := []struct {
		name string
		c    color.RGBA
		x, y float32
	}{
		{"origin", color.RGBA{R: 0, G: 0, B: 0, A: 0}, 0, 0},
		{"far corner", color.RGBA{R: 255, G: 255, B: 255, A: 255}, 1, 1},
		{"asymmetric", color.RGBA{R: 86, G: 69, B: 172, A: 138}, 0.337, 0.674},
	}
	const eps = 1e-4
	for _, c := range cases {
		x, y := decodePos16(c.c)
		if math.Abs(float64(x-c.x)) > eps || math.Abs(float64(y-c.y)) > eps {
			t.Errorf("%s: decodePos16 = (%v, %v), want (%v, %v)", c.name, x, y, c.x, c.y)
		}
	}
}

// A byte pair carries 16 bits per axis, so decoded positions resolve well
// below one display pixel.
func TestDecodePos16Resolution(t *testing.T) {
	a, _ := decodePos16(color.RGBA{R: 100, G: 7})
	b, _ := decodePos16(color.RGBA{R: 100, G: 8})
	step := b - a
	if step <= 0 || step > 1.0/65000 {
		t.Errorf("adjacent codes differ by %v, want one 16-bit quantum", step)
	}
}

func TestBoidsReportsPhases(t *testing.T) {
	b := NewBoids(1)
	var seen []string
	b.SetPhaseFunc(func(phase string) { seen = append(seen, phase) })

	// not set up: Step is a no-op and must not report anything
	b.Step(DefaultParams(b.Meta()), Pointer{})
	if len(seen) != 0 {
		t.Errorf("inert Step reported phases %v", seen)
	}

	// nil hook stays safe
	b.SetPhaseFunc(nil)
	b.markPhase("step")
}
