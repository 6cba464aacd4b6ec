package lattice

import (
	"math"
	"testing"
)

// rampSeed builds a field whose channel 0 holds the cell index, handy for
// checking which buffer a kernel read from.
func rampSeed(w, h int) []float32 {
	data := make([]float32, w*h*4)
	for i := 0; i < w*h; i++ {
		data[i*4] = float32(i)
	}
	return data
}

func TestAtWrapsToroidally(t *testing.T) {
	f := NewField(4, 4, rampSeed(4, 4))

	tests := []struct {
		name string
		x, y int
		want float32
	}{
		{"in range", 1, 2, 9},
		{"x past right edge", 4, 0, 0},
		{"x negative", -1, 0, 3},
		{"y past bottom edge", 0, 4, 0},
		{"y negative", 0, -1, 12},
		{"both negative", -1, -1, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.At(tt.x, tt.y, 0); got != tt.want {
				t.Errorf("At(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// A step must read only the pre-step state: a kernel copying the right
// neighbour must shift every value by exactly one cell, with no cascading
// from cells updated earlier in the same pass.
func TestStepReadsOnlyPreviousBuffer(t *testing.T) {
	w, h := 8, 1
	f := NewField(w, h, rampSeed(w, h))

	shift := func(f *Field, x, y int) [4]float32 {
		return [4]float32{f.At(x+1, y, 0), 0, 0, 0}
	}
	f.Step(shift)

	for x := 0; x < w; x++ {
		want := float32((x + 1) % w)
		if got := f.At(x, 0, 0); got != want {
			t.Errorf("cell %d = %v, want %v (kernel must not see in-pass writes)", x, got, want)
		}
	}
}

// Stepping twice from state A must equal stepping once from the state one
// step after A.
func TestStepComposes(t *testing.T) {
	w, h := 6, 6
	kernel := func(f *Field, x, y int) [4]float32 {
		avg := 0.25 * (f.At(x+1, y, 0) + f.At(x-1, y, 0) + f.At(x, y+1, 0) + f.At(x, y-1, 0))
		return [4]float32{avg, 0, 0, 0}
	}

	a := NewField(w, h, rampSeed(w, h))
	a.Step(kernel)
	b := a.Clone()

	a.Step(kernel)
	b.Step(kernel)

	for i, v := range a.Cells() {
		if v != b.Cells()[i] {
			t.Fatalf("cells diverge at %d: %v vs %v", i, v, b.Cells()[i])
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	f := NewField(4, 4, rampSeed(4, 4))
	c := f.Clone()

	f.Step(func(f *Field, x, y int) [4]float32 {
		return [4]float32{-1, 0, 0, 0}
	})

	if c.At(0, 0, 0) != 0 {
		t.Errorf("clone changed after stepping the original: %v", c.At(0, 0, 0))
	}
}

func TestWrapPhase(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want float64
	}{
		{"zero", 0, 0},
		{"in range", 1.5, 1.5},
		{"exactly two pi", TwoPi, 0},
		{"above two pi", 7.0, 7.0 - TwoPi},
		{"small negative", -0.1, TwoPi - 0.1},
		{"large negative", -7.0, 2*TwoPi - 7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := float64(WrapPhase(tt.in))
			if math.Abs(got-tt.want) > 1e-5 {
				t.Errorf("WrapPhase(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got < 0 || got >= TwoPi {
				t.Errorf("WrapPhase(%v) = %v, outside [0, 2 pi)", tt.in, got)
			}
		})
	}
}

func TestWrapUnit(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0.5, 0.5},
		{1.2, 0.2},
		{-0.1, 0.9},
		{0, 0},
		{1.0, 0},
	}
	for _, tt := range tests {
		if got := WrapUnit(tt.in); math.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("WrapUnit(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTorusDist(t *testing.T) {
	tests := []struct {
		name           string
		ax, ay, bx, by float32
		want           float64
	}{
		{"same point", 0.3, 0.3, 0.3, 0.3, 0},
		{"direct", 0.2, 0.5, 0.4, 0.5, 0.2},
		{"wraps x", 0.05, 0.5, 0.95, 0.5, 0.1},
		{"wraps both", 0.02, 0.02, 0.98, 0.98, math.Sqrt(2 * 0.04 * 0.04)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := float64(torusDist(tt.ax, tt.ay, tt.bx, tt.by))
			if math.Abs(got-tt.want) > 1e-5 {
				t.Errorf("torusDist = %v, want %v", got, tt.want)
			}
		})
	}
}
