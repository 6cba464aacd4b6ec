package lattice

import (
	"math/rand"
	"testing"
)

func defaultReaction() Reaction {
	return Reaction{
		Feed:        0.037,
		Kill:        0.06,
		DiffU:       0.21,
		DiffV:       0.105,
		DT:          1.0,
		TouchRadius: 0.08,
	}
}

// Concentrations must stay in [0, 1] indefinitely, even with feed pinned to
// the top of its slider range.
func TestReactionStaysClamped(t *testing.T) {
	if testing.Short() {
		t.Skip("long-running clamp soak")
	}

	r := defaultReaction()
	r.Feed = 0.09

	n := 32
	f := NewField(n, n, SeedReaction(n, n, rand.New(rand.NewSource(7))))
	kernel := r.Kernel(-1, -1, 1)

	for tick := 0; tick < 10000; tick++ {
		f.Step(kernel)
	}

	for i, v := range f.Cells() {
		if i%4 > 1 {
			continue
		}
		if v < 0 || v > 1 {
			t.Fatalf("channel value %v at index %d escaped [0, 1]", v, i)
		}
	}
}

// The (-1,-1) pointer sentinel must behave exactly like no touch at all,
// regardless of the button sign carried alongside it.
func TestReactionInactivePointerIsInert(t *testing.T) {
	r := defaultReaction()
	n := 16
	seed := SeedReaction(n, n, rand.New(rand.NewSource(3)))

	a := NewField(n, n, seed)
	b := NewField(n, n, seed)
	for tick := 0; tick < 50; tick++ {
		a.Step(r.Kernel(-1, -1, 1))
		b.Step(r.Kernel(-1, -1, -1))
	}

	for i, v := range a.Cells() {
		if v != b.Cells()[i] {
			t.Fatalf("inactive pointer altered the field at index %d: %v vs %v", i, v, b.Cells()[i])
		}
	}
}

func TestReactionTouchInjectsAndErases(t *testing.T) {
	r := defaultReaction()
	n := 32
	f := NewField(n, n, SeedReaction(n, n, rand.New(rand.NewSource(5))))

	// primary touch raises V to at least 0.9 inside the radius
	f.Step(r.Kernel(0.5, 0.5, 1))
	cx, cy := n/2, n/2
	if v := f.At(cx, cy, 1); v < 0.9 {
		t.Errorf("V under primary touch = %v, want >= 0.9", v)
	}

	// secondary touch clears the same patch back to pure U
	f.Step(r.Kernel(0.5, 0.5, -1))
	if u, v := f.At(cx, cy, 0), f.At(cx, cy, 1); u != 1.0 || v != 0.0 {
		t.Errorf("cell under secondary touch = (%v, %v), want (1, 0)", u, v)
	}
}

// Same seed and params must reproduce the same field, the reset guarantee.
func TestSeedReactionDeterministic(t *testing.T) {
	a := SeedReaction(24, 24, rand.New(rand.NewSource(11)))
	b := SeedReaction(24, 24, rand.New(rand.NewSource(11)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeds diverge at index %d", i)
		}
	}

	c := SeedReaction(24, 24, rand.New(rand.NewSource(12)))
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical fields")
	}
}
