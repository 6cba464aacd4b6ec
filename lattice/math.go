package lattice

import "math"

// TwoPi is the phase modulus for the oscillator model.
const TwoPi = 2 * math.Pi

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func sin32(v float32) float32 {
	return float32(math.Sin(float64(v)))
}

// WrapPhase reduces an angle modulo 2 pi, correcting negative results so the
// stored phase is always in [0, 2 pi).
func WrapPhase(theta float32) float32 {
	t := float32(math.Mod(float64(theta), TwoPi))
	if t < 0 {
		t += TwoPi
	}
	return t
}

// WrapUnit wraps a coordinate into [0, 1) toroidally.
func WrapUnit(v float32) float32 {
	return v - float32(math.Floor(float64(v)))
}
