package lattice

import "math/rand"

// Oscillator holds the Kuramoto lattice coefficients. Channel 0 is the
// phase in [0, 2 pi), channel 1 the natural frequency (static after init).
type Oscillator struct {
	Coupling    float32
	FreqScale   float32
	DT          float32
	TouchRadius float32
}

// SeedOscillator builds initial cell data: uniformly random phases and
// natural frequencies spread around 1.0.
func SeedOscillator(w, h int, spread float64, rng *rand.Rand) []float32 {
	data := make([]float32, w*h*4)
	for i := 0; i < w*h; i++ {
		data[i*4] = rng.Float32() * TwoPi
		data[i*4+1] = 1.0 + float32(spread)*(rng.Float32()*2.0-1.0)
		data[i*4+3] = 1.0
	}
	return data
}

// Kernel returns the per-cell step kernel for the given touch state.
// Primary touch (sign > 0) pins the patch to phase zero; secondary kicks it
// half a cycle.
func (o Oscillator) Kernel(tx, ty, sign float32) CellKernel {
	return func(f *Field, x, y int) [4]float32 {
		theta := f.At(x, y, 0)
		omega := f.At(x, y, 1)

		// nearest-neighbour sine coupling on the torus
		drive := sin32(f.At(x+1, y, 0)-theta) +
			sin32(f.At(x-1, y, 0)-theta) +
			sin32(f.At(x, y+1, 0)-theta) +
			sin32(f.At(x, y-1, 0)-theta)

		theta += (omega*o.FreqScale + o.Coupling*drive) * o.DT

		if tx >= 0 {
			ux := (float32(x) + 0.5) / float32(f.W)
			uy := (float32(y) + 0.5) / float32(f.H)
			if torusDist(ux, uy, tx, ty) < o.TouchRadius {
				if sign > 0 {
					theta = 0
				} else {
					theta += TwoPi * 0.5
				}
			}
		}

		return [4]float32{WrapPhase(theta), omega, 0, 1}
	}
}
