package lattice

import "math/rand"

// Reaction holds the Gray-Scott model coefficients. Channel 0 is the U
// concentration, channel 1 is V; both stay clamped to [0, 1].
type Reaction struct {
	Feed, Kill   float32
	DiffU, DiffV float32
	DT           float32
	TouchRadius  float32
}

// SeedReaction builds initial cell data: U at full concentration everywhere,
// V seeded in a handful of random disks so patterns have somewhere to grow
// from.
func SeedReaction(w, h int, rng *rand.Rand) []float32 {
	data := make([]float32, w*h*4)
	for i := 0; i < w*h; i++ {
		data[i*4] = 1.0
		data[i*4+3] = 1.0
	}

	spots := 6 + rng.Intn(5)
	r := float32(w) * 0.03
	for s := 0; s < spots; s++ {
		cx := rng.Float32() * float32(w)
		cy := rng.Float32() * float32(h)
		for dy := -int(r) - 1; dy <= int(r)+1; dy++ {
			for dx := -int(r) - 1; dx <= int(r)+1; dx++ {
				if float32(dx*dx+dy*dy) > r*r {
					continue
				}
				x := ((int(cx)+dx)%w + w) % w
				y := ((int(cy)+dy)%h + h) % h
				i := (y*w + x) * 4
				data[i] = 0.5
				data[i+1] = 0.9
			}
		}
	}
	return data
}

// Kernel returns the per-cell step kernel for the given touch state.
// tx, ty are normalized grid coordinates, (-1,-1) when the pointer is
// inactive; sign is +1 to inject V, -1 to erase.
func (r Reaction) Kernel(tx, ty, sign float32) CellKernel {
	return func(f *Field, x, y int) [4]float32 {
		u := f.At(x, y, 0)
		v := f.At(x, y, 1)

		// 3x3 toroidal Laplacian: 0.2 orthogonal, 0.05 diagonal.
		lapU := -u
		lapV := -v
		lapU += 0.2 * (f.At(x+1, y, 0) + f.At(x-1, y, 0) + f.At(x, y+1, 0) + f.At(x, y-1, 0))
		lapV += 0.2 * (f.At(x+1, y, 1) + f.At(x-1, y, 1) + f.At(x, y+1, 1) + f.At(x, y-1, 1))
		lapU += 0.05 * (f.At(x+1, y+1, 0) + f.At(x-1, y-1, 0) + f.At(x+1, y-1, 0) + f.At(x-1, y+1, 0))
		lapV += 0.05 * (f.At(x+1, y+1, 1) + f.At(x-1, y-1, 1) + f.At(x+1, y-1, 1) + f.At(x-1, y+1, 1))

		uvv := u * v * v
		u += (r.DiffU*lapU - uvv + r.Feed*(1.0-u)) * r.DT
		v += (r.DiffV*lapV + uvv - (r.Feed+r.Kill)*v) * r.DT

		if tx >= 0 {
			ux := (float32(x) + 0.5) / float32(f.W)
			uy := (float32(y) + 0.5) / float32(f.H)
			if torusDist(ux, uy, tx, ty) < r.TouchRadius {
				if sign > 0 {
					if v < 0.9 {
						v = 0.9
					}
				} else {
					u = 1.0
					v = 0.0
				}
			}
		}

		return [4]float32{clamp01(u), clamp01(v), 0, 1}
	}
}
