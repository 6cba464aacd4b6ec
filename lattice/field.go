// Package lattice holds the CPU reference implementations of the lattice
// simulations: a double-buffered toroidal field of 4-channel float cells and
// the Gray-Scott and Kuramoto step kernels, with semantics identical to the
// GPU fragment kernels. Headless runs, the tuning tool, and the property
// tests are built on this package; it has no GPU dependencies.
package lattice

// Field is a W x H toroidal lattice of 4-channel float32 cells with two
// backing buffers. One buffer is current (read-only during a step), the
// other is the write target; they swap roles after every step.
type Field struct {
	W, H int
	bufs [2][]float32
	cur  int
}

// NewField creates a field seeded with data (len must be w*h*4). Both
// buffers start identical.
func NewField(w, h int, seed []float32) *Field {
	f := &Field{W: w, H: h}
	for i := range f.bufs {
		f.bufs[i] = make([]float32, w*h*4)
		copy(f.bufs[i], seed)
	}
	return f
}

// Cells returns the current buffer. Callers must not mutate it.
func (f *Field) Cells() []float32 {
	return f.bufs[f.cur]
}

// At reads channel ch of the cell at (x, y) from the current buffer,
// wrapping both coordinates toroidally.
func (f *Field) At(x, y, ch int) float32 {
	x = ((x % f.W) + f.W) % f.W
	y = ((y % f.H) + f.H) % f.H
	return f.bufs[f.cur][(y*f.W+x)*4+ch]
}

// Clone returns an independent copy with the same state and buffer roles.
func (f *Field) Clone() *Field {
	c := &Field{W: f.W, H: f.H, cur: f.cur}
	for i := range f.bufs {
		c.bufs[i] = make([]float32, len(f.bufs[i]))
		copy(c.bufs[i], f.bufs[i])
	}
	return c
}

// CellKernel computes the next value of one cell. It may only read the
// field (the current buffer); the write lands in the other buffer.
type CellKernel func(f *Field, x, y int) [4]float32

// Step advances the field one discrete tick: the kernel is evaluated for
// every cell against the current buffer, results land in the other buffer,
// then the buffers swap.
func (f *Field) Step(k CellKernel) {
	dst := f.bufs[1-f.cur]
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			v := k(f, x, y)
			i := (y*f.W + x) * 4
			dst[i] = v[0]
			dst[i+1] = v[1]
			dst[i+2] = v[2]
			dst[i+3] = v[3]
		}
	}
	f.cur = 1 - f.cur
}

// torusDist is the shortest-path distance between two normalized points on
// the unit torus.
func torusDist(ax, ay, bx, by float32) float32 {
	dx := abs32(ax - bx)
	dy := abs32(ay - by)
	if dx > 0.5 {
		dx = 1.0 - dx
	}
	if dy > 0.5 {
		dy = 1.0 - dy
	}
	return sqrt32(dx*dx + dy*dy)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
