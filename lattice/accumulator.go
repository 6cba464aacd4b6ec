package lattice

// Accumulator is the CPU mirror of the trail buffer: a single-channel,
// double-buffered accumulation surface with exponential decay. It is a
// visualization accumulator, not simulation state.
type Accumulator struct {
	W, H int
	bufs [2][]float32
	cur  int
}

// NewAccumulator creates a zeroed accumulator.
func NewAccumulator(w, h int) *Accumulator {
	a := &Accumulator{W: w, H: h}
	for i := range a.bufs {
		a.bufs[i] = make([]float32, w*h)
	}
	return a
}

// Values returns the current buffer.
func (a *Accumulator) Values() []float32 {
	return a.bufs[a.cur]
}

// Fade multiplies every cell by persistence, writing into the alternate
// buffer, then swaps.
func (a *Accumulator) Fade(persistence float32) {
	src := a.bufs[a.cur]
	dst := a.bufs[1-a.cur]
	for i, v := range src {
		dst[i] = v * persistence
	}
	a.cur = 1 - a.cur
}

// Deposit adds amount at the cell containing the normalized position,
// wrapping toroidally.
func (a *Accumulator) Deposit(x, y, amount float32) {
	cx := int(WrapUnit(x) * float32(a.W))
	cy := int(WrapUnit(y) * float32(a.H))
	if cx >= a.W {
		cx = a.W - 1
	}
	if cy >= a.H {
		cy = a.H - 1
	}
	a.bufs[a.cur][cy*a.W+cx] += amount
}
