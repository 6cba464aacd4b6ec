package flock

import (
	"math"
	"math/rand"
	"testing"
)

func soloParams() Params {
	return Params{
		Perception: 0.08,
		MaxSpeed:   0.05,
		MinSpeed:   0.002,
		MaxForce:   0.0015,
		DT:         1.0,
	}
}

func agentState(f *Flock, i int) (px, py, vx, vy float32) {
	buf := make([]float32, f.Len()*4)
	f.Snapshot(buf)
	return buf[i*4], buf[i*4+1], buf[i*4+2], buf[i*4+3]
}

// A lone agent crossing the right edge must reappear on the left:
// (0.995, 0.5) moving at (0.02, 0) lands on (0.015, 0.5).
func TestStepWrapsToroidally(t *testing.T) {
	f := New([]float32{0.995, 0.5, 0.02, 0.0})
	f.Step(soloParams(), Touch{})

	px, py, _, _ := agentState(f, 0)
	if math.Abs(float64(px)-0.015) > 1e-5 {
		t.Errorf("x after wrap = %v, want 0.015", px)
	}
	if math.Abs(float64(py)-0.5) > 1e-5 {
		t.Errorf("y after wrap = %v, want 0.5", py)
	}
}

func TestSpeedFloorAndCeiling(t *testing.T) {
	p := soloParams()

	// crawling agent gets lifted to the floor without changing direction
	slow := New([]float32{0.5, 0.5, 1e-4, 0.0})
	slow.Step(p, Touch{})
	_, _, vx, vy := agentState(slow, 0)
	speed := math.Hypot(float64(vx), float64(vy))
	if math.Abs(speed-float64(p.MinSpeed)) > 1e-6 {
		t.Errorf("slow agent speed = %v, want floor %v", speed, p.MinSpeed)
	}
	if vx <= 0 || math.Abs(float64(vy)) > 1e-6 {
		t.Errorf("floor changed heading: (%v, %v)", vx, vy)
	}

	// overspeeding agent gets clamped to the ceiling
	fast := New([]float32{0.5, 0.5, 0.2, 0.0})
	fast.Step(p, Touch{})
	_, _, vx, vy = agentState(fast, 0)
	speed = math.Hypot(float64(vx), float64(vy))
	if math.Abs(speed-float64(p.MaxSpeed)) > 1e-6 {
		t.Errorf("fast agent speed = %v, want ceiling %v", speed, p.MaxSpeed)
	}
}

// An agent at full rest still starts moving: the floor direction comes from
// a position hash, so it is reproducible.
func TestSpeedFloorRevivesRestingAgent(t *testing.T) {
	a := New([]float32{0.3, 0.7, 0, 0})
	b := New([]float32{0.3, 0.7, 0, 0})
	p := soloParams()
	a.Step(p, Touch{})
	b.Step(p, Touch{})

	_, _, avx, avy := agentState(a, 0)
	_, _, bvx, bvy := agentState(b, 0)
	speed := math.Hypot(float64(avx), float64(avy))
	if math.Abs(speed-float64(p.MinSpeed)) > 1e-6 {
		t.Errorf("revived speed = %v, want %v", speed, p.MinSpeed)
	}
	if avx != bvx || avy != bvy {
		t.Error("revival direction is not deterministic")
	}
}

// Two agents inside the separation zone must end up farther apart.
func TestSeparationPushesNeighborsApart(t *testing.T) {
	p := soloParams()
	p.WeightSep = 1.5
	p.Perception = 0.1

	f := New([]float32{
		0.50, 0.5, 0, 0.01,
		0.52, 0.5, 0, 0.01,
	})
	before := pairDistance(f)
	for i := 0; i < 10; i++ {
		f.Step(p, Touch{})
	}
	after := pairDistance(f)

	if after <= before {
		t.Errorf("distance went %v -> %v, want increase", before, after)
	}
}

// Alignment pulls divergent headings together.
func TestAlignmentConvergesHeadings(t *testing.T) {
	p := soloParams()
	p.WeightAli = 2.0
	p.Perception = 0.2

	f := New([]float32{
		0.45, 0.5, 0.01, 0.0,
		0.55, 0.5, 0.0, 0.01,
	})
	buf := make([]float32, 8)
	for i := 0; i < 200; i++ {
		f.Step(p, Touch{})
	}
	f.Snapshot(buf)

	dot := buf[2]*buf[6] + buf[3]*buf[7]
	na := float32(math.Hypot(float64(buf[2]), float64(buf[3])))
	nb := float32(math.Hypot(float64(buf[6]), float64(buf[7])))
	if cos := dot / (na * nb); cos < 0.9 {
		t.Errorf("heading alignment cos = %v, want > 0.9", cos)
	}
}

// Crowd-mode jitter is hashed from agent state, so identical flocks stay
// identical tick for tick.
func TestCrowdJitterIsDeterministic(t *testing.T) {
	seed := SeedAgents(64, 0.01, rand.New(rand.NewSource(21)))
	a := New(seed)
	b := New(seed)

	p := soloParams()
	p.WeightSep = 1.5
	p.WeightAli = 1.0
	p.WeightCoh = 1.0
	p.MaxSpeed = 0.01
	p.Mode = ModeCrowd

	bufA := make([]float32, 64*4)
	bufB := make([]float32, 64*4)
	for i := 0; i < 100; i++ {
		a.Step(p, Touch{})
		b.Step(p, Touch{})
	}
	a.Snapshot(bufA)
	b.Snapshot(bufB)

	for i := range bufA {
		if bufA[i] != bufB[i] {
			t.Fatalf("crowd runs diverge at index %d: %v vs %v", i, bufA[i], bufB[i])
		}
	}
}

// Predator mode flees the touch point: the agent's distance to it grows.
func TestPredatorTouchRepels(t *testing.T) {
	p := soloParams()
	p.Mode = ModePredator
	p.MaxSpeed = 0.01

	f := New([]float32{0.55, 0.5, 0, 0.002})
	touch := Touch{X: 0.5, Y: 0.5, Active: true, Sign: 1}

	before := touchDistance(f, touch)
	for i := 0; i < 30; i++ {
		f.Step(p, touch)
	}
	after := touchDistance(f, touch)

	if after <= before {
		t.Errorf("distance to predator went %v -> %v, want increase", before, after)
	}
}

// Primary touch attracts in normal mode, secondary repels.
func TestTouchSignSelectsAttractOrRepel(t *testing.T) {
	p := soloParams()
	p.MaxSpeed = 0.01

	attract := New([]float32{0.7, 0.5, 0, 0.002})
	repel := New([]float32{0.7, 0.5, 0, 0.002})
	for i := 0; i < 20; i++ {
		attract.Step(p, Touch{X: 0.5, Y: 0.5, Active: true, Sign: 1})
		repel.Step(p, Touch{X: 0.5, Y: 0.5, Active: true, Sign: -1})
	}

	da := touchDistance(attract, Touch{X: 0.5, Y: 0.5})
	dr := touchDistance(repel, Touch{X: 0.5, Y: 0.5})
	if da >= 0.2 {
		t.Errorf("attracted agent distance = %v, want < start 0.2", da)
	}
	if dr <= 0.2 {
		t.Errorf("repelled agent distance = %v, want > start 0.2", dr)
	}
}

func pairDistance(f *Flock) float64 {
	buf := make([]float32, 8)
	f.Snapshot(buf)
	dx := wrapOffset(buf[4] - buf[0])
	dy := wrapOffset(buf[5] - buf[1])
	return math.Hypot(float64(dx), float64(dy))
}

func touchDistance(f *Flock, t Touch) float64 {
	buf := make([]float32, f.Len()*4)
	f.Snapshot(buf)
	dx := wrapOffset(t.X - buf[0])
	dy := wrapOffset(t.Y - buf[1])
	return math.Hypot(float64(dx), float64(dy))
}
