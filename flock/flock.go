// Package flock holds the CPU reference implementation of the agent
// simulation: a fixed population of flocking agents stored in an ECS world,
// stepped with the same steering rules as the GPU agent kernel. Headless
// runs and the agent property tests are built on this package.
package flock

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
)

// Position is a normalized toroidal coordinate in [0,1) x [0,1).
type Position struct {
	X, Y float32
}

// Velocity is in normalized units per time unit.
type Velocity struct {
	X, Y float32
}

// Mode selects the behaviour variant.
type Mode int

const (
	ModeNormal Mode = iota
	ModeCrowd       // amplified separation, damped alignment/cohesion, jitter
	ModePredator    // amplified cohesion while touched, strong flee force
)

// Steering constants held fixed across behaviour modes.
const (
	DefaultMinSpeed = 0.002
	DefaultMaxForce = 0.0015
	DefaultDT       = 1.0
)

// Params holds the steering coefficients for one step.
type Params struct {
	Perception float32
	WeightSep  float32
	WeightAli  float32
	WeightCoh  float32
	MaxSpeed   float32
	MinSpeed   float32 // nonzero floor so agents never stall
	MaxForce   float32
	Mode       Mode
	DT         float32
}

// Touch is the pointer state seen by the flock: normalized position, active
// flag, and a force sign (+1 attract, -1 repel; ignored in predator mode).
type Touch struct {
	X, Y   float32
	Active bool
	Sign   float32
}

// Flock owns a fixed-size agent population.
type Flock struct {
	world  *ecs.World
	mapper *ecs.Map2[Position, Velocity]
	filter *ecs.Filter2[Position, Velocity]

	n int

	// per-tick snapshot of the whole table; the update reads the snapshot
	// and writes the components, mirroring the GPU double buffer
	pos []Position
	vel []Velocity
}

// SeedAgents builds n*4 floats of initial agent state (px, py, vx, vy per
// agent): random positions, random headings at half the given speed.
func SeedAgents(n int, speed float32, rng *rand.Rand) []float32 {
	data := make([]float32, n*4)
	for i := 0; i < n; i++ {
		a := rng.Float64() * 2 * math.Pi
		data[i*4] = rng.Float32()
		data[i*4+1] = rng.Float32()
		data[i*4+2] = float32(math.Cos(a)) * speed * 0.5
		data[i*4+3] = float32(math.Sin(a)) * speed * 0.5
	}
	return data
}

// New creates a flock from seed data as produced by SeedAgents.
func New(seed []float32) *Flock {
	world := ecs.NewWorld()
	n := len(seed) / 4

	f := &Flock{
		world:  world,
		mapper: ecs.NewMap2[Position, Velocity](world),
		filter: ecs.NewFilter2[Position, Velocity](world),
		n:      n,
		pos:    make([]Position, n),
		vel:    make([]Velocity, n),
	}

	for i := 0; i < n; i++ {
		pos := Position{X: seed[i*4], Y: seed[i*4+1]}
		vel := Velocity{X: seed[i*4+2], Y: seed[i*4+3]}
		f.mapper.NewEntity(&pos, &vel)
	}
	return f
}

// Len returns the agent count.
func (f *Flock) Len() int { return f.n }

// Snapshot copies the current agent table into out (n*4 floats).
func (f *Flock) Snapshot(out []float32) {
	i := 0
	query := f.filter.Query()
	for query.Next() {
		pos, vel := query.Get()
		out[i*4] = pos.X
		out[i*4+1] = pos.Y
		out[i*4+2] = vel.X
		out[i*4+3] = vel.Y
		i++
	}
}

// Step advances every agent one discrete tick. The whole table is
// snapshotted first, so each agent sees the prior state of all others,
// matching the read/write separation of the GPU ping-pong.
func (f *Flock) Step(p Params, t Touch) {
	i := 0
	query := f.filter.Query()
	for query.Next() {
		pos, vel := query.Get()
		f.pos[i] = *pos
		f.vel[i] = *vel
		i++
	}

	i = 0
	query = f.filter.Query()
	for query.Next() {
		pos, vel := query.Get()
		nx, ny, nvx, nvy := f.integrate(i, p, t)
		pos.X, pos.Y = nx, ny
		vel.X, vel.Y = nvx, nvy
		i++
	}
}

// integrate computes the next state of agent i from the snapshot.
func (f *Flock) integrate(i int, p Params, t Touch) (px, py, vx, vy float32) {
	pos := f.pos[i]
	vel := f.vel[i]

	var sepX, sepY, aliX, aliY, cohX, cohY float32
	inView := 0
	tooClose := 0

	// brute-force scan over all other agents, toroidal shortest path
	for j := 0; j < f.n; j++ {
		if j == i {
			continue
		}
		ox := wrapOffset(f.pos[j].X - pos.X)
		oy := wrapOffset(f.pos[j].Y - pos.Y)
		d := float32(math.Sqrt(float64(ox*ox + oy*oy)))
		if d >= p.Perception {
			continue
		}
		inView++
		aliX += f.vel[j].X
		aliY += f.vel[j].Y
		cohX += ox
		cohY += oy
		if d < p.Perception*0.5 && d > 1e-5 {
			sepX -= ox / (d * d)
			sepY -= oy / (d * d)
			tooClose++
		}
	}

	sepW, aliW, cohW := p.WeightSep, p.WeightAli, p.WeightCoh
	switch {
	case p.Mode == ModeCrowd:
		sepW *= 2.5
		aliW *= 0.3
		cohW *= 0.3
	case p.Mode == ModePredator && t.Active:
		cohW *= 2.0
	}

	var accX, accY float32
	if tooClose > 0 {
		sx, sy := steer(sepX, sepY, vel.X, vel.Y, p.MaxSpeed, p.MaxForce)
		accX += sepW * sx
		accY += sepW * sy
	}
	if inView > 0 {
		sx, sy := steer(aliX, aliY, vel.X, vel.Y, p.MaxSpeed, p.MaxForce)
		accX += aliW * sx
		accY += aliW * sy
		sx, sy = steer(cohX, cohY, vel.X, vel.Y, p.MaxSpeed, p.MaxForce)
		accX += cohW * sx
		accY += cohW * sy
	}

	if p.Mode == ModeCrowd {
		// deterministic jitter, hashed from the agent's own state
		a := hash12(pos.X+vel.X, pos.Y+vel.Y) * 2 * math.Pi
		accX += float32(math.Cos(float64(a))) * p.MaxForce * 0.5
		accY += float32(math.Sin(float64(a))) * p.MaxForce * 0.5
	}

	if t.Active {
		tx := wrapOffset(t.X - pos.X)
		ty := wrapOffset(t.Y - pos.Y)
		if p.Mode == ModePredator {
			sx, sy := steer(-tx, -ty, vel.X, vel.Y, p.MaxSpeed, p.MaxForce)
			accX += sx * 3.0
			accY += sy * 3.0
		} else {
			sx, sy := steer(tx*t.Sign, ty*t.Sign, vel.X, vel.Y, p.MaxSpeed, p.MaxForce)
			accX += sx
			accY += sy
		}
	}

	vx = vel.X + accX*p.DT
	vy = vel.Y + accY*p.DT
	speed := float32(math.Sqrt(float64(vx*vx + vy*vy)))
	if speed < 1e-6 {
		// the nonzero floor needs a direction; derive one from the hash
		a := hash12(pos.X, pos.Y) * 2 * math.Pi
		vx = float32(math.Cos(float64(a))) * p.MinSpeed
		vy = float32(math.Sin(float64(a))) * p.MinSpeed
	} else {
		clamped := speed
		if clamped < p.MinSpeed {
			clamped = p.MinSpeed
		}
		if clamped > p.MaxSpeed {
			clamped = p.MaxSpeed
		}
		vx *= clamped / speed
		vy *= clamped / speed
	}

	px = wrapUnit(pos.X + vx*p.DT)
	py = wrapUnit(pos.Y + vy*p.DT)
	return px, py, vx, vy
}

// steer converts an accumulated desired direction into a steering force:
// normalize, scale to max speed, subtract current velocity, clamp magnitude.
func steer(dx, dy, vx, vy, maxSpeed, maxForce float32) (float32, float32) {
	l := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if l < 1e-6 {
		return 0, 0
	}
	fx := dx/l*maxSpeed - vx
	fy := dy/l*maxSpeed - vy
	fl := float32(math.Sqrt(float64(fx*fx + fy*fy)))
	if fl > maxForce && fl > 0 {
		fx *= maxForce / fl
		fy *= maxForce / fl
	}
	return fx, fy
}

// wrapOffset maps a coordinate difference to the toroidal shortest path in
// [-0.5, 0.5).
func wrapOffset(d float32) float32 {
	return d - float32(math.Floor(float64(d)+0.5))
}

func wrapUnit(v float32) float32 {
	return v - float32(math.Floor(float64(v)))
}

// hash12 matches the GLSL hash used by the GPU kernel.
func hash12(x, y float32) float32 {
	px := fract(x * 0.1031)
	py := fract(y * 0.1031)
	pz := fract(x * 0.1031)
	d := px*(py+33.33) + py*(pz+33.33) + pz*(px+33.33)
	px += d
	py += d
	pz += d
	return fract((px + py) * pz)
}

func fract(v float32) float32 {
	return v - float32(math.Floor(float64(v)))
}
