package telemetry

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Observation is one tick's worth of metrics for the active simulation.
type Observation struct {
	FieldMean float64
	FieldStd  float64
	FieldMin  float64
	FieldMax  float64

	OrderParam   float64
	Polarization float64
	MeanSpeed    float64
}

// Collector accumulates per-tick observations and produces WindowStats at
// window boundaries.
type Collector struct {
	sim         string
	windowTicks int

	windowStartTick int
	windowStart     time.Time

	fieldMean []float64
	fieldStd  []float64
	order     []float64
	pol       []float64
	speed     []float64
	fieldMin  float64
	fieldMax  float64
	samples   int
}

// NewCollector creates a collector for one simulation with the given window
// length in ticks.
func NewCollector(sim string, windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	c := &Collector{sim: sim, windowTicks: windowTicks}
	c.reset(0)
	return c
}

// Record adds one tick's observation to the current window.
func (c *Collector) Record(o Observation) {
	if c.samples == 0 {
		c.fieldMin = o.FieldMin
		c.fieldMax = o.FieldMax
	} else {
		if o.FieldMin < c.fieldMin {
			c.fieldMin = o.FieldMin
		}
		if o.FieldMax > c.fieldMax {
			c.fieldMax = o.FieldMax
		}
	}
	c.fieldMean = append(c.fieldMean, o.FieldMean)
	c.fieldStd = append(c.fieldStd, o.FieldStd)
	c.order = append(c.order, o.OrderParam)
	c.pol = append(c.pol, o.Polarization)
	c.speed = append(c.speed, o.MeanSpeed)
	c.samples++
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush averages the window's observations into a WindowStats and starts
// the next window.
func (c *Collector) Flush(currentTick int) WindowStats {
	s := WindowStats{
		WindowEndTick: currentTick,
		Sim:           c.sim,
		FieldMin:      c.fieldMin,
		FieldMax:      c.fieldMax,
	}
	if c.samples > 0 {
		s.FieldMean = stat.Mean(c.fieldMean, nil)
		s.FieldStd = stat.Mean(c.fieldStd, nil)
		s.OrderParam = stat.Mean(c.order, nil)
		s.Polarization = stat.Mean(c.pol, nil)
		s.MeanSpeed = stat.Mean(c.speed, nil)
	}
	if elapsed := time.Since(c.windowStart).Seconds(); elapsed > 0 {
		s.TicksPerSec = float64(c.samples) / elapsed
	}

	c.reset(currentTick)
	return s
}

func (c *Collector) reset(tick int) {
	c.windowStartTick = tick
	c.windowStart = time.Now()
	c.fieldMean = c.fieldMean[:0]
	c.fieldStd = c.fieldStd[:0]
	c.order = c.order[:0]
	c.pol = c.pol[:0]
	c.speed = c.speed[:0]
	c.fieldMin = 0
	c.fieldMax = 0
	c.samples = 0
}
