package telemetry

import (
	"math"
	"testing"
)

func TestFieldSummary(t *testing.T) {
	// four cells, channel 1 holds 1, 2, 3, 4
	cells := []float32{
		0, 1, 0, 0,
		0, 2, 0, 0,
		0, 3, 0, 0,
		0, 4, 0, 0,
	}
	mean, std, min, max := FieldSummary(cells, 1)

	if math.Abs(mean-2.5) > 1e-9 {
		t.Errorf("mean = %v, want 2.5", mean)
	}
	// sample standard deviation of 1..4
	if want := math.Sqrt(5.0 / 3.0); math.Abs(std-want) > 1e-9 {
		t.Errorf("std = %v, want %v", std, want)
	}
	if min != 1 || max != 4 {
		t.Errorf("min/max = %v/%v, want 1/4", min, max)
	}
}

func TestFieldSummaryEmpty(t *testing.T) {
	mean, std, min, max := FieldSummary(nil, 0)
	if mean != 0 || std != 0 || min != 0 || max != 0 {
		t.Errorf("empty summary = %v %v %v %v, want zeros", mean, std, min, max)
	}
}

func TestOrderParameter(t *testing.T) {
	sync := []float32{
		1.2, 0, 0, 0,
		1.2, 0, 0, 0,
		1.2, 0, 0, 0,
	}
	if r := OrderParameter(sync, 0); math.Abs(r-1.0) > 1e-6 {
		t.Errorf("synchronized r = %v, want 1", r)
	}

	// opposite phases cancel exactly
	anti := []float32{
		0, 0, 0, 0,
		math.Pi, 0, 0, 0,
	}
	if r := OrderParameter(anti, 0); r > 1e-6 {
		t.Errorf("antiphase r = %v, want 0", r)
	}
}

func TestPolarization(t *testing.T) {
	aligned := []float32{
		0.1, 0.1, 0.01, 0,
		0.5, 0.5, 0.02, 0,
	}
	pol, speed := Polarization(aligned)
	if math.Abs(pol-1.0) > 1e-6 {
		t.Errorf("aligned polarization = %v, want 1", pol)
	}
	if math.Abs(speed-0.015) > 1e-6 {
		t.Errorf("mean speed = %v, want 0.015", speed)
	}

	opposed := []float32{
		0.1, 0.1, 0.01, 0,
		0.5, 0.5, -0.01, 0,
	}
	pol, _ = Polarization(opposed)
	if pol > 1e-6 {
		t.Errorf("opposed polarization = %v, want 0", pol)
	}
}

func TestCollectorWindowing(t *testing.T) {
	c := NewCollector("osc", 3)

	if c.ShouldFlush(2) {
		t.Error("flush requested before the window filled")
	}

	c.Record(Observation{OrderParam: 0.2})
	c.Record(Observation{OrderParam: 0.4})
	c.Record(Observation{OrderParam: 0.6})
	if !c.ShouldFlush(3) {
		t.Fatal("full window not flagged for flush")
	}

	s := c.Flush(3)
	if s.Sim != "osc" || s.WindowEndTick != 3 {
		t.Errorf("window identity = (%s, %d)", s.Sim, s.WindowEndTick)
	}
	if math.Abs(s.OrderParam-0.4) > 1e-9 {
		t.Errorf("window mean order = %v, want 0.4", s.OrderParam)
	}

	// the next window starts empty
	if c.ShouldFlush(4) {
		t.Error("flush requested right after a flush")
	}
	c.Record(Observation{OrderParam: 1.0})
	c.Record(Observation{OrderParam: 1.0})
	c.Record(Observation{OrderParam: 1.0})
	s = c.Flush(6)
	if math.Abs(s.OrderParam-1.0) > 1e-9 {
		t.Errorf("second window mean = %v, want 1.0 (window did not reset)", s.OrderParam)
	}
}

func TestCollectorTracksExtremes(t *testing.T) {
	c := NewCollector("rd", 10)
	c.Record(Observation{FieldMin: 0.2, FieldMax: 0.5})
	c.Record(Observation{FieldMin: 0.1, FieldMax: 0.4})
	c.Record(Observation{FieldMin: 0.3, FieldMax: 0.9})

	s := c.Flush(3)
	if s.FieldMin != 0.1 || s.FieldMax != 0.9 {
		t.Errorf("window extremes = %v/%v, want 0.1/0.9", s.FieldMin, s.FieldMax)
	}
}
