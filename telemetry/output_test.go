package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatal(err)
	}
	if om != nil {
		t.Fatal("empty dir must disable output")
	}
	// all methods are no-ops on a nil manager
	if err := om.WriteStats(WindowStats{}); err != nil {
		t.Errorf("nil WriteStats: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Errorf("nil WritePerf: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run1")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := om.WriteStats(WindowStats{WindowEndTick: 300, Sim: "rd", FieldMean: 0.25}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteStats(WindowStats{WindowEndTick: 600, Sim: "rd", FieldMean: 0.5}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("stats.csv has %d lines, want header + 2 rows:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[0], "window_end") || !strings.Contains(lines[0], "field_mean") {
		t.Errorf("header row = %q", lines[0])
	}
	if strings.Contains(lines[1], "window_end") {
		t.Error("header repeated in data rows")
	}
	if !strings.Contains(lines[2], "600") {
		t.Errorf("second row = %q, want tick 600", lines[2])
	}
}

func TestPerfCollectorPhases(t *testing.T) {
	p := NewPerfCollector(4)

	for i := 0; i < 3; i++ {
		p.StartTick()
		p.StartPhase(PhaseStep)
		time.Sleep(2 * time.Millisecond)
		p.StartPhase(PhaseRender)
		time.Sleep(time.Millisecond)
		p.EndTick()
	}

	s := p.Stats()
	if s.AvgTickDuration < 2*time.Millisecond {
		t.Errorf("avg tick = %v, want >= 2ms", s.AvgTickDuration)
	}
	if s.PhasePct[PhaseStep] <= s.PhasePct[PhaseRender] {
		t.Errorf("phase split step=%v%% render=%v%%, step should dominate",
			s.PhasePct[PhaseStep], s.PhasePct[PhaseRender])
	}
	if s.TicksPerSecond <= 0 {
		t.Errorf("ticks per second = %v", s.TicksPerSecond)
	}
}
