package exhibit

import (
	"testing"

	"github.com/dominikklepl/Complexity-emergence/sim"
)

func TestNormalizePointerFlipsY(t *testing.T) {
	tests := []struct {
		name   string
		px, py float32
		wantX  float32
		wantY  float32
	}{
		{"top-left corner", 0, 0, 0, 1},
		{"bottom-left corner", 0, 1080, 0, 0},
		{"center", 960, 540, 0.5, 0.5},
		{"bottom-right corner", 1920, 1080, 1, 0},
		{"off-screen left", -50, 540, 0, 0.5},
		{"off-screen below", 960, 2000, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := normalizePointer(tt.px, tt.py, 1920, 1080, sim.ButtonPrimary)
			if !p.Active {
				t.Fatal("normalized pointer must be active")
			}
			if p.X != tt.wantX || p.Y != tt.wantY {
				t.Errorf("normalized = (%v, %v), want (%v, %v)", p.X, p.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestNormalizePointerKeepsButton(t *testing.T) {
	p := normalizePointer(10, 10, 100, 100, sim.ButtonSecondary)
	if p.Button != sim.ButtonSecondary {
		t.Errorf("button = %v, want secondary", p.Button)
	}
	if p.Sign() != -1 {
		t.Errorf("sign = %v, want -1", p.Sign())
	}
}
