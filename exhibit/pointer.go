package exhibit

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/dominikklepl/Complexity-emergence/sim"
)

// ReadPointer maps raylib touch and mouse input to the normalized pointer
// the simulations consume: grid coordinates in [0,1] with y up, inactive
// when nothing is pressed or the press is over the control panel. A second
// touch point or the right mouse button selects the secondary action.
func ReadPointer(screenW, screenH float32, blocked func(x, y float32) bool) sim.Pointer {
	var pos rl.Vector2
	button := sim.ButtonPrimary

	switch {
	case rl.GetTouchPointCount() > 0:
		pos = rl.GetTouchPosition(0)
		if rl.GetTouchPointCount() >= 2 {
			button = sim.ButtonSecondary
		}
	case rl.IsMouseButtonDown(rl.MouseRightButton):
		pos = rl.GetMousePosition()
		button = sim.ButtonSecondary
	case rl.IsMouseButtonDown(rl.MouseLeftButton):
		pos = rl.GetMousePosition()
	default:
		return sim.Pointer{}
	}

	if blocked != nil && blocked(pos.X, pos.Y) {
		return sim.Pointer{}
	}

	return normalizePointer(pos.X, pos.Y, screenW, screenH, button)
}

// normalizePointer maps a screen position (origin top-left, y down) to grid
// space (unit square, y up).
func normalizePointer(px, py, screenW, screenH float32, button sim.Button) sim.Pointer {
	return sim.Pointer{
		X:      clampUnit(px / screenW),
		Y:      clampUnit(1 - py/screenH),
		Active: true,
		Button: button,
	}
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
