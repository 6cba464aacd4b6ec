// Package ui renders the visitor-facing control panel. The panel layout is
// generated from the active simulation's metadata, so adding a control to a
// simulation needs no UI change.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds panel styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	Accent        rl.Color
	MutedColor    rl.Color

	Padding        int32
	LineHeight     int32
	SliderHeight   int32
	ButtonHeight   int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the exhibit theme: dark panel, large touch targets.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Color{R: 240, G: 220, B: 130, A: 255},
		LabelColor:    rl.LightGray,
		ValueColor:    rl.White,
		Accent:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		MutedColor:    rl.Color{R: 150, G: 150, B: 150, A: 255},

		Padding:        14,
		LineHeight:     22,
		SliderHeight:   24,
		ButtonHeight:   34,
		FontSize:       16,
		HeaderFontSize: 20,
	}
}
