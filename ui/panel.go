package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/dominikklepl/Complexity-emergence/i18n"
	"github.com/dominikklepl/Complexity-emergence/sim"
)

// State is the mutable panel-owned view of the exhibit: control values,
// palette and speed selection, language and pause. The panel mutates it in
// place during Draw.
type State struct {
	Params  sim.Params
	Palette int
	Speed   int
	Locale  string
	Paused  bool
}

// Action reports the one-shot requests a Draw produced.
type Action struct {
	Reseed   bool // a state-resetting control changed, rebuild the simulation
	Snapshot bool
	Switch   int // simulation index to switch to, -1 for none
}

// Panel is the generated control panel for one simulation.
type Panel struct {
	theme   Theme
	x       int32
	width   int32
	height  int32 // measured during the previous Draw
	visible bool

	message      string
	messageTicks int
}

// NewPanel creates a panel anchored at the given x with the given width.
func NewPanel(x, width int32) *Panel {
	return &Panel{theme: DefaultTheme(), x: x, width: width, visible: true}
}

// Toggle flips panel visibility and returns the new state.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool { return p.visible }

// Contains reports whether a screen point falls inside the panel, so the
// orchestrator can keep panel touches away from the simulation.
func (p *Panel) Contains(x, y float32) bool {
	return p.visible && x >= float32(p.x) && x <= float32(p.x+p.width) &&
		y >= 0 && y <= float32(p.height)
}

// ShowMessage displays a transient status line for roughly three seconds.
func (p *Panel) ShowMessage(text string) {
	p.message = text
	p.messageTicks = 180
}

// Draw renders the panel from the simulation metadata and handles its
// input, mutating st in place. Returned actions are valid for this frame
// only.
func (p *Panel) Draw(meta sim.Meta, strings i18n.Table, st *State, simIDs []string, active int) Action {
	act := Action{Switch: -1}
	if !p.visible {
		p.height = 0
		return act
	}

	t := p.theme
	x := float32(p.x) + float32(t.Padding)
	w := float32(p.width) - 2*float32(t.Padding)
	y := float32(t.Padding)

	// background sized from the previous frame's measured height
	if p.height > 0 {
		rl.DrawRectangle(p.x, 0, p.width, p.height, t.PanelBg)
		rl.DrawRectangleLines(p.x, 0, p.width, p.height, t.PanelBorder)
	}

	y = p.drawHeader(strings.T(meta.TitleKey, st.Locale), x, y)
	y = p.drawSims(strings, st, &act, simIDs, active, x, y, w)

	for _, c := range meta.Controls {
		y = p.drawControl(c, strings, st, &act, x, y, w)
	}

	y = p.drawPresets(meta, strings, st, &act, x, y, w)
	y = p.drawPalettes(meta, strings, st, x, y, w)
	y = p.drawSpeed(meta, strings, st, x, y, w)
	y = p.drawEquations(meta, strings, st, x, y)
	y = p.drawFooter(strings, st, &act, x, y, w)

	p.height = int32(y) + t.Padding
	return act
}

func (p *Panel) drawHeader(title string, x, y float32) float32 {
	t := p.theme
	rl.DrawText(title, int32(x), int32(y), t.HeaderFontSize, t.SectionHeader)
	return y + float32(t.LineHeight) + 8
}

// drawSims renders one tab per registered simulation.
func (p *Panel) drawSims(strings i18n.Table, st *State, act *Action, simIDs []string, active int, x, y, w float32) float32 {
	if len(simIDs) < 2 {
		return y
	}
	t := p.theme
	bw := (w - float32(len(simIDs)-1)*6) / float32(len(simIDs))
	for i, id := range simIDs {
		bx := x + float32(i)*(bw+6)
		on := gui.Toggle(rl.Rectangle{X: bx, Y: y, Width: bw, Height: float32(t.ButtonHeight)},
			strings.T("chrome.sim."+id, st.Locale), i == active)
		if on && i != active {
			act.Switch = i
		}
	}
	return y + float32(t.ButtonHeight) + 10
}

func (p *Panel) drawControl(c sim.Control, strings i18n.Table, st *State, act *Action, x, y, w float32) float32 {
	t := p.theme
	label := strings.T(c.LabelKey, st.Locale)
	cur := st.Params.Get(c.ID, c.Default)

	switch c.Kind {
	case sim.Select:
		rl.DrawText(label, int32(x), int32(y), t.FontSize, t.LabelColor)
		y += float32(t.LineHeight)
		bw := (w - float32(len(c.OptionKeys)-1)*6) / float32(len(c.OptionKeys))
		for i, key := range c.OptionKeys {
			bx := x + float32(i)*(bw+6)
			active := int(cur+0.5) == i
			on := gui.Toggle(rl.Rectangle{X: bx, Y: y, Width: bw, Height: float32(t.ButtonHeight)},
				strings.T(key, st.Locale), active)
			if on && !active {
				st.Params[c.ID] = float64(i)
				if c.Resets {
					act.Reseed = true
				}
			}
		}
		return y + float32(t.ButtonHeight) + 10

	case sim.Toggle:
		on := gui.Toggle(rl.Rectangle{X: x, Y: y, Width: w, Height: float32(t.ButtonHeight)},
			label, cur >= 0.5)
		v := 0.0
		if on {
			v = 1.0
		}
		if v != cur {
			st.Params[c.ID] = v
			if c.Resets {
				act.Reseed = true
			}
		}
		return y + float32(t.ButtonHeight) + 10

	default:
		rl.DrawText(label, int32(x), int32(y), t.FontSize, t.LabelColor)
		valText := fmt.Sprintf("%.3g", cur)
		vw := rl.MeasureText(valText, t.FontSize)
		rl.DrawText(valText, int32(x+w)-vw, int32(y), t.FontSize, t.ValueColor)
		y += float32(t.LineHeight)

		v := gui.SliderBar(
			rl.Rectangle{X: x, Y: y, Width: w, Height: float32(t.SliderHeight)},
			"", "", float32(cur), float32(c.Min), float32(c.Max))
		if float64(v) != cur {
			st.Params[c.ID] = float64(v)
			if c.Resets {
				act.Reseed = true
			}
		}
		return y + float32(t.SliderHeight) + 10
	}
}

func (p *Panel) drawPresets(meta sim.Meta, strings i18n.Table, st *State, act *Action, x, y, w float32) float32 {
	if len(meta.Presets) == 0 {
		return y
	}
	t := p.theme
	rl.DrawText(strings.T("chrome.presets", st.Locale), int32(x), int32(y), t.FontSize, t.SectionHeader)
	y += float32(t.LineHeight)

	for _, preset := range meta.Presets {
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: float32(t.ButtonHeight)},
			strings.T(preset.NameKey, st.Locale)) {
			if p.applyPreset(meta, preset, st) {
				act.Reseed = true
			}
		}
		y += float32(t.ButtonHeight) + 6
	}
	return y + 6
}

// applyPreset copies the preset values into the params and reports whether
// any state-resetting control changed.
func (p *Panel) applyPreset(meta sim.Meta, preset sim.Preset, st *State) bool {
	resets := make(map[string]bool, len(meta.Controls))
	for _, c := range meta.Controls {
		resets[c.ID] = c.Resets
	}
	reseed := false
	for id, v := range preset.Values {
		if resets[id] && st.Params.Get(id, v) != v {
			reseed = true
		}
		st.Params[id] = v
	}
	return reseed
}

func (p *Panel) drawPalettes(meta sim.Meta, strings i18n.Table, st *State, x, y, w float32) float32 {
	if len(meta.Palettes) < 2 {
		return y
	}
	t := p.theme
	rl.DrawText(strings.T("chrome.palette", st.Locale), int32(x), int32(y), t.FontSize, t.SectionHeader)
	y += float32(t.LineHeight)

	for i, pal := range meta.Palettes {
		active := st.Palette == i
		on := gui.Toggle(rl.Rectangle{X: x, Y: y, Width: w, Height: float32(t.ButtonHeight)},
			strings.T(pal.NameKey, st.Locale), active)
		if on && !active {
			st.Palette = i
		}
		y += float32(t.ButtonHeight) + 6
	}
	return y + 6
}

func (p *Panel) drawSpeed(meta sim.Meta, strings i18n.Table, st *State, x, y, w float32) float32 {
	t := p.theme
	sp := meta.Speed
	if sp.Max <= sp.Min {
		return y
	}
	rl.DrawText(strings.T("chrome.speed", st.Locale), int32(x), int32(y), t.FontSize, t.LabelColor)
	y += float32(t.LineHeight)
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: w, Height: float32(t.SliderHeight)},
		fmt.Sprintf("%d", sp.Min), fmt.Sprintf("%d", sp.Max),
		float32(st.Speed), float32(sp.Min), float32(sp.Max))
	st.Speed = int(v + 0.5)
	if st.Speed < sp.Min {
		st.Speed = sp.Min
	}
	if st.Speed > sp.Max {
		st.Speed = sp.Max
	}
	return y + float32(t.SliderHeight) + 10
}

func (p *Panel) drawEquations(meta sim.Meta, strings i18n.Table, st *State, x, y float32) float32 {
	t := p.theme
	for _, key := range meta.EquationKeys {
		rl.DrawText(strings.T(key, st.Locale), int32(x), int32(y), t.FontSize, t.MutedColor)
		y += float32(t.LineHeight)
	}
	if len(meta.EquationKeys) > 0 {
		y += 6
	}
	return y
}

func (p *Panel) drawFooter(strings i18n.Table, st *State, act *Action, x, y, w float32) float32 {
	t := p.theme
	bw := (w - 12) / 3

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: bw, Height: float32(t.ButtonHeight)},
		strings.T("chrome.reset", st.Locale)) {
		act.Reseed = true
	}
	if gui.Button(rl.Rectangle{X: x + bw + 6, Y: y, Width: bw, Height: float32(t.ButtonHeight)},
		strings.T("chrome.snapshot", st.Locale)) {
		act.Snapshot = true
	}
	if gui.Button(rl.Rectangle{X: x + 2*(bw+6), Y: y, Width: bw, Height: float32(t.ButtonHeight)},
		strings.T("chrome.language", st.Locale)) {
		if st.Locale == "cs" {
			st.Locale = "en"
		} else {
			st.Locale = "cs"
		}
	}
	y += float32(t.ButtonHeight) + 8

	if p.messageTicks > 0 {
		p.messageTicks--
		rl.DrawText(p.message, int32(x), int32(y), t.FontSize, t.SectionHeader)
		y += float32(t.LineHeight)
	}
	return y
}
