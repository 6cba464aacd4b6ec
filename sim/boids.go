package sim

import (
	"fmt"
	"image/color"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/dominikklepl/Complexity-emergence/compute"
	"github.com/dominikklepl/Complexity-emergence/config"
	"github.com/dominikklepl/Complexity-emergence/flock"
)

// Boids runs the flocking simulation. Agent state lives in a small square
// float table (one texel per agent) stepped by an all-pairs kernel; the
// visible output is a trail buffer at display resolution that fades each
// tick and receives one additive sprite per agent.
type Boids struct {
	surface *compute.Surface
	seed    int64
	meta    Meta

	update    *compute.Kernel
	fade      *compute.Kernel
	encodePos *compute.Kernel
	encodeVel *compute.Kernel
	display   *compute.Kernel

	agents   [2]compute.Grid
	trail    [2]compute.Grid
	agentCur int
	trailCur int

	// 8-bit staging targets for the table readback
	posTarget rl.RenderTexture2D
	velTarget rl.RenderTexture2D

	sprite     rl.Texture2D
	spriteHalf float32
	table      int
	ready      bool

	phase func(string)
}

// SetPhaseFunc registers a callback invoked as Step enters each internal
// phase ("step", "deposit"), so the host can attribute time to the agent
// update and the trail deposit separately.
func (b *Boids) SetPhaseFunc(fn func(phase string)) { b.phase = fn }

func (b *Boids) markPhase(name string) {
	if b.phase != nil {
		b.phase(name)
	}
}

// NewBoids builds the flocking simulation.
func NewBoids(seed int64) *Boids {
	return &Boids{
		seed: seed,
		meta: Meta{
			Controls: []Control{
				{ID: "separation", LabelKey: "boids.separation", Min: 0.0, Max: 3.0, Default: 1.2},
				{ID: "alignment", LabelKey: "boids.alignment", Min: 0.0, Max: 3.0, Default: 1.0},
				{ID: "cohesion", LabelKey: "boids.cohesion", Min: 0.0, Max: 3.0, Default: 0.9},
				{ID: "perception", LabelKey: "boids.perception", Min: 0.02, Max: 0.25, Default: 0.08},
				{ID: "maxSpeed", LabelKey: "boids.maxSpeed", Min: 0.002, Max: 0.02, Default: 0.007},
				{ID: "persistence", LabelKey: "boids.persistence", Min: 0.5, Max: 0.99, Default: 0.9},
				{ID: "mode", Kind: Select, LabelKey: "boids.mode", Min: 0, Max: 2, Default: 0,
					OptionKeys: []string{"boids.mode.normal", "boids.mode.crowd", "boids.mode.predator"}},
			},
			Presets: []Preset{
				{NameKey: "boids.preset.murmuration", Values: map[string]float64{
					"separation": 1.0, "alignment": 1.6, "cohesion": 1.1, "perception": 0.07, "mode": 0}},
				{NameKey: "boids.preset.swarm", Values: map[string]float64{
					"separation": 1.8, "alignment": 0.3, "cohesion": 1.5, "perception": 0.12, "mode": 0}},
				{NameKey: "boids.preset.crowd", Values: map[string]float64{
					"separation": 1.5, "alignment": 0.8, "cohesion": 0.6, "perception": 0.06, "mode": 1}},
				{NameKey: "boids.preset.hunt", Values: map[string]float64{
					"separation": 1.0, "alignment": 1.2, "cohesion": 1.0, "perception": 0.09, "mode": 2}},
			},
			Palettes: []Palette{
				{NameKey: "boids.pal.dusk"},
				{NameKey: "boids.pal.heading"},
				{NameKey: "boids.pal.speed"},
				{NameKey: "boids.pal.phosphor"},
			},
			Speed:        SpeedRange{Min: 1, Max: 4, Default: 1},
			EquationKeys: []string{"boids.eq.rules"},
			TitleKey:     "boids.title",
			SubtitleKey:  "boids.subtitle",
			Translations: boidsStrings,
		},
	}
}

// ID returns the stable simulation identifier.
func (b *Boids) ID() string { return "boids" }

// Meta returns the declarative metadata.
func (b *Boids) Meta() Meta { return b.meta }

// Setup compiles the five kernels and allocates the agent table pair, the
// trail buffer pair at display resolution, the two 8-bit readback targets,
// and the trail sprite. Any failure releases whatever was built so far and
// leaves the simulation inert.
func (b *Boids) Setup(surface *compute.Surface, size Size, params Params) error {
	if b.ready {
		b.Teardown()
	}
	b.surface = surface
	b.table = config.Cfg().Agents.TableSize

	fail := func(err error) error {
		b.release()
		return fmt.Errorf("setting up boids: %w", err)
	}

	var err error
	kernels := []struct {
		dst   **compute.Kernel
		src   string
		label string
	}{
		{&b.update, boidsUpdateFS, "boids/update"},
		{&b.fade, boidsFadeFS, "boids/fade"},
		{&b.encodePos, boidsEncodePosFS, "boids/encode-pos"},
		{&b.encodeVel, boidsEncodeVelFS, "boids/encode-vel"},
		{&b.display, boidsDisplayFS, "boids/display"},
	}
	for _, k := range kernels {
		*k.dst, err = surface.CompileKernel("", k.src, k.label)
		if err != nil {
			return fail(err)
		}
	}

	rng := rand.New(rand.NewSource(b.seed))
	agentSeed := flock.SeedAgents(b.table*b.table, float32(params.Get("maxSpeed", 0.007)), rng)
	for i := range b.agents {
		b.agents[i], err = surface.CreateGrid(b.table, b.table, agentSeed)
		if err == nil {
			err = surface.AttachTarget(&b.agents[i])
		}
		if err != nil {
			return fail(err)
		}
	}

	blank := make([]float32, size.W*size.H*4)
	for i := range b.trail {
		b.trail[i], err = surface.CreateGrid(size.W, size.H, blank)
		if err == nil {
			err = surface.AttachTarget(&b.trail[i])
		}
		if err != nil {
			return fail(err)
		}
	}

	b.posTarget = rl.LoadRenderTexture(int32(b.table), int32(b.table))
	b.velTarget = rl.LoadRenderTexture(int32(b.table), int32(b.table))
	if b.posTarget.ID == 0 || b.velTarget.ID == 0 {
		return fail(fmt.Errorf("allocating %dx%d readback targets", b.table, b.table))
	}

	pt := int(config.Cfg().Agents.PointSize)
	if pt < 2 {
		pt = 2
	}
	img := rl.GenImageGradientRadial(pt, pt, 0, rl.White, rl.Blank)
	b.sprite = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if b.sprite.ID == 0 {
		return fail(fmt.Errorf("allocating %dpx trail sprite", pt))
	}
	rl.SetTextureFilter(b.sprite, rl.FilterBilinear)
	b.spriteHalf = float32(pt) / 2

	b.agentCur = 0
	b.trailCur = 0
	b.ready = true
	return nil
}

// Teardown releases every GPU resource. Tolerates a simulation that never
// finished Setup.
func (b *Boids) Teardown() {
	if !b.ready {
		return
	}
	b.release()
}

func (b *Boids) release() {
	for _, k := range []*compute.Kernel{b.update, b.fade, b.encodePos, b.encodeVel, b.display} {
		k.Release()
	}
	b.update, b.fade, b.encodePos, b.encodeVel, b.display = nil, nil, nil, nil, nil
	for i := range b.agents {
		b.surface.ReleaseGrid(&b.agents[i])
	}
	for i := range b.trail {
		b.surface.ReleaseGrid(&b.trail[i])
	}
	if b.posTarget.ID != 0 {
		rl.UnloadRenderTexture(b.posTarget)
		b.posTarget = rl.RenderTexture2D{}
	}
	if b.velTarget.ID != 0 {
		rl.UnloadRenderTexture(b.velTarget)
		b.velTarget = rl.RenderTexture2D{}
	}
	if b.sprite.ID != 0 {
		rl.UnloadTexture(b.sprite)
		b.sprite = rl.Texture2D{}
	}
	b.ready = false
}

// Step advances one tick: the agent table steps through the all-pairs
// steering kernel, the trail fades, and one sprite per agent is deposited
// additively at its new position. The agent readback goes through the 8-bit
// staging targets (16-bit packed positions, heading/speed bytes).
func (b *Boids) Step(params Params, pointer Pointer) {
	if !b.ready {
		return
	}
	b.markPhase("step")

	maxSpeed := float32(params.Get("maxSpeed", 0.007))

	src := &b.agents[b.agentCur]
	dst := &b.agents[1-b.agentCur]

	b.update.SetVec2("resolution", float32(b.table), float32(b.table))
	tx, ty := pointer.Coords()
	b.update.SetVec2("touch", tx, ty)
	b.update.SetFloat("touchSign", pointer.Sign())
	b.update.SetFloat("perception", float32(params.Get("perception", 0.08)))
	b.update.SetFloat("wSep", float32(params.Get("separation", 1.2)))
	b.update.SetFloat("wAli", float32(params.Get("alignment", 1.0)))
	b.update.SetFloat("wCoh", float32(params.Get("cohesion", 0.9)))
	b.update.SetFloat("maxSpeed", maxSpeed)
	b.update.SetFloat("minSpeed", flock.DefaultMinSpeed)
	b.update.SetFloat("maxForce", flock.DefaultMaxForce)
	b.update.SetFloat("mode", float32(params.Get("mode", 0)))
	b.update.SetFloat("dt", flock.DefaultDT)
	b.update.SetTexture("state", src.Tex)

	rl.BeginTextureMode(dst.Target)
	rl.BeginShaderMode(b.update.Shader)
	b.surface.DrawFullFrame(b.table, b.table)
	rl.EndShaderMode()
	rl.EndTextureMode()

	b.agentCur = 1 - b.agentCur

	trailSrc := &b.trail[b.trailCur]
	trailDst := &b.trail[1-b.trailCur]

	b.fade.SetVec2("resolution", float32(trailDst.W), float32(trailDst.H))
	b.fade.SetFloat("persistence", float32(params.Get("persistence", 0.9)))
	b.fade.SetTexture("trail", trailSrc.Tex)

	rl.BeginTextureMode(trailDst.Target)
	rl.BeginShaderMode(b.fade.Shader)
	b.surface.DrawFullFrame(trailDst.W, trailDst.H)
	rl.EndShaderMode()
	rl.EndTextureMode()

	b.trailCur = 1 - b.trailCur

	b.markPhase("deposit")
	cur := &b.agents[b.agentCur]

	b.encodePos.SetTexture("state", cur.Tex)
	rl.BeginTextureMode(b.posTarget)
	rl.BeginShaderMode(b.encodePos.Shader)
	b.surface.DrawFullFrame(b.table, b.table)
	rl.EndShaderMode()
	rl.EndTextureMode()

	b.encodeVel.SetFloat("maxSpeed", maxSpeed)
	b.encodeVel.SetTexture("state", cur.Tex)
	rl.BeginTextureMode(b.velTarget)
	rl.BeginShaderMode(b.encodeVel.Shader)
	b.surface.DrawFullFrame(b.table, b.table)
	rl.EndShaderMode()
	rl.EndTextureMode()

	posImg := rl.LoadImageFromTexture(b.posTarget.Texture)
	velImg := rl.LoadImageFromTexture(b.velTarget.Texture)
	posPix := rl.LoadImageColors(posImg)
	velPix := rl.LoadImageColors(velImg)
	rl.UnloadImage(posImg)
	rl.UnloadImage(velImg)
	// the pixel slices alias C allocations, not Go memory
	defer rl.UnloadImageColors(posPix)
	defer rl.UnloadImageColors(velPix)

	n := b.table * b.table
	if len(posPix) < n || len(velPix) < n {
		return
	}

	trail := &b.trail[b.trailCur]
	w := float32(trail.W)
	h := float32(trail.H)

	rl.BeginTextureMode(trail.Target)
	rl.BeginBlendMode(rl.BlendAdditive)
	for i := 0; i < n; i++ {
		ax, ay := decodePos16(posPix[i])
		vc := velPix[i]
		tint := rl.NewColor(255, vc.R, vc.G, 255)
		rl.DrawTexture(b.sprite,
			int32(ax*w-b.spriteHalf), int32((1-ay)*h-b.spriteHalf), tint)
	}
	rl.EndBlendMode()
	rl.EndTextureMode()
}

// decodePos16 unpacks one agent coordinate pair from the hi/lo byte
// encoding the position encode kernel writes: x in R/G, y in B/A, each a
// 16-bit fraction of the unit interval.
func decodePos16(c color.RGBA) (x, y float32) {
	x = (float32(c.R)*256 + float32(c.G)) / 65535
	y = (float32(c.B)*256 + float32(c.A)) / 65535
	return x, y
}

// Render maps the trail buffer to the visible surface through the display
// palette kernel. State is not touched.
func (b *Boids) Render(size Size, paletteIndex int) {
	if !b.ready {
		return
	}

	b.display.SetVec2("resolution", float32(size.W), float32(size.H))
	b.display.SetFloat("palette", float32(paletteIndex))
	b.display.SetTexture("trail", b.trail[b.trailCur].Tex)

	rl.BeginShaderMode(b.display.Shader)
	b.surface.DrawFullFrame(size.W, size.H)
	rl.EndShaderMode()
}

var boidsStrings = map[string]map[string]string{
	"boids.title":              {"cs": "Hejno", "en": "The Flock"},
	"boids.subtitle":           {"cs": "Tisíc agentů, tři pravidla, žádný vůdce", "en": "A thousand agents, three rules, no leader"},
	"boids.separation":         {"cs": "Odstup", "en": "Separation"},
	"boids.alignment":          {"cs": "Zarovnání", "en": "Alignment"},
	"boids.cohesion":           {"cs": "Soudržnost", "en": "Cohesion"},
	"boids.perception":         {"cs": "Dohled", "en": "Perception"},
	"boids.maxSpeed":           {"cs": "Rychlost", "en": "Speed"},
	"boids.persistence":        {"cs": "Stopa", "en": "Trail"},
	"boids.mode":               {"cs": "Chování", "en": "Behaviour"},
	"boids.mode.normal":        {"cs": "Hejno", "en": "Flock"},
	"boids.mode.crowd":         {"cs": "Dav", "en": "Crowd"},
	"boids.mode.predator":      {"cs": "Dravec", "en": "Predator"},
	"boids.preset.murmuration": {"cs": "Tanec špačků", "en": "Murmuration"},
	"boids.preset.swarm":       {"cs": "Roj", "en": "Swarm"},
	"boids.preset.crowd":       {"cs": "Tlačenice", "en": "Crush"},
	"boids.preset.hunt":        {"cs": "Lov", "en": "The Hunt"},
	"boids.pal.dusk":           {"cs": "Soumrak", "en": "Dusk"},
	"boids.pal.heading":        {"cs": "Směr letu", "en": "Heading"},
	"boids.pal.speed":          {"cs": "Rychlost", "en": "Speed heat"},
	"boids.pal.phosphor":       {"cs": "Fosfor", "en": "Phosphor"},
	"boids.eq.rules":           {"cs": "v′ = v + w₁·sep + w₂·ali + w₃·coh", "en": "v′ = v + w₁·sep + w₂·ali + w₃·coh"},
}
