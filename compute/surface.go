// Package compute wraps the raylib GL context with the primitives the
// simulations are built from: floating-point grid textures, render targets
// bound to them, fragment-shader kernel programs, and the fullscreen draw
// that dispatches a kernel once per cell. It has no simulation knowledge.
package compute

import (
	"fmt"
	"log/slog"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Grid is a GPU-resident W x H lattice of 4-channel float cells.
// The channel semantics belong to the simulation that owns it.
type Grid struct {
	Tex    rl.Texture2D
	Target rl.RenderTexture2D
	W, H   int
}

// Valid reports whether the grid holds a live texture.
func (g *Grid) Valid() bool {
	return g.Tex.ID != 0
}

// Surface owns the single active GL context. All calls mutate that context;
// no concurrency is assumed at this layer.
type Surface struct{}

// NewSurface creates the compute surface. The raylib window must already be
// initialized; float texture support is assumed on desktop GL targets.
func NewSurface() *Surface {
	return &Surface{}
}

// CreateGrid allocates a W x H RGBA32F texture seeded with data
// (len must be w*h*4, row-major, 4 floats per cell). The texture uses
// point filtering and repeat wrapping so kernels get exact cell values
// and free toroidal addressing.
func (s *Surface) CreateGrid(w, h int, data []float32) (Grid, error) {
	if len(data) != w*h*4 {
		return Grid{}, fmt.Errorf("grid seed data: got %d floats, want %d", len(data), w*h*4)
	}

	raw := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
	img := rl.NewImage(raw, int32(w), int32(h), 1, rl.UncompressedR32g32b32a32)
	tex := rl.LoadTextureFromImage(img)
	if tex.ID == 0 {
		slog.Error("float texture allocation failed", "width", w, "height", h)
		return Grid{}, fmt.Errorf("allocating %dx%d float grid", w, h)
	}

	rl.SetTextureFilter(tex, rl.FilterPoint)
	rl.SetTextureWrap(tex, rl.WrapRepeat)

	return Grid{Tex: tex, W: w, H: h}, nil
}

// AttachTarget binds an off-screen render target 1:1 to the grid so a kernel
// can write directly into its backing store. Completeness failure is a fatal
// setup error, not retried.
func (s *Surface) AttachTarget(g *Grid) error {
	fbo := rl.LoadFramebuffer()
	if fbo == 0 {
		slog.Error("framebuffer allocation failed", "width", g.W, "height", g.H)
		return fmt.Errorf("allocating framebuffer for %dx%d grid", g.W, g.H)
	}

	rl.EnableFramebuffer(fbo)
	rl.FramebufferAttach(fbo, g.Tex.ID, rl.AttachmentColorChannel0, rl.AttachmentTexture2d, 0)
	complete := rl.FramebufferComplete(fbo)
	rl.DisableFramebuffer()

	if !complete {
		rl.UnloadFramebuffer(fbo)
		slog.Error("render target incomplete", "width", g.W, "height", g.H)
		return fmt.Errorf("render target for %dx%d grid reported incomplete", g.W, g.H)
	}

	g.Target = rl.RenderTexture2D{ID: fbo, Texture: g.Tex}
	return nil
}

// ReleaseGrid frees the grid texture and its render target. Safe on zero grids.
func (s *Surface) ReleaseGrid(g *Grid) {
	if g.Target.ID != 0 {
		rl.UnloadFramebuffer(g.Target.ID)
	}
	if g.Tex.ID != 0 {
		rl.UnloadTexture(g.Tex)
	}
	*g = Grid{}
}

// DrawFullFrame issues a full-extent quad (two triangles) so the bound
// fragment kernel runs once per cell of a w x h target.
func (s *Surface) DrawFullFrame(w, h int) {
	rl.DrawRectangle(0, 0, int32(w), int32(h), rl.White)
}
