package compute

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kernel is a compiled vertex/fragment program with cached uniform locations.
type Kernel struct {
	Shader rl.Shader
	label  string
	locs   map[string]int32
}

// CompileKernel compiles a paired vertex/fragment program. Either source may
// be empty to use raylib's default stage. A failed compile or link is logged
// with the label and returned as an error; the caller must treat the
// simulation as unusable and abort setup.
func (s *Surface) CompileKernel(vertexSrc, fragmentSrc, label string) (*Kernel, error) {
	shader := rl.LoadShaderFromMemory(vertexSrc, fragmentSrc)
	if shader.ID == 0 {
		slog.Error("kernel compile failed", "label", label)
		return nil, fmt.Errorf("compiling kernel %q", label)
	}
	return &Kernel{Shader: shader, label: label, locs: make(map[string]int32)}, nil
}

// Release frees the program. Safe to call on nil.
func (k *Kernel) Release() {
	if k == nil {
		return
	}
	rl.UnloadShader(k.Shader)
}

// Loc returns the cached uniform location for name.
func (k *Kernel) Loc(name string) int32 {
	loc, ok := k.locs[name]
	if !ok {
		loc = rl.GetShaderLocation(k.Shader, name)
		k.locs[name] = loc
	}
	return loc
}

// SetFloat sets a float uniform.
func (k *Kernel) SetFloat(name string, v float32) {
	rl.SetShaderValue(k.Shader, k.Loc(name), []float32{v}, rl.ShaderUniformFloat)
}

// SetVec2 sets a vec2 uniform.
func (k *Kernel) SetVec2(name string, x, y float32) {
	rl.SetShaderValue(k.Shader, k.Loc(name), []float32{x, y}, rl.ShaderUniformVec2)
}

// SetTexture binds a texture to a named sampler uniform.
func (k *Kernel) SetTexture(name string, tex rl.Texture2D) {
	rl.SetShaderValueTexture(k.Shader, k.Loc(name), tex)
}
