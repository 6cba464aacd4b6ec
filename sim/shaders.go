package sim

import _ "embed"

// Kernel sources are embedded so the exhibit binary is self-contained.

//go:embed shaders/reaction_step.fs
var reactionStepFS string

//go:embed shaders/reaction_display.fs
var reactionDisplayFS string

//go:embed shaders/oscillator_step.fs
var oscillatorStepFS string

//go:embed shaders/oscillator_display.fs
var oscillatorDisplayFS string

//go:embed shaders/boids_update.fs
var boidsUpdateFS string

//go:embed shaders/boids_fade.fs
var boidsFadeFS string

//go:embed shaders/boids_encode_pos.fs
var boidsEncodePosFS string

//go:embed shaders/boids_encode_vel.fs
var boidsEncodeVelFS string

//go:embed shaders/boids_display.fs
var boidsDisplayFS string
