package dust

import "math"

// Process-wide defaults for the render constants. These are explicit,
// overridable defaults, not a hard viewport limit.
const (
	DefaultParticleSize = 3.0
	DefaultScreenWidth  = 800.0
	DefaultScreenHeight = 600.0
)

// RenderConstants are the three scalars the transform stage depends on:
// the uniform scale applied to shape-local offsets, and the viewport
// dimensions used to normalize pixel coordinates into clip space. All three
// are divided by or multiplied into every vertex, so they must be positive
// and finite. Constants are immutable for the duration of a draw call;
// callers change them only between draws.
type RenderConstants struct {
	ParticleSize float32
	ScreenWidth  float32
	ScreenHeight float32
}

// DefaultConstants returns the baked-in defaults (3px particles, 800x600).
func DefaultConstants() RenderConstants {
	return RenderConstants{
		ParticleSize: DefaultParticleSize,
		ScreenWidth:  DefaultScreenWidth,
		ScreenHeight: DefaultScreenHeight,
	}
}

func (c RenderConstants) Validate() error {
	if !positiveFinite(c.ParticleSize) {
		return configErrorf("particle_size", "must be positive and finite, got %v", c.ParticleSize)
	}
	if !positiveFinite(c.ScreenWidth) {
		return configErrorf("screen_width", "must be positive and finite, got %v", c.ScreenWidth)
	}
	if !positiveFinite(c.ScreenHeight) {
		return configErrorf("screen_height", "must be positive and finite, got %v", c.ScreenHeight)
	}
	return nil
}

func positiveFinite(v float32) bool {
	f := float64(v)
	return v > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
