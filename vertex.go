package dust

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one corner of the shared particle shape, in local shape units.
// The same small vertex set is re-read for every instance (step mode Vertex).
type Vertex struct {
	Position [2]float32 `dust:"layout" location:"0" format:"float2"`
}

// Instance carries the per-particle data consumed once per instance (step
// mode Instance): center in pixel coordinates (origin top-left, Y down) and
// an RGBA color in [0,1].
type Instance struct {
	Position [2]float32 `dust:"layout" location:"1" format:"float2"`
	Color    [4]float32 `dust:"layout" location:"2" format:"float4"`
}

// Particle is the external simulation record the assembler maps instances
// from. The renderer never mutates it.
type Particle struct {
	Position mgl32.Vec2
	Color    mgl32.Vec4
}

// QuadShape returns the fixed particle shape: a unit quad centered at the
// origin, corners at +-0.5, as two CCW triangles. Deterministic.
func QuadShape() []Vertex {
	return []Vertex{
		{Position: [2]float32{-0.5, -0.5}},
		{Position: [2]float32{0.5, -0.5}},
		{Position: [2]float32{0.5, 0.5}},
		{Position: [2]float32{-0.5, 0.5}},
		{Position: [2]float32{-0.5, -0.5}},
		{Position: [2]float32{0.5, 0.5}},
	}
}

// BuildInstances maps particles to instance records, preserving order. The
// slice index becomes the instance index used by instanced drawing, so the
// result length always equals len(particles).
func BuildInstances(particles []Particle) []Instance {
	instances := make([]Instance, len(particles))
	for i, p := range particles {
		instances[i] = Instance{
			Position: [2]float32{p.Position.X(), p.Position.Y()},
			Color:    [4]float32{p.Color.X(), p.Color.Y(), p.Color.Z(), p.Color.W()},
		}
	}
	return instances
}
