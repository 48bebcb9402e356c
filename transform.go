package dust

import "github.com/go-gl/mathgl/mgl32"

// ProjectVertex is the host-side mirror of the vertex stage: it computes the
// clip-space position and forwarded color for one (vertex, instance) pair.
// The GPU program and this function implement the same math; tests pin the
// contract here.
//
// The single Y negation converts screen convention (Y down) into clip
// convention (Y up). Upstream producers always work in screen coordinates;
// this is the only place the axis flips.
func ProjectVertex(v Vertex, inst Instance, c RenderConstants) (clip mgl32.Vec4, color mgl32.Vec4) {
	px := v.Position[0] * c.ParticleSize
	py := v.Position[1] * c.ParticleSize

	x := (inst.Position[0]+px)/c.ScreenWidth*2 - 1
	y := -((inst.Position[1]+py)/c.ScreenHeight*2 - 1)

	clip = mgl32.Vec4{x, y, 0, 1}
	color = mgl32.Vec4{inst.Color[0], inst.Color[1], inst.Color[2], inst.Color[3]}
	return clip, color
}
