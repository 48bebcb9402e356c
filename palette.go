package dust

import (
	"image/color"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

// Demo palettes built from the SVG 1.1 color names.
var palettes = map[string][]color.RGBA{
	"ember": {
		colornames.Orangered,
		colornames.Darkorange,
		colornames.Gold,
		colornames.Crimson,
	},
	"ocean": {
		colornames.Deepskyblue,
		colornames.Steelblue,
		colornames.Aquamarine,
		colornames.Midnightblue,
	},
	"mono": {
		colornames.White,
		colornames.Lightgray,
		colornames.Gray,
	},
}

func PaletteByName(name string) ([]color.RGBA, error) {
	p, ok := palettes[name]
	if !ok {
		return nil, configErrorf("palette", "unknown palette %q", name)
	}
	return p, nil
}

// InstanceColor converts an 8-bit RGBA into the normalized [0,1] form the
// instance stream carries.
func InstanceColor(c color.RGBA) mgl32.Vec4 {
	return mgl32.Vec4{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

// ScatterParticles fills the viewport with n particles at uniformly random
// pixel positions, colored from palette. Deterministic for a given rng
// state; the particles do not move (the demo draws a static field).
func ScatterParticles(n int, width, height float32, palette []color.RGBA, rng *rand.Rand) []Particle {
	particles := make([]Particle, n)
	for i := range particles {
		c := palette[rng.Intn(len(palette))]
		particles[i] = Particle{
			Position: mgl32.Vec2{rng.Float32() * width, rng.Float32() * height},
			Color:    InstanceColor(c),
		}
	}
	return particles
}
