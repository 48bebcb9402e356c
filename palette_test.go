package dust

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/image/colornames"
)

func TestPaletteByName(t *testing.T) {
	for _, name := range []string{"ember", "ocean", "mono"} {
		p, err := PaletteByName(name)
		require.NoError(t, err)
		assert.NotEmpty(t, p)
	}

	_, err := PaletteByName("neon")
	assert.Error(t, err)
}

func TestInstanceColor(t *testing.T) {
	c := InstanceColor(colornames.White)
	assert.Equal(t, float32(1), c.X())
	assert.Equal(t, float32(1), c.Y())
	assert.Equal(t, float32(1), c.Z())
	assert.Equal(t, float32(1), c.W())

	r := InstanceColor(colornames.Red)
	assert.Equal(t, float32(1), r.X())
	assert.Equal(t, float32(0), r.Y())
	assert.Equal(t, float32(0), r.Z())
}

func TestScatterParticles(t *testing.T) {
	palette, err := PaletteByName("ember")
	require.NoError(t, err)

	particles := ScatterParticles(500, 800, 600, palette, rand.New(rand.NewSource(3)))
	require.Len(t, particles, 500)

	for _, p := range particles {
		assert.GreaterOrEqual(t, p.Position.X(), float32(0))
		assert.Less(t, p.Position.X(), float32(800))
		assert.GreaterOrEqual(t, p.Position.Y(), float32(0))
		assert.Less(t, p.Position.Y(), float32(600))
		assert.Equal(t, float32(1), p.Color.W(), "palette colors are fully opaque")
	}

	// deterministic for a fixed seed
	again := ScatterParticles(500, 800, 600, palette, rand.New(rand.NewSource(3)))
	assert.Equal(t, particles, again)
}
