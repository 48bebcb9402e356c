package dust

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConstants(t *testing.T) {
	c := DefaultConstants()
	assert.NoError(t, c.Validate())
	assert.Equal(t, float32(3.0), c.ParticleSize)
	assert.Equal(t, float32(800), c.ScreenWidth)
	assert.Equal(t, float32(600), c.ScreenHeight)
}

func TestRenderConstantsValidate(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	cases := []struct {
		name string
		c    RenderConstants
	}{
		{"zero size", RenderConstants{0, 800, 600}},
		{"negative size", RenderConstants{-1, 800, 600}},
		{"zero width", RenderConstants{3, 0, 600}},
		{"negative height", RenderConstants{3, 800, -1}},
		{"nan size", RenderConstants{nan, 800, 600}},
		{"inf width", RenderConstants{3, inf, 600}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.c.Validate()
			if err == nil {
				t.Fatalf("constants %+v must not validate", tc.c)
			}
			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}
