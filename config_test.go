package dust

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dust.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDemoConfigDefaults(t *testing.T) {
	cfg, err := LoadDemoConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDemoConfig(), cfg)

	// missing file keeps the defaults
	cfg, err = LoadDemoConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDemoConfig(), cfg)
}

func TestLoadDemoConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 1280
  height: 720
particles:
  count: 100
  size: 2.5
backend: uniform
palette: ocean
seed: 9
debug: true
`)

	cfg, err := LoadDemoConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, DefaultDemoConfig().Window.Title, cfg.Window.Title, "unset keys keep defaults")
	assert.Equal(t, 100, cfg.Particles.Count)
	assert.Equal(t, float32(2.5), cfg.Particles.Size)
	assert.Equal(t, "uniform", cfg.Backend)
	assert.Equal(t, "ocean", cfg.Palette)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.True(t, cfg.Debug)

	c := cfg.Constants()
	assert.Equal(t, RenderConstants{ParticleSize: 2.5, ScreenWidth: 1280, ScreenHeight: 720}, c)
}

func TestLoadDemoConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":      "window: [not a map",
		"zero width":    "window:\n  width: 0\n",
		"bad backend":   "backend: spirv\n",
		"bad palette":   "palette: neon\n",
		"negative size": "particles:\n  size: -3\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadDemoConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}
