package dust

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WindowConfig sizes the demo window; the viewport constants start from the
// same dimensions.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type ParticlesConfig struct {
	Count int     `yaml:"count"`
	Size  float32 `yaml:"size"`
}

// DemoConfig is the YAML-backed configuration of cmd/dust-demo. Everything
// has a default; a missing file is not an error.
type DemoConfig struct {
	Window    WindowConfig    `yaml:"window"`
	Particles ParticlesConfig `yaml:"particles"`
	Backend   string          `yaml:"backend"`
	Palette   string          `yaml:"palette"`
	Seed      int64           `yaml:"seed"`
	Debug     bool            `yaml:"debug"`
}

func DefaultDemoConfig() DemoConfig {
	return DemoConfig{
		Window: WindowConfig{
			Width:  int(DefaultScreenWidth),
			Height: int(DefaultScreenHeight),
			Title:  "dust particle field",
		},
		Particles: ParticlesConfig{
			Count: 5000,
			Size:  DefaultParticleSize,
		},
		Backend: "template",
		Palette: "ember",
		Seed:    1,
	}
}

// LoadDemoConfig reads path over the defaults. An empty path or a missing
// file yields the defaults unchanged; malformed YAML or invalid values are
// errors.
func LoadDemoConfig(path string) (DemoConfig, error) {
	cfg := DefaultDemoConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c DemoConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return configErrorf("window", "dimensions must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Particles.Count < 0 {
		return configErrorf("particles.count", "must not be negative, got %d", c.Particles.Count)
	}
	if c.Particles.Size <= 0 {
		return configErrorf("particles.size", "must be positive, got %v", c.Particles.Size)
	}
	if _, err := BackendByName(c.Backend); err != nil {
		return err
	}
	if _, err := PaletteByName(c.Palette); err != nil {
		return err
	}
	return nil
}

// Constants derives the initial render constants from the config.
func (c DemoConfig) Constants() RenderConstants {
	return RenderConstants{
		ParticleSize: c.Particles.Size,
		ScreenWidth:  float32(c.Window.Width),
		ScreenHeight: float32(c.Window.Height),
	}
}
