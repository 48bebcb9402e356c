package dust

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendByName(t *testing.T) {
	for _, name := range []string{"const", "uniform", "template"} {
		b, err := BackendByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, b.Name())
	}

	_, err := BackendByName("push_constant")
	require.Error(t, err)
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestConstAndTemplateBackendsEmitIdenticalSource(t *testing.T) {
	c := RenderConstants{ParticleSize: 2.5, ScreenWidth: 1280, ScreenHeight: 720}

	constProg, err := ConstBackend{}.Configure(c)
	require.NoError(t, err)
	tplProg, err := NewTemplateBackend(DefaultTemplate).Configure(c)
	require.NoError(t, err)

	// same constants, same program text: the backend choice is not observable
	assert.Equal(t, constProg.Source, tplProg.Source)
	assert.False(t, constProg.Uniform)
	assert.False(t, tplProg.Uniform)
}

func TestUniformBackendProgram(t *testing.T) {
	c := DefaultConstants()

	prog, err := UniformBackend{}.Configure(c)
	require.NoError(t, err)

	assert.True(t, prog.Uniform)
	assert.Equal(t, c, prog.Constants)
	assert.Contains(t, prog.Source, "var<uniform> params")
	assert.NotContains(t, prog.Source, "{{", "uniform source has no placeholders")

	// reconfiguring does not change the program text, only the constants
	other, err := UniformBackend{}.Configure(RenderConstants{ParticleSize: 1, ScreenWidth: 320, ScreenHeight: 240})
	require.NoError(t, err)
	assert.Equal(t, prog.Source, other.Source)
}

func TestBackendsRejectNonPositiveConstants(t *testing.T) {
	backends := []ProgramBackend{
		ConstBackend{},
		UniformBackend{},
		NewTemplateBackend(DefaultTemplate),
	}
	bad := []RenderConstants{
		{ParticleSize: 0, ScreenWidth: 800, ScreenHeight: 600},
		{ParticleSize: 3, ScreenWidth: 0, ScreenHeight: 600},
		{ParticleSize: 3, ScreenWidth: 800, ScreenHeight: -600},
	}

	for _, b := range backends {
		for _, c := range bad {
			_, err := b.Configure(c)
			if err == nil {
				t.Errorf("backend %s accepted invalid constants %+v", b.Name(), c)
				continue
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("backend %s: expected ConfigurationError, got %T", b.Name(), err)
			}
		}
	}
}

func TestTemplateBackendSurfacesTemplateErrors(t *testing.T) {
	// template lacking a required placeholder fails at configure time
	b := NewTemplateBackend(particleShaderBody)

	_, err := b.Configure(DefaultConstants())
	require.Error(t, err)

	var tplErr *TemplateError
	assert.True(t, errors.As(err, &tplErr))
}

func TestTemplateBackendRejectsInvalidProgramText(t *testing.T) {
	b := NewTemplateBackend("const PARTICLE_SIZE: f32 = {{PARTICLE_SIZE}};\n" +
		"const SCREEN_WIDTH: f32 = {{SCREEN_WIDTH}};\n" +
		"const SCREEN_HEIGHT: f32 = {{SCREEN_HEIGHT}};\n" +
		"fn broken( {\n")

	_, err := b.Configure(DefaultConstants())
	require.Error(t, err)

	var tplErr *TemplateError
	assert.True(t, errors.As(err, &tplErr), "invalid WGSL must surface as TemplateError")
}

func TestConfigureAssignsDistinctProgramIDs(t *testing.T) {
	c := DefaultConstants()
	first, err := ConstBackend{}.Configure(c)
	require.NoError(t, err)
	second, err := ConstBackend{}.Configure(c)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}
