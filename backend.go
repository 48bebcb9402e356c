package dust

import (
	"fmt"

	"github.com/google/uuid"
)

// ProgramBackend turns render constants into a compilable stage program.
// The three implementations trade recompilation cost against platform
// storage requirements; for equal constants every backend yields a
// numerically identical transform, so callers pick one by name and move on.
type ProgramBackend interface {
	Name() string
	Configure(constants RenderConstants) (*ShaderProgram, error)
}

// BackendByName maps a configuration string to a backend. Template selection
// uses the stock template; callers with their own template construct
// TemplateBackend directly.
func BackendByName(name string) (ProgramBackend, error) {
	switch name {
	case "const":
		return ConstBackend{}, nil
	case "uniform":
		return UniformBackend{}, nil
	case "template":
		return NewTemplateBackend(DefaultTemplate), nil
	default:
		return nil, configErrorf("backend", "unknown program backend %q", name)
	}
}

// ConstBackend bakes the constants into the program text as WGSL const
// declarations. Cheapest at draw time; every constant change produces a new
// program that must be recompiled.
type ConstBackend struct{}

func (ConstBackend) Name() string { return "const" }

func (ConstBackend) Configure(constants RenderConstants) (*ShaderProgram, error) {
	if err := constants.Validate(); err != nil {
		return nil, err
	}
	header := fmt.Sprintf(constHeaderFormat,
		wgslFloat(constants.ParticleSize),
		wgslFloat(constants.ScreenWidth),
		wgslFloat(constants.ScreenHeight))
	return &ShaderProgram{
		ID:        uuid.New(),
		Label:     programLabel("const", constants),
		Source:    header + particleShaderBody,
		Constants: constants,
	}, nil
}

// UniformBackend emits a program that reads the constants from a uniform
// block at group 0 binding 0. Configure never changes the program text; the
// renderer uploads new values between draws instead of recompiling.
type UniformBackend struct{}

func (UniformBackend) Name() string { return "uniform" }

func (UniformBackend) Configure(constants RenderConstants) (*ShaderProgram, error) {
	if err := constants.Validate(); err != nil {
		return nil, err
	}
	return &ShaderProgram{
		ID:        uuid.New(),
		Label:     programLabel("uniform", constants),
		Source:    uniformShaderSource,
		Constants: constants,
		Uniform:   true,
	}, nil
}

// TemplateBackend substitutes the constants into a caller-supplied program
// template and validates the produced text before it ever reaches the
// device. Costs a compilation per configuration change, needs no mutable
// device storage.
type TemplateBackend struct {
	template string
}

func NewTemplateBackend(template string) TemplateBackend {
	return TemplateBackend{template: template}
}

func (TemplateBackend) Name() string { return "template" }

func (b TemplateBackend) Configure(constants RenderConstants) (*ShaderProgram, error) {
	if err := constants.Validate(); err != nil {
		return nil, err
	}
	source, err := SubstituteTemplate(b.template, substitutionValues(constants))
	if err != nil {
		return nil, err
	}
	if err := validateShaderSource(source); err != nil {
		return nil, err
	}
	return &ShaderProgram{
		ID:        uuid.New(),
		Label:     programLabel("template", constants),
		Source:    source,
		Constants: constants,
	}, nil
}
