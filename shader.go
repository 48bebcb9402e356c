package dust

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/naga"
	"github.com/google/uuid"
)

// Entry points of every particle program, regardless of backend.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Placeholder names of the template parameterization contract.
const (
	PlaceholderParticleSize = "PARTICLE_SIZE"
	PlaceholderScreenWidth  = "SCREEN_WIDTH"
	PlaceholderScreenHeight = "SCREEN_HEIGHT"
)

var requiredPlaceholders = []string{
	PlaceholderParticleSize,
	PlaceholderScreenWidth,
	PlaceholderScreenHeight,
}

// particleShaderBody is the transform-and-shade stage shared by the const
// and template parameterizations. It expects PARTICLE_SIZE, SCREEN_WIDTH and
// SCREEN_HEIGHT declared above it. The vertex stage scales the shape offset,
// normalizes pixel coordinates into NDC with a single Y flip, and forwards
// the instance color; the fragment stage writes that color unmodified.
const particleShaderBody = `
struct VertexInput {
    @location(0) position: vec2<f32>,
};

struct InstanceInput {
    @location(1) position: vec2<f32>,
    @location(2) color: vec4<f32>,
};

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) color: vec4<f32>,
};

@vertex
fn vs_main(vertex: VertexInput, instance: InstanceInput) -> VertexOutput {
    let particle_pos = vertex.position * PARTICLE_SIZE;
    let x = (instance.position.x + particle_pos.x) / SCREEN_WIDTH * 2.0 - 1.0;
    let y = -((instance.position.y + particle_pos.y) / SCREEN_HEIGHT * 2.0 - 1.0);
    var out: VertexOutput;
    out.clip_position = vec4<f32>(x, y, 0.0, 1.0);
    out.color = instance.color;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return in.color;
}
`

const constHeaderFormat = "const PARTICLE_SIZE: f32 = %s;\n" +
	"const SCREEN_WIDTH: f32 = %s;\n" +
	"const SCREEN_HEIGHT: f32 = %s;\n"

// DefaultTemplate is the stock program template: the shared stage body with
// the three constants declared as named placeholders.
const DefaultTemplate = "const PARTICLE_SIZE: f32 = {{PARTICLE_SIZE}};\n" +
	"const SCREEN_WIDTH: f32 = {{SCREEN_WIDTH}};\n" +
	"const SCREEN_HEIGHT: f32 = {{SCREEN_HEIGHT}};\n" +
	particleShaderBody

// uniformShaderSource reads the constants from a uniform block instead of
// baked literals, so the host can retune them without recompiling.
const uniformShaderSource = `
struct RenderParams {
    particle_size: f32,
    screen_width: f32,
    screen_height: f32,
    pad: f32,
};

@group(0) @binding(0) var<uniform> params: RenderParams;

struct VertexInput {
    @location(0) position: vec2<f32>,
};

struct InstanceInput {
    @location(1) position: vec2<f32>,
    @location(2) color: vec4<f32>,
};

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) color: vec4<f32>,
};

@vertex
fn vs_main(vertex: VertexInput, instance: InstanceInput) -> VertexOutput {
    let particle_pos = vertex.position * params.particle_size;
    let x = (instance.position.x + particle_pos.x) / params.screen_width * 2.0 - 1.0;
    let y = -((instance.position.y + particle_pos.y) / params.screen_height * 2.0 - 1.0);
    var out: VertexOutput;
    out.clip_position = vec4<f32>(x, y, 0.0, 1.0);
    out.color = instance.color;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return in.color;
}
`

// ShaderProgram is a configured, compilable stage program. Uniform marks
// programs whose constants live in a uniform buffer the renderer must bind
// and keep updated; for the rest the constants are baked into Source.
type ShaderProgram struct {
	ID        uuid.UUID
	Label     string
	Source    string
	Constants RenderConstants
	Uniform   bool
}

// SubstituteTemplate resolves every required placeholder in template with
// the mapped value. Each required placeholder must occur in the template and
// have a valid float literal value in the map; any other `{{...}}` marker
// left after substitution is reported too. Substituting the same values
// twice yields identical text.
func SubstituteTemplate(template string, values map[string]string) (string, error) {
	out := template
	for _, name := range requiredPlaceholders {
		marker := "{{" + name + "}}"
		if !strings.Contains(out, marker) {
			return "", templateErrorf(name, "placeholder not present in template")
		}
		value, ok := values[name]
		if !ok {
			return "", templateErrorf(name, "no value in substitution map")
		}
		if err := checkFloatLiteral(name, value); err != nil {
			return "", err
		}
		out = strings.ReplaceAll(out, marker, value)
	}
	if start := strings.Index(out, "{{"); start >= 0 {
		rest := out[start:]
		if end := strings.Index(rest, "}}"); end >= 0 {
			return "", templateErrorf(strings.TrimSpace(rest[2:end]), "unknown placeholder")
		}
		return "", templateErrorf("", "unterminated placeholder marker")
	}
	return out, nil
}

func checkFloatLiteral(name string, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return templateErrorf(name, "value %q is not float literal text", value)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return templateErrorf(name, "value %q is not a finite float", value)
	}
	return nil
}

// substitutionValues renders the constants as WGSL float literal text keyed
// by placeholder name.
func substitutionValues(c RenderConstants) map[string]string {
	return map[string]string{
		PlaceholderParticleSize: wgslFloat(c.ParticleSize),
		PlaceholderScreenWidth:  wgslFloat(c.ScreenWidth),
		PlaceholderScreenHeight: wgslFloat(c.ScreenHeight),
	}
}

// wgslFloat formats v so the emitted token is unambiguously a float literal.
func wgslFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'g', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// validateShaderSource runs the substituted program text through the WGSL
// front-end so malformed templates fail at configuration time, before any
// draw attempt touches the device.
func validateShaderSource(source string) error {
	if _, err := naga.Compile(source); err != nil {
		return templateErrorf("", "substituted program text is invalid: %v", err)
	}
	return nil
}

func programLabel(kind string, c RenderConstants) string {
	return fmt.Sprintf("particles/%s %sx%s size=%s",
		kind, wgslFloat(c.ScreenWidth), wgslFloat(c.ScreenHeight), wgslFloat(c.ParticleSize))
}
