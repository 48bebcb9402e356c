package dust

import (
	"reflect"
	"strconv"

	"github.com/cogentcore/webgpu/wgpu"
)

func parseVertexFormat(name string) (wgpu.VertexFormat, error) {
	switch name {
	case "float2":
		return wgpu.VertexFormatFloat32x2, nil
	case "float3":
		return wgpu.VertexFormatFloat32x3, nil
	case "float4":
		return wgpu.VertexFormatFloat32x4, nil
	default:
		return 0, configErrorf("format", "unsupported vertex layout format %q", name)
	}
}

// buildStreamLayout derives a wgpu vertex buffer layout from struct tags.
// Fields tagged `dust:"layout"` become attributes at their tagged shader
// location; the stride is the accumulated field size, so tagged fields must
// be tightly packed float arrays.
func buildStreamLayout(vertexType any, stepMode wgpu.VertexStepMode) (wgpu.VertexBufferLayout, error) {
	t := reflect.TypeOf(vertexType)
	if t.Kind() != reflect.Struct {
		return wgpu.VertexBufferLayout{}, configErrorf("layout", "vertex type %v is not a struct", t)
	}

	var attributes []wgpu.VertexAttribute
	var offset uint64 = 0

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if "layout" == field.Tag.Get("dust") {
			format, err := parseVertexFormat(field.Tag.Get("format"))
			if err != nil {
				return wgpu.VertexBufferLayout{}, err
			}
			location, err := strconv.Atoi(field.Tag.Get("location"))
			if err != nil {
				return wgpu.VertexBufferLayout{}, configErrorf("location",
					"field %s.%s has no numeric location tag", t.Name(), field.Name)
			}

			attributes = append(attributes, wgpu.VertexAttribute{
				ShaderLocation: uint32(location),
				Offset:         offset,
				Format:         format,
			})
		}

		offset += uint64(field.Type.Size())
	}

	if len(attributes) == 0 {
		return wgpu.VertexBufferLayout{}, configErrorf("layout",
			"vertex type %v declares no layout-tagged fields", t)
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    stepMode,
		Attributes:  attributes,
	}, nil
}

// ParticleStreamLayouts returns the canonical two-stream binding set: the
// per-vertex shape stream at slot 0 and the per-instance stream at slot 1.
// The result is already checked against the stream contract.
func ParticleStreamLayouts() ([]wgpu.VertexBufferLayout, error) {
	shape, err := buildStreamLayout(Vertex{}, wgpu.VertexStepModeVertex)
	if err != nil {
		return nil, err
	}
	instances, err := buildStreamLayout(Instance{}, wgpu.VertexStepModeInstance)
	if err != nil {
		return nil, err
	}
	layouts := []wgpu.VertexBufferLayout{shape, instances}
	if err := validateStreams(layouts); err != nil {
		return nil, err
	}
	return layouts, nil
}

// validateStreams enforces the binding contract at pipeline-setup time:
// buffer 0 is the per-vertex shape stream, buffer 1 the per-instance stream,
// and shader locations across both streams are unique and contiguous from 0.
// A mismatch is a ConfigurationError, never silently tolerated.
func validateStreams(layouts []wgpu.VertexBufferLayout) error {
	if len(layouts) != 2 {
		return configErrorf("streams", "expected 2 vertex streams, got %d", len(layouts))
	}
	if layouts[0].StepMode != wgpu.VertexStepModeVertex {
		return configErrorf("streams", "stream 0 must advance per vertex")
	}
	if layouts[1].StepMode != wgpu.VertexStepModeInstance {
		return configErrorf("streams", "stream 1 must advance per instance")
	}

	seen := map[uint32]int{}
	max := uint32(0)
	count := 0
	for slot, layout := range layouts {
		if len(layout.Attributes) == 0 {
			return configErrorf("streams", "stream %d has no attributes", slot)
		}
		for _, attr := range layout.Attributes {
			if prev, dup := seen[attr.ShaderLocation]; dup {
				return configErrorf("streams",
					"shader location %d bound by both stream %d and stream %d",
					attr.ShaderLocation, prev, slot)
			}
			seen[attr.ShaderLocation] = slot
			if attr.ShaderLocation > max {
				max = attr.ShaderLocation
			}
			count++
		}
	}
	if int(max)+1 != count {
		return configErrorf("streams",
			"shader locations must be contiguous from 0, got %d locations with max %d", count, max)
	}
	if seen[0] != 0 {
		return configErrorf("streams", "location 0 must come from the per-vertex stream")
	}
	return nil
}
