package dust

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// createParticlePipeline compiles the configured program and assembles the
// render pipeline around the two-stream binding contract. Stream order is
// validated before the device sees anything.
func createParticlePipeline(device *wgpu.Device, format wgpu.TextureFormat, program *ShaderProgram) (*wgpu.RenderPipeline, error) {
	layouts, err := ParticleStreamLayouts()
	if err != nil {
		return nil, err
	}

	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          program.Label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: program.Source},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module %s: %w", program.ID, err)
	}
	defer shader.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: program.Label,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: VertexEntryPoint,
			Buffers:    layouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: FragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					Blend:     nil,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create render pipeline %s: %w", program.ID, err)
	}
	return pipeline, nil
}
