package pulse

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// VertexLayout describes a vertex made of a float32x3 position
// followed by a float32x3 color.
type VertexLayout struct {
	Stride         uint64
	PositionOffset uint64
	ColorOffset    uint64
}

func (l VertexLayout) toWGPU() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: l.Stride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				// position
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         l.PositionOffset,
				ShaderLocation: 0,
			},
			{
				// color
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         l.ColorOffset,
				ShaderLocation: 1,
			},
		},
	}
}

// MeshPipelineConfig describes a render pipeline drawing indexed meshes
// into a single color target without depth or stencil.
type MeshPipelineConfig struct {
	Label string

	ShaderSource       string
	VertexEntryPoint   string
	FragmentEntryPoint string

	Vertex VertexLayout

	TargetFormat wgpu.TextureFormat
	BlendState   wgpu.BlendState

	Topology    wgpu.PrimitiveTopology
	FrontFace   wgpu.FrontFace
	CullMode    wgpu.CullMode
	SampleCount uint32
}

func (conf MeshPipelineConfig) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for mesh",
		slog.String("label", conf.Label),
		slog.Any("format", conf.TargetFormat),
		slog.Any("sampleCount", conf.SampleCount),
	)

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          conf.Label + ".Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: conf.ShaderSource},
	})
	if err != nil {
		return nil, fmt.Errorf("compile mesh shader: %w", err)
	}

	defer shader.Release()

	layout, err := dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: conf.Label + ".Layout",
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}

	defer layout.Release()

	pipeline, err := dev.CreateRenderPipeline(conf.descriptor(shader, layout))
	if err != nil {
		return nil, fmt.Errorf("build mesh pipeline: %w", err)
	}

	return pipeline, nil
}

func (conf MeshPipelineConfig) descriptor(shader *wgpu.ShaderModule, layout *wgpu.PipelineLayout) *wgpu.RenderPipelineDescriptor {
	blend := conf.BlendState

	return &wgpu.RenderPipelineDescriptor{
		Label:  conf.Label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: conf.VertexEntryPoint,
			Buffers:    []wgpu.VertexBufferLayout{conf.Vertex.toWGPU()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: conf.FragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     &blend,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  conf.Topology,
			FrontFace: conf.FrontFace,
			CullMode:  conf.CullMode,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count:                  conf.SampleCount,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}
}
