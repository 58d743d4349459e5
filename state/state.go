package state

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/polygon/glimpse"
	"github.com/oliverbestmann/polygon/glm"
	"github.com/oliverbestmann/polygon/pulse"
)

//go:embed shader.wgsl
var shaderSource string

var clearColor = pulse.ColorLinearRGBA(0.1, 0.3, 0.2, 1.0)

// Backend records and presents the frames of a State.
// pulse.MeshRenderer is the webgpu implementation.
type Backend interface {
	SurfaceFormat() wgpu.TextureFormat
	Configure(width, height uint32) error

	CreatePipeline(conf pulse.MeshPipelineConfig) error
	UploadMesh(vertices, indices []byte) error

	BeginFrame(clearColor pulse.Color) error
	DrawIndexed(indexCount uint32)
	EndFrame() error
	Present()
	DiscardFrame()

	Release()
}

type Options struct {
	ForceFallbackAdapter bool
}

// State owns all gpu resources needed to draw the polygon into a window.
type State struct {
	window  glimpse.Window
	backend Backend

	width  uint32
	height uint32

	numVertices uint32
	numIndices  uint32
}

// New initializes webgpu for the given window and prepares everything
// that is needed to render the polygon.
func New(window glimpse.Window, opts Options) (*State, error) {
	ctx, err := pulse.New(window.SurfaceDescriptor(), pulse.ContextOptions{
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize wgpu: %w", err)
	}

	view, err := pulse.NewView(ctx)
	if err != nil {
		ctx.Release()
		return nil, fmt.Errorf("create view: %w", err)
	}

	width, height := window.Size()

	st, err := newState(pulse.NewMeshRenderer(view), width, height)
	if err != nil {
		return nil, err
	}

	st.window = window

	return st, nil
}

// newState prepares the backend. The backend is released if preparation fails.
func newState(backend Backend, width, height uint32) (st *State, err error) {
	defer func() {
		if err != nil {
			backend.Release()
		}
	}()

	if err := checkMesh(Vertices[:], Indices[:]); err != nil {
		return nil, fmt.Errorf("invalid mesh: %w", err)
	}

	st = &State{
		backend:     backend,
		width:       max(width, 1),
		height:      max(height, 1),
		numVertices: uint32(len(Vertices)),
		numIndices:  uint32(len(Indices)),
	}

	if err := backend.Configure(st.width, st.height); err != nil {
		return nil, fmt.Errorf("configure surface: %w", err)
	}

	if err := backend.CreatePipeline(st.pipelineConfig()); err != nil {
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}

	if err := backend.UploadMesh(wgpu.ToBytes(Vertices[:]), wgpu.ToBytes(Indices[:])); err != nil {
		return nil, fmt.Errorf("upload mesh: %w", err)
	}

	slog.Info("Render state initialized",
		slog.Int("width", int(st.width)),
		slog.Int("height", int(st.height)),
		slog.Int("vertices", int(st.numVertices)),
		slog.Int("indices", int(st.numIndices)),
	)

	return st, nil
}

func (st *State) pipelineConfig() pulse.MeshPipelineConfig {
	return pulse.MeshPipelineConfig{
		Label:              "Render Pipeline",
		ShaderSource:       shaderSource,
		VertexEntryPoint:   "vs_main",
		FragmentEntryPoint: "fs_main",
		Vertex:             vertexLayout,
		TargetFormat:       st.backend.SurfaceFormat(),
		BlendState:         wgpu.BlendStateReplace,
		Topology:           wgpu.PrimitiveTopologyTriangleList,
		FrontFace:          wgpu.FrontFaceCCW,
		CullMode:           wgpu.CullModeBack,
		SampleCount:        1,
	}
}

// Window returns the window this state renders into
func (st *State) Window() glimpse.Window {
	return st.window
}

// Size returns the dimensions the surface was last configured with.
func (st *State) Size() (uint32, uint32) {
	return st.width, st.height
}

// Resize reconfigures the surface. A size with a zero dimension is ignored,
// as a surface can not be configured with it (e.g. a minimized window).
func (st *State) Resize(width, height uint32) error {
	if (glm.Vec2u{width, height}).HasZero() {
		return nil
	}

	if err := st.backend.Configure(width, height); err != nil {
		return fmt.Errorf("resize surface to %dx%d: %w", width, height, err)
	}

	st.width = width
	st.height = height

	return nil
}

// Input never consumes an event.
func (st *State) Input(event glimpse.Event) bool {
	return false
}

func (st *State) Update() {
}

// Render draws one frame and presents it. An error matching pulse.ErrSurfaceLost
// can be recovered from by reconfiguring the surface, all other errors are fatal.
func (st *State) Render() error {
	if err := st.backend.BeginFrame(clearColor); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}

	st.backend.DrawIndexed(st.numIndices)

	if err := st.backend.EndFrame(); err != nil {
		st.backend.DiscardFrame()
		return fmt.Errorf("end frame: %w", err)
	}

	st.backend.Present()

	return nil
}

// Release frees all gpu resources. The state must not be used afterwards.
func (st *State) Release() {
	if st.backend == nil {
		return
	}

	st.backend.Release()
	st.backend = nil
}

var _ Backend = (*pulse.MeshRenderer)(nil)
