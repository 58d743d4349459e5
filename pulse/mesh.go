package pulse

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

var errFrameInProgress = errors.New("previous frame was not yet presented")
var errNoFrame = errors.New("no frame in progress")

// frame holds the state of the frame between BeginFrame and Present.
type frame struct {
	surface *wgpu.Texture
	view    *wgpu.TextureView
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder

	submitted bool
}

func (f *frame) release() {
	if f.pass != nil {
		f.pass.Release()
		f.pass = nil
	}

	if f.encoder != nil {
		f.encoder.Release()
		f.encoder = nil
	}

	if f.view != nil {
		f.view.Release()
		f.view = nil
	}

	if f.surface != nil {
		f.surface.Release()
		f.surface = nil
	}
}

// MeshRenderer draws one static indexed mesh with one pipeline into the
// surface of a View. It records exactly one render pass per frame.
type MeshRenderer struct {
	view *View

	pipelines *PipelineCache[MeshPipelineConfig]
	pipeline  *wgpu.RenderPipeline

	vertices *wgpu.Buffer
	indices  *wgpu.Buffer

	current *frame
}

func NewMeshRenderer(view *View) *MeshRenderer {
	return &MeshRenderer{
		view:      view,
		pipelines: NewPipelineCache[MeshPipelineConfig](view.Context),
	}
}

func (m *MeshRenderer) SurfaceFormat() wgpu.TextureFormat {
	return m.view.Format()
}

func (m *MeshRenderer) Configure(width, height uint32) error {
	slog.Debug("Configure surface",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	return m.view.Configure(width, height)
}

func (m *MeshRenderer) CreatePipeline(conf MeshPipelineConfig) error {
	pipeline, err := m.pipelines.Get(conf)
	if err != nil {
		return err
	}

	m.pipeline = pipeline
	return nil
}

// UploadMesh copies the vertex and index data into gpu resident buffers.
func (m *MeshRenderer) UploadMesh(vertices, indices []byte) error {
	vertexBuffer, err := m.view.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Mesh.Vertices",
		Contents: vertices,
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}

	indexBuffer, err := m.view.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Mesh.Indices",
		Contents: indices,
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		vertexBuffer.Release()
		return fmt.Errorf("create index buffer: %w", err)
	}

	m.releaseBuffers()

	m.vertices = vertexBuffer
	m.indices = indexBuffer

	return nil
}

// BeginFrame acquires the next surface texture and begins a render pass that
// clears it. Acquisition errors are either ErrSurfaceLost or ErrOutOfMemory.
func (m *MeshRenderer) BeginFrame(clearColor Color) (err error) {
	if m.current != nil {
		return errFrameInProgress
	}

	f := &frame{}

	defer func() {
		if err != nil {
			f.release()
		}
	}()

	f.surface, err = m.view.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", classifyAcquireError(err))
	}

	if f.surface == nil {
		// lost, outdated and timeout are reported without an error
		return fmt.Errorf("get current texture: %w", ErrSurfaceLost)
	}

	f.view, err = f.surface.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}

	f.encoder, err = m.view.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "Render Encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	f.pass = f.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Render Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       f.view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clearColor.ToWGPU(),
			},
		},
	})

	m.current = f

	return nil
}

// DrawIndexed binds the pipeline and the mesh buffers and draws
// the first indexCount indices of the index buffer.
func (m *MeshRenderer) DrawIndexed(indexCount uint32) {
	pass := m.current.pass

	pass.SetPipeline(m.pipeline)
	pass.SetVertexBuffer(0, m.vertices, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(m.indices, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(indexCount, 1, 0, 0, 0)
}

// EndFrame ends the render pass and submits the recorded commands to the queue.
func (m *MeshRenderer) EndFrame() error {
	f := m.current
	if f == nil {
		return errNoFrame
	}

	if err := f.pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	// must release pass before finishing the encoder
	f.pass.Release()
	f.pass = nil

	cmdBuffer, err := f.encoder.Finish(&wgpu.CommandBufferDescriptor{Label: "Render Commands"})
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}

	defer cmdBuffer.Release()

	m.view.Submit(cmdBuffer)
	f.submitted = true

	return nil
}

// Present shows the surface texture of the current frame
func (m *MeshRenderer) Present() {
	f := m.current
	if f == nil || !f.submitted {
		m.DiscardFrame()
		return
	}

	m.view.Surface.Present()

	// we do not need to release the surface texture if present was successful
	f.surface = nil

	f.release()
	m.current = nil
}

// DiscardFrame releases the current frame without presenting it.
func (m *MeshRenderer) DiscardFrame() {
	if m.current != nil {
		m.current.release()
		m.current = nil
	}
}

func (m *MeshRenderer) releaseBuffers() {
	if m.vertices != nil {
		m.vertices.Release()
		m.vertices = nil
	}

	if m.indices != nil {
		m.indices.Release()
		m.indices = nil
	}
}

// Release releases all gpu resources including the surface and device
// of the View this renderer draws to.
func (m *MeshRenderer) Release() {
	m.DiscardFrame()
	m.releaseBuffers()

	m.pipelines.Purge()
	m.pipeline = nil

	m.view.Release()
}
