package host

import (
	"errors"
	"fmt"
	"testing"

	"github.com/oliverbestmann/polygon/glimpse"
	"github.com/oliverbestmann/polygon/pulse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	consume bool

	width  uint32
	height uint32

	resizes [][2]uint32
	updates int
	renders int

	renderErrs []error
}

func (f *fakeRenderer) Input(event glimpse.Event) bool {
	return f.consume
}

func (f *fakeRenderer) Update() {
	f.updates++
}

func (f *fakeRenderer) Render() error {
	f.renders++

	if len(f.renderErrs) == 0 {
		return nil
	}

	err := f.renderErrs[0]
	f.renderErrs = f.renderErrs[1:]
	return err
}

func (f *fakeRenderer) Resize(width, height uint32) error {
	f.resizes = append(f.resizes, [2]uint32{width, height})

	if width > 0 && height > 0 {
		f.width, f.height = width, height
	}

	return nil
}

func (f *fakeRenderer) Size() (uint32, uint32) {
	return f.width, f.height
}

func TestCloseRequestedExits(t *testing.T) {
	h := New(&fakeRenderer{})

	flow, err := h.HandleEvent(glimpse.CloseRequested{})
	require.NoError(t, err)
	assert.Equal(t, glimpse.ControlFlowExit, flow)
}

func TestEscapeExits(t *testing.T) {
	h := New(&fakeRenderer{})

	flow, err := h.HandleEvent(glimpse.KeyboardInput{Key: glimpse.KeyEscape, Pressed: false})
	require.NoError(t, err)
	assert.Equal(t, glimpse.ControlFlowContinue, flow)

	flow, err = h.HandleEvent(glimpse.KeyboardInput{Key: glimpse.KeySpace, Pressed: true})
	require.NoError(t, err)
	assert.Equal(t, glimpse.ControlFlowContinue, flow)

	flow, err = h.HandleEvent(glimpse.KeyboardInput{Key: glimpse.KeyEscape, Pressed: true})
	require.NoError(t, err)
	assert.Equal(t, glimpse.ControlFlowExit, flow)
}

func TestConsumedEventsAreNotHandled(t *testing.T) {
	renderer := &fakeRenderer{consume: true}
	h := New(renderer)

	flow, err := h.HandleEvent(glimpse.CloseRequested{})
	require.NoError(t, err)
	assert.Equal(t, glimpse.ControlFlowContinue, flow)

	_, _ = h.HandleEvent(glimpse.RedrawRequested{})
	assert.Zero(t, renderer.renders)
}

func TestResizedResizesRenderer(t *testing.T) {
	renderer := &fakeRenderer{width: 800, height: 600}
	h := New(renderer)

	flow, err := h.HandleEvent(glimpse.Resized{Width: 1024, Height: 768})
	require.NoError(t, err)
	assert.Equal(t, glimpse.ControlFlowContinue, flow)

	assert.Equal(t, [][2]uint32{{1024, 768}}, renderer.resizes)
}

func TestRedrawUpdatesThenRenders(t *testing.T) {
	renderer := &fakeRenderer{width: 800, height: 600}
	h := New(renderer)

	for range 3 {
		flow, err := h.HandleEvent(glimpse.RedrawRequested{})
		require.NoError(t, err)
		assert.Equal(t, glimpse.ControlFlowContinue, flow)
	}

	assert.Equal(t, 3, renderer.updates)
	assert.Equal(t, 3, renderer.renders)
	assert.Equal(t, uint64(3), h.Stats().FrameCount)
}

func TestSurfaceLostReconfiguresWithLastSize(t *testing.T) {
	renderer := &fakeRenderer{width: 800, height: 600}
	renderer.renderErrs = []error{fmt.Errorf("begin frame: %w", pulse.ErrSurfaceLost)}

	h := New(renderer)

	_, err := h.HandleEvent(glimpse.Resized{Width: 640, Height: 480})
	require.NoError(t, err)

	flow, err := h.HandleEvent(glimpse.RedrawRequested{})
	require.NoError(t, err)
	assert.Equal(t, glimpse.ControlFlowContinue, flow)

	assert.Equal(t, [][2]uint32{{640, 480}, {640, 480}}, renderer.resizes)

	// the failed frame is not counted, the next one renders normally
	assert.Zero(t, h.Stats().FrameCount)

	flow, err = h.HandleEvent(glimpse.RedrawRequested{})
	require.NoError(t, err)
	assert.Equal(t, glimpse.ControlFlowContinue, flow)
	assert.Equal(t, uint64(1), h.Stats().FrameCount)
}

func TestFatalRenderErrorStopsLoop(t *testing.T) {
	renderErr := fmt.Errorf("begin frame: %w", pulse.ErrOutOfMemory)

	renderer := &fakeRenderer{width: 800, height: 600}
	renderer.renderErrs = []error{renderErr}

	h := New(renderer)

	flow, err := h.HandleEvent(glimpse.RedrawRequested{})
	require.Error(t, err)
	assert.Equal(t, glimpse.ControlFlowExit, flow)

	assert.ErrorIs(t, err, pulse.ErrOutOfMemory)
	assert.Empty(t, renderer.resizes)
}

func TestOtherEventsAreIgnored(t *testing.T) {
	renderer := &fakeRenderer{}
	h := New(renderer)

	events := []glimpse.Event{
		glimpse.CursorMoved{X: 1, Y: 2},
		glimpse.MouseInput{Button: glimpse.MouseButtonRight, Pressed: true},
		glimpse.Focused{Focused: false},
	}

	for _, event := range events {
		flow, err := h.HandleEvent(event)
		require.NoError(t, err)
		assert.Equal(t, glimpse.ControlFlowContinue, flow)
	}

	assert.Zero(t, renderer.renders)
	assert.Empty(t, renderer.resizes)
}

func TestResizeErrorIsFatal(t *testing.T) {
	h := New(&failingResizer{})

	_, err := h.HandleEvent(glimpse.Resized{Width: 1, Height: 1})
	assert.Error(t, err)
}

type failingResizer struct {
	fakeRenderer
}

func (f *failingResizer) Resize(width, height uint32) error {
	return errors.New("device lost")
}
