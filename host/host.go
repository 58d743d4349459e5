package host

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/polygon/glimpse"
	"github.com/oliverbestmann/polygon/pulse"
)

// Renderer is the part of the render state the host drives.
type Renderer interface {
	Input(event glimpse.Event) bool
	Update()
	Render() error
	Resize(width, height uint32) error
	Size() (uint32, uint32)
}

// Host dispatches window events to a Renderer.
type Host struct {
	renderer Renderer
	stats    FrameTimes
}

func New(renderer Renderer) *Host {
	return &Host{renderer: renderer}
}

// Stats returns the frame statistics of all successfully rendered frames.
func (h *Host) Stats() FrameTimes {
	return h.stats
}

// HandleEvent implements glimpse.Handler
func (h *Host) HandleEvent(event glimpse.Event) (glimpse.ControlFlow, error) {
	if h.renderer.Input(event) {
		return glimpse.ControlFlowContinue, nil
	}

	switch event := event.(type) {
	case glimpse.CloseRequested:
		slog.Info("Close requested")
		return glimpse.ControlFlowExit, nil

	case glimpse.KeyboardInput:
		if event.Key == glimpse.KeyEscape && event.Pressed {
			slog.Info("Escape pressed")
			return glimpse.ControlFlowExit, nil
		}

	case glimpse.Resized:
		if err := h.renderer.Resize(event.Width, event.Height); err != nil {
			return glimpse.ControlFlowExit, fmt.Errorf("resize: %w", err)
		}

	case glimpse.RedrawRequested:
		return h.redraw()
	}

	return glimpse.ControlFlowContinue, nil
}

func (h *Host) redraw() (glimpse.ControlFlow, error) {
	h.renderer.Update()

	err := h.renderer.Render()

	switch {
	case err == nil:
		if h.stats.Tick() {
			slog.Debug("Frame stats",
				slog.Uint64("frames", h.stats.FrameCount),
				slog.Duration("avg", h.stats.AverageDuration),
				slog.Duration("max", h.stats.MaxDuration),
				slog.Float64("fps", h.stats.FPS()),
			)
		}

	case pulse.IsRecoverable(err):
		// reconfigure with the last known size and skip this frame
		width, height := h.renderer.Size()

		slog.Warn("Surface lost, reconfiguring",
			slog.Int("width", int(width)),
			slog.Int("height", int(height)),
			slog.String("err", err.Error()),
		)

		if err := h.renderer.Resize(width, height); err != nil {
			return glimpse.ControlFlowExit, fmt.Errorf("reconfigure surface: %w", err)
		}

	default:
		return glimpse.ControlFlowExit, fmt.Errorf("render: %w", err)
	}

	return glimpse.ControlFlowContinue, nil
}
