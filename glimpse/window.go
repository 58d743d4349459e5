package glimpse

import "github.com/cogentcore/webgpu/wgpu"

// ControlFlow is returned by an event handler to tell the event loop
// whether to keep running.
type ControlFlow int

const (
	ControlFlowContinue ControlFlow = iota
	ControlFlowExit
)

// Handler processes one event at a time. Each event is fully handled
// before the next one is delivered.
type Handler func(event Event) (ControlFlow, error)

type WindowOptions struct {
	Width  int
	Height int
	Title  string

	// write a cpu profile of the event loop into the working directory
	Profile bool
}

type Window interface {
	// Size returns the size of the framebuffer in pixels
	Size() (uint32, uint32)

	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Run blocks and dispatches events to the handler until the handler
	// returns ControlFlowExit or an error.
	Run(handler Handler) error

	Terminate()
}
