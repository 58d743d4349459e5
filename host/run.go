package host

import (
	"fmt"

	"github.com/oliverbestmann/polygon/glimpse"
	"github.com/oliverbestmann/polygon/state"
)

type Options struct {
	ForceFallbackAdapter bool
}

// Run renders into the window until it is closed or rendering fails.
// All gpu resources are released before Run returns, the caller
// terminates the window afterwards.
func Run(win glimpse.Window, opts Options) error {
	// initialize webgpu and all resources to draw the polygon
	st, err := state.New(win, state.Options{
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
	})
	if err != nil {
		return fmt.Errorf("initialize render state: %w", err)
	}

	// the surface must not outlive the window
	defer st.Release()

	return win.Run(New(st).HandleEvent)
}
