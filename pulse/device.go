package pulse

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

var logLevels = map[string]wgpu.LogLevel{
	"OFF":   wgpu.LogLevelOff,
	"ERROR": wgpu.LogLevelError,
	"WARN":  wgpu.LogLevelWarn,
	"INFO":  wgpu.LogLevelInfo,
	"DEBUG": wgpu.LogLevelDebug,
	"TRACE": wgpu.LogLevelTrace,
}

// ParseLogLevel maps a level name like "warn" or "TRACE" to a wgpu.LogLevel.
func ParseLogLevel(name string) (wgpu.LogLevel, bool) {
	level, ok := logLevels[strings.ToUpper(strings.TrimSpace(name))]
	return level, ok
}

// SetLogLevel configures the log level of the native wgpu library. An empty
// name keeps the library default.
func SetLogLevel(name string) error {
	if name == "" {
		return nil
	}

	level, ok := ParseLogLevel(name)
	if !ok {
		return fmt.Errorf("unknown wgpu log level %q", name)
	}

	wgpu.SetLogLevel(level)
	return nil
}

type ContextOptions struct {
	// request the software fallback adapter, e.g. for headless machines
	ForceFallbackAdapter bool
}

// Context encapsulates the low level state of the webgpu context,
// this includes the Device, Surface and active Adapter
type Context struct {
	*wgpu.Device
	*wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
}

func New(sd *wgpu.SurfaceDescriptor, opts ContextOptions) (st *Context, err error) {
	defer func() {
		if err != nil && st != nil {
			st.Release()
			st = nil
		}
	}()

	st = &Context{}

	// create the webgpu instance
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	// create a Surface based on the window
	st.Surface = instance.CreateSurface(sd)
	if st.Surface == nil {
		return st, errors.New("create surface from window failed")
	}

	// create an adapter that can render to the Surface
	st.Adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
		CompatibleSurface:    st.Surface,
	})

	if err != nil {
		return st, fmt.Errorf("request adapter: %w", err)
	}

	// get a Device with the default settings
	st.Device, err = st.Adapter.RequestDevice(nil)
	if err != nil {
		return st, fmt.Errorf("request device: %w", err)
	}

	st.Queue = st.Device.GetQueue()

	slog.Info("WebGPU context ready",
		slog.Bool("fallbackAdapter", opts.ForceFallbackAdapter),
	)

	return st, nil
}

func (d *Context) Release() {
	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}

	if d.Device != nil {
		releaseSamplers(d.Device)
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Surface != nil {
		d.Surface.Release()
		d.Surface = nil
	}
}
