// Package desktop implements glimpse.Window on top of glfw.
package desktop

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/polygon/glimpse"
	"github.com/pkg/profile"
)

var glfwToKey = map[glfw.Key]glimpse.Key{
	glfw.KeyEscape:    glimpse.KeyEscape,
	glfw.KeyEnter:     glimpse.KeyEnter,
	glfw.KeySpace:     glimpse.KeySpace,
	glfw.KeyTab:       glimpse.KeyTab,
	glfw.KeyBackspace: glimpse.KeyBackspace,
	glfw.KeyLeft:      glimpse.KeyLeft,
	glfw.KeyRight:     glimpse.KeyRight,
	glfw.KeyUp:        glimpse.KeyUp,
	glfw.KeyDown:      glimpse.KeyDown,
	glfw.KeyW:         glimpse.KeyW,
	glfw.KeyA:         glimpse.KeyA,
	glfw.KeyS:         glimpse.KeyS,
	glfw.KeyD:         glimpse.KeyD,
	glfw.KeyF11:       glimpse.KeyF11,
}

type glfwWindow struct {
	win    *glfw.Window
	prof   interface{ Stop() }
	events glimpse.EventQueue
}

func NewWindow(opts glimpse.WindowOptions) (glimpse.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	// the surface is driven by webgpu, not by an opengl context
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &glfwWindow{win: window}

	if opts.Profile {
		w.prof = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	}

	configureCallbacks(window, &w.events)

	slog.Info("Window created",
		slog.String("title", opts.Title),
		slog.Int("width", opts.Width),
		slog.Int("height", opts.Height),
	)

	return w, nil
}

func (g *glfwWindow) Size() (uint32, uint32) {
	width, height := g.win.GetFramebufferSize()
	return uint32(max(width, 0)), uint32(max(height, 0))
}

func (g *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.win)
}

func (g *glfwWindow) Terminate() {
	if g.prof != nil {
		g.prof.Stop()
		g.prof = nil
	}

	g.win.Destroy()
	glfw.Terminate()
}

func (g *glfwWindow) Run(handler glimpse.Handler) error {
	for {
		glfw.PollEvents()

		// draw continuously, pacing is done by presenting to the surface
		flow, err := glimpse.DispatchFrame(handler, g.events.Drain())
		if err != nil {
			return err
		}

		if flow == glimpse.ControlFlowExit {
			return nil
		}
	}
}

func configureCallbacks(window *glfw.Window, events *glimpse.EventQueue) {
	window.SetCloseCallback(func(win *glfw.Window) {
		// the handler decides whether the window really closes
		win.SetShouldClose(false)
		events.Push(glimpse.CloseRequested{})
	})

	window.SetFramebufferSizeCallback(func(_win *glfw.Window, width, height int) {
		events.Push(glimpse.Resized{
			Width:  uint32(max(width, 0)),
			Height: uint32(max(height, 0)),
		})
	})

	window.SetRefreshCallback(func(_win *glfw.Window) {
		events.Push(glimpse.RedrawRequested{})
	})

	window.SetFocusCallback(func(_win *glfw.Window, focused bool) {
		events.Push(glimpse.Focused{Focused: focused})
	})

	window.SetKeyCallback(func(_win *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}

		events.Push(glimpse.KeyboardInput{
			Key:     keyOf(glfwKey),
			Pressed: action == glfw.Press,
		})
	})

	window.SetMouseButtonCallback(func(_win *glfw.Window, btn glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		events.Push(glimpse.MouseInput{
			Button:  glimpse.MouseButton(btn),
			Pressed: action == glfw.Press,
		})
	})

	window.SetCursorPosCallback(func(_win *glfw.Window, xpos float64, ypos float64) {
		events.Push(glimpse.CursorMoved{X: float32(xpos), Y: float32(ypos)})
	})
}

func keyOf(glfwKey glfw.Key) glimpse.Key {
	key, ok := glfwToKey[glfwKey]
	if !ok {
		slog.Debug(
			"Unknown key code",
			slog.String("key", glfw.GetKeyName(glfwKey, 0)),
		)

		return glimpse.KeyUnknown
	}

	return key
}
