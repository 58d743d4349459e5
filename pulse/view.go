package pulse

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

var srgbFormats = []wgpu.TextureFormat{
	wgpu.TextureFormatRGBA8UnormSrgb,
	wgpu.TextureFormatBGRA8UnormSrgb,
}

// IsSRGB returns true if the format stores gamma encoded colors.
func IsSRGB(format wgpu.TextureFormat) bool {
	return slices.Contains(srgbFormats, format)
}

// PreferredFormat returns the first sRGB format of the list or the first
// format if the list does not contain a sRGB format.
func PreferredFormat(formats []wgpu.TextureFormat) (wgpu.TextureFormat, bool) {
	if len(formats) == 0 {
		var undefined wgpu.TextureFormat
		return undefined, false
	}

	idx := slices.IndexFunc(formats, IsSRGB)
	if idx < 0 {
		idx = 0
	}

	return formats[idx], true
}

// View is the presentable surface of a Context, together with the configuration
// it was last configured with.
type View struct {
	*Context

	surfaceConfig *wgpu.SurfaceConfiguration
}

func NewView(ctx *Context) (*View, error) {
	caps := ctx.Surface.GetCapabilities(ctx.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	format, ok := PreferredFormat(caps.Formats)
	if !ok || len(caps.PresentModes) == 0 || len(caps.AlphaModes) == 0 {
		return nil, ErrIncompatibleSurface
	}

	slog.Info("Selected surface format",
		slog.Any("format", format),
		slog.Any("presentMode", caps.PresentModes[0]),
	)

	vs := &View{
		Context: ctx,
		surfaceConfig: &wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      format,
			PresentMode: caps.PresentModes[0],
			AlphaMode:   caps.AlphaModes[0],
		},
	}

	return vs, nil
}

func (vs *View) Format() wgpu.TextureFormat {
	return vs.surfaceConfig.Format
}

func (vs *View) Size() (uint32, uint32) {
	return vs.surfaceConfig.Width, vs.surfaceConfig.Height
}

// Configure (re)configures the surface to the given size.
// A surface can not be configured with a zero size.
func (vs *View) Configure(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("configure surface to %dx%d: %w", width, height, errZeroSize)
	}

	vs.surfaceConfig.Width = width
	vs.surfaceConfig.Height = height
	vs.Surface.Configure(vs.Adapter, vs.Device, vs.surfaceConfig)

	return nil
}

var errZeroSize = errors.New("size must not be zero")
