package pulse

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/polygon/glm"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Texture is a sampled 2d texture on the gpu, together with a default
// view and the sampler to read it with.
type Texture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler

	size glm.Vec2u
}

// textureSampler clamps to the edge, uses linear filtering for magnification
// and nearest filtering for minification.
var textureSampler = wgpu.SamplerDescriptor{
	Label:         "Texture.Sampler",
	AddressModeU:  wgpu.AddressModeClampToEdge,
	AddressModeV:  wgpu.AddressModeClampToEdge,
	AddressModeW:  wgpu.AddressModeClampToEdge,
	MagFilter:     wgpu.FilterModeLinear,
	MinFilter:     wgpu.FilterModeNearest,
	MipmapFilter:  wgpu.MipmapFilterModeNearest,
	LodMinClamp:   0,
	LodMaxClamp:   32,
	MaxAnisotropy: 1,
}

// DecodeTextureFromMemory decodes an encoded image (png, jpeg, gif, bmp, tiff or webp)
// and uploads it into a new sRGB texture.
func DecodeTextureFromMemory(ctx *Context, buf []byte, label string) (*Texture, error) {
	src, err := decodeImage(buf)
	if err != nil {
		return nil, err
	}

	return NewTextureFromImage(ctx, src, label)
}

func NewTextureFromImage(ctx *Context, src image.Image, label string) (*Texture, error) {
	rgba := toRGBA(src)

	width := uint32(rgba.Rect.Dx())
	height := uint32(rgba.Rect.Dy())

	size := wgpu.Extent3D{
		Width:              width,
		Height:             height,
		DepthOrArrayLayers: 1,
	}

	texture, err := ctx.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create texture view: %w", err)
	}

	sampler, err := CachedSampler(ctx.Device, textureSampler)
	if err != nil {
		view.Release()
		texture.Release()
		return nil, err
	}

	if err := writePixels(ctx.Queue, texture, rgba); err != nil {
		view.Release()
		texture.Release()
		return nil, err
	}

	t := &Texture{
		texture: texture,
		view:    view,
		sampler: sampler,
		size:    glm.Vec2u{width, height},
	}

	return t, nil
}

func (t *Texture) Size() glm.Vec2u {
	return t.size
}

func (t *Texture) View() *wgpu.TextureView {
	return t.view
}

// Sampler returns the shared sampler of the texture. You must not release it.
func (t *Texture) Sampler() *wgpu.Sampler {
	return t.sampler
}

// Release releases the texture and its view. You must be sure to not
// use the texture after calling release.
func (t *Texture) Release() {
	t.view.Release()
	t.texture.Release()
}

// pixelWriter is implemented by *wgpu.Queue
type pixelWriter interface {
	WriteTexture(destination *wgpu.ImageCopyTexture, data []byte, dataLayout *wgpu.TextureDataLayout, writeSize *wgpu.Extent3D) error
}

// writePixels uploads the pixels into the first mip level of the texture.
func writePixels(queue pixelWriter, texture *wgpu.Texture, rgba *image.NRGBA) error {
	width := uint32(rgba.Rect.Dx())
	height := uint32(rgba.Rect.Dy())

	err := queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
			Aspect:   wgpu.TextureAspectAll,
		},
		rgba.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * width,
			RowsPerImage: height,
		},
		&wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
	)
	if err != nil {
		return fmt.Errorf("write texture: %w", err)
	}

	return nil
}

func decodeImage(buf []byte) (image.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("decode image from memory: %w", err)
	}

	if src.Bounds().Empty() {
		return nil, fmt.Errorf("decode image from memory: image is empty")
	}

	return src, nil
}

// toRGBA converts the image into tightly packed non-premultiplied rgba pixels
// with its origin at zero.
func toRGBA(src image.Image) *image.NRGBA {
	if nrgba, ok := src.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) && nrgba.Stride == 4*nrgba.Rect.Dx() {
		return nrgba
	}

	bounds := src.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	return rgba
}
