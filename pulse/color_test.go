package pulse

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestColorDefaultIsWhite(t *testing.T) {
	var c Color
	assert.Equal(t, ColorWhite, c)

	r, g, b, a := c.Components()
	assert.Equal(t, []float32{1, 1, 1, 1}, []float32{r, g, b, a})
}

func TestColorToWGPU(t *testing.T) {
	c := ColorLinearRGBA(0.25, 0.5, 0.75, 1)
	assert.Equal(t, wgpu.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}, c.ToWGPU())

	assert.Equal(t, wgpu.Color{A: 0.5}, ColorBlack.WithAlpha(0.5).ToWGPU())
}

func TestColorSRGBRoundTrip(t *testing.T) {
	for _, value := range []float32{0, 0.01, 0.2, 0.5, 0.9, 1} {
		c := ColorSRGBA(value, value, value, 1)

		r, g, b, a := c.SRGBA()
		assert.InDelta(t, value, r, 1e-5)
		assert.InDelta(t, value, g, 1e-5)
		assert.InDelta(t, value, b, 1e-5)
		assert.Equal(t, float32(1), a)
	}

	// mid gray in srgb is much darker in linear space
	r, _, _, _ := ColorSRGBA(0.5, 0.5, 0.5, 1).Components()
	assert.InDelta(t, 0.214, r, 1e-3)
}
