package pulse

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestReleaseSamplersOnlyForDevice(t *testing.T) {
	t.Cleanup(samplerCache.Purge)

	released := &wgpu.Device{}
	other := &wgpu.Device{}

	samplerCache.Add(samplerKey{device: released, desc: textureSampler}, nil)
	samplerCache.Add(samplerKey{device: released, desc: wgpu.SamplerDescriptor{Label: "Other"}}, nil)
	samplerCache.Add(samplerKey{device: other, desc: textureSampler}, nil)

	releaseSamplers(released)

	assert.Equal(t, []samplerKey{{device: other, desc: textureSampler}}, samplerCache.Keys())

	// the same descriptor on a new device is a different cache entry
	assert.False(t, samplerCache.Contains(samplerKey{device: released, desc: textureSampler}))
}
