package pulse

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	lru "github.com/hashicorp/golang-lru/v2"
)

// samplerKey identifies a sampler created on a specific device
type samplerKey struct {
	device *wgpu.Device
	desc   wgpu.SamplerDescriptor
}

var samplerCache, _ = lru.NewWithEvict[samplerKey, *wgpu.Sampler](16, releaseSamplerOnEviction)

func releaseSamplerOnEviction(key samplerKey, sampler *wgpu.Sampler) {
	slog.Debug("Release sampler", slog.String("label", key.desc.Label))

	if sampler != nil {
		sampler.Release()
	}
}

// CachedSampler returns a sampler of the device matching your description. The sampler
// may be shared, you must not call wgpu.Sampler.Release() on it. The sampler is released
// when the Context owning the device is released.
func CachedSampler(dev *wgpu.Device, desc wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	key := samplerKey{device: dev, desc: desc}

	if sampler, ok := samplerCache.Get(key); ok {
		return sampler, nil
	}

	sampler, err := dev.CreateSampler(&desc)
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}

	samplerCache.Add(key, sampler)

	return sampler, nil
}

// releaseSamplers releases all cached samplers created on the device.
func releaseSamplers(dev *wgpu.Device) {
	for _, key := range samplerCache.Keys() {
		if key.device == dev {
			samplerCache.Remove(key)
		}
	}
}
