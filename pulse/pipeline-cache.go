package pulse

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/hashicorp/golang-lru/v2"
)

type PipelineConfig interface {
	comparable

	// Specialize creates a specialized pipeline for the
	// current PipelineConfig
	Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error)
}

// PipelineCache holds the render pipelines specialized for recently used configs.
// Pipelines are released once they are evicted from the cache.
type PipelineCache[C PipelineConfig] struct {
	device *wgpu.Device
	cache  *lru.Cache[C, *wgpu.RenderPipeline]
}

func NewPipelineCache[C PipelineConfig](ctx *Context) *PipelineCache[C] {
	return newPipelineCache[C](ctx.Device, 16)
}

func newPipelineCache[C PipelineConfig](device *wgpu.Device, size int) *PipelineCache[C] {
	cache, _ := lru.NewWithEvict[C, *wgpu.RenderPipeline](size, releasePipelineOnEviction[C])

	return &PipelineCache[C]{
		device: device,
		cache:  cache,
	}
}

func (p *PipelineCache[C]) Get(conf C) (*wgpu.RenderPipeline, error) {
	cached, ok := p.cache.Get(conf)
	if ok {
		return cached, nil
	}

	pipeline, err := conf.Specialize(p.device)
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	p.cache.Add(conf, pipeline)

	return pipeline, nil
}

func (p *PipelineCache[C]) Len() int {
	return p.cache.Len()
}

// Purge releases all cached pipelines
func (p *PipelineCache[C]) Purge() {
	p.cache.Purge()
}

func releasePipelineOnEviction[C any](config C, pipe *wgpu.RenderPipeline) {
	slog.Debug("Release render pipeline", slog.Any("config", config))

	if pipe != nil {
		pipe.Release()
	}
}
