package weft

import "time"

// Metrics is the sink for runtime instrumentation. The core stays free of
// metrics backends; pkg/middleware provides a Prometheus implementation.
type Metrics interface {
	// RenderPass records one flush: its duration and how many pass roots
	// were re-invoked.
	RenderPass(d time.Duration, rendered int)

	// EffectRun records one effect setup execution.
	EffectRun()

	// InstanceCreated records an instance allocation.
	InstanceCreated()

	// InstanceDestroyed records an instance teardown.
	InstanceDestroyed()
}

// NopMetrics discards all instrumentation.
type NopMetrics struct{}

func (NopMetrics) RenderPass(time.Duration, int) {}
func (NopMetrics) EffectRun()                    {}
func (NopMetrics) InstanceCreated()              {}
func (NopMetrics) InstanceDestroyed()            {}
