// Package weft provides the public API for the weft rendering runtime.
//
// This is the recommended import for most applications:
//
//	import "github.com/weft-ui/weft"
//
// Usage:
//
//	var Counter = weft.WithHooks(func(ctx *weft.Ctx, _ weft.Props) *weft.VNode {
//		count, setCount := weft.UseState(ctx, 0)
//		return vdom.Div(
//			vdom.Span(vdom.Textf("%d", count)),
//			vdom.Button(vdom.OnClick(func() { setCount(count + 1) }), vdom.Text("+")),
//		)
//	})
//
//	handle := weft.Render(Counter.Call(nil), container)
package weft

import (
	"github.com/weft-ui/weft/pkg/vdom"
	coreweft "github.com/weft-ui/weft/pkg/weft"
)

// =============================================================================
// VDOM primitives (re-export from pkg/vdom)
// =============================================================================

// VNode is one node of a declarative UI tree.
type VNode = vdom.VNode

// Props are the arguments of an element or component call.
type Props = vdom.Props

// Event is a client event delivered to a handler.
type Event = vdom.Event

// =============================================================================
// Components and hooks (re-export from pkg/weft)
// =============================================================================

// Ctx is the render context threaded through every component function.
type Ctx = coreweft.Ctx

// Component is a registered component function.
type Component = coreweft.Component

// RenderFunc is the shape of a component function.
type RenderFunc = coreweft.RenderFunc

// Cleanup undoes an effect's setup.
type Cleanup = coreweft.Cleanup

// EffectFunc is an effect setup returning its cleanup (or nil).
type EffectFunc = coreweft.EffectFunc

// Boundary classifies how a component participates in scheduling.
type Boundary = coreweft.Boundary

const (
	// BoundaryNormal components re-render as part of their nearest dirty
	// ancestor's pass.
	BoundaryNormal = coreweft.BoundaryNormal
	// BoundaryVirtual components re-render as independent pass roots.
	BoundaryVirtual = coreweft.BoundaryVirtual
)

// WithHooks registers fn as a normal component.
func WithHooks(fn RenderFunc) *Component {
	return coreweft.WithHooks(fn)
}

// Virtual registers fn as an independently scheduled component.
func Virtual(fn RenderFunc) *Component {
	return coreweft.Virtual(fn)
}

// UseState returns the instance's persistent state cell for this hook slot
// and a setter that marks the instance dirty.
func UseState[T any](ctx *Ctx, initial T) (T, func(T)) {
	return coreweft.UseState(ctx, initial)
}

// UseEffect queues fn to run after commit whenever deps change. A nil deps
// slice runs on every render; an empty one runs once per mount.
func UseEffect(ctx *Ctx, fn EffectFunc, deps []any) {
	coreweft.UseEffect(ctx, fn, deps)
}

// =============================================================================
// Mounting (re-export from pkg/weft)
// =============================================================================

// Container receives committed trees.
type Container = coreweft.Container

// Handle is a mounted root.
type Handle = coreweft.Handle

// Scheduler coalesces state changes into flush passes.
type Scheduler = coreweft.Scheduler

// Cycle is the external scheduling primitive driving flushes.
type Cycle = coreweft.Cycle

// Metrics observes scheduler activity.
type Metrics = coreweft.Metrics

// Option configures a mount.
type Option = coreweft.Option

// WithCycle installs the external scheduling primitive.
var WithCycle = coreweft.WithCycle

// WithMetrics installs a metrics sink on the mount's scheduler.
var WithMetrics = coreweft.WithMetrics

// WithScheduler mounts onto an existing scheduler.
var WithScheduler = coreweft.WithScheduler

// Render mounts a node tree into a container and performs the initial pass.
func Render(node *VNode, container Container, opts ...Option) *Handle {
	return coreweft.Render(node, container, opts...)
}

// NewScheduler creates a standalone scheduler for multi-root hosts.
func NewScheduler(cycle Cycle) *Scheduler {
	return coreweft.NewScheduler(cycle)
}

// Host adapts a component for host-element-style Mount/Unmount lifecycles.
type Host = coreweft.Host

// NewHost wraps fn for host-element mounting.
func NewHost(fn RenderFunc, opts ...Option) *Host {
	return coreweft.NewHost(fn, opts...)
}
