package weft

import (
	"github.com/weft-ui/weft/pkg/vdom"
)

// Container receives committed trees. Implementations turn them into live
// output: an HTML string, a patch stream to a thin client, a test recorder.
// The actual DOM is someone else's problem.
type Container interface {
	// Commit hands over the expanded tree after a flush. A nil root means
	// the mount was unmounted.
	Commit(root *vdom.VNode)
}

// Option configures a mount.
type Option func(*mountConfig)

type mountConfig struct {
	cycle   Cycle
	metrics Metrics
	sched   *Scheduler
}

// WithCycle installs the external scheduling primitive that drives flushes.
// Without it the host calls Handle.Flush (or Scheduler.Flush) itself.
func WithCycle(cycle Cycle) Option {
	return func(c *mountConfig) {
		c.cycle = cycle
	}
}

// WithMetrics installs a metrics sink for the mount's scheduler.
func WithMetrics(m Metrics) Option {
	return func(c *mountConfig) {
		c.metrics = m
	}
}

// WithScheduler mounts onto an existing scheduler so several roots share
// one flush boundary (one session, many mounts).
func WithScheduler(s *Scheduler) Option {
	return func(c *mountConfig) {
		c.sched = s
	}
}

// Handle is a mounted root: the top-level instance bound to a container.
type Handle struct {
	sched     *Scheduler
	root      *Instance
	container Container
	unmounted bool
}

// Render mounts a VNode tree as a fresh top-level instance bound to the
// container and performs the initial render pass. The node may be a plain
// element tree or a component call; `Render(Virtual(Main).Call(nil), c)`
// mounts exactly like a normal top-level instance.
func Render(node *vdom.VNode, container Container, opts ...Option) *Handle {
	cfg := mountConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	sched := cfg.sched
	if sched == nil {
		sched = NewScheduler(cfg.cycle)
	}
	if cfg.metrics != nil {
		sched.SetMetrics(cfg.metrics)
	}

	rootComp := newComponent(func(*Ctx, vdom.Props) *vdom.VNode {
		return node
	}, BoundaryVirtual).Named("root")

	h := &Handle{
		sched:     sched,
		container: container,
	}
	h.root = sched.newInstance(nil, rootComp, "k:root", nil)
	h.root.host = h

	var queue effectQueue
	pb := &panicBox{}
	sched.flushGen++
	sched.renderInstance(h.root, &queue)
	h.commit()
	sched.runEffects(&queue, pb)
	pb.rethrow()

	return h
}

// Flush drives one cycle boundary by hand. Tests and hosts without a Cycle
// use this to process coalesced state changes.
func (h *Handle) Flush() {
	h.sched.Flush()
}

// Scheduler returns the scheduler driving this mount.
func (h *Handle) Scheduler() *Scheduler {
	return h.sched
}

// Root returns the mount's root instance.
func (h *Handle) Root() *Instance {
	return h.root
}

// Unmount destroys the root instance, cascading teardown and running every
// outstanding effect cleanup exactly once. Pending re-renders of destroyed
// instances are dropped. Idempotent.
func (h *Handle) Unmount() {
	if h.unmounted {
		return
	}
	h.unmounted = true

	pb := &panicBox{}
	h.root.destroy(pb)
	if h.container != nil {
		h.container.Commit(nil)
	}
	pb.rethrow()
}

// commit expands the root's output and hands it to the container.
func (h *Handle) commit() {
	if h.unmounted || h.container == nil {
		return
	}
	h.container.Commit(expand(h.root))
}

// Host adapts a hooked function into a unit with a host-element-compatible
// lifecycle: Mount on "connected", Unmount on "disconnected". The custom
// element wiring itself lives outside the runtime.
type Host struct {
	comp *Component
	opts []Option
}

// NewHost wraps fn for host-element mounting.
func NewHost(fn RenderFunc, opts ...Option) *Host {
	return &Host{
		comp: WithHooks(fn),
		opts: opts,
	}
}

// Component returns the underlying component handle.
func (hc *Host) Component() *Component {
	return hc.comp
}

// Mount creates and renders the root instance into the container.
func (hc *Host) Mount(container Container) *Handle {
	return Render(hc.comp.Call(nil), container, hc.opts...)
}

// Unmount destroys a handle previously returned by Mount.
func (hc *Host) Unmount(h *Handle) {
	h.Unmount()
}
