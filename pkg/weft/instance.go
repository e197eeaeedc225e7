package weft

import (
	"github.com/weft-ui/weft/internal/errors"
	"github.com/weft-ui/weft/pkg/vdom"
)

// Instance is the persistent runtime record for one mounted occurrence of a
// component function. It is created once by the reconciler, mutated across
// renders, and destroyed exactly once.
type Instance struct {
	id   uint64
	comp *Component

	// slotKey is the identity key this instance occupies in its parent's
	// children map: the explicit key if the call carried one, otherwise
	// position-in-parent plus component identity.
	slotKey string

	parent *Instance
	depth  int

	// children maps identity key -> child instance from the previous
	// render; it is the reconciler's diff baseline.
	children map[string]*Instance

	// hooks is the ordered per-instance hook storage, append-only during
	// the first render and replayed positionally on every later render.
	hooks   []*hookRecord
	hookIdx int

	// renderSeq pins hook calls to the active render (stale Ctx detection).
	renderSeq   int
	renderCount int
	rendering   bool

	// renderGen is the flush generation that last re-invoked this instance,
	// so one flush never re-invokes the same instance twice.
	renderGen uint64

	dirty     bool
	destroyed bool

	// props are the arguments the parent most recently bound to this call.
	props vdom.Props

	// tree is the unexpanded output of the last render.
	tree *vdom.VNode

	sched *Scheduler

	// host is set on root instances only; it owns the container.
	host *Handle
}

// ID returns the unique identifier of this instance.
func (in *Instance) ID() uint64 {
	return in.id
}

// Boundary returns the instance's render-scope kind.
func (in *Instance) Boundary() Boundary {
	return in.comp.boundary
}

// IsDestroyed reports whether teardown has run.
func (in *Instance) IsDestroyed() bool {
	return in.destroyed
}

// root walks up to the mount root.
func (in *Instance) root() *Instance {
	r := in
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// beginRender resets the hook cursor for a render pass.
func (in *Instance) beginRender() {
	if in.rendering {
		panic(errors.New("E006").WithDetail("%s re-entered during its own render", in.comp.ComponentName()))
	}
	in.rendering = true
	in.renderSeq++
	in.hookIdx = 0
}

// endRender validates that the render consumed every hook slot.
func (in *Instance) endRender() {
	in.rendering = false

	if in.renderCount > 0 && in.hookIdx < len(in.hooks) {
		panic(errors.New("E004").WithDetail(
			"%s called %d hooks but its first render recorded %d",
			in.comp.ComponentName(), in.hookIdx, len(in.hooks)))
	}
	in.renderCount++
}

// destroy tears the instance down: children first, then this instance's
// outstanding effect cleanups, each exactly once. Cleanup panics are
// isolated per call and the first one is re-raised by the caller that
// initiated the cascade.
func (in *Instance) destroy(pb *panicBox) {
	if in.destroyed {
		return
	}
	// Setters check this flag under the scheduler lock.
	in.sched.mu.Lock()
	in.destroyed = true
	in.sched.mu.Unlock()

	for _, key := range sortedChildKeys(in.children) {
		in.children[key].destroy(pb)
	}
	in.children = nil

	for _, rec := range in.hooks {
		if rec.kind != hookEffect {
			continue
		}
		if rec.state == effectTornDown {
			continue
		}
		rec.setup = nil
		if rec.cleanup != nil {
			cleanup := rec.cleanup
			rec.cleanup = nil
			pb.call(cleanup)
		}
		rec.state = effectTornDown
	}

	in.sched.forget(in)
}

// panicBox isolates cleanup calls so one panicking cleanup cannot stop its
// siblings, while still propagating the first failure to the operation that
// triggered the teardown.
type panicBox struct {
	val any
	set bool
}

// call runs fn, catching a panic without letting it abort the cascade.
func (pb *panicBox) call(fn func()) {
	defer func() {
		if r := recover(); r != nil && !pb.set {
			pb.val = r
			pb.set = true
		}
	}()
	fn()
}

// rethrow re-raises the first captured panic, if any.
func (pb *panicBox) rethrow() {
	if pb.set {
		panic(pb.val)
	}
}
