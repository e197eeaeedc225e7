package weft

import (
	"reflect"
	"runtime"

	"github.com/weft-ui/weft/pkg/vdom"
)

// Boundary classifies how an instance participates in render passes.
type Boundary uint8

const (
	// BoundaryNormal instances re-render as part of their parent's pass.
	BoundaryNormal Boundary = iota

	// BoundaryVirtual instances own an independent render scope: they are
	// never re-invoked just because an ancestor re-rendered, and their own
	// state changes trigger a pass rooted at themselves.
	BoundaryVirtual
)

// String returns the string representation of the Boundary.
func (b Boundary) String() string {
	switch b {
	case BoundaryNormal:
		return "Normal"
	case BoundaryVirtual:
		return "Virtual"
	default:
		return "Unknown"
	}
}

// RenderFunc is a component function. It receives the render context of the
// instance being rendered (the hook primitives need it) and the arguments the
// parent bound to this call, and returns a fresh VNode tree. It must be a
// pure description: no mutation, no scheduling, hooks called unconditionally
// in a fixed order.
type RenderFunc func(ctx *Ctx, props vdom.Props) *vdom.VNode

// Component is the stable identity handle for a wrapped render function.
// The handle is assigned once at wrap time; reconciliation compares handles,
// never Go function values. It implements vdom.Component.
type Component struct {
	id       uint64
	name     string
	fn       RenderFunc
	boundary Boundary
}

var _ vdom.Component = (*Component)(nil)

// WithHooks wraps fn as a component with hook storage whose instances
// re-render as part of the surrounding render pass.
func WithHooks(fn RenderFunc) *Component {
	return newComponent(fn, BoundaryNormal)
}

// Virtual wraps fn as a component that owns an independent render scope.
// Its instances still live in the parent's child tree for identity matching
// and teardown, but a parent re-render does not re-invoke them and their own
// state changes re-render only their subtree.
func Virtual(fn RenderFunc) *Component {
	return newComponent(fn, BoundaryVirtual)
}

func newComponent(fn RenderFunc, boundary Boundary) *Component {
	return &Component{
		id:       nextID(),
		name:     funcName(fn),
		fn:       fn,
		boundary: boundary,
	}
}

// funcName resolves a readable name for diagnostics.
func funcName(fn RenderFunc) string {
	if fn == nil {
		return "nil"
	}
	if rf := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()); rf != nil {
		return rf.Name()
	}
	return "anonymous"
}

// ComponentID implements vdom.Component.
func (c *Component) ComponentID() uint64 {
	return c.id
}

// ComponentName implements vdom.Component.
func (c *Component) ComponentName() string {
	return c.name
}

// Boundary returns the render-scope kind instances of this component get.
func (c *Component) Boundary() Boundary {
	return c.boundary
}

// Named overrides the diagnostic name.
func (c *Component) Named(name string) *Component {
	c.name = name
	return c
}

// Call produces a component-call VNode with the given arguments.
// The node is a pure description; the runtime creates or reuses an
// instance for it during reconciliation.
func (c *Component) Call(props vdom.Props) *vdom.VNode {
	return &vdom.VNode{
		Kind:  vdom.KindComponent,
		Comp:  c,
		Props: props,
	}
}

// Keyed is Call with an explicit reconciliation key, for calls whose
// position in the parent's output is not stable (lists, reordering).
func (c *Component) Keyed(key string, props vdom.Props) *vdom.VNode {
	n := c.Call(props)
	n.Key = key
	return n
}
