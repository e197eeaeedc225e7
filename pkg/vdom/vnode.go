package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Component call (expanded by the runtime)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// VNode is an immutable description of what to render. Component functions
// produce a fresh tree on every render; the runtime diffs trees against its
// instance registry, so a VNode must never be mutated after construction.
//
// For KindComponent nodes, Props carries the arguments bound to the call and
// Comp is the stable component handle whose identity the reconciler keys off.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes, event handlers, or component arguments
	Children []*VNode  // Child nodes
	Key      string    // Explicit reconciliation key
	Text     string    // For KindText
	Comp     Component // For KindComponent
	HID      string    // Hydration ID (assigned during render)
}

// Props holds attributes and event handlers, or a component call's arguments.
type Props map[string]any

// IsInteractive returns true if this node has event handlers and needs a HID.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if strings.HasPrefix(key, "on") {
			return true
		}
	}
	return false
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler bound to an element.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}

// Component is the stable handle for a wrapped component function.
// Handles are assigned once when a function is wrapped; two calls render
// the same component iff their handles report the same ComponentID.
// The runtime package owns the only implementations.
type Component interface {
	// ComponentID returns the interned identity of the wrapped function.
	ComponentID() uint64

	// ComponentName returns a human-readable name for diagnostics.
	ComponentName() string
}
