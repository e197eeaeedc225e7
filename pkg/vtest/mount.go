package vtest

import (
	"strings"
	"testing"

	"github.com/weft-ui/weft/pkg/render"
	"github.com/weft-ui/weft/pkg/vdom"
	"github.com/weft-ui/weft/pkg/weft"
)

// Mounted is a component mounted for testing: a live scheduler, a string
// container, and helpers to fire events and drive flushes.
type Mounted struct {
	t         *testing.T
	handle    *weft.Handle
	container *render.StringContainer
}

// Mount renders a component into a fresh in-memory container. The mount is
// unmounted automatically when the test finishes.
func Mount(t *testing.T, comp *weft.Component, props vdom.Props) *Mounted {
	t.Helper()

	container := render.NewStringContainer()
	m := &Mounted{
		t:         t,
		container: container,
		handle:    weft.Render(comp.Call(props), container),
	}
	t.Cleanup(m.handle.Unmount)
	return m
}

// Flush processes pending state changes.
func (m *Mounted) Flush() {
	m.handle.Flush()
}

// HTML returns the last committed markup.
func (m *Mounted) HTML() string {
	return m.container.HTML()
}

// Tree returns the last committed tree.
func (m *Mounted) Tree() *vdom.VNode {
	return m.container.Tree()
}

// Click fires a click event on the element with the given hydration ID and
// flushes. Fails the test if no click handler is bound there.
func (m *Mounted) Click(hid string) {
	m.t.Helper()
	m.Fire(hid, vdom.Event{Type: "click"})
}

// Input fires an input event carrying value and flushes.
func (m *Mounted) Input(hid, value string) {
	m.t.Helper()
	m.Fire(hid, vdom.Event{Type: "input", Value: value})
}

// Fire dispatches an arbitrary event to the handler bound at hid.
func (m *Mounted) Fire(hid string, ev vdom.Event) {
	m.t.Helper()

	handler := m.container.Handler(hid, "on"+ev.Type)
	if handler == nil {
		m.t.Fatalf("no on%s handler bound at %s\n%s", ev.Type, hid, truncate(m.HTML(), 500))
	}
	vdom.Invoke(handler, ev)
	m.Flush()
}

// FindHID returns the hydration ID of the first element carrying a handler
// for the event type, in document order.
func (m *Mounted) FindHID(eventType string) string {
	m.t.Helper()

	var found string
	var walk func(n *vdom.VNode)
	walk = func(n *vdom.VNode) {
		if n == nil || found != "" {
			return
		}
		if n.HID != "" {
			for key := range n.Props {
				if strings.EqualFold(key, "on"+eventType) {
					found = n.HID
					return
				}
			}
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(m.Tree())

	if found == "" {
		m.t.Fatalf("no element with on%s handler\n%s", eventType, truncate(m.HTML(), 500))
	}
	return found
}

// ExpectHTML asserts the current markup contains the substring.
func (m *Mounted) ExpectHTML(expected string) {
	m.t.Helper()
	if !strings.Contains(m.HTML(), expected) {
		m.t.Errorf("expected markup to contain %q, got:\n%s", expected, truncate(m.HTML(), 500))
	}
}
