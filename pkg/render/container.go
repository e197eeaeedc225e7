package render

import (
	"sync"

	"github.com/weft-ui/weft/pkg/vdom"
)

// StringContainer is a weft container that renders every committed tree to
// an HTML string. It is the default host for tests and for SSR of the
// initial page.
type StringContainer struct {
	mu       sync.Mutex
	html     string
	tree     *vdom.VNode
	handlers map[string]any
	commits  int
}

// NewStringContainer creates an empty container.
func NewStringContainer() *StringContainer {
	return &StringContainer{}
}

// Commit implements weft.Container.
func (c *StringContainer) Commit(root *vdom.VNode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.commits++
	c.tree = root

	if root == nil {
		c.html = ""
		c.handlers = nil
		return
	}

	r := NewRenderer()
	html, err := r.RenderToString(root)
	if err != nil {
		// A committed tree that cannot be serialized is a runtime bug.
		panic(err)
	}
	c.html = html
	c.handlers = r.Handlers()
}

// HTML returns the markup of the last commit ("" after unmount).
func (c *StringContainer) HTML() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.html
}

// Tree returns the committed tree of the last commit.
func (c *StringContainer) Tree() *vdom.VNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree
}

// Handler returns the event handler registered for hid and event
// (e.g. "h1", "onclick"), or nil.
func (c *StringContainer) Handler(hid, event string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handlers == nil {
		return nil
	}
	return c.handlers[hid+"_"+event]
}

// Commits returns how many times the container has received a tree.
func (c *StringContainer) Commits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commits
}
