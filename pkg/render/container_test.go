package render

import (
	"strings"
	"testing"

	"github.com/weft-ui/weft/pkg/vdom"
)

func TestStringContainerCommit(t *testing.T) {
	c := NewStringContainer()

	tree := vdom.Div(vdom.Span(vdom.Text("hello")))
	c.Commit(tree)

	if !strings.Contains(c.HTML(), `<span data-hid="h2">hello</span>`) {
		t.Errorf("HTML = %q", c.HTML())
	}
	if c.Tree() != tree {
		t.Error("Tree should return the committed root")
	}
	if c.Commits() != 1 {
		t.Errorf("Commits = %d, want 1", c.Commits())
	}
}

func TestStringContainerHandlerLookup(t *testing.T) {
	c := NewStringContainer()

	clicked := false
	c.Commit(vdom.Div(
		vdom.Button(vdom.OnClick(func() { clicked = true }), vdom.Text("+")),
	))

	handler := c.Handler("h2", "onclick")
	if handler == nil {
		t.Fatal("expected handler for h2 onclick")
	}
	vdom.Invoke(handler, vdom.Event{Type: "click"})
	if !clicked {
		t.Error("handler was not invoked")
	}

	if c.Handler("h1", "onclick") != nil {
		t.Error("div should have no click handler")
	}
	if c.Handler("h2", "oninput") != nil {
		t.Error("button should have no input handler")
	}
}

// Each commit re-renders from scratch, so HIDs restart at h1 and the
// handler registry reflects only the latest tree.
func TestStringContainerRecommit(t *testing.T) {
	c := NewStringContainer()

	c.Commit(vdom.Div(vdom.Button(vdom.OnClick(func() {}), vdom.Text("a"))))
	c.Commit(vdom.Div(vdom.Span(vdom.Text("b"))))

	if c.Commits() != 2 {
		t.Errorf("Commits = %d, want 2", c.Commits())
	}
	if !strings.Contains(c.HTML(), `<span data-hid="h2">b</span>`) {
		t.Errorf("HTML = %q", c.HTML())
	}
	if c.Handler("h2", "onclick") != nil {
		t.Error("stale handler survived recommit")
	}
}

func TestStringContainerNilCommit(t *testing.T) {
	c := NewStringContainer()

	c.Commit(vdom.Div(vdom.Button(vdom.OnClick(func() {}))))
	c.Commit(nil)

	if c.HTML() != "" {
		t.Errorf("HTML after nil commit = %q, want empty", c.HTML())
	}
	if c.Tree() != nil {
		t.Error("Tree after nil commit should be nil")
	}
	if c.Handler("h2", "onclick") != nil {
		t.Error("handlers should be cleared after nil commit")
	}
	if c.Commits() != 2 {
		t.Errorf("Commits = %d, want 2", c.Commits())
	}
}
