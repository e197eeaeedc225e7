package render

import (
	"strings"
	"testing"

	"github.com/weft-ui/weft/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer()

	html, err := renderer.RenderToString(vdom.Text("Hello, World!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	renderer := NewRenderer()

	html, err := renderer.RenderToString(vdom.Text("<script>alert('xss')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderAttributeEscaping(t *testing.T) {
	renderer := NewRenderer()

	node := vdom.Div(vdom.Data("note", `a"b`+"\n"+`c`))
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `data-note="a&quot;b&#10;c"`) {
		t.Errorf("attribute should escape quotes and newlines, got %q", html)
	}
}

func TestRenderElement(t *testing.T) {
	renderer := NewRenderer()

	node := vdom.Div(vdom.Class("container"),
		vdom.H1(vdom.Text("Title")),
		vdom.P(vdom.Text("Content")),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `<div class="container" data-hid="h1">`) {
		t.Errorf("should contain div with class and hid, got %q", html)
	}
	if !strings.Contains(html, `<h1 data-hid="h2">Title</h1>`) {
		t.Errorf("should contain h1, got %q", html)
	}
	if !strings.Contains(html, `<p data-hid="h3">Content</p>`) {
		t.Errorf("should contain p, got %q", html)
	}
}

// HIDs are assigned to every element in document order and written back onto
// the tree so later diffs can address nodes.
func TestRenderAssignsHIDs(t *testing.T) {
	renderer := NewRenderer()

	span := vdom.Span(vdom.Text("x"))
	button := vdom.Button(vdom.OnClick(func() {}), vdom.Text("+"))
	root := vdom.Div(span, button)

	if _, err := renderer.RenderToString(root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if root.HID != "h1" {
		t.Errorf("root HID = %q, want h1", root.HID)
	}
	if span.HID != "h2" {
		t.Errorf("span HID = %q, want h2", span.HID)
	}
	if button.HID != "h3" {
		t.Errorf("button HID = %q, want h3", button.HID)
	}
}

func TestRenderHandlerRegistry(t *testing.T) {
	renderer := NewRenderer()

	node := vdom.Div(
		vdom.Span(vdom.Text("static")),
		vdom.Button(vdom.OnClick(func() {}), vdom.Text("+")),
		vdom.Input(vdom.Type("text"), vdom.OnInput(func(vdom.Event) {})),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(html, `data-on-click="true"`) {
		t.Errorf("should contain click marker, got %q", html)
	}
	if !strings.Contains(html, `data-on-input="true"`) {
		t.Errorf("should contain input marker, got %q", html)
	}

	handlers := renderer.Handlers()
	if handlers["h3_onclick"] == nil {
		t.Errorf("button handler not registered, have %v", keysOf(handlers))
	}
	if handlers["h4_oninput"] == nil {
		t.Errorf("input handler not registered, have %v", keysOf(handlers))
	}
	// The static span carries no handlers even though it has an HID.
	for key := range handlers {
		if strings.HasPrefix(key, "h2_") {
			t.Errorf("span should not register handlers, got %q", key)
		}
	}
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func TestRenderVoidElements(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{
			name: "input",
			node: vdom.Input(vdom.Type("text"), vdom.Name("email")),
			want: `<input name="email" type="text" data-hid="h1">`,
		},
		{
			name: "br",
			node: vdom.Br(),
			want: `<br data-hid="h1">`,
		},
		{
			name: "img",
			node: vdom.Img(vdom.Src("/image.png"), vdom.Alt("test")),
			want: `<img alt="test" src="/image.png" data-hid="h1">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewRenderer()
			html, err := renderer.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if html != tt.want {
				t.Errorf("got %q, want %q", html, tt.want)
			}
		})
	}
}

func TestRenderVoidElementWithChildren(t *testing.T) {
	renderer := NewRenderer()

	_, err := renderer.RenderToString(vdom.El("br", vdom.Text("nope")))
	if err == nil {
		t.Fatal("expected error for void element with children")
	}
	if !strings.Contains(err.Error(), "E041") {
		t.Errorf("error should carry E041, got %q", err.Error())
	}
}

func TestRenderComponentNodeRejected(t *testing.T) {
	renderer := NewRenderer()

	node := &vdom.VNode{Kind: vdom.KindComponent}
	_, err := renderer.RenderToString(node)
	if err == nil {
		t.Fatal("expected error for component node")
	}
	if !strings.Contains(err.Error(), "E040") {
		t.Errorf("error should carry E040, got %q", err.Error())
	}
}

func TestRenderBooleanAttributes(t *testing.T) {
	renderer := NewRenderer()

	node := vdom.Div(
		vdom.Button(vdom.Disabled(true), vdom.Text("off")),
		vdom.Button(vdom.Disabled(false), vdom.Text("on")),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `<button disabled data-hid="h2">`) {
		t.Errorf("true bool should render bare, got %q", html)
	}
	if strings.Contains(html, `disabled data-hid="h3"`) {
		t.Errorf("false bool should be omitted, got %q", html)
	}
}

func TestRenderSortedAttributes(t *testing.T) {
	renderer := NewRenderer()

	node := vdom.Div(vdom.ID("z"), vdom.Class("a"), vdom.Data("x", "1"))
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div class="a" data-x="1" id="z" data-hid="h1"></div>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderFragment(t *testing.T) {
	renderer := NewRenderer()

	node := vdom.Fragment(
		vdom.Span(vdom.Text("a")),
		vdom.Span(vdom.Text("b")),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<span data-hid="h1">a</span><span data-hid="h2">b</span>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderNilNode(t *testing.T) {
	renderer := NewRenderer()

	html, err := renderer.RenderToString(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "" {
		t.Errorf("got %q, want empty", html)
	}
}

// Reset rewinds the HID counter so a fresh render starts at h1 again.
func TestRendererReset(t *testing.T) {
	renderer := NewRenderer()

	if _, err := renderer.RenderToString(vdom.Div()); err != nil {
		t.Fatal(err)
	}
	if _, err := renderer.RenderToString(vdom.Div()); err != nil {
		t.Fatal(err)
	}

	node := vdom.Div()
	renderer.Reset()
	if _, err := renderer.RenderToString(node); err != nil {
		t.Fatal(err)
	}
	if node.HID != "h1" {
		t.Errorf("HID after Reset = %q, want h1", node.HID)
	}
}

// Without Reset the counter keeps climbing, which live sessions rely on to
// mint unique HIDs for inserted subtrees.
func TestRendererContinuingCounter(t *testing.T) {
	renderer := NewRenderer()

	first := vdom.Div()
	second := vdom.Div()
	if _, err := renderer.RenderToString(first); err != nil {
		t.Fatal(err)
	}
	if _, err := renderer.RenderToString(second); err != nil {
		t.Fatal(err)
	}
	if first.HID != "h1" || second.HID != "h2" {
		t.Errorf("HIDs = %q, %q; want h1, h2", first.HID, second.HID)
	}
}
