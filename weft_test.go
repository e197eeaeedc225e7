package weft_test

import (
	"strings"
	"testing"

	weft "github.com/weft-ui/weft"
	"github.com/weft-ui/weft/pkg/render"
	"github.com/weft-ui/weft/pkg/vdom"
)

// The counter walkthrough from the package documentation, driven through
// the facade only.
func TestFacadeCounter(t *testing.T) {
	counter := weft.WithHooks(func(ctx *weft.Ctx, _ weft.Props) *weft.VNode {
		count, setCount := weft.UseState(ctx, 0)
		return vdom.Div(
			vdom.Span(vdom.Textf("%d", count)),
			vdom.Button(vdom.OnClick(func() { setCount(count + 1) }), vdom.Text("+")),
		)
	})

	container := render.NewStringContainer()
	h := weft.Render(counter.Call(nil), container)
	defer h.Unmount()

	if !strings.Contains(container.HTML(), ">0<") {
		t.Fatalf("expected initial 0, got %s", container.HTML())
	}

	// HIDs are sequential in document order: div, span, button.
	handler := container.Handler("h3", "onclick")
	if handler == nil {
		t.Fatalf("no click handler in %s", container.HTML())
	}
	vdom.Invoke(handler, vdom.Event{Type: "click"})
	h.Flush()

	if !strings.Contains(container.HTML(), ">1<") {
		t.Errorf("expected 1 after click, got %s", container.HTML())
	}
}

func TestFacadeHostLifecycle(t *testing.T) {
	cleanups := 0
	host := weft.NewHost(func(ctx *weft.Ctx, _ weft.Props) *weft.VNode {
		weft.UseEffect(ctx, func() weft.Cleanup {
			return func() { cleanups++ }
		}, []any{})
		return vdom.Text("hosted")
	})

	container := render.NewStringContainer()
	h := host.Mount(container)
	if container.HTML() != "hosted" {
		t.Fatalf("unexpected markup %q", container.HTML())
	}

	host.Unmount(h)
	if cleanups != 1 {
		t.Errorf("expected one cleanup, got %d", cleanups)
	}
	if container.HTML() != "" {
		t.Errorf("expected empty markup after unmount, got %q", container.HTML())
	}
}
