package vtest

import (
	"strings"
	"testing"

	"github.com/weft-ui/weft/pkg/vdom"
	"github.com/weft-ui/weft/pkg/weft"
)

func TestRenderToString(t *testing.T) {
	html := RenderToString(vdom.Div(vdom.Class("box"), vdom.Text("hi")))
	if !strings.Contains(html, `class="box"`) || !strings.Contains(html, ">hi<") {
		t.Errorf("unexpected markup: %s", html)
	}
}

func TestExpectHelpers(t *testing.T) {
	node := vdom.Div(
		vdom.Class("panel"),
		vdom.Button(vdom.OnClick(func() {}), vdom.Text("go")),
	)

	ExpectContains(t, node, "go")
	ExpectNotContains(t, node, "missing")
	ExpectElement(t, node, "button")
	ExpectAttribute(t, node, "class", "panel")
}

func TestMountClickFlow(t *testing.T) {
	comp := weft.WithHooks(func(ctx *weft.Ctx, _ vdom.Props) *vdom.VNode {
		count, setCount := weft.UseState(ctx, 0)
		return vdom.Div(
			vdom.Span(vdom.Textf("%d", count)),
			vdom.Button(vdom.OnClick(func() { setCount(count + 1) }), vdom.Text("+")),
		)
	})

	m := Mount(t, comp, nil)
	m.ExpectHTML(">0<")

	m.Click(m.FindHID("click"))
	m.ExpectHTML(">1<")

	m.Click(m.FindHID("click"))
	m.ExpectHTML(">2<")
}

func TestMountInputFlow(t *testing.T) {
	comp := weft.WithHooks(func(ctx *weft.Ctx, _ vdom.Props) *vdom.VNode {
		name, setName := weft.UseState(ctx, "")
		return vdom.Div(
			vdom.Input(vdom.OnInput(func(ev vdom.Event) { setName(ev.Value) })),
			vdom.P(vdom.Textf("hello %s", name)),
		)
	})

	m := Mount(t, comp, nil)
	m.Input(m.FindHID("input"), "ada")
	m.ExpectHTML("hello ada")
}

func TestMountProps(t *testing.T) {
	comp := weft.WithHooks(func(_ *weft.Ctx, props vdom.Props) *vdom.VNode {
		return vdom.Div(vdom.Textf("title=%v", props["title"]))
	})

	m := Mount(t, comp, vdom.Props{"title": "dashboard"})
	m.ExpectHTML("title=dashboard")
}
