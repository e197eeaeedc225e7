package weft

import (
	"testing"

	"github.com/weft-ui/weft/pkg/vdom"
)

func TestVirtualChildNotReinvokedByParentPass(t *testing.T) {
	c := &treeContainer{}

	islandRenders := 0
	island := Virtual(func(ctx *Ctx, _ vdom.Props) *vdom.VNode {
		islandRenders++
		UseState(ctx, 0)
		return vdom.Text("island")
	})

	var setN func(int)
	parent := WithHooks(func(ctx *Ctx, _ vdom.Props) *vdom.VNode {
		n, set := UseState(ctx, 0)
		setN = set
		return vdom.Div(vdom.Textf("%d ", n), island.Call(nil))
	})

	h := Render(parent.Call(nil), c)
	defer h.Unmount()

	setN(1)
	h.Flush()
	setN(2)
	h.Flush()

	if islandRenders != 1 {
		t.Errorf("virtual child re-invoked by parent pass: %d renders", islandRenders)
	}
	if got := textOf(c.tree); got != "2 island" {
		t.Errorf("expected %q, got %q", "2 island", got)
	}
}

func TestVirtualChildRerendersIndependently(t *testing.T) {
	c := &treeContainer{}

	parentRenders := 0
	var setIsland func(int)
	island := Virtual(func(ctx *Ctx, _ vdom.Props) *vdom.VNode {
		n, set := UseState(ctx, 0)
		setIsland = set
		return vdom.Textf("island=%d", n)
	})

	parent := WithHooks(func(ctx *Ctx, _ vdom.Props) *vdom.VNode {
		parentRenders++
		return vdom.Div(island.Call(nil))
	})

	h := Render(parent.Call(nil), c)
	defer h.Unmount()

	setIsland(1)
	h.Flush()

	if parentRenders != 1 {
		t.Errorf("virtual child's pass re-rendered the parent: %d renders", parentRenders)
	}
	if got := textOf(c.tree); got != "island=1" {
		t.Errorf("expected %q, got %q", "island=1", got)
	}
}

func TestSiblingVirtualsAreIndependent(t *testing.T) {
	c := &treeContainer{}

	renders := map[string]int{}
	setters := map[string]func(int){}

	counter := Virtual(func(ctx *Ctx, props vdom.Props) *vdom.VNode {
		name := props["name"].(string)
		renders[name]++
		n, set := UseState(ctx, 0)
		setters[name] = set
		return vdom.Textf("%s=%d ", name, n)
	})

	parent := WithHooks(func(ctx *Ctx, _ vdom.Props) *vdom.VNode {
		return vdom.Div(
			counter.Keyed("left", vdom.Props{"name": "left"}),
			counter.Keyed("right", vdom.Props{"name": "right"}),
		)
	})

	h := Render(parent.Call(nil), c)
	defer h.Unmount()

	setters["left"](5)
	h.Flush()

	if renders["left"] != 2 {
		t.Errorf("left should have re-rendered: %d", renders["left"])
	}
	if renders["right"] != 1 {
		t.Errorf("right re-rendered without its own state change: %d", renders["right"])
	}
	if got := textOf(c.tree); got != "left=5 right=0 " {
		t.Errorf("expected %q, got %q", "left=5 right=0 ", got)
	}
}

func TestVirtualPropChangeDefersToOwnPass(t *testing.T) {
	c := &treeContainer{}

	islandRenders := 0
	island := Virtual(func(ctx *Ctx, props vdom.Props) *vdom.VNode {
		islandRenders++
		return vdom.Textf("gen=%v", props["gen"])
	})

	var setGen func(int)
	parent := WithHooks(func(ctx *Ctx, _ vdom.Props) *vdom.VNode {
		gen, set := UseState(ctx, 0)
		setGen = set
		return vdom.Div(island.Call(vdom.Props{"gen": gen}))
	})

	h := Render(parent.Call(nil), c)
	defer h.Unmount()

	setGen(1)
	h.Flush()
	// The parent's pass rebinds the island's arguments and marks it; the
	// island renders in a later pass of the same or next flush.
	h.Flush()

	if got := textOf(c.tree); got != "gen=1" {
		t.Errorf("expected %q, got %q", "gen=1", got)
	}
	if islandRenders != 2 {
		t.Errorf("expected 2 island renders, got %d", islandRenders)
	}
}

func TestBoundaryString(t *testing.T) {
	if BoundaryNormal.String() != "normal" || BoundaryVirtual.String() != "virtual" {
		t.Errorf("unexpected boundary names: %s, %s", BoundaryNormal, BoundaryVirtual)
	}
}
