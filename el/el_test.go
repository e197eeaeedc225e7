package el

import (
	"testing"

	"github.com/weft-ui/weft/pkg/vdom"
)

func TestElementConstructors(t *testing.T) {
	n := Div(
		ID("root"),
		Class("container", "wide"),
		H1(Text("Hello")),
		P(Textf("count=%d", 3)),
	)

	if n.Tag != "div" {
		t.Fatalf("expected div, got %q", n.Tag)
	}
	if n.Props["id"] != "root" {
		t.Errorf("expected id root, got %v", n.Props["id"])
	}
	if n.Props["class"] != "container wide" {
		t.Errorf("expected joined classes, got %v", n.Props["class"])
	}
	if len(n.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(n.Children))
	}
	if n.Children[1].Children[0].Text != "count=3" {
		t.Errorf("unexpected text: %q", n.Children[1].Children[0].Text)
	}
}

func TestKeyAttrLiftsToNode(t *testing.T) {
	n := Li(Key("item-1"), Text("one"))
	if n.Key != "item-1" {
		t.Errorf("expected key on node, got %q", n.Key)
	}
	if _, ok := n.Props["key"]; ok {
		t.Error("key must not remain a plain prop")
	}
}

func TestEventHandlerAttaches(t *testing.T) {
	clicked := false
	n := Button(OnClick(func() { clicked = true }), Text("go"))

	h, ok := n.Props["onclick"]
	if !ok {
		t.Fatal("expected onclick prop")
	}
	vdom.Invoke(h, vdom.Event{Type: "click"})
	if !clicked {
		t.Error("handler not invoked")
	}
}

func TestConditionalHelpers(t *testing.T) {
	if If(false, Div()) != nil {
		t.Error("If(false) should drop the node")
	}
	if IfElse(true, Span(), Div()).Tag != "span" {
		t.Error("IfElse picked the wrong branch")
	}
	nodes := Range([]string{"a", "b"}, func(s string, i int) *VNode {
		return Li(Key(s), Text(s))
	})
	if len(nodes) != 2 || nodes[1].Key != "b" {
		t.Errorf("Range produced %v", nodes)
	}
}

func TestVoidElements(t *testing.T) {
	for _, tag := range []string{"br", "img", "input", "hr", "meta"} {
		if !IsVoidElement(tag) {
			t.Errorf("%s should be void", tag)
		}
	}
	if IsVoidElement("div") {
		t.Error("div is not void")
	}
}
