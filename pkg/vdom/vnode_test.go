package vdom

import "testing"

func TestVKindString(t *testing.T) {
	cases := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("VKind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestIsInteractive(t *testing.T) {
	if Div().IsInteractive() {
		t.Error("plain div should not be interactive")
	}
	if !Button(OnClick(func() {})).IsInteractive() {
		t.Error("button with onclick should be interactive")
	}
	if Text("x").IsInteractive() {
		t.Error("text node should not be interactive")
	}
	var nilNode *VNode
	if nilNode.IsInteractive() {
		t.Error("nil node should not be interactive")
	}
}

func TestTextNodes(t *testing.T) {
	n := Text("hello")
	if n.Kind != KindText || n.Text != "hello" {
		t.Errorf("unexpected text node: %+v", n)
	}

	f := Textf("%s-%d", "a", 1)
	if f.Text != "a-1" {
		t.Errorf("Textf produced %q", f.Text)
	}
}

func TestFragmentFlattens(t *testing.T) {
	f := Fragment(Div(), []*VNode{Span(), P()}, nil, Text("t"))
	if f.Kind != KindFragment {
		t.Fatalf("expected fragment, got %v", f.Kind)
	}
	if len(f.Children) != 4 {
		t.Errorf("expected 4 children, got %d", len(f.Children))
	}
}
