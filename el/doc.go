// Package el is the element DSL: a flat namespace of constructors for
// building VNode trees and hooked components with a single dot import.
//
//	import . "github.com/weft-ui/weft/el"
//
//	var Counter = WithHooks(func(ctx *Ctx, _ Props) *VNode {
//		count, setCount := UseState(ctx, 0)
//		return Div(
//			Span(Textf("%d", count)),
//			Button(OnClick(func() { setCount(count + 1) }), Text("+")),
//		)
//	})
package el
