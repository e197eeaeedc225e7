// This file re-exports vdom event constructors for the el package.
package el

import "github.com/weft-ui/weft/pkg/vdom"

func OnClick(handler any) EventHandler {
	return vdom.OnClick(handler)
}
func OnDblClick(handler any) EventHandler {
	return vdom.OnDblClick(handler)
}
func OnKeyDown(handler any) EventHandler {
	return vdom.OnKeyDown(handler)
}
func OnKeyUp(handler any) EventHandler {
	return vdom.OnKeyUp(handler)
}
func OnInput(handler any) EventHandler {
	return vdom.OnInput(handler)
}
func OnChange(handler any) EventHandler {
	return vdom.OnChange(handler)
}
func OnSubmit(handler any) EventHandler {
	return vdom.OnSubmit(handler)
}
func OnFocus(handler any) EventHandler {
	return vdom.OnFocus(handler)
}
func OnBlur(handler any) EventHandler {
	return vdom.OnBlur(handler)
}
