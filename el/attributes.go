// This file re-exports vdom attribute constructors for the el package.
package el

import "github.com/weft-ui/weft/pkg/vdom"

func ID(id string) Attr {
	return vdom.ID(id)
}
func Class(classes ...string) Attr {
	return vdom.Class(classes...)
}
func StyleAttr(style string) Attr {
	return vdom.StyleAttr(style)
}
func Key(key string) Attr {
	return vdom.Key(key)
}
func Data(key, value string) Attr {
	return vdom.Data(key, value)
}
func Name(name string) Attr {
	return vdom.Name(name)
}
func Value(value string) Attr {
	return vdom.Value(value)
}
func Type(t string) Attr {
	return vdom.Type(t)
}
func Placeholder(text string) Attr {
	return vdom.Placeholder(text)
}
func Disabled(disabled bool) Attr {
	return vdom.Disabled(disabled)
}
func Checked(checked bool) Attr {
	return vdom.Checked(checked)
}
func Href(url string) Attr {
	return vdom.Href(url)
}
func Src(url string) Attr {
	return vdom.Src(url)
}
func Alt(text string) Attr {
	return vdom.Alt(text)
}
func Target(target string) Attr {
	return vdom.Target(target)
}
func Role(role string) Attr {
	return vdom.Role(role)
}
func AriaLabel(label string) Attr {
	return vdom.AriaLabel(label)
}
func AriaHidden(hidden bool) Attr {
	return vdom.AriaHidden(hidden)
}
func Hidden() Attr {
	return vdom.Hidden()
}
func TabIndex(index int) Attr {
	return vdom.TabIndex(index)
}
