// This file re-exports the runtime's component and hook primitives so a
// component file can be written against the el package alone.
package el

import "github.com/weft-ui/weft/pkg/weft"

func WithHooks(fn weft.RenderFunc) *Component {
	return weft.WithHooks(fn)
}
func Virtual(fn weft.RenderFunc) *Component {
	return weft.Virtual(fn)
}
func UseState[T any](ctx *Ctx, initial T) (T, func(T)) {
	return weft.UseState(ctx, initial)
}
func UseEffect(ctx *Ctx, fn weft.EffectFunc, deps []any) {
	weft.UseEffect(ctx, fn, deps)
}
