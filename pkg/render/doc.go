// Package render serializes committed VNode trees to HTML.
//
// It sits on the far side of the runtime's Container boundary: the
// reconciler expands component calls, render turns the result into markup,
// hydration IDs, and a handler registry. Live DOM patching stays out of
// scope; the thin client applies patches computed by vdom.Diff.
package render
