// Package vdom provides the virtual node model: an immutable, declarative
// description of UI produced fresh on every render.
//
// A VNode tree is pure data. Element constructors (Div, Button, ...) and
// helpers (Text, Fragment, If, Range) build trees; the weft runtime expands
// component calls, diffs committed trees, and owns all mutation.
package vdom
