package el

import (
	"github.com/weft-ui/weft/pkg/vdom"
	"github.com/weft-ui/weft/pkg/weft"
)

// Type aliases for the VDOM primitives used by the DSL.
type VNode = vdom.VNode
type VKind = vdom.VKind
type Props = vdom.Props
type Attr = vdom.Attr
type EventHandler = vdom.EventHandler
type Event = vdom.Event

// Runtime types, aliased so component files need a single import.
type Ctx = weft.Ctx
type Cleanup = weft.Cleanup
type Component = weft.Component
