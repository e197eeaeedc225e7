package server

import (
	"context"

	"github.com/weft-ui/weft/pkg/vdom"
)

// EventCtx carries one client event through the middleware chain to its
// handler. It lives for the duration of a single dispatch.
type EventCtx struct {
	std     context.Context
	session *Session
	hid     string
	event   vdom.Event
	patches int
}

// StdContext returns the context.Context for downstream calls (tracing,
// cancellation).
func (c *EventCtx) StdContext() context.Context {
	if c.std == nil {
		return context.Background()
	}
	return c.std
}

// SetStdContext replaces the context, typically to thread a trace span.
func (c *EventCtx) SetStdContext(ctx context.Context) {
	c.std = ctx
}

// Session returns the session that received the event.
func (c *EventCtx) Session() *Session {
	return c.session
}

// HID returns the hydration ID of the element the event targets.
func (c *EventCtx) HID() string {
	return c.hid
}

// Event returns the decoded client event.
func (c *EventCtx) Event() vdom.Event {
	return c.event
}

// Patches returns the number of patches sent to the client so far in this
// session, sampled after the handler ran.
func (c *EventCtx) Patches() int {
	return c.patches
}

// NewEventCtx builds the context for one dispatch. Hosts with custom
// transports use it to run events through an EventMiddleware chain.
func NewEventCtx(session *Session, hid string, event vdom.Event) *EventCtx {
	return &EventCtx{session: session, hid: hid, event: event}
}

// EventHandler processes one client event.
type EventHandler func(*EventCtx) error

// EventMiddleware wraps an EventHandler, running before and after dispatch.
type EventMiddleware func(EventHandler) EventHandler

// chainEvent composes middleware around a handler, first added outermost.
func chainEvent(mws []EventMiddleware, h EventHandler) EventHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
