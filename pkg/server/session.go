package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/weft-ui/weft/pkg/render"
	"github.com/weft-ui/weft/pkg/vdom"
	"github.com/weft-ui/weft/pkg/weft"
)

// Session is one live client: a mounted root component, a cooperative task
// loop, and a websocket. All runtime work (event dispatch, flushes, commits)
// happens on the session's loop goroutine; the read and write pumps only
// move frames.
type Session struct {
	id     string
	server *Server
	logger *slog.Logger

	handle   *weft.Handle
	renderer *render.Renderer

	// handlers maps "hid_oneventname" to the handler bound at the last
	// commit. Rebuilt wholesale after each patch commit since re-renders
	// produce fresh closures.
	handlers map[string]any

	// prev is the last committed tree, with hydration IDs assigned.
	prev *vdom.VNode

	tasks  chan func()
	outbox chan []byte
	done   chan struct{}
	once   sync.Once

	patchesSent int
}

// eventFrame is a client event as decoded off the wire.
type eventFrame struct {
	HID   string `json:"hid"`
	Event string `json:"event"`
	Value string `json:"value,omitempty"`
	Key   string `json:"key,omitempty"`
}

// initFrame carries the full initial markup.
type initFrame struct {
	Type string `json:"type"`
	HTML string `json:"html"`
}

// patchesFrame carries incremental updates after a flush.
type patchesFrame struct {
	Type    string       `json:"type"`
	Patches []vdom.Patch `json:"patches"`
}

// newSession mounts the root component and queues the init frame. The
// caller starts the loop and pumps.
func newSession(srv *Server, comp *weft.Component) *Session {
	s := &Session{
		id:       newSessionID(),
		server:   srv,
		handlers: make(map[string]any),
		renderer: render.NewRenderer(),
		tasks:    make(chan func(), 64),
		outbox:   make(chan []byte, 64),
		done:     make(chan struct{}),
	}
	s.logger = srv.logger.With("session", s.id)
	s.handle = weft.Render(comp.Call(nil), s,
		weft.WithCycle(s.cycle),
		weft.WithMetrics(srv.runtimeMetrics))
	return s
}

func newSessionID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "s0"
	}
	return hex.EncodeToString(b[:])
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// PatchesSent returns the number of patches pushed so far.
func (s *Session) PatchesSent() int {
	return s.patchesSent
}

// cycle is the weft.Cycle for this session: flushes run as loop tasks, so
// state writes from any goroutine serialize onto the session thread.
func (s *Session) cycle(flush func()) {
	s.post(flush)
}

// post queues fn onto the loop. Tasks arriving after close are dropped.
func (s *Session) post(fn func()) {
	select {
	case <-s.done:
	case s.tasks <- fn:
	default:
		s.logger.Warn("task queue full, dropping")
	}
}

// run consumes the task loop until the session closes.
func (s *Session) run() {
	for {
		select {
		case fn := <-s.tasks:
			fn()
		case <-s.done:
			return
		}
	}
}

// drain runs queued tasks until the queue is empty. Test hosts use this in
// place of the loop goroutine.
func (s *Session) drain() {
	for {
		select {
		case fn := <-s.tasks:
			fn()
		default:
			return
		}
	}
}

// Close tears the session down: the mount is destroyed on the loop, then
// the pumps are released. Idempotent.
func (s *Session) Close() {
	s.once.Do(func() {
		s.post(func() {
			defer close(s.done)
			s.handle.Unmount()
		})
	})
}

// Commit implements weft.Container. The first commit serializes the full
// tree; later commits diff against the previous tree and push patches.
func (s *Session) Commit(root *vdom.VNode) {
	if root == nil {
		// Unmount: the socket teardown is already in progress.
		return
	}

	if s.prev == nil {
		html, err := s.renderer.RenderToString(root)
		if err != nil {
			s.logger.Error("initial render failed", "error", err)
			return
		}
		s.prev = root
		s.collectHandlers(root)
		s.send(initFrame{Type: "init", HTML: html})
		return
	}

	patches := vdom.Diff(s.prev, root)
	s.prev = root
	if len(patches) == 0 {
		return
	}

	for i := range patches {
		if patches[i].Node == nil {
			continue
		}
		// Fresh subtrees get hydration IDs from the session's counter so
		// they never collide with live ones.
		html, err := s.renderer.RenderToString(patches[i].Node)
		if err != nil {
			s.logger.Error("patch render failed", "error", err, "op", patches[i].Op)
			continue
		}
		patches[i].HTML = html
	}

	s.collectHandlers(root)
	s.patchesSent += len(patches)
	s.server.observePatches(len(patches))
	s.send(patchesFrame{Type: "patches", Patches: patches})
}

// collectHandlers rebuilds the event handler registry from the committed
// tree. Handlers are keyed "hid_oneventname".
func (s *Session) collectHandlers(root *vdom.VNode) {
	handlers := make(map[string]any)

	var walk func(n *vdom.VNode)
	walk = func(n *vdom.VNode) {
		if n == nil {
			return
		}
		if n.HID != "" {
			for key, value := range n.Props {
				if strings.HasPrefix(key, "on") {
					handlers[n.HID+"_"+key] = value
				}
			}
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(root)

	s.handlers = handlers
}

// dispatch routes one client event through the server's middleware chain to
// the bound handler. Runs on the loop.
func (s *Session) dispatch(frame eventFrame) {
	ev := vdom.Event{Type: frame.Event, Value: frame.Value, Key: frame.Key}

	handler, ok := s.handlers[frame.HID+"_on"+frame.Event]
	if !ok {
		s.logger.Warn("no handler for event", "hid", frame.HID, "event", frame.Event)
		s.server.observeEventError("unbound")
		return
	}

	ctx := &EventCtx{session: s, hid: frame.HID, event: ev}
	final := func(c *EventCtx) error {
		vdom.Invoke(handler, c.event)
		// Sampled here so middleware observing after dispatch sees it.
		c.patches = s.patchesSent
		return nil
	}

	if err := chainEvent(s.server.eventMW, final)(ctx); err != nil {
		s.logger.Error("event handler failed", "hid", frame.HID, "event", frame.Event, "error", err)
		s.server.observeEventError("handler")
	}
}

// send marshals a frame onto the outbox. Frames are dropped with a warning
// if the writer cannot keep up.
func (s *Session) send(frame any) {
	data, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("frame marshal failed", "error", err)
		return
	}
	select {
	case s.outbox <- data:
	default:
		s.logger.Warn("outbox full, dropping frame")
	}
}
