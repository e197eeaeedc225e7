package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// handleLive upgrades the connection, mounts a fresh session, and runs the
// pumps until either side hangs up.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	sess := newSession(s, s.root)
	s.addSession(sess)
	s.logger.Info("session connected", "session", sess.ID(), "remote", r.RemoteAddr)

	go sess.run()
	go s.writePump(sess, conn)
	s.readPump(sess, conn)

	sess.Close()
	s.removeSession(sess)
	s.logger.Info("session closed", "session", sess.ID())
}

// readPump decodes event frames off the wire and posts them to the session
// loop. Returns when the connection drops.
func (s *Server) readPump(sess *Session, conn *websocket.Conn) {
	defer conn.Close()

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "session", sess.ID(), "error", err)
				s.observeEventError("read")
			}
			return
		}

		var frame eventFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			s.logger.Warn("malformed event frame", "session", sess.ID(), "error", err)
			s.observeEventError("decode")
			continue
		}
		if frame.HID == "" || frame.Event == "" {
			s.logger.Warn("incomplete event frame", "session", sess.ID())
			s.observeEventError("decode")
			continue
		}

		sess.post(func() { sess.dispatch(frame) })
	}
}

// writePump pushes outbox frames and keepalive pings until the session
// closes or a write fails.
func (s *Server) writePump(sess *Session, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case data := <-sess.outbox:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.logger.Warn("websocket write failed", "session", sess.ID(), "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-sess.done:
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
