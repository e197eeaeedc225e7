package server

import (
	"crypto/sha256"
	"fmt"
	"net/http"
)

// clientJS is the thin client: it owns the websocket, forwards DOM events
// by hydration ID, and applies patch frames. All rendering decisions stay
// on the server.
const clientJS = `(function () {
  "use strict";
  var root = document.getElementById("weft-root");
  if (!root) return;

  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/live");

  ws.onmessage = function (msg) {
    var frame = JSON.parse(msg.data);
    if (frame.type === "init") {
      root.innerHTML = frame.html;
    } else if (frame.type === "patches") {
      frame.patches.forEach(applyPatch);
    }
  };

  function byHid(hid) {
    return root.querySelector('[data-hid="' + hid + '"]');
  }

  function applyPatch(p) {
    var el = p.hid ? byHid(p.hid) : null;
    switch (p.op) {
      case 1: // SetText
        if (el) el.textContent = p.value;
        break;
      case 2: // SetAttr
        if (el) el.setAttribute(p.key, p.value);
        break;
      case 3: // RemoveAttr
        if (el) el.removeAttribute(p.key);
        break;
      case 4: { // InsertNode
        var parent = p.parentId ? byHid(p.parentId) : root;
        if (!parent) break;
        var tpl = document.createElement("template");
        tpl.innerHTML = p.html;
        var node = tpl.content.firstChild;
        if (p.index >= parent.children.length) parent.appendChild(node);
        else parent.insertBefore(node, parent.children[p.index]);
        break;
      }
      case 5: // RemoveNode
        if (el) el.remove();
        break;
      case 6: { // MoveNode
        var parent = p.parentId ? byHid(p.parentId) : root;
        if (!el || !parent) break;
        if (p.index >= parent.children.length) parent.appendChild(el);
        else parent.insertBefore(el, parent.children[p.index]);
        break;
      }
      case 7: { // ReplaceNode
        if (!el) break;
        var tpl = document.createElement("template");
        tpl.innerHTML = p.html;
        el.replaceWith(tpl.content.firstChild);
        break;
      }
    }
  }

  ["click", "dblclick", "input", "change", "submit", "keydown", "keyup", "focus", "blur"]
    .forEach(function (type) {
      root.addEventListener(type, function (e) {
        var el = e.target.closest("[data-hid]");
        if (!el || !el.hasAttribute("data-on-" + type)) return;
        if (type === "submit") e.preventDefault();
        ws.send(JSON.stringify({
          hid: el.getAttribute("data-hid"),
          event: type,
          value: "value" in e.target ? String(e.target.value) : "",
          key: e.key || ""
        }));
      }, true);
    });
})();
`

var thinClientETag = func() string {
	sum := sha256.Sum256([]byte(clientJS))
	return fmt.Sprintf("%q", fmt.Sprintf("%x", sum[:8]))
}()

func (s *Server) serveThinClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", thinClientETag)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if s.config.DevMode {
		w.Header().Set("Cache-Control", "no-store")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")
	}

	if r.Header.Get("If-None-Match") == thinClientETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	fmt.Fprint(w, clientJS)
}
