package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPageHandlerServesRenderedRoot(t *testing.T) {
	srv := New(counterComponent(), &Config{Title: "counter demo"}, WithLogger(testLogger()))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<title>counter demo</title>") {
		t.Errorf("missing title: %s", body)
	}
	if !strings.Contains(body, `id="weft-root"`) {
		t.Errorf("missing mount point: %s", body)
	}
	if !strings.Contains(body, ">0<") {
		t.Errorf("missing rendered counter: %s", body)
	}
	if !strings.Contains(body, `src="/weft.js"`) {
		t.Errorf("missing thin client script tag: %s", body)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := New(counterComponent(), nil, WithLogger(testLogger()))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("unexpected health response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestThinClientCaching(t *testing.T) {
	srv := New(counterComponent(), nil, WithLogger(testLogger()))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/weft.js", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "javascript") {
		t.Errorf("unexpected content type %q", ct)
	}

	req := httptest.NewRequest(http.MethodGet, "/weft.js", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Errorf("expected 304, got %d", rec.Code)
	}
}

func TestThinClientDevModeDisablesCaching(t *testing.T) {
	srv := New(counterComponent(), &Config{DevMode: true}, WithLogger(testLogger()))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/weft.js", nil))

	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("expected no-store in dev mode, got %q", cc)
	}
}

func TestMetricsEndpointMounted(t *testing.T) {
	srv := New(counterComponent(), nil, WithLogger(testLogger()))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("metrics endpoint returned %d", rec.Code)
	}
}

type recordingServerMetrics struct {
	opened, closed, patches int
	errors                  []string
}

func (m *recordingServerMetrics) SessionOpened()         { m.opened++ }
func (m *recordingServerMetrics) SessionClosed()         { m.closed++ }
func (m *recordingServerMetrics) PatchesSent(n int)      { m.patches += n }
func (m *recordingServerMetrics) EventError(kind string) { m.errors = append(m.errors, kind) }

func TestServerMetricsHooks(t *testing.T) {
	m := &recordingServerMetrics{}
	srv := New(counterComponent(), nil, WithLogger(testLogger()), WithMetrics(m))

	sess := newSession(srv, srv.root)
	srv.addSession(sess)
	readFrame(t, sess)

	sess.dispatch(eventFrame{HID: clickHID(t, sess), Event: "click"})
	sess.drain()
	sess.dispatch(eventFrame{HID: "h999", Event: "click"})

	srv.removeSession(sess)

	if m.opened != 1 || m.closed != 1 {
		t.Errorf("session accounting off: %+v", m)
	}
	if m.patches == 0 {
		t.Errorf("patches not observed: %+v", m)
	}
	if len(m.errors) != 1 || m.errors[0] != "unbound" {
		t.Errorf("event errors not observed: %+v", m.errors)
	}
}
