package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weft-ui/weft/pkg/render"
	"github.com/weft-ui/weft/pkg/weft"
)

// Metrics receives server-side observations. The middleware package ships a
// Prometheus implementation; the zero value of the server observes nothing.
type Metrics interface {
	SessionOpened()
	SessionClosed()
	PatchesSent(n int)
	EventError(kind string)
}

type nopMetrics struct{}

func (nopMetrics) SessionOpened()    {}
func (nopMetrics) SessionClosed()    {}
func (nopMetrics) PatchesSent(int)   {}
func (nopMetrics) EventError(string) {}

// Server serves the page shell, the thin client, and live websocket
// sessions for one root component.
type Server struct {
	config *Config
	root   *weft.Component
	logger *slog.Logger

	mux      chi.Router
	upgrader websocket.Upgrader

	eventMW        []EventMiddleware
	metrics        Metrics
	runtimeMetrics weft.Metrics

	sessionMu sync.Mutex
	sessions  map[string]*Session
	httpSrv   *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithEventMiddleware appends middleware around event dispatch, outermost
// first.
func WithEventMiddleware(mw ...EventMiddleware) ServerOption {
	return func(s *Server) {
		s.eventMW = append(s.eventMW, mw...)
	}
}

// WithMetrics sets the server metrics sink.
func WithMetrics(m Metrics) ServerOption {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithRuntimeMetrics sets the weft scheduler metrics sink installed on
// every session's mount.
func WithRuntimeMetrics(m weft.Metrics) ServerOption {
	return func(s *Server) {
		s.runtimeMetrics = m
	}
}

// New creates a Server for the given root component. A nil config uses
// defaults; a partial config is filled in.
func New(root *weft.Component, config *Config, opts ...ServerOption) *Server {
	if config == nil {
		config = DefaultConfig()
	} else {
		config.fillDefaults()
	}

	s := &Server{
		config:   config,
		root:     root,
		logger:   slog.Default().With("component", "server"),
		metrics:  nopMetrics{},
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}

	checkOrigin := config.CheckOrigin
	if checkOrigin == nil && len(config.AllowedOrigins) > 0 {
		checkOrigin = config.originAllowed
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  config.ReadBufferSize,
		WriteBufferSize: config.WriteBufferSize,
		CheckOrigin:     checkOrigin,
	}

	s.mux = s.routes()
	return s
}

// routes builds the chi router.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/live", s.handleLive)
	r.Get("/weft.js", s.serveThinClient)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handlePage serves the SSR page shell: a one-shot mount rendered to HTML
// with the thin client script attached.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	container := render.NewStringContainer()
	h := weft.Render(s.root.Call(nil), container)
	h.Unmount()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageShell, s.config.Title, container.HTML())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// pageShell wraps the rendered root. The body div is the thin client's
// patch target.
const pageShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
<div id="weft-root">%s</div>
<script src="/weft.js"></script>
</body>
</html>
`

func (s *Server) addSession(sess *Session) {
	s.sessionMu.Lock()
	s.sessions[sess.id] = sess
	s.sessionMu.Unlock()
	s.metrics.SessionOpened()
}

func (s *Server) removeSession(sess *Session) {
	s.sessionMu.Lock()
	delete(s.sessions, sess.id)
	s.sessionMu.Unlock()
	s.metrics.SessionClosed()
}

func (s *Server) observePatches(n int) {
	s.metrics.PatchesSent(n)
}

func (s *Server) observeEventError(kind string) {
	s.metrics.EventError(kind)
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// Config returns the effective configuration.
func (s *Server) Config() *Config {
	return s.config
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts
// down gracefully within the configured timeout.
func (s *Server) Run() error {
	s.httpSrv = &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.config.Address)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		s.logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown closes live sessions and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.sessionMu.Lock()
	for _, sess := range s.sessions {
		sess.Close()
	}
	s.sessionMu.Unlock()
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
