package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/muurk/xamlrt/internal/htmlview"
	"github.com/muurk/xamlrt/internal/logging"
	"github.com/muurk/xamlrt/internal/session"
	"github.com/muurk/xamlrt/internal/uitree"
	"github.com/muurk/xamlrt/internal/version"
)

// maxRequestBody bounds POST /events bodies.
const maxRequestBody = 64 << 10

// Config holds the server configuration
type Config struct {
	// Addr is the listen address, e.g. "127.0.0.1:7878". Port 0 picks a
	// free port; Addr() reports the one chosen.
	Addr string

	// Announce registers the server over mDNS once listening.
	Announce bool

	// InstanceName is the mDNS instance name. Defaults to the session name.
	InstanceName string

	// Gatherer backs /metrics. Default: prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer

	// ShutdownTimeout bounds Shutdown when the caller's context has no
	// deadline.
	ShutdownTimeout time.Duration

	// AllowedOrigins lists browser origins (e.g. "http://localhost:3000")
	// that may raise events besides the server's own. Requests without an
	// Origin header come from non-browser clients and are always allowed.
	AllowedOrigins []string
}

// Server serves one session over HTTP and websocket.
type Server struct {
	config   *Config
	session  *session.Session
	router   chi.Router
	upgrader websocket.Upgrader

	httpServer *http.Server
	listener   net.Listener
	announcer  *zeroconf.Server

	wg          sync.WaitGroup
	mu          sync.Mutex
	closing     bool
	activeConns map[*websocket.Conn]string
}

// New builds a Server for s. Nothing listens until Start.
func New(s *session.Session, config *Config) (*Server, error) {
	if s == nil {
		return nil, errors.New("remote server requires a session")
	}
	if config == nil {
		config = &Config{}
	}
	if config.Addr == "" {
		return nil, errors.New("remote server requires a listen address")
	}
	if config.InstanceName == "" {
		config.InstanceName = s.Name()
	}
	if config.Gatherer == nil {
		config.Gatherer = prometheus.DefaultGatherer
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	srv := &Server{
		config:      config,
		session:     s,
		activeConns: make(map[*websocket.Conn]string),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(config.AllowedOrigins),
		},
	}
	srv.router = srv.routes()
	return srv, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/tree", s.handleTree)
	r.Get("/view", s.handleView)
	r.With(middleware.AllowContentType("application/json")).Post("/events", s.handleEvents)
	r.Get("/ws", s.handleWebSocket)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	return r
}

// Handler returns the router, for mounting or testing without a listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the bound address once Listen has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.config.Addr
	}
	return s.listener.Addr().String()
}

// Listen binds the configured address and, if enabled, announces it.
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Info("Remote server listening",
		zap.String("addr", s.Addr()),
		zap.String("session", s.session.Name()),
	)

	if s.config.Announce {
		if err := s.announce(); err != nil {
			logging.Warn("mDNS announcement failed", zap.Error(err))
		}
	}
	return nil
}

func (s *Server) announce() error {
	_, portStr, err := net.SplitHostPort(s.Addr())
	if err != nil {
		return err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", portStr, err)
	}
	text := []string{
		"version=" + version.Version,
		"proto=" + strconv.Itoa(version.Protocol),
		"ws=/ws",
	}
	if root, ok := s.session.Tree().Root(); ok {
		text = append(text, "root="+root.ElementName())
	}
	announcer, err := Announce(s.config.InstanceName, port, text)
	if err != nil {
		return err
	}
	s.announcer = announcer
	return nil
}

// Start listens and serves until ctx is cancelled or the listener fails.
// Callers wanting to stop on SIGINT wrap ctx with signal.NotifyContext.
func (s *Server) Start(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		logging.Info("Shutdown requested, stopping server...")
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown withdraws the announcement, stops accepting requests and closes
// open websockets.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down remote server...")

	if s.announcer != nil {
		s.announcer.Shutdown()
		s.announcer = nil
	}

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	// Hijacked websocket connections are not tracked by http.Server.
	s.mu.Lock()
	s.closing = true
	for conn, addr := range s.activeConns {
		logging.LogConnection(addr, "websocket_closing")
		_ = conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All connections closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	logging.Sync()
	return err
}

// ActiveConnections returns the number of open websockets.
func (s *Server) ActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeConns)
}

// dispatch runs req against the session.
func (s *Server) dispatch(ctx context.Context, req Request) (*Reply, error) {
	d, err := s.session.Dispatch(ctx, uitree.NodeID(req.Node), req.Event)
	return NewReply(req, d, err), err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.session.Tree().Describe()))
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	page, err := htmlview.Page(s.session.Name(), s.session.Tree(), true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(w); err != nil {
		logging.Error("Failed to render view", zap.Error(err))
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !s.upgrader.CheckOrigin(r) {
		writeJSON(w, http.StatusForbidden, &Reply{Error: "origin not allowed"})
		return
	}
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, &Reply{Error: fmt.Sprintf("decode request: %v", err)})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, &Reply{Node: req.Node, Event: req.Event, Error: err.Error()})
		return
	}

	reply, err := s.dispatch(r.Context(), req)
	status := http.StatusOK
	if session.IsNotFound(err) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, reply)
}

// checkOrigin accepts requests without an Origin header, from the server's
// own host, or from one of allowed.
func checkOrigin(allowed []string) func(r *http.Request) bool {
	origins := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		origins[strings.TrimSuffix(o, "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if origins[origin] {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, r.Host)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("Failed to encode response", zap.Error(err))
	}
}
