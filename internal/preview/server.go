// Package preview serves the registered views over HTTP and tells browsers
// to reload when an emitted view changes.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/conneroisu/leafgen/internal/config"
	lerrors "github.com/conneroisu/leafgen/internal/errors"
	"github.com/conneroisu/leafgen/internal/logging"
	"github.com/conneroisu/leafgen/internal/registry"
)

// Server serves the view listing, the rendered Leaf source of each view and
// the reload channel.
type Server struct {
	config   config.PreviewConfig
	registry *registry.ViewRegistry
	hub      *Hub
	errors   *lerrors.ErrorCollector
	logger   logging.Logger

	// port is the port browsers connect to; it changes from the configured
	// one when the listener picks the port.
	port atomic.Int64

	serverMutex sync.Mutex
	httpServer  *http.Server
}

// New creates a preview server for reg.
func New(cfg config.PreviewConfig, reg *registry.ViewRegistry, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		config:   cfg,
		registry: reg,
		errors:   lerrors.NewErrorCollector(),
		logger:   logger.WithComponent("preview"),
	}
	s.port.Store(int64(cfg.Port))
	s.hub = NewHub(s.allowOrigin, logger)
	return s
}

// allowOrigin accepts local origins on the port the server listens on.
func (s *Server) allowOrigin(origin string) bool {
	return LocalOrigins(s.config.Host, int(s.port.Load()))(origin)
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /views/{name}", s.handleView)
	mux.HandleFunc("GET /api/views", s.handleViews)
	mux.HandleFunc("GET /errors", s.handleErrors)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /ws", s.hub)
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug(r.Context(), "Request served",
			"method", r.Method, "path", r.URL.Path, "duration_ms", time.Since(start).Milliseconds())
	})
}

// Start listens on the configured address and serves until ctx is done.
// Registry events are forwarded to connected browsers.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return fmt.Errorf("preview server: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if addr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port.Store(int64(addr.Port))
	}

	events := s.registry.Watch()
	defer s.registry.UnWatch(events)
	go s.forward(ctx, events)

	s.serverMutex.Lock()
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := s.httpServer
	s.serverMutex.Unlock()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Preview server listening", "address", listener.Addr().String())
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("preview server: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server and disconnects every browser.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Shutdown()

	s.serverMutex.Lock()
	server := s.httpServer
	s.serverMutex.Unlock()
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

func (s *Server) forward(ctx context.Context, events <-chan registry.ViewEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Type == registry.EventTypeUpdated {
				s.errors.Clear()
			}
			s.hub.Broadcast(UpdateMessage{
				Type:      MessageReload,
				Target:    event.Entry.Name,
				Content:   event.Type.String(),
				Timestamp: event.Timestamp,
			})
		}
	}
}

// NotifyError records err for the error overlay and pushes the overlay to
// connected browsers. It satisfies errors.Notifier.
func (s *Server) NotifyError(_ context.Context, err *lerrors.LeafError) error {
	if err == nil {
		return nil
	}
	s.errors.Add(err.View, err)

	overlay, renderErr := s.errors.Overlay()
	if renderErr != nil {
		return renderErr
	}
	s.hub.Broadcast(UpdateMessage{Type: MessageError, Target: err.View, Content: overlay})
	return nil
}

// ClientCount is the number of connected browsers.
func (s *Server) ClientCount() int {
	return s.hub.ClientCount()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := indexPage(s.registry.All(), s.errors)
	if err != nil {
		s.logger.Error(r.Context(), err, "Index page failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

// handleView responds with the Leaf source of one view.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	entry, ok := s.registry.Get(name)
	if !ok {
		http.Error(w, lerrors.ErrViewNotFound(name).Error(), http.StatusNotFound)
		return
	}

	out, err := entry.Render()
	if err != nil {
		le := lerrors.Classify(lerrors.NewBindingError(lerrors.ErrCodeRenderFailed, "render failed", err).WithView(name))
		if notifyErr := s.NotifyError(r.Context(), le); notifyErr != nil {
			s.logger.Warn(r.Context(), notifyErr, "Error overlay failed")
		}
		http.Error(w, le.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

// viewInfo is the JSON shape of a registry entry.
type viewInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Content     string `json:"content,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

func (s *Server) handleViews(w http.ResponseWriter, _ *http.Request) {
	entries := s.registry.All()
	views := make([]viewInfo, len(entries))
	for i, entry := range entries {
		views[i] = viewInfo{
			Name:        entry.Name,
			Kind:        string(entry.Kind),
			Content:     entry.ContentPath,
			ContentType: entry.ContentType,
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(views)
}

func (s *Server) handleErrors(w http.ResponseWriter, r *http.Request) {
	overlay, err := s.errors.Overlay()
	if err != nil {
		s.logger.Error(r.Context(), err, "Error overlay failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(overlay))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"views":   s.registry.Count(),
		"clients": s.hub.ClientCount(),
	})
}
