// Package server exposes pedigrees over HTTP.
//
// Pedigree definitions are uploaded as TOML documents and stored in memory
// under generated ids. Stored pedigrees can be retrieved as tab-separated
// tables or rendered as SVG diagrams.
package server

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/thoree/pedtools/pkg/cache"
	"github.com/thoree/pedtools/pkg/marker"
	"github.com/thoree/pedtools/pkg/pedigree"
)

// entry is one stored pedigree with its markers.
type entry struct {
	ped     *pedigree.Ped
	markers *marker.Set
	created time.Time
}

// Server holds the in-memory pedigree store and the HTTP handler.
type Server struct {
	mu      sync.RWMutex
	entries map[string]*entry

	cache  cache.Cache
	logger *log.Logger
	router chi.Router
}

// New creates a server. If c is nil, rendered diagrams are not cached.
// If logger is nil, a default logger is used.
func New(c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	s := &Server{
		entries: make(map[string]*entry),
		cache:   c,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/pedigrees", s.handleCreate)
	r.Route("/pedigrees/{id}", func(r chi.Router) {
		r.Get("/", s.handleGet)
		r.Delete("/", s.handleDelete)
		r.Get("/table", s.handleTable)
		r.Get("/plot.svg", s.handlePlot)
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// store saves a pedigree and returns its generated id.
func (s *Server) store(ped *pedigree.Ped, set *marker.Set) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.entries[id] = &entry{ped: ped, markers: set, created: time.Now()}
	s.mu.Unlock()
	return id
}

// lookup returns the stored entry for id, or nil.
func (s *Server) lookup(id string) *entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[id]
}

// remove deletes the entry for id, reporting whether it existed.
func (s *Server) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return false
	}
	delete(s.entries, id)
	return true
}
