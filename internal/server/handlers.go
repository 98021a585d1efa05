package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thoree/pedtools/pkg/cache"
	"github.com/thoree/pedtools/pkg/errors"
	"github.com/thoree/pedtools/pkg/pedio"
	"github.com/thoree/pedtools/pkg/plot"
)

// plotCacheTTL bounds how long rendered diagrams are kept.
const plotCacheTTL = 24 * time.Hour

type createResponse struct {
	ID      string `json:"id"`
	Members int    `json:"members"`
	Markers int    `json:"markers"`
}

type pedigreeResponse struct {
	ID      string    `json:"id"`
	Members []string  `json:"members"`
	Markers []string  `json:"markers"`
	Created time.Time `json:"created"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	ped, set, err := pedio.Read(r.Body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	id := s.store(ped, set)
	s.logger.Info("pedigree stored", "id", id, "members", ped.Size(), "markers", set.Len())

	writeJSON(w, http.StatusCreated, createResponse{
		ID:      id,
		Members: ped.Size(),
		Markers: set.Len(),
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e := s.lookup(id)
	if e == nil {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "no pedigree with id %s", id))
		return
	}

	writeJSON(w, http.StatusOK, pedigreeResponse{
		ID:      id,
		Members: e.ped.Labels(),
		Markers: e.markers.Names(),
		Created: e.created,
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.remove(id) {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "no pedigree with id %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e := s.lookup(id)
	if e == nil {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "no pedigree with id %s", id))
		return
	}

	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	if err := pedio.WriteTable(w, e.ped, e.markers); err != nil {
		s.logger.Error("write table", "id", id, "error", err)
	}
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e := s.lookup(id)
	if e == nil {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "no pedigree with id %s", id))
		return
	}

	dot := plot.ToDOT(e.ped, plot.Options{})
	svg, err := s.renderCached(r.Context(), dot)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

// renderCached renders DOT to SVG, consulting the artifact cache first.
func (s *Server) renderCached(ctx context.Context, dot string) ([]byte, error) {
	key := cache.PlotKey(cache.Hash([]byte(dot)), "svg")

	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		return data, nil
	}

	svg, err := plot.RenderSVG(dot)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, svg, plotCacheTTL); err != nil {
		s.logger.Warn("cache write failed", "error", err)
	}
	return svg, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeStructural, errors.ErrCodeInvalidArgument, errors.ErrCodeUnknownMember,
		errors.ErrCodeCountMismatch, errors.ErrCodeInvalidAllele, errors.ErrCodeAlleleFrequency,
		errors.ErrCodeNameFormat, errors.ErrCodeShapeMismatch, errors.ErrCodeMutationModel,
		errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(code)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
