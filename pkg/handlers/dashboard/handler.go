// Package dashboard exposes datasets, sessions and views over HTTP.
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/de-tools/promo-atlas/pkg/adapters"
	"github.com/de-tools/promo-atlas/pkg/models/api"
	"github.com/de-tools/promo-atlas/pkg/models/domain"
	"github.com/de-tools/promo-atlas/pkg/services/registry"
	"github.com/de-tools/promo-atlas/pkg/services/session"
	"github.com/de-tools/promo-atlas/pkg/services/views"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	registry registry.Registry
	sessions *session.Manager
	views    views.Builder
}

func NewHandler(reg registry.Registry, sessions *session.Manager, builder views.Builder) *Handler {
	return &Handler{
		registry: reg,
		sessions: sessions,
		views:    builder,
	}
}

func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var infos []api.DatasetInfo
	for _, kind := range domain.AllKinds() {
		loaded := h.registry.IsLoaded(kind)
		var ds *domain.Dataset
		if loaded {
			ds, _ = h.registry.Get(ctx, kind)
		}
		infos = append(infos, adapters.MapDatasetToInfo(kind, ds, loaded))
	}
	writeJSON(ctx, w, http.StatusOK, infos)
}

func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, err := domain.ParseDatasetKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(ctx, w, http.StatusNotFound, err)
		return
	}

	ds, err := h.registry.Get(ctx, kind)
	if err != nil {
		writeError(ctx, w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, adapters.MapDatasetToInfo(kind, ds, true))
}

func (h *Handler) InvalidateDataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, err := domain.ParseDatasetKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(ctx, w, http.StatusNotFound, err)
		return
	}

	h.registry.Invalidate(kind)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := h.sessions.Create()
	writeJSON(ctx, w, http.StatusCreated, adapters.MapFilterStateToAPI(s.Snapshot()))
}

func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s, ok := h.sessions.Get(chi.URLParam(r, "session"))
	if !ok {
		writeError(ctx, w, http.StatusNotFound, errSessionNotFound)
		return
	}
	writeJSON(ctx, w, http.StatusOK, adapters.MapFilterStateToAPI(s.Snapshot()))
}

type updateFilterRequest struct {
	Values []string `json:"values"`
}

func (h *Handler) UpdateFilter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s, ok := h.sessions.Get(chi.URLParam(r, "session"))
	if !ok {
		writeError(ctx, w, http.StatusNotFound, errSessionNotFound)
		return
	}

	var req updateFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	state, err := s.Update(ctx, chi.URLParam(r, "dimension"), req.Values)
	if err != nil {
		status := http.StatusBadRequest
		if domain.IsSchemaError(err) {
			status = http.StatusServiceUnavailable
		}
		writeError(ctx, w, status, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, adapters.MapFilterStateToAPI(state))
}

func (h *Handler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s, ok := h.sessions.Get(chi.URLParam(r, "session"))
	if !ok {
		writeError(ctx, w, http.StatusNotFound, errSessionNotFound)
		return
	}
	writeJSON(ctx, w, http.StatusOK, adapters.MapFilterStateToAPI(s.Reset()))
}

func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s, ok := h.sessions.Get(chi.URLParam(r, "session"))
	if !ok {
		writeError(ctx, w, http.StatusNotFound, errSessionNotFound)
		return
	}

	view, err := h.views.Build(ctx, chi.URLParam(r, "view"), s.Snapshot())
	if err != nil {
		status := http.StatusNotFound
		if domain.IsSchemaError(err) {
			// Data unavailable for this view only; other views stay up.
			status = http.StatusServiceUnavailable
		}
		writeError(ctx, w, status, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, adapters.MapFilteredViewToAPI(view))
}

func (h *Handler) ListViews(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.views.Views())
}

func (h *Handler) ListDimensions(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, adapters.MapDimensionsToAPI(h.sessions.Dimensions()))
}

var errSessionNotFound = &notFoundError{"session not found"}

type notFoundError struct{ msg string }

func (e *notFoundError) Error() string { return e.msg }

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	zerolog.Ctx(ctx).Warn().Err(err).Int("status", status).Msg("request failed")
	writeJSON(ctx, w, status, api.Error{Error: err.Error()})
}
