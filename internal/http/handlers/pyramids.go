package handlers

import (
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/pyramid-service/internal/app/pyramids"
	"github.com/preston-bernstein/pyramid-service/internal/document"
	"github.com/preston-bernstein/pyramid-service/internal/snapshots"
)

type savedResponse struct {
	ID      string            `json:"id"`
	Pyramid document.Document `json:"pyramid"`
}

type summaryResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Theme   string `json:"theme"`
	Teams   int    `json:"teams"`
	SavedAt string `json:"savedAt"`
}

// Pyramids lists stored pyramids (GET) or generates and stores a new one (POST).
func (h *Handler) Pyramids(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.Method {
	case nethttp.MethodGet:
		h.listPyramids(w, r)
	case nethttp.MethodPost:
		h.createPyramid(w, r)
	default:
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

// PyramidByID serves GET /pyramids/{id} and POST /pyramids/{id}/resample.
func (h *Handler) PyramidByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/pyramids/")
	rawID, action, _ := strings.Cut(rest, "/")
	id, err := url.PathUnescape(rawID)
	if err != nil || !snapshots.ValidID(id) {
		writeError(w, r, nethttp.StatusBadRequest, "invalid pyramid id", h.logger)
		return
	}

	switch action {
	case "":
		if r.Method != nethttp.MethodGet {
			writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
			return
		}
		h.getPyramid(w, r, id)
	case "resample":
		if r.Method != nethttp.MethodPost {
			writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
			return
		}
		h.resamplePyramid(w, r, id)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

func (h *Handler) listPyramids(w nethttp.ResponseWriter, r *nethttp.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	out := make([]summaryResponse, 0, len(items))
	for _, s := range items {
		out = append(out, summaryResponse{
			ID:      s.ID,
			Title:   s.Title,
			Theme:   s.Theme,
			Teams:   s.Teams,
			SavedAt: s.SavedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"pyramids": out}, h.logger)
}

func (h *Handler) createPyramid(w nethttp.ResponseWriter, r *nethttp.Request) {
	req, err := decodeRequest(w, r)
	if err == nil {
		err = h.validate(req)
	}
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	saved, err := h.svc.Create(r.Context(), req.generateOptions())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	h.writeSaved(w, saved)
}

func (h *Handler) getPyramid(w nethttp.ResponseWriter, r *nethttp.Request, id string) {
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, document.ToDocument(p), h.logger)
}

func (h *Handler) resamplePyramid(w nethttp.ResponseWriter, r *nethttp.Request, id string) {
	req, err := decodeRequest(w, r)
	if err == nil {
		err = h.validate(req)
	}
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	saved, err := h.svc.ResampleStored(r.Context(), id, req.resampleOptions())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	h.writeSaved(w, saved)
}

func (h *Handler) writeSaved(w nethttp.ResponseWriter, saved pyramids.Saved) {
	w.Header().Set("Location", "/pyramids/"+url.PathEscape(saved.ID))
	writeJSON(w, nethttp.StatusCreated, savedResponse{ID: saved.ID, Pyramid: document.ToDocument(saved.Pyramid)}, h.logger)
}
