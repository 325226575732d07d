package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

// CreateRender handles POST /api/instrumental/renders. Rendering is
// synchronous: the response carries the finished (or failed) job.
func (h *Handler) CreateRender(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req domain.RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SourceType != domain.RenderSourceBlueprint && req.SourceType != domain.RenderSourceManualProject {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("source_type must be %q or %q", domain.RenderSourceBlueprint, domain.RenderSourceManualProject))
		return
	}
	if req.SourceID == "" {
		writeError(w, http.StatusBadRequest, "source_id is required")
		return
	}
	if req.DurationSeconds < 0 {
		writeError(w, http.StatusBadRequest, "duration_seconds must not be negative")
		return
	}

	job, err := h.renders.CreateRender(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "render source not found")
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

// GetRender handles GET /api/instrumental/renders/{id}
func (h *Handler) GetRender(w http.ResponseWriter, r *http.Request) {
	job, err := h.renders.GetRender(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "render job not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, job)
}
