package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

type generateBlueprintRequest struct {
	Prompt          string `json:"prompt"`
	Genre           string `json:"genre"`
	Mood            string `json:"mood"`
	BPM             int    `json:"bpm"`
	Key             string `json:"key"`
	DurationSeconds int    `json:"duration_seconds"`
	ReferenceText   string `json:"reference_text"`
}

// GenerateBlueprint handles POST /api/song/blueprint
func (h *Handler) GenerateBlueprint(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req generateBlueprintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	if req.BPM < 0 || req.BPM > 300 {
		writeError(w, http.StatusBadRequest, "bpm must be between 0 and 300")
		return
	}

	bp, err := h.blueprints.Generate(r.Context(), domain.BlueprintRequest{
		Prompt:          req.Prompt,
		Genre:           req.Genre,
		Mood:            req.Mood,
		BPM:             req.BPM,
		Key:             req.Key,
		DurationSeconds: req.DurationSeconds,
		ReferenceText:   req.ReferenceText,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, bp)
}

// GetBlueprint handles GET /api/song/blueprint/{id}
func (h *Handler) GetBlueprint(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	bp, err := h.blueprints.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "blueprint not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, bp)
}
