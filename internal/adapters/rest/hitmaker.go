package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

// maxInfluenceWeightSum bounds the combined pull of all influences so a
// blend stays recognizably derived from the source song.
const maxInfluenceWeightSum = 1.2

// AnalyzeBlueprint handles POST /api/hitmaker/analyze/blueprint/{id}
func (h *Handler) AnalyzeBlueprint(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.hitmaker.AnalyzeBlueprint(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "blueprint not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// AnalyzeManualProject handles POST /api/hitmaker/analyze/manual/{id}
func (h *Handler) AnalyzeManualProject(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.hitmaker.AnalyzeProject(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

type influenceEntry struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

type influenceRequest struct {
	BlueprintID     string           `json:"blueprint_id"`
	ManualProjectID string           `json:"manual_project_id"`
	Influences      []influenceEntry `json:"influences"`
	TargetMood      string           `json:"target_mood"`
	TargetGenre     string           `json:"target_genre"`
}

// validateInfluences enforces the caller preconditions on an influence
// blend: every weight in [0,1] and a combined weight of at most 1.2.
func validateInfluences(entries []influenceEntry) ([]domain.InfluenceDescriptor, error) {
	var sum float64
	influences := make([]domain.InfluenceDescriptor, 0, len(entries))
	for i, in := range entries {
		if in.Name == "" {
			return nil, fmt.Errorf("influence %d: name is required", i)
		}
		if in.Weight < 0 || in.Weight > 1 {
			return nil, fmt.Errorf("influence %d: weight must be between 0 and 1", i)
		}
		sum += in.Weight
		influences = append(influences, domain.InfluenceDescriptor{Name: in.Name, Weight: in.Weight})
	}
	if sum > maxInfluenceWeightSum {
		return nil, fmt.Errorf("combined influence weight %.2f exceeds %.1f", sum, maxInfluenceWeightSum)
	}
	return influences, nil
}

// InfluenceBlueprint handles POST /api/hitmaker/influence/blueprint
func (h *Handler) InfluenceBlueprint(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req influenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.BlueprintID == "" {
		writeError(w, http.StatusBadRequest, "blueprint_id is required")
		return
	}
	influences, err := validateInfluences(req.Influences)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.hitmaker.InfluenceBlueprint(r.Context(), req.BlueprintID, influences, req.TargetMood, req.TargetGenre)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "blueprint not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// InfluenceManualProject handles POST /api/hitmaker/influence/manual
func (h *Handler) InfluenceManualProject(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req influenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ManualProjectID == "" {
		writeError(w, http.StatusBadRequest, "manual_project_id is required")
		return
	}
	influences, err := validateInfluences(req.Influences)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.hitmaker.InfluenceProject(r.Context(), req.ManualProjectID, influences, req.TargetMood, req.TargetGenre)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
