package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/calliope-labs/songforge/internal/core/domain"
	"github.com/calliope-labs/songforge/internal/core/services"
)

var validInstruments = map[string]bool{
	domain.InstrumentDrums:  true,
	domain.InstrumentBass:   true,
	domain.InstrumentChords: true,
	domain.InstrumentLead:   true,
	domain.InstrumentFX:     true,
	domain.InstrumentVocal:  true,
}

type createProjectRequest struct {
	Name          string `json:"name"`
	TempoBPM      int    `json:"tempo_bpm"`
	TimeSignature string `json:"time_signature"`
	Key           string `json:"key"`
	Description   string `json:"description"`
}

// CreateProject handles POST /api/manual/projects
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.TempoBPM == 0 {
		req.TempoBPM = 120
	}
	if req.TempoBPM < 20 || req.TempoBPM > 300 {
		writeError(w, http.StatusBadRequest, "tempo_bpm must be between 20 and 300")
		return
	}

	project, err := h.projects.CreateProject(r.Context(), domain.Project{
		Name:          req.Name,
		TempoBPM:      req.TempoBPM,
		TimeSignature: req.TimeSignature,
		Key:           req.Key,
		Description:   req.Description,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

// ListProjects handles GET /api/manual/projects
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// GetProject handles GET /api/manual/projects/{id}. It returns the full
// aggregate: project, tracks, patterns and notes.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	detail, err := h.projects.GetProjectDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// DeleteProject handles DELETE /api/manual/projects/{id}
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createTrackRequest struct {
	Name           string `json:"name"`
	InstrumentType string `json:"instrument_type"`
	ChannelIndex   int    `json:"channel_index"`
}

// CreateTrack handles POST /api/manual/projects/{id}/tracks
func (h *Handler) CreateTrack(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req createTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !validInstruments[req.InstrumentType] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown instrument_type %q", req.InstrumentType))
		return
	}

	track, err := h.projects.CreateTrack(r.Context(), r.PathValue("id"), domain.Track{
		Name:           req.Name,
		InstrumentType: req.InstrumentType,
		ChannelIndex:   req.ChannelIndex,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, track)
}

type updateTrackRequest struct {
	Name         *string  `json:"name"`
	Volume       *float64 `json:"volume"`
	Pan          *float64 `json:"pan"`
	Muted        *bool    `json:"muted"`
	Solo         *bool    `json:"solo"`
	ChannelIndex *int     `json:"channel_index"`
}

// UpdateTrack handles PATCH /api/manual/tracks/{id}. Omitted fields are
// left unchanged.
func (h *Handler) UpdateTrack(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req updateTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Volume != nil && (*req.Volume < 0 || *req.Volume > 1) {
		writeError(w, http.StatusBadRequest, "volume must be between 0 and 1")
		return
	}
	if req.Pan != nil && (*req.Pan < -1 || *req.Pan > 1) {
		writeError(w, http.StatusBadRequest, "pan must be between -1 and 1")
		return
	}

	track, err := h.projects.UpdateTrack(r.Context(), r.PathValue("id"), services.TrackUpdate{
		Name:         req.Name,
		Volume:       req.Volume,
		Pan:          req.Pan,
		Muted:        req.Muted,
		Solo:         req.Solo,
		ChannelIndex: req.ChannelIndex,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "track not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, track)
}

// DeleteTrack handles DELETE /api/manual/tracks/{id}
func (h *Handler) DeleteTrack(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.DeleteTrack(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "track not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createPatternRequest struct {
	Name       string `json:"name"`
	LengthBars int    `json:"length_bars"`
	StartBar   int    `json:"start_bar"`
}

// CreatePattern handles POST /api/manual/tracks/{id}/patterns
func (h *Handler) CreatePattern(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req createPatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.LengthBars < 1 {
		writeError(w, http.StatusBadRequest, "length_bars must be at least 1")
		return
	}
	if req.StartBar < 0 {
		writeError(w, http.StatusBadRequest, "start_bar must not be negative")
		return
	}

	pattern, err := h.projects.CreatePattern(r.Context(), r.PathValue("id"), domain.Pattern{
		Name:       req.Name,
		LengthBars: req.LengthBars,
		StartBar:   req.StartBar,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "track not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, pattern)
}

type updatePatternRequest struct {
	Name       *string `json:"name"`
	LengthBars *int    `json:"length_bars"`
	StartBar   *int    `json:"start_bar"`
}

// UpdatePattern handles PATCH /api/manual/patterns/{id}
func (h *Handler) UpdatePattern(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req updatePatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.LengthBars != nil && *req.LengthBars < 1 {
		writeError(w, http.StatusBadRequest, "length_bars must be at least 1")
		return
	}
	if req.StartBar != nil && *req.StartBar < 0 {
		writeError(w, http.StatusBadRequest, "start_bar must not be negative")
		return
	}

	pattern, err := h.projects.UpdatePattern(r.Context(), r.PathValue("id"), services.PatternUpdate{
		Name:       req.Name,
		LengthBars: req.LengthBars,
		StartBar:   req.StartBar,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "pattern not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, pattern)
}

// DeletePattern handles DELETE /api/manual/patterns/{id}
func (h *Handler) DeletePattern(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.DeletePattern(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "pattern not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPatternNotes handles GET /api/manual/patterns/{id}/notes
func (h *Handler) ListPatternNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.projects.ListPatternNotes(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "pattern not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

type noteRequest struct {
	StepIndex int `json:"step_index"`
	Pitch     int `json:"pitch"`
	Velocity  int `json:"velocity"`
}

type replaceNotesRequest struct {
	Notes []noteRequest `json:"notes"`
}

// ReplacePatternNotes handles POST /api/manual/patterns/{id}/notes/bulk.
// The submitted list replaces the pattern's notes wholesale.
func (h *Handler) ReplacePatternNotes(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req replaceNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	notes := make([]domain.Note, 0, len(req.Notes))
	for i, n := range req.Notes {
		if n.StepIndex < 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("note %d: step_index must not be negative", i))
			return
		}
		if n.Pitch < 0 || n.Pitch > 127 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("note %d: pitch must be between 0 and 127", i))
			return
		}
		if n.Velocity < 0 || n.Velocity > 127 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("note %d: velocity must be between 0 and 127", i))
			return
		}
		notes = append(notes, domain.Note{StepIndex: n.StepIndex, Pitch: n.Pitch, Velocity: n.Velocity})
	}

	saved, err := h.projects.ReplacePatternNotes(r.Context(), r.PathValue("id"), notes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "pattern not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, saved)
}
