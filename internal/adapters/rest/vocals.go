package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/calliope-labs/songforge/internal/core/ports"
)

const maxVocalPreviewTextLength = 5000

type vocalPreviewRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id"`
	ModelID string `json:"model_id"`
}

// PreviewVocals handles POST /api/vocals/preview. On success the response
// body is the generated MP3 audio.
func (h *Handler) PreviewVocals(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	if h.vocals == nil {
		writeError(w, http.StatusNotImplemented, "vocal synthesis not configured")
		return
	}

	var req vocalPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if len(req.Text) > maxVocalPreviewTextLength {
		writeError(w, http.StatusBadRequest, "text must be at most 5000 characters")
		return
	}
	if req.VoiceID == "" {
		writeError(w, http.StatusBadRequest, "voice_id is required")
		return
	}

	audio, err := h.vocals.Synthesize(r.Context(), req.Text, req.VoiceID, req.ModelID)
	if err != nil {
		if errors.Is(err, ports.ErrVocalsUnavailable) {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", `inline; filename="vocal-preview.mp3"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		log.Printf("WARN rest: failed to stream vocal preview: %v", err)
	}
}
