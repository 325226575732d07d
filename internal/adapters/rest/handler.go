// Package rest exposes the application services over HTTP using the
// standard library router.
package rest

import (
	"net/http"

	"github.com/calliope-labs/songforge/internal/core/ports"
	"github.com/calliope-labs/songforge/internal/core/services"
)

// AppInfo describes the running application for the config endpoint.
type AppInfo struct {
	Name          string
	Version       string
	AudioProvider string
	// ExternalAudio reports whether the external provider, its base URL
	// and its API key are all configured.
	ExternalAudio bool
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	blueprints *services.BlueprintService
	projects   *services.ProjectService
	hitmaker   *services.HitMakerService
	renders    *services.RenderService
	vocals     ports.VocalSynthesizer
	info       AppInfo
	router     *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes. vocals may
// be nil when no TTS provider is configured.
func NewHandler(
	blueprints *services.BlueprintService,
	projects *services.ProjectService,
	hm *services.HitMakerService,
	renders *services.RenderService,
	vocals ports.VocalSynthesizer,
	info AppInfo,
) *Handler {
	h := &Handler{
		blueprints: blueprints,
		projects:   projects,
		hitmaker:   hm,
		renders:    renders,
		vocals:     vocals,
		info:       info,
		router:     http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.HandleFunc("GET /api/health", h.HealthCheck)
	h.router.HandleFunc("GET /api/config", h.GetConfig)

	// Blueprint generation
	h.router.HandleFunc("POST /api/song/blueprint", h.GenerateBlueprint)
	h.router.HandleFunc("GET /api/song/blueprint/{id}", h.GetBlueprint)

	// Manual project editing
	h.router.HandleFunc("POST /api/manual/projects", h.CreateProject)
	h.router.HandleFunc("GET /api/manual/projects", h.ListProjects)
	h.router.HandleFunc("GET /api/manual/projects/{id}", h.GetProject)
	h.router.HandleFunc("DELETE /api/manual/projects/{id}", h.DeleteProject)
	h.router.HandleFunc("POST /api/manual/projects/{id}/tracks", h.CreateTrack)
	h.router.HandleFunc("PATCH /api/manual/tracks/{id}", h.UpdateTrack)
	h.router.HandleFunc("DELETE /api/manual/tracks/{id}", h.DeleteTrack)
	h.router.HandleFunc("POST /api/manual/tracks/{id}/patterns", h.CreatePattern)
	h.router.HandleFunc("PATCH /api/manual/patterns/{id}", h.UpdatePattern)
	h.router.HandleFunc("DELETE /api/manual/patterns/{id}", h.DeletePattern)
	h.router.HandleFunc("GET /api/manual/patterns/{id}/notes", h.ListPatternNotes)
	h.router.HandleFunc("POST /api/manual/patterns/{id}/notes/bulk", h.ReplacePatternNotes)

	// HitMaker analysis and influence blending
	h.router.HandleFunc("POST /api/hitmaker/analyze/blueprint/{id}", h.AnalyzeBlueprint)
	h.router.HandleFunc("POST /api/hitmaker/analyze/manual/{id}", h.AnalyzeManualProject)
	h.router.HandleFunc("POST /api/hitmaker/influence/blueprint", h.InfluenceBlueprint)
	h.router.HandleFunc("POST /api/hitmaker/influence/manual", h.InfluenceManualProject)

	// Instrumental renders
	h.router.HandleFunc("POST /api/instrumental/renders", h.CreateRender)
	h.router.HandleFunc("GET /api/instrumental/renders/{id}", h.GetRender)

	// Vocal previews
	h.router.HandleFunc("POST /api/vocals/preview", h.PreviewVocals)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Songforge is live 🎵"})
}
