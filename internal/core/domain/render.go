package domain

import "time"

// Render job statuses.
const (
	RenderQueued     = "queued"
	RenderProcessing = "processing"
	RenderReady      = "ready"
	RenderFailed     = "failed"
)

// Render source types.
const (
	RenderSourceBlueprint     = "blueprint"
	RenderSourceManualProject = "manual_project"
)

// Instrumental engine types.
const (
	EngineFake        = "fake"
	EngineStableAudio = "stable_audio_http"
	EngineMusicGen    = "musicgen"
)

// RenderRequest asks for an instrumental render of a blueprint or project.
type RenderRequest struct {
	SourceType      string `json:"source_type"`
	SourceID        string `json:"source_id"`
	EngineType      string `json:"engine_type,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	StyleHint       string `json:"style_hint,omitempty"`
}

// RenderJob tracks one instrumental render through its lifecycle. Loudness
// is filled in asynchronously after the render is ready.
type RenderJob struct {
	ID              string    `json:"id"`
	Status          string    `json:"status"`
	EngineType      string    `json:"engine_type"`
	Model           string    `json:"model,omitempty"`
	SourceType      string    `json:"source_type"`
	SourceID        string    `json:"source_id"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
	AudioURL        string    `json:"audio_url,omitempty"`
	Loudness        *float64  `json:"loudness,omitempty"`
	ErrorMessage    string    `json:"error_message,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
