package domain

import "time"

// Instrument types available for manual tracks.
const (
	InstrumentDrums  = "drums"
	InstrumentBass   = "bass"
	InstrumentChords = "chords"
	InstrumentLead   = "lead"
	InstrumentFX     = "fx"
	InstrumentVocal  = "vocal"
)

// Project is a user-built song on a bar/step grid.
type Project struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TempoBPM      int       `json:"tempo_bpm"`
	TimeSignature string    `json:"time_signature"`
	Key           string    `json:"key,omitempty"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Track is one instrument channel within a project.
type Track struct {
	ID             string  `json:"id"`
	ProjectID      string  `json:"project_id"`
	Name           string  `json:"name"`
	InstrumentType string  `json:"instrument_type"`
	ChannelIndex   int     `json:"channel_index"`
	Volume         float64 `json:"volume"`
	Pan            float64 `json:"pan"`
	Muted          bool    `json:"muted"`
	Solo           bool    `json:"solo"`
}

// Pattern is a placed clip on a track's timeline, measured in bars.
type Pattern struct {
	ID         string `json:"id"`
	TrackID    string `json:"track_id"`
	Name       string `json:"name"`
	LengthBars int    `json:"length_bars"`
	StartBar   int    `json:"start_bar"`
}

// Note is one step-grid event inside a pattern.
type Note struct {
	ID        string `json:"id"`
	PatternID string `json:"pattern_id"`
	StepIndex int    `json:"step_index"`
	Pitch     int    `json:"pitch"`    // MIDI pitch 0-127
	Velocity  int    `json:"velocity"` // 0-127
}

// ProjectDetail is the full aggregate for one project. Tracks, patterns and
// notes are flat lists carrying their parent ids, in creation order.
type ProjectDetail struct {
	Project  Project   `json:"project"`
	Tracks   []Track   `json:"tracks"`
	Patterns []Pattern `json:"patterns"`
	Notes    []Note    `json:"notes"`
}
