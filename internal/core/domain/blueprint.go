package domain

// Section types used in generated blueprints.
const (
	SectionIntro      = "intro"
	SectionVerse      = "verse"
	SectionPreChorus  = "pre_chorus"
	SectionChorus     = "chorus"
	SectionBridge     = "bridge"
	SectionDrop       = "drop"
	SectionOutro      = "outro"
	SectionMixSegment = "mix_segment"
)

// Section is one structural unit of a generated blueprint.
type Section struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Bars        int      `json:"bars"`
	Mood        string   `json:"mood"`
	Description string   `json:"description"`
	Instruments []string `json:"instruments"`
}

// VocalStyle describes the suggested vocal delivery for a blueprint.
type VocalStyle struct {
	Gender string `json:"gender"` // male, female, mixed, auto
	Tone   string `json:"tone"`
	Energy string `json:"energy"` // low, medium, high
	Accent string `json:"accent,omitempty"`
}

// Blueprint is an AI-generated song skeleton: ordered sections, per-section
// lyrics keyed by section id, and tempo/key/vocal metadata.
type Blueprint struct {
	SongID     string            `json:"song_id"`
	Title      string            `json:"title"`
	Genre      string            `json:"genre"`
	Mood       string            `json:"mood"`
	BPM        int               `json:"bpm"`
	Key        string            `json:"key"`
	Sections   []Section         `json:"sections"`
	Lyrics     map[string]string `json:"lyrics"`
	VocalStyle VocalStyle        `json:"vocal_style"`
	Notes      string            `json:"notes,omitempty"`
}

// BlueprintRequest is the user-facing description a generator turns into a Blueprint.
type BlueprintRequest struct {
	Prompt          string `json:"prompt"`
	Genre           string `json:"genre"`
	Mood            string `json:"mood"`
	BPM             int    `json:"bpm,omitempty"`
	Key             string `json:"key,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	ReferenceText   string `json:"reference_text,omitempty"`
}
