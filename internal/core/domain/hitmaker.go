package domain

// SectionEnergy is the per-section analysis record of a song's DNA. Values
// for energy, tension and hook density are normalized to [0,1].
type SectionEnergy struct {
	Name          string  `json:"name"`
	PositionIndex int     `json:"position_index"`
	Energy        float64 `json:"energy"`
	Tension       float64 `json:"tension"`
	HookDensity   float64 `json:"hook_density"`
	Notes         string  `json:"notes,omitempty"`
}

// SongDNA is the profile of one song's structure and emotional arc. Exactly
// one of BlueprintID and ManualProjectID is non-nil; the curves run parallel
// to Sections, one value per section.
type SongDNA struct {
	BlueprintID        *string         `json:"blueprint_id"`
	ManualProjectID    *string         `json:"manual_project_id"`
	Sections           []SectionEnergy `json:"sections"`
	GlobalEnergyCurve  []float64       `json:"global_energy_curve"`
	GlobalTensionCurve []float64       `json:"global_tension_curve"`
	DominantMood       string          `json:"dominant_mood"`
	GenreGuess         string          `json:"genre_guess"`
	StructureNotes     []string        `json:"structure_notes"`
}

// HitScoreBreakdown is the seven-factor commercial potential score.
// Every field lies in [0,100].
type HitScoreBreakdown struct {
	Overall       float64 `json:"overall"`
	HookStrength  float64 `json:"hook_strength"`
	Structure     float64 `json:"structure"`
	LyricsEmotion float64 `json:"lyrics_emotion"`
	GenreFit      float64 `json:"genre_fit"`
	Originality   float64 `json:"originality"`
	ReplayValue   float64 `json:"replay_value"`
}

// HitMakerAnalysis is the externally returned unit of one analysis call.
type HitMakerAnalysis struct {
	DNA           SongDNA           `json:"dna"`
	Score         HitScoreBreakdown `json:"score"`
	Commentary    []string          `json:"commentary"`
	Risks         []string          `json:"risks"`
	Opportunities []string          `json:"opportunities"`
}

// InfluenceDescriptor names an artistic influence and how strongly to apply
// it. Names are matched case-insensitively by substring against a small
// fixed vocabulary; the match is a creative heuristic, not a classifier.
type InfluenceDescriptor struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"` // 0.0-1.0
}

// HitMakerInfluenceResponse carries the influence-adjusted DNA and the five
// creative suggestion lists.
type HitMakerInfluenceResponse struct {
	AdjustedDNA          SongDNA  `json:"adjusted_dna"`
	HookSuggestions      []string `json:"hook_suggestions"`
	ChorusRewriteIdeas   []string `json:"chorus_rewrite_ideas"`
	StructureSuggestions []string `json:"structure_suggestions"`
	InstrumentationIdeas []string `json:"instrumentation_ideas"`
	VocalStyleNotes      []string `json:"vocal_style_notes"`
}
