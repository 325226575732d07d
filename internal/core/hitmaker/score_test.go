package hitmaker

import (
	"testing"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

func standardBlueprint() domain.Blueprint {
	return domain.Blueprint{
		SongID: "song-1",
		Title:  "Night Drive",
		Genre:  "pop",
		Mood:   "energetic",
		BPM:    120,
		Key:    "C major",
		Sections: []domain.Section{
			{ID: "s1", Type: domain.SectionIntro, Name: "Intro", Bars: 8},
			{ID: "s2", Type: domain.SectionVerse, Name: "Verse 1", Bars: 16},
			{ID: "s3", Type: domain.SectionChorus, Name: "Chorus", Bars: 16},
			{ID: "s4", Type: domain.SectionVerse, Name: "Verse 2", Bars: 16},
			{ID: "s5", Type: domain.SectionChorus, Name: "Chorus", Bars: 16},
			{ID: "s6", Type: domain.SectionBridge, Name: "Bridge", Bars: 8},
			{ID: "s7", Type: domain.SectionChorus, Name: "Final Chorus", Bars: 16},
			{ID: "s8", Type: domain.SectionOutro, Name: "Outro", Bars: 8},
		},
	}
}

func TestBlueprintHitScore_HookStrength(t *testing.T) {
	bp := standardBlueprint()
	sections := extractBlueprintSections(bp)

	score := blueprintHitScore(bp, sections)

	// Chorus present at moderate tempo: base 70 plus 0.8 energy * 20.
	if !approxEqual(score.HookStrength, 86.0) {
		t.Errorf("hook strength = %v, want 86", score.HookStrength)
	}
}

func TestBlueprintHitScore_NoChorus(t *testing.T) {
	bp := domain.Blueprint{
		SongID: "song-2",
		BPM:    120,
		Sections: []domain.Section{
			{ID: "s1", Name: "Intro", Bars: 8},
			{ID: "s2", Name: "Verse 1", Bars: 16},
		},
	}
	sections := extractBlueprintSections(bp)

	score := blueprintHitScore(bp, sections)

	// No chorus: base 40 plus the 0.5 default chorus energy * 20.
	if !approxEqual(score.HookStrength, 50.0) {
		t.Errorf("hook strength = %v, want 50", score.HookStrength)
	}
}

func TestBlueprintHitScore_GenreFit(t *testing.T) {
	tests := []struct {
		name  string
		genre string
		bpm   int
		want  float64
	}{
		{"pop in range", "pop", 120, 85},
		{"pop below range", "pop", 90, 75},
		{"hiphop in range", "HipHop", 95, 85},
		{"unknown genre", "vaporwave", 120, 75},
		{"trap at upper bound", "trap", 170, 85},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bp := standardBlueprint()
			bp.Genre = tc.genre
			bp.BPM = tc.bpm
			sections := extractBlueprintSections(bp)

			score := blueprintHitScore(bp, sections)
			if !approxEqual(score.GenreFit, tc.want) {
				t.Fatalf("genre fit = %v, want %v", score.GenreFit, tc.want)
			}
		})
	}
}

func TestBlueprintHitScore_LyricsEmotion(t *testing.T) {
	bp := standardBlueprint()
	sections := extractBlueprintSections(bp)

	// No lyrics: the baseline 60.
	score := blueprintHitScore(bp, sections)
	if !approxEqual(score.LyricsEmotion, 60.0) {
		t.Errorf("lyrics emotion without lyrics = %v, want 60", score.LyricsEmotion)
	}

	// Twenty words: 60 + 20*0.5.
	bp.Lyrics = map[string]string{
		"s2": "one two three four five six seven eight nine ten",
		"s3": "one two three four five six seven eight nine ten",
	}
	score = blueprintHitScore(bp, sections)
	if !approxEqual(score.LyricsEmotion, 70.0) {
		t.Errorf("lyrics emotion with 20 words = %v, want 70", score.LyricsEmotion)
	}
}

func TestManualHitScore_EmptyProject(t *testing.T) {
	g := buildProjectGraph(domain.ProjectDetail{
		Project: domain.Project{ID: "p1", TempoBPM: 100},
	})
	sections := extractManualSections(g)

	score := manualHitScore(g, sections)

	// Single synthetic section at 0.5 energy, no tracks, no patterns.
	if !approxEqual(score.HookStrength, 70.0) {
		t.Errorf("hook strength = %v, want 70", score.HookStrength)
	}
	if !approxEqual(score.Structure, 55.0) {
		t.Errorf("structure = %v, want 55", score.Structure)
	}
	if !approxEqual(score.LyricsEmotion, 60.0) {
		t.Errorf("lyrics emotion = %v, want 60", score.LyricsEmotion)
	}
	if !approxEqual(score.GenreFit, 70.0) {
		t.Errorf("genre fit = %v, want 70", score.GenreFit)
	}
	if !approxEqual(score.Originality, 50.0) {
		t.Errorf("originality = %v, want 50", score.Originality)
	}
	if score.Overall >= 70 {
		t.Errorf("overall = %v, want < 70 for an empty project", score.Overall)
	}
}

func TestAssembleScore_ClampsToHundred(t *testing.T) {
	score := assembleScore(150, 150, 150, 150, 150)

	fields := map[string]float64{
		"overall":        score.Overall,
		"hook_strength":  score.HookStrength,
		"structure":      score.Structure,
		"lyrics_emotion": score.LyricsEmotion,
		"genre_fit":      score.GenreFit,
		"originality":    score.Originality,
		"replay_value":   score.ReplayValue,
	}
	for name, v := range fields {
		if v != 100 {
			t.Errorf("%s = %v, want clamped to 100", name, v)
		}
	}
}

func TestEnergySpread(t *testing.T) {
	tests := []struct {
		name     string
		energies []float64
		want     float64
	}{
		{"empty", nil, 0},
		{"single value", []float64{0.7}, 0},
		{"uniform", []float64{0.5, 0.5, 0.5}, 0},
		{"two-point", []float64{0.0, 1.0}, 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sections := make([]domain.SectionEnergy, len(tc.energies))
			for i, e := range tc.energies {
				sections[i] = domain.SectionEnergy{Energy: e}
			}
			got := energySpread(sections)
			if !approxEqual(got, tc.want) {
				t.Fatalf("energySpread(%v) = %v, want %v", tc.energies, got, tc.want)
			}
		})
	}
}
