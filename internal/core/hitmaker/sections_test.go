package hitmaker

import (
	"math"
	"testing"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestSectionEnergy(t *testing.T) {
	tests := []struct {
		name    string
		section string
		bpm     int
		want    float64
	}{
		{"intro at moderate tempo", "Intro", 120, 0.3},
		{"verse at moderate tempo", "Verse 1", 120, 0.5},
		{"chorus at moderate tempo", "Chorus", 128, 0.8},
		{"bridge at moderate tempo", "Bridge", 120, 0.6},
		{"outro at moderate tempo", "Outro", 120, 0.4},
		{"drop at moderate tempo", "Drop", 120, 0.9},
		{"unknown name falls back to 0.5", "Interlude", 120, 0.5},
		{"fast tempo scales up", "Verse 1", 150, 0.6},
		{"fast tempo clamps drop to 1", "Drop", 160, 1.0},
		{"slow tempo scales down", "Chorus", 80, 0.8 * 0.8},
		{"matching is case-insensitive", "FINAL CHORUS", 120, 0.8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sectionEnergy(tc.section, tc.bpm)
			if !approxEqual(got, tc.want) {
				t.Fatalf("sectionEnergy(%q, %d) = %v, want %v", tc.section, tc.bpm, got, tc.want)
			}
		})
	}
}

func TestSectionTension(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		total   int
		section string
		want    float64
	}{
		{"zero total is neutral", 0, 0, "", 0.5},
		{"start of song sits at floor", 0, 8, "Intro", 0.1},
		{"peak near two-thirds", 5, 8, "Verse 2", 0.9},
		{"bridge boost clamps at 1", 5, 8, "Bridge", 1.0},
		{"late section eases off", 7, 8, "Outro", 1.0 - (0.875-0.65)*1.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sectionTension(tc.index, tc.total, tc.section)
			if !approxEqual(got, tc.want) {
				t.Fatalf("sectionTension(%d, %d, %q) = %v, want %v", tc.index, tc.total, tc.section, got, tc.want)
			}
		})
	}
}

func TestExtractBlueprintSections(t *testing.T) {
	bp := domain.Blueprint{
		SongID: "song-1",
		BPM:    128,
		Sections: []domain.Section{
			{ID: "s1", Name: "Intro", Bars: 8, Description: "sparse opening"},
			{ID: "s2", Name: "Chorus", Bars: 16, Description: "main hook"},
		},
	}

	sections := extractBlueprintSections(bp)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}

	if sections[0].PositionIndex != 0 || sections[1].PositionIndex != 1 {
		t.Errorf("position indices not sequential: %+v", sections)
	}
	if sections[0].Notes != "8 bars, sparse opening" {
		t.Errorf("unexpected notes: %q", sections[0].Notes)
	}
	if !approxEqual(sections[1].Energy, 0.8) {
		t.Errorf("chorus energy = %v, want 0.8", sections[1].Energy)
	}
	if !approxEqual(sections[1].HookDensity, 0.8) {
		t.Errorf("chorus hook density = %v, want 0.8", sections[1].HookDensity)
	}
	if !approxEqual(sections[0].HookDensity, 0.4) {
		t.Errorf("intro hook density = %v, want 0.4", sections[0].HookDensity)
	}
}

func TestExtractManualSections_EmptyProject(t *testing.T) {
	g := buildProjectGraph(domain.ProjectDetail{
		Project: domain.Project{ID: "p1", TempoBPM: 100},
	})

	sections := extractManualSections(g)
	if len(sections) != 1 {
		t.Fatalf("expected single synthetic section, got %d", len(sections))
	}

	s := sections[0]
	if s.Name != "Full Project" {
		t.Errorf("name = %q, want Full Project", s.Name)
	}
	if !approxEqual(s.Energy, 0.5) || !approxEqual(s.Tension, 0.5) || !approxEqual(s.HookDensity, 0.4) {
		t.Errorf("synthetic section values = %+v", s)
	}
}

func TestExtractManualSections_Windows(t *testing.T) {
	detail := domain.ProjectDetail{
		Project: domain.Project{ID: "p1", TempoBPM: 120},
		Tracks: []domain.Track{
			{ID: "t1", ProjectID: "p1", InstrumentType: domain.InstrumentDrums},
			{ID: "t2", ProjectID: "p1", InstrumentType: domain.InstrumentLead},
		},
		Patterns: []domain.Pattern{
			{ID: "pat1", TrackID: "t1", StartBar: 0, LengthBars: 8},
			{ID: "pat2", TrackID: "t2", StartBar: 0, LengthBars: 4},
		},
		Notes: []domain.Note{
			{ID: "n1", PatternID: "pat1", StepIndex: 0, Pitch: 36, Velocity: 100},
			{ID: "n2", PatternID: "pat1", StepIndex: 4, Pitch: 38, Velocity: 90},
		},
	}
	g := buildProjectGraph(detail)

	sections := extractManualSections(g)
	// Patterns end at bar 8 but the timeline floor is 16 bars: four windows.
	if len(sections) != 4 {
		t.Fatalf("expected 4 windows, got %d", len(sections))
	}

	// Window 0 overlaps both patterns: base 0.30, drum+lead boost 1.3x,
	// then note density boost of (2 notes / 2 patterns) * 0.02.
	want := 0.3*1.3 + 0.02
	if !approxEqual(sections[0].Energy, want) {
		t.Errorf("window 0 energy = %v, want %v", sections[0].Energy, want)
	}
	if !approxEqual(sections[0].HookDensity, sections[0].Energy*0.7) {
		t.Errorf("hook density should be energy*0.7")
	}
	if sections[0].Name != "Section 1 (bars 0-4)" {
		t.Errorf("window name = %q", sections[0].Name)
	}

	// Windows past bar 8 have no overlapping patterns.
	if !approxEqual(sections[3].Energy, 0) {
		t.Errorf("empty window energy = %v, want 0", sections[3].Energy)
	}
}

func TestManualWindowEnergy_Overlap(t *testing.T) {
	tests := []struct {
		name             string
		startBar, endBar int
		patternStart     int
		patternLen       int
		wantOverlap      bool
	}{
		{"pattern inside window", 0, 4, 1, 2, true},
		{"pattern spans window", 4, 8, 0, 16, true},
		{"pattern ends at window start", 4, 8, 0, 4, false},
		{"pattern starts at window end", 0, 4, 4, 4, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := projectGraph{Tracks: []trackView{{
				InstrumentType: domain.InstrumentBass,
				Patterns:       []patternView{{StartBar: tc.patternStart, LengthBars: tc.patternLen}},
			}}}
			got := manualWindowEnergy(g, tc.startBar, tc.endBar)
			if tc.wantOverlap && got == 0 {
				t.Fatalf("expected overlap energy, got 0")
			}
			if !tc.wantOverlap && got != 0 {
				t.Fatalf("expected no overlap, got %v", got)
			}
		})
	}
}
