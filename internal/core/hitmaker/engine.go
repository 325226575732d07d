// Package hitmaker analyzes songs for commercial potential using
// deterministic heuristics. It derives a "Song DNA" profile (per-section
// energy, tension and hook density), scores it on seven weighted factors,
// and can blend named artistic influences into the profile to produce
// creative suggestions.
//
// The engine is stateless: every call is a pure function of its inputs and
// fixed lookup tables, so it is safe for concurrent use. Degenerate inputs
// (empty projects, missing lyrics, unrecognized genres or influence names)
// degrade to documented defaults and never produce an error.
package hitmaker

import (
	"github.com/calliope-labs/songforge/internal/core/domain"
)

// Engine performs song analysis and influence blending.
type Engine struct{}

// New returns a ready-to-use Engine.
func New() *Engine {
	return &Engine{}
}

// Source is the tagged union of the two analyzable song representations.
// It is sealed: only BlueprintSource and ProjectSource implement it.
type Source interface {
	isSource()
}

// BlueprintSource wraps an AI-generated blueprint for analysis.
type BlueprintSource struct {
	Blueprint domain.Blueprint
}

func (BlueprintSource) isSource() {}

// ProjectSource wraps a manual project aggregate for analysis.
type ProjectSource struct {
	Detail domain.ProjectDetail
}

func (ProjectSource) isSource() {}

// Analyze dispatches on the source variant. Both paths converge on the same
// DNA shape and share the scoring and insight helpers.
func (e *Engine) Analyze(src Source) domain.HitMakerAnalysis {
	switch s := src.(type) {
	case BlueprintSource:
		return e.AnalyzeBlueprint(s.Blueprint)
	case ProjectSource:
		return e.AnalyzeProject(s.Detail)
	}
	// Source is sealed; no further variants exist.
	return domain.HitMakerAnalysis{}
}

// AnalyzeBlueprint derives DNA, score and insights from a generated blueprint.
func (e *Engine) AnalyzeBlueprint(bp domain.Blueprint) domain.HitMakerAnalysis {
	sections := extractBlueprintSections(bp)

	id := bp.SongID
	dna := domain.SongDNA{
		BlueprintID:        &id,
		ManualProjectID:    nil,
		Sections:           sections,
		GlobalEnergyCurve:  energyCurve(sections),
		GlobalTensionCurve: tensionCurve(sections),
		DominantMood:       inferBlueprintMood(bp),
		GenreGuess:         inferBlueprintGenre(bp),
		StructureNotes:     blueprintStructureNotes(sections),
	}

	score := blueprintHitScore(bp, sections)

	return domain.HitMakerAnalysis{
		DNA:           dna,
		Score:         score,
		Commentary:    commentary(dna, score),
		Risks:         risks(dna, score),
		Opportunities: opportunities(dna, score),
	}
}

// AnalyzeProject derives DNA, score and insights from a manual project.
func (e *Engine) AnalyzeProject(detail domain.ProjectDetail) domain.HitMakerAnalysis {
	g := buildProjectGraph(detail)
	sections := extractManualSections(g)

	id := detail.Project.ID
	dna := domain.SongDNA{
		BlueprintID:        nil,
		ManualProjectID:    &id,
		Sections:           sections,
		GlobalEnergyCurve:  energyCurve(sections),
		GlobalTensionCurve: tensionCurve(sections),
		DominantMood:       inferProjectMood(g),
		GenreGuess:         inferProjectGenre(g),
		StructureNotes:     manualStructureNotes(g, sections),
	}

	score := manualHitScore(g, sections)

	return domain.HitMakerAnalysis{
		DNA:           dna,
		Score:         score,
		Commentary:    commentary(dna, score),
		Risks:         risks(dna, score),
		Opportunities: opportunities(dna, score),
	}
}

func energyCurve(sections []domain.SectionEnergy) []float64 {
	curve := make([]float64, len(sections))
	for i, s := range sections {
		curve[i] = s.Energy
	}
	return curve
}

func tensionCurve(sections []domain.SectionEnergy) []float64 {
	curve := make([]float64, len(sections))
	for i, s := range sections {
		curve[i] = s.Tension
	}
	return curve
}

// projectGraph is the nested view of a manual project the extractors walk.
// ProjectDetail stores tracks/patterns/notes as flat parent-keyed lists; the
// graph regroups them per track while preserving creation order.
type projectGraph struct {
	ID       string
	TempoBPM int
	Tracks   []trackView
}

type trackView struct {
	InstrumentType string
	Patterns       []patternView
}

type patternView struct {
	StartBar   int
	LengthBars int
	NoteCount  int
}

func buildProjectGraph(detail domain.ProjectDetail) projectGraph {
	notesPerPattern := make(map[string]int, len(detail.Patterns))
	for _, n := range detail.Notes {
		notesPerPattern[n.PatternID]++
	}

	patternsPerTrack := make(map[string][]patternView, len(detail.Tracks))
	for _, p := range detail.Patterns {
		patternsPerTrack[p.TrackID] = append(patternsPerTrack[p.TrackID], patternView{
			StartBar:   p.StartBar,
			LengthBars: p.LengthBars,
			NoteCount:  notesPerPattern[p.ID],
		})
	}

	g := projectGraph{
		ID:       detail.Project.ID,
		TempoBPM: detail.Project.TempoBPM,
		Tracks:   make([]trackView, 0, len(detail.Tracks)),
	}
	for _, t := range detail.Tracks {
		g.Tracks = append(g.Tracks, trackView{
			InstrumentType: t.InstrumentType,
			Patterns:       patternsPerTrack[t.ID],
		})
	}
	return g
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
