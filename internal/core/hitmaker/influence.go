package hitmaker

import (
	"fmt"
	"strings"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

// ApplyInfluencesToBlueprint analyzes the blueprint fresh, then blends the
// given influences into a copy of its DNA and generates creative
// suggestions. The analysis result itself is never mutated.
func (e *Engine) ApplyInfluencesToBlueprint(
	bp domain.Blueprint,
	influences []domain.InfluenceDescriptor,
	targetMood, targetGenre string,
) domain.HitMakerInfluenceResponse {
	analysis := e.AnalyzeBlueprint(bp)
	adjusted := adjustDNA(analysis.DNA, influences, targetMood, targetGenre)

	return domain.HitMakerInfluenceResponse{
		AdjustedDNA:          adjusted,
		HookSuggestions:      blueprintHookSuggestions(influences),
		ChorusRewriteIdeas:   blueprintChorusIdeas(influences),
		StructureSuggestions: structureSuggestions(adjusted, influences),
		InstrumentationIdeas: instrumentationIdeas(influences, targetGenre),
		VocalStyleNotes:      vocalStyleNotes(influences),
	}
}

// ApplyInfluencesToProject is the manual-project counterpart of
// ApplyInfluencesToBlueprint. The curve transforms are shared; the hook and
// chorus suggestion generators are grid-oriented.
func (e *Engine) ApplyInfluencesToProject(
	detail domain.ProjectDetail,
	influences []domain.InfluenceDescriptor,
	targetMood, targetGenre string,
) domain.HitMakerInfluenceResponse {
	analysis := e.AnalyzeProject(detail)
	adjusted := adjustDNA(analysis.DNA, influences, targetMood, targetGenre)

	return domain.HitMakerInfluenceResponse{
		AdjustedDNA:          adjusted,
		HookSuggestions:      manualHookSuggestions(influences),
		ChorusRewriteIdeas:   manualChorusIdeas(),
		StructureSuggestions: structureSuggestions(adjusted, influences),
		InstrumentationIdeas: instrumentationIdeas(influences, targetGenre),
		VocalStyleNotes:      vocalStyleNotes(influences),
	}
}

// adjustDNA returns a deep copy of dna with the target overrides applied and
// each influence's curve transform folded in, in list order. The transforms
// are multiplicative and non-commutative, so order is preserved exactly as
// given. Curve values are intentionally not re-clamped after scaling: the
// energy transform only attenuates, while stacked tension transforms may
// push values past 1.0 (see DESIGN.md).
func adjustDNA(dna domain.SongDNA, influences []domain.InfluenceDescriptor, targetMood, targetGenre string) domain.SongDNA {
	adjusted := cloneDNA(dna)

	if targetMood != "" {
		adjusted.DominantMood = targetMood
	}
	if targetGenre != "" {
		adjusted.GenreGuess = targetGenre
	}

	for _, inf := range influences {
		name := strings.ToLower(inf.Name)
		switch {
		case strings.Contains(name, "weeknd"):
			// Dark, moody R&B: pull the energy curve down.
			factor := 0.7 + 0.3*(1-inf.Weight)
			for i := range adjusted.GlobalEnergyCurve {
				adjusted.GlobalEnergyCurve[i] *= factor
			}
		case strings.Contains(name, "billie"), strings.Contains(name, "eilish"):
			// Minimalist, tension-forward production: raise the tension curve.
			factor := 1.0 + 0.3*inf.Weight
			for i := range adjusted.GlobalTensionCurve {
				adjusted.GlobalTensionCurve[i] *= factor
			}
		}
	}

	return adjusted
}

func cloneDNA(dna domain.SongDNA) domain.SongDNA {
	out := dna
	if dna.BlueprintID != nil {
		id := *dna.BlueprintID
		out.BlueprintID = &id
	}
	if dna.ManualProjectID != nil {
		id := *dna.ManualProjectID
		out.ManualProjectID = &id
	}
	out.Sections = append([]domain.SectionEnergy(nil), dna.Sections...)
	out.GlobalEnergyCurve = append([]float64(nil), dna.GlobalEnergyCurve...)
	out.GlobalTensionCurve = append([]float64(nil), dna.GlobalTensionCurve...)
	out.StructureNotes = append([]string(nil), dna.StructureNotes...)
	return out
}

func blueprintHookSuggestions(influences []domain.InfluenceDescriptor) []string {
	out := []string{}

	for _, inf := range influences {
		name := strings.ToLower(inf.Name)
		switch {
		case strings.Contains(name, "weeknd"):
			out = append(out,
				"Use falsetto runs on sustained notes",
				"Layer dark, atmospheric vocal ad-libs")
		case strings.Contains(name, "billie"), strings.Contains(name, "eilish"):
			out = append(out,
				"Whispered, intimate delivery in verses",
				"Minimal, bass-heavy production")
		case strings.Contains(name, "drake"):
			out = append(out,
				"Melodic rap verses with sung hooks",
				"Introspective, emotional lyrics")
		default:
			out = append(out, fmt.Sprintf("Incorporate %s-inspired melodic motifs", inf.Name))
		}
	}

	if len(out) == 0 {
		return []string{"Focus on memorable, repeating melodic phrases"}
	}
	return out
}

func blueprintChorusIdeas(influences []domain.InfluenceDescriptor) []string {
	out := []string{}

	for _, inf := range influences {
		name := strings.ToLower(inf.Name)
		switch {
		case strings.Contains(name, "taylor"), strings.Contains(name, "swift"):
			out = append(out,
				"Use storytelling bridge that reveals emotional climax",
				"Add personal, confessional details in pre-chorus")
		case strings.Contains(name, "weeknd"):
			out = append(out,
				"Build tension with dark, moody pre-chorus",
				"Release in soaring, melismatic chorus")
		default:
			out = append(out, fmt.Sprintf("Apply %s's signature melodic patterns", inf.Name))
		}
	}

	out = append(out,
		"Repeat chorus title 2-3 times for memorability",
		"Simplify chord progression for maximum impact")
	return out
}

// structureSuggestions depends on the adjusted DNA's shape rather than on
// any particular influence: short structures want a bridge, hot intros want
// contrast, low mid-song energy wants a lift, and a pop target wants the
// chorus early.
func structureSuggestions(dna domain.SongDNA, influences []domain.InfluenceDescriptor) []string {
	out := []string{}

	if len(dna.Sections) < 4 {
		out = append(out, "Consider adding a bridge for variety")
	}

	if len(dna.GlobalEnergyCurve) >= 3 {
		early := dna.GlobalEnergyCurve[0]
		mean := 0.0
		for _, v := range dna.GlobalEnergyCurve {
			mean += v
		}
		mean /= float64(len(dna.GlobalEnergyCurve))

		if early > 0.7 {
			out = append(out, "High energy intro - consider slower build for contrast")
		}
		if mean < 0.5 {
			out = append(out, "Add a lift or drop at the 50% mark to maintain interest")
		}
	}

	if len(influences) > 0 && strings.Contains(dna.GenreGuess, "pop") {
		out = append(out, "Move chorus earlier (within first 30 seconds)")
	}

	if len(out) == 0 {
		return []string{"Current structure is well-balanced"}
	}
	return out
}

func instrumentationIdeas(influences []domain.InfluenceDescriptor, targetGenre string) []string {
	out := []string{}

	for _, inf := range influences {
		name := strings.ToLower(inf.Name)
		switch {
		case strings.Contains(name, "billie"), strings.Contains(name, "eilish"):
			out = append(out, "Minimal production: sub-bass, sparse beats, intimate vocals")
		case strings.Contains(name, "weeknd"):
			out = append(out,
				"80s-inspired synths with modern R&B drums",
				"Heavy reverb and atmospheric pads")
		case strings.Contains(name, "drake"):
			out = append(out, "Trap-influenced hi-hats with melodic piano")
		case strings.Contains(name, "tame"), strings.Contains(name, "impala"):
			out = append(out, "Psychedelic synths, phaser effects, vintage drum machines")
		}
	}

	genre := strings.ToLower(targetGenre)
	if strings.Contains(genre, "edm") {
		out = append(out, "Add sweeping filters and build-ups before drops")
	} else if strings.Contains(genre, "rock") {
		out = append(out, "Layer distorted guitars with driving drums")
	}

	if len(out) == 0 {
		return []string{"Focus on genre-appropriate instrumentation"}
	}
	return out
}

func vocalStyleNotes(influences []domain.InfluenceDescriptor) []string {
	out := []string{}

	for _, inf := range influences {
		name := strings.ToLower(inf.Name)
		switch {
		case strings.Contains(name, "billie"), strings.Contains(name, "eilish"):
			out = append(out,
				"Breathy, close-mic'd delivery in verses",
				"Occasional powerful belts for contrast")
		case strings.Contains(name, "weeknd"):
			out = append(out,
				"Falsetto runs and melismatic phrases",
				"Dark, emotional tone throughout")
		case strings.Contains(name, "adele"):
			out = append(out,
				"Power vocals with emotional vulnerability",
				"Strong belting in chorus")
		default:
			out = append(out, fmt.Sprintf("Study %s's vocal phrasing and dynamics", inf.Name))
		}
	}

	if len(out) == 0 {
		return []string{"Match vocal intensity to energy curve"}
	}
	return out
}

func manualHookSuggestions(influences []domain.InfluenceDescriptor) []string {
	out := []string{
		"Add a catchy melodic riff in the lead track",
		"Create a memorable rhythmic pattern in drums",
	}
	for _, inf := range influences {
		out = append(out, fmt.Sprintf("Incorporate %s-style melodic patterns", inf.Name))
	}
	return out
}

func manualChorusIdeas() []string {
	return []string{
		"Increase pattern density in the chorus section",
		"Layer chords with lead melody for fuller sound",
		"Add rhythmic variation in drums during chorus",
	}
}
