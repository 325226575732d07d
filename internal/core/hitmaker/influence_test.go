package hitmaker

import (
	"reflect"
	"strings"
	"testing"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

func curveDNA(energy, tension []float64) domain.SongDNA {
	return domain.SongDNA{
		GlobalEnergyCurve:  energy,
		GlobalTensionCurve: tension,
		DominantMood:       "energetic",
		GenreGuess:         "pop",
	}
}

func TestAdjustDNA_WeekndFullWeight(t *testing.T) {
	dna := curveDNA([]float64{0.8, 0.5}, []float64{0.4, 0.6})

	adjusted := adjustDNA(dna, []domain.InfluenceDescriptor{
		{Name: "The Weeknd", Weight: 1.0},
	}, "", "")

	// Full weight means factor 0.7.
	want := []float64{0.56, 0.35}
	for i, v := range adjusted.GlobalEnergyCurve {
		if !approxEqual(v, want[i]) {
			t.Errorf("energy[%d] = %v, want %v", i, v, want[i])
		}
	}
	for i, v := range adjusted.GlobalTensionCurve {
		if !approxEqual(v, dna.GlobalTensionCurve[i]) {
			t.Errorf("tension[%d] changed to %v, want untouched", i, v)
		}
	}
}

func TestAdjustDNA_BillieRaisesTension(t *testing.T) {
	dna := curveDNA([]float64{0.5}, []float64{0.5})

	adjusted := adjustDNA(dna, []domain.InfluenceDescriptor{
		{Name: "Billie Eilish", Weight: 0.5},
	}, "", "")

	if !approxEqual(adjusted.GlobalTensionCurve[0], 0.5*1.15) {
		t.Errorf("tension = %v, want %v", adjusted.GlobalTensionCurve[0], 0.5*1.15)
	}
	if !approxEqual(adjusted.GlobalEnergyCurve[0], 0.5) {
		t.Errorf("energy changed to %v, want untouched", adjusted.GlobalEnergyCurve[0])
	}
}

func TestAdjustDNA_TensionMayExceedOne(t *testing.T) {
	dna := curveDNA([]float64{0.5}, []float64{0.9})

	adjusted := adjustDNA(dna, []domain.InfluenceDescriptor{
		{Name: "Billie Eilish", Weight: 1.0},
	}, "", "")

	// The transform does not re-clamp: 0.9 * 1.3.
	if !approxEqual(adjusted.GlobalTensionCurve[0], 1.17) {
		t.Errorf("tension = %v, want 1.17", adjusted.GlobalTensionCurve[0])
	}
}

func TestAdjustDNA_SequentialStacking(t *testing.T) {
	dna := curveDNA([]float64{0.8}, []float64{0.5})

	adjusted := adjustDNA(dna, []domain.InfluenceDescriptor{
		{Name: "The Weeknd", Weight: 0.5},
		{Name: "weeknd again", Weight: 0.5},
	}, "", "")

	if !approxEqual(adjusted.GlobalEnergyCurve[0], 0.8*0.85*0.85) {
		t.Errorf("energy = %v, want %v", adjusted.GlobalEnergyCurve[0], 0.8*0.85*0.85)
	}
}

func TestAdjustDNA_CrossCurveOrderIndependent(t *testing.T) {
	weeknd := domain.InfluenceDescriptor{Name: "The Weeknd", Weight: 0.5}
	billie := domain.InfluenceDescriptor{Name: "Billie Eilish", Weight: 0.5}

	base := curveDNA([]float64{0.8, 0.5}, []float64{0.4, 0.9})
	ab := adjustDNA(base, []domain.InfluenceDescriptor{weeknd, billie}, "", "")
	ba := adjustDNA(base, []domain.InfluenceDescriptor{billie, weeknd}, "", "")

	if !reflect.DeepEqual(ab.GlobalEnergyCurve, ba.GlobalEnergyCurve) {
		t.Errorf("energy curves differ with order: %v vs %v", ab.GlobalEnergyCurve, ba.GlobalEnergyCurve)
	}
	if !reflect.DeepEqual(ab.GlobalTensionCurve, ba.GlobalTensionCurve) {
		t.Errorf("tension curves differ with order: %v vs %v", ab.GlobalTensionCurve, ba.GlobalTensionCurve)
	}
}

func TestAdjustDNA_TargetOverrides(t *testing.T) {
	dna := curveDNA([]float64{0.5}, []float64{0.5})

	adjusted := adjustDNA(dna, nil, "melancholic", "indie")
	if adjusted.DominantMood != "melancholic" || adjusted.GenreGuess != "indie" {
		t.Errorf("overrides not applied: %q / %q", adjusted.DominantMood, adjusted.GenreGuess)
	}

	unchanged := adjustDNA(dna, nil, "", "")
	if unchanged.DominantMood != "energetic" || unchanged.GenreGuess != "pop" {
		t.Errorf("empty overrides should keep inferred values: %q / %q", unchanged.DominantMood, unchanged.GenreGuess)
	}
}

func TestAdjustDNA_DeepCopy(t *testing.T) {
	dna := curveDNA([]float64{0.8}, []float64{0.5})
	id := "bp-1"
	dna.BlueprintID = &id

	adjusted := adjustDNA(dna, []domain.InfluenceDescriptor{
		{Name: "The Weeknd", Weight: 1.0},
	}, "", "")

	if !approxEqual(dna.GlobalEnergyCurve[0], 0.8) {
		t.Fatalf("input DNA mutated: %v", dna.GlobalEnergyCurve)
	}
	if adjusted.BlueprintID == dna.BlueprintID {
		t.Error("blueprint id pointer shared with input")
	}
	if *adjusted.BlueprintID != "bp-1" {
		t.Errorf("blueprint id = %q, want bp-1", *adjusted.BlueprintID)
	}
}

func TestAdjustDNA_UnknownInfluence(t *testing.T) {
	dna := curveDNA([]float64{0.8, 0.5}, []float64{0.4, 0.6})

	adjusted := adjustDNA(dna, []domain.InfluenceDescriptor{
		{Name: "Some Garage Band", Weight: 1.0},
	}, "", "")

	if !reflect.DeepEqual(adjusted.GlobalEnergyCurve, dna.GlobalEnergyCurve) ||
		!reflect.DeepEqual(adjusted.GlobalTensionCurve, dna.GlobalTensionCurve) {
		t.Errorf("unrecognized influence should leave curves unchanged")
	}
}

func TestApplyInfluencesToBlueprint_NoInfluences(t *testing.T) {
	e := New()
	bp := standardBlueprint()
	analysis := e.AnalyzeBlueprint(bp)

	resp := e.ApplyInfluencesToBlueprint(bp, nil, "", "")

	if !reflect.DeepEqual(resp.AdjustedDNA.GlobalEnergyCurve, analysis.DNA.GlobalEnergyCurve) {
		t.Error("energy curve should be unchanged with zero influences")
	}
	if !reflect.DeepEqual(resp.AdjustedDNA.GlobalTensionCurve, analysis.DNA.GlobalTensionCurve) {
		t.Error("tension curve should be unchanged with zero influences")
	}

	if !reflect.DeepEqual(resp.HookSuggestions, []string{"Focus on memorable, repeating melodic phrases"}) {
		t.Errorf("hook suggestions = %v", resp.HookSuggestions)
	}
	if !reflect.DeepEqual(resp.InstrumentationIdeas, []string{"Focus on genre-appropriate instrumentation"}) {
		t.Errorf("instrumentation ideas = %v", resp.InstrumentationIdeas)
	}
	if !reflect.DeepEqual(resp.VocalStyleNotes, []string{"Match vocal intensity to energy curve"}) {
		t.Errorf("vocal style notes = %v", resp.VocalStyleNotes)
	}

	// Chorus ideas always carry the two generic closers.
	if len(resp.ChorusRewriteIdeas) != 2 {
		t.Errorf("chorus ideas = %v", resp.ChorusRewriteIdeas)
	}
	if len(resp.StructureSuggestions) == 0 {
		t.Error("structure suggestions should never be empty")
	}
}

func TestApplyInfluencesToBlueprint_Weeknd(t *testing.T) {
	e := New()
	bp := standardBlueprint()

	resp := e.ApplyInfluencesToBlueprint(bp, []domain.InfluenceDescriptor{
		{Name: "The Weeknd", Weight: 0.8},
	}, "", "")

	wantHook := []string{
		"Use falsetto runs on sustained notes",
		"Layer dark, atmospheric vocal ad-libs",
	}
	if !reflect.DeepEqual(resp.HookSuggestions, wantHook) {
		t.Errorf("hook suggestions = %v", resp.HookSuggestions)
	}

	found := false
	for _, s := range resp.InstrumentationIdeas {
		if strings.Contains(s, "80s-inspired synths") {
			found = true
		}
	}
	if !found {
		t.Errorf("instrumentation ideas missing synth line: %v", resp.InstrumentationIdeas)
	}

	// Influences present and the inferred genre is pop.
	foundPop := false
	for _, s := range resp.StructureSuggestions {
		if strings.Contains(s, "Move chorus earlier") {
			foundPop = true
		}
	}
	if !foundPop {
		t.Errorf("structure suggestions missing pop line: %v", resp.StructureSuggestions)
	}
}

func TestApplyInfluencesToBlueprint_TargetGenreIdeas(t *testing.T) {
	e := New()

	resp := e.ApplyInfluencesToBlueprint(standardBlueprint(), nil, "", "edm")
	found := false
	for _, s := range resp.InstrumentationIdeas {
		if strings.Contains(s, "sweeping filters") {
			found = true
		}
	}
	if !found {
		t.Errorf("edm target should add filter idea: %v", resp.InstrumentationIdeas)
	}
	if resp.AdjustedDNA.GenreGuess != "edm" {
		t.Errorf("genre guess = %q, want edm", resp.AdjustedDNA.GenreGuess)
	}
}

func TestApplyInfluencesToProject(t *testing.T) {
	e := New()
	detail := standardProject()

	resp := e.ApplyInfluencesToProject(detail, []domain.InfluenceDescriptor{
		{Name: "Drake", Weight: 0.6},
	}, "", "")

	want := []string{
		"Add a catchy melodic riff in the lead track",
		"Create a memorable rhythmic pattern in drums",
		"Incorporate Drake-style melodic patterns",
	}
	if !reflect.DeepEqual(resp.HookSuggestions, want) {
		t.Errorf("hook suggestions = %v", resp.HookSuggestions)
	}

	if len(resp.ChorusRewriteIdeas) != 3 {
		t.Errorf("chorus ideas = %v", resp.ChorusRewriteIdeas)
	}
	if resp.AdjustedDNA.ManualProjectID == nil {
		t.Error("adjusted DNA should carry the manual project id")
	}
}

func TestApplyInfluences_UnknownNameSuggestions(t *testing.T) {
	e := New()

	resp := e.ApplyInfluencesToBlueprint(standardBlueprint(), []domain.InfluenceDescriptor{
		{Name: "Mystery Artist", Weight: 0.3},
	}, "", "")

	if !reflect.DeepEqual(resp.HookSuggestions, []string{"Incorporate Mystery Artist-inspired melodic motifs"}) {
		t.Errorf("hook suggestions = %v", resp.HookSuggestions)
	}
	if !reflect.DeepEqual(resp.VocalStyleNotes, []string{"Study Mystery Artist's vocal phrasing and dynamics"}) {
		t.Errorf("vocal style notes = %v", resp.VocalStyleNotes)
	}
}
