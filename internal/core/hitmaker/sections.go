package hitmaker

import (
	"fmt"
	"strings"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

// manualWindowBars is the width of one analysis window in a manual project.
const manualWindowBars = 4

// extractBlueprintSections converts blueprint sections into SectionEnergy
// records. Energy comes from the section name and BPM, tension from position
// in the song, hook density from chorus naming.
func extractBlueprintSections(bp domain.Blueprint) []domain.SectionEnergy {
	total := len(bp.Sections)
	out := make([]domain.SectionEnergy, 0, total)

	for i, sec := range bp.Sections {
		out = append(out, domain.SectionEnergy{
			Name:          sec.Name,
			PositionIndex: i,
			Energy:        sectionEnergy(sec.Name, bp.BPM),
			Tension:       sectionTension(i, total, sec.Name),
			HookDensity:   sectionHookDensity(sec.Name),
			Notes:         fmt.Sprintf("%d bars, %s", sec.Bars, sec.Description),
		})
	}
	return out
}

// sectionEnergy keys a base energy off the section name, then scales by BPM.
func sectionEnergy(name string, bpm int) float64 {
	energy := 0.5

	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "intro"):
		energy = 0.3
	case strings.Contains(lower, "verse"):
		energy = 0.5
	case strings.Contains(lower, "chorus"):
		energy = 0.8
	case strings.Contains(lower, "bridge"):
		energy = 0.6
	case strings.Contains(lower, "outro"):
		energy = 0.4
	case strings.Contains(lower, "drop"):
		energy = 0.9
	}

	if bpm > 140 {
		energy *= 1.2
	} else if bpm < 90 {
		energy *= 0.8
	}

	return clamp01(energy)
}

// sectionTension follows a parabolic arc peaking ~65% through the song.
// Bridges run hotter than their position alone suggests.
func sectionTension(index, total int, name string) float64 {
	if total == 0 {
		return 0.5
	}

	p := float64(index) / float64(total)
	tension := 1.0 - abs(p-0.65)*1.5
	if tension < 0.1 {
		tension = 0.1
	}
	if tension > 0.9 {
		tension = 0.9
	}

	if strings.Contains(strings.ToLower(name), "bridge") {
		tension *= 1.3
		if tension > 1.0 {
			tension = 1.0
		}
	}

	return tension
}

func sectionHookDensity(name string) float64 {
	if strings.Contains(strings.ToLower(name), "chorus") {
		return 0.8
	}
	return 0.4
}

// extractManualSections slices the project timeline into fixed 4-bar windows
// and scores each window by pattern density. A project with no patterns has
// no timeline to slice and collapses to a single synthetic section.
func extractManualSections(g projectGraph) []domain.SectionEnergy {
	maxBar := lastPatternBar(g)
	if maxBar == 0 {
		return []domain.SectionEnergy{{
			Name:          "Full Project",
			PositionIndex: 0,
			Energy:        0.5,
			Tension:       0.5,
			HookDensity:   0.4,
			Notes:         "Empty or minimal project",
		}}
	}

	totalSections := (maxBar + manualWindowBars - 1) / manualWindowBars
	out := make([]domain.SectionEnergy, 0, totalSections)

	for startBar := 0; startBar < maxBar; startBar += manualWindowBars {
		endBar := startBar + manualWindowBars
		if endBar > maxBar {
			endBar = maxBar
		}

		idx := startBar / manualWindowBars
		energy := manualWindowEnergy(g, startBar, endBar)

		out = append(out, domain.SectionEnergy{
			Name:          fmt.Sprintf("Section %d (bars %d-%d)", idx+1, startBar, endBar),
			PositionIndex: idx,
			Energy:        energy,
			Tension:       sectionTension(idx, totalSections, ""),
			HookDensity:   energy * 0.7,
			Notes:         fmt.Sprintf("Bars %d-%d", startBar, endBar),
		})
	}
	return out
}

// lastPatternBar returns the end bar of the latest pattern, with a 16-bar
// floor when any pattern exists, and 0 for a pattern-less project.
func lastPatternBar(g projectGraph) int {
	maxBar := 0
	for _, t := range g.Tracks {
		for _, p := range t.Patterns {
			if end := p.StartBar + p.LengthBars; end > maxBar {
				maxBar = end
			}
		}
	}
	if maxBar == 0 {
		return 0
	}
	if maxBar < 16 {
		maxBar = 16
	}
	return maxBar
}

// manualWindowEnergy scores one bar window by overlapping pattern count,
// drum+melodic layering, and note density.
func manualWindowEnergy(g projectGraph, startBar, endBar int) float64 {
	patternCount := 0
	totalNotes := 0
	hasDrums := false
	hasLead := false

	for _, t := range g.Tracks {
		for _, p := range t.Patterns {
			if p.StartBar < endBar && p.StartBar+p.LengthBars > startBar {
				patternCount++
				totalNotes += p.NoteCount

				switch t.InstrumentType {
				case domain.InstrumentDrums:
					hasDrums = true
				case domain.InstrumentLead, domain.InstrumentChords:
					hasLead = true
				}
			}
		}
	}

	energy := float64(patternCount) * 0.15
	if energy > 1 {
		energy = 1
	}

	if hasDrums && hasLead {
		energy *= 1.3
		if energy > 1 {
			energy = 1
		}
	}

	divisor := patternCount
	if divisor < 1 {
		divisor = 1
	}
	noteBoost := float64(totalNotes) / float64(divisor) * 0.02
	if noteBoost > 0.3 {
		noteBoost = 0.3
	}

	return clamp01(energy + noteBoost)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
