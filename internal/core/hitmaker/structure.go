package hitmaker

import (
	"fmt"
	"strings"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

// blueprintStructureNotes emits observations about a blueprint's shape:
// missing chorus, too few sections, and the energy arc through the song.
func blueprintStructureNotes(sections []domain.SectionEnergy) []string {
	notes := []string{}

	hasChorus := false
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s.Name), "chorus") {
			hasChorus = true
			break
		}
	}
	if !hasChorus {
		notes = append(notes, "No clear chorus section detected - consider adding one for catchiness")
	}

	if len(sections) < 3 {
		notes = append(notes, "Simple structure - consider adding more variety (bridge, pre-chorus)")
	}

	if len(sections) >= 3 {
		if sections[len(sections)/2].Energy < 0.5 {
			notes = append(notes, "Energy dips in the middle - consider a lift or drop")
		}
		if sections[len(sections)-1].Energy > 0.7 {
			notes = append(notes, "High energy ending - good for exciting finales")
		}
	}

	return notes
}

// manualStructureNotes emits observations about a manual project: sparse
// windows, flat dynamics, and limited instrumentation.
func manualStructureNotes(g projectGraph, sections []domain.SectionEnergy) []string {
	notes := []string{}

	sparse := 0
	for _, s := range sections {
		if s.Energy < 0.3 {
			sparse++
		}
	}
	if sparse > len(sections)/2 {
		notes = append(notes, "Many sparse sections - consider adding more patterns for energy")
	}

	if len(sections) >= 3 {
		lo, hi := sections[0].Energy, sections[0].Energy
		for _, s := range sections[1:] {
			if s.Energy < lo {
				lo = s.Energy
			}
			if s.Energy > hi {
				hi = s.Energy
			}
		}
		if hi-lo < 0.3 {
			notes = append(notes, "Energy levels are quite flat - add dynamic contrast")
		}
	}

	types := map[string]struct{}{}
	for _, t := range g.Tracks {
		types[t.InstrumentType] = struct{}{}
	}
	if len(types) < 3 {
		notes = append(notes, fmt.Sprintf("Limited instrumentation (%d track types) - consider adding more variety", len(types)))
	}

	return notes
}
