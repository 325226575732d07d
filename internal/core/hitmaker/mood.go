package hitmaker

import (
	"strings"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

// inferBlueprintMood starts from the stated mood and lets the lyric
// sentiment override it when one polarity clearly dominates.
func inferBlueprintMood(bp domain.Blueprint) string {
	mood := strings.ToLower(bp.Mood)

	lyrics := strings.ToLower(allLyrics(bp))
	positive := countOccurrences(lyrics, positiveKeywords)
	negative := countOccurrences(lyrics, negativeKeywords)

	if negative > positive {
		return "melancholic"
	}
	if positive > negative {
		return "uplifting"
	}
	return mood
}

// inferBlueprintGenre returns the stated genre, falling back to the first
// tempo-range match and finally to pop.
func inferBlueprintGenre(bp domain.Blueprint) string {
	if bp.Genre != "" {
		return strings.ToLower(bp.Genre)
	}

	for _, e := range genreTempoRanges {
		if e.Range.Min <= bp.BPM && bp.BPM <= e.Range.Max {
			return e.Genre
		}
	}
	return "pop"
}

// inferProjectMood guesses mood purely from tempo.
func inferProjectMood(g projectGraph) string {
	switch {
	case g.TempoBPM < 80:
		return "melancholic"
	case g.TempoBPM < 100:
		return "chill"
	case g.TempoBPM < 130:
		return "energetic"
	default:
		return "intense"
	}
}

// inferProjectGenre guesses genre from tempo and drum presence.
func inferProjectGenre(g projectGraph) string {
	hasDrums := false
	for _, t := range g.Tracks {
		if t.InstrumentType == domain.InstrumentDrums {
			hasDrums = true
			break
		}
	}

	bpm := g.TempoBPM
	switch {
	case hasDrums && bpm > 130:
		return "edm"
	case bpm < 90:
		return "ballad"
	case bpm >= 80 && bpm <= 110:
		return "hiphop"
	default:
		return "pop"
	}
}

// allLyrics joins every lyric block in the blueprint, in section order.
func allLyrics(bp domain.Blueprint) string {
	var b strings.Builder
	for _, sec := range bp.Sections {
		if text, ok := bp.Lyrics[sec.ID]; ok && text != "" {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(text)
		}
	}
	return b.String()
}

func countOccurrences(text string, words []string) int {
	total := 0
	for _, w := range words {
		total += strings.Count(text, w)
	}
	return total
}
