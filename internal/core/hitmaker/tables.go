package hitmaker

// tempoRange is an inclusive BPM range.
type tempoRange struct {
	Min, Max int
}

// genreTempoEntry pairs a genre with its conventional BPM range. Kept as an
// ordered slice so BPM-based genre fallback is deterministic.
type genreTempoEntry struct {
	Genre string
	Range tempoRange
}

// genreTempoRanges maps genres to their conventional BPM ranges.
var genreTempoRanges = []genreTempoEntry{
	{"hiphop", tempoRange{80, 110}},
	{"trap", tempoRange{130, 170}},
	{"pop", tempoRange{100, 130}},
	{"rock", tempoRange{110, 140}},
	{"edm", tempoRange{120, 140}},
	{"house", tempoRange{120, 130}},
	{"dubstep", tempoRange{135, 145}},
	{"indie", tempoRange{90, 130}},
	{"ballad", tempoRange{60, 90}},
}

func genreTempo(genre string) (tempoRange, bool) {
	for _, e := range genreTempoRanges {
		if e.Genre == genre {
			return e.Range, true
		}
	}
	return tempoRange{}, false
}

// Emotional keyword vocabularies for lyric analysis. Counted by
// case-insensitive substring occurrence.
var (
	positiveKeywords = []string{"love", "happy", "joy", "bright", "smile", "free", "dream", "shine"}
	negativeKeywords = []string{"pain", "hurt", "lost", "dark", "alone", "broken", "cry", "fade"}
)
