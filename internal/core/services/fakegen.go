package services

import (
	"context"
	"crypto/md5" // #nosec G501 -- non-cryptographic, used to derive stable ids from prompts
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

// FakeGenerator produces deterministic, reasonable blueprints without
// calling any external model. The song id carries a prompt-derived hash
// prefix for determinism plus a random suffix for uniqueness.
type FakeGenerator struct{}

// NewFakeGenerator constructs a FakeGenerator.
func NewFakeGenerator() *FakeGenerator {
	return &FakeGenerator{}
}

var moodTitleWords = map[string][]string{
	"Dark":      {"Shadows", "Midnight", "Eclipse", "Void"},
	"Emotional": {"Hearts", "Memories", "Dreams", "Echoes"},
	"Energetic": {"Thunder", "Lightning", "Fire", "Rush"},
	"Chill":     {"Waves", "Sunset", "Breeze", "Float"},
	"Uplifting": {"Rising", "Soar", "Shine", "Hope"},
}

var genreTitleWords = map[string][]string{
	"Pop":     {"Love", "Tonight", "Forever", "Dance"},
	"Hip Hop": {"Streets", "Real", "Money", "Hustle"},
	"EDM":     {"Drop", "Bass", "Rave", "Electric"},
	"Lo-fi":   {"Study", "Cafe", "Rain", "Vibes"},
	"Trap":    {"Trap", "Wavy", "Flex", "Drip"},
	"Ambient": {"Space", "Drift", "Cosmos", "Flow"},
	"Rock":    {"Rebel", "Wild", "Storm", "Edge"},
}

var genreDefaultBPM = map[string]int{
	"Pop":     120,
	"Hip Hop": 90,
	"EDM":     128,
	"Lo-fi":   80,
	"Trap":    140,
	"Ambient": 70,
	"Rock":    130,
}

var moodDefaultKey = map[string]string{
	"Dark":      "Am",
	"Emotional": "Dm",
	"Energetic": "C",
	"Chill":     "G",
	"Uplifting": "D",
}

var genreInstruments = map[string][]string{
	"Pop":     {"synth", "drums", "bass", "guitar", "piano"},
	"Hip Hop": {"drums", "808bass", "synth", "sample"},
	"EDM":     {"synth", "drums", "bass", "pad", "lead"},
	"Lo-fi":   {"piano", "drums", "bass", "vinyl", "ambient"},
	"Trap":    {"hi-hats", "808", "synth", "snare"},
	"Ambient": {"pad", "synth", "reverb", "atmosphere"},
	"Rock":    {"guitar", "drums", "bass", "vocals"},
}

var genreVocalStyle = map[string]domain.VocalStyle{
	"Pop":     {Gender: "female", Tone: "smooth", Energy: "medium"},
	"Hip Hop": {Gender: "male", Tone: "confident", Energy: "medium"},
	"EDM":     {Gender: "female", Tone: "bright", Energy: "high"},
	"Lo-fi":   {Gender: "mixed", Tone: "soft", Energy: "low"},
	"Trap":    {Gender: "male", Tone: "autotuned", Energy: "high"},
	"Ambient": {Gender: "female", Tone: "ethereal", Energy: "low"},
	"Rock":    {Gender: "male", Tone: "raspy", Energy: "high"},
}

// GenerateBlueprint builds a full blueprint from the request, filling
// unset BPM, key and duration with genre/mood defaults.
func (g *FakeGenerator) GenerateBlueprint(_ context.Context, req domain.BlueprintRequest) (domain.Blueprint, error) {
	hash := md5.Sum([]byte(req.Prompt)) // #nosec G401 -- id derivation only

	bpm := req.BPM
	if bpm == 0 {
		bpm = defaultBPMForGenre(req.Genre)
	}
	key := req.Key
	if key == "" {
		key = defaultKeyForMood(req.Mood)
	}
	duration := req.DurationSeconds
	if duration == 0 {
		duration = 180
	}

	sections := fakeSections(req.Genre, req.Mood, duration, bpm)

	return domain.Blueprint{
		SongID:     fakeSongID(hash),
		Title:      fakeTitle(hash, req.Genre, req.Mood),
		Genre:      req.Genre,
		Mood:       req.Mood,
		BPM:        bpm,
		Key:        key,
		Sections:   sections,
		Lyrics:     fakeLyrics(sections, req.Prompt, req.Mood),
		VocalStyle: fakeVocalStyle(req.Genre),
		Notes:      fakeNotes(req.Genre, req.Mood, len(sections)),
	}, nil
}

func fakeSongID(hash [md5.Size]byte) string {
	u := uuid.New()
	return fmt.Sprintf("song_%s_%s", hex.EncodeToString(hash[:])[:8], hex.EncodeToString(u[:])[:8])
}

func fakeTitle(hash [md5.Size]byte, genre, mood string) string {
	moodWords, ok := moodTitleWords[mood]
	if !ok {
		moodWords = []string{"Untitled"}
	}
	genreWords, ok := genreTitleWords[genre]
	if !ok {
		genreWords = []string{"Song"}
	}

	n := binary.BigEndian.Uint64(hash[8:])
	return fmt.Sprintf("%s %s",
		moodWords[n%uint64(len(moodWords))],
		genreWords[n%uint64(len(genreWords))])
}

func defaultBPMForGenre(genre string) int {
	if bpm, ok := genreDefaultBPM[genre]; ok {
		return bpm
	}
	return 120
}

func defaultKeyForMood(mood string) string {
	if key, ok := moodDefaultKey[mood]; ok {
		return key
	}
	return "C"
}

// fakeSections lays out a conventional song: intro, two verse/chorus
// rounds, bridge, final chorus, outro. Longer songs get a pre-chorus.
func fakeSections(genre, mood string, durationSeconds, bpm int) []domain.Section {
	secondsPerBar := (60.0 / float64(bpm)) * 4
	totalBars := int(float64(durationSeconds) / secondsPerBar)

	lower := strings.ToLower(mood)

	sections := []domain.Section{{
		ID:          "sec_intro",
		Type:        domain.SectionIntro,
		Name:        "Intro",
		Bars:        8,
		Mood:        mood,
		Description: fmt.Sprintf("Opening %s intro setting the %s atmosphere", genre, lower),
		Instruments: instrumentsFor(genre, domain.SectionIntro),
	}, {
		ID:          "sec_verse1",
		Type:        domain.SectionVerse,
		Name:        "Verse 1",
		Bars:        16,
		Mood:        mood,
		Description: "First verse introducing the story",
		Instruments: instrumentsFor(genre, domain.SectionVerse),
	}}

	if totalBars > 64 {
		sections = append(sections, domain.Section{
			ID:          "sec_prechorus1",
			Type:        domain.SectionPreChorus,
			Name:        "Pre-Chorus 1",
			Bars:        8,
			Mood:        mood,
			Description: "Building tension before the chorus",
			Instruments: instrumentsFor(genre, domain.SectionPreChorus),
		})
	}

	sections = append(sections,
		domain.Section{
			ID:          "sec_chorus1",
			Type:        domain.SectionChorus,
			Name:        "Chorus",
			Bars:        16,
			Mood:        mood,
			Description: "Main hook and chorus",
			Instruments: instrumentsFor(genre, domain.SectionChorus),
		},
		domain.Section{
			ID:          "sec_verse2",
			Type:        domain.SectionVerse,
			Name:        "Verse 2",
			Bars:        16,
			Mood:        mood,
			Description: "Second verse developing the narrative",
			Instruments: instrumentsFor(genre, domain.SectionVerse),
		},
		domain.Section{
			ID:          "sec_chorus2",
			Type:        domain.SectionChorus,
			Name:        "Chorus 2",
			Bars:        16,
			Mood:        mood,
			Description: "Chorus repetition with variations",
			Instruments: instrumentsFor(genre, domain.SectionChorus),
		},
		domain.Section{
			ID:          "sec_bridge",
			Type:        domain.SectionBridge,
			Name:        "Bridge",
			Bars:        8,
			Mood:        mood,
			Description: "Bridge providing contrast and emotional peak",
			Instruments: instrumentsFor(genre, domain.SectionBridge),
		},
		domain.Section{
			ID:          "sec_chorus_final",
			Type:        domain.SectionChorus,
			Name:        "Final Chorus",
			Bars:        16,
			Mood:        mood,
			Description: "Final chorus with full energy",
			Instruments: instrumentsFor(genre, domain.SectionChorus),
		},
		domain.Section{
			ID:          "sec_outro",
			Type:        domain.SectionOutro,
			Name:        "Outro",
			Bars:        8,
			Mood:        mood,
			Description: "Closing section bringing resolution",
			Instruments: instrumentsFor(genre, domain.SectionOutro),
		},
	)

	return sections
}

// instrumentsFor returns a sparse subset for intros, the full set for
// choruses, and a medium subset elsewhere.
func instrumentsFor(genre, sectionType string) []string {
	base, ok := genreInstruments[genre]
	if !ok {
		base = []string{"synth", "drums", "bass"}
	}

	switch sectionType {
	case domain.SectionIntro:
		return base[:2]
	case domain.SectionChorus:
		return base
	default:
		if len(base) > 3 {
			return base[:3]
		}
		return base
	}
}

func fakeLyrics(sections []domain.Section, prompt, mood string) map[string]string {
	lower := strings.ToLower(mood)

	promptFragment := prompt
	if len(promptFragment) > 50 {
		promptFragment = promptFragment[:50]
	}

	lyrics := make(map[string]string, len(sections))
	for _, sec := range sections {
		switch sec.Type {
		case domain.SectionIntro, domain.SectionOutro:
			lyrics[sec.ID] = "[Instrumental]"
		case domain.SectionVerse:
			lyrics[sec.ID] = fmt.Sprintf("In the %s of the night\nWalking through these feelings inside\nEvery moment tells a story\n%s...", lower, promptFragment)
		case domain.SectionChorus:
			lyrics[sec.ID] = fmt.Sprintf("This is where we come alive\nFeel the rhythm, feel the vibe\n%s hearts beating as one\nThis is how it's begun", mood)
		case domain.SectionPreChorus:
			lyrics[sec.ID] = "Building up, rising high\nCan you feel it in the sky"
		case domain.SectionBridge:
			lyrics[sec.ID] = fmt.Sprintf("Break it down, change the flow\nLet the %s emotions show\nTake a breath, feel the change\nRearrange, rearrange", lower)
		default:
			lyrics[sec.ID] = "[To be written]"
		}
	}
	return lyrics
}

func fakeVocalStyle(genre string) domain.VocalStyle {
	if style, ok := genreVocalStyle[genre]; ok {
		return style
	}
	return domain.VocalStyle{Gender: "auto", Tone: "neutral", Energy: "medium"}
}

func fakeNotes(genre, mood string, sectionCount int) string {
	return fmt.Sprintf(`Production Notes:
- Genre: %s with %s atmosphere
- Total sections: %d
- Keep dynamics varying between sections
- Add automation and fills for transitions
- Consider layering vocals in chorus
- Master with %s-appropriate compression and EQ`, genre, strings.ToLower(mood), sectionCount, genre)
}
