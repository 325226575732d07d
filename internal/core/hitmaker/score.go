package hitmaker

import (
	"math"
	"strings"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

// blueprintHitScore scores a generated blueprint. Each factor is a
// deterministic weighted combination, clamped to [0,100].
func blueprintHitScore(bp domain.Blueprint, sections []domain.SectionEnergy) domain.HitScoreBreakdown {
	hasChorus := false
	chorusEnergy := 0.5
	seenChorus := false
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s.Name), "chorus") {
			hasChorus = true
			if !seenChorus || s.Energy > chorusEnergy {
				chorusEnergy = s.Energy
			}
			seenChorus = true
		}
	}

	hookBase := 40.0
	if hasChorus {
		hookBase = 70.0
	}
	hookStrength := hookBase + chorusEnergy*20.0

	variety := float64(len(sections)) * 15.0
	if variety > 100 {
		variety = 100
	}
	spread := energySpread(sections)
	structure := variety*0.6 + spread*40.0

	wordCount := len(strings.Fields(allLyrics(bp)))
	lyricsEmotion := 60.0 + float64(wordCount)*0.5
	if lyricsEmotion > 100 {
		lyricsEmotion = 100
	}

	genreFit := 75.0
	if r, ok := genreTempo(strings.ToLower(bp.Genre)); ok {
		if r.Min <= bp.BPM && bp.BPM <= r.Max {
			genreFit = 85.0
		}
	}

	originality := 65.0
	if len(sections) > 5 {
		originality += 15.0
	}
	if spread > 0.15 {
		originality += 10.0
	}

	return assembleScore(hookStrength, structure, lyricsEmotion, genreFit, originality)
}

// manualHitScore scores a manual project. Lyrics and genre fit have no
// signal in a grid project and use fixed baselines.
func manualHitScore(g projectGraph, sections []domain.SectionEnergy) domain.HitScoreBreakdown {
	maxEnergy := 0.5
	if len(sections) > 0 {
		maxEnergy = sections[0].Energy
		for _, s := range sections[1:] {
			if s.Energy > maxEnergy {
				maxEnergy = s.Energy
			}
		}
	}
	hookStrength := 50.0 + maxEnergy*40.0

	structure := 50.0 + energySpread(sections)*40.0 + float64(len(sections))*5.0

	trackCount := len(g.Tracks)
	patternCount := 0
	for _, t := range g.Tracks {
		patternCount += len(t.Patterns)
	}
	originality := 50.0 + float64(trackCount)*5.0 + float64(patternCount)*2.0
	if originality > 100 {
		originality = 100
	}

	return assembleScore(hookStrength, structure, 60.0, 70.0, originality)
}

// assembleScore derives replay value and the overall score from the five
// base factors using the shared weighting, clamping every field.
func assembleScore(hookStrength, structure, lyricsEmotion, genreFit, originality float64) domain.HitScoreBreakdown {
	replayValue := hookStrength*0.4 + structure*0.3 + originality*0.3

	overall := hookStrength*0.25 +
		structure*0.20 +
		lyricsEmotion*0.15 +
		genreFit*0.15 +
		originality*0.10 +
		replayValue*0.15

	return domain.HitScoreBreakdown{
		Overall:       clamp100(overall),
		HookStrength:  clamp100(hookStrength),
		Structure:     clamp100(structure),
		LyricsEmotion: clamp100(lyricsEmotion),
		GenreFit:      clamp100(genreFit),
		Originality:   clamp100(originality),
		ReplayValue:   clamp100(replayValue),
	}
}

// energySpread is the population standard deviation of the section energies,
// capped at 1.0. It is used as a normalized variety signal rather than a
// true unbounded stddev. An empty list yields 0.
func energySpread(sections []domain.SectionEnergy) float64 {
	if len(sections) == 0 {
		return 0
	}

	mean := 0.0
	for _, s := range sections {
		mean += s.Energy
	}
	mean /= float64(len(sections))

	variance := 0.0
	for _, s := range sections {
		d := s.Energy - mean
		variance += d * d
	}
	variance /= float64(len(sections))

	dev := math.Sqrt(variance)
	if dev > 1 {
		dev = 1
	}
	return dev
}
