package hitmaker

import (
	"fmt"
	"strings"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

func commentary(dna domain.SongDNA, score domain.HitScoreBreakdown) []string {
	out := []string{
		fmt.Sprintf("Overall hit potential: %.1f/100", score.Overall),
		fmt.Sprintf("Dominant mood is %s, fitting %s genre", dna.DominantMood, dna.GenreGuess),
	}

	if score.HookStrength > 75 {
		out = append(out, "Strong hooks - highly memorable")
	} else if score.HookStrength < 50 {
		out = append(out, "Hooks need strengthening - focus on catchy melodies")
	}

	if score.Structure > 75 {
		out = append(out, "Well-structured with good dynamic flow")
	} else if score.Structure < 50 {
		out = append(out, "Structure feels repetitive or disjointed")
	}

	return out
}

func risks(dna domain.SongDNA, score domain.HitScoreBreakdown) []string {
	out := []string{}

	if score.HookStrength < 60 {
		out = append(out, "Weak hooks may limit radio/streaming appeal")
	}
	if score.Structure < 55 {
		out = append(out, "Structural issues may cause listener drop-off")
	}
	if score.Originality < 50 {
		out = append(out, "May sound too generic - needs unique elements")
	}

	if len(dna.GlobalEnergyCurve) >= 3 {
		if curveRange(dna.GlobalEnergyCurve) < 0.2 {
			out = append(out, "Flat energy curve - needs more dynamic contrast")
		}
	}

	if len(out) == 0 {
		return []string{"No major risks identified"}
	}
	return out
}

func opportunities(dna domain.SongDNA, score domain.HitScoreBreakdown) []string {
	out := []string{}

	if score.HookStrength > 70 {
		out = append(out, "Strong hooks - perfect for playlists and TikTok")
	}
	if score.Originality > 70 {
		out = append(out, "Unique sound - could start trends")
	}
	if score.Structure > 70 {
		out = append(out, "Great flow - ideal for full album listens")
	}
	if strings.Contains(dna.DominantMood, "energetic") || strings.Contains(dna.DominantMood, "intense") {
		out = append(out, "High energy - great for workout/party playlists")
	}

	if len(out) == 0 {
		return []string{"Solid foundation - room for polish"}
	}
	return out
}

func curveRange(curve []float64) float64 {
	lo, hi := curve[0], curve[0]
	for _, v := range curve[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}
