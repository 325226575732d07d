package services

import (
	"context"
	"fmt"

	"github.com/calliope-labs/songforge/internal/core/domain"
	"github.com/calliope-labs/songforge/internal/core/ports"
)

// FakeInstrumentalEngine renders nothing: it derives a plausible duration
// from the source's bar count and tempo and returns a local placeholder
// URL. Used in development and as the fallback engine.
type FakeInstrumentalEngine struct{}

// NewFakeInstrumentalEngine constructs a FakeInstrumentalEngine.
func NewFakeInstrumentalEngine() *FakeInstrumentalEngine {
	return &FakeInstrumentalEngine{}
}

// RenderBlueprint derives the duration from the summed section bars.
func (e *FakeInstrumentalEngine) RenderBlueprint(_ context.Context, bp domain.Blueprint, opts ports.RenderOptions) (string, int, error) {
	totalBars := 0
	for _, sec := range bp.Sections {
		totalBars += sec.Bars
	}

	duration := barsToSeconds(totalBars, bp.BPM)
	if opts.DurationSeconds > 0 {
		duration = opts.DurationSeconds
	}

	url := fmt.Sprintf("/audio/fake-instrumental/blueprint-%s.mp3", bp.SongID)
	return url, duration, nil
}

// RenderProject derives the duration from the last pattern end bar,
// defaulting to 16 bars for an empty timeline.
func (e *FakeInstrumentalEngine) RenderProject(_ context.Context, detail domain.ProjectDetail, opts ports.RenderOptions) (string, int, error) {
	lastBar := 0
	for _, p := range detail.Patterns {
		if end := p.StartBar + p.LengthBars; end > lastBar {
			lastBar = end
		}
	}
	if lastBar == 0 {
		lastBar = 16
	}

	duration := barsToSeconds(lastBar, detail.Project.TempoBPM)
	if opts.DurationSeconds > 0 {
		duration = opts.DurationSeconds
	}

	url := fmt.Sprintf("/audio/fake-instrumental/manual-%s.mp3", detail.Project.ID)
	return url, duration, nil
}

// barsToSeconds assumes 4/4 time and clamps to a sane range.
func barsToSeconds(bars, bpm int) int {
	if bpm <= 0 {
		bpm = 120
	}
	secondsPerBar := (60.0 / float64(bpm)) * 4
	duration := int(float64(bars) * secondsPerBar)

	if duration < 8 {
		duration = 8
	}
	if duration > 600 {
		duration = 600
	}
	return duration
}
