package ports

import (
	"context"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

// RenderOptions carries per-request render tuning.
type RenderOptions struct {
	DurationSeconds int // 0 means let the engine decide
	StyleHint       string
}

// InstrumentalEngine produces instrumental audio for a blueprint or manual
// project. Implementations return a public audio URL and the duration in
// seconds of the rendered audio.
type InstrumentalEngine interface {
	RenderBlueprint(ctx context.Context, bp domain.Blueprint, opts RenderOptions) (string, int, error)
	RenderProject(ctx context.Context, detail domain.ProjectDetail, opts RenderOptions) (string, int, error)
}
