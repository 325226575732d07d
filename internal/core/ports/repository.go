package ports

import (
	"context"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

// BlueprintRepository stores generated song blueprints.
type BlueprintRepository interface {
	SaveBlueprint(ctx context.Context, bp domain.Blueprint) error
	GetBlueprint(ctx context.Context, id string) (domain.Blueprint, error)
}

// ProjectRepository stores manual projects and their track/pattern/note
// aggregates. Deleting a parent cascades to its children.
type ProjectRepository interface {
	CreateProject(ctx context.Context, p domain.Project) error
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProject(ctx context.Context, id string) (domain.Project, error)
	GetProjectDetail(ctx context.Context, id string) (domain.ProjectDetail, error)
	DeleteProject(ctx context.Context, id string) error

	CreateTrack(ctx context.Context, t domain.Track) error
	UpdateTrack(ctx context.Context, t domain.Track) error
	GetTrack(ctx context.Context, id string) (domain.Track, error)
	DeleteTrack(ctx context.Context, id string) error

	CreatePattern(ctx context.Context, p domain.Pattern) error
	UpdatePattern(ctx context.Context, p domain.Pattern) error
	GetPattern(ctx context.Context, id string) (domain.Pattern, error)
	DeletePattern(ctx context.Context, id string) error

	ListPatternNotes(ctx context.Context, patternID string) ([]domain.Note, error)
	ReplacePatternNotes(ctx context.Context, patternID string, notes []domain.Note) error
}

// RenderJobRepository stores instrumental render jobs.
type RenderJobRepository interface {
	CreateJob(ctx context.Context, job domain.RenderJob) error
	GetJob(ctx context.Context, id string) (domain.RenderJob, error)
	MarkJobReady(ctx context.Context, id, audioURL string, durationSeconds int) error
	MarkJobFailed(ctx context.Context, id, message string) error
	SetJobLoudness(ctx context.Context, id string, loudness float64) error
}
