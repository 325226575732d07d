package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/calliope-labs/songforge/internal/core/domain"
	"github.com/calliope-labs/songforge/internal/core/ports"
)

// EngineFactory resolves an engine type string to an instrumental engine.
// Unknown types fall back to the fake engine.
type EngineFactory func(engineType string) ports.InstrumentalEngine

// LoudnessQueue accepts finished renders for asynchronous loudness
// analysis. Submission must never block the caller.
type LoudnessQueue interface {
	Submit(jobID, audioURL string)
}

// RenderService orchestrates instrumental render jobs: it records the job,
// loads the source, renders through the selected engine and tracks the
// job's lifecycle. Rendering is synchronous; only loudness analysis runs
// in the background.
type RenderService struct {
	jobs       ports.RenderJobRepository
	blueprints ports.BlueprintRepository
	projects   ports.ProjectRepository
	engineFor  EngineFactory
	loudness   LoudnessQueue
}

// NewRenderService constructs a RenderService. loudness may be nil to
// disable background analysis.
func NewRenderService(
	jobs ports.RenderJobRepository,
	blueprints ports.BlueprintRepository,
	projects ports.ProjectRepository,
	engineFor EngineFactory,
	loudness LoudnessQueue,
) *RenderService {
	return &RenderService{
		jobs:       jobs,
		blueprints: blueprints,
		projects:   projects,
		engineFor:  engineFor,
		loudness:   loudness,
	}
}

// CreateRender creates a job row, renders the source and returns the
// finished job. A failed render is recorded on the job before the error
// is returned.
func (s *RenderService) CreateRender(ctx context.Context, req domain.RenderRequest) (domain.RenderJob, error) {
	engineType := req.EngineType
	if engineType == "" {
		engineType = domain.EngineFake
	}

	now := time.Now().UTC()
	job := domain.RenderJob{
		ID:         uuid.NewString(),
		Status:     domain.RenderProcessing,
		EngineType: engineType,
		SourceType: req.SourceType,
		SourceID:   req.SourceID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return domain.RenderJob{}, fmt.Errorf("service: create render job: %w", err)
	}

	audioURL, duration, err := s.render(ctx, req, engineType)
	if err != nil {
		if markErr := s.jobs.MarkJobFailed(ctx, job.ID, err.Error()); markErr != nil {
			log.Printf("WARN service: mark render job %s failed: %v", job.ID, markErr)
		}
		return domain.RenderJob{}, fmt.Errorf("service: render %s %s: %w", req.SourceType, req.SourceID, err)
	}

	if err := s.jobs.MarkJobReady(ctx, job.ID, audioURL, duration); err != nil {
		return domain.RenderJob{}, fmt.Errorf("service: mark render job ready: %w", err)
	}

	if s.loudness != nil {
		s.loudness.Submit(job.ID, audioURL)
	}

	return s.GetRender(ctx, job.ID)
}

// GetRender loads a render job by id.
func (s *RenderService) GetRender(ctx context.Context, id string) (domain.RenderJob, error) {
	job, err := s.jobs.GetJob(ctx, id)
	if err != nil {
		return domain.RenderJob{}, fmt.Errorf("service: load render job: %w", err)
	}
	return job, nil
}

func (s *RenderService) render(ctx context.Context, req domain.RenderRequest, engineType string) (string, int, error) {
	engine := s.engineFor(engineType)
	opts := ports.RenderOptions{
		DurationSeconds: req.DurationSeconds,
		StyleHint:       req.StyleHint,
	}

	switch req.SourceType {
	case domain.RenderSourceBlueprint:
		bp, err := s.blueprints.GetBlueprint(ctx, req.SourceID)
		if err != nil {
			return "", 0, fmt.Errorf("load blueprint: %w", err)
		}
		return engine.RenderBlueprint(ctx, bp, opts)

	case domain.RenderSourceManualProject:
		detail, err := s.projects.GetProjectDetail(ctx, req.SourceID)
		if err != nil {
			return "", 0, fmt.Errorf("load project: %w", err)
		}
		return engine.RenderProject(ctx, detail, opts)

	default:
		return "", 0, fmt.Errorf("unknown source type %q", req.SourceType)
	}
}
