package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/calliope-labs/songforge/internal/core/domain"
	"github.com/calliope-labs/songforge/internal/core/ports"
)

// TrackUpdate carries a partial track update; nil fields are left as-is.
type TrackUpdate struct {
	Name         *string
	Volume       *float64
	Pan          *float64
	Muted        *bool
	Solo         *bool
	ChannelIndex *int
}

// PatternUpdate carries a partial pattern update; nil fields are left as-is.
type PatternUpdate struct {
	Name       *string
	LengthBars *int
	StartBar   *int
}

// ProjectService manages manual song projects and their track, pattern and
// note aggregates. Parent existence is checked before child writes so
// callers get a not-found error rather than a constraint violation.
type ProjectService struct {
	repo ports.ProjectRepository
}

// NewProjectService constructs a ProjectService.
func NewProjectService(repo ports.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// CreateProject assigns identity and timestamps and stores the project.
func (s *ProjectService) CreateProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.TimeSignature == "" {
		p.TimeSignature = "4/4"
	}

	if err := s.repo.CreateProject(ctx, p); err != nil {
		return domain.Project{}, fmt.Errorf("service: create project: %w", err)
	}
	return p, nil
}

// ListProjects returns all projects, most recently updated first.
func (s *ProjectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: list projects: %w", err)
	}
	return projects, nil
}

// GetProjectDetail returns a project with all tracks, patterns and notes.
func (s *ProjectService) GetProjectDetail(ctx context.Context, id string) (domain.ProjectDetail, error) {
	detail, err := s.repo.GetProjectDetail(ctx, id)
	if err != nil {
		return domain.ProjectDetail{}, fmt.Errorf("service: load project: %w", err)
	}
	return detail, nil
}

// DeleteProject removes a project and cascades to its children.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("service: delete project: %w", err)
	}
	return nil
}

// CreateTrack adds a track to an existing project with mixer defaults.
func (s *ProjectService) CreateTrack(ctx context.Context, projectID string, t domain.Track) (domain.Track, error) {
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return domain.Track{}, fmt.Errorf("service: load project: %w", err)
	}

	t.ID = uuid.NewString()
	t.ProjectID = projectID
	t.Volume = 0.8
	t.Pan = 0
	t.Muted = false
	t.Solo = false

	if err := s.repo.CreateTrack(ctx, t); err != nil {
		return domain.Track{}, fmt.Errorf("service: create track: %w", err)
	}
	return t, nil
}

// UpdateTrack applies a partial update and returns the updated track.
func (s *ProjectService) UpdateTrack(ctx context.Context, id string, update TrackUpdate) (domain.Track, error) {
	t, err := s.repo.GetTrack(ctx, id)
	if err != nil {
		return domain.Track{}, fmt.Errorf("service: load track: %w", err)
	}

	if update.Name != nil {
		t.Name = *update.Name
	}
	if update.Volume != nil {
		t.Volume = *update.Volume
	}
	if update.Pan != nil {
		t.Pan = *update.Pan
	}
	if update.Muted != nil {
		t.Muted = *update.Muted
	}
	if update.Solo != nil {
		t.Solo = *update.Solo
	}
	if update.ChannelIndex != nil {
		t.ChannelIndex = *update.ChannelIndex
	}

	if err := s.repo.UpdateTrack(ctx, t); err != nil {
		return domain.Track{}, fmt.Errorf("service: update track: %w", err)
	}
	return t, nil
}

// DeleteTrack removes a track and cascades to its patterns and notes.
func (s *ProjectService) DeleteTrack(ctx context.Context, id string) error {
	if err := s.repo.DeleteTrack(ctx, id); err != nil {
		return fmt.Errorf("service: delete track: %w", err)
	}
	return nil
}

// CreatePattern places a pattern on an existing track's timeline.
func (s *ProjectService) CreatePattern(ctx context.Context, trackID string, p domain.Pattern) (domain.Pattern, error) {
	if _, err := s.repo.GetTrack(ctx, trackID); err != nil {
		return domain.Pattern{}, fmt.Errorf("service: load track: %w", err)
	}

	p.ID = uuid.NewString()
	p.TrackID = trackID

	if err := s.repo.CreatePattern(ctx, p); err != nil {
		return domain.Pattern{}, fmt.Errorf("service: create pattern: %w", err)
	}
	return p, nil
}

// UpdatePattern applies a partial update and returns the updated pattern.
func (s *ProjectService) UpdatePattern(ctx context.Context, id string, update PatternUpdate) (domain.Pattern, error) {
	p, err := s.repo.GetPattern(ctx, id)
	if err != nil {
		return domain.Pattern{}, fmt.Errorf("service: load pattern: %w", err)
	}

	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.LengthBars != nil {
		p.LengthBars = *update.LengthBars
	}
	if update.StartBar != nil {
		p.StartBar = *update.StartBar
	}

	if err := s.repo.UpdatePattern(ctx, p); err != nil {
		return domain.Pattern{}, fmt.Errorf("service: update pattern: %w", err)
	}
	return p, nil
}

// DeletePattern removes a pattern and cascades to its notes.
func (s *ProjectService) DeletePattern(ctx context.Context, id string) error {
	if err := s.repo.DeletePattern(ctx, id); err != nil {
		return fmt.Errorf("service: delete pattern: %w", err)
	}
	return nil
}

// ListPatternNotes returns a pattern's notes ordered by step index.
func (s *ProjectService) ListPatternNotes(ctx context.Context, patternID string) ([]domain.Note, error) {
	if _, err := s.repo.GetPattern(ctx, patternID); err != nil {
		return nil, fmt.Errorf("service: load pattern: %w", err)
	}

	notes, err := s.repo.ListPatternNotes(ctx, patternID)
	if err != nil {
		return nil, fmt.Errorf("service: list notes: %w", err)
	}
	return notes, nil
}

// ReplacePatternNotes swaps a pattern's full note set in one transaction.
func (s *ProjectService) ReplacePatternNotes(ctx context.Context, patternID string, notes []domain.Note) ([]domain.Note, error) {
	if _, err := s.repo.GetPattern(ctx, patternID); err != nil {
		return nil, fmt.Errorf("service: load pattern: %w", err)
	}

	for i := range notes {
		notes[i].ID = uuid.NewString()
		notes[i].PatternID = patternID
	}

	if err := s.repo.ReplacePatternNotes(ctx, patternID, notes); err != nil {
		return nil, fmt.Errorf("service: replace notes: %w", err)
	}
	return notes, nil
}
