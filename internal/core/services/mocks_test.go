package services

import (
	"context"

	"github.com/calliope-labs/songforge/internal/core/domain"
	"github.com/calliope-labs/songforge/internal/core/ports"
)

type mockGenerator struct {
	blueprint domain.Blueprint
	err       error
	calls     int
}

func (m *mockGenerator) GenerateBlueprint(_ context.Context, _ domain.BlueprintRequest) (domain.Blueprint, error) {
	m.calls++
	return m.blueprint, m.err
}

type mockBlueprintRepo struct {
	stored  map[string]domain.Blueprint
	saveErr error
	getErr  error
	saved   *domain.Blueprint
}

func (m *mockBlueprintRepo) SaveBlueprint(_ context.Context, bp domain.Blueprint) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = &bp
	return nil
}

func (m *mockBlueprintRepo) GetBlueprint(_ context.Context, id string) (domain.Blueprint, error) {
	if m.getErr != nil {
		return domain.Blueprint{}, m.getErr
	}
	bp, ok := m.stored[id]
	if !ok {
		return domain.Blueprint{}, domain.ErrNotFound
	}
	return bp, nil
}

type mockProjectRepo struct {
	projects map[string]domain.Project
	details  map[string]domain.ProjectDetail
	tracks   map[string]domain.Track
	patterns map[string]domain.Pattern
	notes    map[string][]domain.Note

	createdProject *domain.Project
	createdTrack   *domain.Track
	updatedTrack   *domain.Track
	createdPattern *domain.Pattern
	updatedPattern *domain.Pattern
	replacedNotes  []domain.Note
	deletedIDs     []string
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{
		projects: map[string]domain.Project{},
		details:  map[string]domain.ProjectDetail{},
		tracks:   map[string]domain.Track{},
		patterns: map[string]domain.Pattern{},
		notes:    map[string][]domain.Note{},
	}
}

func (m *mockProjectRepo) CreateProject(_ context.Context, p domain.Project) error {
	m.createdProject = &p
	m.projects[p.ID] = p
	return nil
}

func (m *mockProjectRepo) ListProjects(_ context.Context) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProjectRepo) GetProject(_ context.Context, id string) (domain.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return domain.Project{}, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockProjectRepo) GetProjectDetail(_ context.Context, id string) (domain.ProjectDetail, error) {
	d, ok := m.details[id]
	if !ok {
		return domain.ProjectDetail{}, domain.ErrNotFound
	}
	return d, nil
}

func (m *mockProjectRepo) DeleteProject(_ context.Context, id string) error {
	if _, ok := m.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.projects, id)
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func (m *mockProjectRepo) CreateTrack(_ context.Context, t domain.Track) error {
	m.createdTrack = &t
	m.tracks[t.ID] = t
	return nil
}

func (m *mockProjectRepo) UpdateTrack(_ context.Context, t domain.Track) error {
	m.updatedTrack = &t
	m.tracks[t.ID] = t
	return nil
}

func (m *mockProjectRepo) GetTrack(_ context.Context, id string) (domain.Track, error) {
	t, ok := m.tracks[id]
	if !ok {
		return domain.Track{}, domain.ErrNotFound
	}
	return t, nil
}

func (m *mockProjectRepo) DeleteTrack(_ context.Context, id string) error {
	if _, ok := m.tracks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.tracks, id)
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func (m *mockProjectRepo) CreatePattern(_ context.Context, p domain.Pattern) error {
	m.createdPattern = &p
	m.patterns[p.ID] = p
	return nil
}

func (m *mockProjectRepo) UpdatePattern(_ context.Context, p domain.Pattern) error {
	m.updatedPattern = &p
	m.patterns[p.ID] = p
	return nil
}

func (m *mockProjectRepo) GetPattern(_ context.Context, id string) (domain.Pattern, error) {
	p, ok := m.patterns[id]
	if !ok {
		return domain.Pattern{}, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockProjectRepo) DeletePattern(_ context.Context, id string) error {
	if _, ok := m.patterns[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.patterns, id)
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func (m *mockProjectRepo) ListPatternNotes(_ context.Context, patternID string) ([]domain.Note, error) {
	return m.notes[patternID], nil
}

func (m *mockProjectRepo) ReplacePatternNotes(_ context.Context, patternID string, notes []domain.Note) error {
	m.replacedNotes = notes
	m.notes[patternID] = notes
	return nil
}

type mockJobRepo struct {
	jobs      map[string]domain.RenderJob
	createErr error

	failedMessage string
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{jobs: map[string]domain.RenderJob{}}
}

func (m *mockJobRepo) CreateJob(_ context.Context, job domain.RenderJob) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepo) GetJob(_ context.Context, id string) (domain.RenderJob, error) {
	job, ok := m.jobs[id]
	if !ok {
		return domain.RenderJob{}, domain.ErrNotFound
	}
	return job, nil
}

func (m *mockJobRepo) MarkJobReady(_ context.Context, id, audioURL string, durationSeconds int) error {
	job, ok := m.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	job.Status = domain.RenderReady
	job.AudioURL = audioURL
	job.DurationSeconds = durationSeconds
	m.jobs[id] = job
	return nil
}

func (m *mockJobRepo) MarkJobFailed(_ context.Context, id, message string) error {
	job, ok := m.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	job.Status = domain.RenderFailed
	job.ErrorMessage = message
	m.jobs[id] = job
	m.failedMessage = message
	return nil
}

func (m *mockJobRepo) SetJobLoudness(_ context.Context, id string, loudness float64) error {
	job, ok := m.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	job.Loudness = &loudness
	m.jobs[id] = job
	return nil
}

type mockLoudnessQueue struct {
	jobIDs    []string
	audioURLs []string
}

func (m *mockLoudnessQueue) Submit(jobID, audioURL string) {
	m.jobIDs = append(m.jobIDs, jobID)
	m.audioURLs = append(m.audioURLs, audioURL)
}

// fakeEngineFactory always returns the fake engine, like the production
// factory does for unknown engine types.
func fakeEngineFactory(string) ports.InstrumentalEngine {
	return NewFakeInstrumentalEngine()
}
