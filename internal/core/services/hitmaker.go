package services

import (
	"context"
	"fmt"

	"github.com/calliope-labs/songforge/internal/core/domain"
	"github.com/calliope-labs/songforge/internal/core/hitmaker"
	"github.com/calliope-labs/songforge/internal/core/ports"
)

// HitMakerService loads stored songs and runs them through the analysis
// engine. The engine itself never fails; every error here is a load error.
type HitMakerService struct {
	engine     *hitmaker.Engine
	blueprints ports.BlueprintRepository
	projects   ports.ProjectRepository
}

// NewHitMakerService constructs a HitMakerService.
func NewHitMakerService(engine *hitmaker.Engine, blueprints ports.BlueprintRepository, projects ports.ProjectRepository) *HitMakerService {
	return &HitMakerService{
		engine:     engine,
		blueprints: blueprints,
		projects:   projects,
	}
}

// AnalyzeBlueprint analyzes a stored blueprint by song id.
func (s *HitMakerService) AnalyzeBlueprint(ctx context.Context, id string) (domain.HitMakerAnalysis, error) {
	bp, err := s.blueprints.GetBlueprint(ctx, id)
	if err != nil {
		return domain.HitMakerAnalysis{}, fmt.Errorf("service: load blueprint: %w", err)
	}
	return s.engine.Analyze(hitmaker.BlueprintSource{Blueprint: bp}), nil
}

// AnalyzeProject analyzes a stored manual project by id.
func (s *HitMakerService) AnalyzeProject(ctx context.Context, id string) (domain.HitMakerAnalysis, error) {
	detail, err := s.projects.GetProjectDetail(ctx, id)
	if err != nil {
		return domain.HitMakerAnalysis{}, fmt.Errorf("service: load project: %w", err)
	}
	return s.engine.Analyze(hitmaker.ProjectSource{Detail: detail}), nil
}

// InfluenceBlueprint blends influences into a stored blueprint's DNA.
func (s *HitMakerService) InfluenceBlueprint(ctx context.Context, id string, influences []domain.InfluenceDescriptor, targetMood, targetGenre string) (domain.HitMakerInfluenceResponse, error) {
	bp, err := s.blueprints.GetBlueprint(ctx, id)
	if err != nil {
		return domain.HitMakerInfluenceResponse{}, fmt.Errorf("service: load blueprint: %w", err)
	}
	return s.engine.ApplyInfluencesToBlueprint(bp, influences, targetMood, targetGenre), nil
}

// InfluenceProject blends influences into a stored manual project's DNA.
func (s *HitMakerService) InfluenceProject(ctx context.Context, id string, influences []domain.InfluenceDescriptor, targetMood, targetGenre string) (domain.HitMakerInfluenceResponse, error) {
	detail, err := s.projects.GetProjectDetail(ctx, id)
	if err != nil {
		return domain.HitMakerInfluenceResponse{}, fmt.Errorf("service: load project: %w", err)
	}
	return s.engine.ApplyInfluencesToProject(detail, influences, targetMood, targetGenre), nil
}
