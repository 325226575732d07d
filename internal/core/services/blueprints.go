// Package services contains the application core: blueprint generation,
// hitmaker analysis and instrumental render orchestration, wired to
// adapters through the ports interfaces.
package services

import (
	"context"
	"fmt"
	"log"

	"github.com/calliope-labs/songforge/internal/core/domain"
	"github.com/calliope-labs/songforge/internal/core/ports"
)

// BlueprintService generates song blueprints and persists them. When the
// primary generator fails (an LLM engine being down is routine), it falls
// back to the deterministic fake generator so the endpoint stays usable.
type BlueprintService struct {
	generator ports.BlueprintGenerator
	fallback  ports.BlueprintGenerator
	repo      ports.BlueprintRepository
}

// NewBlueprintService constructs a BlueprintService. fallback may be nil
// to disable fallback generation.
func NewBlueprintService(generator, fallback ports.BlueprintGenerator, repo ports.BlueprintRepository) *BlueprintService {
	return &BlueprintService{
		generator: generator,
		fallback:  fallback,
		repo:      repo,
	}
}

// Generate produces a blueprint for the request and saves it.
func (s *BlueprintService) Generate(ctx context.Context, req domain.BlueprintRequest) (domain.Blueprint, error) {
	bp, err := s.generator.GenerateBlueprint(ctx, req)
	if err != nil {
		if s.fallback == nil {
			return domain.Blueprint{}, fmt.Errorf("service: generate blueprint: %w", err)
		}
		log.Printf("WARN service: blueprint generator failed, using fallback: %v", err)
		bp, err = s.fallback.GenerateBlueprint(ctx, req)
		if err != nil {
			return domain.Blueprint{}, fmt.Errorf("service: fallback generator: %w", err)
		}
	}

	if err := s.repo.SaveBlueprint(ctx, bp); err != nil {
		return domain.Blueprint{}, fmt.Errorf("service: save blueprint: %w", err)
	}

	return bp, nil
}

// Get loads a stored blueprint by song id.
func (s *BlueprintService) Get(ctx context.Context, id string) (domain.Blueprint, error) {
	bp, err := s.repo.GetBlueprint(ctx, id)
	if err != nil {
		return domain.Blueprint{}, fmt.Errorf("service: load blueprint: %w", err)
	}
	return bp, nil
}
