package ports

import (
	"context"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

// BlueprintGenerator turns a high-level song request into a full blueprint.
type BlueprintGenerator interface {
	GenerateBlueprint(ctx context.Context, req domain.BlueprintRequest) (domain.Blueprint, error)
}
