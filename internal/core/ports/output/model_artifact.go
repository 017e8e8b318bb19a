package ports

import (
	"context"

	"maternal-care-service/internal/core/domain"
)

// ModelArtifact is a loaded predictive model. Implementations must be safe
// for concurrent Predict calls.
type ModelArtifact interface {
	// Predict runs inference on a single-sample tensor of shape (1, n)
	Predict(ctx context.Context, input domain.Tensor) (domain.Tensor, error)
}

// ArtifactLoader materializes a ModelArtifact from a backend-specific location
type ArtifactLoader interface {
	Load(ctx context.Context, location string) (ModelArtifact, error)
}

// ArtifactLoaderFunc adapts a function to ArtifactLoader
type ArtifactLoaderFunc func(ctx context.Context, location string) (ModelArtifact, error)

func (f ArtifactLoaderFunc) Load(ctx context.Context, location string) (ModelArtifact, error) {
	return f(ctx, location)
}
