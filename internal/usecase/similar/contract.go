package similar

import (
	"context"

	"github.com/stylemart/stylemart/internal/domain/feature"
)

// FeatureProvider supplies the cached per-product feature vectors.
type FeatureProvider interface {
	Vectors(ctx context.Context) (map[int64]feature.Vector, error)
}
