package feature

import (
	"context"

	"github.com/stylemart/stylemart/internal/domain"
)

// CatalogReader lists the full product catalog for feature building.
type CatalogReader interface {
	List(ctx context.Context) ([]domain.Product, error)
}
