package catalog

import (
	"context"

	"github.com/stylemart/stylemart/internal/domain"
)

// Repository reads catalog products.
type Repository interface {
	Get(ctx context.Context, articleID int64) (domain.Product, error)
	GetMulti(ctx context.Context, articleIDs []int64) ([]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Count(ctx context.Context) (int, error)
}
