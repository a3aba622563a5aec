package recommend

import (
	"context"

	"github.com/stylemart/stylemart/internal/domain"
)

// UserReader resolves user accounts.
type UserReader interface {
	Get(ctx context.Context, userID int64) (domain.User, error)
}

// PurchaseReader lists a user's purchases in chronological order.
type PurchaseReader interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Purchase, error)
}

// SimilarityEngine ranks products similar to a target.
type SimilarityEngine interface {
	SimilarItems(ctx context.Context, articleID int64, k int) ([]int64, error)
}

// CatalogReader resolves and lists catalog products.
type CatalogReader interface {
	GetMulti(ctx context.Context, articleIDs []int64) ([]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}
