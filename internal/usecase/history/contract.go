package history

import (
	"context"

	"github.com/stylemart/stylemart/internal/domain"
)

// PurchaseStore records and lists purchases.
type PurchaseStore interface {
	Record(ctx context.Context, p domain.Purchase) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Purchase, error)
}

// ProductReader resolves purchased products for display.
type ProductReader interface {
	GetMulti(ctx context.Context, articleIDs []int64) ([]domain.Product, error)
}

// UserChecker verifies that the buyer account exists. Recording only needs
// presence, not the full record.
type UserChecker interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}
