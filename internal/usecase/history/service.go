// Package history records purchases and serves per-user purchase history.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/stylemart/stylemart/internal/domain"
)

// Entry pairs a purchase with its product for display. Product resolution
// can miss when the catalog changed since the purchase; such entries are
// dropped from listings, matching the storefront's lenient display policy.
type Entry struct {
	Purchase domain.Purchase
	Product  domain.Product
}

// Service handles purchase recording and history listing.
type Service struct {
	purchases PurchaseStore
	products  ProductReader
	users     UserChecker
	now       func() time.Time
}

// New creates a history service.
func New(purchases PurchaseStore, products ProductReader, users UserChecker) *Service {
	return &Service{purchases: purchases, products: products, users: users, now: time.Now}
}

// WithClock overrides the purchase timestamp source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Record appends a purchase for the user. The user must exist; the product
// is not validated, mirroring the permissive buy endpoint of the
// storefront feed.
func (s *Service) Record(ctx context.Context, userID, articleID int64) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user %d: %w", userID, err)
	}
	if !ok {
		return fmt.Errorf("user %d: %w", userID, domain.ErrUserNotFound)
	}

	p := domain.NewPurchase(userID, articleID, s.now().UnixMilli())
	if err := s.purchases.Record(ctx, p); err != nil {
		return fmt.Errorf("record purchase: %w", err)
	}
	return nil
}

// List returns the user's purchases, oldest first, with product details.
func (s *Service) List(ctx context.Context, userID int64) ([]Entry, error) {
	purchases, err := s.purchases.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	if len(purchases) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(purchases))
	for i, p := range purchases {
		ids[i] = p.ArticleID()
	}
	products, err := s.products.GetMulti(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ArticleID()] = p
	}

	out := make([]Entry, 0, len(purchases))
	for _, p := range purchases {
		product, ok := byID[p.ArticleID()]
		if !ok {
			continue
		}
		out = append(out, Entry{Purchase: p, Product: product})
	}
	return out, nil
}
