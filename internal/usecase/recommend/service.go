// Package recommend composes per-user recommendations from purchase
// history: products similar to past purchases are tallied by how often
// they appear, ranked by vote count, and gender-filtered.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/stylemart/stylemart/internal/domain"
	"github.com/stylemart/stylemart/internal/metrics"
)

const (
	// DefaultK is the recommendation list size when neither the caller nor
	// the configuration asks for one.
	DefaultK = 50

	// neighborK is how many similar items each purchase contributes to the
	// candidate pool.
	neighborK = 20

	// oversample widens the candidate cut before gender filtering so the
	// filter has enough material to fill k slots.
	oversample = 3
)

// Service computes personalized recommendations.
type Service struct {
	users     UserReader
	purchases PurchaseReader
	similar   SimilarityEngine
	catalog   CatalogReader
	defaultK  int
	logger    *zap.Logger
}

// New creates a recommendation service. defaultK sizes the recommendation
// list when a request does not ask for one; defaultK <= 0 falls back to
// DefaultK.
func New(
	users UserReader,
	purchases PurchaseReader,
	similar SimilarityEngine,
	catalog CatalogReader,
	defaultK int,
	logger *zap.Logger,
) *Service {
	if defaultK <= 0 {
		defaultK = DefaultK
	}
	return &Service{
		users:     users,
		purchases: purchases,
		similar:   similar,
		catalog:   catalog,
		defaultK:  defaultK,
		logger:    logger,
	}
}

// Recommend returns up to k products for the user, best candidates first.
// An unknown user or a user with no purchase history gets an empty list;
// neither is an error. Already-purchased products are never recommended.
func (s *Service) Recommend(ctx context.Context, userID int64, k int) ([]domain.Product, error) {
	if k <= 0 {
		k = s.defaultK
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}

	purchases, err := s.purchases.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	if len(purchases) == 0 {
		// Deliberate policy: no history means no recommendations, not a
		// popularity fallback.
		return nil, nil
	}

	purchased := make(map[int64]bool, len(purchases))
	for _, p := range purchases {
		purchased[p.ArticleID()] = true
	}

	topIDs, err := s.tallyCandidates(ctx, purchases, purchased, k*oversample)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if len(topIDs) == 0 {
		products, err = s.popularityFallback(ctx, purchased, k*oversample)
	} else {
		products, err = s.catalog.GetMulti(ctx, topIDs)
	}
	if err != nil {
		return nil, err
	}

	result := domain.FilterByGenderN(products, user.Gender(), k)
	metrics.RecommendationsServedTotal.Add(float64(len(result)))
	return result, nil
}

// tallyCandidates votes candidates across the user's purchases: each
// appearance of a product among a purchase's similar items counts one
// vote. Purchases are iterated chronologically, so vote order (and the
// tie-break below) is reproducible.
func (s *Service) tallyCandidates(
	ctx context.Context, purchases []domain.Purchase, purchased map[int64]bool, limit int,
) ([]int64, error) {
	votes := make(map[int64]int)
	var firstSeen []int64

	for _, p := range purchases {
		similar, err := s.similar.SimilarItems(ctx, p.ArticleID(), neighborK)
		if err != nil {
			return nil, fmt.Errorf("similar items for %d: %w", p.ArticleID(), err)
		}
		for _, id := range similar {
			if purchased[id] {
				continue
			}
			if _, seen := votes[id]; !seen {
				firstSeen = append(firstSeen, id)
			}
			votes[id]++
		}
	}

	// Vote count descending; equal counts keep first-seen order.
	sort.SliceStable(firstSeen, func(i, j int) bool {
		return votes[firstSeen[i]] > votes[firstSeen[j]]
	})

	if len(firstSeen) > limit {
		firstSeen = firstSeen[:limit]
	}
	return firstSeen, nil
}

// popularityFallback returns the lowest-id products as a deterministic
// popularity proxy when the similarity engine yields no candidates.
// Purchased products stay excluded even here.
func (s *Service) popularityFallback(
	ctx context.Context, purchased map[int64]bool, limit int,
) ([]domain.Product, error) {
	all, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	out := make([]domain.Product, 0, limit)
	for _, p := range all {
		if len(out) >= limit {
			break
		}
		if purchased[p.ArticleID()] {
			continue
		}
		out = append(out, p)
	}
	s.logger.Debug("similarity produced no candidates, using popularity fallback",
		zap.Int("products", len(out)))
	return out, nil
}
