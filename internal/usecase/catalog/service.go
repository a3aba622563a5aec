// Package catalog serves storefront browsing: product listings with
// category, search and gender filters, category enumeration, and product
// detail lookups.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/stylemart/stylemart/internal/domain"
)

// Listing limits. Filtered queries return fewer rows than the default
// landing-page listing.
const (
	defaultLimit  = 150
	filteredLimit = 100
)

// BrowseQuery holds the optional catalog browsing filters.
type BrowseQuery struct {
	Category string
	Search   string
	Gender   domain.Gender // empty = no gender filtering
}

// Service handles catalog browsing.
type Service struct {
	products Repository
}

// New creates a catalog service.
func New(products Repository) *Service {
	return &Service{products: products}
}

// Browse returns products matching the query, ordered by article id.
// Gender filtering uses the same classifier as recommendations so the two
// paths never drift apart.
func (s *Service) Browse(ctx context.Context, q BrowseQuery) ([]domain.Product, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	limit := defaultLimit
	if q.Category != "" || q.Search != "" {
		limit = filteredLimit
	}

	search := strings.ToLower(q.Search)
	out := make([]domain.Product, 0, limit)
	for _, p := range all {
		if len(out) >= limit {
			break
		}
		if q.Category != "" && p.IndexGroup() != q.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name()), search) {
			continue
		}
		if q.Gender != "" && !domain.VisibleTo(p, q.Gender) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Categories returns the distinct non-empty top-level category names, sorted.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	seen := make(map[string]bool)
	var out []string
	for _, p := range all {
		name := p.IndexGroup()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Get returns a single product. Returns domain.ErrProductNotFound when the
// article id is unknown.
func (s *Service) Get(ctx context.Context, articleID int64) (domain.Product, error) {
	return s.products.Get(ctx, articleID)
}

// GetMulti resolves products by id, preserving input order and skipping
// unknown ids.
func (s *Service) GetMulti(ctx context.Context, articleIDs []int64) ([]domain.Product, error) {
	return s.products.GetMulti(ctx, articleIDs)
}

// Count returns the catalog size.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.products.Count(ctx)
}
