// Package feature owns the process-wide feature vector cache.
//
// Vectors are built lazily from the full catalog on first use and kept for
// the process lifetime. The cache never refreshes itself when the catalog
// changes; callers that reload the catalog must call Invalidate or Rebuild.
package feature

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/stylemart/stylemart/internal/domain/feature"
	"github.com/stylemart/stylemart/internal/metrics"
)

// Service builds and caches product feature vectors.
type Service struct {
	catalog CatalogReader
	logger  *zap.Logger

	mu      sync.RWMutex
	vectors map[int64]feature.Vector

	// group collapses concurrent first builds into a single catalog read.
	group singleflight.Group
}

// New creates a feature cache service.
func New(catalog CatalogReader, logger *zap.Logger) *Service {
	return &Service{catalog: catalog, logger: logger}
}

// Vectors returns the cached feature vectors, building them on first use.
// The returned map is shared and must be treated as read-only.
func (s *Service) Vectors(ctx context.Context) (map[int64]feature.Vector, error) {
	s.mu.RLock()
	cached := s.vectors
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := s.group.Do("build", func() (any, error) {
		// Re-check: a build may have completed between the cache miss
		// above and entering the flight group.
		s.mu.RLock()
		built := s.vectors
		s.mu.RUnlock()
		if built != nil {
			return built, nil
		}
		return s.build(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(map[int64]feature.Vector), nil
}

// Invalidate drops the cached vectors; the next Vectors call rebuilds them.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.vectors = nil
	s.mu.Unlock()
}

// Rebuild recomputes the cache from the current catalog.
func (s *Service) Rebuild(ctx context.Context) error {
	s.Invalidate()
	_, err := s.Vectors(ctx)
	return err
}

func (s *Service) build(ctx context.Context) (map[int64]feature.Vector, error) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	vectors := make(map[int64]feature.Vector, len(products))
	for _, p := range products {
		vectors[p.ArticleID()] = feature.FromProduct(p)
	}

	s.mu.Lock()
	s.vectors = vectors
	s.mu.Unlock()

	metrics.FeatureCacheBuildsTotal.Inc()
	s.logger.Info("feature cache built", zap.Int("products", len(vectors)))
	return vectors, nil
}
