// Package similar ranks catalog products by feature vector similarity.
package similar

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/stylemart/stylemart/internal/domain/feature"
	"github.com/stylemart/stylemart/internal/metrics"
)

// DefaultBatchSize bounds peak memory when scoring huge catalogs.
// Batching changes computation granularity only, never the result.
const DefaultBatchSize = 1000

// Service computes similar-product rankings.
type Service struct {
	features  FeatureProvider
	batchSize int
	logger    *zap.Logger

	// rng fills leftover slots with random catalog products when fewer
	// than k similar items exist. Guarded by mu: rand.Rand is not safe
	// for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a similarity service. batchSize <= 0 selects DefaultBatchSize.
func New(features FeatureProvider, batchSize int, rng *rand.Rand, logger *zap.Logger) *Service {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Service{features: features, batchSize: batchSize, rng: rng, logger: logger}
}

type scored struct {
	articleID int64
	score     float64
}

// SimilarItems returns up to k article ids most similar to the target,
// most similar first, never including the target itself. An unknown target
// or an empty catalog yields an empty result, not an error.
//
// The similarity-ranked prefix is deterministic; slots padded from the
// catalog at random are not, unless the service's rand source is seeded.
func (s *Service) SimilarItems(ctx context.Context, articleID int64, k int) ([]int64, error) {
	if k < 1 {
		return nil, nil
	}

	vectors, err := s.features.Vectors(ctx)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, nil
	}
	target, ok := vectors[articleID]
	if !ok {
		return nil, nil
	}

	metrics.SimilarQueriesTotal.Inc()

	// Deterministic iteration order: ascending article id.
	ids := make([]int64, 0, len(vectors))
	for id := range vectors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	// Score in fixed-size batches to bound peak memory.
	scores := make([]scored, 0, len(ids))
	for start := 0; start < len(ids); start += s.batchSize {
		end := start + s.batchSize
		if end > len(ids) {
			end = len(ids)
		}
		for _, id := range ids[start:end] {
			scores = append(scores, scored{articleID: id, score: feature.Cosine(target, vectors[id])})
		}
	}

	// Rank by score descending; ties break on ascending article id so
	// results are reproducible regardless of catalog query order.
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].articleID < scores[j].articleID
	})

	// Walk the ranking top-down, skipping self-matches, and keep the
	// first k survivors.
	picked := make([]int64, 0, k)
	chosen := make(map[int64]bool, k)
	for _, sc := range scores {
		if len(picked) >= k {
			break
		}
		if sc.articleID == articleID {
			continue
		}
		picked = append(picked, sc.articleID)
		chosen[sc.articleID] = true
	}

	if len(picked) < k {
		s.logger.Debug("padding similar items from catalog",
			zap.Int64("article_id", articleID),
			zap.Int("ranked", len(picked)),
			zap.Int("k", k),
		)
		picked = s.padRandom(picked, chosen, ids, articleID, k)
	}

	return picked, nil
}

// padRandom fills remaining slots with catalog products in randomized
// order, skipping the target and anything already picked.
func (s *Service) padRandom(picked []int64, chosen map[int64]bool, ids []int64, target int64, k int) []int64 {
	shuffled := make([]int64, len(ids))
	copy(shuffled, ids)

	s.mu.Lock()
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	s.mu.Unlock()

	for _, id := range shuffled {
		if len(picked) >= k {
			break
		}
		if id == target || chosen[id] {
			continue
		}
		picked = append(picked, id)
		chosen[id] = true
	}
	return picked
}
