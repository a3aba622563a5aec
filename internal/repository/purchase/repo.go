// Package purchase stores purchase history as per-user Redis lists.
// RPUSH preserves insertion order, so LRANGE yields purchases
// chronologically -- the iteration order the recommender relies on.
package purchase

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/stylemart/stylemart/internal/domain"
)

// store is the consumer interface for purchase persistence (ISP).
type store interface {
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// entry is the stored list element.
type entry struct {
	ArticleID int64 `json:"article_id"`
	CreatedAt int64 `json:"created_at"`
}

// Repo implements usecase purchase contracts.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a purchase repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Record appends a purchase to the user's history.
func (r *Repo) Record(ctx context.Context, p domain.Purchase) error {
	data, err := json.Marshal(entry{ArticleID: p.ArticleID(), CreatedAt: p.CreatedAt()})
	if err != nil {
		return fmt.Errorf("marshal purchase: %w", err)
	}
	key := r.historyKey(p.UserID())
	if err := r.store.RPush(ctx, key, string(data)); err != nil {
		return fmt.Errorf("rpush %s: %w", key, err)
	}
	return nil
}

// ListByUser returns the user's purchases in chronological order.
// Entries that fail to decode are skipped.
func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]domain.Purchase, error) {
	key := r.historyKey(userID)
	raw, err := r.store.LRange(ctx, key, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", key, err)
	}

	out := make([]domain.Purchase, 0, len(raw))
	for _, item := range raw {
		var e entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue
		}
		out = append(out, domain.NewPurchase(userID, e.ArticleID, e.CreatedAt))
	}
	return out, nil
}

func (r *Repo) historyKey(userID int64) string {
	return fmt.Sprintf("%spurchases:%d", r.keyPrefix, userID)
}
