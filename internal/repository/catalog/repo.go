// Package catalog reads product records from Redis hashes.
//
// Products are written by the external data loader under
// <prefix>product:<articleID>; this service never mutates them.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/stylemart/stylemart/internal/domain"
)

// store is the consumer interface for catalog reads (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the catalog reader contracts of the usecase layer.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a catalog repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Get returns a product by article id.
func (r *Repo) Get(ctx context.Context, articleID int64) (domain.Product, error) {
	key := r.productKey(articleID)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.Product{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return parseProduct(articleID, m), nil
}

// GetMulti resolves article ids to products, preserving the input order.
// Unknown ids are skipped, not errors.
func (r *Repo) GetMulti(ctx context.Context, articleIDs []int64) ([]domain.Product, error) {
	if len(articleIDs) == 0 {
		return nil, nil
	}

	keys := make([]string, len(articleIDs))
	for i, id := range articleIDs {
		keys[i] = r.productKey(id)
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w", err)
	}

	out := make([]domain.Product, 0, len(articleIDs))
	for i, m := range maps {
		if len(m) == 0 {
			continue
		}
		out = append(out, parseProduct(articleIDs[i], m))
	}
	return out, nil
}

// List returns the full catalog ordered by ascending article id.
func (r *Repo) List(ctx context.Context) ([]domain.Product, error) {
	keys, err := r.store.Scan(ctx, r.keyPrefix+"product:*")
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}

	ids := make([]int64, 0, len(keys))
	for _, key := range keys {
		id, ok := r.parseProductKey(key)
		if !ok {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return r.GetMulti(ctx, ids)
}

// Count returns the number of products in the catalog.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.keyPrefix+"product:*")
	if err != nil {
		return 0, fmt.Errorf("scan products: %w", err)
	}
	return len(keys), nil
}

func (r *Repo) productKey(articleID int64) string {
	return fmt.Sprintf("%sproduct:%d", r.keyPrefix, articleID)
}

// parseProductKey extracts the article id from a product key.
func (r *Repo) parseProductKey(key string) (int64, bool) {
	raw, ok := strings.CutPrefix(key, r.keyPrefix+"product:")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
