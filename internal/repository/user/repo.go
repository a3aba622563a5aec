// Package user reads storefront account records from Redis hashes.
// Accounts are created by the auth service; this service only reads them.
package user

import (
	"context"
	"fmt"

	"github.com/stylemart/stylemart/internal/domain"
)

const (
	fieldUsername = "username"
	fieldGender   = "gender"
)

// store is the consumer interface for user reads (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Repo implements usecase user reader contracts.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a user repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Get returns a user by id. A record with an unparseable gender is treated
// as absent: the gender attribute is required for recommendation filtering.
func (r *Repo) Get(ctx context.Context, userID int64) (domain.User, error) {
	key := fmt.Sprintf("%suser:%d", r.keyPrefix, userID)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.User{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}

	gender, err := domain.ParseGender(m[fieldGender])
	if err != nil {
		return domain.User{}, fmt.Errorf("user %d: %w", userID, err)
	}

	return domain.NewUser(userID, m[fieldUsername], gender), nil
}

// Exists reports whether an account record is present, without reading its
// fields.
func (r *Repo) Exists(ctx context.Context, userID int64) (bool, error) {
	key := fmt.Sprintf("%suser:%d", r.keyPrefix, userID)
	ok, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", key, err)
	}
	return ok, nil
}
