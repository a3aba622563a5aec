package purchase

import (
	"context"
	"testing"

	"github.com/stylemart/stylemart/internal/domain"
)

type mockStore struct {
	rpushFn  func(ctx context.Context, key string, values ...string) error
	lrangeFn func(ctx context.Context, key string, start, stop int64) ([]string, error)
}

func (m *mockStore) RPush(ctx context.Context, key string, values ...string) error {
	if m.rpushFn != nil {
		return m.rpushFn(ctx, key, values...)
	}
	return nil
}

func (m *mockStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if m.lrangeFn != nil {
		return m.lrangeFn(ctx, key, start, stop)
	}
	return nil, nil
}

func TestRecord(t *testing.T) {
	var gotKey, gotValue string
	store := &mockStore{
		rpushFn: func(_ context.Context, key string, values ...string) error {
			gotKey = key
			if len(values) == 1 {
				gotValue = values[0]
			}
			return nil
		},
	}
	repo := New(store, "stylemart:")

	err := repo.Record(context.Background(), domain.NewPurchase(5, 42, 1700000000000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "stylemart:purchases:5" {
		t.Errorf("unexpected key %q", gotKey)
	}
	if gotValue != `{"article_id":42,"created_at":1700000000000}` {
		t.Errorf("unexpected value %q", gotValue)
	}
}

func TestListByUser_ChronologicalOrder(t *testing.T) {
	store := &mockStore{
		lrangeFn: func(_ context.Context, key string, start, stop int64) ([]string, error) {
			if key != "stylemart:purchases:5" || start != 0 || stop != -1 {
				t.Errorf("unexpected range call %q [%d, %d]", key, start, stop)
			}
			return []string{
				`{"article_id":1,"created_at":100}`,
				`not json`,
				`{"article_id":2,"created_at":200}`,
			}, nil
		},
	}
	repo := New(store, "stylemart:")

	got, err := repo.ListByUser(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 purchases, got %d", len(got))
	}
	if got[0].ArticleID() != 1 || got[1].ArticleID() != 2 {
		t.Errorf("order not preserved: %d, %d", got[0].ArticleID(), got[1].ArticleID())
	}
	if got[0].UserID() != 5 || got[0].CreatedAt() != 100 {
		t.Errorf("unexpected first purchase: %+v", got[0])
	}
}

func TestListByUser_Empty(t *testing.T) {
	repo := New(&mockStore{}, "stylemart:")
	got, err := repo.ListByUser(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no purchases, got %d", len(got))
	}
}
