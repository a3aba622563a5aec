package recommend

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/stylemart/stylemart/internal/domain"
)

// --- Mocks ---

type mockUsers struct {
	user domain.User
	err  error
}

func (m *mockUsers) Get(_ context.Context, _ int64) (domain.User, error) {
	return m.user, m.err
}

type mockPurchases struct {
	purchases []domain.Purchase
	err       error
}

func (m *mockPurchases) ListByUser(_ context.Context, _ int64) ([]domain.Purchase, error) {
	return m.purchases, m.err
}

type mockSimilar struct {
	// byArticle maps a purchased article to its similar items.
	byArticle map[int64][]int64
	err       error
	lastK     int
}

func (m *mockSimilar) SimilarItems(_ context.Context, articleID int64, k int) ([]int64, error) {
	m.lastK = k
	return m.byArticle[articleID], m.err
}

type mockCatalog struct {
	products map[int64]domain.Product
	all      []domain.Product
}

func (m *mockCatalog) GetMulti(_ context.Context, ids []int64) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCatalog) List(_ context.Context) ([]domain.Product, error) {
	return m.all, nil
}

// --- Fixtures ---

func maleSweater(id int64) domain.Product {
	return domain.NewProduct(id, "sweater", "Sweater", "Black", "Menswear", "Knitwear", "", "", 0)
}

func femaleDress(id int64) domain.Product {
	return domain.NewProduct(id, "dress", "Dress", "Red", "Ladieswear", "Dresses", "", "", 0)
}

func catalogOf(products ...domain.Product) *mockCatalog {
	m := &mockCatalog{products: make(map[int64]domain.Product), all: products}
	for _, p := range products {
		m.products[p.ArticleID()] = p
	}
	return m
}

func maleUser() *mockUsers {
	return &mockUsers{user: domain.NewUser(7, "sam", domain.GenderMale)}
}

func purchaseOf(articleIDs ...int64) *mockPurchases {
	m := &mockPurchases{}
	for i, id := range articleIDs {
		m.purchases = append(m.purchases, domain.NewPurchase(7, id, int64(i)))
	}
	return m
}

// --- Tests ---

func TestRecommend_UnknownUser(t *testing.T) {
	svc := New(&mockUsers{err: domain.ErrUserNotFound}, purchaseOf(1), &mockSimilar{}, catalogOf(), 0, zap.NewNop())

	got, err := svc.Recommend(context.Background(), 7, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestRecommend_UserStoreError(t *testing.T) {
	svc := New(&mockUsers{err: errors.New("redis down")}, purchaseOf(1), &mockSimilar{}, catalogOf(), 0, zap.NewNop())
	if _, err := svc.Recommend(context.Background(), 7, 5); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecommend_NoPurchases(t *testing.T) {
	svc := New(maleUser(), purchaseOf(), &mockSimilar{}, catalogOf(maleSweater(1)), 0, zap.NewNop())

	got, err := svc.Recommend(context.Background(), 7, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatal("users without history must get no recommendations, not a popularity fallback")
	}
}

func TestRecommend_Scenario(t *testing.T) {
	// User bought item 1; catalog is sweater/sweater/dress. Item 2 is
	// similar, male-coded and unpurchased -> recommended. Item 1 is
	// already purchased, item 3 is female-coded -> both excluded.
	similar := &mockSimilar{byArticle: map[int64][]int64{1: {2, 3}}}
	svc := New(maleUser(), purchaseOf(1), similar,
		catalogOf(maleSweater(1), maleSweater(2), femaleDress(3)), 0, zap.NewNop())

	got, err := svc.Recommend(context.Background(), 7, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ArticleID() != 2 {
		t.Fatalf("expected [2], got %d results", len(got))
	}
	if similar.lastK != 20 {
		t.Errorf("similarity engine should be asked for 20 neighbors, got %d", similar.lastK)
	}
}

func TestRecommend_VotesRankCandidates(t *testing.T) {
	// Item 4 appears as similar to both purchases (2 votes), items 3 and 5
	// once each. Expect 4 first, then 3 and 5 in first-seen order.
	similar := &mockSimilar{byArticle: map[int64][]int64{
		1: {3, 4},
		2: {4, 5},
	}}
	svc := New(maleUser(), purchaseOf(1, 2), similar,
		catalogOf(maleSweater(3), maleSweater(4), maleSweater(5)), 0, zap.NewNop())

	got, err := svc.Recommend(context.Background(), 7, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	want := []int64{4, 3, 5}
	for i, p := range got {
		if p.ArticleID() != want[i] {
			t.Fatalf("expected order %v, got position %d = %d", want, i, p.ArticleID())
		}
	}
}

func TestRecommend_NeverRecommendsPurchased(t *testing.T) {
	similar := &mockSimilar{byArticle: map[int64][]int64{
		1: {2, 3},
		2: {1, 3},
	}}
	svc := New(maleUser(), purchaseOf(1, 2), similar,
		catalogOf(maleSweater(1), maleSweater(2), maleSweater(3)), 0, zap.NewNop())

	got, err := svc.Recommend(context.Background(), 7, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range got {
		if p.ArticleID() == 1 || p.ArticleID() == 2 {
			t.Fatalf("purchased item %d recommended", p.ArticleID())
		}
	}
}

func TestRecommend_ExcludesSuits(t *testing.T) {
	suit := domain.NewProduct(4, "suit", "Ladies Suit", "Black", "Menswear", "Knitwear", "", "", 0)
	similar := &mockSimilar{byArticle: map[int64][]int64{1: {4, 2}}}
	svc := New(maleUser(), purchaseOf(1), similar,
		catalogOf(maleSweater(1), maleSweater(2), suit), 0, zap.NewNop())

	got, err := svc.Recommend(context.Background(), 7, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ArticleID() != 2 {
		t.Fatalf("suit must be filtered, expected [2], got %d results", len(got))
	}
}

func TestRecommend_PopularityFallback(t *testing.T) {
	// Similarity yields nothing for any purchase: fall back to the
	// lowest-id products, gender-filtered.
	similar := &mockSimilar{byArticle: map[int64][]int64{}}
	svc := New(maleUser(), purchaseOf(1), similar,
		catalogOf(maleSweater(1), maleSweater(2), femaleDress(3), maleSweater(4)), 0, zap.NewNop())

	got, err := svc.Recommend(context.Background(), 7, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Purchased and gender-mismatched products stay excluded in the
	// fallback as well.
	for _, p := range got {
		if p.ArticleID() == 1 {
			t.Fatal("purchased product in fallback")
		}
		if p.ArticleID() == 3 {
			t.Fatal("female-coded product in male fallback")
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected fallback [2 4], got %d products", len(got))
	}
}

func TestRecommend_TruncatesAfterFiltering(t *testing.T) {
	products := []domain.Product{maleSweater(2), maleSweater(3), maleSweater(4), maleSweater(5)}
	similar := &mockSimilar{byArticle: map[int64][]int64{1: {2, 3, 4, 5}}}
	svc := New(maleUser(), purchaseOf(1), similar, catalogOf(products...), 0, zap.NewNop())

	got, err := svc.Recommend(context.Background(), 7, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ArticleID() != 2 || got[1].ArticleID() != 3 {
		t.Fatalf("expected first two survivors [2 3], got %d results", len(got))
	}
}

func TestRecommend_ConfiguredDefaultK(t *testing.T) {
	// k=0 requests fall back to the configured list size, not the
	// compiled-in constant.
	similar := &mockSimilar{byArticle: map[int64][]int64{1: {2, 3, 4, 5}}}
	svc := New(maleUser(), purchaseOf(1), similar,
		catalogOf(maleSweater(2), maleSweater(3), maleSweater(4), maleSweater(5)), 2, zap.NewNop())

	got, err := svc.Recommend(context.Background(), 7, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ArticleID() != 2 || got[1].ArticleID() != 3 {
		t.Fatalf("expected [2 3] under configured default, got %d results", len(got))
	}
}

func TestRecommend_SimilarityError(t *testing.T) {
	similar := &mockSimilar{err: errors.New("boom")}
	svc := New(maleUser(), purchaseOf(1), similar, catalogOf(maleSweater(1)), 0, zap.NewNop())
	if _, err := svc.Recommend(context.Background(), 7, 5); err == nil {
		t.Fatal("expected error")
	}
}
