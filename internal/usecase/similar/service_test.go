package similar

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"github.com/stylemart/stylemart/internal/domain"
	"github.com/stylemart/stylemart/internal/domain/feature"
)

type mockFeatures struct {
	vectors map[int64]feature.Vector
	err     error
}

func (m *mockFeatures) Vectors(_ context.Context) (map[int64]feature.Vector, error) {
	return m.vectors, m.err
}

// threeItemCatalog mirrors the canonical sweater/sweater/dress fixture:
// items 1 and 2 share identical attributes, item 3 differs.
func threeItemCatalog() map[int64]feature.Vector {
	sweater := domain.NewProduct(0, "s", "Sweater", "Black", "Menswear", "Knitwear", "", "", 0)
	dress := domain.NewProduct(0, "d", "Dress", "Red", "Ladieswear", "Dresses", "", "", 0)
	return map[int64]feature.Vector{
		1: feature.FromProduct(sweater),
		2: feature.FromProduct(sweater),
		3: feature.FromProduct(dress),
	}
}

func newService(vectors map[int64]feature.Vector, batchSize int) *Service {
	return New(&mockFeatures{vectors: vectors}, batchSize, rand.New(rand.NewSource(1)), zap.NewNop())
}

func TestSimilarItems_IdenticalAttributesRankFirst(t *testing.T) {
	svc := newService(threeItemCatalog(), 0)

	got, err := svc.SimilarItems(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected [2], got %v", got)
	}
}

func TestSimilarItems_NeverContainsTargetOrDuplicates(t *testing.T) {
	svc := newService(threeItemCatalog(), 0)

	for k := 1; k <= 5; k++ {
		got, err := svc.SimilarItems(context.Background(), 1, k)
		if err != nil {
			t.Fatalf("k=%d: unexpected error: %v", k, err)
		}
		if len(got) > k {
			t.Errorf("k=%d: got %d items", k, len(got))
		}
		seen := make(map[int64]bool)
		for _, id := range got {
			if id == 1 {
				t.Errorf("k=%d: result contains the target", k)
			}
			if seen[id] {
				t.Errorf("k=%d: duplicate id %d", k, id)
			}
			seen[id] = true
		}
	}
}

func TestSimilarItems_UnknownTarget(t *testing.T) {
	svc := newService(threeItemCatalog(), 0)
	got, err := svc.SimilarItems(context.Background(), 999, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestSimilarItems_EmptyCatalog(t *testing.T) {
	svc := newService(nil, 0)
	got, err := svc.SimilarItems(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestSimilarItems_FeatureError(t *testing.T) {
	svc := New(&mockFeatures{err: errors.New("boom")}, 0, rand.New(rand.NewSource(1)), zap.NewNop())
	if _, err := svc.SimilarItems(context.Background(), 1, 5); err == nil {
		t.Fatal("expected error")
	}
}

func TestSimilarItems_BatchingDoesNotChangeResult(t *testing.T) {
	vectors := make(map[int64]feature.Vector)
	for i := int64(1); i <= 50; i++ {
		vectors[i] = feature.Vector{float64(i % 7), float64(i % 5), float64(i % 3), float64(i % 11)}
	}

	large := newService(vectors, 1000)
	small := newService(vectors, 3)

	want, err := large.SimilarItems(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := small.SimilarItems(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: %d vs %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("batch size changed ranking at %d: %v vs %v", i, got, want)
		}
	}
}

func TestSimilarItems_RankedPrefixIsIdempotent(t *testing.T) {
	svc := newService(threeItemCatalog(), 0)

	first, err := svc.SimilarItems(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.SimilarItems(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Both ranked slots are similarity-ordered here (catalog has 3 items,
	// both non-targets rank), so repeated calls must agree entirely.
	if len(first) != 2 || len(second) != 2 || first[0] != second[0] || first[1] != second[1] {
		t.Fatalf("ranking not stable across calls: %v vs %v", first, second)
	}
	if first[0] != 2 {
		t.Fatalf("top-ranked item must be 2, got %v", first)
	}
}

func TestSimilarItems_PadsFromCatalogWithSeededRand(t *testing.T) {
	vectors := threeItemCatalog()

	a := newService(vectors, 0)
	b := newService(vectors, 0)

	// k exceeds the catalog: the two ranked survivors come first, nothing
	// else is available to pad with, and the catalog is exhausted.
	got, err := a.SimilarItems(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected catalog-exhausted result of 2, got %v", got)
	}

	// Identically seeded services produce identical padding.
	other, err := b.SimilarItems(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range got {
		if got[i] != other[i] {
			t.Fatalf("identically seeded services diverged: %v vs %v", got, other)
		}
	}
}

func TestSimilarItems_DeterministicTieBreak(t *testing.T) {
	// All items share one vector: every similarity ties at 1.0, so the
	// ranking must fall back to ascending article id.
	v := feature.Vector{1, 2, 3, 4}
	vectors := map[int64]feature.Vector{5: v, 3: v, 9: v, 1: v}
	svc := newService(vectors, 0)

	got, err := svc.SimilarItems(context.Background(), 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int64{1, 5, 9}
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSimilarItems_InvalidK(t *testing.T) {
	svc := newService(threeItemCatalog(), 0)
	got, err := svc.SimilarItems(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result for k=0, got %v", got)
	}
}
