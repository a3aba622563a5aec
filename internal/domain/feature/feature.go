// Package feature derives fixed-length numeric vectors from a product's
// categorical attributes via deterministic hash-to-bucket mapping.
package feature

import (
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/stylemart/stylemart/internal/domain"
)

// Dim is the fixed feature vector dimension: one slot per categorical
// attribute (product type, colour group, index group, garment group).
const Dim = 4

// Bucket counts per attribute. Sizes are part of the similarity contract:
// changing them reshuffles every vector.
var bucketSizes = [Dim]uint64{1000, 50, 20, 100}

// Vector is a product's bucketed attribute representation.
type Vector [Dim]float64

// FromProduct builds the feature vector for a product. A missing attribute
// maps to bucket 0; building never fails.
func FromProduct(p domain.Product) Vector {
	attrs := [Dim]string{p.ProductType(), p.ColourGroup(), p.IndexGroup(), p.GarmentGroup()}
	var v Vector
	for i, a := range attrs {
		v[i] = float64(bucket(a, bucketSizes[i]))
	}
	return v
}

// bucket maps an attribute string to a bucket index. xxhash is seedless and
// stable across processes, so vectors are reproducible between restarts.
func bucket(attr string, size uint64) uint64 {
	if attr == "" {
		return 0
	}
	return xxhash.Sum64String(attr) % size
}

// Cosine returns the cosine similarity of two vectors in [-1, 1].
// A zero vector yields 0 against everything.
func Cosine(a, b Vector) float64 {
	var dot, normA, normB float64
	for i := 0; i < Dim; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
