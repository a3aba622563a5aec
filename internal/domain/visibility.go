package domain

import "strings"

// Gender-indicator terms matched against category text. "women" also
// contains "men", so a womenswear category is both male- and female-coded;
// that substring behavior is part of the filtering contract. "ladies" is
// listed alongside "lady" because the plural does not contain the singular,
// and Ladieswear must classify as female-coded.
var (
	maleTerms   = []string{"men", "boy", "male"}
	femaleTerms = []string{"women", "girl", "lady", "ladies", "female"}
)

// GenderMatch reports whether a product with the given top-level category
// and garment group text is visible to the given gender. Items matching
// neither term set are unisex and visible to everyone.
func GenderMatch(indexGroup, garmentGroup string, g Gender) bool {
	category := strings.ToLower(indexGroup) + " " + strings.ToLower(garmentGroup)

	isMale := containsAny(category, maleTerms)
	isFemale := containsAny(category, femaleTerms)
	isUnisex := !isMale && !isFemale

	switch g {
	case GenderMale:
		return isMale || isUnisex
	case GenderFemale:
		return isFemale || isUnisex
	default:
		return isUnisex
	}
}

// VisibleTo reports whether a product may be shown to the given gender.
// Suit-type products are hidden from everyone regardless of gender coding.
func VisibleTo(p Product, g Gender) bool {
	if strings.Contains(strings.ToLower(p.ProductType()), "suit") {
		return false
	}
	return GenderMatch(p.IndexGroup(), p.GarmentGroup(), g)
}

// FilterByGender keeps the products visible to the given gender,
// preserving order.
func FilterByGender(items []Product, g Gender) []Product {
	return FilterByGenderN(items, g, len(items))
}

// FilterByGenderN keeps at most n visible products, consuming items in
// order and stopping as soon as n survivors are accumulated.
func FilterByGenderN(items []Product, g Gender, n int) []Product {
	if n < 0 {
		n = 0
	}
	out := make([]Product, 0, n)
	for _, p := range items {
		if len(out) >= n {
			break
		}
		if VisibleTo(p, g) {
			out = append(out, p)
		}
	}
	return out
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
