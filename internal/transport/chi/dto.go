package chi

import (
	"github.com/stylemart/stylemart/internal/domain"
	"github.com/stylemart/stylemart/internal/usecase/history"
)

// productSummary is the listing shape shared by browse, recommendation and
// similar-product responses.
type productSummary struct {
	ArticleID    int64   `json:"article_id"`
	Name         string  `json:"name"`
	ProductType  string  `json:"product_type"`
	ColourGroup  string  `json:"colour_group"`
	IndexGroup   string  `json:"index_group"`
	GarmentGroup string  `json:"garment_group"`
	ImagePath    string  `json:"image_path"`
	Price        float64 `json:"price"`
}

// productDetail adds the free-text description and a similar-products rail.
type productDetail struct {
	productSummary
	Description     string           `json:"description"`
	SimilarProducts []productSummary `json:"similar_products"`
}

// purchaseEntry is one row of a user's purchase history.
type purchaseEntry struct {
	productSummary
	PurchasedAt int64 `json:"purchased_at"`
}

type buyRequest struct {
	UserID    int64 `json:"user_id"`
	ArticleID int64 `json:"article_id"`
}

type statusResponse struct {
	ModelLoaded bool   `json:"model_loaded"`
	ModelTrees  int    `json:"model_trees,omitempty"`
	ModelError  string `json:"model_error,omitempty"`
	Products    int    `json:"products"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func summaryFromProduct(p domain.Product) productSummary {
	return productSummary{
		ArticleID:    p.ArticleID(),
		Name:         p.Name(),
		ProductType:  p.ProductType(),
		ColourGroup:  p.ColourGroup(),
		IndexGroup:   p.IndexGroup(),
		GarmentGroup: p.GarmentGroup(),
		ImagePath:    p.ImagePath(),
		Price:        p.Price(),
	}
}

func summariesFromProducts(products []domain.Product) []productSummary {
	out := make([]productSummary, len(products))
	for i, p := range products {
		out[i] = summaryFromProduct(p)
	}
	return out
}

func entriesFromHistory(entries []history.Entry) []purchaseEntry {
	out := make([]purchaseEntry, len(entries))
	for i, e := range entries {
		out[i] = purchaseEntry{
			productSummary: summaryFromProduct(e.Product),
			PurchasedAt:    e.Purchase.CreatedAt(),
		}
	}
	return out
}
