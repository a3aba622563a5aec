package catalog

import (
	"strconv"

	"github.com/stylemart/stylemart/internal/domain"
)

// Hash field names for product records. The external loader writes the
// same fields when importing the article feed.
const (
	fieldName         = "name"
	fieldProductType  = "product_type"
	fieldColourGroup  = "colour_group"
	fieldIndexGroup   = "index_group"
	fieldGarmentGroup = "garment_group"
	fieldDescription  = "description"
	fieldImagePath    = "image_path"
	fieldPrice        = "price"
)

// parseProduct hydrates a domain Product from a flat hash map.
// Missing attributes stay empty; they degrade to feature bucket 0 downstream.
func parseProduct(articleID int64, m map[string]string) domain.Product {
	price, _ := strconv.ParseFloat(m[fieldPrice], 64)
	return domain.NewProduct(
		articleID,
		m[fieldName],
		m[fieldProductType],
		m[fieldColourGroup],
		m[fieldIndexGroup],
		m[fieldGarmentGroup],
		m[fieldDescription],
		m[fieldImagePath],
		price,
	)
}
