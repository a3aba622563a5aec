package domain

// DefaultPrice is used when the store carries no price for a product.
// The upstream feed has no price column, so every product sells at a flat rate.
const DefaultPrice = 29.99

// Product is an immutable catalog entry. Only the four categorical
// attributes (type, colour group, index group, garment group) participate
// in recommendation; the remaining fields are display-only.
type Product struct {
	articleID    int64
	name         string
	productType  string
	colourGroup  string
	indexGroup   string
	garmentGroup string
	description  string
	imagePath    string
	price        float64
}

// NewProduct creates a Product. A zero price falls back to DefaultPrice.
func NewProduct(
	articleID int64, name, productType, colourGroup, indexGroup, garmentGroup,
	description, imagePath string, price float64,
) Product {
	if price <= 0 {
		price = DefaultPrice
	}
	return Product{
		articleID:    articleID,
		name:         name,
		productType:  productType,
		colourGroup:  colourGroup,
		indexGroup:   indexGroup,
		garmentGroup: garmentGroup,
		description:  description,
		imagePath:    imagePath,
		price:        price,
	}
}

// ArticleID returns the catalog identifier.
func (p Product) ArticleID() int64 { return p.articleID }

// Name returns the display name.
func (p Product) Name() string { return p.name }

// ProductType returns the product type attribute (e.g. "Sweater").
func (p Product) ProductType() string { return p.productType }

// ColourGroup returns the colour group attribute.
func (p Product) ColourGroup() string { return p.colourGroup }

// IndexGroup returns the top-level category attribute (e.g. "Menswear").
func (p Product) IndexGroup() string { return p.indexGroup }

// GarmentGroup returns the garment group attribute (e.g. "Knitwear").
func (p Product) GarmentGroup() string { return p.garmentGroup }

// Description returns the free-text description.
func (p Product) Description() string { return p.description }

// ImagePath returns the relative image reference (e.g. "010/010875015.jpg").
func (p Product) ImagePath() string { return p.imagePath }

// Price returns the display price.
func (p Product) Price() float64 { return p.price }
