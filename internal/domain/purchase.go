package domain

// Purchase associates a user with a bought product. Purchases are
// append-only: there are no cancellation or return semantics.
type Purchase struct {
	userID    int64
	articleID int64
	createdAt int64 // unix milliseconds
}

// NewPurchase creates a Purchase.
func NewPurchase(userID, articleID, createdAt int64) Purchase {
	return Purchase{userID: userID, articleID: articleID, createdAt: createdAt}
}

// UserID returns the buyer.
func (p Purchase) UserID() int64 { return p.userID }

// ArticleID returns the bought product.
func (p Purchase) ArticleID() int64 { return p.articleID }

// CreatedAt returns the purchase time in unix milliseconds.
func (p Purchase) CreatedAt() int64 { return p.createdAt }
