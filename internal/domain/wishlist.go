package domain

// WishlistEntry is one element of a user's wishlist. The upstream API returns
// the collection in two shapes depending on the endpoint: bare product
// identifiers, or embedded product snapshots. Both are valid; ProductID is
// always populated, Product only for the embedded shape.
type WishlistEntry struct {
	ProductID string   `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
}
