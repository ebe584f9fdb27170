package domain

import (
	"github.com/shopspring/decimal"
)

// Product is a read-only catalog entry owned by the upstream commerce API.
// The gateway holds a cached copy for the duration of a single request.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CategoryID  string          `json:"category_id"`
	ImageURL    string          `json:"image_url"`
	RatingAvg   float64         `json:"rating_avg"` // 0 when the product has no ratings yet
}

// Category is reference data used for filtering and display.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}
