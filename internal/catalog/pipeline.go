// Package catalog implements the product discovery pipeline: a pure
// filter/sort/paginate transformation over the full product collection.
package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"shopgate/internal/domain"
)

// PageSize is the fixed number of products per result page.
const PageSize = 8

// SortKey selects the single ordering applied after filtering.
type SortKey string

const (
	SortNone       SortKey = ""
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating-desc"
	SortRatingAsc  SortKey = "rating-asc"
)

// ParseSortKey maps a query value to a SortKey; unknown values mean no sort.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc, SortRatingDesc, SortRatingAsc:
		return SortKey(s)
	default:
		return SortNone
	}
}

// Criteria is a conjunction of independent predicates plus an optional sort.
// Nil price bounds are unbounded. A MinRating of 0 matches everything, with a
// missing product rating treated as 0.
type Criteria struct {
	Query      string
	CategoryID string
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	MinRating  float64
	Sort       SortKey
}

func (c Criteria) matches(p domain.Product) bool {
	if c.Query != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(c.Query)) {
		return false
	}
	if c.CategoryID != "" && p.CategoryID != c.CategoryID {
		return false
	}
	if c.PriceMin != nil && p.Price.LessThan(*c.PriceMin) {
		return false
	}
	if c.PriceMax != nil && p.Price.GreaterThan(*c.PriceMax) {
		return false
	}
	if c.MinRating > 0 && p.RatingAvg < c.MinRating {
		return false
	}
	return true
}

// Filter returns the products satisfying every active predicate. The filters
// are independent, so application order cannot affect the result; bounds
// where min > max simply match nothing.
func Filter(products []domain.Product, c Criteria) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if c.matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Sort orders products in place by the given key. The sort is stable: equal
// keys keep their prior relative order. SortNone leaves the slice untouched.
func Sort(products []domain.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	case SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].RatingAvg > products[j].RatingAvg
		})
	case SortRatingAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].RatingAvg < products[j].RatingAvg
		})
	}
}

// Apply runs the full pipeline: filter, then at most one stable sort.
func Apply(products []domain.Product, c Criteria) []domain.Product {
	filtered := Filter(products, c)
	Sort(filtered, c.Sort)
	return filtered
}

// Page is one fixed-size window of the filtered-and-sorted sequence.
type Page struct {
	Items      []domain.Product
	Number     int // 1-based, already clamped
	PageCount  int
	TotalItems int
}

// PageCount returns ceil(n / size).
func PageCount(n, size int) int {
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage folds an out-of-range page index back into the valid range:
// indexes above the page count land on the last valid page, and anything
// at or below zero pages lands on page 1.
func ClampPage(page, pageCount int) int {
	if pageCount == 0 {
		return 1
	}
	if page > pageCount {
		return pageCount
	}
	if page < 1 {
		return 1
	}
	return page
}

// Paginate slices one page out of the sequence. An empty sequence yields zero
// pages and an empty page 1.
func Paginate(products []domain.Product, page, size int) Page {
	count := PageCount(len(products), size)
	page = ClampPage(page, count)

	start := (page - 1) * size
	end := start + size
	if start > len(products) {
		start = len(products)
	}
	if end > len(products) {
		end = len(products)
	}

	return Page{
		Items:      products[start:end],
		Number:     page,
		PageCount:  count,
		TotalItems: len(products),
	}
}
