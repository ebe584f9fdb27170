package catalog

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"shopgate/internal/domain"
)

func buildProducts(prices []int) []domain.Product {
	products := make([]domain.Product, 0, len(prices))
	for i, p := range prices {
		products = append(products, domain.Product{
			ID:        fmt.Sprintf("p-%d", i),
			Title:     fmt.Sprintf("Product %d", i),
			Price:     decimal.NewFromInt(int64(p)),
			RatingAvg: float64(p % 6),
		})
	}
	return products
}

func TestProperty_FilterKeepsExactlyTheMatchingProducts(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every survivor satisfies the active predicates and no match is dropped", prop.ForAll(
		func(prices []int, minPrice int, maxPrice int, minRating int) bool {
			products := buildProducts(prices)
			lo := decimal.NewFromInt(int64(minPrice))
			hi := decimal.NewFromInt(int64(maxPrice))
			criteria := Criteria{
				PriceMin:  &lo,
				PriceMax:  &hi,
				MinRating: float64(minRating),
			}

			filtered := Filter(products, criteria)

			expected := 0
			for _, p := range products {
				inRange := !p.Price.LessThan(lo) && !p.Price.GreaterThan(hi)
				rated := criteria.MinRating == 0 || p.RatingAvg >= criteria.MinRating
				if inRange && rated {
					expected++
				}
			}
			if len(filtered) != expected {
				t.Logf("FAIL: expected %d survivors, got %d", expected, len(filtered))
				return false
			}

			for _, p := range filtered {
				if p.Price.LessThan(lo) || p.Price.GreaterThan(hi) {
					t.Logf("FAIL: product %s price %s outside [%s, %s]", p.ID, p.Price, lo, hi)
					return false
				}
				if criteria.MinRating > 0 && p.RatingAvg < criteria.MinRating {
					t.Logf("FAIL: product %s rating %.1f below %.1f", p.ID, p.RatingAvg, criteria.MinRating)
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 500)),
		gen.IntRange(0, 250),
		gen.IntRange(0, 500),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_SortIsAStableOrderedPermutation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("price ascending yields an ordered permutation preserving ties", prop.ForAll(
		func(prices []int) bool {
			products := buildProducts(prices)
			Sort(products, SortPriceAsc)

			if len(products) != len(prices) {
				t.Logf("FAIL: sort changed the element count")
				return false
			}

			// The result must be a permutation of the input.
			seen := make(map[string]bool, len(products))
			for _, p := range products {
				if seen[p.ID] {
					t.Logf("FAIL: product %s duplicated by sort", p.ID)
					return false
				}
				seen[p.ID] = true
			}

			// Ordered by price, with equal prices keeping their input order.
			originalIndex := func(id string) int {
				var idx int
				fmt.Sscanf(id, "p-%d", &idx)
				return idx
			}
			for i := 1; i < len(products); i++ {
				prev, cur := products[i-1], products[i]
				if prev.Price.GreaterThan(cur.Price) {
					t.Logf("FAIL: %s (%s) sorted before %s (%s)", prev.ID, prev.Price, cur.ID, cur.Price)
					return false
				}
				if prev.Price.Equal(cur.Price) && originalIndex(prev.ID) > originalIndex(cur.ID) {
					t.Logf("FAIL: tie between %s and %s reordered", prev.ID, cur.ID)
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 50)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_PaginationCoversTheSequenceInFixedWindows(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("page count is ceil(n/8) and every page except the last is full", prop.ForAll(
		func(n int, requested int) bool {
			prices := make([]int, n)
			for i := range prices {
				prices[i] = i
			}
			products := buildProducts(prices)

			page := Paginate(products, requested, PageSize)

			wantCount := (n + PageSize - 1) / PageSize
			if page.PageCount != wantCount {
				t.Logf("FAIL: n=%d expected %d pages, got %d", n, wantCount, page.PageCount)
				return false
			}
			if page.TotalItems != n {
				t.Logf("FAIL: expected total %d, got %d", n, page.TotalItems)
				return false
			}

			// The resolved page number always lands in the valid range.
			if n == 0 {
				if page.Number != 1 || len(page.Items) != 0 {
					t.Logf("FAIL: empty sequence must yield empty page 1, got %+v", page)
					return false
				}
				return true
			}
			if page.Number < 1 || page.Number > page.PageCount {
				t.Logf("FAIL: requested %d resolved to %d of %d", requested, page.Number, page.PageCount)
				return false
			}

			if page.Number < page.PageCount {
				if len(page.Items) != PageSize {
					t.Logf("FAIL: non-final page %d holds %d items", page.Number, len(page.Items))
					return false
				}
			} else {
				want := n - (page.PageCount-1)*PageSize
				if len(page.Items) != want {
					t.Logf("FAIL: final page holds %d items, want %d", len(page.Items), want)
					return false
				}
			}

			// Page contents are the right slice of the sequence.
			start := (page.Number - 1) * PageSize
			for i, p := range page.Items {
				if p.ID != fmt.Sprintf("p-%d", start+i) {
					t.Logf("FAIL: page item %d is %s, want p-%d", i, p.ID, start+i)
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 100),
		gen.IntRange(-3, 20),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
