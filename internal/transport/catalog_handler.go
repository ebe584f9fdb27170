package transport

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopgate/internal/catalog"
	"shopgate/internal/domain"
	"shopgate/internal/middleware"
)

// CatalogAPI loads the collections the discovery pipeline runs over.
type CatalogAPI interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// CatalogHandler serves product discovery and category reference data.
type CatalogHandler struct {
	api    CatalogAPI
	logger *zap.Logger
}

func NewCatalogHandler(api CatalogAPI, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{api: api, logger: logger}
}

// RegisterRoutes registers the public catalog routes.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/categories", h.ListCategories)
}

// ListProducts loads the full collection, applies the discovery pipeline and
// returns the requested page. The whole collection is fetched per request;
// filtering and sorting happen here, not upstream.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	criteria, page, err := parseDiscoveryQuery(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.api.Products(r.Context())
	if err != nil {
		respondUpstreamError(w, h.logger, err, "failed to fetch products")
		return
	}

	result := catalog.Apply(products, criteria)
	middleware.RespondWithJSON(w, http.StatusOK, newPageView(catalog.Paginate(result, page, catalog.PageSize)))
}

// ListCategories returns the category reference data.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.api.Categories(r.Context())
	if err != nil {
		respondUpstreamError(w, h.logger, err, "failed to fetch categories")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

type queryError string

func (e queryError) Error() string { return string(e) }

func parseDiscoveryQuery(r *http.Request) (catalog.Criteria, int, error) {
	q := r.URL.Query()

	criteria := catalog.Criteria{
		Query:      q.Get("q"),
		CategoryID: q.Get("category"),
		Sort:       catalog.ParseSortKey(q.Get("sort")),
	}

	if raw := q.Get("price_min"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return catalog.Criteria{}, 0, queryError("invalid price_min")
		}
		criteria.PriceMin = &min
	}
	if raw := q.Get("price_max"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return catalog.Criteria{}, 0, queryError("invalid price_max")
		}
		criteria.PriceMax = &max
	}
	if raw := q.Get("min_rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil || rating < 0 || rating > 5 {
			return catalog.Criteria{}, 0, queryError("invalid min_rating")
		}
		criteria.MinRating = rating
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return catalog.Criteria{}, 0, queryError("invalid page")
		}
		page = parsed
	}

	return criteria, page, nil
}
