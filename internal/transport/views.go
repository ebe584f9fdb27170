package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"shopgate/internal/catalog"
	"shopgate/internal/domain"
)

// money renders an amount the way the storefront displays it, e.g. "$80.00".
func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

type ProductView struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       string  `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  string  `json:"category_id"`
	ImageURL    string  `json:"image_url"`
	Rating      float64 `json:"rating"`
}

func newProductView(p domain.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       money(p.Price),
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
		Rating:      p.RatingAvg,
	}
}

// PageView is one page of discovery results.
type PageView struct {
	Products   []ProductView `json:"products"`
	Page       int           `json:"page"`
	PageCount  int           `json:"page_count"`
	TotalItems int           `json:"total_items"`
}

func newPageView(page catalog.Page) PageView {
	view := PageView{
		Products:   make([]ProductView, 0, len(page.Items)),
		Page:       page.Number,
		PageCount:  page.PageCount,
		TotalItems: page.TotalItems,
	}
	for _, p := range page.Items {
		view.Products = append(view.Products, newProductView(p))
	}
	return view
}

type CartItemView struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	ImageURL  string `json:"image_url,omitempty"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

// DiscountView renders only for an active discount: "Discount: -$20.00",
// "New Total: $80.00".
type DiscountView struct {
	Amount   string `json:"amount"`
	NewTotal string `json:"new_total"`
}

type CartView struct {
	ID       string         `json:"id"`
	Items    []CartItemView `json:"items"`
	Empty    bool           `json:"empty"`
	Total    string         `json:"total"`
	Discount *DiscountView  `json:"discount,omitempty"`
}

func newCartView(cart *domain.Cart) CartView {
	view := CartView{
		ID:    cart.ID,
		Items: make([]CartItemView, 0, len(cart.Items)),
		Empty: cart.IsEmpty(),
		Total: money(cart.TotalPrice),
	}
	for _, item := range cart.Items {
		title := "Unnamed product"
		imageURL := ""
		if item.Product != nil {
			title = item.Product.Title
			imageURL = item.Product.ImageURL
		}
		view.Items = append(view.Items, CartItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Title:     title,
			ImageURL:  imageURL,
			Price:     money(item.Price),
			Quantity:  item.Quantity,
			Subtotal:  money(item.Subtotal()),
		})
	}
	if amount, ok := cart.Discount(); ok {
		view.Discount = &DiscountView{
			Amount:   "-" + money(amount),
			NewTotal: money(*cart.DiscountedTotal),
		}
	}
	return view
}

type OrderItemView struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type OrderView struct {
	ID              string          `json:"id"`
	Items           []OrderItemView `json:"items"`
	Total           string          `json:"total"`
	ShippingAddress domain.Address  `json:"shipping_address"`
	CreatedAt       string          `json:"created_at"`
}

func newOrderView(order domain.Order) OrderView {
	view := OrderView{
		ID:              order.ID,
		Items:           make([]OrderItemView, 0, len(order.Items)),
		Total:           money(order.TotalPrice),
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, item := range order.Items {
		title := item.Title
		if title == "" {
			title = "Unnamed product"
		}
		view.Items = append(view.Items, OrderItemView{
			ProductID: item.ProductID,
			Title:     title,
			Price:     money(item.Price),
			Quantity:  item.Quantity,
			Subtotal:  money(item.Subtotal()),
		})
	}
	return view
}

type WishlistItemView struct {
	ProductID string       `json:"product_id"`
	Product   *ProductView `json:"product,omitempty"`
}

func newWishlistView(entries []domain.WishlistEntry) []WishlistItemView {
	views := make([]WishlistItemView, 0, len(entries))
	for _, entry := range entries {
		view := WishlistItemView{ProductID: entry.ProductID}
		if entry.Product != nil {
			pv := newProductView(*entry.Product)
			view.Product = &pv
		}
		views = append(views, view)
	}
	return views
}
