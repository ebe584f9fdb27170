package upstream

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"shopgate/internal/domain"
)

// Wire types bind to the upstream API's field names and are converted to
// domain types at the package boundary.

type productWire struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	ImgCover    string          `json:"imgCover"`
	RateAvg     float64         `json:"rateAvg"`
}

func (w productWire) toDomain() domain.Product {
	return domain.Product{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Price:       w.Price,
		Stock:       w.Stock,
		CategoryID:  w.Category,
		ImageURL:    w.ImgCover,
		RatingAvg:   w.RateAvg,
	}
}

type categoryWire struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Img  string `json:"img"`
}

func (w categoryWire) toDomain() domain.Category {
	return domain.Category{ID: w.ID, Name: w.Name, ImageURL: w.Img}
}

// productRef decodes a product reference that arrives either as a bare
// identifier or as an embedded product object. The upstream API mixes both
// shapes across endpoints and callers must treat both as valid.
type productRef struct {
	ID      string
	Product *domain.Product
}

func (r *productRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		r.Product = nil
		return nil
	}
	var w productWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p := w.toDomain()
	r.ID = p.ID
	r.Product = &p
	return nil
}

type cartItemWire struct {
	ID       string          `json:"_id"`
	Product  productRef      `json:"product"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type cartWire struct {
	ID                      string           `json:"_id"`
	CartItems               []cartItemWire   `json:"cartItems"`
	TotalPrice              decimal.Decimal  `json:"totalPrice"`
	TotalPriceAfterDiscount *decimal.Decimal `json:"totalPriceAfterDiscount"`
}

func (w cartWire) toDomain() *domain.Cart {
	cart := &domain.Cart{
		ID:              w.ID,
		Items:           make([]domain.CartItem, 0, len(w.CartItems)),
		TotalPrice:      w.TotalPrice,
		DiscountedTotal: w.TotalPriceAfterDiscount,
	}
	for _, item := range w.CartItems {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:        item.ID,
			ProductID: item.Product.ID,
			Product:   item.Product.Product,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return cart
}

type orderItemWire struct {
	Product  productRef      `json:"product"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type addressWire struct {
	Street string `json:"street"`
	City   string `json:"city"`
	Phone  string `json:"phone"`
}

type orderWire struct {
	ID              string          `json:"_id"`
	OrderItems      []orderItemWire `json:"orderItems"`
	TotalOrderPrice decimal.Decimal `json:"totalOrderPrice"`
	ShippingAddress addressWire     `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func (w orderWire) toDomain() domain.Order {
	order := domain.Order{
		ID:         w.ID,
		Items:      make([]domain.OrderItem, 0, len(w.OrderItems)),
		TotalPrice: w.TotalOrderPrice,
		ShippingAddress: domain.Address{
			Street: w.ShippingAddress.Street,
			City:   w.ShippingAddress.City,
			Phone:  w.ShippingAddress.Phone,
		},
		CreatedAt: w.CreatedAt,
	}
	for _, item := range w.OrderItems {
		title := ""
		if item.Product.Product != nil {
			title = item.Product.Product.Title
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.Product.ID,
			Title:     title,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return order
}

type userWire struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (w userWire) toDomain() domain.User {
	return domain.User{ID: w.ID, Name: w.Name, Email: w.Email, Role: w.Role}
}

func wishlistToDomain(refs []productRef) []domain.WishlistEntry {
	entries := make([]domain.WishlistEntry, 0, len(refs))
	for _, ref := range refs {
		entries = append(entries, domain.WishlistEntry{ProductID: ref.ID, Product: ref.Product})
	}
	return entries
}
