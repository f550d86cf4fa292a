package catalog

import "time"

// Product is a catalog product as served by the REST backend. Monetary
// amounts are integer fils (minor currency unit, 1000 fils = 1 KWD).
type Product struct {
	ID             string    `json:"id,omitempty"`
	Slug           string    `json:"slug,omitempty"`
	Title          string    `json:"title,omitempty"`
	Description    string    `json:"description,omitempty"`
	CategoryID     string    `json:"categoryId,omitempty"`
	Category       string    `json:"category,omitempty"`
	PriceInFils    int64     `json:"priceInFils,omitempty"`
	OldPriceInFils *int64    `json:"oldPriceInFils,omitempty"` // Pre-discount price, nil when no discount
	Images         []string  `json:"images,omitempty"`
	Image          string    `json:"image,omitempty"` // Primary image URL
	Rating         float64   `json:"rating,omitempty"`
	IsActive       bool      `json:"isActive,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty"`
}

// Price returns the product price in major currency units.
func (p Product) Price() float64 {
	return float64(p.PriceInFils) / 1000
}

// ProductPage is the paginated envelope for product listings.
type ProductPage struct {
	Items      []Product `json:"items"`
	Total      int       `json:"total"`
	TotalPages int       `json:"totalPages"`
	Page       int       `json:"page"`
}

type Category struct {
	ID       string `json:"id,omitempty"`
	Slug     string `json:"slug,omitempty"`
	Name     string `json:"name,omitempty"`
	ParentID string `json:"parentId,omitempty"`
}

// OrderItem is one product line on a submitted order.
type OrderItem struct {
	ProductID   string `json:"productId"`
	Title       string `json:"title,omitempty"`
	PriceInFils int64  `json:"priceInFils"`
	Qty         int    `json:"qty"`
}

type Order struct {
	ID          string      `json:"id,omitempty"`
	Status      string      `json:"status,omitempty"`
	Items       []OrderItem `json:"items,omitempty"`
	Name        string      `json:"name,omitempty"`
	Area        string      `json:"area,omitempty"`
	Block       string      `json:"block,omitempty"`
	Street      string      `json:"street,omitempty"`
	Avenue      string      `json:"avenue,omitempty"`
	HouseNo     string      `json:"houseNo,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Email       string      `json:"email,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	TotalInFils int64       `json:"totalInFils,omitempty"`
	CreatedAt   time.Time   `json:"createdAt,omitempty"`
}

// OrderPage is the paginated envelope for order listings.
type OrderPage struct {
	Items      []Order `json:"items"`
	Total      int     `json:"total"`
	TotalPages int     `json:"totalPages"`
	Page       int     `json:"page"`
}
