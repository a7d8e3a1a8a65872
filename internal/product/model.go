package product

import "time"

type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	SellerID    int64     `json:"seller_id"`
	SellerName  string    `json:"seller_name"`
	Quantity    int       `json:"quantity"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateProductParams struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Image       string
	SellerID    int64
	Quantity    int
}

type UpdateProductParams struct {
	ProductID   int64
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Image       *string
	Quantity    *int
	IsAvailable *bool
}

type ListOptions struct {
	Category      *string
	Search        *string
	SellerID      *int64
	OnlyAvailable bool
	Limit         int
	Page          int
}
