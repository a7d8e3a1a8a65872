package cart

import (
	"time"

	"landa-be/internal/product"
)

// CartItem is one intended-purchase entry. Entries are unique per product;
// there is no quantity field.
type CartItem struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"user_id"`
	AddedAt time.Time `json:"added_at"`

	Product product.Product `json:"product"`
}
