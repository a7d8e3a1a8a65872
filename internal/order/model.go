package order

import "time"

type ItemStatus string

const (
	ItemPending   ItemStatus = "Pending"
	ItemCancelled ItemStatus = "Cancelled"
	ItemCompleted ItemStatus = "Completed"
)

// ValidItemStatus reports whether s is one of the three item states.
func ValidItemStatus(s ItemStatus) bool {
	switch s {
	case ItemPending, ItemCancelled, ItemCompleted:
		return true
	}
	return false
}

type OverallStatus string

const (
	OverallPending   OverallStatus = "Pending"
	OverallCancelled OverallStatus = "Cancelled"
	OverallCompleted OverallStatus = "Completed"
	// OverallPartiallyCompleted is accepted by the schema but never assigned
	// by the reconciliation rule.
	OverallPartiallyCompleted OverallStatus = "Partially Completed"
)

// ValidOverallStatus reports whether s may be set directly on an order.
func ValidOverallStatus(s OverallStatus) bool {
	switch s {
	case OverallPending, OverallCancelled, OverallCompleted:
		return true
	}
	return false
}

type Order struct {
	ID              int64         `json:"id"`
	OrderNumber     string        `json:"order_number"`
	UserID          int64         `json:"user_id"`
	TotalAmount     float64       `json:"total_amount"`
	OverallStatus   OverallStatus `json:"overall_status"`
	ShippingAddress string        `json:"shipping_address"`
	ContactName     string        `json:"contact_name"`
	ContactEmail    string        `json:"contact_email"`
	ContactPhone    string        `json:"contact_phone"`
	AdditionalNotes *string       `json:"additional_notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	Items []OrderItem `json:"items"`
}

type OrderItem struct {
	ID        int64      `json:"id"`
	OrderID   int64      `json:"order_id"`
	ProductID int64      `json:"product_id"`
	SellerID  int64      `json:"seller_id"`
	Price     float64    `json:"price"`
	Status    ItemStatus `json:"item_status"`

	ProductTitle string `json:"product_title,omitempty"`
	ProductImage string `json:"product_image,omitempty"`
}

// CheckoutParams carries the contact snapshot captured at order time,
// decoupled from the user record.
type CheckoutParams struct {
	ShippingAddress string
	ContactName     string
	ContactEmail    string
	ContactPhone    string
	AdditionalNotes *string
}

type ListOptions struct {
	Status *OverallStatus
	Limit  int
	Page   int
}
