package sellerrequest

import "time"

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// SellerRequest is a user's application for the seller role. One row per
// user; a rejected request is overwritten on re-apply rather than duplicated.
type SellerRequest struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	BusinessName string    `json:"business_name"`
	Reason       string    `json:"reason"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}
