package order

import "errors"

var (
	ErrCartEmpty              = errors.New("cart is empty")
	ErrMissingShippingAddress = errors.New("shipping address is required")
	ErrOrderNotFound      = errors.New("order not found")
	ErrItemNotFound       = errors.New("order item not found")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrProductUnavailable = errors.New("product is no longer available")
	ErrUnauthorized       = errors.New("unauthorized")
)
