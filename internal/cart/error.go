package cart

import "errors"

var (
	// -- Authentication/Authorization --
	ErrAdminCannotShop = errors.New("admins cannot add products to a cart")
	ErrOwnProduct      = errors.New("sellers cannot add their own product to a cart")

	// -- Resource State --
	ErrProductUnavailable   = errors.New("product is not available")
	ErrCartItemAlreadyExist = errors.New("product is already in the cart")
	ErrCartItemNotFound     = errors.New("cart item not found")
)
