package product

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidPrice = errors.New("price must be greater than zero")
	ErrMissingTitle = errors.New("title is required")

	// -- Resource State --
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")

	// -- Authorization --
	ErrNotProductOwner = errors.New("product belongs to another seller")
)
