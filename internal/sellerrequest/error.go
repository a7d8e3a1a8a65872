package sellerrequest

import "errors"

var (
	ErrRequestNotFound   = errors.New("seller request not found")
	ErrRequestExists     = errors.New("a seller request is already pending or approved")
	ErrOnlyUsersMayApply = errors.New("only regular users may request seller status")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrMissingFields     = errors.New("business name and reason are required")
)
