package domain

import "errors"

var (
	ErrInvalidQuantity         = errors.New("quantity must be positive")
	ErrUnavailableItem         = errors.New("item is not available")
	ErrEmptyOrder              = errors.New("cannot confirm empty order")
	ErrInvalidRange            = errors.New("percent must be between 0 and 100")
	ErrDuplicateItem           = errors.New("item with this name already exists")
	ErrItemNotFound            = errors.New("item not found")
	ErrMissingCustomer         = errors.New("customer is required")
	ErrInvalidLimit            = errors.New("limit must be positive")
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrPersistence marks failures of the storage collaborators. The
	// in-memory state is never rolled back when it is returned.
	ErrPersistence = errors.New("persistence failure")
)
