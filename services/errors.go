package services

import "fmt"

// ValidationError reports a malformed or incomplete cart or request.
// The caller can correct the input and retry; nothing was persisted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a referenced record that does not exist (or is
// soft-deleted, for medications).
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// InsufficientStockError carries the available quantity so the till can
// adjust the cart.
type InsufficientStockError struct {
	MedicationName string
	Available      int
	Requested      int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %d available, %d requested",
		e.MedicationName, e.Available, e.Requested)
}

// ConflictError reports an operation blocked by referential integrity,
// such as deleting a customer that still has sales.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
