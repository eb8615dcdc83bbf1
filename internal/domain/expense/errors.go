package expense

import "errors"

var (
	// ErrExpenseNotFound indicates the expense doesn't exist on the trip.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrInvalidInput indicates invalid input for expense operations.
	ErrInvalidInput = errors.New("invalid expense input")
)
