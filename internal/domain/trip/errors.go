package trip

import "errors"

var (
	// ErrInvalidDate indicates a date string that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidDateRange indicates an end date before the start date.
	ErrInvalidDateRange = errors.New("end date before start date")
	// ErrDayNotFound indicates the day doesn't exist in the trip.
	ErrDayNotFound = errors.New("day not found")
	// ErrItemNotFound indicates the item doesn't exist in the day.
	ErrItemNotFound = errors.New("item not found")
	// ErrLastDay indicates an attempt to delete the only remaining day.
	ErrLastDay = errors.New("cannot delete the only day of a trip")
	// ErrInvalidPosition indicates a reorder index outside the item list.
	ErrInvalidPosition = errors.New("invalid item position")
	// ErrInvalidInput indicates invalid input for trip operations.
	ErrInvalidInput = errors.New("invalid trip input")
)
