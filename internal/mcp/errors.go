package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/wanderlist/internal/domain/expense"
	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/rpggio/wanderlist/internal/domain/user"
	"github.com/rpggio/wanderlist/internal/planner"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

var errStoreUnavailable = &APIError{
	Code:         "STORE_UNAVAILABLE",
	Message:      "the trip database is not configured, nothing can be read or saved",
	RecoveryHint: "Set WANDERLIST_DB_PATH and restart the server",
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, planner.ErrStoreUnavailable), errors.Is(err, user.ErrStoreUnavailable):
		return errStoreUnavailable
	case errors.Is(err, planner.ErrNotReady):
		return &APIError{Code: "NOT_READY", Message: "trips are still loading", RecoveryHint: "Retry in a moment"}
	case errors.Is(err, planner.ErrNoActiveTrip):
		return &APIError{Code: "NO_ACTIVE_TRIP", Message: "no trip selected", RecoveryHint: "Pass trip_id or call select_trip"}
	case errors.Is(err, planner.ErrTripNotFound):
		return &APIError{Code: "TRIP_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call list_trips for valid IDs"}
	case errors.Is(err, trip.ErrDayNotFound):
		return &APIError{Code: "DAY_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call get_trip for day IDs"}
	case errors.Is(err, trip.ErrItemNotFound):
		return &APIError{Code: "ITEM_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call get_trip for item IDs"}
	case errors.Is(err, expense.ErrExpenseNotFound):
		return &APIError{Code: "EXPENSE_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call get_trip for expense IDs"}
	case errors.Is(err, trip.ErrLastDay):
		return &APIError{Code: "LAST_DAY", Message: "a trip keeps at least one day", RecoveryHint: "Delete the trip instead"}
	case errors.Is(err, trip.ErrInvalidPosition):
		return &APIError{Code: "INVALID_POSITION", Message: err.Error(), RecoveryHint: "Positions are zero-based indexes into the day's items"}
	case errors.Is(err, trip.ErrInvalidDate), errors.Is(err, trip.ErrInvalidDateRange):
		return &APIError{Code: "INVALID_DATE", Message: err.Error(), RecoveryHint: "Use YYYY-MM-DD with the end on or after the start"}
	case errors.Is(err, planner.ErrInvalidInput), errors.Is(err, trip.ErrInvalidInput),
		errors.Is(err, expense.ErrInvalidInput), errors.Is(err, user.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, planner.ErrWriteFailed):
		return &APIError{Code: "WRITE_FAILED", Message: "the change was not saved", RecoveryHint: "Check the server log and retry"}
	case errors.Is(err, planner.ErrSuggestionsUnavailable):
		return &APIError{Code: "AI_UNAVAILABLE", Message: "no AI provider is configured", RecoveryHint: "Set WANDERLIST_AI_API_KEY and restart"}
	case errors.Is(err, planner.ErrSuggestionFailed):
		return &APIError{Code: "AI_FAILED", Message: planner.ErrSuggestionFailed.Error()}
	case errors.Is(err, planner.ErrPlaceNotFound):
		return &APIError{Code: "PLACE_NOT_FOUND", Message: err.Error(), RecoveryHint: "Try a more specific name"}
	case errors.Is(err, planner.ErrWeatherUnavailable):
		return &APIError{Code: "WEATHER_UNAVAILABLE", Message: "no weather source is configured"}
	default:
		return nil
	}
}

// toolError converts err into the error a tool handler returns.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return &APIError{Code: "INTERNAL_ERROR", Message: err.Error()}
}
