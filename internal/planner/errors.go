package planner

import "errors"

var (
	// ErrStoreUnavailable indicates no document store is configured. Nothing
	// can be read or written until the process is restarted with one.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrNotReady indicates the trips collection has not loaded yet.
	ErrNotReady = errors.New("trips not loaded yet")
	// ErrNoActiveTrip indicates no trip id was given and none is selected.
	ErrNoActiveTrip = errors.New("no trip selected")
	// ErrTripNotFound indicates the trip doesn't exist.
	ErrTripNotFound = errors.New("trip not found")
	// ErrWriteFailed indicates a new document could not be stored.
	ErrWriteFailed = errors.New("write failed")
	// ErrInvalidInput indicates invalid input for planner operations.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSuggestionsUnavailable indicates no AI provider is configured.
	ErrSuggestionsUnavailable = errors.New("suggestions unavailable")
	// ErrSuggestionFailed indicates the AI provider could not be reached.
	ErrSuggestionFailed = errors.New("suggestion failed, try again later")
	// ErrPlaceNotFound indicates a place lookup found nothing.
	ErrPlaceNotFound = errors.New("place not found")
	// ErrWeatherUnavailable indicates no weather source is configured.
	ErrWeatherUnavailable = errors.New("weather unavailable")
)
