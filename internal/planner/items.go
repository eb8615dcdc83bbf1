package planner

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rpggio/wanderlist/internal/domain/route"
	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/rpggio/wanderlist/internal/suggest"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func validClock(v string) bool {
	return clockPattern.MatchString(v)
}

func (in PlaceInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: place name is required", ErrInvalidInput)
	}
	if !validClock(in.Time) {
		return fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > 5) {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidInput)
	}
	if in.ImageOffsetY != nil && (*in.ImageOffsetY < 0 || *in.ImageOffsetY > 100) {
		return fmt.Errorf("%w: image offset must be between 0 and 100", ErrInvalidInput)
	}
	if c := in.Coords; c != nil && (c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180) {
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}
	return nil
}

func (in PlaceInput) item(id string) trip.PlaceItem {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = trip.CategorySightseeing
	}
	return trip.PlaceItem{
		ID:           id,
		Time:         in.Time,
		Name:         strings.TrimSpace(in.Name),
		Note:         strings.TrimSpace(in.Note),
		Category:     category,
		Rating:       in.Rating,
		Price:        in.Price,
		OpenHours:    in.OpenHours,
		ImageURL:     strings.TrimSpace(in.ImageURL),
		ImageOffsetY: in.ImageOffsetY,
		Coords:       in.Coords,
	}
}

func (in FlightInput) validate() error {
	if strings.TrimSpace(in.FlightNumber) == "" {
		return fmt.Errorf("%w: flight number is required", ErrInvalidInput)
	}
	if in.DepartureTime == "" && in.ArrivalTime == "" {
		return fmt.Errorf("%w: departure or arrival time is required", ErrInvalidInput)
	}
	for _, v := range []string{in.DepartureTime, in.ArrivalTime} {
		if v != "" && !validClock(v) {
			return fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
		}
	}
	return nil
}

func (in FlightInput) item(id string) trip.FlightItem {
	return trip.FlightItem{
		ID:                  id,
		FlightNumber:        strings.ToUpper(strings.TrimSpace(in.FlightNumber)),
		Origin:              strings.TrimSpace(in.Origin),
		Destination:         strings.TrimSpace(in.Destination),
		OriginTerminal:      strings.TrimSpace(in.OriginTerminal),
		DestinationTerminal: strings.TrimSpace(in.DestinationTerminal),
		DepartureTime:       in.DepartureTime,
		ArrivalTime:         in.ArrivalTime,
		IsArrival:           in.IsArrival,
		Note:                strings.TrimSpace(in.Note),
	}
}

// editDay loads a day, applies fn and writes the trip's days back.
func (s *Service) editDay(ctx context.Context, tripID, dayID string, fn func(trip.Day) (trip.Day, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load(tripID)
	if err != nil {
		return err
	}
	d, _, ok := t.Day(dayID)
	if !ok {
		return trip.ErrDayNotFound
	}
	d, err = fn(d)
	if err != nil {
		return err
	}
	days, err := trip.ReplaceDay(t.Days, d)
	if err != nil {
		return err
	}
	s.dispatch.ReplaceDays(ctx, t.ID, days)
	return nil
}

// AddPlace adds a place to a day in time order.
func (s *Service) AddPlace(ctx context.Context, tripID, dayID string, in PlaceInput) (trip.PlaceItem, error) {
	if err := in.validate(); err != nil {
		return trip.PlaceItem{}, err
	}
	item := in.item(uuid.NewString())
	err := s.editDay(ctx, tripID, dayID, func(d trip.Day) (trip.Day, error) {
		return trip.InsertItems(d, item), nil
	})
	if err != nil {
		return trip.PlaceItem{}, err
	}
	return item, nil
}

// AddFlight adds a flight to a day in time order.
func (s *Service) AddFlight(ctx context.Context, tripID, dayID string, in FlightInput) (trip.FlightItem, error) {
	if err := in.validate(); err != nil {
		return trip.FlightItem{}, err
	}
	item := in.item(uuid.NewString())
	err := s.editDay(ctx, tripID, dayID, func(d trip.Day) (trip.Day, error) {
		return trip.InsertItems(d, item), nil
	})
	if err != nil {
		return trip.FlightItem{}, err
	}
	return item, nil
}

// UpdatePlace replaces a place item. Coordinates are kept when the input has
// none.
func (s *Service) UpdatePlace(ctx context.Context, tripID, dayID, itemID string, in PlaceInput) (trip.PlaceItem, error) {
	if err := in.validate(); err != nil {
		return trip.PlaceItem{}, err
	}
	var updated trip.PlaceItem
	err := s.editDay(ctx, tripID, dayID, func(d trip.Day) (trip.Day, error) {
		existing, ok := trip.FindItem(d, itemID)
		if !ok {
			return d, trip.ErrItemNotFound
		}
		prev, ok := existing.(trip.PlaceItem)
		if !ok {
			return d, fmt.Errorf("%w: item %s is not a place", ErrInvalidInput, itemID)
		}
		updated = in.item(itemID)
		if updated.Coords == nil {
			updated.Coords = prev.Coords
		}
		return trip.ReplaceItem(d, updated)
	})
	if err != nil {
		return trip.PlaceItem{}, err
	}
	return updated, nil
}

// UpdateFlight replaces a flight item, keeping its coordinates.
func (s *Service) UpdateFlight(ctx context.Context, tripID, dayID, itemID string, in FlightInput) (trip.FlightItem, error) {
	if err := in.validate(); err != nil {
		return trip.FlightItem{}, err
	}
	var updated trip.FlightItem
	err := s.editDay(ctx, tripID, dayID, func(d trip.Day) (trip.Day, error) {
		existing, ok := trip.FindItem(d, itemID)
		if !ok {
			return d, trip.ErrItemNotFound
		}
		prev, ok := existing.(trip.FlightItem)
		if !ok {
			return d, fmt.Errorf("%w: item %s is not a flight", ErrInvalidInput, itemID)
		}
		updated = in.item(itemID)
		updated.Coords = prev.Coords
		return trip.ReplaceItem(d, updated)
	})
	if err != nil {
		return trip.FlightItem{}, err
	}
	return updated, nil
}

// DeleteItem removes an item from a day.
func (s *Service) DeleteItem(ctx context.Context, tripID, dayID, itemID string) error {
	return s.editDay(ctx, tripID, dayID, func(d trip.Day) (trip.Day, error) {
		return trip.RemoveItem(d, itemID)
	})
}

// MoveItem reorders a day's items by position without re-sorting them.
func (s *Service) MoveItem(ctx context.Context, tripID, dayID string, from, to int) (trip.Day, error) {
	var moved trip.Day
	err := s.editDay(ctx, tripID, dayID, func(d trip.Day) (trip.Day, error) {
		var err error
		moved, err = trip.MoveItem(d, from, to)
		return moved, err
	})
	if err != nil {
		return trip.Day{}, err
	}
	return moved, nil
}

// GenerateSuggestions asks the AI provider for ideas and adds them to a day.
// An empty answer adds nothing.
func (s *Service) GenerateSuggestions(ctx context.Context, tripID, dayID, prompt string) ([]trip.Item, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", ErrInvalidInput)
	}
	if s.suggester == nil || !s.suggester.Enabled() {
		return nil, ErrSuggestionsUnavailable
	}

	s.mu.Lock()
	t, err := s.load(tripID)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if _, _, ok := t.Day(dayID); !ok {
		return nil, trip.ErrDayNotFound
	}

	drafts, err := s.suggester.Suggest(ctx, prompt, t.Destination)
	if err != nil {
		if errors.Is(err, suggest.ErrUnavailable) {
			return nil, ErrSuggestionsUnavailable
		}
		s.logger.Warn("suggestion request failed", "trip_id", t.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSuggestionFailed, err)
	}
	items := suggest.ToItems(drafts, s.now())
	if len(items) == 0 {
		return items, nil
	}

	err = s.editDay(ctx, t.ID, dayID, func(d trip.Day) (trip.Day, error) {
		return trip.InsertItems(d, items...), nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// LocatePlace looks up a place near the trip's destination.
func (s *Service) LocatePlace(ctx context.Context, tripID, name string) (*suggest.PlaceDetails, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: place name is required", ErrInvalidInput)
	}
	if s.suggester == nil || !s.suggester.Enabled() {
		return nil, ErrSuggestionsUnavailable
	}

	var city string
	s.mu.Lock()
	t, err := s.load(tripID)
	s.mu.Unlock()
	switch {
	case err == nil:
		city = t.Destination
	case errors.Is(err, ErrNoActiveTrip):
	default:
		return nil, err
	}

	details, err := s.suggester.LookupPlace(ctx, name, city)
	if err != nil {
		s.logger.Warn("place lookup failed", "name", name, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSuggestionFailed, err)
	}
	if details == nil {
		return nil, fmt.Errorf("%w: %s", ErrPlaceNotFound, name)
	}
	return details, nil
}

// SuggestIcon returns an icon class for a custom category.
func (s *Service) SuggestIcon(ctx context.Context, category string) string {
	if s.suggester == nil {
		return suggest.DefaultIcon
	}
	return s.suggester.SuggestIcon(ctx, category)
}

// Route returns the path through a day's located items.
func (s *Service) Route(tripID, dayID string) (route.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load(tripID)
	if err != nil {
		return route.Route{}, err
	}
	d, _, ok := t.Day(dayID)
	if !ok {
		return route.Route{}, trip.ErrDayNotFound
	}
	return route.Plan(d.Items), nil
}
