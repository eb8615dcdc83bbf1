package planner

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rpggio/wanderlist/internal/dispatch"
	"github.com/rpggio/wanderlist/internal/domain/trip"
)

// DefaultCover returns the cover image used when a trip is created without
// one.
func DefaultCover(destination string) string {
	return "https://source.unsplash.com/featured/800x600?" + url.QueryEscape(destination) + ",landmark"
}

// CreateTrip stores a new trip with one empty day per date, adds the current
// user as a participant and makes the trip active.
func (s *Service) CreateTrip(ctx context.Context, req CreateTripRequest) (trip.Trip, error) {
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return trip.Trip{}, fmt.Errorf("%w: destination is required", ErrInvalidInput)
	}
	if err := trip.ValidateRange(req.StartDate, req.EndDate); err != nil {
		return trip.Trip{}, err
	}
	if err := s.checkStore(); err != nil {
		return trip.Trip{}, err
	}

	cover := strings.TrimSpace(req.CoverImage)
	if cover == "" {
		cover = DefaultCover(destination)
	}
	t := trip.Trip{
		Name:           destination + " Trip",
		Destination:    destination,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		CoverImage:     cover,
		CoverImageDark: strings.TrimSpace(req.CoverImageDark),
		Days:           trip.GenerateDays(req.StartDate, req.EndDate),
		Expenses:       []trip.Expense{},
		Participants:   []string{},
	}
	if s.userID != "" {
		t.Participants = []string{s.userID}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.dispatch.CreateTrip(ctx, t)
	if id == "" {
		return trip.Trip{}, fmt.Errorf("%w: trip was not saved", ErrWriteFailed)
	}
	t.ID = id
	s.activeTripID = id
	s.logger.Info("trip created", "trip_id", id, "destination", destination, "days", len(t.Days))
	return t, nil
}

// DeleteTrip removes a trip and clears the selection when it was active.
func (s *Service) DeleteTrip(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load(id)
	if err != nil {
		return err
	}
	s.dispatch.DeleteTrip(ctx, t.ID)
	if s.activeTripID == t.ID {
		s.activeTripID = ""
	}
	return nil
}

// EditTrip changes a trip's details. Date changes reconcile the day list.
func (s *Service) EditTrip(ctx context.Context, id string, req EditTripRequest) (trip.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load(id)
	if err != nil {
		return trip.Trip{}, err
	}

	start, end := t.StartDate, t.EndDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if err := trip.ValidateRange(start, end); err != nil {
		return trip.Trip{}, err
	}

	name := t.Name
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if name == "" {
			return trip.Trip{}, fmt.Errorf("%w: name cannot be blank", ErrInvalidInput)
		}
	}
	cover := t.CoverImage
	if req.CoverImage != nil && strings.TrimSpace(*req.CoverImage) != "" {
		cover = strings.TrimSpace(*req.CoverImage)
	}
	coverDark := t.CoverImageDark
	if req.CoverImageDark != nil {
		coverDark = strings.TrimSpace(*req.CoverImageDark)
	}

	days := trip.Reconcile(t.Days, t.StartDate, start, end)
	s.dispatch.UpdateTrip(ctx, t.ID, dispatch.TripPatch{
		Name:           &name,
		CoverImage:     &cover,
		CoverImageDark: &coverDark,
		StartDate:      &start,
		EndDate:        &end,
		Days:           days,
	})

	t.Name, t.CoverImage, t.CoverImageDark = name, cover, coverDark
	t.StartDate, t.EndDate, t.Days = start, end, days
	return t, nil
}

// JoinTrip adds the current user to a trip's participants.
func (s *Service) JoinTrip(ctx context.Context, id string) (trip.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load(id)
	if err != nil {
		return trip.Trip{}, err
	}
	if s.userID == "" || t.HasParticipant(s.userID) {
		return t, nil
	}
	participants := append(append([]string{}, t.Participants...), s.userID)
	s.dispatch.UpdateTrip(ctx, t.ID, dispatch.TripPatch{Participants: participants})
	t.Participants = participants
	return t, nil
}

// AddDay appends an empty day and extends the end date.
func (s *Service) AddDay(ctx context.Context, tripID string) (trip.Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load(tripID)
	if err != nil {
		return trip.Day{}, err
	}
	days := trip.AppendDay(t.Days, t.StartDate)
	s.writeDays(ctx, t, days)
	return days[len(days)-1], nil
}

// DeleteDay removes a day. The remaining days are relabeled and redated
// contiguously and the trip's dates follow them.
func (s *Service) DeleteDay(ctx context.Context, tripID, dayID string) (trip.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load(tripID)
	if err != nil {
		return trip.Trip{}, err
	}
	days, err := trip.DeleteDay(t.Days, dayID)
	if err != nil {
		return trip.Trip{}, err
	}
	t.StartDate, t.EndDate = s.writeDays(ctx, t, days)
	t.Days = days
	return t, nil
}

// writeDays stores a day list together with the dates it spans.
func (s *Service) writeDays(ctx context.Context, t trip.Trip, days []trip.Day) (trip.Date, trip.Date) {
	start, end, ok := trip.Span(days)
	if !ok {
		start, end = t.StartDate, t.EndDate
	}
	s.dispatch.UpdateTrip(ctx, t.ID, dispatch.TripPatch{StartDate: &start, EndDate: &end, Days: days})
	return start, end
}

// RefreshWeather looks up the forecast for one day, or for every day without
// a cached forecast when dayID is empty. Found forecasts are cached on the
// days; missing ones and lookup errors leave the day untouched.
func (s *Service) RefreshWeather(ctx context.Context, tripID, dayID string) ([]DayWeather, error) {
	if s.weather == nil {
		return nil, ErrWeatherUnavailable
	}

	s.mu.Lock()
	t, err := s.load(tripID)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var targets []trip.Day
	if dayID != "" {
		d, _, ok := t.Day(dayID)
		if !ok {
			return nil, trip.ErrDayNotFound
		}
		targets = []trip.Day{d}
	} else {
		for _, d := range t.Days {
			if d.Weather == nil {
				targets = append(targets, d)
			}
		}
	}

	// Lookups run without the lock; the result is merged into fresh state.
	found := make(map[string]*trip.Weather, len(targets))
	out := make([]DayWeather, 0, len(targets))
	for _, d := range targets {
		w, err := s.weather.Lookup(ctx, t.Destination, d.Date)
		if err != nil {
			s.logger.Warn("weather lookup failed", "trip_id", t.ID, "day_id", d.ID, "error", err)
		}
		if w != nil {
			found[d.ID] = w
		}
		out = append(out, DayWeather{DayID: d.ID, Date: d.Date, Weather: w})
	}
	if len(found) == 0 {
		return out, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.load(t.ID)
	if err != nil {
		return nil, err
	}
	days := make([]trip.Day, len(current.Days))
	copy(days, current.Days)
	for i := range days {
		if w, ok := found[days[i].ID]; ok {
			days[i].Weather = w
		}
	}
	s.dispatch.ReplaceDays(ctx, current.ID, days)
	return out, nil
}
