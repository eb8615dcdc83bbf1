// Package planner carries out trip planning intents. It reads the latest
// state from a StateReader and writes whole fields through a dispatcher, so
// concurrent edits from other devices to the same list are last-write-wins.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/wanderlist/internal/dispatch"
	"github.com/rpggio/wanderlist/internal/docstore"
	"github.com/rpggio/wanderlist/internal/domain/expense"
	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/rpggio/wanderlist/internal/domain/user"
)

// Options holds the optional collaborators of a Service.
type Options struct {
	Suggester Suggester
	Weather   WeatherSource
	Converter expense.Converter
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service is the planner for one device user.
type Service struct {
	state     StateReader
	dispatch  dispatch.Dispatcher
	suggester Suggester
	weather   WeatherSource
	converter expense.Converter
	userID    string
	now       func() time.Time
	logger    *slog.Logger

	// mu serializes read-modify-write cycles and guards activeTripID.
	mu           sync.Mutex
	activeTripID string
}

// NewService creates a planner acting as userID.
func NewService(state StateReader, d dispatch.Dispatcher, userID string, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Converter.DefaultRate.IsZero() {
		opts.Converter = expense.NewConverter(opts.Converter.Reporting, opts.Converter.Foreign, 1)
	}
	return &Service{
		state:     state,
		dispatch:  d,
		suggester: opts.Suggester,
		weather:   opts.Weather,
		converter: opts.Converter,
		userID:    userID,
		now:       opts.Now,
		logger:    logger,
	}
}

// UserID returns the id of the user the planner acts as.
func (s *Service) UserID() string {
	return s.userID
}

// Converter returns the configured currency converter.
func (s *Service) Converter() expense.Converter {
	return s.converter
}

func (s *Service) today() trip.Date {
	return trip.DateOf(s.now())
}

// Today is the local date trip status is computed against.
func (s *Service) Today() trip.Date {
	return s.today()
}

func (s *Service) checkStore() error {
	if s.state == nil || !s.state.Available() {
		return ErrStoreUnavailable
	}
	return nil
}

func (s *Service) checkTrips() error {
	if err := s.checkStore(); err != nil {
		return err
	}
	if !s.state.Ready(docstore.Trips) {
		return ErrNotReady
	}
	return nil
}

// load returns a trip by id, or the active trip when id is empty. Callers
// that read the active trip id must hold mu.
func (s *Service) load(id string) (trip.Trip, error) {
	if err := s.checkTrips(); err != nil {
		return trip.Trip{}, err
	}
	if id == "" {
		id = s.activeTripID
	}
	if id == "" {
		return trip.Trip{}, ErrNoActiveTrip
	}
	t, ok := s.state.Trip(id)
	if !ok {
		return trip.Trip{}, fmt.Errorf("%w: %s", ErrTripNotFound, id)
	}
	return t, nil
}

// CurrentUser returns the device user. Before the users collection has
// loaded the default profile is returned.
func (s *Service) CurrentUser() (user.User, error) {
	if err := s.checkStore(); err != nil {
		return user.User{}, err
	}
	if u, ok := s.state.User(s.userID); ok {
		return u, nil
	}
	return user.User{ID: s.userID, Name: user.DefaultName, Avatar: user.DefaultAvatar(s.userID)}, nil
}

// UpdateProfile changes the current user's name and avatar. Blank values
// keep the current ones.
func (s *Service) UpdateProfile(ctx context.Context, name, avatar string) (user.User, error) {
	current, err := s.CurrentUser()
	if err != nil {
		return user.User{}, err
	}
	updated := current
	if n := strings.TrimSpace(name); n != "" {
		updated.Name = n
	}
	if a := strings.TrimSpace(avatar); a != "" {
		if _, err := url.ParseRequestURI(a); err != nil {
			return user.User{}, fmt.Errorf("%w: avatar must be a URL", ErrInvalidInput)
		}
		updated.Avatar = a
	}
	s.dispatch.UpdateUserProfile(ctx, s.userID, dispatch.ProfilePatch{Name: &updated.Name, Avatar: &updated.Avatar})
	s.logger.Debug("profile updated", "user_id", s.userID)
	return updated, nil
}

// Users returns every known user.
func (s *Service) Users() ([]user.User, error) {
	if err := s.checkStore(); err != nil {
		return nil, err
	}
	return s.state.Users(), nil
}

// SelectTrip makes a trip the active one. An empty id clears the selection.
func (s *Service) SelectTrip(id string) (trip.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		s.activeTripID = ""
		return trip.Trip{}, nil
	}
	t, err := s.load(id)
	if err != nil {
		return trip.Trip{}, err
	}
	s.activeTripID = t.ID
	return t, nil
}

// ActiveTrip returns the selected trip. A selected trip deleted elsewhere
// clears the selection.
func (s *Service) ActiveTrip() (trip.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load("")
	if errors.Is(err, ErrTripNotFound) {
		s.activeTripID = ""
		return trip.Trip{}, ErrNoActiveTrip
	}
	return t, err
}

// Trip returns a trip by id, or the active trip when id is empty.
func (s *Service) Trip(id string) (trip.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(id)
}

// Trips returns every trip in store order.
func (s *Service) Trips() ([]trip.Trip, error) {
	if err := s.checkTrips(); err != nil {
		return nil, err
	}
	return s.state.Trips(), nil
}

// TripSummaries lists trips with their status relative to today.
func (s *Service) TripSummaries() ([]TripSummary, error) {
	trips, err := s.Trips()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	active := s.activeTripID
	s.mu.Unlock()

	today := s.today()
	out := make([]TripSummary, 0, len(trips))
	for _, t := range trips {
		status := trip.StatusOn(t.StartDate, t.EndDate, today)
		out = append(out, TripSummary{
			ID:          t.ID,
			Name:        t.Name,
			Destination: t.Destination,
			StartDate:   t.StartDate,
			EndDate:     t.EndDate,
			CoverImage:  t.CoverImage,
			DayCount:    len(t.Days),
			Status:      status,
			StatusLabel: status.Label(),
			Active:      t.ID == active,
			Joined:      t.HasParticipant(s.userID),
		})
	}
	return out, nil
}
