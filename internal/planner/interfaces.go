package planner

import (
	"context"

	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/rpggio/wanderlist/internal/domain/user"
	"github.com/rpggio/wanderlist/internal/suggest"
)

// StateReader is the read side of the planner: the latest snapshot of trips
// and users.
type StateReader interface {
	Available() bool
	Ready(collection string) bool
	Trips() []trip.Trip
	Trip(id string) (trip.Trip, bool)
	Users() []user.User
	User(id string) (user.User, bool)
}

// Suggester produces AI itinerary ideas and place details.
type Suggester interface {
	Enabled() bool
	Suggest(ctx context.Context, prompt, destination string) ([]suggest.Draft, error)
	LookupPlace(ctx context.Context, name, city string) (*suggest.PlaceDetails, error)
	SuggestIcon(ctx context.Context, category string) string
}

// WeatherSource returns a day's forecast for a location. A nil result with a
// nil error means no forecast is available.
type WeatherSource interface {
	Lookup(ctx context.Context, location string, date trip.Date) (*trip.Weather, error)
}
