package planner

import (
	"github.com/rpggio/wanderlist/internal/domain/expense"
	"github.com/rpggio/wanderlist/internal/domain/trip"
)

// CreateTripRequest holds the fields for a new trip.
type CreateTripRequest struct {
	Destination    string
	StartDate      trip.Date
	EndDate        trip.Date
	CoverImage     string
	CoverImageDark string
}

// EditTripRequest lists trip details to change. Nil fields keep their value;
// a blank cover image keeps the current one.
type EditTripRequest struct {
	Name           *string
	CoverImage     *string
	CoverImageDark *string
	StartDate      *trip.Date
	EndDate        *trip.Date
}

// PlaceInput is a place item as typed by a user.
type PlaceInput struct {
	Time         string
	Name         string
	Note         string
	Category     string
	Rating       *float64
	Price        string
	OpenHours    string
	ImageURL     string
	ImageOffsetY *int
	Coords       *trip.LatLng
}

// FlightInput is a flight item as typed by a user.
type FlightInput struct {
	FlightNumber        string
	Origin              string
	Destination         string
	OriginTerminal      string
	DestinationTerminal string
	DepartureTime       string
	ArrivalTime         string
	IsArrival           bool
	Note                string
}

// ExpenseInput is an expense as typed by a user. When Currency is the
// converter's foreign currency the amount is converted with Rate, or with the
// default rate when Rate is zero. An empty PayerID means the current user.
type ExpenseInput struct {
	Description string
	Amount      float64
	PayerID     string
	Currency    string
	Rate        float64
}

// TripSummary is a trip as listed on the home screen.
type TripSummary struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Destination string      `json:"destination"`
	StartDate   trip.Date   `json:"start_date"`
	EndDate     trip.Date   `json:"end_date"`
	CoverImage  string      `json:"cover_image,omitempty"`
	DayCount    int         `json:"day_count"`
	Status      trip.Status `json:"status"`
	StatusLabel string      `json:"status_label"`
	Active      bool        `json:"active,omitempty"`
	Joined      bool        `json:"joined,omitempty"`
}

// DayWeather is the forecast found for one day.
type DayWeather struct {
	DayID   string        `json:"day_id"`
	Date    trip.Date     `json:"date"`
	Weather *trip.Weather `json:"weather,omitempty"`
}

// BalanceSheet is a trip's expense summary.
type BalanceSheet struct {
	Currency  string             `json:"currency"`
	Total     float64            `json:"total"`
	Balances  []expense.Balance  `json:"balances"`
	Transfers []expense.Transfer `json:"transfers"`
}
