package mcp

import (
	"github.com/rpggio/wanderlist/internal/domain/expense"
	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/rpggio/wanderlist/internal/planner"
)

type EmptyParams struct{}

type UpdateProfileParams struct {
	Name   string `json:"name,omitempty" jsonschema:"New display name (blank keeps the current one)"`
	Avatar string `json:"avatar,omitempty" jsonschema:"Avatar URL, usually one from list_avatars (blank keeps the current one)"`
}

type TripRefParams struct {
	TripID string `json:"trip_id,omitempty" jsonschema:"Trip ID (omit to use the selected trip)"`
}

type SelectTripParams struct {
	TripID string `json:"trip_id" jsonschema:"Trip ID to select; empty clears the selection"`
}

type CreateTripParams struct {
	Destination    string `json:"destination" jsonschema:"Destination city or region"`
	StartDate      string `json:"start_date" jsonschema:"First day, YYYY-MM-DD"`
	EndDate        string `json:"end_date" jsonschema:"Last day, YYYY-MM-DD"`
	CoverImage     string `json:"cover_image,omitempty" jsonschema:"Cover image URL (a landmark photo is used when omitted)"`
	CoverImageDark string `json:"cover_image_dark,omitempty" jsonschema:"Cover image URL for dark mode"`
}

type EditTripParams struct {
	TripID         string  `json:"trip_id,omitempty" jsonschema:"Trip ID (omit to use the selected trip)"`
	Name           *string `json:"name,omitempty" jsonschema:"Trip name"`
	CoverImage     *string `json:"cover_image,omitempty" jsonschema:"Cover image URL (blank keeps the current one)"`
	CoverImageDark *string `json:"cover_image_dark,omitempty" jsonschema:"Dark mode cover image URL"`
	StartDate      *string `json:"start_date,omitempty" jsonschema:"New first day, YYYY-MM-DD"`
	EndDate        *string `json:"end_date,omitempty" jsonschema:"New last day, YYYY-MM-DD"`
}

type DayRefParams struct {
	TripID string `json:"trip_id,omitempty" jsonschema:"Trip ID (omit to use the selected trip)"`
	DayID  string `json:"day_id" jsonschema:"Day ID"`
}

type RefreshWeatherParams struct {
	TripID string `json:"trip_id,omitempty" jsonschema:"Trip ID (omit to use the selected trip)"`
	DayID  string `json:"day_id,omitempty" jsonschema:"Day ID (omit to fill every day without a forecast)"`
}

type PlaceParams struct {
	TripID       string   `json:"trip_id,omitempty" jsonschema:"Trip ID (omit to use the selected trip)"`
	DayID        string   `json:"day_id" jsonschema:"Day ID"`
	Time         string   `json:"time" jsonschema:"Start time, HH:MM (24h)"`
	Name         string   `json:"name" jsonschema:"Place name"`
	Note         string   `json:"note,omitempty" jsonschema:"Free text note"`
	Category     string   `json:"category,omitempty" jsonschema:"sightseeing, food, shopping, transport, activity, accommodation or a custom tag"`
	Rating       *float64 `json:"rating,omitempty" jsonschema:"Rating from 0 to 5"`
	Price        string   `json:"price,omitempty" jsonschema:"Price level such as $$"`
	OpenHours    string   `json:"open_hours,omitempty" jsonschema:"Opening hours"`
	ImageURL     string   `json:"image_url,omitempty" jsonschema:"Photo URL"`
	ImageOffsetY *int     `json:"image_offset_y,omitempty" jsonschema:"Vertical crop offset of the photo, 0 to 100 percent"`
	Lat          *float64 `json:"lat,omitempty" jsonschema:"Latitude"`
	Lng          *float64 `json:"lng,omitempty" jsonschema:"Longitude"`
}

type UpdatePlaceParams struct {
	TripID       string   `json:"trip_id,omitempty" jsonschema:"Trip ID (omit to use the selected trip)"`
	DayID        string   `json:"day_id" jsonschema:"Day ID"`
	ItemID       string   `json:"item_id" jsonschema:"Item ID"`
	Time         string   `json:"time" jsonschema:"Start time, HH:MM (24h)"`
	Name         string   `json:"name" jsonschema:"Place name"`
	Note         string   `json:"note,omitempty" jsonschema:"Free text note"`
	Category     string   `json:"category,omitempty" jsonschema:"sightseeing, food, shopping, transport, activity, accommodation or a custom tag"`
	Rating       *float64 `json:"rating,omitempty" jsonschema:"Rating from 0 to 5"`
	Price        string   `json:"price,omitempty" jsonschema:"Price level such as $$"`
	OpenHours    string   `json:"open_hours,omitempty" jsonschema:"Opening hours"`
	ImageURL     string   `json:"image_url,omitempty" jsonschema:"Photo URL"`
	ImageOffsetY *int     `json:"image_offset_y,omitempty" jsonschema:"Vertical crop offset of the photo, 0 to 100 percent"`
	Lat          *float64 `json:"lat,omitempty" jsonschema:"Latitude"`
	Lng          *float64 `json:"lng,omitempty" jsonschema:"Longitude"`
}

type FlightParams struct {
	TripID              string `json:"trip_id,omitempty" jsonschema:"Trip ID (omit to use the selected trip)"`
	DayID               string `json:"day_id" jsonschema:"Day ID"`
	FlightNumber        string `json:"flight_number" jsonschema:"Flight number"`
	Origin              string `json:"origin,omitempty" jsonschema:"Origin airport or city"`
	Destination         string `json:"destination,omitempty" jsonschema:"Destination airport or city"`
	OriginTerminal      string `json:"origin_terminal,omitempty" jsonschema:"Departure terminal"`
	DestinationTerminal string `json:"destination_terminal,omitempty" jsonschema:"Arrival terminal"`
	DepartureTime       string `json:"departure_time,omitempty" jsonschema:"Departure time, HH:MM"`
	ArrivalTime         string `json:"arrival_time,omitempty" jsonschema:"Arrival time, HH:MM"`
	Arrival             bool   `json:"arrival,omitempty" jsonschema:"True when the flight arrives at the destination on this day"`
	Note                string `json:"note,omitempty" jsonschema:"Free text note"`
}

type UpdateFlightParams struct {
	TripID              string `json:"trip_id,omitempty" jsonschema:"Trip ID (omit to use the selected trip)"`
	DayID               string `json:"day_id" jsonschema:"Day ID"`
	ItemID              string `json:"item_id" jsonschema:"Item ID"`
	FlightNumber        string `json:"flight_number" jsonschema:"Flight number"`
	Origin              string `json:"origin,omitempty" jsonschema:"Origin airport or city"`
	Destination         string `json:"destination,omitempty" jsonschema:"Destination airport or city"`
	OriginTerminal      string `json:"origin_terminal,omitempty" jsonschema:"Departure terminal"`
	DestinationTerminal string `json:"destination_terminal,omitempty" jsonschema:"Arrival terminal"`
	DepartureTime       string `json:"departure_time,omitempty" jsonschema:"Departure time, HH:MM"`
	ArrivalTime         string `json:"arrival_time,omitempty" jsonschema:"Arrival time, HH:MM"`
	Arrival             bool   `json:"arrival,omitempty" jsonschema:"True when the flight arrives at the destination on this day"`
	Note                string `json:"note,omitempty" jsonschema:"Free text note"`
}

type ItemRefParams struct {
	TripID string `json:"trip_id,omitempty" jsonschema:"Trip ID (omit to use the selected trip)"`
	DayID  string `json:"day_id" jsonschema:"Day ID"`
	ItemID string `json:"item_id" jsonschema:"Item ID"`
}

type MoveItemParams struct {
	TripID string `json:"trip_id,omitempty" jsonschema:"Trip ID (omit to use the selected trip)"`
	DayID  string `json:"day_id" jsonschema:"Day ID"`
	From   int    `json:"from" jsonschema:"Current zero-based position"`
	To     int    `json:"to" jsonschema:"New zero-based position"`
}

type SuggestItemsParams struct {
	TripID string `json:"trip_id,omitempty" jsonschema:"Trip ID (omit to use the selected trip)"`
	DayID  string `json:"day_id" jsonschema:"Day to add the suggestions to"`
	Prompt string `json:"prompt" jsonschema:"What to plan, for example 'a food tour near the Bund'"`
}

type LocatePlaceParams struct {
	TripID string `json:"trip_id,omitempty" jsonschema:"Trip whose destination narrows the search (omit to use the selected trip)"`
	Name   string `json:"name" jsonschema:"Place name"`
}

type ExpenseParams struct {
	TripID      string  `json:"trip_id,omitempty" jsonschema:"Trip ID (omit to use the selected trip)"`
	Description string  `json:"description" jsonschema:"What was paid for"`
	Amount      float64 `json:"amount" jsonschema:"Amount paid"`
	PayerID     string  `json:"payer_id,omitempty" jsonschema:"User who paid (omit for the current user)"`
	Currency    string  `json:"currency,omitempty" jsonschema:"Currency code of amount (omit for the reporting currency)"`
	Rate        float64 `json:"rate,omitempty" jsonschema:"Exchange rate to the reporting currency (omit for the configured rate)"`
}

type UpdateExpenseParams struct {
	TripID      string  `json:"trip_id,omitempty" jsonschema:"Trip ID (omit to use the selected trip)"`
	ExpenseID   string  `json:"expense_id" jsonschema:"Expense ID"`
	Description string  `json:"description" jsonschema:"What was paid for"`
	Amount      float64 `json:"amount" jsonschema:"Amount paid"`
	PayerID     string  `json:"payer_id,omitempty" jsonschema:"User who paid (omit to keep the current payer)"`
	Currency    string  `json:"currency,omitempty" jsonschema:"Currency code of amount (omit for the reporting currency)"`
	Rate        float64 `json:"rate,omitempty" jsonschema:"Exchange rate to the reporting currency (omit for the configured rate)"`
}

type ExpenseRefParams struct {
	TripID    string `json:"trip_id,omitempty" jsonschema:"Trip ID (omit to use the selected trip)"`
	ExpenseID string `json:"expense_id" jsonschema:"Expense ID"`
}

type SuggestIconParams struct {
	Category string `json:"category" jsonschema:"Category name"`
}

// Responses

type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type WhoAmIResponse struct {
	User         UserResponse   `json:"user"`
	ActiveTripID string         `json:"active_trip_id,omitempty"`
	Users        []UserResponse `json:"users"`
}

type AvatarsResponse struct {
	Avatars []string `json:"avatars"`
}

type TripSummaryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	CoverImage  string `json:"cover_image,omitempty"`
	DayCount    int    `json:"day_count"`
	Phase       string `json:"phase"`
	DaysUntil   int    `json:"days_until,omitempty"`
	Status      string `json:"status"`
	Active      bool   `json:"active,omitempty"`
	Joined      bool   `json:"joined,omitempty"`
}

type TripListResponse struct {
	Trips []TripSummaryResponse `json:"trips"`
}

type ItemResponse struct {
	ID                  string   `json:"id"`
	Kind                string   `json:"kind"`
	Time                string   `json:"time"`
	Title               string   `json:"title"`
	Note                string   `json:"note,omitempty"`
	Category            string   `json:"category,omitempty"`
	Rating              *float64 `json:"rating,omitempty"`
	Price               string   `json:"price,omitempty"`
	OpenHours           string   `json:"open_hours,omitempty"`
	ImageURL            string   `json:"image_url,omitempty"`
	ImageOffsetY        *int     `json:"image_offset_y,omitempty"`
	Lat                 *float64 `json:"lat,omitempty"`
	Lng                 *float64 `json:"lng,omitempty"`
	FlightNumber        string   `json:"flight_number,omitempty"`
	Origin              string   `json:"origin,omitempty"`
	Destination         string   `json:"destination,omitempty"`
	OriginTerminal      string   `json:"origin_terminal,omitempty"`
	DestinationTerminal string   `json:"destination_terminal,omitempty"`
	DepartureTime       string   `json:"departure_time,omitempty"`
	ArrivalTime         string   `json:"arrival_time,omitempty"`
	Arrival             bool     `json:"arrival,omitempty"`
}

type DayResponse struct {
	ID      string         `json:"id"`
	Date    string         `json:"date"`
	Label   string         `json:"label"`
	Weather *trip.Weather  `json:"weather,omitempty"`
	Items   []ItemResponse `json:"items"`
}

type ExpenseResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PayerID     string  `json:"payer_id"`
	Date        string  `json:"date"`
}

type TripResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Destination    string            `json:"destination"`
	StartDate      string            `json:"start_date"`
	EndDate        string            `json:"end_date"`
	Status         string            `json:"status"`
	CoverImage     string            `json:"cover_image,omitempty"`
	CoverImageDark string            `json:"cover_image_dark,omitempty"`
	Participants   []string          `json:"participants"`
	Days           []DayResponse     `json:"days"`
	Expenses       []ExpenseResponse `json:"expenses"`
}

type DayResultResponse struct {
	Day DayResponse `json:"day"`
}

type ItemResultResponse struct {
	Item ItemResponse `json:"item"`
}

type ItemsResponse struct {
	Items []ItemResponse `json:"items"`
}

type DeletedResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type DayWeatherResponse struct {
	DayID   string        `json:"day_id"`
	Date    string        `json:"date"`
	Weather *trip.Weather `json:"weather,omitempty"`
}

type WeatherResponse struct {
	Days []DayWeatherResponse `json:"days"`
}

type PlaceResponse struct {
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Rating      *float64 `json:"rating,omitempty"`
	OpenHours   string   `json:"open_hours,omitempty"`
	PriceLevel  string   `json:"price_level,omitempty"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

type ExpenseResultResponse struct {
	Expense ExpenseResponse `json:"expense"`
}

type BalancesResponse struct {
	Currency  string             `json:"currency"`
	Total     float64            `json:"total"`
	Balances  []expense.Balance  `json:"balances"`
	Transfers []expense.Transfer `json:"transfers"`
}

type IconResponse struct {
	Icon string `json:"icon"`
}

func summaryResponse(s planner.TripSummary) TripSummaryResponse {
	return TripSummaryResponse{
		ID:          s.ID,
		Name:        s.Name,
		Destination: s.Destination,
		StartDate:   s.StartDate.String(),
		EndDate:     s.EndDate.String(),
		CoverImage:  s.CoverImage,
		DayCount:    s.DayCount,
		Phase:       string(s.Status.Phase),
		DaysUntil:   s.Status.DaysUntil,
		Status:      s.StatusLabel,
		Active:      s.Active,
		Joined:      s.Joined,
	}
}

func itemResponse(it trip.Item) ItemResponse {
	resp := ItemResponse{ID: it.ItemID(), Time: it.SortTime(), Title: it.Title()}
	if ll, ok := it.Location(); ok {
		resp.Lat, resp.Lng = &ll.Lat, &ll.Lng
	}
	switch v := it.(type) {
	case trip.PlaceItem:
		resp.Kind = "place"
		resp.Note = v.Note
		resp.Category = v.Category
		resp.Rating = v.Rating
		resp.Price = v.Price
		resp.OpenHours = v.OpenHours
		resp.ImageURL = v.ImageURL
		resp.ImageOffsetY = v.ImageOffsetY
	case trip.FlightItem:
		resp.Kind = "flight"
		resp.Note = v.Note
		resp.FlightNumber = v.FlightNumber
		resp.Origin = v.Origin
		resp.Destination = v.Destination
		resp.OriginTerminal = v.OriginTerminal
		resp.DestinationTerminal = v.DestinationTerminal
		resp.DepartureTime = v.DepartureTime
		resp.ArrivalTime = v.ArrivalTime
		resp.Arrival = v.IsArrival
	}
	return resp
}

func itemsResponse(items []trip.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, itemResponse(it))
	}
	return out
}

func dayResponse(d trip.Day) DayResponse {
	return DayResponse{
		ID:      d.ID,
		Date:    d.Date.String(),
		Label:   d.Label,
		Weather: d.Weather,
		Items:   itemsResponse(d.Items),
	}
}

func expenseResponse(e trip.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		PayerID:     e.PayerID,
		Date:        e.Date.String(),
	}
}

func tripResponse(t trip.Trip, today trip.Date) TripResponse {
	resp := TripResponse{
		ID:             t.ID,
		Name:           t.Name,
		Destination:    t.Destination,
		StartDate:      t.StartDate.String(),
		EndDate:        t.EndDate.String(),
		Status:         trip.StatusOn(t.StartDate, t.EndDate, today).Label(),
		CoverImage:     t.CoverImage,
		CoverImageDark: t.CoverImageDark,
		Participants:   append([]string{}, t.Participants...),
		Days:           make([]DayResponse, 0, len(t.Days)),
		Expenses:       make([]ExpenseResponse, 0, len(t.Expenses)),
	}
	for _, d := range t.Days {
		resp.Days = append(resp.Days, dayResponse(d))
	}
	for _, e := range t.Expenses {
		resp.Expenses = append(resp.Expenses, expenseResponse(e))
	}
	return resp
}
